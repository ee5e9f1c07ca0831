package handlers

// Shared request/response models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
