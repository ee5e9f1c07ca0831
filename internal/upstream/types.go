package upstream

import "time"

// OrderPayload is the order-creation request sent to the ordering platform.
// A nil ScheduledAt means "as soon as possible".
type OrderPayload struct {
	RestaurantID  string             `json:"restaurant_id"`
	Items         []OrderPayloadItem `json:"items"`
	Customer      CustomerInfo       `json:"customer"`
	Notes         string             `json:"notes,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	ScheduledAt   *time.Time         `json:"scheduled_at,omitempty"`
	PromoCode     string             `json:"promo_code,omitempty"`
}

type OrderPayloadItem struct {
	ProductID    string              `json:"product_id"`
	Name         string              `json:"name"`
	UnitPrice    float64             `json:"unit_price"`
	Quantity     int                 `json:"quantity"`
	VariantID    string              `json:"variant_id,omitempty"`
	VariantName  string              `json:"variant_name,omitempty"`
	VariantPrice *float64            `json:"variant_price,omitempty"`
	Addons       []OrderPayloadAddon `json:"addons,omitempty"`
	Notes        string              `json:"notes,omitempty"`
}

type OrderPayloadAddon struct {
	AddonID  string  `json:"addon_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderConfirmation is the affirmative order-creation response.
type OrderConfirmation struct {
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// OrderStatusInfo is the current upstream view of a submitted order.
type OrderStatusInfo struct {
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	DeliveryFee float64 `json:"delivery_fee"`
	TotalAmount float64 `json:"total_amount"`
}

// PromoResult is the outcome of a promo-code check: the absolute deduction
// the code grants on the current cart.
type PromoResult struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}
