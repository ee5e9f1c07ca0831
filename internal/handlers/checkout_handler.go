package handlers

import (
	"net/http"

	"golang-storefront-backend/internal/middleware"
	"golang-storefront-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// SubmitCheckout godoc
// @Summary Submit the checkout form
// @Description Validate the contact details and place the order with the ordering platform
// @Tags checkout
// @Accept json
// @Produce json
// @Param checkout body services.CheckoutRequest true "Checkout form"
// @Success 200 {object} services.CheckoutResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} services.CheckoutResult
// @Failure 502 {object} services.CheckoutResult
// @Router /checkout [post]
func (h *CheckoutHandler) SubmitCheckout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	req.Locale = middleware.GetLocale(c)

	sessionID := middleware.GetSessionID(c)
	result, err := h.checkoutService.Submit(c.Request.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Cart is empty",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "Submission in progress",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Checkout failed",
				Message: err.Error(),
			})
		}
		return
	}

	switch result.State {
	case services.CheckoutStateEditing:
		c.JSON(http.StatusUnprocessableEntity, result)
	case services.CheckoutStateFailed:
		c.JSON(http.StatusBadGateway, result)
	default:
		c.JSON(http.StatusOK, result)
	}
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", h.SubmitCheckout)
}
