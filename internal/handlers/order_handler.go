package handlers

import (
	"io"
	"net/http"
	"strconv"

	"golang-storefront-backend/internal/middleware"
	"golang-storefront-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	trackingService *services.TrackingService
}

func NewOrderHandler(trackingService *services.TrackingService) *OrderHandler {
	return &OrderHandler{trackingService: trackingService}
}

// GetOrders godoc
// @Summary Get the session's order history
// @Tags orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {array} models.OrderRecord
// @Failure 500 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	sessionID := middleware.GetSessionID(c)
	orders, err := h.trackingService.GetSessionOrders(c.Request.Context(), sessionID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrderStatus godoc
// @Summary Get an order's current status
// @Description Get the order's status and progress timeline
// @Tags orders
// @Produce json
// @Param order_number path string true "Order number"
// @Success 200 {object} services.OrderStatusView
// @Failure 404 {object} ErrorResponse
// @Router /orders/{order_number} [get]
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	view, err := h.trackingService.GetOrderStatus(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Order not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// TrackOrder godoc
// @Summary Follow an order's live tracking feed
// @Description Server-sent events stream of status updates for one order
// @Tags orders
// @Produce text/event-stream
// @Param order_number path string true "Order number"
// @Router /orders/{order_number}/track [get]
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	orderNumber := c.Param("order_number")

	updates := make(chan services.TrackingUpdate, 8)
	go func() {
		defer close(updates)
		h.trackingService.Follow(c.Request.Context(), orderNumber, func(update services.TrackingUpdate) {
			select {
			case updates <- update:
			case <-c.Request.Context().Done():
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		update, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("status", update)
		return true
	})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/orders", h.GetOrders)
	router.GET("/orders/:order_number", h.GetOrderStatus)
	router.GET("/orders/:order_number/track", h.TrackOrder)
}
