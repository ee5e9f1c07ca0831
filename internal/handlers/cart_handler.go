package handlers

import (
	"net/http"

	"golang-storefront-backend/internal/middleware"
	"golang-storefront-backend/internal/services"
	"golang-storefront-backend/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
	ordering       upstream.OrderingClient
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService, ordering upstream.OrderingClient) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
		ordering:       ordering,
	}
}

// GetCart godoc
// @Summary Get the session cart
// @Description Get the current cart with derived totals
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	state, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to load cart",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// AddCartItem godoc
// @Summary Add an item to the cart
// @Description Configure a menu item (variant, addons, quantity, notes) and add it to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddCartItemRequest true "Item configuration"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	item, err := h.catalogService.GetMenuItem(ctx, req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Item not found",
			Message: err.Error(),
		})
		return
	}

	restaurant, err := h.catalogService.GetRestaurant(ctx, item.RestaurantID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	configurator := services.NewConfigurator(*item, *restaurant)
	if req.VariantID != "" {
		if err := configurator.SelectVariant(req.VariantID); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid variant",
				Message: err.Error(),
			})
			return
		}
	}
	for _, addonID := range req.AddonIDs {
		if err := configurator.ToggleAddon(addonID); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid addon",
				Message: err.Error(),
			})
			return
		}
	}
	configurator.SetQuantity(req.Quantity)
	configurator.SetNotes(req.Notes)

	line, err := configurator.Build()
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrItemUnavailable) {
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{
			Error:   "Cannot add item",
			Message: err.Error(),
		})
		return
	}

	sessionID := middleware.GetSessionID(c)
	state, err := h.cartService.AddItem(ctx, sessionID, line)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to add item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// UpdateCartItem godoc
// @Summary Update a cart line's quantity
// @Description Set the quantity of one cart line; zero or less removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param item_id path string true "Cart line ID"
// @Param quantity body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/items/{item_id} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	sessionID := middleware.GetSessionID(c)
	state, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, c.Param("item_id"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to update item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// RemoveCartItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param item_id path string true "Cart line ID"
// @Success 200 {object} services.CartResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	state, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to remove item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// ClearCart godoc
// @Summary Clear the cart
// @Tags cart
// @Success 204 "No Content"
// @Failure 500 {object} ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to clear cart",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCartNotes godoc
// @Summary Set order-level notes
// @Tags cart
// @Accept json
// @Produce json
// @Param notes body CartNotesRequest true "Order notes"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/notes [put]
func (h *CartHandler) SetCartNotes(c *gin.Context) {
	var req CartNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	sessionID := middleware.GetSessionID(c)
	state, err := h.cartService.SetOrderNotes(c.Request.Context(), sessionID, req.Notes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to save notes",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// ApplyPromo godoc
// @Summary Apply a promo code
// @Description Verify the code against the ordering platform and apply its discount
// @Tags cart
// @Accept json
// @Produce json
// @Param promo body PromoRequest true "Promo code"
// @Success 200 {object} services.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/promo [post]
func (h *CartHandler) ApplyPromo(c *gin.Context) {
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	state, err := h.cartService.Get(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to load cart",
			Message: err.Error(),
		})
		return
	}
	if state.IsEmpty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Cart is empty",
			Message: "add items before applying a promo code",
		})
		return
	}

	promo, err := h.ordering.CheckPromo(ctx, req.Code, state.RestaurantID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Invalid promo code",
			Message: err.Error(),
		})
		return
	}

	state, err = h.cartService.ApplyPromo(ctx, sessionID, promo.Code, promo.Discount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to apply promo",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// RemovePromo godoc
// @Summary Remove the applied promo code
// @Tags cart
// @Produce json
// @Success 200 {object} services.CartResponse
// @Failure 500 {object} ErrorResponse
// @Router /cart/promo [delete]
func (h *CartHandler) RemovePromo(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	state, err := h.cartService.RemovePromo(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to remove promo",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, services.CartResponse{
		Cart:    state,
		Summary: h.cartService.Summarize(state),
	})
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/cart", h.GetCart)
	router.DELETE("/cart", h.ClearCart)
	router.POST("/cart/items", h.AddCartItem)
	router.PUT("/cart/items/:item_id", h.UpdateCartItem)
	router.DELETE("/cart/items/:item_id", h.RemoveCartItem)
	router.PUT("/cart/notes", h.SetCartNotes)
	router.POST("/cart/promo", h.ApplyPromo)
	router.DELETE("/cart/promo", h.RemovePromo)
}

// Request models
type AddCartItemRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	VariantID string   `json:"variant_id"`
	AddonIDs  []string `json:"addon_ids"`
	Quantity  int      `json:"quantity"`
	Notes     string   `json:"notes"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartNotesRequest struct {
	Notes string `json:"notes"`
}

type PromoRequest struct {
	Code string `json:"code" binding:"required"`
}
