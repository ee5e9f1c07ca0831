package handlers

import (
	"net/http"
	"strconv"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetRestaurants godoc
// @Summary List restaurants
// @Description List restaurants from the catalog snapshot with pagination
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} RestaurantsResponse
// @Failure 500 {object} ErrorResponse
// @Router /restaurants [get]
func (h *CatalogHandler) GetRestaurants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	restaurants, err := h.catalogService.ListRestaurants(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch restaurants",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, RestaurantsResponse{
		Restaurants: restaurants,
		Pagination: PaginationResponse{
			Page:  page,
			Limit: limit,
		},
	})
}

// GetRestaurantByID godoc
// @Summary Get restaurant by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} models.Restaurant
// @Failure 404 {object} ErrorResponse
// @Router /restaurants/{id} [get]
func (h *CatalogHandler) GetRestaurantByID(c *gin.Context) {
	restaurant, err := h.catalogService.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Restaurant not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// GetMenu godoc
// @Summary Get a restaurant's menu
// @Description Get the restaurant's menu items from the catalog snapshot
// @Tags catalog
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {array} models.MenuItem
// @Failure 500 {object} ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	items, err := h.catalogService.GetMenu(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to fetch menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetMenuItem godoc
// @Summary Get one menu item
// @Description Get a single menu item with its variants and addons
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.MenuItem
// @Failure 404 {object} ErrorResponse
// @Router /menu-items/{id} [get]
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	item, err := h.catalogService.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Item not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/restaurants", h.GetRestaurants)
	router.GET("/restaurants/:id", h.GetRestaurantByID)
	router.GET("/restaurants/:id/menu", h.GetMenu)
	router.GET("/menu-items/:id", h.GetMenuItem)
}

// Response models
type RestaurantsResponse struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	Pagination  PaginationResponse  `json:"pagination"`
}
