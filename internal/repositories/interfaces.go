package repositories

import (
	"context"
	"golang-storefront-backend/internal/models"

	"github.com/pkg/errors"
)

// ErrCorruptCart marks a stored cart payload that cannot be decoded. Callers
// treat it as an empty cart, never as a fatal condition.
var ErrCorruptCart = errors.New("stored cart is unreadable")

// ErrOrderNotFound is returned when no archived order matches the query.
var ErrOrderNotFound = errors.New("order not found")

// CartStorage persists the full CartState per guest session. Load returns an
// empty cart when nothing was saved, and ErrCorruptCart when the saved data
// cannot be parsed.
type CartStorage interface {
	Load(ctx context.Context, sessionID string) (models.CartState, error)
	Save(ctx context.Context, sessionID string, state models.CartState) error
	Clear(ctx context.Context, sessionID string) error
}

// CatalogRepository serves and maintains the MongoDB catalog snapshot.
type CatalogRepository interface {
	UpsertRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error)
	UpsertMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, productID string) (*models.MenuItem, error)
	GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
}

// OrderRecordRepository archives submitted orders in PostgreSQL.
type OrderRecordRepository interface {
	Create(ctx context.Context, record *models.OrderRecord) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.OrderRecord, error)
	GetBySessionID(ctx context.Context, sessionID string, limit, offset int) ([]models.OrderRecord, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) error
}
