package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// Order statuses as reported by the ordering platform.
const (
	OrderStatusNew            = "new"
	OrderStatusAccepted       = "accepted"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Payment methods. Card is visible to clients but not yet submittable.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// OrderRecord - PostgreSQL archive of an order submitted upstream. Lines are
// stored as a JSONB snapshot so history survives catalog changes.
type OrderRecord struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber      string     `gorm:"uniqueIndex;not null" json:"order_number"`
	SessionID        string     `gorm:"index;not null" json:"-"`
	RestaurantID     string     `gorm:"not null" json:"restaurant_id"`
	RestaurantName   string     `json:"restaurant_name"`
	RestaurantNameAr string     `json:"restaurant_name_ar,omitempty"`
	Items            JSONB      `gorm:"type:jsonb" json:"items"`
	Subtotal         float64    `json:"subtotal"`
	DeliveryFee      float64    `json:"delivery_fee"`
	Discount         float64    `json:"discount"`
	TotalAmount      float64    `json:"total_amount"`
	PromoCode        string     `json:"promo_code,omitempty"`
	Status           string     `gorm:"default:new" json:"status"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	CustomerAddress  string     `json:"customer_address"`
	Notes            string     `json:"notes,omitempty"`
	PaymentMethod    string     `json:"payment_method"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
