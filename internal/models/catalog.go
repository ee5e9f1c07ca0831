package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant - MongoDB catalog snapshot, synced from the ordering platform.
type Restaurant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RestaurantID string             `bson:"restaurant_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameAr       string             `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Logo         string             `bson:"logo,omitempty" json:"logo,omitempty"`
	CuisineTypes []string           `bson:"cuisine_types,omitempty" json:"cuisine_types,omitempty"`
	IsOpen       bool               `bson:"is_open" json:"is_open"`
	Rating       float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	DeliveryTime string             `bson:"delivery_time,omitempty" json:"delivery_time,omitempty"`
	SyncedAt     time.Time          `bson:"synced_at" json:"-"`
}

// MenuItem - MongoDB catalog snapshot of one orderable item.
type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID    string             `bson:"product_id" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Name         string             `bson:"name" json:"name"`
	NameAr       string             `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	IsAvailable  bool               `bson:"is_available" json:"is_available"`
	Variants     []MenuItemVariant  `bson:"variants,omitempty" json:"variants,omitempty"`
	Addons       []MenuItemAddon    `bson:"addons,omitempty" json:"addons,omitempty"`
	SyncedAt     time.Time          `bson:"synced_at" json:"-"`
}

// MenuItemVariant for size/type variations. Price overrides the item price.
type MenuItemVariant struct {
	VariantID string  `bson:"variant_id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	NameAr    string  `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	Price     float64 `bson:"price" json:"price"`
	IsDefault bool    `bson:"is_default" json:"is_default"`
}

// MenuItemAddon for extras, priced per unit.
type MenuItemAddon struct {
	AddonID string  `bson:"addon_id" json:"id"`
	Name    string  `bson:"name" json:"name"`
	NameAr  string  `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	Price   float64 `bson:"price" json:"price"`
}

// VariantByID returns the variant with the given id, if defined.
func (m *MenuItem) VariantByID(id string) *MenuItemVariant {
	for i := range m.Variants {
		if m.Variants[i].VariantID == id {
			return &m.Variants[i]
		}
	}
	return nil
}

// AddonByID returns the addon with the given id, if defined.
func (m *MenuItem) AddonByID(id string) *MenuItemAddon {
	for i := range m.Addons {
		if m.Addons[i].AddonID == id {
			return &m.Addons[i]
		}
	}
	return nil
}

// DefaultVariant returns the variant flagged default, else the first one,
// else nil when the item has no variants.
func (m *MenuItem) DefaultVariant() *MenuItemVariant {
	for i := range m.Variants {
		if m.Variants[i].IsDefault {
			return &m.Variants[i]
		}
	}
	if len(m.Variants) > 0 {
		return &m.Variants[0]
	}
	return nil
}
