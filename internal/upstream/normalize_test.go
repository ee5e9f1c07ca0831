package upstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantDocNormalization(t *testing.T) {
	t.Run("snake_case payload", func(t *testing.T) {
		payload := `{
			"restaurant_id": "r-1",
			"name": "Beirut Nights",
			"name_ar": "ليالي بيروت",
			"is_open": true,
			"delivery_time": "30-45 min",
			"cuisine_types": ["lebanese", "grill"]
		}`

		var doc restaurantDoc
		require.NoError(t, json.Unmarshal([]byte(payload), &doc))

		assert.Equal(t, "r-1", doc.RestaurantID)
		assert.Equal(t, "ليالي بيروت", doc.NameAr)
		assert.True(t, doc.IsOpen)
		assert.Equal(t, "30-45 min", doc.DeliveryTime)
		assert.Equal(t, []string{"lebanese", "grill"}, doc.CuisineTypes)
	})

	t.Run("camelCase payload", func(t *testing.T) {
		payload := `{
			"id": "r-1",
			"name": "Beirut Nights",
			"nameAr": "ليالي بيروت",
			"isOpen": true,
			"deliveryTime": "30-45 min",
			"logoUrl": "https://cdn.example.com/r-1.png"
		}`

		var doc restaurantDoc
		require.NoError(t, json.Unmarshal([]byte(payload), &doc))

		assert.Equal(t, "r-1", doc.RestaurantID)
		assert.Equal(t, "ليالي بيروت", doc.NameAr)
		assert.True(t, doc.IsOpen)
		assert.Equal(t, "https://cdn.example.com/r-1.png", doc.Logo)
	})

	t.Run("missing fields default to zero values", func(t *testing.T) {
		var doc restaurantDoc
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Bare"}`), &doc))

		assert.Empty(t, doc.RestaurantID)
		assert.False(t, doc.IsOpen)
		assert.Nil(t, doc.CuisineTypes)
	})
}

func TestMenuItemDocNormalization(t *testing.T) {
	t.Run("mixed-convention payload with variants and addons", func(t *testing.T) {
		payload := `{
			"productId": "p-1",
			"restaurant_id": "r-1",
			"name": "Chicken Shawarma",
			"nameAr": "شاورما دجاج",
			"price": 7.0,
			"available": true,
			"variants": [
				{"variant_id": "v-reg", "name": "Regular", "price": 7.0},
				{"id": "v-lg", "name": "Large", "price": 9.5, "isDefault": true}
			],
			"addOns": [
				{"addonId": "a-garlic", "name": "Garlic Sauce", "price": 0.5}
			]
		}`

		var doc menuItemDoc
		require.NoError(t, json.Unmarshal([]byte(payload), &doc))

		assert.Equal(t, "p-1", doc.ProductID)
		assert.Equal(t, "r-1", doc.RestaurantID)
		assert.Equal(t, "شاورما دجاج", doc.NameAr)
		assert.True(t, doc.IsAvailable)

		require.Len(t, doc.Variants, 2)
		assert.Equal(t, "v-reg", doc.Variants[0].VariantID)
		assert.Equal(t, "v-lg", doc.Variants[1].VariantID)
		assert.True(t, doc.Variants[1].IsDefault)

		require.Len(t, doc.Addons, 1)
		assert.Equal(t, "a-garlic", doc.Addons[0].AddonID)
		assert.Equal(t, 0.5, doc.Addons[0].Price)
	})

	t.Run("availability falls through naming variants", func(t *testing.T) {
		for _, payload := range []string{
			`{"id": "p-1", "is_available": true}`,
			`{"id": "p-1", "isAvailable": true}`,
			`{"id": "p-1", "available": true}`,
		} {
			var doc menuItemDoc
			require.NoError(t, json.Unmarshal([]byte(payload), &doc))
			assert.True(t, doc.IsAvailable, payload)
		}
	})
}
