package pricing

import (
	"testing"

	"golang-storefront-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	t.Run("base price only", func(t *testing.T) {
		line := models.CartLineItem{BasePrice: 12.5, Quantity: 2}
		assert.Equal(t, 25.0, LineTotal(line))
	})

	t.Run("variant overrides base price", func(t *testing.T) {
		line := models.CartLineItem{
			BasePrice: 12.5,
			Variant:   &models.SelectedVariant{ID: "v-lg", Price: 18.0},
			Quantity:  2,
		}
		assert.Equal(t, 36.0, LineTotal(line))
	})

	t.Run("addons priced per unit then scaled by line quantity", func(t *testing.T) {
		line := models.CartLineItem{
			BasePrice: 7.0,
			Addons: []models.SelectedAddon{
				{ID: "a-cheese", Price: 1.5, Quantity: 2},
			},
			Quantity: 3,
		}
		// (7.00 + 1.50*2) * 3
		assert.Equal(t, 30.0, LineTotal(line))
	})

	t.Run("variant and addons combined", func(t *testing.T) {
		line := models.CartLineItem{
			BasePrice: 10.0,
			Variant:   &models.SelectedVariant{ID: "v-lg", Price: 14.0},
			Addons: []models.SelectedAddon{
				{ID: "a-cheese", Price: 2.0, Quantity: 1},
				{ID: "a-sauce", Price: 0.5, Quantity: 1},
			},
			Quantity: 2,
		}
		assert.Equal(t, 33.0, LineTotal(line))
	})
}

func TestSubtotal(t *testing.T) {
	state := models.CartState{
		Items: []models.CartLineItem{
			{BasePrice: 10.0, Quantity: 1},
			{BasePrice: 5.0, Quantity: 3},
		},
	}
	assert.Equal(t, 25.0, Subtotal(state))
	assert.Zero(t, Subtotal(models.EmptyCart()))
}

func TestTotalItemCount(t *testing.T) {
	state := models.CartState{
		Items: []models.CartLineItem{
			{Quantity: 2},
			{Quantity: 3},
		},
	}
	assert.Equal(t, 5, TotalItemCount(state))
	assert.Zero(t, TotalItemCount(models.EmptyCart()))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 33.0, GrandTotal(25.0, 10.0, 2.0))

	t.Run("oversized discount clamps at zero", func(t *testing.T) {
		assert.Equal(t, 0.0, GrandTotal(10.0, 5.0, 100.0))
	})
}
