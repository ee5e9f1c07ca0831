package services

import (
	"context"
	"testing"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCartService() (*CartService, *repositories.MemoryCartStorage) {
	storage := repositories.NewMemoryCartStorage()
	return NewCartService(storage, 10.0, zap.NewNop().Sugar()), storage
}

func pizzaLine() models.CartLineItem {
	return models.CartLineItem{
		ProductID:      "p-pizza",
		Name:           "Margherita",
		BasePrice:      12.0,
		Quantity:       1,
		RestaurantID:   "r-1",
		RestaurantName: "Napoli House",
	}
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("first item claims the restaurant", func(t *testing.T) {
		svc, _ := newCartService()

		state, err := svc.AddItem(ctx, "s1", pizzaLine())

		require.NoError(t, err)
		require.Len(t, state.Items, 1)
		assert.NotEmpty(t, state.Items[0].ID)
		assert.Equal(t, "r-1", state.RestaurantID)
		assert.Equal(t, "Napoli House", state.RestaurantName)
	})

	t.Run("identical line merges by summing quantities", func(t *testing.T) {
		svc, _ := newCartService()

		_, err := svc.AddItem(ctx, "s1", pizzaLine())
		require.NoError(t, err)
		state, err := svc.AddItem(ctx, "s1", pizzaLine())
		require.NoError(t, err)

		require.Len(t, state.Items, 1)
		assert.Equal(t, 2, state.Items[0].Quantity)
	})

	t.Run("different notes keep lines separate", func(t *testing.T) {
		svc, _ := newCartService()

		_, err := svc.AddItem(ctx, "s1", pizzaLine())
		require.NoError(t, err)

		noted := pizzaLine()
		noted.Notes = "extra crispy"
		state, err := svc.AddItem(ctx, "s1", noted)
		require.NoError(t, err)

		assert.Len(t, state.Items, 2)
	})

	t.Run("different variant keeps lines separate", func(t *testing.T) {
		svc, _ := newCartService()

		_, err := svc.AddItem(ctx, "s1", pizzaLine())
		require.NoError(t, err)

		large := pizzaLine()
		large.Variant = &models.SelectedVariant{ID: "v-lg", Name: "Large", Price: 16.0}
		state, err := svc.AddItem(ctx, "s1", large)
		require.NoError(t, err)

		assert.Len(t, state.Items, 2)
	})

	t.Run("addon set matches regardless of order", func(t *testing.T) {
		svc, _ := newCartService()

		first := pizzaLine()
		first.Addons = []models.SelectedAddon{
			{ID: "a-cheese", Price: 1.5, Quantity: 1},
			{ID: "a-olives", Price: 1.0, Quantity: 1},
		}
		_, err := svc.AddItem(ctx, "s1", first)
		require.NoError(t, err)

		second := pizzaLine()
		second.Addons = []models.SelectedAddon{
			{ID: "a-olives", Price: 1.0, Quantity: 1},
			{ID: "a-cheese", Price: 1.5, Quantity: 1},
		}
		state, err := svc.AddItem(ctx, "s1", second)
		require.NoError(t, err)

		require.Len(t, state.Items, 1)
		assert.Equal(t, 2, state.Items[0].Quantity)
	})

	t.Run("item from another restaurant replaces the cart", func(t *testing.T) {
		svc, _ := newCartService()

		_, err := svc.AddItem(ctx, "s1", pizzaLine())
		require.NoError(t, err)

		burger := models.CartLineItem{
			ProductID:    "p-burger",
			Name:         "Classic Burger",
			BasePrice:    8.0,
			Quantity:     1,
			RestaurantID: "r-2",
		}
		state, err := svc.AddItem(ctx, "s1", burger)
		require.NoError(t, err)

		require.Len(t, state.Items, 1)
		assert.Equal(t, "p-burger", state.Items[0].ProductID)
		assert.Equal(t, "r-2", state.RestaurantID)
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService()

	state, err := svc.AddItem(ctx, "s1", pizzaLine())
	require.NoError(t, err)
	itemID := state.Items[0].ID

	_, err = svc.SetOrderNotes(ctx, "s1", "ring twice")
	require.NoError(t, err)
	_, err = svc.ApplyPromo(ctx, "s1", "SAVE5", 5.0)
	require.NoError(t, err)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		state, err := svc.RemoveItem(ctx, "s1", "nope")
		require.NoError(t, err)
		assert.Len(t, state.Items, 1)
	})

	t.Run("removing the last line resets everything", func(t *testing.T) {
		state, err := svc.RemoveItem(ctx, "s1", itemID)
		require.NoError(t, err)

		assert.True(t, state.IsEmpty())
		assert.Empty(t, state.RestaurantID)
		assert.Empty(t, state.Notes)
		assert.Empty(t, state.PromoCode)
		assert.Zero(t, state.Discount)
	})
}

func TestCartServiceUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartService()

	state, err := svc.AddItem(ctx, "s1", pizzaLine())
	require.NoError(t, err)
	itemID := state.Items[0].ID

	state, err = svc.UpdateQuantity(ctx, "s1", itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Items[0].Quantity)

	t.Run("zero quantity removes the line", func(t *testing.T) {
		state, err := svc.UpdateQuantity(ctx, "s1", itemID, 0)
		require.NoError(t, err)
		assert.True(t, state.IsEmpty())
	})
}

func TestCartServiceCorruptCart(t *testing.T) {
	ctx := context.Background()
	svc, storage := newCartService()

	_, err := svc.AddItem(ctx, "s1", pizzaLine())
	require.NoError(t, err)

	storage.Corrupt("s1")

	state, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())

	// The corrupt record is gone; the next read is a clean empty cart.
	state, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
}

func TestCartServiceSummarize(t *testing.T) {
	svc, _ := newCartService()

	t.Run("empty cart has no delivery fee", func(t *testing.T) {
		summary := svc.Summarize(models.EmptyCart())
		assert.Zero(t, summary.ItemCount)
		assert.Zero(t, summary.DeliveryFee)
		assert.Zero(t, summary.GrandTotal)
	})

	t.Run("totals derive from lines", func(t *testing.T) {
		state := models.CartState{
			Items: []models.CartLineItem{
				{BasePrice: 12.0, Quantity: 2},
				{BasePrice: 5.0, Quantity: 1},
			},
			Discount: 4.0,
		}
		summary := svc.Summarize(state)

		assert.Equal(t, 3, summary.ItemCount)
		assert.Equal(t, 29.0, summary.Subtotal)
		assert.Equal(t, 10.0, summary.DeliveryFee)
		assert.Equal(t, 35.0, summary.GrandTotal)
	})

	t.Run("grand total never goes negative", func(t *testing.T) {
		state := models.CartState{
			Items:    []models.CartLineItem{{BasePrice: 2.0, Quantity: 1}},
			Discount: 50.0,
		}
		summary := svc.Summarize(state)
		assert.Zero(t, summary.GrandTotal)
	})
}
