// Package pricing computes cart money values as free functions over state
// snapshots. Every surface that shows a total (cart view, checkout summary,
// add-to-cart confirmation) goes through LineTotal so the numbers never
// drift apart.
package pricing

import "golang-storefront-backend/internal/models"

// LineTotal returns the price of one cart line: the variant price when a
// variant is selected (it overrides the base price), plus each addon's unit
// price times its own quantity, all multiplied by the line quantity. Absent
// variant and addons contribute nothing.
func LineTotal(item models.CartLineItem) float64 {
	unit := item.BasePrice
	if item.Variant != nil {
		unit = item.Variant.Price
	}
	for _, addon := range item.Addons {
		unit += addon.Price * float64(addon.Quantity)
	}
	return unit * float64(item.Quantity)
}

// Subtotal sums line totals over the whole cart. Zero on an empty cart.
func Subtotal(state models.CartState) float64 {
	var total float64
	for _, item := range state.Items {
		total += LineTotal(item)
	}
	return total
}

// TotalItemCount sums line quantities. Zero on an empty cart.
func TotalItemCount(state models.CartState) int {
	var count int
	for _, item := range state.Items {
		count += item.Quantity
	}
	return count
}

// GrandTotal applies the delivery fee and discount, clamped at zero so an
// oversized promotion can never produce a negative total.
func GrandTotal(subtotal, deliveryFee, discount float64) float64 {
	total := subtotal + deliveryFee - discount
	if total < 0 {
		return 0
	}
	return total
}
