package models

// SelectedVariant is the variant chosen for a cart line. Its price replaces
// the line's base price; it is not additive.
type SelectedVariant struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	NameAr string  `json:"name_ar,omitempty"`
	Price  float64 `json:"price"`
}

// SelectedAddon is one addon attached to a cart line. The quantity field is
// carried for forward compatibility; the current configurator only toggles
// addons on and off, so it is always 1 today.
type SelectedAddon struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	NameAr   string  `json:"name_ar,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CartLineItem is one purchasable unit in the cart. ID is generated locally
// when the line is appended and is distinct from the catalog product id.
// The owning restaurant is duplicated onto every line so a stored cart is
// self-describing.
type CartLineItem struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	NameAr           string          `json:"name_ar,omitempty"`
	Description      string          `json:"description,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	BasePrice        float64         `json:"base_price"`
	Variant          *SelectedVariant `json:"variant,omitempty"`
	Addons           []SelectedAddon `json:"addons,omitempty"`
	Quantity         int             `json:"quantity"`
	Notes            string          `json:"notes,omitempty"`
	RestaurantID     string          `json:"restaurant_id"`
	RestaurantName   string          `json:"restaurant_name"`
	RestaurantNameAr string          `json:"restaurant_name_ar,omitempty"`
}

// CartState is the persisted aggregate for one guest session. Item order is
// insertion order. Totals are never stored; they are recomputed on read.
type CartState struct {
	Items            []CartLineItem `json:"items"`
	RestaurantID     string         `json:"restaurant_id,omitempty"`
	RestaurantName   string         `json:"restaurant_name,omitempty"`
	RestaurantNameAr string         `json:"restaurant_name_ar,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	PromoCode        string         `json:"promo_code,omitempty"`
	Discount         float64        `json:"discount,omitempty"`
}

// EmptyCart returns the initial state: no items, no owning restaurant, no
// notes, no promotion.
func EmptyCart() CartState {
	return CartState{Items: []CartLineItem{}}
}

// IsEmpty reports whether the cart holds no lines.
func (c CartState) IsEmpty() bool {
	return len(c.Items) == 0
}
