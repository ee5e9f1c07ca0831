package upstream

import (
	"encoding/json"

	"golang-storefront-backend/internal/models"
)

// The ordering platform is inconsistent about field naming: the same logical
// field arrives as snake_case from some endpoints and camelCase from others
// (e.g. name_ar vs nameAr, is_available vs isAvailable). Everything is
// normalized here, once, into the canonical models; no other package may
// branch on field-name variants.

type rawObject map[string]json.RawMessage

func (r rawObject) str(keys ...string) string {
	for _, key := range keys {
		if raw, ok := r[key]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil {
				return s
			}
		}
	}
	return ""
}

func (r rawObject) boolean(keys ...string) bool {
	for _, key := range keys {
		if raw, ok := r[key]; ok {
			var b bool
			if json.Unmarshal(raw, &b) == nil {
				return b
			}
		}
	}
	return false
}

func (r rawObject) num(keys ...string) float64 {
	for _, key := range keys {
		if raw, ok := r[key]; ok {
			var f float64
			if json.Unmarshal(raw, &f) == nil {
				return f
			}
		}
	}
	return 0
}

func (r rawObject) list(keys ...string) []json.RawMessage {
	for _, key := range keys {
		if raw, ok := r[key]; ok {
			var items []json.RawMessage
			if json.Unmarshal(raw, &items) == nil {
				return items
			}
		}
	}
	return nil
}

// restaurantDoc decodes either naming convention into the canonical model.
type restaurantDoc struct {
	models.Restaurant
}

func (d *restaurantDoc) UnmarshalJSON(data []byte) error {
	var raw rawObject
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var cuisines []string
	for _, item := range raw.list("cuisine_types", "cuisineTypes") {
		var s string
		if json.Unmarshal(item, &s) == nil {
			cuisines = append(cuisines, s)
		}
	}

	d.Restaurant = models.Restaurant{
		RestaurantID: raw.str("id", "restaurant_id", "restaurantId"),
		Name:         raw.str("name"),
		NameAr:       raw.str("name_ar", "nameAr"),
		Description:  raw.str("description"),
		Logo:         raw.str("logo", "logo_url", "logoUrl"),
		CuisineTypes: cuisines,
		IsOpen:       raw.boolean("is_open", "isOpen", "open"),
		Rating:       raw.num("rating"),
		DeliveryTime: raw.str("delivery_time", "deliveryTime"),
	}
	return nil
}

type menuItemDoc struct {
	models.MenuItem
}

func (d *menuItemDoc) UnmarshalJSON(data []byte) error {
	var raw rawObject
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	item := models.MenuItem{
		ProductID:    raw.str("id", "product_id", "productId"),
		RestaurantID: raw.str("restaurant_id", "restaurantId"),
		Category:     raw.str("category", "category_name", "categoryName"),
		Name:         raw.str("name"),
		NameAr:       raw.str("name_ar", "nameAr"),
		Description:  raw.str("description"),
		Price:        raw.num("price"),
		ImageURL:     raw.str("image", "image_url", "imageUrl"),
		IsAvailable:  raw.boolean("is_available", "isAvailable", "available"),
	}

	for _, variantRaw := range raw.list("variants") {
		var v rawObject
		if json.Unmarshal(variantRaw, &v) != nil {
			continue
		}
		item.Variants = append(item.Variants, models.MenuItemVariant{
			VariantID: v.str("id", "variant_id", "variantId"),
			Name:      v.str("name"),
			NameAr:    v.str("name_ar", "nameAr"),
			Price:     v.num("price"),
			IsDefault: v.boolean("is_default", "isDefault", "default"),
		})
	}

	for _, addonRaw := range raw.list("addons", "add_ons", "addOns") {
		var a rawObject
		if json.Unmarshal(addonRaw, &a) != nil {
			continue
		}
		item.Addons = append(item.Addons, models.MenuItemAddon{
			AddonID: a.str("id", "addon_id", "addonId"),
			Name:    a.str("name"),
			NameAr:  a.str("name_ar", "nameAr"),
			Price:   a.num("price"),
		})
	}

	d.MenuItem = item
	return nil
}
