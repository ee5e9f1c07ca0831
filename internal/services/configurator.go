package services

import (
	"golang-storefront-backend/internal/models"

	"github.com/pkg/errors"
)

var (
	ErrItemUnavailable = errors.New("item is not available")
	ErrVariantRequired = errors.New("a variant must be selected")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrUnknownAddon    = errors.New("unknown addon")
)

// Configurator builds an AddItem candidate from a catalog item plus user
// selections. Opening it for a different item resets every selection, so
// nothing leaks between items.
type Configurator struct {
	item       models.MenuItem
	restaurant models.Restaurant
	variantID  string
	selected   map[string]bool
	addonOrder []string
	quantity   int
	notes      string
}

// NewConfigurator opens the configurator on a catalog item. When the item
// defines variants, the one flagged default (else the first) is pre-selected.
func NewConfigurator(item models.MenuItem, restaurant models.Restaurant) *Configurator {
	c := &Configurator{}
	c.Open(item, restaurant)
	return c
}

// Open switches the configurator to an item. A different item than the
// current one discards all prior selections; the same item keeps them but
// drops any selection the refreshed catalog data no longer defines.
func (c *Configurator) Open(item models.MenuItem, restaurant models.Restaurant) {
	if c.item.ProductID == item.ProductID && c.selected != nil {
		c.item = item
		c.restaurant = restaurant

		if c.variantID != "" && item.VariantByID(c.variantID) == nil {
			c.variantID = ""
			if v := item.DefaultVariant(); v != nil {
				c.variantID = v.VariantID
			}
		}

		kept := c.addonOrder[:0]
		for _, addonID := range c.addonOrder {
			if item.AddonByID(addonID) != nil {
				kept = append(kept, addonID)
			} else {
				delete(c.selected, addonID)
			}
		}
		c.addonOrder = kept
		return
	}

	c.item = item
	c.restaurant = restaurant
	c.variantID = ""
	c.selected = make(map[string]bool)
	c.addonOrder = nil
	c.quantity = 1
	c.notes = ""

	if v := item.DefaultVariant(); v != nil {
		c.variantID = v.VariantID
	}
}

func (c *Configurator) SelectVariant(variantID string) error {
	if c.item.VariantByID(variantID) == nil {
		return ErrUnknownVariant
	}
	c.variantID = variantID
	return nil
}

// ToggleAddon selects an addon, or deselects it when already selected. Each
// selected addon carries an implicit quantity of 1.
func (c *Configurator) ToggleAddon(addonID string) error {
	if c.item.AddonByID(addonID) == nil {
		return ErrUnknownAddon
	}

	if c.selected[addonID] {
		delete(c.selected, addonID)
		for i, id := range c.addonOrder {
			if id == addonID {
				c.addonOrder = append(c.addonOrder[:i], c.addonOrder[i+1:]...)
				break
			}
		}
		return nil
	}

	c.selected[addonID] = true
	c.addonOrder = append(c.addonOrder, addonID)
	return nil
}

// SetQuantity clamps at a floor of 1; the stepper can never go below it.
func (c *Configurator) SetQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.quantity = quantity
}

func (c *Configurator) SetNotes(notes string) {
	c.notes = notes
}

func (c *Configurator) Quantity() int {
	return c.quantity
}

func (c *Configurator) SelectedVariantID() string {
	return c.variantID
}

func (c *Configurator) IsAddonSelected(addonID string) bool {
	return c.selected[addonID]
}

// Build produces the cart line candidate. It is blocked while the item is
// unavailable or a required variant is missing.
func (c *Configurator) Build() (models.CartLineItem, error) {
	if !c.item.IsAvailable {
		return models.CartLineItem{}, ErrItemUnavailable
	}
	if len(c.item.Variants) > 0 && c.variantID == "" {
		return models.CartLineItem{}, ErrVariantRequired
	}

	line := models.CartLineItem{
		ProductID:        c.item.ProductID,
		Name:             c.item.Name,
		NameAr:           c.item.NameAr,
		Description:      c.item.Description,
		ImageURL:         c.item.ImageURL,
		BasePrice:        c.item.Price,
		Quantity:         c.quantity,
		Notes:            c.notes,
		RestaurantID:     c.restaurant.RestaurantID,
		RestaurantName:   c.restaurant.Name,
		RestaurantNameAr: c.restaurant.NameAr,
	}

	if c.variantID != "" {
		v := c.item.VariantByID(c.variantID)
		if v == nil {
			return models.CartLineItem{}, ErrUnknownVariant
		}
		line.Variant = &models.SelectedVariant{
			ID:     v.VariantID,
			Name:   v.Name,
			NameAr: v.NameAr,
			Price:  v.Price,
		}
	}

	for _, addonID := range c.addonOrder {
		a := c.item.AddonByID(addonID)
		line.Addons = append(line.Addons, models.SelectedAddon{
			ID:       a.AddonID,
			Name:     a.Name,
			NameAr:   a.NameAr,
			Price:    a.Price,
			Quantity: 1,
		})
	}

	return line, nil
}
