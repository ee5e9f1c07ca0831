package services

import (
	"context"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/pricing"
	"golang-storefront-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CartService owns the per-session cart state machine. Every mutation loads
// the current state, applies the change, and persists before returning, so
// the stored cart always reflects the last completed mutation.
type CartService struct {
	storage     repositories.CartStorage
	deliveryFee float64
	logger      *zap.SugaredLogger
}

func NewCartService(storage repositories.CartStorage, deliveryFee float64, logger *zap.SugaredLogger) *CartService {
	return &CartService{
		storage:     storage,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// CartSummary carries the derived money values for a cart snapshot.
type CartSummary struct {
	ItemCount   int     `json:"item_count"`
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	GrandTotal  float64 `json:"grand_total"`
}

type CartResponse struct {
	Cart    models.CartState `json:"cart"`
	Summary CartSummary      `json:"summary"`
}

// Get loads the session's cart. An unreadable stored cart degrades to the
// empty cart; the corrupt record is dropped so the next load is clean.
func (s *CartService) Get(ctx context.Context, sessionID string) (models.CartState, error) {
	state, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCorruptCart) {
			s.logger.Warnw("discarding unreadable cart", "session_id", sessionID)
			if clearErr := s.storage.Clear(ctx, sessionID); clearErr != nil {
				s.logger.Errorw("failed to clear corrupt cart", "session_id", sessionID, "error", clearErr)
			}
			return models.EmptyCart(), nil
		}
		return models.EmptyCart(), err
	}
	return state, nil
}

// AddItem inserts a candidate line built by the configurator. A candidate
// from a different restaurant than the current non-empty cart replaces the
// whole cart first; otherwise the candidate merges into an existing line
// when product, variant, notes, and addon set all match.
func (s *CartService) AddItem(ctx context.Context, sessionID string, candidate models.CartLineItem) (models.CartState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	if !state.IsEmpty() && state.RestaurantID != candidate.RestaurantID {
		state = models.EmptyCart()
	}

	merged := false
	for i := range state.Items {
		if linesMergeable(state.Items[i], candidate) {
			state.Items[i].Quantity += candidate.Quantity
			merged = true
			break
		}
	}

	if !merged {
		candidate.ID = uuid.New().String()
		state.Items = append(state.Items, candidate)
	}

	state.RestaurantID = candidate.RestaurantID
	state.RestaurantName = candidate.RestaurantName
	state.RestaurantNameAr = candidate.RestaurantNameAr

	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// RemoveItem drops the line with the given id. Unknown ids are a no-op.
// Removing the last line resets the entire state: an empty cart has no
// owning restaurant, notes, or promotion.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (models.CartState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	for i := range state.Items {
		if state.Items[i].ID == itemID {
			state.Items = append(state.Items[:i], state.Items[i+1:]...)
			break
		}
	}

	if state.IsEmpty() {
		return s.reset(ctx, sessionID)
	}

	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// UpdateQuantity replaces a line's quantity. Zero or negative delegates to
// RemoveItem.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.CartState, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, itemID)
	}

	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	for i := range state.Items {
		if state.Items[i].ID == itemID {
			state.Items[i].Quantity = quantity
			break
		}
	}

	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// SetOrderNotes sets the order-level instruction string, independent of any
// per-line notes.
func (s *CartService) SetOrderNotes(ctx context.Context, sessionID, notes string) (models.CartState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	state.Notes = notes
	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// ApplyPromo records a promotion and its absolute deduction on the cart.
func (s *CartService) ApplyPromo(ctx context.Context, sessionID, code string, discount float64) (models.CartState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	state.PromoCode = code
	state.Discount = discount
	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// RemovePromo drops any applied promotion.
func (s *CartService) RemovePromo(ctx context.Context, sessionID string) (models.CartState, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return state, err
	}

	state.PromoCode = ""
	state.Discount = 0
	if err := s.storage.Save(ctx, sessionID, state); err != nil {
		return state, errors.Wrap(err, "save cart")
	}
	return state, nil
}

// Clear resets the cart to the full empty state regardless of content.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.reset(ctx, sessionID)
	return err
}

// Summarize computes the derived values for a state snapshot. Pure read,
// safe on an empty cart.
func (s *CartService) Summarize(state models.CartState) CartSummary {
	subtotal := pricing.Subtotal(state)
	fee := s.deliveryFee
	if state.IsEmpty() {
		fee = 0
	}
	return CartSummary{
		ItemCount:   pricing.TotalItemCount(state),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    state.Discount,
		GrandTotal:  pricing.GrandTotal(subtotal, fee, state.Discount),
	}
}

func (s *CartService) reset(ctx context.Context, sessionID string) (models.CartState, error) {
	if err := s.storage.Clear(ctx, sessionID); err != nil {
		return models.EmptyCart(), errors.Wrap(err, "clear cart")
	}
	return models.EmptyCart(), nil
}

// linesMergeable implements the line identity rule: same product, same
// variant (or both absent), same per-line notes, and an identical addon set
// regardless of insertion order.
func linesMergeable(existing, candidate models.CartLineItem) bool {
	if existing.ProductID != candidate.ProductID {
		return false
	}
	if existing.Notes != candidate.Notes {
		return false
	}

	existingVariant := ""
	if existing.Variant != nil {
		existingVariant = existing.Variant.ID
	}
	candidateVariant := ""
	if candidate.Variant != nil {
		candidateVariant = candidate.Variant.ID
	}
	if existingVariant != candidateVariant {
		return false
	}

	return sameAddonSet(existing.Addons, candidate.Addons)
}

func sameAddonSet(a, b []models.SelectedAddon) bool {
	if len(a) != len(b) {
		return false
	}

	quantities := make(map[string]int, len(a))
	for _, addon := range a {
		quantities[addon.ID] += addon.Quantity
	}
	for _, addon := range b {
		quantities[addon.ID] -= addon.Quantity
	}
	for _, diff := range quantities {
		if diff != 0 {
			return false
		}
	}
	return true
}
