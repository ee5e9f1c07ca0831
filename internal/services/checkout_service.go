package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/repositories"
	"golang-storefront-backend/internal/upstream"
	"golang-storefront-backend/pkg/messaging"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Checkout states. A submission attempt moves editing → validating →
// submitting and ends in success or failed; validation failures fall back
// to editing with field errors attached.
const (
	CheckoutStateEditing    = "editing"
	CheckoutStateSubmitting = "submitting"
	CheckoutStateSuccess    = "success"
	CheckoutStateFailed     = "failed"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// Loose local/international phone shape: optional +, 7 to 15 digits with
// spaces or dashes allowed.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,14}$`)

// EventPublisher is the slice of the Kafka producer checkout needs.
type EventPublisher interface {
	SendMessage(ctx context.Context, topic, key string, value interface{}) error
}

// SubmissionLock prevents duplicate submissions for one session while a
// request to the ordering platform is outstanding.
type SubmissionLock interface {
	TryLock(ctx context.Context, sessionID string) (bool, error)
	Unlock(ctx context.Context, sessionID string) error
}

type CheckoutService struct {
	carts      *CartService
	ordering   upstream.OrderingClient
	orderRepo  repositories.OrderRecordRepository
	publisher  EventPublisher
	lock       SubmissionLock
	orderTopic string
	logger     *zap.SugaredLogger
}

func NewCheckoutService(
	carts *CartService,
	ordering upstream.OrderingClient,
	orderRepo repositories.OrderRecordRepository,
	publisher EventPublisher,
	lock SubmissionLock,
	orderTopic string,
	logger *zap.SugaredLogger,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		ordering:   ordering,
		orderRepo:  orderRepo,
		publisher:  publisher,
		lock:       lock,
		orderTopic: orderTopic,
		logger:     logger,
	}
}

// CheckoutRequest carries the contact fields and delivery choices from the
// checkout form. A nil ScheduledAt means "as soon as possible".
type CheckoutRequest struct {
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	PaymentMethod string     `json:"payment_method"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Locale        string     `json:"-"`
}

// CheckoutResult reports where the state machine landed.
type CheckoutResult struct {
	State       string            `json:"state"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Message     string            `json:"message,omitempty"`
	OrderNumber string            `json:"order_number,omitempty"`
}

// Validate checks the contact fields without touching the network. A non-nil
// result means the form stays in editing with per-field messages.
func (s *CheckoutService) Validate(req *CheckoutRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = localize(req.Locale, "name_required")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		fieldErrors["phone"] = localize(req.Locale, "phone_required")
	} else if !phonePattern.MatchString(phone) {
		fieldErrors["phone"] = localize(req.Locale, "phone_invalid")
	}

	if strings.TrimSpace(req.Address) == "" {
		fieldErrors["address"] = localize(req.Locale, "address_required")
	}

	// Card stays visible in clients but is not submittable yet.
	if req.PaymentMethod != models.PaymentMethodCash {
		fieldErrors["payment_method"] = localize(req.Locale, "payment_method_invalid")
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// Submit runs the whole state machine for one attempt. The cart is cleared
// only on success; any failure leaves it untouched so the user can retry.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, req *CheckoutRequest) (*CheckoutResult, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if fieldErrors := s.Validate(req); fieldErrors != nil {
		return &CheckoutResult{
			State:       CheckoutStateEditing,
			FieldErrors: fieldErrors,
		}, nil
	}

	acquired, err := s.lock.TryLock(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "acquire submission lock")
	}
	if !acquired {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.lock.Unlock(context.Background(), sessionID); err != nil {
			s.logger.Errorw("failed to release submission lock", "session_id", sessionID, "error", err)
		}
	}()

	payload := buildOrderPayload(state, req)

	confirmation, err := s.ordering.CreateOrder(ctx, payload)
	if err != nil {
		s.logger.Warnw("order submission failed", "session_id", sessionID, "error", err)
		return &CheckoutResult{
			State:   CheckoutStateFailed,
			Message: localize(req.Locale, "submit_failed"),
		}, nil
	}

	summary := s.carts.Summarize(state)

	record := &models.OrderRecord{
		OrderNumber:      confirmation.OrderNumber,
		SessionID:        sessionID,
		RestaurantID:     state.RestaurantID,
		RestaurantName:   state.RestaurantName,
		RestaurantNameAr: state.RestaurantNameAr,
		Items:            models.JSONB{"lines": state.Items},
		Subtotal:         summary.Subtotal,
		DeliveryFee:      summary.DeliveryFee,
		Discount:         summary.Discount,
		TotalAmount:      summary.GrandTotal,
		PromoCode:        state.PromoCode,
		Status:           models.OrderStatusNew,
		CustomerName:     req.Name,
		CustomerPhone:    req.Phone,
		CustomerAddress:  req.Address,
		Notes:            state.Notes,
		PaymentMethod:    req.PaymentMethod,
		ScheduledAt:      req.ScheduledAt,
	}
	if err := s.orderRepo.Create(ctx, record); err != nil {
		// The upstream order exists; losing the local archive row must not
		// fail the checkout.
		s.logger.Errorw("failed to archive order", "order_number", confirmation.OrderNumber, "error", err)
	}

	event := messaging.OrderPlacedEvent{
		OrderNumber:  confirmation.OrderNumber,
		SessionID:    sessionID,
		RestaurantID: state.RestaurantID,
		TotalAmount:  summary.GrandTotal,
		PlacedAt:     time.Now().Format(time.RFC3339),
	}
	if err := s.publisher.SendMessage(ctx, s.orderTopic, confirmation.OrderNumber, event); err != nil {
		s.logger.Warnw("failed to publish order event", "order_number", confirmation.OrderNumber, "error", err)
	}

	// A successful submission always clears the cart before control moves
	// to the order status view.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, errors.Wrap(err, "clear cart after submission")
	}

	return &CheckoutResult{
		State:       CheckoutStateSuccess,
		OrderNumber: confirmation.OrderNumber,
	}, nil
}

func buildOrderPayload(state models.CartState, req *CheckoutRequest) *upstream.OrderPayload {
	payload := &upstream.OrderPayload{
		RestaurantID: state.RestaurantID,
		Customer: upstream.CustomerInfo{
			Name:    strings.TrimSpace(req.Name),
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
		},
		Notes:         state.Notes,
		PaymentMethod: req.PaymentMethod,
		ScheduledAt:   req.ScheduledAt,
		PromoCode:     state.PromoCode,
	}

	for _, line := range state.Items {
		unitPrice := line.BasePrice
		if line.Variant != nil {
			unitPrice = line.Variant.Price
		}
		item := upstream.OrderPayloadItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: unitPrice,
			Quantity:  line.Quantity,
			Notes:     line.Notes,
		}
		if line.Variant != nil {
			price := line.Variant.Price
			item.VariantID = line.Variant.ID
			item.VariantName = line.Variant.Name
			item.VariantPrice = &price
		}
		for _, addon := range line.Addons {
			item.Addons = append(item.Addons, upstream.OrderPayloadAddon{
				AddonID:  addon.ID,
				Name:     addon.Name,
				Price:    addon.Price,
				Quantity: addon.Quantity,
			})
		}
		payload.Items = append(payload.Items, item)
	}

	return payload
}

var checkoutMessages = map[string]map[string]string{
	"en": {
		"name_required":          "Name is required",
		"phone_required":         "Phone number is required",
		"phone_invalid":          "Phone number is not valid",
		"address_required":       "Delivery address is required",
		"payment_method_invalid": "Only cash payment is currently available",
		"submit_failed":          "We could not place your order. Please try again.",
	},
	"ar": {
		"name_required":          "الاسم مطلوب",
		"phone_required":         "رقم الهاتف مطلوب",
		"phone_invalid":          "رقم الهاتف غير صالح",
		"address_required":       "عنوان التوصيل مطلوب",
		"payment_method_invalid": "الدفع نقدًا فقط متاح حاليًا",
		"submit_failed":          "تعذر إرسال طلبك. الرجاء المحاولة مرة أخرى.",
	},
}

func localize(locale, key string) string {
	if messages, ok := checkoutMessages[locale]; ok {
		if message, ok := messages[key]; ok {
			return message
		}
	}
	return checkoutMessages["en"][key]
}
