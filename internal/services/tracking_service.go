package services

import (
	"context"
	"encoding/json"
	"time"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/repositories"
	"golang-storefront-backend/internal/upstream"
	"golang-storefront-backend/pkg/messaging"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The order progress timeline is static configuration: each status maps to
// a step in the forward progression. Cancelled sits outside the progression
// at step 0; statuses missing from the map default to step 1.
var statusSteps = map[string]int{
	models.OrderStatusNew:            1,
	models.OrderStatusAccepted:       1,
	models.OrderStatusPreparing:      2,
	models.OrderStatusReady:          3,
	models.OrderStatusOutForDelivery: 4,
	models.OrderStatusDelivered:      5,
	models.OrderStatusCancelled:      0,
}

var timelineLabels = []string{"received", "preparing", "ready", "out_for_delivery", "delivered"}

// StepForStatus returns the timeline step for an upstream status.
func StepForStatus(status string) int {
	if step, ok := statusSteps[status]; ok {
		return step
	}
	return 1
}

// TimelineStep is one entry of the rendered progress timeline.
type TimelineStep struct {
	Key  string `json:"key"`
	Step int    `json:"step"`
	Done bool   `json:"done"`
}

// Timeline marks every step up to and including the current one as done.
func Timeline(status string) []TimelineStep {
	current := StepForStatus(status)
	steps := make([]TimelineStep, 0, len(timelineLabels))
	for i, key := range timelineLabels {
		steps = append(steps, TimelineStep{
			Key:  key,
			Step: i + 1,
			Done: i+1 <= current,
		})
	}
	return steps
}

// OrderStatusView is what the order status page renders.
type OrderStatusView struct {
	OrderNumber string         `json:"order_number"`
	Status      string         `json:"status"`
	Step        int            `json:"step"`
	Cancelled   bool           `json:"cancelled"`
	Timeline    []TimelineStep `json:"timeline"`
	DeliveryFee float64        `json:"delivery_fee,omitempty"`
	TotalAmount float64        `json:"total_amount,omitempty"`
}

// MessageReader is the slice of a kafka reader the tracking loop needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ReaderFactory builds a fresh reader for each (re)connection attempt.
type ReaderFactory func() MessageReader

// TrackingUpdate is delivered to subscribers on every status change.
type TrackingUpdate struct {
	OrderNumber string   `json:"order_number"`
	Status      string   `json:"status"`
	Step        int      `json:"step"`
	CourierLat  *float64 `json:"courier_lat,omitempty"`
	CourierLng  *float64 `json:"courier_lng,omitempty"`
}

// TrackingService follows submitted orders: point-in-time status queries
// against the ordering platform (with the local archive as fallback) and a
// live subscription on the tracking feed.
type TrackingService struct {
	ordering  upstream.OrderingClient
	orderRepo repositories.OrderRecordRepository
	newReader ReaderFactory
	retry     messaging.RetryPolicy
	logger    *zap.SugaredLogger
}

func NewTrackingService(
	ordering upstream.OrderingClient,
	orderRepo repositories.OrderRecordRepository,
	newReader ReaderFactory,
	retry messaging.RetryPolicy,
	logger *zap.SugaredLogger,
) *TrackingService {
	return &TrackingService{
		ordering:  ordering,
		orderRepo: orderRepo,
		newReader: newReader,
		retry:     retry,
		logger:    logger,
	}
}

// GetOrderStatus queries the ordering platform, falling back to the local
// archive when the platform is unreachable, and keeps the archive current.
func (s *TrackingService) GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusView, error) {
	info, err := s.ordering.GetOrderStatus(ctx, orderNumber)
	if err != nil {
		s.logger.Warnw("status query failed, serving archived status", "order_number", orderNumber, "error", err)
		record, archiveErr := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
		if archiveErr != nil {
			return nil, err
		}
		return s.buildView(record.OrderNumber, record.Status, record.DeliveryFee, record.TotalAmount), nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderNumber, info.Status); err != nil {
		s.logger.Warnw("failed to update archived status", "order_number", orderNumber, "error", err)
	}

	return s.buildView(info.OrderNumber, info.Status, info.DeliveryFee, info.TotalAmount), nil
}

func (s *TrackingService) buildView(orderNumber, status string, deliveryFee, total float64) *OrderStatusView {
	return &OrderStatusView{
		OrderNumber: orderNumber,
		Status:      status,
		Step:        StepForStatus(status),
		Cancelled:   status == models.OrderStatusCancelled,
		Timeline:    Timeline(status),
		DeliveryFee: deliveryFee,
		TotalAmount: total,
	}
}

// Follow consumes the tracking feed for one order until the context is
// cancelled, delivering matching updates through onUpdate. A dropped
// connection is re-established per the retry policy; when the budget is
// exhausted Follow returns and live updates simply stop.
func (s *TrackingService) Follow(ctx context.Context, orderNumber string, onUpdate func(TrackingUpdate)) {
	attempt := 0

	for {
		if ctx.Err() != nil {
			return
		}

		reader := s.newReader()
		err := s.consume(ctx, reader, orderNumber, onUpdate, &attempt)
		reader.Close()

		if ctx.Err() != nil {
			return
		}

		if err != nil {
			if s.retry.Exhausted(attempt) {
				s.logger.Warnw("tracking feed retries exhausted", "order_number", orderNumber, "attempts", attempt)
				return
			}

			delay := s.retry.Delay(attempt)
			attempt++
			s.logger.Infow("tracking feed dropped, reconnecting", "order_number", orderNumber, "attempt", attempt, "delay", delay)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
}

func (s *TrackingService) consume(ctx context.Context, reader MessageReader, orderNumber string, onUpdate func(TrackingUpdate), attempt *int) error {
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		// Any successfully read message proves the connection is healthy.
		*attempt = 0

		var event messaging.TrackingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			s.logger.Warnw("skipping malformed tracking event", "error", err)
			continue
		}
		if event.OrderNumber != orderNumber {
			continue
		}

		if err := s.orderRepo.UpdateStatus(ctx, event.OrderNumber, event.Status); err != nil {
			s.logger.Warnw("failed to update archived status", "order_number", event.OrderNumber, "error", err)
		}

		onUpdate(TrackingUpdate{
			OrderNumber: event.OrderNumber,
			Status:      event.Status,
			Step:        StepForStatus(event.Status),
			CourierLat:  event.CourierLat,
			CourierLng:  event.CourierLng,
		})
	}
}

// GetSessionOrders lists the session's archived orders, newest first.
func (s *TrackingService) GetSessionOrders(ctx context.Context, sessionID string, page, limit int) ([]models.OrderRecord, error) {
	offset := (page - 1) * limit
	return s.orderRepo.GetBySessionID(ctx, sessionID, limit, offset)
}
