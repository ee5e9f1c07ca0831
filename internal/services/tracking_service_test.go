package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/upstream"
	"golang-storefront-backend/pkg/messaging"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStepForStatus(t *testing.T) {
	cases := map[string]int{
		models.OrderStatusNew:            1,
		models.OrderStatusAccepted:       1,
		models.OrderStatusPreparing:      2,
		models.OrderStatusReady:          3,
		models.OrderStatusOutForDelivery: 4,
		models.OrderStatusDelivered:      5,
		models.OrderStatusCancelled:      0,
		"weird_future_status":            1,
	}
	for status, step := range cases {
		assert.Equal(t, step, StepForStatus(status), "status %q", status)
	}
}

func TestTimeline(t *testing.T) {
	t.Run("marks steps up to current", func(t *testing.T) {
		timeline := Timeline(models.OrderStatusReady)

		require.Len(t, timeline, 5)
		assert.True(t, timeline[0].Done)
		assert.True(t, timeline[1].Done)
		assert.True(t, timeline[2].Done)
		assert.False(t, timeline[3].Done)
		assert.False(t, timeline[4].Done)
	})

	t.Run("cancelled marks nothing", func(t *testing.T) {
		for _, step := range Timeline(models.OrderStatusCancelled) {
			assert.False(t, step.Done)
		}
	})
}

type fakeReader struct {
	messages []kafka.Message
	err      error
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.messages) == 0 {
		if f.err != nil {
			return kafka.Message{}, f.err
		}
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) Close() error { return nil }

func trackingMessage(t *testing.T, event messaging.TrackingEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(event.OrderNumber), Value: value}
}

func newTrackingHarness(reader MessageReader, readers *int) (*TrackingService, *mockOrderRepo, *mockOrderingClient) {
	ordering := &mockOrderingClient{}
	orderRepo := newMockOrderRepo()
	retry := messaging.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
	svc := NewTrackingService(ordering, orderRepo, func() MessageReader {
		if readers != nil {
			*readers++
		}
		return reader
	}, retry, zap.NewNop().Sugar())
	return svc, orderRepo, ordering
}

func TestTrackingFollow(t *testing.T) {
	t.Run("delivers matching updates and archives them", func(t *testing.T) {
		reader := &fakeReader{
			messages: []kafka.Message{
				trackingMessage(t, messaging.TrackingEvent{OrderNumber: "ORD-1", Status: models.OrderStatusPreparing}),
				trackingMessage(t, messaging.TrackingEvent{OrderNumber: "ORD-2", Status: models.OrderStatusReady}),
				trackingMessage(t, messaging.TrackingEvent{OrderNumber: "ORD-1", Status: models.OrderStatusOutForDelivery}),
			},
		}
		svc, orderRepo, _ := newTrackingHarness(reader, nil)
		orderRepo.records["ORD-1"] = &models.OrderRecord{OrderNumber: "ORD-1", Status: models.OrderStatusNew}

		ctx, cancel := context.WithCancel(context.Background())
		var updates []TrackingUpdate
		go func() {
			// Stop once the feed runs dry and blocks on the context.
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		svc.Follow(ctx, "ORD-1", func(update TrackingUpdate) {
			updates = append(updates, update)
		})

		require.Len(t, updates, 2)
		assert.Equal(t, models.OrderStatusPreparing, updates[0].Status)
		assert.Equal(t, 2, updates[0].Step)
		assert.Equal(t, models.OrderStatusOutForDelivery, updates[1].Status)
		assert.Equal(t, 4, updates[1].Step)

		assert.Equal(t, models.OrderStatusOutForDelivery, orderRepo.records["ORD-1"].Status)
	})

	t.Run("skips malformed events", func(t *testing.T) {
		reader := &fakeReader{
			messages: []kafka.Message{
				{Value: []byte("not json")},
				trackingMessage(t, messaging.TrackingEvent{OrderNumber: "ORD-1", Status: models.OrderStatusDelivered}),
			},
		}
		svc, _, _ := newTrackingHarness(reader, nil)

		ctx, cancel := context.WithCancel(context.Background())
		var updates []TrackingUpdate
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		svc.Follow(ctx, "ORD-1", func(update TrackingUpdate) {
			updates = append(updates, update)
		})

		require.Len(t, updates, 1)
		assert.Equal(t, models.OrderStatusDelivered, updates[0].Status)
	})

	t.Run("reconnects until the retry budget is exhausted", func(t *testing.T) {
		reader := &fakeReader{err: errors.New("broker gone")}
		readers := 0
		svc, _, _ := newTrackingHarness(reader, &readers)

		done := make(chan struct{})
		go func() {
			svc.Follow(context.Background(), "ORD-1", func(TrackingUpdate) {})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Follow did not stop after exhausting retries")
		}

		// Initial connection plus MaxAttempts reconnects.
		assert.Equal(t, 3, readers)
	})
}

func TestGetOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the upstream view and refreshes the archive", func(t *testing.T) {
		svc, orderRepo, ordering := newTrackingHarness(&fakeReader{}, nil)
		ordering.statusInfo = &upstream.OrderStatusInfo{
			OrderNumber: "ORD-1",
			Status:      models.OrderStatusPreparing,
			DeliveryFee: 10.0,
			TotalAmount: 42.0,
		}
		orderRepo.records["ORD-1"] = &models.OrderRecord{OrderNumber: "ORD-1", Status: models.OrderStatusNew}

		view, err := svc.GetOrderStatus(ctx, "ORD-1")

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPreparing, view.Status)
		assert.Equal(t, 2, view.Step)
		assert.False(t, view.Cancelled)
		assert.Equal(t, 42.0, view.TotalAmount)
		assert.Equal(t, models.OrderStatusPreparing, orderRepo.records["ORD-1"].Status)
	})

	t.Run("falls back to the archive when upstream is down", func(t *testing.T) {
		svc, orderRepo, ordering := newTrackingHarness(&fakeReader{}, nil)
		ordering.statusErr = errors.New("connection refused")
		orderRepo.records["ORD-1"] = &models.OrderRecord{
			OrderNumber: "ORD-1",
			Status:      models.OrderStatusOutForDelivery,
			TotalAmount: 42.0,
		}

		view, err := svc.GetOrderStatus(ctx, "ORD-1")

		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusOutForDelivery, view.Status)
		assert.Equal(t, 4, view.Step)
	})

	t.Run("unknown everywhere is an error", func(t *testing.T) {
		svc, _, ordering := newTrackingHarness(&fakeReader{}, nil)
		ordering.statusErr = errors.New("connection refused")

		_, err := svc.GetOrderStatus(ctx, "ORD-404")
		assert.Error(t, err)
	})
}
