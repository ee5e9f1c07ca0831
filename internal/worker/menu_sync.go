// Package worker holds the background jobs that run next to the HTTP server.
package worker

import (
	"context"
	"time"

	"golang-storefront-backend/internal/repositories"
	"golang-storefront-backend/internal/upstream"

	"go.uber.org/zap"
)

// MenuSyncWorker keeps the MongoDB catalog snapshot current by pulling
// restaurants and their menus from the ordering platform on an interval.
// The storefront always reads the snapshot, so a platform outage degrades
// to stale menus instead of empty pages.
type MenuSyncWorker struct {
	ordering upstream.OrderingClient
	catalog  repositories.CatalogRepository
	interval time.Duration
	logger   *zap.SugaredLogger
}

func NewMenuSyncWorker(
	ordering upstream.OrderingClient,
	catalog repositories.CatalogRepository,
	interval time.Duration,
	logger *zap.SugaredLogger,
) *MenuSyncWorker {
	return &MenuSyncWorker{
		ordering: ordering,
		catalog:  catalog,
		interval: interval,
		logger:   logger,
	}
}

// Run syncs once immediately, then on every tick until the context ends.
func (w *MenuSyncWorker) Run(ctx context.Context) {
	w.logger.Infow("menu sync worker started", "interval", w.interval)

	if err := w.SyncOnce(ctx); err != nil {
		w.logger.Errorw("initial menu sync failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("menu sync worker stopped")
			return
		case <-ticker.C:
			if err := w.SyncOnce(ctx); err != nil {
				w.logger.Errorw("menu sync failed", "error", err)
			}
		}
	}
}

// SyncOnce pulls the full restaurant list and every menu. A failure on one
// restaurant's menu is logged and skipped so the rest still sync.
func (w *MenuSyncWorker) SyncOnce(ctx context.Context) error {
	restaurants, err := w.ordering.ListRestaurants(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	synced := 0
	for i := range restaurants {
		restaurant := restaurants[i]
		restaurant.SyncedAt = now
		if err := w.catalog.UpsertRestaurant(ctx, &restaurant); err != nil {
			w.logger.Errorw("failed to upsert restaurant", "restaurant_id", restaurant.RestaurantID, "error", err)
			continue
		}

		items, err := w.ordering.FetchMenu(ctx, restaurant.RestaurantID)
		if err != nil {
			w.logger.Errorw("failed to fetch menu", "restaurant_id", restaurant.RestaurantID, "error", err)
			continue
		}

		for j := range items {
			item := items[j]
			item.SyncedAt = now
			if err := w.catalog.UpsertMenuItem(ctx, &item); err != nil {
				w.logger.Errorw("failed to upsert menu item", "product_id", item.ProductID, "error", err)
			}
		}
		synced++
	}

	w.logger.Infow("menu sync completed", "restaurants", synced, "of", len(restaurants))
	return nil
}
