package orders

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
	"github.com/Ronei-rcm/rare-toy-admin/internal/metrics"
)

// BackendClient is what the store needs from the commerce backend. Satisfied
// by backend.Client; tests plug in fakes.
type BackendClient interface {
	ListOrders(ctx context.Context, page domain.PageParams) ([]models.Order, error)
	Stats(ctx context.Context) (models.OrderStats, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	BulkAction(ctx context.Context, ids []string, action models.BulkActionType, reason string) (models.BulkResult, error)
}

// Store caches the order snapshot and aggregate stats fetched from the
// backend. The snapshot is replaced wholesale on every successful load, never
// patched field-by-field, and a failed load leaves the previous snapshot
// intact. Concurrent loads are independent; the last one to finish wins.
type Store struct {
	client  BackendClient
	metrics *metrics.ConsoleMetrics
	log     *logrus.Entry

	mu         sync.RWMutex
	orders     []models.Order
	stats      models.OrderStats
	loadedAt   time.Time
	statsAt    time.Time
	pageParams domain.PageParams
}

func NewStore(client BackendClient, m *metrics.ConsoleMetrics) *Store {
	return &Store{
		client:     client,
		metrics:    m,
		log:        logrus.WithField("module", "orders"),
		pageParams: domain.PageParams{Page: 1, PageSize: 100}.Normalize(),
	}
}

// Orders returns a copy of the current snapshot so callers can filter and
// sort without racing a background reload.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Stats returns the cached counters and when they were loaded.
func (s *Store) Stats() (models.OrderStats, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.statsAt
}

// LoadedAt reports when the order snapshot was last replaced.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// LoadOrders fetches a page of orders and swaps the snapshot atomically. On
// failure the previous snapshot stays put and the error goes back to the
// caller for user notification.
func (s *Store) LoadOrders(ctx context.Context, page domain.PageParams) error {
	page = page.Normalize()

	list, err := s.client.ListOrders(ctx, page)
	s.metrics.OrderLoad(err)
	if err != nil {
		s.log.WithError(err).Warn("order load failed, keeping previous snapshot")
		return err
	}

	s.mu.Lock()
	s.orders = list
	s.loadedAt = time.Now()
	s.pageParams = page
	s.mu.Unlock()

	s.log.WithField("count", len(list)).Debug("order snapshot replaced")
	return nil
}

// LoadStats fetches the aggregate counters with the same failure policy.
func (s *Store) LoadStats(ctx context.Context) error {
	stats, err := s.client.Stats(ctx)
	if err != nil {
		s.log.WithError(err).Warn("stats load failed, keeping previous values")
		return err
	}

	s.mu.Lock()
	s.stats = stats
	s.statsAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Refresh reloads orders and stats using the last page params. Stats failures
// do not discard a fresh order snapshot; the first error is reported.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	page := s.pageParams
	s.mu.RUnlock()

	err := s.LoadOrders(ctx, page)
	if statsErr := s.LoadStats(ctx); err == nil {
		err = statsErr
	}
	return err
}

// UpdateOrderStatus PATCHes one order and reloads the snapshot on success.
// There is no optimistic local mutation: the backend's verdict is what the
// console shows next.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if orderID == "" {
		return domain.ValidationError{Field: "order_id", Msg: "must not be empty"}
	}
	if !models.ValidOrderStatus(status) {
		return domain.ValidationError{Field: "status", Msg: "unknown order status"}
	}

	if err := s.client.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.metrics.StatusUpdate()

	if err := s.Refresh(ctx); err != nil {
		// The update itself landed; a failed reload just means a stale view.
		s.log.WithError(err).Warn("reload after status update failed")
	}
	return nil
}

// BulkAction sends one batched request. Partial failure comes back inside the
// BulkResult, not as an error; the caller decides about retrying the failed
// subset.
func (s *Store) BulkAction(ctx context.Context, ids []string, action models.BulkActionType, reason string) (models.BulkResult, error) {
	if len(ids) == 0 {
		return models.BulkResult{}, domain.ValidationError{Field: "ids", Msg: "no orders selected"}
	}
	if !models.ValidBulkAction(action) {
		return models.BulkResult{}, domain.ValidationError{Field: "action", Msg: "unknown bulk action"}
	}

	result, err := s.client.BulkAction(ctx, ids, action, reason)
	if err != nil {
		return models.BulkResult{}, err
	}
	s.metrics.BulkDispatched(string(action), len(result.Failed))
	return result, nil
}

// StartAutoRefresh runs a background reload loop until ctx is cancelled.
// Manual refreshes are never queued behind it; both just call Refresh and the
// last writer wins.
func (s *Store) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.log.WithError(err).Debug("auto refresh failed")
				}
			}
		}
	}()
}
