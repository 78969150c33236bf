package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

// BulkState is the coordinator's dispatch state. A bulk action walks
// Idle -> Confirming -> InFlight -> Completed or Failed; while InFlight the
// selection is frozen and a second dispatch is rejected outright.
type BulkState string

const (
	BulkIdle       BulkState = "idle"
	BulkConfirming BulkState = "confirming"
	BulkInFlight   BulkState = "in_flight"
	BulkCompleted  BulkState = "completed"
	BulkFailed     BulkState = "failed"
)

// Coordinator tracks the set of selected order ids, independent of whatever
// filter is currently applied, and dispatches batched actions against them.
// One coordinator serves one console session.
type Coordinator struct {
	store *Store

	mu            sync.Mutex
	selected      map[string]struct{}
	state         BulkState
	pendingAction models.BulkActionType
	pendingReason string
	lastResult    *models.BulkResult
}

func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{
		store:    store,
		selected: make(map[string]struct{}),
		state:    BulkIdle,
	}
}

// Toggle flips membership of one order id. Rejected while a dispatch is in
// flight so the batch being sent cannot change under it.
func (c *Coordinator) Toggle(orderID string) error {
	if orderID == "" {
		return domain.ValidationError{Field: "order_id", Msg: "must not be empty"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == BulkInFlight {
		return domain.ConcurrentActionError{}
	}
	if _, ok := c.selected[orderID]; ok {
		delete(c.selected, orderID)
	} else {
		c.selected[orderID] = struct{}{}
	}
	return nil
}

// SelectAllVisible replaces the selection with exactly the ids of the
// currently visible (filtered) list. Rows hidden by the active filter are
// never silently included, even if they were selected before.
func (c *Coordinator) SelectAllVisible(visible []models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == BulkInFlight {
		return domain.ConcurrentActionError{}
	}

	c.selected = make(map[string]struct{}, len(visible))
	for _, o := range visible {
		c.selected[o.ID] = struct{}{}
	}
	return nil
}

// Clear empties the selection and resets the dispatch state.
func (c *Coordinator) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == BulkInFlight {
		return domain.ConcurrentActionError{}
	}
	c.selected = make(map[string]struct{})
	c.state = BulkIdle
	c.pendingAction = ""
	c.pendingReason = ""
	return nil
}

// Selected returns the selected ids in stable order.
func (c *Coordinator) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Coordinator) State() BulkState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the outcome of the most recent dispatch, if any.
func (c *Coordinator) LastResult() *models.BulkResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastResult == nil {
		return nil
	}
	cp := *c.lastResult
	return &cp
}

// Prepare stages a bulk action for explicit confirmation. No mass mutation
// ever goes out without this step.
func (c *Coordinator) Prepare(action models.BulkActionType, reason string) (int, error) {
	if !models.ValidBulkAction(action) {
		return 0, domain.ValidationError{Field: "action", Msg: "unknown bulk action"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == BulkInFlight {
		return 0, domain.ConcurrentActionError{Action: string(action)}
	}
	if len(c.selected) == 0 {
		return 0, domain.ValidationError{Field: "selection", Msg: "no orders selected"}
	}

	c.state = BulkConfirming
	c.pendingAction = action
	c.pendingReason = reason
	return len(c.selected), nil
}

// Cancel abandons a staged action and clears the selection.
func (c *Coordinator) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == BulkInFlight {
		return domain.ConcurrentActionError{}
	}
	c.selected = make(map[string]struct{})
	c.state = BulkIdle
	c.pendingAction = ""
	c.pendingReason = ""
	return nil
}

// Confirm dispatches the staged action. A second Confirm while one is in
// flight fails fast with ConcurrentActionError and sends nothing. Whatever
// the outcome, the selection is cleared and the store reloaded exactly once
// so the console shows the backend's authoritative state.
func (c *Coordinator) Confirm(ctx context.Context) (models.BulkResult, error) {
	c.mu.Lock()
	if c.state == BulkInFlight {
		action := c.pendingAction
		c.mu.Unlock()
		return models.BulkResult{}, domain.ConcurrentActionError{Action: string(action)}
	}
	if c.state != BulkConfirming {
		c.mu.Unlock()
		return models.BulkResult{}, domain.ValidationError{Field: "bulk", Msg: "no bulk action staged for confirmation"}
	}

	ids := make([]string, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	action := c.pendingAction
	reason := c.pendingReason
	c.state = BulkInFlight
	c.mu.Unlock()

	result, err := c.store.BulkAction(ctx, ids, action, reason)

	c.mu.Lock()
	c.selected = make(map[string]struct{})
	c.pendingAction = ""
	c.pendingReason = ""
	if err != nil || result.AllFailed() {
		c.state = BulkFailed
	} else {
		c.state = BulkCompleted
	}
	if err == nil {
		cp := result
		c.lastResult = &cp
	}
	c.mu.Unlock()

	// Reload once regardless of partial failure; there is no client-side
	// optimistic merge to clean up. A failed reload only leaves a stale view
	// and is logged by the store.
	_ = c.store.Refresh(ctx)

	return result, err
}
