package orders

import (
	"context"
	"testing"
	"time"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

func TestCoordinatorToggle(t *testing.T) {
	coord := NewCoordinator(newTestStore(&fakeBackend{}))

	if err := coord.Toggle("A"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := coord.Toggle("B"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if got := coord.Selected(); len(got) != 2 {
		t.Fatalf("expected 2 selected, got %v", got)
	}

	if err := coord.Toggle("A"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if got := coord.Selected(); len(got) != 1 || got[0] != "B" {
		t.Fatalf("expected only B selected, got %v", got)
	}
}

func TestSelectAllVisibleNeverIncludesHiddenRows(t *testing.T) {
	coord := NewCoordinator(newTestStore(&fakeBackend{}))

	// X is selected first, then a filter hides it.
	if err := coord.Toggle("X"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	all := fixtureOrders() // A, B, C; no X
	criteria := models.DefaultCriteria()
	criteria.StatusFilter = string(models.OrderStatusPending)
	visible := ApplyFilters(all, criteria, time.Now())

	if err := coord.SelectAllVisible(visible); err != nil {
		t.Fatalf("select all failed: %v", err)
	}

	selected := coord.Selected()
	if len(selected) != 2 || selected[0] != "A" || selected[1] != "C" {
		t.Fatalf("expected exactly the visible pending orders, got %v", selected)
	}
	for _, id := range selected {
		if id == "X" {
			t.Fatalf("hidden row X leaked into the selection")
		}
	}
}

func TestBulkActionRequiresConfirmation(t *testing.T) {
	coord := NewCoordinator(newTestStore(&fakeBackend{}))

	if _, err := coord.Confirm(context.Background()); !domain.IsValidation(err) {
		t.Fatalf("confirm without prepare should fail validation, got %v", err)
	}
}

func TestBulkPrepareRequiresSelection(t *testing.T) {
	coord := NewCoordinator(newTestStore(&fakeBackend{}))

	if _, err := coord.Prepare(models.BulkActionShip, ""); !domain.IsValidation(err) {
		t.Fatalf("prepare on empty selection should fail validation, got %v", err)
	}
}

func TestBulkPartialFailureClearsSelectionAndReloadsOnce(t *testing.T) {
	fake := &fakeBackend{
		orders: fixtureOrders(),
		bulkResult: models.BulkResult{
			Succeeded: []string{"A"},
			Failed:    []models.BulkFailure{{ID: "B", Reason: "already delivered"}},
		},
	}
	coord := NewCoordinator(newTestStore(fake))

	_ = coord.Toggle("A")
	_ = coord.Toggle("B")
	if _, err := coord.Prepare(models.BulkActionCancel, "restock"); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	result, err := coord.Confirm(context.Background())
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if len(result.Succeeded) != 1 || result.Succeeded[0] != "A" {
		t.Fatalf("unexpected succeeded set: %v", result.Succeeded)
	}
	if len(result.Failed) != 1 || result.Failed[0].ID != "B" {
		t.Fatalf("unexpected failed set: %v", result.Failed)
	}

	if got := coord.Selected(); len(got) != 0 {
		t.Fatalf("selection must be cleared after completion, got %v", got)
	}
	if coord.State() != BulkCompleted {
		t.Fatalf("expected completed state, got %s", coord.State())
	}

	list, stats, _, bulk := fake.calls()
	if bulk != 1 {
		t.Fatalf("expected exactly 1 bulk request, got %d", bulk)
	}
	if list != 1 || stats != 1 {
		t.Fatalf("expected exactly one reload after the bulk action, got list=%d stats=%d", list, stats)
	}
}

func TestBulkTransportFailureEndsInFailedState(t *testing.T) {
	fake := &fakeBackend{bulkErr: domain.TimeoutError{Op: "bulk"}}
	coord := NewCoordinator(newTestStore(fake))

	_ = coord.Toggle("A")
	if _, err := coord.Prepare(models.BulkActionNotify, ""); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	_, err := coord.Confirm(context.Background())
	if !domain.IsTimeout(err) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if coord.State() != BulkFailed {
		t.Fatalf("expected failed state, got %s", coord.State())
	}
	if got := coord.Selected(); len(got) != 0 {
		t.Fatalf("selection must be cleared after a fully failed action, got %v", got)
	}
}

func TestConcurrentDispatchFailsFastWithoutSecondRequest(t *testing.T) {
	fake := &fakeBackend{
		bulkResult:  models.BulkResult{Succeeded: []string{"A"}},
		bulkStarted: make(chan struct{}),
		bulkRelease: make(chan struct{}),
	}
	coord := NewCoordinator(newTestStore(fake))

	_ = coord.Toggle("A")
	if _, err := coord.Prepare(models.BulkActionConfirm, ""); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := coord.Confirm(context.Background())
		done <- err
	}()

	// Wait until the first dispatch is on the wire.
	select {
	case <-fake.bulkStarted:
	case <-time.After(2 * time.Second):
		t.Fatalf("first dispatch never started")
	}

	if _, err := coord.Confirm(context.Background()); !domain.IsConcurrentAction(err) {
		t.Fatalf("expected ConcurrentActionError while in flight, got %v", err)
	}
	if err := coord.Toggle("B"); !domain.IsConcurrentAction(err) {
		t.Fatalf("selection changes must be frozen while in flight, got %v", err)
	}

	close(fake.bulkRelease)
	if err := <-done; err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}

	if _, _, _, bulk := fake.calls(); bulk != 1 {
		t.Fatalf("second confirm must not send a request, got %d bulk calls", bulk)
	}
}

func TestCancelClearsSelection(t *testing.T) {
	coord := NewCoordinator(newTestStore(&fakeBackend{}))

	_ = coord.Toggle("A")
	if _, err := coord.Prepare(models.BulkActionNote, "call customer"); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if coord.State() != BulkConfirming {
		t.Fatalf("expected confirming state, got %s", coord.State())
	}

	if err := coord.Cancel(); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if coord.State() != BulkIdle {
		t.Fatalf("expected idle after cancel, got %s", coord.State())
	}
	if got := coord.Selected(); len(got) != 0 {
		t.Fatalf("selection must be cleared on cancel, got %v", got)
	}
}

func TestCoordinatorRegistryIsPerSession(t *testing.T) {
	store := newTestStore(&fakeBackend{})
	registry := NewCoordinatorRegistry(store)

	a := registry.ForSession("alice")
	b := registry.ForSession("bob")
	if a == b {
		t.Fatalf("sessions must not share coordinators")
	}
	if again := registry.ForSession("alice"); again != a {
		t.Fatalf("same session must get the same coordinator")
	}

	_ = a.Toggle("A")
	if got := b.Selected(); len(got) != 0 {
		t.Fatalf("selection leaked across sessions: %v", got)
	}
}
