package orders

import "sync"

// CoordinatorRegistry hands out one Coordinator per console session, keyed by
// the authenticated subject. Selections are session state, not shared state.
type CoordinatorRegistry struct {
	store *Store

	mu           sync.Mutex
	coordinators map[string]*Coordinator
}

func NewCoordinatorRegistry(store *Store) *CoordinatorRegistry {
	return &CoordinatorRegistry{
		store:        store,
		coordinators: make(map[string]*Coordinator),
	}
}

// ForSession returns the session's coordinator, creating it on first use.
func (r *CoordinatorRegistry) ForSession(subject string) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.coordinators[subject]
	if !ok {
		c = NewCoordinator(r.store)
		r.coordinators[subject] = c
	}
	return c
}
