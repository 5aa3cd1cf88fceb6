package payflow

import (
	"sync"

	"farmalink-service/internal/app/contracts"
)

type notifiedRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewNotifiedRegistry returns an in-memory set of order ids that already
// produced their terminal notification. Entries live for the process
// lifetime; order ids are never reused so the set only grows by one per
// completed order.
func NewNotifiedRegistry() contracts.NotifiedRegistry {
	return &notifiedRegistry{seen: make(map[string]struct{})}
}

func (r *notifiedRegistry) HasNotified(orderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[orderID]
	return ok
}

func (r *notifiedRegistry) MarkNotified(orderID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[orderID] = struct{}{}
}
