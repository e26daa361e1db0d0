package palette

import (
	"math/rand"
	"sync"
)

// Registry owns one Assigner per open schedule so color identity survives
// across requests for the process lifetime. Child assigners get independent
// seeded sources derived from the registry's root source.
type Registry struct {
	mu        sync.Mutex
	rng       *rand.Rand
	assigners map[string]*Assigner
}

// NewRegistry builds a Registry seeded from the given root source.
func NewRegistry(rng *rand.Rand) *Registry {
	return &Registry{
		rng:       rng,
		assigners: make(map[string]*Assigner),
	}
}

// For returns the schedule's Assigner, creating it on first use.
func (r *Registry) For(scheduleID string) *Assigner {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.assigners[scheduleID]; ok {
		return a
	}
	a := NewAssigner(rand.New(rand.NewSource(r.rng.Int63())))
	r.assigners[scheduleID] = a
	return a
}

// Reset clears a schedule's color assignments, keeping the assigner itself
// so subsequent bookings get fresh colors.
func (r *Registry) Reset(scheduleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.assigners[scheduleID]; ok {
		a.Reset()
	}
}

// Remove drops a schedule's assigner entirely, used when the schedule is
// deleted.
func (r *Registry) Remove(scheduleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assigners, scheduleID)
}
