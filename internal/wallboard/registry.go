// Package wallboard holds the agent registry and the status change dispatcher.
package wallboard

import (
	"fmt"
	"iter"
	"sync"

	"github.com/watchfire-io/wallboard/internal/models"
)

// Registry is the single source of truth for agent statuses.
// Insertion order is display order; the agent name is the only key.
type Registry struct {
	mu     sync.RWMutex
	agents []models.Agent
	index  map[string]int
}

// NewRegistry creates a registry seeded with the given agents.
// Duplicate names and invalid statuses are rejected.
func NewRegistry(seed []models.Agent) (*Registry, error) {
	r := &Registry{
		agents: make([]models.Agent, 0, len(seed)),
		index:  make(map[string]int, len(seed)),
	}
	for _, a := range seed {
		if _, dup := r.index[a.Name]; dup {
			return nil, fmt.Errorf("duplicate agent %q", a.Name)
		}
		if !a.Status.Valid() {
			return nil, fmt.Errorf("agent %q: %w: %q", a.Name, ErrInvalidStatus, a.Status)
		}
		r.index[a.Name] = len(r.agents)
		r.agents = append(r.agents, a)
	}
	return r, nil
}

// Get returns the agent with the given name.
func (r *Registry) Get(name string) (models.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return models.Agent{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r.agents[i], nil
}

// SetStatus replaces the status of the named agent and returns the previous one.
// The registry is left untouched on error.
func (r *Registry) SetStatus(name string, status models.AgentStatus) (models.AgentStatus, error) {
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	prev := r.agents[i].Status
	r.agents[i].Status = status
	return prev, nil
}

// Count returns the number of agents currently in the given status.
func (r *Registry) Count(status models.AgentStatus) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.agents {
		if a.Status == status {
			n++
		}
	}
	return n
}

// Len returns the number of agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}

// All yields the agents in display order. Each call iterates over its own
// snapshot, so mutations made during iteration are not observed.
func (r *Registry) All() iter.Seq[models.Agent] {
	snapshot := r.Snapshot()
	return func(yield func(models.Agent) bool) {
		for _, a := range snapshot {
			if !yield(a) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the agents in display order.
func (r *Registry) Snapshot() []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// First returns the first agent in display order, if any.
func (r *Registry) First() (models.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.agents) == 0 {
		return models.Agent{}, false
	}
	return r.agents[0], true
}
