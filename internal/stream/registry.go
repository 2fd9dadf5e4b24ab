package stream

import (
	"sync"

	"github.com/PavanAnganna90/OpsSight-DevOpsVisibilityPlatform-sub003/internal/models"
)

// Subscription is a caller-registered interest filter plus its callback.
// Types may contain models.EventTypeAll as a wildcard; an empty ClusterID
// matches every cluster. The callback runs on the stream's dispatch
// goroutine; it must not block for long.
type Subscription struct {
	Types     []models.EventType
	ClusterID string
	Callback  func(*models.StreamEvent)
}

type regEntry struct {
	id  string
	sub Subscription
}

// registry holds active subscriptions in insertion order. Membership is
// independent of transport state: entries survive reconnects and are
// re-announced by the connection manager.
type registry struct {
	mu      sync.RWMutex
	entries []regEntry
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) add(id string, sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, regEntry{id: id, sub: sub})
}

// remove deletes the entry for id, preserving the order of the rest.
// Unknown ids are a no-op; the bool reports whether anything was removed.
func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// snapshot returns the entries in insertion order. The slice is a copy;
// callers may iterate without holding the lock.
func (r *registry) snapshot() []regEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
