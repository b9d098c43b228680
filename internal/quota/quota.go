// Package quota implements the minimal card-key accounting the job-control
// surface needs: an opaque key identifies a caller, and each successful job
// enqueue counts against its limit. Real authentication and persistent
// quota accounting are explicitly out of scope for this compiler (they are
// an external collaborator's responsibility); this package is the in-memory
// stand-in that lets the HTTP surface exercise the §6 usage/quota contract
// without depending on one.
package quota

import "sync"

// Tracker counts usage per card-key against a single shared limit. A limit
// of 0 or less means unlimited (Usage.Remaining is reported as -1).
type Tracker struct {
	limit int

	mu     sync.Mutex
	counts map[string]int
}

// New returns a Tracker enforcing limit uses per card-key (0 = unlimited).
func New(limit int) *Tracker {
	return &Tracker{limit: limit, counts: make(map[string]int)}
}

// Usage is the §6 `/usage` response shape.
type Usage struct {
	UsageCount int `json:"usage_count"`
	UsageLimit int `json:"usage_limit"`
	Remaining  int `json:"remaining"`
}

// Get returns the current usage for cardKey without consuming it.
func (t *Tracker) Get(cardKey string) Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usageLocked(cardKey)
}

func (t *Tracker) usageLocked(cardKey string) Usage {
	count := t.counts[cardKey]
	if t.limit <= 0 {
		return Usage{UsageCount: count, UsageLimit: -1, Remaining: -1}
	}
	remaining := t.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Usage{UsageCount: count, UsageLimit: t.limit, Remaining: remaining}
}

// TryConsume increments cardKey's usage count by one and returns the
// resulting Usage, unless the key is already at its limit, in which case
// it reports ok=false and leaves the count unchanged.
func (t *Tracker) TryConsume(cardKey string) (Usage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current := t.usageLocked(cardKey)
	if t.limit > 0 && current.UsageCount >= t.limit {
		return current, false
	}
	t.counts[cardKey]++
	return t.usageLocked(cardKey), true
}
