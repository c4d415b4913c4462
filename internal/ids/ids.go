// Package ids issues entity identifiers for categories and items.
// Identifiers are UUID v7 strings, strictly increasing in string order for the
// lifetime of an Allocator and never reused, even after the entity is deleted.
package ids

import (
	"sync"

	"github.com/google/uuid"
)

// Allocator hands out unique, monotonically increasing identifiers.
// The zero value is not usable; call New.
type Allocator struct {
	mu     sync.Mutex
	last   uuid.UUID
	source func() uuid.UUID
}

// New returns an Allocator backed by UUID v7 generation.
func New() *Allocator {
	return &Allocator{source: newV7}
}

// newV7 generates a UUID v7, falling back to v4 if v7 generation fails.
// The fallback is still forced above the last issued id by Next.
func newV7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Next returns a new identifier greater than every identifier previously
// returned or observed.
func (a *Allocator) Next() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.source()
	if !greater(id, a.last) {
		id = successor(a.last)
	}
	a.last = id
	return id.String()
}

// Observe records an identifier issued elsewhere (for example one loaded from
// disk) so that later calls to Next sort after it. Unparseable ids are ignored.
func (a *Allocator) Observe(id string) {
	u, err := uuid.Parse(id)
	if err != nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if greater(u, a.last) {
		a.last = u
	}
}

// greater reports whether a sorts after b. Canonical UUID strings compare
// the same way as their bytes.
func greater(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

// successor returns u plus one, counted in the random tail (bytes 9..15) so
// the version and variant bits stay intact.
func successor(u uuid.UUID) uuid.UUID {
	next := u
	for i := len(next) - 1; i >= 9; i-- {
		next[i]++
		if next[i] != 0 {
			break
		}
	}
	return next
}
