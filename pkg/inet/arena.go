package inet

import (
	"sync"
	"sync/atomic"
)

// defaultArenaCap is the initial word capacity; chosen small so tests
// exercise the growth path without needing large programs.
const defaultArenaCap = 1 << 12

// Arena is a bump-allocated, word-addressed store backing every node in a
// net. alloc is a relaxed fetch-add on a shared atomic cursor; reads and
// writes of individual words are atomic so the arena can be mutated
// concurrently by reduction workers (§5: "atomicity unit is a single
// arena word").
type Arena struct {
	nextLoc uint64 // atomic: next free word offset

	mu     sync.RWMutex // Lock for growth; every word access holds RLock
	words  []atomic.Uint64
	frozen bool // true once growth is disabled (fixed-capacity mode)
}

// NewArena creates an arena pre-sized to cap words (rounded up to
// defaultArenaCap if smaller) that grows by doubling on exhaustion.
func NewArena(cap uint64) *Arena {
	if cap < defaultArenaCap {
		cap = defaultArenaCap
	}
	return &Arena{words: make([]atomic.Uint64, cap)}
}

// NewFixedArena creates an arena that never grows: alloc fails with
// ArenaExhausted once cap words are handed out. Matches the "implementations
// may instead fail with ArenaExhausted" growth-policy alternative in §4.1.
func NewFixedArena(cap uint64) *Arena {
	return &Arena{words: make([]atomic.Uint64, cap), frozen: true}
}

// Alloc returns the current cursor and advances it by n words, returning
// distinct disjoint ranges under concurrency. It grows the backing store
// (doubling) if the arena is not frozen, and otherwise fails with
// ArenaExhausted.
func (a *Arena) Alloc(n uint64) (uint64, error) {
	for {
		loc := atomic.AddUint64(&a.nextLoc, n) - n
		a.mu.RLock()
		cap := uint64(len(a.words))
		a.mu.RUnlock()
		if loc+n <= cap {
			return loc, nil
		}
		if a.frozen {
			return 0, &Error{Kind: KindArenaExhausted, Msg: "fixed arena exhausted"}
		}
		if err := a.grow(loc + n); err != nil {
			return 0, err
		}
		// Loop: another goroutine may have grown it already; re-check.
		a.mu.RLock()
		cap = uint64(len(a.words))
		a.mu.RUnlock()
		if loc+n <= cap {
			return loc, nil
		}
	}
}

func (a *Arena) grow(minCap uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cap := uint64(len(a.words))
	if cap >= minCap {
		return nil
	}
	newCap := cap
	if newCap == 0 {
		newCap = defaultArenaCap
	}
	for newCap < minCap {
		newCap *= 2
	}
	grown := make([]atomic.Uint64, newCap)
	for i := range a.words {
		grown[i].Store(a.words[i].Load())
	}
	a.words = grown
	return nil
}

// Len reports the current word capacity (diagnostic use only).
func (a *Arena) Len() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return uint64(len(a.words))
}

// Set stores a packed word without returning the previous one; used only
// during single-threaded construction, per §4.1.
func (a *Arena) Set(loc uint64, term Term) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	a.words[loc].Store(uint64(term))
}

// Get reads and unpacks the word at loc.
func (a *Arena) Get(loc uint64) Term {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Term(a.words[loc].Load())
}

// Swap atomically exchanges the word at loc with newPacked and returns the
// previous value, unpacked. This is the fundamental primitive: reading and
// invalidating a port in one step.
//
// The RLock is held for the whole operation, not just to fetch a pointer:
// grow reassigns a.words to a freshly-allocated slice under the exclusive
// Lock, so a pointer into the old backing array handed back after RUnlock
// would let a concurrent grow strand an in-flight atomic op on an
// abandoned slice, silently losing the update.
func (a *Arena) Swap(loc uint64, newPacked Term) Term {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Term(a.words[loc].Swap(uint64(newPacked)))
}

// CompareAndSwap atomically sets the word at loc to newPacked if it
// currently holds old, reporting whether the swap happened. Used by the
// rewrite engine to claim a principal port exactly once across workers.
func (a *Arena) CompareAndSwap(loc uint64, old, newPacked Term) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.words[loc].CompareAndSwap(uint64(old), uint64(newPacked))
}
