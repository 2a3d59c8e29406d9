package inet

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// maxWiringDepth bounds the link/move trampoline; exceeding it means the
// net is malformed (a genuine cycle of unresolved forwardings) and the
// operation fails with WiringOverflow rather than looping forever.
const maxWiringDepth = 1 << 16

// Net owns an Arena plus everything needed to construct and reduce a
// graph: the redex queue, statistics, and an optional trace buffer. It is
// the handle the front end and the runtime driver both operate on.
type Net struct {
	arena *Arena
	queue *redexQueue
	stats *counters
	trace *tracer
	log   zerolog.Logger

	// busy counts workers currently mid-rule-application (and therefore
	// possibly about to enqueue more redexes); Reduce uses it to detect
	// genuine, permanent queue exhaustion rather than a momentary lull.
	busy atomic.Int64
}

// Option configures a Net at construction time.
type Option func(*Net)

// WithLogger attaches a zerolog.Logger for debug-level instrumentation.
// The core never logs business decisions (§7); this is purely
// instrumentation, inert unless the caller raises the logger's level.
func WithLogger(l zerolog.Logger) Option {
	return func(n *Net) { n.log = l }
}

// WithArenaCapacity pre-sizes the backing arena.
func WithArenaCapacity(words uint64) Option {
	return func(n *Net) { n.arena = NewArena(words) }
}

// WithFixedArenaCapacity pre-sizes the backing arena and disables growth:
// Alloc fails with ArenaExhausted rather than reallocating. Matches the
// "implementations may instead fail with ArenaExhausted" growth-policy
// alternative in §4.1.
func WithFixedArenaCapacity(words uint64) Option {
	return func(n *Net) { n.arena = NewFixedArena(words) }
}

// NewNet creates an empty net ready for single-threaded construction.
func NewNet(opts ...Option) *Net {
	n := &Net{
		queue: newRedexQueue(),
		stats: &counters{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.arena == nil {
		n.arena = NewArena(defaultArenaCap)
	}
	return n
}

// Alloc reserves n contiguous words for a custom construction, per the
// front-end contract's `alloc(n) -> loc`.
func (n *Net) Alloc(words uint64) (uint64, error) {
	return n.arena.Alloc(words)
}

// Get reads any port, per the runtime contract `get(loc) -> (tag, target)`.
func (n *Net) Get(loc uint64) Term { return n.arena.Get(loc) }

// Set stores a packed word without returning the previous one; reserved for
// single-threaded construction, mirroring §4.1's contract.
func (n *Net) Set(loc uint64, t Term) { n.arena.Set(loc, t) }

// Stats returns a snapshot of the four monotone counters (§4.6).
func (n *Net) Stats() Statistics { return n.stats.snapshot() }

// EnableTrace turns on the bounded ring-buffer trace described in
// SPEC_FULL.md §C (an optional, higher-resolution sibling of the
// required statistics).
func (n *Net) EnableTrace(capacity int) { n.trace = newTracer(capacity) }

// DisableTrace turns tracing back off.
func (n *Net) DisableTrace() { n.trace = nil }

// TraceSnapshot returns the events recorded so far, oldest first.
func (n *Net) TraceSnapshot() []TraceEvent {
	if n.trace == nil {
		return nil
	}
	return n.trace.snapshot()
}
