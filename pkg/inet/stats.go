package inet

import "sync/atomic"

// Statistics is the sole required trace: four monotone counters,
// incremented exactly once per rewrite application, safe to read
// concurrently with an in-flight reduction (§4.6).
type Statistics struct {
	BetaReductions uint64
	Duplications   uint64
	Erasures       uint64
	Annihilations  uint64
}

// counters is the live, atomically-updated backing store for Statistics.
type counters struct {
	beta    atomic.Uint64
	dup     atomic.Uint64
	erase   atomic.Uint64
	annihil atomic.Uint64
}

func (c *counters) snapshot() Statistics {
	return Statistics{
		BetaReductions: c.beta.Load(),
		Duplications:   c.dup.Load(),
		Erasures:       c.erase.Load(),
		Annihilations:  c.annihil.Load(),
	}
}
