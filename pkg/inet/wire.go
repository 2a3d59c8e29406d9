package inet

// This file implements the link/move wiring protocol of §4.4: resolving
// VAR forwarding chains on the fly and discovering genuine active pairs
// without ever walking the whole graph.
//
// A negative aux slot rests, before anything has claimed it, as a
// self-referential SUB: Pack(TagSub, ownLocation). Two things can happen
// to it before a real value arrives:
//
//   - nothing: move() swaps the real value straight in, sees the
//     self-referential SUB it displaced, and is done. Every VAR that
//     already forwards to this location will see the real value on its
//     next dereference, with no further bookkeeping required.
//   - the front end (single-threaded, during construction) overwrites it
//     directly with another node's own principal reference — a DUP, for a
//     shared variable, or an ERA, for a discarded one. When the real
//     value finally arrives, move() finds that non-SUB occupant and hands
//     it to link(), forming the active pair the rewrite engine will later
//     dispatch on.

// move installs the positive term pos into the negative slot at negLoc.
func (n *Net) move(negLoc uint64, pos Term) error {
	loc := negLoc
	for depth := 0; ; depth++ {
		if depth > maxWiringDepth {
			return &Error{Kind: KindWiringOverflow, Msg: "move exceeded maximum chain depth", Stats: n.stats.snapshot()}
		}
		prev := n.arena.Swap(loc, pos)
		if prev.Tag() == TagSub {
			// The slot was genuinely vacant (self-referential or not; only
			// the tag matters). Whoever forwards to loc will now see pos.
			return nil
		}
		// prev is itself a negative principal term (DUP/ERA/APP) that was
		// parked here ahead of time by the front end or a prior rewrite.
		// Hand off to link, which enqueues the resulting active pair.
		return n.link(prev, pos, depth+1)
	}
}

// link wires a negative principal term neg to a positive term pos.
func (n *Net) link(neg Term, pos Term, depth int) error {
	for {
		depth++
		if depth > maxWiringDepth {
			return &Error{Kind: KindWiringOverflow, Msg: "link exceeded maximum chain depth", Stats: n.stats.snapshot()}
		}
		if pos.Tag() == TagVar {
			// The positive side is itself a variable occurrence pointing
			// at some slot S. Park neg there.
			s := pos.Target()
			prev := n.arena.Swap(s, neg)
			if prev.Tag() == TagSub {
				return nil
			}
			if prev.Tag() == TagVar {
				// S was itself mid-forward (a VAR chain hop): keep
				// resolving against whatever it points to.
				pos = prev
				continue
			}
			// S already held a genuine positive value (it arrived before
			// we hooked up): neg and that value form an active pair.
			n.enqueue(redex{neg: neg, pos: prev})
			return nil
		}
		// Both sides are principal, non-VAR terms: a genuine active pair.
		n.enqueue(redex{neg: neg, pos: pos})
		return nil
	}
}

// enqueue pushes a discovered active pair onto the redex queue, logging at
// debug level for optional instrumentation.
func (n *Net) enqueue(r redex) {
	n.log.Debug().Stringer("neg", r.neg).Stringer("pos", r.pos).Msg("redex discovered")
	n.queue.push(r)
}

// hoist copies whatever currently occupies reserved into target, then
// leaves a forwarding VAR behind at reserved so that any earlier VAR
// occurrence built against reserved transparently follows through to
// target. Used by the 3-word constructors to adopt a pre-reserved binder
// or output slot into the node's own contiguous layout.
func (n *Net) hoist(reserved, target uint64) {
	n.arena.Set(target, n.arena.Get(reserved))
	n.arena.Set(reserved, MustPack(TagVar, target))
}

// Move exposes move as a front-end-callable operation, per the §6.1
// contract's `move(negLoc, posTerm)`.
func (n *Net) Move(negLoc uint64, pos Term) error {
	return n.move(negLoc, pos)
}

// Connect wires two already-built nodes' own principal ports together
// directly, forming an active pair immediately if both are ready. It is
// sugar over Move: reading a freshly-built node's own principal word is
// always its self-reference Pack(tag, loc).
func (n *Net) Connect(aLoc, bLoc uint64) error {
	return n.Move(aLoc, n.Get(bLoc))
}

// Resolve follows a chain of VAR forwards starting at loc until it lands
// on a location whose own word is not itself a forward, and returns that
// location. Front ends hold onto "handle" locations (a CreateVar wrapping
// an App's return slot, say) that may still be forwards once reduction
// finishes; Resolve is how a caller turns such a handle into the concrete
// location Readback expects.
func (n *Net) Resolve(loc uint64) uint64 {
	for depth := 0; depth < maxWiringDepth; depth++ {
		t := n.arena.Get(loc)
		if t.Tag() != TagVar {
			return loc
		}
		loc = t.Target()
	}
	return loc
}
