package inet

// This file implements the named interactions of §4.5 as a small
// dispatch table keyed by (negTag, posTag), per the design notes'
// preference for a lookup table over virtual dispatch, plus the
// eraser/duplicator-propagation rules (annihilateEraEra, dupera, eraapp,
// dupapp) that the front end's binder-occupancy convention requires but
// §4.5's core five don't name individually: an unused binder defaults to
// a parked eraser, and a shared binder's occurrences may themselves be
// application nodes still awaiting their function side, so a discarded
// or duplicated lambda can meet APP, not just LAM/SUP/NUL/ERA, on its way
// down. eraapp and dupapp close that gap with the standard erase/commute
// treatment of an n-ary agent. Every other polarity-correct pair still
// reports UnknownInteraction.

type ruleFunc func(n *Net, negLoc, posLoc uint64) error

var dispatch = map[[2]Tag]ruleFunc{
	{TagApp, TagLam}: (*Net).applam,
	{TagDup, TagLam}: (*Net).duplam,
	{TagDup, TagApp}: (*Net).dupapp,
	{TagEra, TagLam}: (*Net).eralam,
	{TagEra, TagSup}: (*Net).erasup,
	{TagEra, TagApp}: (*Net).eraapp,
	{TagEra, TagNul}: (*Net).annihilateEraNul,
	{TagDup, TagSup}: (*Net).annihilateDupSup,
	{TagEra, TagEra}: (*Net).annihilateEraEra,
	{TagDup, TagEra}: (*Net).dupera,
	{TagEra, TagDup}: func(n *Net, eraLoc, dupLoc uint64) error { return n.dupera(dupLoc, eraLoc) },
}

// step pops one redex and applies its rule, returning (applied, err).
// applied is false once the queue is empty (a clean, successful halt).
// It drives reduction one redex at a time; the concurrent driver in
// engine.go (used by cmd/icnet for every worker count) calls applyRedex
// directly.
func (n *Net) step() (bool, error) {
	r, ok := n.queue.pop()
	if !ok {
		return false, nil
	}
	if err := n.applyRedex(r); err != nil {
		return false, err
	}
	return true, nil
}

// applyRedex dispatches a single discovered active pair to its rule.
func (n *Net) applyRedex(r redex) error {
	negTag := r.neg.Tag()
	posTag := r.pos.Tag()
	rule, known := dispatch[[2]Tag{negTag, posTag}]
	if !known {
		return &Error{
			Kind:  KindUnknownInteraction,
			Msg:   negTag.String() + " vs " + posTag.String(),
			Stats: n.stats.snapshot(),
		}
	}
	return rule(n, r.neg.Target(), r.pos.Target())
}

// applam is the beta rule: APP(arg, ret) meets LAM(binder, body). The
// argument is delivered into the binder and the body is delivered into
// the application's return slot.
func (n *Net) applam(negLoc, posLoc uint64) error {
	argRef := n.arena.Get(negLoc + 1)
	bodyRef := n.arena.Get(posLoc + 2)
	if err := n.move(posLoc+1, argRef); err != nil {
		return err
	}
	if err := n.move(negLoc+2, bodyRef); err != nil {
		return err
	}
	n.stats.beta.Add(1)
	n.trace.record(TraceEvent{Rule: RuleBeta, Neg: negLoc, Pos: posLoc})
	return nil
}

// duplam duplicates a lambda value into two fresh, independently
// applicable copies: fresh binders y1/y2, a fresh DUP that will duplicate
// the body, and a SUP installed at the original binder so that whatever
// value eventually flows there is distributed to y1 and y2 (via the
// DUP-SUP annihilation rule, if that's what it meets).
func (n *Net) duplam(negLoc, posLoc uint64) error {
	binderLoc := posLoc + 1

	y1, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	y2, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	p1, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	p2, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	bodyDupLoc, err := n.CreateDup(p1, p2)
	if err != nil {
		return err
	}
	lam1, err := n.CreateLam(y1, bodyDupLoc+1)
	if err != nil {
		return err
	}
	lam2, err := n.CreateLam(y2, bodyDupLoc+2)
	if err != nil {
		return err
	}
	supLoc, err := n.CreateSup(lam1+1, lam2+1)
	if err != nil {
		return err
	}

	// The body port's own VAR is delivered, not its target: the body may
	// still be a vacant slot rather than a built node.
	if err := n.move(bodyDupLoc, n.arena.Get(posLoc+2)); err != nil {
		return err
	}
	if err := n.move(binderLoc, n.arena.Get(supLoc)); err != nil {
		return err
	}
	if err := n.move(negLoc+1, n.arena.Get(lam1)); err != nil {
		return err
	}
	if err := n.move(negLoc+2, n.arena.Get(lam2)); err != nil {
		return err
	}

	n.stats.dup.Add(1)
	n.trace.record(TraceEvent{Rule: RuleDuplicate, Neg: negLoc, Pos: posLoc})
	return nil
}

// erase is §4.5's recursive erase(term) procedure. A VAR/SUB is a forward
// or a still-vacant slot: nothing concrete has arrived there yet, so a
// fresh eraser is parked in its place (via the same move/link wiring
// every other rule uses) to discard whatever eventually does. NUL and
// ERA are already-trivial leaves. Any other tag is a concrete, owned
// node — LAM, APP, DUP and SUP all carry exactly two aux ports, walked
// recursively — which is what lets erasure pass straight through an
// application chain without a matching dispatch entry for every node
// kind along the way.
//
// The two aux ports of a node are not interchangeable: one holds a plain
// VAR pointing at a separate, independently-built value (a LAM's body, an
// APP's argument, either half of a SUP); the other is hoisted in place
// (a LAM's binder, an APP's return slot, either output of a DUP) and
// forever forwards, via the VAR hoist leaves behind at its old pre-hoist
// location, straight back to itself. Swapping a hoisted port to NUL and
// then recursing on whatever it displaced — as if it were an ordinary
// value — can chase that permanent backward VAR into the very slot just
// vacated, producing a malformed {TagVar,*} redex no rule dispatches on.
// Hoisted ports are erased by parking a fresh eraser with move instead,
// which already knows how to tell a genuinely vacant port (a no-op) from
// one the front end or an earlier rewrite left a real negative node
// parked in (a proper active pair, handled by the ordinary dispatch
// table).
func (n *Net) erase(t Term) error {
	switch t.Tag() {
	case TagVar, TagSub:
		era, err := n.CreateEra()
		if err != nil {
			return err
		}
		return n.Connect(era, t.Target())
	case TagNul, TagEra:
		return nil
	case TagLam:
		loc := t.Target()
		if err := n.eraseHoisted(loc + 1); err != nil { // binder
			return err
		}
		return n.eraseValue(loc + 2) // body
	case TagApp:
		loc := t.Target()
		if err := n.eraseValue(loc + 1); err != nil { // argument
			return err
		}
		return n.eraseHoisted(loc + 2) // return slot
	case TagDup:
		loc := t.Target()
		if err := n.eraseHoisted(loc + 1); err != nil {
			return err
		}
		return n.eraseHoisted(loc + 2)
	case TagSup:
		loc := t.Target()
		if err := n.eraseValue(loc + 1); err != nil {
			return err
		}
		return n.eraseValue(loc + 2)
	default:
		return nil
	}
}

// eraseValue tears down whatever a VAR-wrapped, non-hoisted port
// currently points at: read it and recurse, since nothing else will ever
// park a negative node directly at loc.
func (n *Net) eraseValue(loc uint64) error {
	old := n.arena.Swap(loc, MustPack(TagNul, loc))
	if err := n.erase(old); err != nil {
		return err
	}
	n.stats.erase.Add(1)
	return nil
}

// eraseHoisted discards whatever occupies a hoisted port by parking a
// fresh eraser there via move, rather than swapping and recursing
// directly (see erase's doc comment for why that would be unsafe here).
func (n *Net) eraseHoisted(loc uint64) error {
	era, err := n.CreateEra()
	if err != nil {
		return err
	}
	if err := n.move(loc, n.arena.Get(era)); err != nil {
		return err
	}
	n.stats.erase.Add(1)
	return nil
}

// eralam recursively erases a lambda: an eraser flows into the binder,
// and erase(term) tears down whatever the body currently is.
func (n *Net) eralam(negLoc, posLoc uint64) error {
	binderLoc := posLoc + 1

	era, err := n.CreateEra()
	if err != nil {
		return err
	}
	if err := n.move(binderLoc, n.arena.Get(era)); err != nil {
		return err
	}
	if err := n.erase(n.arena.Get(posLoc + 2)); err != nil {
		return err
	}

	n.stats.erase.Add(1)
	n.trace.record(TraceEvent{Rule: RuleErase, Neg: negLoc, Pos: posLoc})
	return nil
}

// erasup recursively erases a superposition: erase(term) tears down each
// alternative in turn.
func (n *Net) erasup(negLoc, posLoc uint64) error {
	p1 := n.arena.Get(posLoc + 1)
	p2 := n.arena.Get(posLoc + 2)

	if err := n.erase(p1); err != nil {
		return err
	}
	if err := n.erase(p2); err != nil {
		return err
	}

	n.stats.erase.Add(1)
	n.trace.record(TraceEvent{Rule: RuleErase, Neg: negLoc, Pos: posLoc})
	return nil
}

// eraapp is ERA meeting APP: the call is being discarded before it ever
// fires, so erase(term) tears down both its argument and its still-
// pending return slot.
func (n *Net) eraapp(negLoc, posLoc uint64) error {
	argTerm := n.arena.Get(posLoc + 1)
	retTerm := n.arena.Get(posLoc + 2)

	if err := n.erase(argTerm); err != nil {
		return err
	}
	if err := n.erase(retTerm); err != nil {
		return err
	}

	n.stats.erase.Add(1)
	n.trace.record(TraceEvent{Rule: RuleErase, Neg: negLoc, Pos: posLoc})
	return nil
}

// dupapp is DUP meeting APP: the standard commutation of a duplicator
// through a node it doesn't match. Two fresh App copies are created; the
// argument is itself duplicated through a fresh DUP so each copy gets its
// own, and the two copies' return slots are merged back into a single
// SUP delivered to whoever awaits the original application's result.
func (n *Net) dupapp(negLoc, posLoc uint64) error {
	retLoc := posLoc + 2

	q1, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	q2, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	argDupLoc, err := n.CreateDup(q1, q2)
	if err != nil {
		return err
	}
	r1, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	r2, err := n.CreateSub(0)
	if err != nil {
		return err
	}
	app1, err := n.CreateApp(argDupLoc+1, r1)
	if err != nil {
		return err
	}
	app2, err := n.CreateApp(argDupLoc+2, r2)
	if err != nil {
		return err
	}
	supLoc, err := n.CreateSup(app1+2, app2+2)
	if err != nil {
		return err
	}

	// As in duplam, the argument port's own VAR is delivered, not its target.
	if err := n.move(argDupLoc, n.arena.Get(posLoc+1)); err != nil {
		return err
	}
	if err := n.move(retLoc, n.arena.Get(supLoc)); err != nil {
		return err
	}
	if err := n.move(negLoc+1, n.arena.Get(app1)); err != nil {
		return err
	}
	if err := n.move(negLoc+2, n.arena.Get(app2)); err != nil {
		return err
	}

	n.stats.dup.Add(1)
	n.trace.record(TraceEvent{Rule: RuleDuplicate, Neg: negLoc, Pos: posLoc})
	return nil
}

// annihilateEraNul is ERA meeting NUL: both principals are simply
// consumed, with no further effect (§9 open-question decision).
func (n *Net) annihilateEraNul(negLoc, posLoc uint64) error {
	n.stats.annihil.Add(1)
	n.trace.record(TraceEvent{Rule: RuleAnnihilate, Neg: negLoc, Pos: posLoc})
	return nil
}

// annihilateDupSup is DUP meeting SUP: since labels aren't tracked in
// this core, aux ports are fused pairwise by position (§9 open-question
// decision), distributing each alternative to the matching copy output.
func (n *Net) annihilateDupSup(negLoc, posLoc uint64) error {
	if err := n.move(negLoc+1, n.arena.Get(posLoc+1)); err != nil {
		return err
	}
	if err := n.move(negLoc+2, n.arena.Get(posLoc+2)); err != nil {
		return err
	}
	n.stats.annihil.Add(1)
	n.trace.record(TraceEvent{Rule: RuleAnnihilate, Neg: negLoc, Pos: posLoc})
	return nil
}

// annihilateEraEra is two erasers meeting. A binder's unused-occupant
// eraser (left behind by buildAbs's zero-use default, or by an earlier
// eralam delivery racing a later one through a shared forwarding chain)
// and a fresh eraser arriving to discard it both vanish with nothing
// further to propagate.
func (n *Net) annihilateEraEra(negLoc, posLoc uint64) error {
	n.stats.annihil.Add(1)
	n.trace.record(TraceEvent{Rule: RuleAnnihilate, Neg: negLoc, Pos: posLoc})
	return nil
}

// dupera is a duplicator meeting an eraser: the binding this duplicator
// was sharing is being discarded wholesale, so each of its two outputs
// gets its own fresh eraser rather than the value it was waiting for.
func (n *Net) dupera(negLoc, posLoc uint64) error {
	p1Loc := n.arena.Get(negLoc + 1).Target()
	p2Loc := n.arena.Get(negLoc + 2).Target()

	era1, err := n.CreateEra()
	if err != nil {
		return err
	}
	era2, err := n.CreateEra()
	if err != nil {
		return err
	}
	if err := n.Connect(era1, p1Loc); err != nil {
		return err
	}
	if err := n.Connect(era2, p2Loc); err != nil {
		return err
	}

	n.stats.erase.Add(1)
	n.trace.record(TraceEvent{Rule: RuleErase, Neg: negLoc, Pos: posLoc})
	return nil
}
