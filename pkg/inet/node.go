package inet

// This file implements the §6.1 front-end contract's constructors. Every
// node's principal port L+0 is always its own self-reference
// Pack(tag, L); that word never changes until a rewrite rule consumes it.
//
// LAM, APP and DUP each introduce at least one negative aux slot that the
// rest of the term needs to reference before the node itself exists (a
// lambda's body must be able to refer to its own binder; an application's
// caller must be able to name where the result should land). The front
// end reserves those slots ahead of time with CreateSub, builds whatever
// refers to them, and the constructor "hoists" the reservation's current
// contents into its own contiguous layout, leaving a one-hop forwarding
// VAR behind. This keeps every node's ports in one contiguous run
// (§3: "each node occupies a contiguous run of ports") while still letting
// construction proceed in the natural order: reserve, build body, close.

// CreateVar allocates a single-word positive occurrence forwarding to
// target, typically a reserved binder or output slot.
func (n *Net) CreateVar(target uint64) (uint64, error) {
	loc, err := n.arena.Alloc(1)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagVar, target))
	return loc, nil
}

// CreateSub allocates a single-word, self-referential negative placeholder:
// a binder or output slot awaiting a value. label is accepted for parity
// with the §6.1 signature and only logged; it plays no structural role
// (the stored word is Pack(TagSub, loc), whatever label is).
func (n *Net) CreateSub(label uint64) (uint64, error) {
	loc, err := n.arena.Alloc(1)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagSub, loc))
	n.log.Debug().Uint64("loc", loc).Uint64("label", label).Msg("sub reserved")
	return loc, nil
}

// CreateNul allocates the trivial erased value.
func (n *Net) CreateNul() (uint64, error) {
	loc, err := n.arena.Alloc(1)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagNul, loc))
	return loc, nil
}

// CreateEra allocates a standalone erasing context: a discard continuation
// with no payload, used to wire up unused binders (the 0-use case).
func (n *Net) CreateEra() (uint64, error) {
	loc, err := n.arena.Alloc(1)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagEra, loc))
	return loc, nil
}

// CreateLam builds a 3-word lambda node whose body is bodyLoc and whose
// binder adopts varLoc, a slot previously reserved with CreateSub (and
// possibly since overwritten by the front end with a DUP or ERA principal,
// for shared or discarded variables).
func (n *Net) CreateLam(varLoc, bodyLoc uint64) (uint64, error) {
	loc, err := n.arena.Alloc(3)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagLam, loc))
	n.hoist(varLoc, loc+1)
	n.arena.Set(loc+2, MustPack(TagVar, bodyLoc))
	return loc, nil
}

// CreateApp builds a 3-word application node whose argument is argLoc and
// whose return slot adopts retLoc, a slot previously reserved with
// CreateSub representing whoever wants the result.
func (n *Net) CreateApp(argLoc, retLoc uint64) (uint64, error) {
	loc, err := n.arena.Alloc(3)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagApp, loc))
	n.arena.Set(loc+1, MustPack(TagVar, argLoc))
	n.hoist(retLoc, loc+2)
	return loc, nil
}

// CreateDup builds a 3-word duplicator node whose two aux slots adopt
// port1Loc and port2Loc, each previously reserved with CreateSub.
func (n *Net) CreateDup(port1Loc, port2Loc uint64) (uint64, error) {
	loc, err := n.arena.Alloc(3)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagDup, loc))
	n.hoist(port1Loc, loc+1)
	n.hoist(port2Loc, loc+2)
	return loc, nil
}

// CreateSup builds a 3-word superposition node whose two aux slots
// reference the already-built alternatives at port1Loc and port2Loc.
func (n *Net) CreateSup(port1Loc, port2Loc uint64) (uint64, error) {
	loc, err := n.arena.Alloc(3)
	if err != nil {
		return 0, err
	}
	n.arena.Set(loc, MustPack(TagSup, loc))
	n.arena.Set(loc+1, MustPack(TagVar, port1Loc))
	n.arena.Set(loc+2, MustPack(TagVar, port2Loc))
	return loc, nil
}
