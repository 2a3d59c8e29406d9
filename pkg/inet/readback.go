package inet

import (
	"fmt"
	"io"
)

// Number is a readback result recognized as a Church numeral.
type Number struct{ Value uint64 }

// Boolean is a readback result recognized as a Church boolean.
type Boolean struct{ Value bool }

// Function is the fallback readback result: a normal-form value whose
// shape wasn't recognized as a numeral or boolean (still perfectly valid
// data — just opaque to this conservative reader). §6.2: "readback never
// fails; an unrecognized shape degrades to Function, it does not error."
type Function struct{}

// Readback inspects a fully-reduced term rooted at rootLoc and tries to
// recognize it as a Church numeral or boolean, falling back to Function
// for anything else. It never returns an error: an unrecognized shape is
// valid output, not a defect.
func (n *Net) Readback(rootLoc uint64) any {
	rootLoc = n.Resolve(rootLoc)
	root := n.arena.Get(rootLoc)
	if root.Tag() != TagLam {
		return Function{}
	}
	fBinder := rootLoc + 1
	innerLoc := n.Resolve(n.arena.Get(rootLoc + 2).Target())
	inner := n.arena.Get(innerLoc)
	if inner.Tag() != TagLam {
		return Function{}
	}
	xBinder := innerLoc + 1
	bodyLoc := n.Resolve(n.arena.Get(innerLoc + 2).Target())

	// λt.λf. t is checked first: its single-use outer binder would
	// otherwise read as the numeral 1. λt.λf. f has the same shape as the
	// numeral 0 and reads back as Number{0}.
	if b, ok := readbackChurchBoolean(fBinder, xBinder, bodyLoc); ok && b {
		return Boolean{Value: true}
	}
	if k, ok := n.readbackChurchNumeral(fBinder); ok {
		return Number{Value: k}
	}
	if b, ok := readbackChurchBoolean(fBinder, xBinder, bodyLoc); ok {
		return Boolean{Value: b}
	}
	return Function{}
}

// readbackChurchNumeral walks the chain parked at a lambda's first
// binder, counting how many applications of it were built into the
// term. Variables used more than once are wired through a chain of DUP
// nodes (translate.go's buildVar sharing convention); each DUP in the chain reveals
// one occurrence via its first output, and continues via its second.
func (n *Net) readbackChurchNumeral(fBinder uint64) (uint64, bool) {
	var count uint64
	loc := fBinder
	for {
		t := n.arena.Get(loc)
		switch t.Tag() {
		case TagEra:
			// f unused: only a valid shape at the very start (k == 0).
			return count, count == 0
		case TagSub:
			// A still-vacant slot at the very first position is the front
			// end's single-occurrence shortcut (translate.go's translator
			// skips the dup chain entirely when a binder is used exactly
			// once, so there's nothing to walk): that's one occurrence, not
			// zero. Reached after at least one TagDup, it's simply the tail
			// of an n>=2 chain: every occurrence has already been counted.
			if count == 0 {
				return 1, true
			}
			return count, true
		case TagApp:
			return count + 1, true
		case TagDup:
			count++
			loc = t.Target() + 2
		default:
			return 0, false
		}
	}
}

// readbackChurchBoolean recognizes λt.λf. t (true) and λt.λf. f (false):
// the inner lambda's body, resolved to bodyLoc, is one binder or the other.
func readbackChurchBoolean(tBinder, fBinder uint64, bodyLoc uint64) (bool, bool) {
	switch bodyLoc {
	case tBinder:
		return true, true
	case fBinder:
		return false, true
	default:
		return false, false
	}
}

// Visualize writes a Graphviz DOT rendering of the arena, for manual
// inspection during development: one DOT node per arena word (the first
// words words, or the whole arena when words is 0), labeled with its
// location, tag and target. It does not start from a root, does not skip
// unreachable words, and draws no edges.
func (n *Net) Visualize(w io.Writer, words uint64) {
	fmt.Fprintln(w, "digraph {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=record];")
	limit := n.arena.Len()
	if words > 0 && words < limit {
		limit = words
	}
	for loc := uint64(0); loc < limit; loc++ {
		t := n.arena.Get(loc)
		tag, target := Unpack(t)
		fmt.Fprintf(w, "  n%d [label=\"%d | %s -> %d\"];\n", loc, loc, tag, target)
	}
	fmt.Fprintln(w, "}")
}
