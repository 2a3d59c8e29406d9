// Package inet implements the interaction-combinator core: a packed-word
// node arena, the link/move wiring protocol, and the rewrite rules that
// drive a graph of nodes to normal form.
package inet

import "fmt"

// Tag identifies the kind of a port and, implicitly, its polarity.
type Tag uint8

const (
	// TagVar marks a bound variable occurrence (use site). Positive.
	TagVar Tag = iota
	// TagSub marks a binder slot (definition site) awaiting a value. Negative.
	TagSub
	// TagNul is the trivial erased value. Positive.
	TagNul
	// TagEra marks an erasing context. Negative.
	TagEra
	// TagLam is a lambda constructor's principal port. Positive.
	TagLam
	// TagApp is an application's principal port. Negative.
	TagApp
	// TagSup is a superposition's principal port. Positive.
	TagSup
	// TagDup is a duplicator's principal port. Negative.
	TagDup
)

func (t Tag) String() string {
	switch t {
	case TagVar:
		return "VAR"
	case TagSub:
		return "SUB"
	case TagNul:
		return "NUL"
	case TagEra:
		return "ERA"
	case TagLam:
		return "LAM"
	case TagApp:
		return "APP"
	case TagSup:
		return "SUP"
	case TagDup:
		return "DUP"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Polarity is a total property of a Tag: positive tags produce values,
// negative tags consume them. A well-formed link always joins one of each.
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

func (t Tag) Polarity() Polarity {
	switch t {
	case TagVar, TagNul, TagLam, TagSup:
		return Positive
	default:
		return Negative
	}
}

func (t Tag) IsPositive() bool { return t.Polarity() == Positive }
func (t Tag) IsNegative() bool { return t.Polarity() == Negative }

const (
	// targetBits is the width of the payload packed alongside the tag.
	targetBits = 56
	tagShift   = targetBits
	targetMask = (uint64(1) << targetBits) - 1
	maxTag     = uint64(255)
)

// Term is a single machine word: an 8-bit tag plus a 56-bit payload
// (either an arena offset, for structural references, or a free-variable
// identifier, for VAR/SUB).
type Term uint64

// Pack combines a tag and target into a single packed Term. It fails with
// InvalidTerm if tag or target overflow their reserved bit widths.
func Pack(tag Tag, target uint64) (Term, error) {
	if uint64(tag) > maxTag {
		return 0, &Error{Kind: KindInvalidTerm, Msg: fmt.Sprintf("tag %d out of range [0,255]", tag)}
	}
	if target > targetMask {
		return 0, &Error{Kind: KindInvalidTerm, Msg: fmt.Sprintf("target %d out of range [0,2^56)", target)}
	}
	return Term(uint64(tag)<<tagShift | (target & targetMask)), nil
}

// MustPack is Pack but panics on error; reserved for callers (the
// constructors in this package) that have already validated their inputs.
func MustPack(tag Tag, target uint64) Term {
	term, err := Pack(tag, target)
	if err != nil {
		panic(err)
	}
	return term
}

// Unpack is total for any word; it is the inverse of Pack on valid inputs.
func Unpack(word Term) (Tag, uint64) {
	return Tag(uint64(word) >> tagShift), uint64(word) & targetMask
}

func (w Term) Tag() Tag       { return Tag(uint64(w) >> tagShift) }
func (w Term) Target() uint64 { return uint64(w) & targetMask }

func (w Term) String() string {
	tag, target := Unpack(w)
	return fmt.Sprintf("%s@%d", tag, target)
}
