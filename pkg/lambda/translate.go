package lambda

import (
	"fmt"

	"github.com/vic/icnet/pkg/inet"
)

// translator holds the construction-time state for turning a Term into a
// graph in a *inet.Net: the front end's view of which variable currently
// resolves to which binder, and a counter for the fresh names the Church
// encodings below need.
type translator struct {
	net   *inet.Net
	vars  map[string]*varInfo
	fresh int
}

// varInfo tracks one bound variable while its Abs's body is being built.
// reserved is the Abs's own binder slot, pre-wired to an eraser on entry
// under the assumption of zero uses. dups records the chain of DUP nodes
// grown incrementally as further occurrences are discovered; occurrences
// records the VAR term built for each one, in order, so that a single
// occurrence can be rewired directly once the real count is known.
type varInfo struct {
	reserved    uint64
	dups        []uint64
	occurrences []uint64
}

// Build translates term into a graph inside net and returns a root handle
// location: its Get() always yields a valid positive term (either a
// node's own principal self-reference, or a VAR forward), suitable either
// for further composition or, after reduction, for net.Resolve followed
// by net.Readback.
func Build(net *inet.Net, term Term) (uint64, error) {
	t := &translator{net: net, vars: make(map[string]*varInfo)}
	return t.build(term)
}

func (t *translator) freshName() string {
	t.fresh++
	return fmt.Sprintf("$%d", t.fresh)
}

func (t *translator) build(term Term) (uint64, error) {
	switch v := term.(type) {
	case Var:
		return t.buildVar(v)
	case Abs:
		return t.buildAbs(v)
	case App:
		return t.buildApp(v)
	case Let:
		return t.build(App{Fun: Abs{Arg: v.Name, Body: v.Body}, Arg: v.Val})
	case Num:
		return t.build(churchNumeral(v.Value, t.freshName))
	case Bool:
		return t.build(churchBool(v.Value, t.freshName))
	case If:
		return t.build(App{Fun: App{Fun: v.Cond, Arg: v.Then}, Arg: v.Else})
	case BinOp:
		return t.buildBinOp(v)
	default:
		return 0, fmt.Errorf("lambda: unknown term %T", term)
	}
}

// buildVar resolves a bound occurrence. The first occurrence replaces the
// binder's default eraser with a fresh DUP and hands back its first
// output; each later occurrence grows the chain by chaining a new DUP off
// the previous one's second output (readback.go's readbackChurchNumeral
// walks this same chain back apart).
func (t *translator) buildVar(v Var) (uint64, error) {
	info, ok := t.vars[v.Name]
	if !ok {
		return 0, fmt.Errorf("lambda: unbound variable %q", v.Name)
	}

	p1, err := t.net.CreateSub(0)
	if err != nil {
		return 0, err
	}
	p2, err := t.net.CreateSub(0)
	if err != nil {
		return 0, err
	}
	dup, err := t.net.CreateDup(p1, p2)
	if err != nil {
		return 0, err
	}

	if len(info.dups) == 0 {
		t.net.Set(info.reserved, t.net.Get(dup))
	} else {
		last := info.dups[len(info.dups)-1]
		t.net.Set(last+2, t.net.Get(dup))
	}
	info.dups = append(info.dups, dup)

	occLoc, err := t.net.CreateVar(dup + 1)
	if err != nil {
		return 0, err
	}
	info.occurrences = append(info.occurrences, occLoc)
	return occLoc, nil
}

// buildAbs builds a lambda, pre-wiring its binder to an eraser (the zero-
// use default) before the body is built, then resolving the binder's
// final shape once the body's actual occurrence count is known.
func (t *translator) buildAbs(v Abs) (uint64, error) {
	reserved, err := t.net.CreateSub(0)
	if err != nil {
		return 0, err
	}
	t.net.Set(reserved, inet.MustPack(inet.TagEra, reserved))

	old, hadOld := t.vars[v.Arg]
	info := &varInfo{reserved: reserved}
	t.vars[v.Arg] = info

	bodyLoc, err := t.build(v.Body)
	if err != nil {
		return 0, err
	}

	if hadOld {
		t.vars[v.Arg] = old
	} else {
		delete(t.vars, v.Arg)
	}

	t.closeVar(info)

	return t.net.CreateLam(reserved, bodyLoc)
}

// closeVar finalizes a binder once its Abs's body is fully built. Zero
// uses leaves the pre-wired eraser untouched. Exactly one use undoes the
// DUP that buildVar always speculatively creates on first occurrence:
// the binder is restored to a plain vacant slot and the sole occurrence
// is retargeted to reference it directly, so a variable used once costs
// nothing beyond the binder itself (readback.go's TagSub-at-position-zero
// case recognizes this shortcut). Two or more uses leave the incrementally
// grown DUP chain exactly as built.
func (t *translator) closeVar(info *varInfo) {
	if len(info.occurrences) != 1 {
		return
	}
	dup := info.dups[0]
	occ := info.occurrences[0]
	t.net.Set(info.reserved, inet.MustPack(inet.TagSub, info.reserved))
	t.net.Set(occ, inet.MustPack(inet.TagVar, info.reserved))
	_ = dup // orphaned: its two outputs are never referenced again
}

// buildApp builds an application, connecting the freshly built App's
// principal to the function side and returning a VAR handle onto its
// return slot (deferred: nothing has reduced yet, so the return slot is
// still vacant at construction time, and only a VAR forward — never a
// bare SUB — may stand in for a value not yet computed).
func (t *translator) buildApp(v App) (uint64, error) {
	funLoc, err := t.build(v.Fun)
	if err != nil {
		return 0, err
	}
	argLoc, err := t.build(v.Arg)
	if err != nil {
		return 0, err
	}
	retLoc, err := t.net.CreateSub(0)
	if err != nil {
		return 0, err
	}
	appLoc, err := t.net.CreateApp(argLoc, retLoc)
	if err != nil {
		return 0, err
	}
	if err := t.net.Connect(appLoc, funLoc); err != nil {
		return 0, err
	}
	return t.net.CreateVar(appLoc + 2)
}

func (t *translator) buildBinOp(v BinOp) (uint64, error) {
	switch v.Op {
	case "+":
		return t.build(churchAdd(v.Left, v.Right, t.freshName))
	case "*":
		return t.build(churchMul(v.Left, v.Right, t.freshName))
	default:
		return 0, fmt.Errorf("lambda: unknown binary operator %q", v.Op)
	}
}

// churchNumeral builds λf.λx. f(f(...(f x))) with n applications of f,
// per spec.md §6.1.
func churchNumeral(n uint64, fresh func() string) Term {
	f := fresh()
	x := fresh()
	body := Term(Var{x})
	for i := uint64(0); i < n; i++ {
		body = App{Fun: Var{f}, Arg: body}
	}
	return Abs{Arg: f, Body: Abs{Arg: x, Body: body}}
}

// churchBool builds λt.λf. t (true) or λt.λf. f (false), per spec.md §6.1
// and readback.go's readbackChurchBoolean.
func churchBool(b bool, fresh func() string) Term {
	tArg := fresh()
	fArg := fresh()
	body := Term(Var{fArg})
	if b {
		body = Var{tArg}
	}
	return Abs{Arg: tArg, Body: Abs{Arg: fArg, Body: body}}
}

// churchAdd builds λf.λx. a f (b f x), spec.md §6.1's formula for +,
// splicing in the already-elaborated operand terms a and b directly
// (each referenced exactly once, so no additional sharing is needed for
// them specifically).
func churchAdd(a, b Term, fresh func() string) Term {
	f := fresh()
	x := fresh()
	return Abs{
		Arg: f,
		Body: Abs{
			Arg: x,
			Body: App{
				Fun: App{Fun: a, Arg: Var{f}},
				Arg: App{Fun: App{Fun: b, Arg: Var{f}}, Arg: Var{x}},
			},
		},
	}
}

// churchMul builds λf. a (b f), spec.md §6.1's formula for *.
func churchMul(a, b Term, fresh func() string) Term {
	f := fresh()
	return Abs{
		Arg:  f,
		Body: App{Fun: a, Arg: App{Fun: b, Arg: Var{f}}},
	}
}
