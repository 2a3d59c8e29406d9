package lambda

import (
	"fmt"
	"testing"
)

// freshForTest mimics translator.freshName without needing a translator
// instance, for testing the formula builders in isolation.
func freshForTest() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("v%d", n)
	}
}

// TestChurchNumeralShape checks churchNumeral(n, ...) builds exactly n
// nested applications of f around x, per spec.md §6.1's formula.
func TestChurchNumeralShape(t *testing.T) {
	cases := []uint64{0, 1, 5}
	for _, n := range cases {
		term := churchNumeral(n, freshForTest())
		outer, ok := term.(Abs)
		if !ok {
			t.Fatalf("churchNumeral(%d) = %T, want Abs", n, term)
		}
		inner, ok := outer.Body.(Abs)
		if !ok {
			t.Fatalf("churchNumeral(%d) body = %T, want Abs", n, outer.Body)
		}

		body := inner.Body
		var count uint64
		for {
			app, ok := body.(App)
			if !ok {
				break
			}
			count++
			body = app.Arg
		}
		if count != n {
			t.Errorf("churchNumeral(%d) has %d applications, want %d", n, count, n)
		}
		if v, ok := body.(Var); !ok || v.Name != inner.Arg {
			t.Errorf("churchNumeral(%d) innermost term = %#v, want Var{%q}", n, body, inner.Arg)
		}
	}
}

// TestChurchBoolShape checks the true/false selector shapes.
func TestChurchBoolShape(t *testing.T) {
	trueTerm := churchBool(true, freshForTest())
	outer, ok := trueTerm.(Abs)
	if !ok {
		t.Fatalf("churchBool(true) = %T, want Abs", trueTerm)
	}
	inner, ok := outer.Body.(Abs)
	if !ok {
		t.Fatalf("churchBool(true) body = %T, want Abs", outer.Body)
	}
	if v, ok := inner.Body.(Var); !ok || v.Name != outer.Arg {
		t.Errorf("churchBool(true) innermost = %#v, want Var{%q} (the first binder)", inner.Body, outer.Arg)
	}

	falseTerm := churchBool(false, freshForTest())
	outer, ok = falseTerm.(Abs)
	if !ok {
		t.Fatalf("churchBool(false) = %T, want Abs", falseTerm)
	}
	inner, ok = outer.Body.(Abs)
	if !ok {
		t.Fatalf("churchBool(false) body = %T, want Abs", outer.Body)
	}
	if v, ok := inner.Body.(Var); !ok || v.Name != inner.Arg {
		t.Errorf("churchBool(false) innermost = %#v, want Var{%q} (the second binder)", inner.Body, inner.Arg)
	}
}

// TestChurchAddShape checks the outer λf.λx. a f (...) half of churchAdd's
// λf.λx. a f (b f x) structure, spec.md §6.1's formula for +: a is spliced
// in verbatim and applied to the f binder. The (b f x) side is not checked.
func TestChurchAddShape(t *testing.T) {
	a := Var{"A"}
	b := Var{"B"}
	term := churchAdd(a, b, freshForTest())

	outer, ok := term.(Abs)
	if !ok {
		t.Fatalf("churchAdd(...) = %T, want Abs", term)
	}
	inner, ok := outer.Body.(Abs)
	if !ok {
		t.Fatalf("churchAdd(...) body = %T, want Abs", outer.Body)
	}
	outerApp, ok := inner.Body.(App)
	if !ok {
		t.Fatalf("churchAdd(...) innermost = %T, want App", inner.Body)
	}
	afApp, ok := outerApp.Fun.(App)
	if !ok || afApp.Fun != Term(a) {
		t.Fatalf("churchAdd(...)'s function side = %#v, want App{Fun: a}", outerApp.Fun)
	}
	if v, ok := afApp.Arg.(Var); !ok || v.Name != outer.Arg {
		t.Fatalf("churchAdd(...)'s a is applied to %#v, want the f binder", afApp.Arg)
	}
}

// TestChurchMulShape checks churchMul's λf. a (b f) structure, spec.md
// §6.1's formula for *.
func TestChurchMulShape(t *testing.T) {
	a := Var{"A"}
	b := Var{"B"}
	term := churchMul(a, b, freshForTest())

	outer, ok := term.(Abs)
	if !ok {
		t.Fatalf("churchMul(...) = %T, want Abs", term)
	}
	app, ok := outer.Body.(App)
	if !ok {
		t.Fatalf("churchMul(...) body = %T, want App", outer.Body)
	}
	if app.Fun != Term(a) {
		t.Fatalf("churchMul(...)'s function side = %#v, want a", app.Fun)
	}
	inner, ok := app.Arg.(App)
	if !ok || inner.Fun != Term(b) {
		t.Fatalf("churchMul(...)'s argument side = %#v, want App{Fun: b}", app.Arg)
	}
	if v, ok := inner.Arg.(Var); !ok || v.Name != outer.Arg {
		t.Fatalf("churchMul(...)'s b is applied to %#v, want the f binder", inner.Arg)
	}
}
