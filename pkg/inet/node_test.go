package inet

import "testing"

func TestCreateSubIsSelfReferential(t *testing.T) {
	n := NewNet()
	loc, err := n.CreateSub(0)
	if err != nil {
		t.Fatalf("CreateSub: %v", err)
	}
	word := n.Get(loc)
	if word.Tag() != TagSub {
		t.Fatalf("tag = %s, want SUB", word.Tag())
	}
	if word.Target() != loc {
		t.Fatalf("target = %d, want %d (self-reference)", word.Target(), loc)
	}
}

func TestCreateLamHoistsReservedBinder(t *testing.T) {
	n := NewNet()
	binder, err := n.CreateSub(0)
	if err != nil {
		t.Fatalf("CreateSub: %v", err)
	}
	body, err := n.CreateNul()
	if err != nil {
		t.Fatalf("CreateNul: %v", err)
	}
	lam, err := n.CreateLam(binder, body)
	if err != nil {
		t.Fatalf("CreateLam: %v", err)
	}

	if got := n.Get(lam); got.Tag() != TagLam || got.Target() != lam {
		t.Fatalf("lam principal = %s, want LAM@%d", got, lam)
	}
	// The binder's own content (a self-referential SUB, still carrying
	// its original, now-stale target) is copied verbatim to lam+1; only
	// its tag matters from here on, so the stale target is harmless.
	if got := n.Get(lam + 1); got.Tag() != TagSub || got.Target() != binder {
		t.Fatalf("lam+1 = %s, want SUB@%d", got, binder)
	}
	if got := n.Get(binder); got.Tag() != TagVar || got.Target() != lam+1 {
		t.Fatalf("reserved binder = %s, want VAR@%d", got, lam+1)
	}
	if got := n.Get(lam + 2); got.Tag() != TagVar || got.Target() != body {
		t.Fatalf("lam+2 = %s, want VAR@%d", got, body)
	}
}

func TestCreateAppHoistsReservedReturnSlot(t *testing.T) {
	n := NewNet()
	arg, err := n.CreateNul()
	if err != nil {
		t.Fatalf("CreateNul: %v", err)
	}
	ret, err := n.CreateSub(0)
	if err != nil {
		t.Fatalf("CreateSub: %v", err)
	}
	app, err := n.CreateApp(arg, ret)
	if err != nil {
		t.Fatalf("CreateApp: %v", err)
	}

	if got := n.Get(app + 1); got.Tag() != TagVar || got.Target() != arg {
		t.Fatalf("app+1 = %s, want VAR@%d", got, arg)
	}
	if got := n.Get(app + 2); got.Tag() != TagSub || got.Target() != ret {
		t.Fatalf("app+2 = %s, want SUB@%d", got, ret)
	}
	if got := n.Get(ret); got.Tag() != TagVar || got.Target() != app+2 {
		t.Fatalf("reserved ret = %s, want VAR@%d", got, app+2)
	}
}

func TestCreateDupHoistsBothAuxSlots(t *testing.T) {
	n := NewNet()
	p1, err := n.CreateSub(0)
	if err != nil {
		t.Fatalf("CreateSub: %v", err)
	}
	p2, err := n.CreateSub(0)
	if err != nil {
		t.Fatalf("CreateSub: %v", err)
	}
	dup, err := n.CreateDup(p1, p2)
	if err != nil {
		t.Fatalf("CreateDup: %v", err)
	}

	if got := n.Get(p1); got.Tag() != TagVar || got.Target() != dup+1 {
		t.Fatalf("p1 = %s, want VAR@%d", got, dup+1)
	}
	if got := n.Get(p2); got.Tag() != TagVar || got.Target() != dup+2 {
		t.Fatalf("p2 = %s, want VAR@%d", got, dup+2)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		tag    Tag
		target uint64
	}{
		{TagVar, 0},
		{TagLam, 1234},
		{TagDup, targetMask},
	}
	for _, c := range cases {
		w, err := Pack(c.tag, c.target)
		if err != nil {
			t.Fatalf("Pack(%s, %d): %v", c.tag, c.target, err)
		}
		tag, target := Unpack(w)
		if tag != c.tag || target != c.target {
			t.Errorf("Unpack(Pack(%s, %d)) = (%s, %d)", c.tag, c.target, tag, target)
		}
	}
}

func TestPackRejectsOversizedTarget(t *testing.T) {
	_, err := Pack(TagVar, targetMask+1)
	if err == nil {
		t.Fatal("expected error for target overflow")
	}
	var ierr *Error
	if !asInetError(err, &ierr) || ierr.Kind != KindInvalidTerm {
		t.Fatalf("err = %v, want KindInvalidTerm", err)
	}
}

func asInetError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
