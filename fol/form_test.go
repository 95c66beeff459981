package fol

import (
	"testing"

	"github.com/dmitris/tabula/core"
)

func roundTrip(t *testing.T, ctx *core.Context, a *core.Arena, f Form) {
	t.Helper()
	e := ToExpr(f, ctx, a)
	got := FromExpr(e, ctx)
	if got.Kind != f.Kind {
		t.Fatalf("round-trip kind mismatch: got %v want %v", got.Kind, f.Kind)
	}
}

func TestRoundTripEquals(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	l := core.NewVar(a, core.Free, ctx.IndividualID())
	r := core.NewVar(a, core.Free, ctx.IndividualID())
	f := Form{Kind: Equals, L: l, R: r}
	roundTrip(t, ctx, a, f)
	e := ToExpr(f, ctx, a)
	got := FromExpr(e, ctx)
	if !got.L.Equals(l) || !got.R.Equals(r) {
		t.Fatalf("Equals payload not preserved")
	}
}

func TestRoundTripTrueFalse(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	roundTrip(t, ctx, a, Form{Kind: True})
	roundTrip(t, ctx, a, Form{Kind: False})
}

func TestRoundTripConnectives(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	p := core.NewVar(a, core.Free, ctx.TrueID())
	q := core.NewVar(a, core.Free, ctx.FalseID())
	for _, kind := range []Kind{And, Or, Implies, Iff} {
		f := Form{Kind: kind, L: p, R: q}
		roundTrip(t, ctx, a, f)
	}
	not := Form{Kind: Not, Sub: p}
	roundTrip(t, ctx, a, not)
}

func TestRoundTripForall(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	body := core.NewVar(a, core.Free, ctx.TrueID())
	f := Form{Kind: Forall, Name: "x", Body: body}
	e := ToExpr(f, ctx, a)
	if e.Tag() != core.TagPi {
		t.Fatalf("expected Pi, got %v", e.Tag())
	}
	got := FromExpr(e, ctx)
	if got.Kind != Forall {
		t.Fatalf("expected Forall, got %v", got.Kind)
	}
	if !got.Body.Equals(body) {
		t.Fatalf("forall body not preserved")
	}
}

func TestRoundTripExistsUnique(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	body := core.NewApp(a, core.NewVar(a, core.Free, ctx.TrueID()), core.NewVar(a, core.Bound, 0))
	for _, kind := range []Kind{Exists, Unique} {
		f := Form{Kind: kind, Name: "x", Body: body}
		e := ToExpr(f, ctx, a)
		got := FromExpr(e, ctx)
		if got.Kind != kind {
			t.Fatalf("expected %v, got %v", kind, got.Kind)
		}
		if !got.Body.Equals(body) {
			t.Fatalf("%v body not preserved", kind)
		}
	}
}

func TestSplitIff(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	p := core.NewVar(a, core.Free, ctx.TrueID())
	q := core.NewVar(a, core.Free, ctx.FalseID())
	iff := ToExpr(Form{Kind: Iff, L: p, R: q}, ctx, a)
	pq, qp := SplitIff(iff, ctx, a)

	pqForm := FromExpr(pq, ctx)
	if pqForm.Kind != Implies || !pqForm.L.Equals(p) || !pqForm.R.Equals(q) {
		t.Fatalf("expected p -> q, got %v", pqForm)
	}
	qpForm := FromExpr(qp, ctx)
	if qpForm.Kind != Implies || !qpForm.L.Equals(q) || !qpForm.R.Equals(p) {
		t.Fatalf("expected q -> p, got %v", qpForm)
	}
}

func TestSplitUnique(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	// P(x) := true applied to Bound(0)
	body := core.NewApp(a, core.NewVar(a, core.Free, ctx.TrueID()), core.NewVar(a, core.Bound, 0))
	uniq := ToExpr(Form{Kind: Unique, Name: "x", Body: body}, ctx, a)

	exists, uniqueness := SplitUnique(uniq, ctx, a)

	existsForm := FromExpr(exists, ctx)
	if existsForm.Kind != Exists {
		t.Fatalf("expected Exists, got %v", existsForm.Kind)
	}
	if !existsForm.Body.Equals(body) {
		t.Fatalf("exists body not preserved")
	}

	if uniqueness.Tag() != core.TagPi {
		t.Fatalf("expected uniqueness clause to be a Forall (Pi), got %v", uniqueness.Tag())
	}

	// uniqueness == Forall x, (P(x) -> Forall x', (P(x') -> x = x')).
	// The inner P(x') must be exactly `body` reused one binder deeper,
	// not shifted — a shifted copy would still refer to x, not x'.
	outer := FromExpr(uniqueness, ctx)
	outerImplies := FromExpr(outer.Body, ctx)
	if outerImplies.Kind != Implies || !outerImplies.L.Equals(body) {
		t.Fatalf("expected outer premise P(x) == body, got %v", outerImplies)
	}
	inner := FromExpr(outerImplies.R, ctx)
	if inner.Kind != Forall {
		t.Fatalf("expected inner Forall x', got %v", inner.Kind)
	}
	innerImplies := FromExpr(inner.Body, ctx)
	if innerImplies.Kind != Implies || !innerImplies.L.Equals(body) {
		t.Fatalf("expected inner premise P(x') == body (reused unshifted), got %v", innerImplies)
	}
}

func TestFromExprOtherForNonBuiltinApplication(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	fIdx := ctx.Push("f", core.NewPi(a, "", core.NewSort(a, core.Prop), core.NewSort(a, core.Prop)), false)
	xIdx := ctx.Push("x", core.NewSort(a, core.Prop), false)
	e := core.NewApp(a, core.NewVar(a, core.Free, fIdx), core.NewVar(a, core.Free, xIdx))
	got := FromExpr(e, ctx)
	if got.Kind != Other {
		t.Fatalf("expected Other, got %v", got.Kind)
	}
	if !got.Raw.Equals(e) {
		t.Fatalf("expected Raw to carry through the original expression")
	}
}
