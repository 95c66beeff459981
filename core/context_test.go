package core

import "testing"

func TestPushPopRoundTrip(t *testing.T) {
	a := NewArena(64)
	ctx := NewContext(a)
	before := ctx.Size()
	h := ctx.Push("H", NewSort(a, Prop), true)
	if !ctx.Pop(h, a) {
		t.Fatalf("pop should succeed")
	}
	if ctx.Size() != before {
		t.Fatalf("expected size %d, got %d", before, ctx.Size())
	}
}

func TestPopEmptyFails(t *testing.T) {
	a := NewArena(64)
	ctx := &Context{}
	if ctx.Pop(0, a) {
		t.Fatalf("pop on empty context should fail")
	}
}

func TestPopOutOfBoundsFails(t *testing.T) {
	a := NewArena(64)
	ctx := NewContext(a)
	if ctx.Pop(ctx.Size()+10, a) {
		t.Fatalf("pop out of bounds should fail")
	}
}

// S9: push hypothesis H, then push theorem T, then pop H; T becomes H -> T.
func TestDischargeHypothesisBecomesImplication(t *testing.T) {
	a := NewArena(64)
	ctx := NewContext(a)

	hProp := NewVar(a, Free, ctx.TrueID())
	hIdx := ctx.Push("H", hProp, true)

	// T : Free(H) itself used as a proposition (a theorem whose statement
	// happens to just restate H, for the purpose of this scenario).
	tProp := NewVar(a, Free, hIdx)
	tIdx := ctx.Push("T", tProp, true)

	if !ctx.Pop(hIdx, a) {
		t.Fatalf("pop should succeed")
	}

	newTIdx := tIdx - 1
	entry := ctx.At(newTIdx)
	if !entry.IsHyp {
		t.Fatalf("T should remain a hypothesis")
	}
	if entry.Body.Tag() != TagApp {
		t.Fatalf("expected T's body to become an application of Implies, got %v", entry.Body.Tag())
	}
	headApp := entry.Body
	if headApp.Fn().Tag() != TagApp {
		t.Fatalf("expected curried Implies application")
	}
	impliesVar := headApp.Fn().Fn()
	if impliesVar.Tag() != TagVar || impliesVar.VarKind() != Free || impliesVar.ID() != ctx.ImpliesID() {
		t.Fatalf("expected head to be the built-in Implies constant")
	}
	if !headApp.Fn().Arg().Equals(hProp) {
		t.Fatalf("expected antecedent to be H's original proposition")
	}
}

func TestDischargeDeclarationBecomesForall(t *testing.T) {
	a := NewArena(64)
	ctx := NewContext(a)

	individual := NewVar(a, Free, ctx.IndividualID())
	xIdx := ctx.Push("x", individual, false)

	// P(x) : a hypothesis whose statement references x as a Free var.
	pBody := NewApp(a, NewVar(a, Free, ctx.TrueID()), NewVar(a, Free, xIdx))
	pIdx := ctx.Push("P", pBody, true)

	if !ctx.Pop(xIdx, a) {
		t.Fatalf("pop should succeed")
	}
	newPIdx := pIdx - 1
	entry := ctx.At(newPIdx)
	if entry.Body.Tag() != TagPi {
		t.Fatalf("expected P to become a Pi (forall), got %v", entry.Body.Tag())
	}
	if !entry.Body.Body().Occurs(Bound, 0) {
		t.Fatalf("expected the abstracted body to reference the new Bound(0)")
	}
}

func TestDischargeShiftsLaterFreeIds(t *testing.T) {
	a := NewArena(64)
	ctx := NewContext(a)

	hIdx := ctx.Push("H", NewVar(a, Free, ctx.TrueID()), true)
	aIdx := ctx.Push("A", NewSort(a, Type), false)
	bBody := NewVar(a, Free, aIdx)
	bIdx := ctx.Push("B", bBody, false)

	if !ctx.Pop(hIdx, a) {
		t.Fatalf("pop should succeed")
	}
	newBIdx := bIdx - 1
	entry := ctx.At(newBIdx)
	if entry.Body.ID() != aIdx-1 {
		t.Fatalf("expected B's reference to A to shift down to %d, got %d", aIdx-1, entry.Body.ID())
	}
}
