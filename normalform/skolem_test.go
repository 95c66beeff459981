package normalform

import (
	"testing"

	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

func TestSkolemizeForallBecomesMeta(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	body := core.NewApp(a, core.NewVar(a, core.Free, ctx.TrueID()), core.NewVar(a, core.Bound, 0))
	forall := fol.ToExpr(fol.Form{Kind: fol.Forall, Name: "x", Body: body}, ctx, a)

	got := Skolemize(forall, ctx, a)
	if got.Tag() != core.TagApp || got.Arg().VarKind() != core.Meta {
		t.Fatalf("expected forall body with a metavariable substituted in, got %s", got.String(ctx))
	}
}

func TestSkolemizeExistsBecomesFreshConstant(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	sizeBefore := ctx.Size()
	body := core.NewApp(a, core.NewVar(a, core.Free, ctx.TrueID()), core.NewVar(a, core.Bound, 0))
	exists := fol.ToExpr(fol.Form{Kind: fol.Exists, Name: "x", Body: body}, ctx, a)

	got := Skolemize(exists, ctx, a)
	if ctx.Size() != sizeBefore+1 {
		t.Fatalf("expected exactly one fresh skolem constant pushed, size went from %d to %d", sizeBefore, ctx.Size())
	}
	if got.Tag() != core.TagApp || got.Arg().VarKind() != core.Free || got.Arg().ID() != sizeBefore {
		t.Fatalf("expected the bound variable replaced by the fresh constant, got %s", got.String(ctx))
	}
}

func TestSkolemizeLeavesAtomsUnchanged(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	atom := core.NewVar(a, core.Free, ctx.TrueID())
	got := Skolemize(atom, ctx, a)
	if !got.Equals(atom) {
		t.Fatalf("expected atomic formula to pass through unchanged")
	}
}

// Forall x, Exists y, P(x, y) needs a witness that depends on x; a
// nullary skolem constant can't express that, so Skolemize must refuse
// rather than silently emit an unsound witness.
func TestSkolemizeExistsInsideForallPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Skolemize to panic on an Exists nested inside a Forall")
		}
	}()
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	body := core.NewApp(a, core.NewVar(a, core.Free, ctx.TrueID()), core.NewVar(a, core.Bound, 0))
	exists := fol.ToExpr(fol.Form{Kind: fol.Exists, Name: "y", Body: body}, ctx, a)
	forall := fol.ToExpr(fol.Form{Kind: fol.Forall, Name: "x", Body: exists}, ctx, a)

	Skolemize(forall, ctx, a)
}
