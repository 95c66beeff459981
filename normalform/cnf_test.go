package normalform

import (
	"testing"

	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

func TestCNFTrueIsEmptyConjunction(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	e := fol.ToExpr(fol.Form{Kind: fol.True}, ctx, a)
	clauses := CNF(e, ctx)
	if len(clauses) != 0 {
		t.Fatalf("expected 0 clauses for True, got %d", len(clauses))
	}
}

func TestCNFFalseIsSingleEmptyClause(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	e := fol.ToExpr(fol.Form{Kind: fol.False}, ctx, a)
	clauses := CNF(e, ctx)
	if len(clauses) != 1 || len(clauses[0]) != 0 {
		t.Fatalf("expected a single empty clause for False, got %v", clauses)
	}
}

func TestCNFAndConcatenatesClauses(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	p := core.NewVar(a, core.Free, ctx.Push("p", core.NewSort(a, core.Prop), false))
	q := core.NewVar(a, core.Free, ctx.Push("q", core.NewSort(a, core.Prop), false))
	and := fol.ToExpr(fol.Form{Kind: fol.And, L: p, R: q}, ctx, a)
	clauses := CNF(and, ctx)
	if len(clauses) != 2 {
		t.Fatalf("expected 2 unit clauses, got %d", len(clauses))
	}
	if len(clauses[0]) != 1 || len(clauses[1]) != 1 {
		t.Fatalf("expected each clause to be a single literal")
	}
}

func TestCNFOrDistributes(t *testing.T) {
	a := core.NewArena(64)
	ctx := core.NewContext(a)
	p := core.NewVar(a, core.Free, ctx.Push("p", core.NewSort(a, core.Prop), false))
	q := core.NewVar(a, core.Free, ctx.Push("q", core.NewSort(a, core.Prop), false))
	r := core.NewVar(a, core.Free, ctx.Push("r", core.NewSort(a, core.Prop), false))
	pAndQ := fol.ToExpr(fol.Form{Kind: fol.And, L: p, R: q}, ctx, a)
	or := fol.ToExpr(fol.Form{Kind: fol.Or, L: pAndQ, R: r}, ctx, a)

	clauses := CNF(or, ctx)
	if len(clauses) != 2 {
		t.Fatalf("expected (p and q) or r to distribute into 2 clauses, got %d", len(clauses))
	}
	for _, cl := range clauses {
		if len(cl) != 2 {
			t.Fatalf("expected each clause to have 2 literals, got %d", len(cl))
		}
	}
}
