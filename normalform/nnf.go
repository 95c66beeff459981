// Package normalform implements the propositional rewriting passes of
// spec.md §4.G: negation normal form, Skolemization, and conjunctive
// normal form, all operating on the fol.Form projection of core.Expr.
//
// Grounded on original_source/src/elab/procs.cpp's commented-out toNNF,
// generalized from that prototype's native FORALL/EXISTS/UNIQUE Expr
// tags to package fol's structural classification of core.Expr.
package normalform

import (
	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

// NNF pushes negation to the leaves of e, expanding Implies/Iff/Unique
// along the way (toNNF's IMPLIES/IFF/UNIQUE cases), and dualizing
// And/Or/Forall/Exists under negation.
func NNF(e *core.Expr, ctx *core.Context, a *core.Arena) *core.Expr {
	return nnf(e, ctx, a, false)
}

func nnf(e *core.Expr, ctx *core.Context, a *core.Arena, negated bool) *core.Expr {
	f := fol.FromExpr(e, ctx)
	switch f.Kind {
	case fol.True:
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.False, fol.True)}, ctx, a)
	case fol.False:
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.True, fol.False)}, ctx, a)
	case fol.Not:
		return nnf(f.Sub, ctx, a, !negated)
	case fol.And:
		l, r := nnf(f.L, ctx, a, negated), nnf(f.R, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.Or, fol.And), L: l, R: r}, ctx, a)
	case fol.Or:
		l, r := nnf(f.L, ctx, a, negated), nnf(f.R, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.And, fol.Or), L: l, R: r}, ctx, a)
	case fol.Implies:
		// (p implies q) seen as ((not p) or q).
		l, r := nnf(f.L, ctx, a, !negated), nnf(f.R, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.And, fol.Or), L: l, R: r}, ctx, a)
	case fol.Iff:
		// (p iff q) seen as ((p implies q) and (q implies p)).
		pq, qp := fol.SplitIff(e, ctx, a)
		l, r := nnf(pq, ctx, a, negated), nnf(qp, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.Or, fol.And), L: l, R: r}, ctx, a)
	case fol.Forall:
		body := nnf(f.Body, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.Exists, fol.Forall), Name: f.Name, Body: body}, ctx, a)
	case fol.Exists:
		body := nnf(f.Body, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.Forall, fol.Exists), Name: f.Name, Body: body}, ctx, a)
	case fol.Unique:
		// (unique x, p) seen as ((exists x, p) and (forall x, p implies
		// (forall x', p implies x = x'))).
		exists, uniqueness := fol.SplitUnique(e, ctx, a)
		l := nnf(exists, ctx, a, negated)
		r := nnf(uniqueness, ctx, a, negated)
		return fol.ToExpr(fol.Form{Kind: sel(negated, fol.Or, fol.And), L: l, R: r}, ctx, a)
	default: // Equals, Other: atomic, negation stops here.
		if negated {
			return fol.ToExpr(fol.Form{Kind: fol.Not, Sub: e}, ctx, a)
		}
		return e
	}
}

func sel(cond bool, ifTrue, ifFalse fol.Kind) fol.Kind {
	if cond {
		return ifTrue
	}
	return ifFalse
}
