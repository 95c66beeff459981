// Package fol implements the first-order syntactic surface of spec.md
// §3.4 and §4.E: a projection of core.Expr into a small closed set of
// logical shapes (Equals, True, False, Not, And, Or, Implies, Iff,
// Forall, Exists, Unique, or Other), and its inverse.
//
// Grounded on original_source/src/elab/procs.cpp's commented-out NNF
// pass, which recognized these same shapes directly on its own
// connective-bearing Expr tag. Here the five-variant core.Expr of
// spec.md §3.1 carries no native connective tags, so the shapes are
// recovered structurally: Forall is a Pi whose body is a proposition
// (Curry-Howard: ∀x:A.P is literally Pi(x:A, P) when P:Prop), and every
// other connective is the application of one of Context's reserved
// built-in free variables (see core.Context's doc comment and
// SPEC_FULL.md's "Reserved built-in identifiers"). Exists and Unique
// additionally wrap their body in a Lam so the bound name survives the
// round trip, since there is no Sigma-former to hold it directly.
package fol

import "github.com/dmitris/tabula/core"

// Kind is the outermost shape recognized by FromExpr.
type Kind int

const (
	Other Kind = iota
	Equals
	True
	False
	Not
	And
	Or
	Implies
	Iff
	Forall
	Exists
	Unique
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "Other"
	case Equals:
		return "Equals"
	case True:
		return "True"
	case False:
		return "False"
	case Not:
		return "Not"
	case And:
		return "And"
	case Or:
		return "Or"
	case Implies:
		return "Implies"
	case Iff:
		return "Iff"
	case Forall:
		return "Forall"
	case Exists:
		return "Exists"
	case Unique:
		return "Unique"
	default:
		return "Kind(?)"
	}
}

// Form is the classified shape of an Expr. Which fields are valid
// depends on Kind:
//
//   - Equals, And, Or, Implies, Iff: L, R
//   - Not: Sub
//   - Forall, Exists, Unique: Name, Body
//   - Other: Raw
//
// True and False carry no payload.
type Form struct {
	Kind Kind
	L, R *core.Expr
	Sub  *core.Expr
	Name string
	Body *core.Expr
	Raw  *core.Expr
}

// spine unwraps an application chain into its head and the arguments
// applied to it, outermost argument last.
func spine(e *core.Expr) (head *core.Expr, args []*core.Expr) {
	for e.Tag() == core.TagApp {
		args = append(args, e.Arg())
		e = e.Fn()
	}
	// args were collected innermost-applied-last-seen; reverse to get
	// application order.
	for l, r := 0, len(args)-1; l < r; l, r = l+1, r-1 {
		args[l], args[r] = args[r], args[l]
	}
	return e, args
}

func isBuiltin(head *core.Expr, id int) bool {
	return head.Tag() == core.TagVar && head.VarKind() == core.Free && head.ID() == id
}

// FromExpr classifies e's outermost shape. e is assumed to already be a
// well-typed, closed proposition (spec.md §4.H's tableau precondition);
// FromExpr performs no type checking of its own.
func FromExpr(e *core.Expr, ctx *core.Context) Form {
	if e.Tag() == core.TagPi {
		return Form{Kind: Forall, Name: e.Hint(), Body: e.Body()}
	}

	head, args := spine(e)
	if head.Tag() != core.TagVar || head.VarKind() != core.Free {
		return Form{Kind: Other, Raw: e}
	}

	switch {
	case isBuiltin(head, ctx.EqualsID()) && len(args) == 2:
		return Form{Kind: Equals, L: args[0], R: args[1]}
	case isBuiltin(head, ctx.TrueID()) && len(args) == 0:
		return Form{Kind: True}
	case isBuiltin(head, ctx.FalseID()) && len(args) == 0:
		return Form{Kind: False}
	case isBuiltin(head, ctx.NotID()) && len(args) == 1:
		return Form{Kind: Not, Sub: args[0]}
	case isBuiltin(head, ctx.AndID()) && len(args) == 2:
		return Form{Kind: And, L: args[0], R: args[1]}
	case isBuiltin(head, ctx.OrID()) && len(args) == 2:
		return Form{Kind: Or, L: args[0], R: args[1]}
	case isBuiltin(head, ctx.ImpliesID()) && len(args) == 2:
		return Form{Kind: Implies, L: args[0], R: args[1]}
	case isBuiltin(head, ctx.IffID()) && len(args) == 2:
		return Form{Kind: Iff, L: args[0], R: args[1]}
	case isBuiltin(head, ctx.ExistsID()) && len(args) == 1 && args[0].Tag() == core.TagLam:
		return Form{Kind: Exists, Name: args[0].Hint(), Body: args[0].Body()}
	case isBuiltin(head, ctx.UniqueID()) && len(args) == 1 && args[0].Tag() == core.TagLam:
		return Form{Kind: Unique, Name: args[0].Hint(), Body: args[0].Body()}
	default:
		return Form{Kind: Other, Raw: e}
	}
}

func app2(a *core.Arena, head int, l, r *core.Expr) *core.Expr {
	return core.NewApp(a, core.NewApp(a, core.NewVar(a, core.Free, head), l), r)
}

// individualType is the fixed domain Forall/Exists/Unique quantify
// over: the "individual" built-in reserved by core.NewContext. §3.4's
// Forall(name, body) carries no domain type of its own, so ToExpr must
// pick one; a single-sorted first-order domain matches the tableau's
// own first-order scope (spec.md §4.H) and original_source's
// single-sorted SVAR binder.
func individualType(ctx *core.Context, a *core.Arena) *core.Expr {
	return core.NewVar(a, core.Free, ctx.IndividualID())
}

// ToExpr is the inverse of FromExpr: FromExpr(ToExpr(f, ctx, a), ctx) ==
// f modulo the choice of bound-variable hint (spec.md §3.4's round-trip
// law).
func ToExpr(f Form, ctx *core.Context, a *core.Arena) *core.Expr {
	switch f.Kind {
	case Equals:
		return app2(a, ctx.EqualsID(), f.L, f.R)
	case True:
		return core.NewVar(a, core.Free, ctx.TrueID())
	case False:
		return core.NewVar(a, core.Free, ctx.FalseID())
	case Not:
		return core.NewApp(a, core.NewVar(a, core.Free, ctx.NotID()), f.Sub)
	case And:
		return app2(a, ctx.AndID(), f.L, f.R)
	case Or:
		return app2(a, ctx.OrID(), f.L, f.R)
	case Implies:
		return app2(a, ctx.ImpliesID(), f.L, f.R)
	case Iff:
		return app2(a, ctx.IffID(), f.L, f.R)
	case Forall:
		return core.NewPi(a, f.Name, individualType(ctx, a), f.Body)
	case Exists:
		lam := core.NewLam(a, f.Name, individualType(ctx, a), f.Body)
		return core.NewApp(a, core.NewVar(a, core.Free, ctx.ExistsID()), lam)
	case Unique:
		lam := core.NewLam(a, f.Name, individualType(ctx, a), f.Body)
		return core.NewApp(a, core.NewVar(a, core.Free, ctx.UniqueID()), lam)
	default:
		return f.Raw
	}
}

// SplitIff implements spec.md §4.E: splitIff(p ↔ q) yields (p → q, q →
// p). Panics if e is not an Iff shape; callers classify first.
func SplitIff(e *core.Expr, ctx *core.Context, a *core.Arena) (pImpliesQ, qImpliesP *core.Expr) {
	f := FromExpr(e, ctx)
	if f.Kind != Iff {
		panic("fol: SplitIff called on a non-Iff expression")
	}
	pImpliesQ = ToExpr(Form{Kind: Implies, L: f.L, R: f.R}, ctx, a)
	qImpliesP = ToExpr(Form{Kind: Implies, L: f.R, R: f.L}, ctx, a)
	return
}

// SplitUnique implements spec.md §4.E: splitUnique(∃!x.P) yields
// (∃x.P, ∀x.(P → ∀x'.(P[x'] → x = x'))). Panics if e is not a Unique
// shape.
func SplitUnique(e *core.Expr, ctx *core.Context, a *core.Arena) (exists, uniqueness *core.Expr) {
	f := FromExpr(e, ctx)
	if f.Kind != Unique {
		panic("fol: SplitUnique called on a non-Unique expression")
	}
	exists = ToExpr(Form{Kind: Exists, Name: f.Name, Body: f.Body}, ctx, a)

	// ∀x.(P → ∀x'.(P[x'] → x = x'))
	// Inner: P[x'] → x = x', where x is Bound(1) and x' is Bound(0) from
	// the perspective of the innermost binder.
	innerEq := app2(a, ctx.EqualsID(), core.NewVar(a, core.Bound, 1), core.NewVar(a, core.Bound, 0))
	// f.Body reused verbatim one binder deeper: its Bound(0) was written
	// relative to the binder it came from (x), so placed here — under
	// the new x' binder with no shift — that same Bound(0) resolves to
	// x' instead, giving P[x']. Shifting it first would leave Bound(0)
	// pointing past x' back at x, which is the bug this guards against.
	innerImplies := app2(a, ctx.ImpliesID(), f.Body, innerEq)
	forallXPrime := core.NewPi(a, f.Name+"'", individualType(ctx, a), innerImplies)
	outerImplies := app2(a, ctx.ImpliesID(), f.Body, forallXPrime)
	uniqueness = core.NewPi(a, f.Name, individualType(ctx, a), outerImplies)
	return
}
