package normalform

import (
	"strconv"

	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

// Skolemize eliminates quantifiers from an NNF formula: each Forall is
// replaced by a fresh metavariable standing for an arbitrary instance
// (to be resolved later by unify.Unify), and each Exists is replaced by
// a fresh nullary constant pushed into ctx, standing for a witness.
//
// This is a deliberate simplification of textbook Skolemization, which
// makes a witness for an existential a function of every universal in
// whose scope it sits. A single-sorted, nullary skolem constant is
// sound only when no Exists sits inside a Forall it would need to
// depend on; Skolemize enforces this call contract by panicking if it
// encounters an Exists while still under a Forall, rather than silently
// emitting an unsound nullary witness. Formulas with that dependency
// should not be run through this eager pass at all: package tableau
// performs its own lazier, scope-correct skolemization rule-by-rule
// during proof search (its δ-rule) instead. Skolemize here exists for
// standalone CNF production (spec.md §4.G), not as a dependency of the
// tableau engine.
func Skolemize(e *core.Expr, ctx *core.Context, a *core.Arena) *core.Expr {
	s := &skolemizer{ctx: ctx, a: a}
	return s.run(e)
}

type skolemizer struct {
	ctx         *core.Context
	a           *core.Arena
	nextMeta    int
	nextSK      int
	forallDepth int
}

func (s *skolemizer) run(e *core.Expr) *core.Expr {
	f := fol.FromExpr(e, s.ctx)
	switch f.Kind {
	case fol.Forall:
		m := core.NewVar(s.a, core.Meta, s.nextMeta)
		s.nextMeta++
		s.forallDepth++
		result := s.run(f.Body.MakeReplace(m, s.a))
		s.forallDepth--
		return result
	case fol.Exists:
		if s.forallDepth > 0 {
			panic("normalform: Skolemize cannot witness an Exists nested inside a Forall with a nullary constant; the witness would need to depend on the enclosing universal (see Skolemize's doc comment)")
		}
		individual := core.NewVar(s.a, core.Free, s.ctx.IndividualID())
		skIdx := s.ctx.Push("sk"+strconv.Itoa(s.nextSK), individual, false)
		s.nextSK++
		c := core.NewVar(s.a, core.Free, skIdx)
		return s.run(f.Body.MakeReplace(c, s.a))
	case fol.And:
		return fol.ToExpr(fol.Form{Kind: fol.And, L: s.run(f.L), R: s.run(f.R)}, s.ctx, s.a)
	case fol.Or:
		return fol.ToExpr(fol.Form{Kind: fol.Or, L: s.run(f.L), R: s.run(f.R)}, s.ctx, s.a)
	case fol.Not:
		return fol.ToExpr(fol.Form{Kind: fol.Not, Sub: s.run(f.Sub)}, s.ctx, s.a)
	default: // True, False, Equals, Other: no quantifiers to eliminate.
		return e
	}
}
