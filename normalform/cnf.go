package normalform

import (
	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

// Clause is a disjunction of literals. An empty Clause is the always-
// false empty disjunction.
type Clause []*core.Expr

// CNF distributes a quantifier-free NNF formula into a conjunction of
// clauses (spec.md §4.G). A nil/empty result is the always-true empty
// conjunction.
//
// e is expected to have already passed through NNF and Skolemize (or to
// be otherwise quantifier-free and negation-pushed); CNF does not itself
// push negations or eliminate quantifiers.
func CNF(e *core.Expr, ctx *core.Context) []Clause {
	f := fol.FromExpr(e, ctx)
	switch f.Kind {
	case fol.And:
		return append(CNF(f.L, ctx), CNF(f.R, ctx)...)
	case fol.Or:
		lc, rc := CNF(f.L, ctx), CNF(f.R, ctx)
		out := make([]Clause, 0, len(lc)*len(rc))
		for _, cl := range lc {
			for _, cr := range rc {
				clause := make(Clause, 0, len(cl)+len(cr))
				clause = append(clause, cl...)
				clause = append(clause, cr...)
				out = append(out, clause)
			}
		}
		return out
	case fol.True:
		return nil
	case fol.False:
		return []Clause{{}}
	default: // Equals, Not, Forall, Exists, Other: treated as a literal.
		return []Clause{{e}}
	}
}
