package tableau

import (
	"fmt"
	"strconv"

	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
)

// Stats mirrors tableau.hpp's bookkeeping fields (maxDepthReached,
// invocations, branches, closed).
type Stats struct {
	MaxDepthReached int
	Invocations     int
	Branches        int
	Closed          int
}

// Tableau holds a sequent under construction (via AddAntecedent /
// AddSuccedent) and searches it for a closed proof (via Search).
type Tableau struct {
	ctx *core.Context
	a   *core.Arena

	initial state

	numUniversal int
	numSkolem    int

	stats Stats
}

// New creates an empty Tableau over ctx, allocating fresh formulas (from
// Skolemization and quantifier instantiation) in a.
func New(ctx *core.Context, a *core.Arena) *Tableau {
	return &Tableau{ctx: ctx, a: a, initial: newState()}
}

// AddAntecedent adds e to the left (Γ) side of the sequent under
// construction.
func (t *Tableau) AddAntecedent(e *core.Expr) { t.initial = t.addCedent(t.initial, L, e) }

// AddSuccedent adds e to the right (Δ) side of the sequent under
// construction.
func (t *Tableau) AddSuccedent(e *core.Expr) { t.initial = t.addCedent(t.initial, R, e) }

// Clear discards all cedents and resets statistics, for reuse of the
// same Tableau value across independent searches.
func (t *Tableau) Clear() {
	t.initial = newState()
	t.numUniversal = 0
	t.numSkolem = 0
	t.stats = Stats{}
}

// Search attempts to close the sequent, trying successively larger
// quantifier-instantiation budgets up to maxDepth (iterative deepening:
// spec.md §4.H step 1). It returns true the first time some depth
// yields a fully closed tableau.
func (t *Tableau) Search(maxDepth int) bool {
	if t.initial.closed {
		t.stats.Closed++
		return true
	}
	for depth := 0; depth <= maxDepth; depth++ {
		t.stats.Invocations++
		t.numUniversal = 0
		t.numSkolem = 0
		if t.run(t.initial, depth) {
			t.stats.MaxDepthReached = depth
			t.stats.Closed++
			return true
		}
	}
	t.stats.MaxDepthReached = maxDepth
	return false
}

// PrintStats renders the search statistics, matching tableau.hpp's
// printStats.
func (t *Tableau) PrintStats() string {
	return "max depth reached: " + strconv.Itoa(t.stats.MaxDepthReached) + "\n" +
		"invocations: " + strconv.Itoa(t.stats.Invocations) + "\n" +
		"branches: " + strconv.Itoa(t.stats.Branches) + "\n" +
		"closed: " + strconv.Itoa(t.stats.Closed) + "\n"
}

// run saturates alpha rules, then expands delta cedents (which cost no
// budget), then spends budget on gamma instantiation, then branches on
// a beta rule, repeating until the
// branch closes or every queue is exhausted (an open, unclosable
// branch — failure at this depth).
func (t *Tableau) run(st state, budget int) bool {
	for {
		var progressed bool
		st, progressed = t.saturateAlpha(st)
		if st.closed {
			return true
		}
		if progressed {
			continue
		}

		if ns, ok := t.expandOneDelta(st); ok {
			st = ns
			if st.closed {
				return true
			}
			continue
		}

		if budget > 0 {
			if ns, ok := t.expandOneGamma(st); ok {
				st = ns
				budget--
				if st.closed {
					return true
				}
				continue
			}
		}

		left, right, ok := t.expandOneBeta(st)
		if ok {
			t.stats.Branches++
			// A beta split proves the sequent only if both children do:
			// the two branches are the two cases a beta formula's truth
			// table demands, not alternative routes to the same proof.
			return t.run(left, budget) && t.run(right, budget)
		}

		return false
	}
}

// saturateAlpha expands every pending non-branching cedent until none
// remain (or the branch closes). Alpha rules can only ever shrink or
// preserve the remaining proof obligation, so full saturation before
// touching gamma/delta/beta cedents is always safe and strictly
// reduces work (spec.md §4.H step 2's ι < α priority).
func (t *Tableau) saturateAlpha(st state) (state, bool) {
	progressed := false
	for {
		advanced := false
		for _, pos := range [2]Position{L, R} {
			for st.indices[Alpha][pos] < st.cedents[Alpha][pos].Len() {
				e := st.cedents[Alpha][pos].Get(st.indices[Alpha][pos])
				st.indices[Alpha][pos]++
				st = t.expandAlpha(st, pos, e)
				advanced = true
				progressed = true
				if st.closed {
					return st, true
				}
			}
		}
		if !advanced {
			return st, progressed
		}
	}
}

func (t *Tableau) expandAlpha(st state, pos Position, e *core.Expr) state {
	f := fol.FromExpr(e, t.ctx)
	switch f.Kind {
	case fol.Not:
		return t.addCedent(st, opposite(pos), f.Sub)
	case fol.And, fol.Or:
		// And is alpha only at L, Or is alpha only at R; both add both
		// operands to the same side they were found on.
		st = t.addCedent(st, pos, f.L)
		if st.closed {
			return st
		}
		return t.addCedent(st, pos, f.R)
	case fol.Implies:
		// Implies is alpha only at R: Γ ⊢ p->q,Δ reduces to Γ,p ⊢ q,Δ.
		st = t.addCedent(st, L, f.L)
		if st.closed {
			return st
		}
		return t.addCedent(st, R, f.R)
	case fol.Iff:
		pq, qp := fol.SplitIff(e, t.ctx, t.a)
		conj := fol.ToExpr(fol.Form{Kind: fol.And, L: pq, R: qp}, t.ctx, t.a)
		return t.addCedent(st, pos, conj)
	case fol.Unique:
		exists, uniqueness := fol.SplitUnique(e, t.ctx, t.a)
		conj := fol.ToExpr(fol.Form{Kind: fol.And, L: exists, R: uniqueness}, t.ctx, t.a)
		return t.addCedent(st, pos, conj)
	}
	panic("tableau: expandAlpha called on a non-alpha Form Kind")
}

// expandOneDelta processes a single existential-witness cedent (Forall
// at R, or Exists at L): the bound variable is instantiated with a
// fresh nullary constant — a genuinely new name the rest of the proof
// cannot have depended on — and the cedent is consumed (never
// requeued), matching the sequent calculus's eigenvariable condition.
func (t *Tableau) expandOneDelta(st state) (state, bool) {
	for _, pos := range [2]Position{L, R} {
		if st.indices[Delta][pos] < st.cedents[Delta][pos].Len() {
			e := st.cedents[Delta][pos].Get(st.indices[Delta][pos])
			st.indices[Delta][pos]++

			individual := core.NewVar(t.a, core.Free, t.ctx.IndividualID())
			skIdx := t.ctx.Push("tabsk"+strconv.Itoa(t.numSkolem), individual, false)
			t.numSkolem++
			c := core.NewVar(t.a, core.Free, skIdx)

			f := fol.FromExpr(e, t.ctx)
			body := f.Body.MakeReplace(c, t.a)
			return t.addCedent(st, pos, body), true
		}
	}
	return st, false
}

// expandOneGamma processes a single universal-instantiation cedent
// (Forall at L, or Exists at R): the bound variable is instantiated
// with a fresh metavariable, to be pinned down later by unification
// against whatever the branch eventually needs it to equal, and the
// original cedent is requeued so it can be instantiated again with a
// different metavariable (spec.md §4.H's γ re-enqueueing).
//
// The two sides are serviced round-robin via st.gammaTurn: trying the
// preferred side first and falling back to the other, then flipping the
// preference on every successful instantiation. Without this, scanning
// {L, R} in fixed order always picks L as long as Gamma[L] is
// non-empty (a requeue keeps it non-empty forever), starving Gamma[R]
// — exactly the S8 shape of Γ={∀x.P(x)}, Δ={∃x.P(x)}, where the ∃ on
// the right would otherwise never be instantiated.
func (t *Tableau) expandOneGamma(st state) (state, bool) {
	order := [2]Position{st.gammaTurn, opposite(st.gammaTurn)}
	for _, pos := range order {
		if st.indices[Gamma][pos] < st.cedents[Gamma][pos].Len() {
			e := st.cedents[Gamma][pos].Get(st.indices[Gamma][pos])
			st.indices[Gamma][pos]++
			st.gammaTurn = opposite(pos)

			m := core.NewVar(t.a, core.Meta, t.numUniversal)
			t.numUniversal++

			f := fol.FromExpr(e, t.ctx)
			body := f.Body.MakeReplace(m, t.a)
			st = t.addCedent(st, pos, body)
			if st.closed {
				return st, true
			}
			st.cedents[Gamma][pos] = st.cedents[Gamma][pos].Append(e)
			return st, true
		}
	}
	return st, false
}

// expandOneBeta picks a single branching cedent and returns the two
// child states, each a plain copy of st (see state's doc comment for
// why that's sufficient) with one disjunct/implication-half added.
func (t *Tableau) expandOneBeta(st state) (left, right state, ok bool) {
	for _, pos := range [2]Position{L, R} {
		if st.indices[Beta][pos] < st.cedents[Beta][pos].Len() {
			e := st.cedents[Beta][pos].Get(st.indices[Beta][pos])
			st.indices[Beta][pos]++
			f := fol.FromExpr(e, t.ctx)

			left, right = st, st
			switch f.Kind {
			case fol.And: // beta only at R: branch on each conjunct.
				left = t.addCedent(left, R, f.L)
				right = t.addCedent(right, R, f.R)
			case fol.Or: // beta only at L: branch on each disjunct.
				left = t.addCedent(left, L, f.L)
				right = t.addCedent(right, L, f.R)
			case fol.Implies: // beta only at L: Γ,p->q ⊢ Δ needs both premises.
				left = t.addCedent(left, R, f.L)
				right = t.addCedent(right, L, f.R)
			default:
				panic(fmt.Sprintf("tableau: expandOneBeta called on non-beta Form Kind %v", f.Kind))
			}
			return left, right, true
		}
	}
	return state{}, state{}, false
}
