// Package tableau implements the two-sided (Gentzen-sequent-style)
// analytic tableau proof search of spec.md §4.H: a sequent Γ ⊢ Δ
// (antecedents on the left, succedents on the right) is refuted by
// exhaustively decomposing its formulas via the classical ι/α/β/γ/δ
// uniform-notation rules until every branch either closes (some
// literal provably holds on both sides) or is saturated and open (the
// sequent is not a tautology).
//
// Grounded on original_source/src/elab/tableau.hpp, which declares this
// exact shape (Position{L,R}, Type{ι,α,β,γ,δ}, per-bucket cedent
// queues with head-index cursors, a hash set per side for membership,
// and ephemeral numUniversal/numSkolem/subs/stats fields) but leaves
// classify and the search loop as unimplemented prototype stubs; the
// rule table and DFS here are an original completion of that
// declaration, following the sequent calculus LK references in the
// header's own comments.
package tableau

import (
	"github.com/benbjohnson/immutable"

	"github.com/dmitris/tabula/core"
	"github.com/dmitris/tabula/fol"
	"github.com/dmitris/tabula/unify"
)

// Position distinguishes antecedents (L) from succedents (R), matching
// tableau.hpp's Position enum.
type Position int

const (
	L Position = iota
	R
)

func opposite(pos Position) Position {
	if pos == L {
		return R
	}
	return L
}

// Type is the uniform-notation bucket a cedent falls into: atomic,
// non-branching (alpha), branching (beta), universal (gamma), or
// existential (delta) — matching tableau.hpp's Type enum (ι,α,β,γ,δ).
type Type int

const (
	Iota Type = iota
	Alpha
	Beta
	Gamma
	Delta
	numTypes
)

func (ty Type) String() string {
	switch ty {
	case Iota:
		return "iota"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Gamma:
		return "gamma"
	case Delta:
		return "delta"
	default:
		return "Type(?)"
	}
}

// exprKey and exprHasher give core.Expr value-based identity inside an
// immutable.Map, generalizing tableau.hpp's ExprHash wrapper (which
// overloads == against a std::unordered_set's bucket hash) to
// benbjohnson/immutable's Hasher interface.
type exprKey struct{ e *core.Expr }

type exprHasher struct{}

func (exprHasher) Hash(k exprKey) uint32   { return uint32(k.e.Hash()) }
func (exprHasher) Equal(a, b exprKey) bool { return a.e.Equals(b.e) }

// classify assigns a cedent its bucket, given which side of the sequent
// it sits on. And/Or/Implies/Forall/Exists are dual across L and R, per
// the classical two-sided tableau rules summarized in tableau.hpp's
// cited references.
func classify(pos Position, kind fol.Kind) Type {
	switch kind {
	case fol.True, fol.False, fol.Equals, fol.Other:
		return Iota
	case fol.Not:
		return Alpha
	case fol.And:
		if pos == L {
			return Alpha
		}
		return Beta
	case fol.Or:
		if pos == L {
			return Beta
		}
		return Alpha
	case fol.Implies:
		if pos == L {
			return Beta
		}
		return Alpha
	case fol.Iff, fol.Unique:
		return Alpha
	case fol.Forall:
		if pos == L {
			return Gamma
		}
		return Delta
	case fol.Exists:
		if pos == L {
			return Delta
		}
		return Gamma
	}
	panic("tableau: unreachable Form Kind in classify")
}

// state is the persistent, structurally-shared proof state threaded
// through the search. Every field is either a plain value (cheap to
// copy) or a pointer into an immutable data structure (cheap to share),
// so branching a β-rule is a plain Go struct copy — the "duplicate,
// don't mutate shared state" requirement of spec.md §5 falls out of
// benbjohnson/immutable's persistence for free, with no bespoke Clone
// method needed.
type state struct {
	cedents [numTypes][2]*immutable.List[*core.Expr]
	indices [numTypes][2]int
	hashset [2]*immutable.Map[exprKey, struct{}]

	// constraints accumulates the raw (possibly metavariable-bearing)
	// equations that literal closures along this branch depend on;
	// re-solving it with unify.Unify on demand (rather than storing a
	// precomputed unify.Subs) keeps duplication a plain pointer copy.
	constraints *immutable.List[unify.Pair]

	// gammaTurn is the side expandOneGamma prefers next. It flips every
	// time a gamma cedent is instantiated, so Gamma[L] and Gamma[R] are
	// serviced round-robin instead of one side starving the other
	// whenever both have pending universal/existential cedents.
	gammaTurn Position

	closed bool
}

func newState() state {
	st := state{
		constraints: immutable.NewList[unify.Pair](),
	}
	for ty := Type(0); ty < numTypes; ty++ {
		st.cedents[ty][L] = immutable.NewList[*core.Expr]()
		st.cedents[ty][R] = immutable.NewList[*core.Expr]()
	}
	st.hashset[L] = immutable.NewMap[exprKey, struct{}](exprHasher{})
	st.hashset[R] = immutable.NewMap[exprKey, struct{}](exprHasher{})
	return st
}

func collectPairs(list *immutable.List[unify.Pair]) []unify.Pair {
	out := make([]unify.Pair, 0, list.Len())
	itr := list.Iterator()
	for !itr.Done() {
		_, p := itr.Next()
		out = append(out, p)
	}
	return out
}

// addCedent classifies e for side pos, records it, and — for an atomic
// (ι) cedent — tests for branch closure against the opposite side:
// either an exact structural match (fast hash-set path), or a
// metavariable-bearing literal pair that unify.Unify can reconcile with
// everything already constrained on this branch. Forall on the
// succedent, and Exists on the antecedent, classify as Iota's dual
// cousins Delta directly below; True reaching the succedent or False
// reaching the antecedent closes the branch immediately (an axiomatic
// sequent).
func (t *Tableau) addCedent(st state, pos Position, e *core.Expr) state {
	f := fol.FromExpr(e, t.ctx)

	if f.Kind == fol.True && pos == R {
		st.closed = true
		return st
	}
	if f.Kind == fol.False && pos == L {
		st.closed = true
		return st
	}

	ty := classify(pos, f.Kind)
	if ty != Iota {
		st.cedents[ty][pos] = st.cedents[ty][pos].Append(e)
		return st
	}

	key := exprKey{e}
	if _, exists := st.hashset[pos].Get(key); exists {
		return st // already recorded, nothing new to check
	}
	st.hashset[pos] = st.hashset[pos].Set(key, struct{}{})
	st.cedents[Iota][pos] = st.cedents[Iota][pos].Append(e)

	other := opposite(pos)
	if _, exists := st.hashset[other].Get(key); exists {
		st.closed = true
		return st
	}

	base := collectPairs(st.constraints)
	itr := st.cedents[Iota][other].Iterator()
	for !itr.Done() {
		_, cand := itr.Next()
		pairs := append(append([]unify.Pair(nil), base...), unify.Pair{L: e, R: cand})
		if _, ok := unify.Unify(pairs, t.a); ok {
			st.constraints = st.constraints.Append(unify.Pair{L: e, R: cand})
			st.closed = true
			return st
		}
	}
	return st
}
