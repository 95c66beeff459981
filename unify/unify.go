package unify

import "github.com/dmitris/tabula/core"

// Pair is one equation lhs = rhs to be unified.
type Pair struct {
	L, R *core.Expr
}

// Unify runs the Robinson unification algorithm over eqs, returning a
// substitution that makes every pair structurally equal (ok == true), or
// ok == false if no such substitution exists (occurs-check failure or a
// head mismatch). Grounded on the prototype `unify` in
// original_source/src/elab/procs.cpp, with VMeta generalized to core's
// Meta VarKind and the Expr connective cases generalized to App/Lam/Pi
// structural recursion.
//
// May not terminate, or may terminate with an exponentially large
// substitution, on pathological input; this mirrors the prototype's own
// documented caveat.
func Unify(eqs []Pair, a *core.Arena) (Subs, bool) {
	work := append([]Pair(nil), eqs...)
	res := NewSubs()

	for i := 0; i < len(work); i++ {
		lhs, rhs := work[i].L, work[i].R

		if isMeta(lhs) {
			if lhs.Equals(rhs) {
				continue
			}
			if rhs.Occurs(core.Meta, lhs.ID()) {
				return Subs{}, false
			}
			res = putSubs(res, lhs.ID(), rhs, work, i+1, a)
			continue
		}
		if isMeta(rhs) {
			if lhs.Equals(rhs) {
				continue
			}
			if lhs.Occurs(core.Meta, rhs.ID()) {
				return Subs{}, false
			}
			res = putSubs(res, rhs.ID(), lhs, work, i+1, a)
			continue
		}

		if lhs.Tag() != rhs.Tag() {
			return Subs{}, false
		}
		switch lhs.Tag() {
		case core.TagSort:
			if lhs.SortKind() != rhs.SortKind() {
				return Subs{}, false
			}
		case core.TagVar:
			if lhs.VarKind() != rhs.VarKind() || lhs.ID() != rhs.ID() {
				return Subs{}, false
			}
		case core.TagApp:
			work = append(work, Pair{lhs.Fn(), rhs.Fn()}, Pair{lhs.Arg(), rhs.Arg()})
		case core.TagLam, core.TagPi:
			work = append(work, Pair{lhs.Dom(), rhs.Dom()}, Pair{lhs.Body(), rhs.Body()})
		}
	}

	return res, true
}

func isMeta(e *core.Expr) bool {
	return e.Tag() == core.TagVar && e.VarKind() == core.Meta
}

// putSubs records id => e in res, then rewrites every not-yet-processed
// equation (work[i0:]) to eliminate Meta(id), matching the prototype's
// putsubs closure.
func putSubs(res Subs, id int, e *core.Expr, work []Pair, i0 int, a *core.Arena) Subs {
	res = res.With(id, e)
	for i := i0; i < len(work); i++ {
		work[i].L = substMeta(work[i].L, id, e, a)
		work[i].R = substMeta(work[i].R, id, e, a)
	}
	return res
}

func substMeta(e *core.Expr, id int, repl *core.Expr, a *core.Arena) *core.Expr {
	return e.UpdateVars(0, a, func(_ int, v *core.Expr) *core.Expr {
		if v.VarKind() == core.Meta && v.ID() == id {
			return repl
		}
		return v
	})
}

// EqualAfterSubs reports whether l and r become structurally equal once
// fully resolved under s — the test a tableau branch uses to decide
// whether two metavariable-bearing literals could close against each
// other (spec.md §4.H).
func EqualAfterSubs(l, r *core.Expr, s Subs, a *core.Arena) bool {
	return Apply(l, s, a).Equals(Apply(r, s, a))
}
