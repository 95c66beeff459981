package unify

import "github.com/dmitris/tabula/core"

// antiunifier carries the two substitutions ls/rs accumulated during a
// single AntiUnify call: ls[i] and rs[i] are the two subterms that
// diverged and were generalized to Meta(i).
type antiunifier struct {
	a      *core.Arena
	ls, rs []*core.Expr
}

func (u *antiunifier) different(lhs, rhs *core.Expr) *core.Expr {
	id := len(u.ls)
	u.ls = append(u.ls, lhs)
	u.rs = append(u.rs, rhs)
	return core.NewVar(u.a, core.Meta, id)
}

func (u *antiunifier) dfs(lhs, rhs *core.Expr) *core.Expr {
	if lhs.Tag() != rhs.Tag() {
		return u.different(lhs, rhs)
	}
	switch lhs.Tag() {
	case core.TagSort:
		if lhs.SortKind() != rhs.SortKind() {
			return u.different(lhs, rhs)
		}
		return core.NewSort(u.a, lhs.SortKind())
	case core.TagVar:
		if lhs.VarKind() != rhs.VarKind() || lhs.ID() != rhs.ID() {
			return u.different(lhs, rhs)
		}
		return core.NewVar(u.a, lhs.VarKind(), lhs.ID())
	case core.TagApp:
		return core.NewApp(u.a, u.dfs(lhs.Fn(), rhs.Fn()), u.dfs(lhs.Arg(), rhs.Arg()))
	case core.TagLam:
		return core.NewLam(u.a, lhs.Hint(), u.dfs(lhs.Dom(), rhs.Dom()), u.dfs(lhs.Body(), rhs.Body()))
	case core.TagPi:
		return core.NewPi(u.a, lhs.Hint(), u.dfs(lhs.Dom(), rhs.Dom()), u.dfs(lhs.Body(), rhs.Body()))
	}
	panic("unify: unreachable Expr tag in antiunify")
}

// AntiUnify computes a syntactic generalization of lhs and rhs: a term
// generalization containing fresh metavariables at exactly the
// positions where lhs and rhs diverge, together with the substitutions
// ls/rs that recover lhs and rhs respectively from generalization
// (generalization under ls == lhs, generalization under rs == rhs).
// Every diverging position gets its own metavariable, even when the
// same pair of subterms diverges more than once, so the result is not
// the least general generalization in that case.
//
// Grounded on original_source/src/elab/procs.cpp's commented-out
// Antiunifier::dfs, generalized from the prototype's variable-arity Var
// node (with a sibling-linked child list) to core.Expr's fixed-arity
// App/Lam/Pi structure — each of which simply has two structural
// children to recurse into instead of a child list to walk pairwise.
func AntiUnify(lhs, rhs *core.Expr, a *core.Arena) (generalization *core.Expr, ls, rs Subs) {
	u := &antiunifier{a: a}
	generalization = u.dfs(lhs, rhs)
	ls, rs = NewSubs(), NewSubs()
	for i, l := range u.ls {
		ls = ls.With(i, l)
	}
	for i, r := range u.rs {
		rs = rs.With(i, r)
	}
	return generalization, ls, rs
}
