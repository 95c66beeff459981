// Package unify implements Robinson first-order unification with
// occurs check, and first-order anti-unification, over core.Expr.
//
// Grounded on original_source/src/elab/procs.cpp's commented-out
// `unify`/`antiunify`/`Antiunifier`/`showSubs`, generalized from that
// prototype's ten-variant Expr to the five-variant core.Expr (spec.md
// §3.1): structural recursion walks Sort/Var/App/Lam/Pi instead of
// Var/TRUE/FALSE/NOT/AND/OR/IMPLIES/IFF/FORALL/EXISTS/UNIQUE, and Meta
// plays the role of the prototype's UNDETERMINED var-tag.
package unify

import (
	"strconv"

	"github.com/benbjohnson/immutable"

	"github.com/dmitris/tabula/core"
)

// Subs is a substitution of metavariables with id in [0, subs.Len())
// onto Expr (or unassigned, represented by a nil entry). It is backed
// by an immutable.List, so copying a Subs is an O(1) structural-sharing
// copy and extending one never mutates a value another holder still
// uses. (Package tableau does not keep a Subs in its search state; it
// keeps a list of unify.Pair constraints and re-solves them.)
type Subs struct {
	list *immutable.List[*core.Expr]
}

// NewSubs returns the empty substitution.
func NewSubs() Subs {
	return Subs{list: immutable.NewList[*core.Expr]()}
}

// Len is one past the largest metavariable id this Subs has an opinion
// about.
func (s Subs) Len() int {
	if s.list == nil {
		return 0
	}
	return s.list.Len()
}

// At returns the term bound to Meta(id), or nil if id is unassigned or
// out of range.
func (s Subs) At(id int) *core.Expr {
	if id < 0 || id >= s.Len() {
		return nil
	}
	return s.list.Get(id)
}

// With returns a Subs identical to s except that Meta(id) now maps to e,
// growing the backing list with nil holes as needed. s itself is
// unmodified (immutable.List semantics), matching the structural-sharing
// requirement above.
func (s Subs) With(id int, e *core.Expr) Subs {
	list := s.list
	if list == nil {
		list = immutable.NewList[*core.Expr]()
	}
	for list.Len() <= id {
		list = list.Append(nil)
	}
	return Subs{list: list.Set(id, e)}
}

// Apply fully resolves e under s: every Meta(id) with a binding is
// replaced by that binding, recursively (the prototype's `applySubs`),
// so the result reflects chains of substitutions (e.g. ?0 => ?1, ?1 =>
// Sort(Prop) resolves ?0 all the way to Sort(Prop)).
func Apply(e *core.Expr, s Subs, a *core.Arena) *core.Expr {
	return e.UpdateVars(0, a, func(_ int, v *core.Expr) *core.Expr {
		if v.VarKind() != core.Meta {
			return v
		}
		bound := s.At(v.ID())
		if bound == nil {
			return v
		}
		return Apply(bound, s, a)
	})
}

// Show renders s as one "@M<id> => expr" line per assigned entry, in
// ascending id order, matching the prototype's showSubs (which renders
// the metavariable itself via Expr(VMeta, i).toString(ctx) — the same
// "@M<id>" form core.Expr.String uses for a bare Meta var).
func Show(s Subs, ctx *core.Context) string {
	out := ""
	for i := 0; i < s.Len(); i++ {
		if e := s.At(i); e != nil {
			out += "@M" + strconv.Itoa(i) + " => " + e.String(ctx) + "\n"
		}
	}
	return out
}
