// Package core implements the dependently-typed term representation
// (Expr), the region allocator it lives in, the context of typed
// declarations and hypotheses, and the bidirectional type checker.
//
// Grounded on original_source/src/core/{expr.cpp,context.cpp} for the
// operation shapes (clone/equals/hash/occurs/size/checkType/toString),
// adapted to the five-variant Expr of spec.md §3.1 (Sort/Var/App/Lam/Pi)
// rather than the prototype's ten-variant one, and on the teacher's
// VarTracker (wdamron-poly/internal/typeutil/var_tracker.go) for the
// block-allocation discipline now generalized into package arena.
package core

import (
	"github.com/dmitris/tabula/arena"
)

// Tag identifies which of the five Expr variants a node is.
type Tag int

const (
	TagSort Tag = iota
	TagVar
	TagApp
	TagLam
	TagPi
)

func (t Tag) String() string {
	switch t {
	case TagSort:
		return "Sort"
	case TagVar:
		return "Var"
	case TagApp:
		return "App"
	case TagLam:
		return "Lam"
	case TagPi:
		return "Pi"
	default:
		return "Tag(?)"
	}
}

// SortKind distinguishes the two universes.
type SortKind int

const (
	Prop SortKind = iota
	Type
)

func (s SortKind) String() string {
	if s == Prop {
		return "Prop"
	}
	return "Type"
}

// VarKind distinguishes bound, free (context), and metavariable
// occurrences.
type VarKind int

const (
	Bound VarKind = iota
	Free
	Meta
)

func (k VarKind) String() string {
	switch k {
	case Bound:
		return "Bound"
	case Free:
		return "Free"
	case Meta:
		return "Meta"
	default:
		return "VarKind(?)"
	}
}

// Arena is the region that owns Expr nodes.
type Arena = arena.Arena[Expr]

// NewArena creates an Expr arena with the given block size
// (arena.DefaultBlockSize if blockSize <= 0).
func NewArena(blockSize int) *Arena { return arena.New[Expr](blockSize) }

// Expr is the single tagged-union term representation: Sort, Var, App,
// Lam, or Pi. Fields irrelevant to the current Tag are simply unused,
// following the sum-type discipline of spec.md §9 (one concrete
// tagged-variant type, exhaustive switches, no class-hierarchy
// polymorphism).
type Expr struct {
	tag Tag

	// Sort
	sortKind SortKind

	// Var
	varKind VarKind
	id      int

	// App
	fn, arg *Expr

	// Lam / Pi
	hint string // display-only; ignored by Equals/Hash
	dom  *Expr
	body *Expr
}

// Tag reports which variant e is.
func (e *Expr) Tag() Tag { return e.tag }

// SortKind is valid when Tag() == TagSort.
func (e *Expr) SortKind() SortKind { return e.sortKind }

// VarKind is valid when Tag() == TagVar.
func (e *Expr) VarKind() VarKind { return e.varKind }

// ID is the de Bruijn index (Bound), context index (Free), or
// metavariable id (Meta); valid when Tag() == TagVar.
func (e *Expr) ID() int { return e.id }

// Fn and Arg are valid when Tag() == TagApp.
func (e *Expr) Fn() *Expr  { return e.fn }
func (e *Expr) Arg() *Expr { return e.arg }

// Hint, Dom and Body are valid when Tag() is TagLam or TagPi. Hint is a
// display-only name, ignored by Equals/Hash/structural operations.
func (e *Expr) Hint() string { return e.hint }
func (e *Expr) Dom() *Expr   { return e.dom }
func (e *Expr) Body() *Expr  { return e.body }

// NewSort constructs Sort(k).
func NewSort(a *Arena, k SortKind) *Expr {
	return a.Alloc(Expr{tag: TagSort, sortKind: k})
}

// NewVar constructs Var(kind, id).
func NewVar(a *Arena, kind VarKind, id int) *Expr {
	return a.Alloc(Expr{tag: TagVar, varKind: kind, id: id})
}

// NewApp constructs App(fn, arg).
func NewApp(a *Arena, fn, arg *Expr) *Expr {
	return a.Alloc(Expr{tag: TagApp, fn: fn, arg: arg})
}

// NewLam constructs Lam(hint, dom, body).
func NewLam(a *Arena, hint string, dom, body *Expr) *Expr {
	return a.Alloc(Expr{tag: TagLam, hint: hint, dom: dom, body: body})
}

// NewPi constructs Pi(hint, dom, body).
func NewPi(a *Arena, hint string, dom, body *Expr) *Expr {
	return a.Alloc(Expr{tag: TagPi, hint: hint, dom: dom, body: body})
}

// Clone deep-copies e into dst, preserving hints.
func (e *Expr) Clone(dst *Arena) *Expr {
	switch e.tag {
	case TagSort:
		return NewSort(dst, e.sortKind)
	case TagVar:
		return NewVar(dst, e.varKind, e.id)
	case TagApp:
		return NewApp(dst, e.fn.Clone(dst), e.arg.Clone(dst))
	case TagLam:
		return NewLam(dst, e.hint, e.dom.Clone(dst), e.body.Clone(dst))
	case TagPi:
		return NewPi(dst, e.hint, e.dom.Clone(dst), e.body.Clone(dst))
	}
	panic("core: unreachable Expr tag in Clone")
}

// Equals is structural equality: hints and the display-only parts of a
// binder are ignored, but the Var kind (Bound/Free/Meta) is not.
func (e *Expr) Equals(o *Expr) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	if e.tag != o.tag {
		return false
	}
	switch e.tag {
	case TagSort:
		return e.sortKind == o.sortKind
	case TagVar:
		return e.varKind == o.varKind && e.id == o.id
	case TagApp:
		return e.fn.Equals(o.fn) && e.arg.Equals(o.arg)
	case TagLam, TagPi:
		return e.dom.Equals(o.dom) && e.body.Equals(o.body)
	}
	panic("core: unreachable Expr tag in Equals")
}

// hashCombine mixes v into seed, matching the combiner used throughout
// original_source/src/core/expr.cpp (hash_combine), widened to 64 bits.
func hashCombine(seed, v uint64) uint64 {
	return seed ^ (v + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

// Hash is consistent with Equals (hint excluded from both).
func (e *Expr) Hash() uint64 {
	h := uint64(e.tag)
	switch e.tag {
	case TagSort:
		h = hashCombine(h, uint64(e.sortKind))
	case TagVar:
		h = hashCombine(h, uint64(e.varKind))
		h = hashCombine(h, uint64(e.id))
	case TagApp:
		h = hashCombine(h, e.fn.Hash())
		h = hashCombine(h, e.arg.Hash())
	case TagLam, TagPi:
		h = hashCombine(h, e.dom.Hash())
		h = hashCombine(h, e.body.Hash())
	}
	return h
}

// Occurs reports whether Var(kind, id) appears anywhere in e.
func (e *Expr) Occurs(kind VarKind, id int) bool {
	switch e.tag {
	case TagSort:
		return false
	case TagVar:
		return e.varKind == kind && e.id == id
	case TagApp:
		return e.fn.Occurs(kind, id) || e.arg.Occurs(kind, id)
	case TagLam, TagPi:
		return e.dom.Occurs(kind, id) || e.body.Occurs(kind, id)
	}
	panic("core: unreachable Expr tag in Occurs")
}

// Size is the node count (1 + sum of children).
func (e *Expr) Size() int {
	switch e.tag {
	case TagSort, TagVar:
		return 1
	case TagApp:
		return 1 + e.fn.Size() + e.arg.Size()
	case TagLam, TagPi:
		return 1 + e.dom.Size() + e.body.Size()
	}
	panic("core: unreachable Expr tag in Size")
}

// NumUndetermined is 1 + the maximum Meta id occurring in e (0 if none).
func (e *Expr) NumUndetermined() int {
	switch e.tag {
	case TagSort:
		return 0
	case TagVar:
		if e.varKind == Meta {
			return e.id + 1
		}
		return 0
	case TagApp:
		return max(e.fn.NumUndetermined(), e.arg.NumUndetermined())
	case TagLam, TagPi:
		return max(e.dom.NumUndetermined(), e.body.NumUndetermined())
	}
	panic("core: unreachable Expr tag in NumUndetermined")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// UpdateVars traverses e, applying f to every Var node, threading the
// number of binders crossed since the start of the traversal (depth).
// This is the single rewrite primitive that substitution, lifting, and
// context discharge are all built from.
func (e *Expr) UpdateVars(depth int, a *Arena, f func(depth int, v *Expr) *Expr) *Expr {
	switch e.tag {
	case TagSort:
		return e
	case TagVar:
		return f(depth, e)
	case TagApp:
		return NewApp(a, e.fn.UpdateVars(depth, a, f), e.arg.UpdateVars(depth, a, f))
	case TagLam:
		return NewLam(a, e.hint, e.dom.UpdateVars(depth, a, f), e.body.UpdateVars(depth+1, a, f))
	case TagPi:
		return NewPi(a, e.hint, e.dom.UpdateVars(depth, a, f), e.body.UpdateVars(depth+1, a, f))
	}
	panic("core: unreachable Expr tag in UpdateVars")
}

// liftBound shifts every Bound index in e up by `by`, skipping indices
// that are locally bound within e itself (tracked via the threaded
// depth). Used when a substituted term is carried under a binder.
func liftBound(e *Expr, by int, a *Arena) *Expr {
	if by == 0 {
		return e
	}
	return e.UpdateVars(0, a, func(depth int, v *Expr) *Expr {
		if v.varKind == Bound && v.id >= depth {
			return NewVar(a, Bound, v.id+by)
		}
		return v
	})
}

// MakeReplace fills the hole at de Bruijn index 0 in e (a term with one
// free binder) with arg, decrementing deeper Bound indices and lifting
// arg's own Bound indices as they cross the binders already present in
// e.
func (e *Expr) MakeReplace(argVal *Expr, a *Arena) *Expr {
	return e.UpdateVars(0, a, func(depth int, v *Expr) *Expr {
		if v.varKind != Bound {
			return v
		}
		switch {
		case v.id == depth:
			return liftBound(argVal, depth, a)
		case v.id > depth:
			return NewVar(a, Bound, v.id-1)
		default:
			return v
		}
	})
}

// Reduce beta-normalizes e: children are reduced first, and any
// resulting App(Lam(_, _, body), arg) redex is substituted and reduced
// again. Termination is only guaranteed for well-typed input (spec.md
// §4.B).
func (e *Expr) Reduce(a *Arena) *Expr {
	switch e.tag {
	case TagSort:
		return e
	case TagVar:
		return e
	case TagApp:
		fn := e.fn.Reduce(a)
		argVal := e.arg.Reduce(a)
		if fn.tag == TagLam {
			return fn.body.MakeReplace(argVal, a).Reduce(a)
		}
		return NewApp(a, fn, argVal)
	case TagLam:
		return NewLam(a, e.hint, e.dom.Reduce(a), e.body.Reduce(a))
	case TagPi:
		return NewPi(a, e.hint, e.dom.Reduce(a), e.body.Reduce(a))
	}
	panic("core: unreachable Expr tag in Reduce")
}
