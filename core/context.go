package core

// Entry is one slot of a Context: a named declaration (Body is a type)
// or a named hypothesis (Body is a proposition).
type Entry struct {
	Name  string
	IsHyp bool
	Body  *Expr
}

// Context is an ordered, named stack of typed declarations and
// hypotheses (spec.md §3.2). The free variable of entry i is
// Var(Free, i); pushing appends, and popping an interior entry
// discharges it (§4.C), shifting every later Free reference down by
// one.
//
// A freshly constructed Context reserves eleven built-in entries at
// positions 0..10 for the logical primitives that the FOL surface
// (package fol) recognizes structurally: an "individual" domain type
// used by Forall/Exists/Unique, and the propositional connectives
// True/False/Not/And/Or/Implies/Iff/Exists/Unique/Equals. This
// generalizes original_source/src/elab/procs.cpp's single reserved
// `ctx.equals` id to the full connective set; see DESIGN.md and
// SPEC_FULL.md ("Reserved built-in identifiers").
type Context struct {
	entries []Entry

	individualID int
	trueID       int
	falseID      int
	notID        int
	andID        int
	orID         int
	impliesID    int
	iffID        int
	existsID     int
	uniqueID     int
	equalsID     int
}

// NewContext creates a Context with the reserved built-in entries
// already pushed, using a to allocate their (placeholder) types.
func NewContext(a *Arena) *Context {
	c := &Context{}
	typeSort := NewSort(a, Type)
	propSort := NewSort(a, Prop)
	prop2prop := NewPi(a, "", propSort, propSort)
	prop2prop2prop := NewPi(a, "", propSort, NewPi(a, "", propSort, propSort))

	c.individualID = c.Push("individual", typeSort, false)
	c.trueID = c.Push("true", propSort, false)
	c.falseID = c.Push("false", propSort, false)
	c.notID = c.Push("not", prop2prop, false)
	c.andID = c.Push("and", prop2prop2prop, false)
	c.orID = c.Push("or", prop2prop2prop, false)
	c.impliesID = c.Push("implies", prop2prop2prop, false)
	c.iffID = c.Push("iff", prop2prop2prop, false)
	c.existsID = c.Push("exists", prop2prop, false)
	c.uniqueID = c.Push("unique", prop2prop, false)
	c.equalsID = c.Push("=", prop2prop2prop, false)
	return c
}

// Push appends a new entry and returns its index.
func (c *Context) Push(name string, body *Expr, isHyp bool) int {
	c.entries = append(c.entries, Entry{Name: name, IsHyp: isHyp, Body: body})
	return len(c.entries) - 1
}

// Valid reports whether i names a live entry.
func (c *Context) Valid(i int) bool { return i >= 0 && i < len(c.entries) }

// Size is the number of live entries.
func (c *Context) Size() int { return len(c.entries) }

// NameOf returns the display name of entry i. Panics if i is invalid;
// callers check Valid first (toString does).
func (c *Context) NameOf(i int) string { return c.entries[i].Name }

// At returns entry i. Panics if i is invalid.
func (c *Context) At(i int) Entry { return c.entries[i] }

// IndividualID, TrueID, FalseID, NotID, AndID, OrID, ImpliesID, IffID,
// ExistsID, UniqueID and EqualsID are the reserved built-in entry
// indices (see Context's doc comment).
func (c *Context) IndividualID() int { return c.individualID }
func (c *Context) TrueID() int       { return c.trueID }
func (c *Context) FalseID() int      { return c.falseID }
func (c *Context) NotID() int        { return c.notID }
func (c *Context) AndID() int        { return c.andID }
func (c *Context) OrID() int         { return c.orID }
func (c *Context) ImpliesID() int    { return c.impliesID }
func (c *Context) IffID() int        { return c.iffID }
func (c *Context) ExistsID() int     { return c.existsID }
func (c *Context) UniqueID() int     { return c.uniqueID }

// EqualsID is the id of the built-in equality predicate, consulted by
// the tableau engine (spec.md §3.2).
func (c *Context) EqualsID() int { return c.equalsID }

// decrementAndAbstract rewrites e for the discharge of entry k: every
// Free(i) with i > k is decremented by one; if abstract is set, Free(k)
// itself becomes a newly-introduced outermost Bound variable (the
// occurrence's threaded depth, since exactly one binder is being
// wrapped around e).
func decrementAndAbstract(e *Expr, k int, abstract bool, a *Arena) *Expr {
	return e.UpdateVars(0, a, func(depth int, v *Expr) *Expr {
		if v.varKind != Free {
			return v
		}
		switch {
		case v.id == k:
			if abstract {
				return NewVar(a, Bound, depth)
			}
			return v
		case v.id > k:
			return NewVar(a, v.varKind, v.id-1)
		default:
			return v
		}
	})
}

// Pop discharges the entry at index k (spec.md §4.C): for every later
// entry j > k, popping a hypothesis turns a later hypothesis into an
// implication and leaves a later declaration's type unchanged (besides
// the index shift); popping a declaration turns a later hypothesis into
// a universal quantification (encoded as Pi, matching package fol's
// Forall-is-Pi convention) and a later declaration's type into a
// dependent Pi type. Entry k is then removed, shifting every later
// Free(i) down by one.
//
// Pop fails (and returns false) when k does not name a live entry —
// including on an empty context — matching the ContextUnderflow
// result-shaped failure of spec.md §7. This is the literal pop(k)
// described by §4.C and §8 invariant 13, distinct from the
// unparameterized pop(arena) named in §6's interface summary; see
// DESIGN.md.
func (c *Context) Pop(k int, a *Arena) bool {
	if !c.Valid(k) {
		return false
	}
	popped := c.entries[k]

	for j := k + 1; j < len(c.entries); j++ {
		e := c.entries[j]
		var newBody *Expr
		if popped.IsHyp {
			newBody = decrementAndAbstract(e.Body, k, false, a)
			if e.IsHyp {
				hyp := popped.Body.Clone(a)
				newBody = NewApp(a, NewApp(a, NewVar(a, Free, c.impliesID), hyp), newBody)
			}
		} else {
			abstracted := decrementAndAbstract(e.Body, k, true, a)
			newBody = NewPi(a, popped.Name, popped.Body.Clone(a), abstracted)
		}
		c.entries[j] = Entry{Name: e.Name, IsHyp: e.IsHyp, Body: newBody}
	}

	c.entries = append(c.entries[:k], c.entries[k+1:]...)
	return true
}
