package core

import "strconv"

// newName gives an unnamed bound variable a display name, matching
// original_source/src/core/expr.cpp's newName (base-26, 'a'.. then 'aa'..).
func newName(i int) string {
	res := make([]byte, 0, 4)
	for {
		res = append(res, byte('a'+i%26))
		i /= 26
		if i == 0 {
			break
		}
		i--
	}
	// reverse
	for l, r := 0, len(res)-1; l < r; l, r = l+1, r-1 {
		res[l], res[r] = res[r], res[l]
	}
	return string(res)
}

// String renders e for diagnostics only (spec.md §6): sorts as
// Prop/Type, free vars by context name (or @F<id> if invalid), bound
// vars by binder hint (or @B<index> if out of scope), metas as @M<id>,
// App as "(l r)", Lam as "(\name: t => body)", Pi as
// "((name: t) -> body)" with a dependency-free shorthand when body does
// not mention the bound variable.
func (e *Expr) String(ctx *Context) string {
	return e.toString(ctx, nil)
}

func (e *Expr) toString(ctx *Context, stk []string) string {
	switch e.tag {
	case TagSort:
		return e.sortKind.String()
	case TagVar:
		switch e.varKind {
		case Bound:
			if e.id >= 0 && e.id < len(stk) {
				return stk[len(stk)-1-e.id]
			}
			return "@B" + strconv.Itoa(e.id)
		case Free:
			if ctx != nil && ctx.Valid(e.id) {
				return ctx.NameOf(e.id)
			}
			return "@F" + strconv.Itoa(e.id)
		case Meta:
			return "@M" + strconv.Itoa(e.id)
		}
		return "@?"
	case TagApp:
		return "(" + e.fn.toString(ctx, stk) + " " + e.arg.toString(ctx, stk) + ")"
	case TagLam:
		name := e.hint
		if name == "" {
			name = newName(len(stk))
		}
		inner := e.body.toString(ctx, append(stk, name))
		return "(\\" + name + ": " + e.dom.toString(ctx, stk) + " => " + inner + ")"
	case TagPi:
		name := e.hint
		if name == "" {
			name = newName(len(stk))
		}
		if !e.body.Occurs(Bound, 0) {
			// Dependency-free shorthand: "(t -> body)".
			return "(" + e.dom.toString(ctx, stk) + " -> " + e.body.toString(ctx, append(stk, name)) + ")"
		}
		inner := e.body.toString(ctx, append(stk, name))
		return "((" + name + ": " + e.dom.toString(ctx, stk) + ") -> " + inner + ")"
	}
	return "[?]"
}
