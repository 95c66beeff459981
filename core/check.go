package core

// Check returns the beta-normal type of e under ctx, or an error (always
// an *InvalidExpr, wrapped with a stack trace — recover it with
// errors.Cause). This is the bidirectional checker of spec.md §4.D,
// presented as synthesis.
//
// The postcondition is that the returned Expr is beta-normal and
// contains no top-level free Bound index.
func Check(e *Expr, ctx *Context, a *Arena) (*Expr, error) {
	return check(e, ctx, a, nil)
}

// stk holds the types of the locally-bound (Bound) variables, nearest
// first reversed (stk[len(stk)-1] is Bound(0)'s type), mirroring
// original_source/src/core/expr.cpp's checkType stack parameter.
func check(e *Expr, ctx *Context, a *Arena, stk []*Expr) (*Expr, error) {
	if e == nil {
		return nil, invalidExpr("unexpected null pointer", nil)
	}
	switch e.tag {
	case TagSort:
		if e.sortKind == Prop {
			return NewSort(a, Type), nil
		}
		return nil, invalidExpr("Type has no type", e)

	case TagVar:
		switch e.varKind {
		case Bound:
			if e.id < 0 || e.id >= len(stk) {
				return nil, invalidExpr("de Bruijn index too large", e)
			}
			return stk[len(stk)-1-e.id].Reduce(a), nil
		case Free:
			if !ctx.Valid(e.id) {
				return nil, invalidExpr("free variable not in context", e)
			}
			entry := ctx.At(e.id)
			if entry.IsHyp {
				return nil, invalidExpr("free variable names a hypothesis, not a declaration", e)
			}
			return entry.Body.Reduce(a), nil
		default: // Meta
			return nil, invalidExpr("unexpected metavariable in checking phase", e)
		}

	case TagApp:
		fnTy, err := check(e.fn, ctx, a, stk)
		if err != nil {
			return nil, err
		}
		if fnTy.tag != TagPi {
			return nil, invalidExpr("expected a function (Pi) type in application", e)
		}
		argTy, err := check(e.arg, ctx, a, stk)
		if err != nil {
			return nil, err
		}
		if !fnTy.dom.Equals(argTy) {
			return nil, invalidExpr("argument type mismatch: expected "+fnTy.dom.String(ctx)+", got "+argTy.String(ctx), e)
		}
		return fnTy.body.MakeReplace(e.arg, a).Reduce(a), nil

	case TagLam:
		_, err := checkDomain(e.dom, ctx, a, stk)
		if err != nil {
			return nil, err
		}
		domNorm := e.dom.Reduce(a)
		bodyTy, err := check(e.body, ctx, a, append(stk, domNorm))
		if err != nil {
			return nil, err
		}
		return NewPi(a, e.hint, domNorm, bodyTy), nil

	case TagPi:
		domSort, err := checkDomain(e.dom, ctx, a, stk)
		if err != nil {
			return nil, err
		}
		domNorm := e.dom.Reduce(a)
		bodySort, err := check(e.body, ctx, a, append(stk, domNorm))
		if err != nil {
			return nil, err
		}
		if bodySort.tag != TagSort {
			return nil, invalidExpr("expected a sort for the codomain", e.body)
		}
		return NewSort(a, imax(domSort.sortKind, bodySort.sortKind)), nil
	}
	panic("core: unreachable Expr tag in check")
}

// checkDomain validates that dom is usable as a Lam/Pi binder's domain,
// returning the Sort that classifies it, except that for a Sort literal
// it returns that literal itself. A Sort literal (Prop or Type)
// is accepted directly as a domain without being checked itself — Type
// has no type of its own (it sits at the top of this two-sort
// hierarchy), but it is still a valid classifier to bind a variable at,
// e.g. the identity function's Pi("x", Sort(Type), Sort(Type)). Any
// other dom is checked normally and must itself synthesize a Sort.
func checkDomain(dom *Expr, ctx *Context, a *Arena, stk []*Expr) (*Expr, error) {
	if dom.tag == TagSort {
		return dom, nil
	}
	domSort, err := check(dom, ctx, a, stk)
	if err != nil {
		return nil, err
	}
	if domSort.tag != TagSort {
		return nil, invalidExpr("expected a sort for the bound variable's type", dom)
	}
	return domSort, nil
}

// imax(s, Prop) = Prop; imax(s, Type) = Type. Prop is impredicative.
func imax(_ SortKind, codomain SortKind) SortKind {
	if codomain == Prop {
		return Prop
	}
	return Type
}
