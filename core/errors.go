package core

import "github.com/pkg/errors"

// InvalidExpr is the structural/type-checking failure of spec.md §7.1:
// unknown-kind variable, de Bruijn overflow, free-variable out of
// context, expected-sort-got-non-sort, expected-Pi-got-non-Pi, argument
// type mismatch, or null subterm. It carries the offending subterm for
// diagnostic overlay and, via github.com/pkg/errors, a stack trace
// captured at construction — the "wrapped errors" the teacher's own
// type_env.go:392 TODO asks for, without the kernel walking call stacks
// itself.
type InvalidExpr struct {
	Message string
	At      *Expr
}

func (e *InvalidExpr) Error() string { return e.Message }

// invalidExpr builds an InvalidExpr and attaches a stack trace via
// errors.WithStack; recover the *InvalidExpr with errors.Cause(err).
func invalidExpr(message string, at *Expr) error {
	return errors.WithStack(&InvalidExpr{Message: message, At: at})
}
