package expr

import (
	"errors"
	"fmt"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// Expression errors. Detailed failures wrap one of these so callers can
// match them with errors.Is.
var (
	// ErrMalformedExpression is returned by the parser when the input is
	// absent or runs out of tokens before an operand is produced.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrInvalidExpression is returned when a tree fails validation.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrInvalidSubstitution is returned when a bound variable present in
	// the tree maps to an absent value.
	ErrInvalidSubstitution = errors.New("invalid substitution")

	// ErrInvalidArgument is returned by the substitution engine for an
	// invalid tree, an absent variable name, or an absent mapping.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnboundVariable is returned by Evaluate for a variable leaf with no
	// binding.
	ErrUnboundVariable = errors.New("unbound variable")
)

// ExpressionError records which operation failed, where, and why
type ExpressionError struct {
	Op     string
	Node   tree.ID
	Reason string
	Err    error
}

func (e *ExpressionError) Error() string {
	if e.Node != tree.None {
		return fmt.Sprintf("%s: %v at node %d: %s", e.Op, e.Err, e.Node, e.Reason)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

func newError(op string, node tree.ID, err error, reason string) error {
	return &ExpressionError{Op: op, Node: node, Reason: reason, Err: err}
}
