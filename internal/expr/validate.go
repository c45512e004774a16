package expr

import (
	"fmt"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// IsValid reports whether t is a well-formed arithmetic expression
func IsValid(t *tree.Tree) bool {
	return Validate(t) == nil
}

// Validate checks that t is a well-formed arithmetic expression: every
// leaf holds a non-operator payload and every internal node holds an
// operator with exactly two children. The returned error wraps
// ErrInvalidExpression and names the first offending node in pre-order.
func Validate(t *tree.Tree) error {
	if t == nil {
		return newError("validate", tree.None, ErrInvalidExpression, "tree is absent")
	}
	if t.IsEmpty() {
		return newError("validate", tree.None, ErrInvalidExpression, "tree is empty")
	}

	var failure error
	t.Walk(t.Root(), tree.FuncVisitor(func(t *tree.Tree, id tree.ID) bool {
		if failure != nil {
			return false
		}
		if reason := checkNode(t, id); reason != "" {
			failure = newError("validate", id, ErrInvalidExpression, reason)
			return false
		}
		return true
	}))
	return failure
}

// checkNode returns why the node at id is malformed, or "" when it is fine
func checkNode(t *tree.Tree, id tree.ID) string {
	if !t.HasValue(id) {
		return "node has no payload"
	}
	value := t.Value(id)
	switch t.NumChildren(id) {
	case 0:
		if IsOperator(value) {
			return fmt.Sprintf("operator %q has no operands", value)
		}
	case 2:
		if !IsOperator(value) {
			return fmt.Sprintf("operand %q has children", value)
		}
	default:
		return fmt.Sprintf("%q has a single child", value)
	}
	return ""
}

// guard validates t on behalf of op so every entry point reports failures
// the same way
func guard(op string, t *tree.Tree) error {
	if err := Validate(t); err != nil {
		if ee, ok := err.(*ExpressionError); ok {
			return &ExpressionError{Op: op, Node: ee.Node, Reason: ee.Reason, Err: ErrInvalidExpression}
		}
		return err
	}
	return nil
}
