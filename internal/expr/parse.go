package expr

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// TokenSeparator splits a prefix expression into tokens. Consecutive
// separators produce empty tokens, which are parsed as ordinary leaves.
const TokenSeparator = " "

// tokenQueue is consumed front to back while building a tree
type tokenQueue struct {
	tokens []string
	pos    int
}

func newTokenQueue(expression string) *tokenQueue {
	return &tokenQueue{tokens: strings.Split(expression, TokenSeparator)}
}

func (q *tokenQueue) next() (string, bool) {
	if q.pos >= len(q.tokens) {
		return "", false
	}
	tok := q.tokens[q.pos]
	q.pos++
	return tok, true
}

func (q *tokenQueue) remaining() int {
	return len(q.tokens) - q.pos
}

// Parse converts a prefix expression into a tree.
//
// Tokens after the first complete expression are ignored, so "+ 1 2 3"
// parses as "+ 1 2". Use ParseStrict to reject them.
func Parse(expression string) (*tree.Tree, error) {
	t, _, err := parse(expression)
	return t, err
}

// ParsePtr is Parse for callers whose input may be absent. A nil
// expression is malformed.
func ParsePtr(expression *string) (*tree.Tree, error) {
	if expression == nil {
		return nil, newError("parse", tree.None, ErrMalformedExpression, "expression is absent")
	}
	return Parse(*expression)
}

// ParseStrict is Parse but fails when tokens remain after a complete
// expression.
func ParseStrict(expression string) (*tree.Tree, error) {
	t, q, err := parse(expression)
	if err != nil {
		return nil, err
	}
	if n := q.remaining(); n > 0 {
		return nil, newError("parse", tree.None, ErrMalformedExpression,
			fmt.Sprintf("%d unconsumed token(s) starting at %q", n, q.tokens[q.pos]))
	}
	return t, nil
}

func parse(expression string) (*tree.Tree, *tokenQueue, error) {
	q := newTokenQueue(expression)
	t := tree.New()

	tok, _ := q.next() // strings.Split always yields at least one token
	root, err := t.AddRoot(tok)
	if err != nil {
		return nil, nil, err
	}
	if err := build(t, root, q); err != nil {
		return nil, nil, err
	}
	return t, q, nil
}

// build consumes the operands of the operator at id, if it is one
func build(t *tree.Tree, id tree.ID, q *tokenQueue) error {
	op := t.Value(id)
	if !IsOperator(op) {
		return nil
	}

	tok, ok := q.next()
	if !ok {
		return newError("parse", tree.None, ErrMalformedExpression,
			fmt.Sprintf("operator %q is missing its left operand", op))
	}
	left, err := t.AddLeft(id, tok)
	if err != nil {
		return err
	}
	if err := build(t, left, q); err != nil {
		return err
	}

	tok, ok = q.next()
	if !ok {
		return newError("parse", tree.None, ErrMalformedExpression,
			fmt.Sprintf("operator %q is missing its right operand", op))
	}
	right, err := t.AddRight(id, tok)
	if err != nil {
		return err
	}
	return build(t, right, q)
}
