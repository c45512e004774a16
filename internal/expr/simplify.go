package expr

import (
	"strconv"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// Identity literals matched by the algebraic rules. Matching is on the
// exact payload, so "01" is not treated as one.
const (
	zeroLiteral = "0"
	oneLiteral  = "1"
)

// Simplify folds every subtree whose operands are both integer literals
// into a single literal, bottom-up. Subtrees involving variables are left
// as they are. t is modified in place and returned.
func Simplify(t *tree.Tree) (*tree.Tree, error) {
	if err := guard("simplify", t); err != nil {
		return nil, err
	}
	simplifyAt(t, t.Root(), false)
	return t, nil
}

// SimplifyFancy does everything Simplify does and additionally applies,
// at every node that could not be folded, the first matching rule of:
//
//	* 1 x -> x     * x 1 -> x
//	* 0 x -> 0     * x 0 -> 0
//	+ 0 x -> x     + x 0 -> x
//	- x 0 -> x     - x x -> 0
//
// where "- x x" requires both operands to be structurally equal. No
// commutativity is assumed: "- + a b + b a" is left alone. t is modified in
// place and returned.
func SimplifyFancy(t *tree.Tree) (*tree.Tree, error) {
	if err := guard("simplify", t); err != nil {
		return nil, err
	}
	simplifyAt(t, t.Root(), true)
	return t, nil
}

func simplifyAt(t *tree.Tree, id tree.ID, fancy bool) {
	if t.IsExternal(id) {
		return
	}
	simplifyAt(t, t.Left(id), fancy)
	simplifyAt(t, t.Right(id), fancy)

	if fold(t, id) || !fancy {
		return
	}
	applyIdentities(t, id)
}

// fold replaces an operator whose children are both integer literals with
// the literal result
func fold(t *tree.Tree, id tree.ID) bool {
	left, right := t.Left(id), t.Right(id)
	a, err := strconv.Atoi(t.Value(left))
	if err != nil {
		return false
	}
	b, err := strconv.Atoi(t.Value(right))
	if err != nil {
		return false
	}
	result, ok := apply(t.Value(id), a, b)
	if !ok {
		return false
	}
	_, _ = t.Set(id, strconv.Itoa(result))
	_ = t.Prune(id)
	return true
}

// applyIdentities rewrites id using the first algebraic rule that matches
func applyIdentities(t *tree.Tree, id tree.ID) {
	left, right := t.Left(id), t.Right(id)
	lv, rv := t.Value(left), t.Value(right)

	switch t.Value(id) {
	case MultiplyOp:
		switch {
		case lv == oneLiteral:
			_ = t.Replace(id, right)
		case rv == oneLiteral:
			_ = t.Replace(id, left)
		case lv == zeroLiteral, rv == zeroLiteral:
			collapseTo(t, id, zeroLiteral)
		}
	case AddOp:
		switch {
		case lv == zeroLiteral:
			_ = t.Replace(id, right)
		case rv == zeroLiteral:
			_ = t.Replace(id, left)
		}
	case SubtractOp:
		switch {
		case rv == zeroLiteral:
			_ = t.Replace(id, left)
		case equalSubtrees(t, left, right):
			collapseTo(t, id, zeroLiteral)
		}
	}
}

// collapseTo discards both subtrees of id and turns it into a literal leaf
func collapseTo(t *tree.Tree, id tree.ID, literal string) {
	_ = t.Prune(id)
	_, _ = t.Set(id, literal)
}
