package expr

import "github.com/ludo-technologies/prexpr/internal/tree"

// Equal reports whether a and b have the same shape and the same payload
// at every position. "+ 1 2" and "+ 2 1" are not equal.
func Equal(a, b *tree.Tree) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return EqualAt(a, a.Root(), b, b.Root())
}

// EqualAt compares the subtree of a rooted at pa with the subtree of b
// rooted at pb. Two absent positions are equal.
func EqualAt(a *tree.Tree, pa tree.ID, b *tree.Tree, pb tree.ID) bool {
	if !a.Contains(pa) || !b.Contains(pb) {
		return !a.Contains(pa) && !b.Contains(pb)
	}
	if a.HasValue(pa) != b.HasValue(pb) || a.Value(pa) != b.Value(pb) {
		return false
	}
	return EqualAt(a, a.Left(pa), b, b.Left(pb)) &&
		EqualAt(a, a.Right(pa), b, b.Right(pb))
}

// equalSubtrees compares two subtrees of the same tree
func equalSubtrees(t *tree.Tree, x, y tree.ID) bool {
	return EqualAt(t, x, t, y)
}
