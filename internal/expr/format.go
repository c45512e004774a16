package expr

import (
	"strings"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// ToPrefix renders t in prefix notation, operators before operands,
// tokens separated by single spaces
func ToPrefix(t *tree.Tree) (string, error) {
	if err := guard("prefix", t); err != nil {
		return "", err
	}
	tokens := make([]string, 0, t.Size())
	t.PreOrder(func(id tree.ID) bool {
		tokens = append(tokens, t.Value(id))
		return true
	})
	return strings.Join(tokens, TokenSeparator), nil
}

// ToInfix renders t in infix notation. Every operator application is
// wrapped in parentheses, so "+ a * b c" becomes "(a+(b*c))"; a bare leaf
// has none.
func ToInfix(t *tree.Tree) (string, error) {
	if err := guard("infix", t); err != nil {
		return "", err
	}
	var b strings.Builder
	writeInfix(&b, t, t.Root())
	return b.String(), nil
}

func writeInfix(b *strings.Builder, t *tree.Tree, id tree.ID) {
	if t.IsExternal(id) {
		b.WriteString(t.Value(id))
		return
	}
	b.WriteByte('(')
	writeInfix(b, t, t.Left(id))
	b.WriteString(t.Value(id))
	writeInfix(b, t, t.Right(id))
	b.WriteByte(')')
}
