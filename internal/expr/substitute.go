package expr

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// Bindings maps variable names to integer values
type Bindings map[string]int

// Pointers converts b to the form accepted by SubstituteAll
func (b Bindings) Pointers() map[string]*int {
	if b == nil {
		return nil
	}
	out := make(map[string]*int, len(b))
	for k, v := range b {
		out[k] = &v
	}
	return out
}

// Names returns the bound variable names in sorted order
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for k := range b {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Substitute replaces every node whose payload equals variable with the
// decimal form of value. A variable that does not occur is not an error.
// t is modified in place and returned.
func Substitute(t *tree.Tree, variable string, value int) (*tree.Tree, error) {
	return SubstitutePtr(t, &variable, value)
}

// SubstitutePtr is Substitute for callers whose variable name may be
// absent. A nil name is an invalid argument.
func SubstitutePtr(t *tree.Tree, variable *string, value int) (*tree.Tree, error) {
	if err := guard("substitute", t); err != nil {
		return nil, invalidArgument(err)
	}
	if variable == nil {
		return nil, newError("substitute", tree.None, ErrInvalidArgument, "variable name is absent")
	}

	replacement := strconv.Itoa(value)
	t.InOrder(func(id tree.ID) {
		if t.Value(id) == *variable {
			_, _ = t.Set(id, replacement)
		}
	})
	return t, nil
}

// SubstituteAll replaces every node whose payload is a key of bindings with
// the decimal form of the bound value. A nil value fails with
// ErrInvalidSubstitution, but only once a node carrying that key is
// reached; nodes visited earlier in in-order have already been rewritten.
// t is modified in place and returned.
func SubstituteAll(t *tree.Tree, bindings map[string]*int) (*tree.Tree, error) {
	if err := guard("substitute", t); err != nil {
		return nil, invalidArgument(err)
	}
	if bindings == nil {
		return nil, newError("substitute", tree.None, ErrInvalidArgument, "bindings are absent")
	}

	var failure error
	t.InOrder(func(id tree.ID) {
		if failure != nil {
			return
		}
		value, ok := bindings[t.Value(id)]
		if !ok {
			return
		}
		if value == nil {
			failure = newError("substitute", id, ErrInvalidSubstitution,
				fmt.Sprintf("variable %q is bound to an absent value", t.Value(id)))
			return
		}
		_, _ = t.Set(id, strconv.Itoa(*value))
	})
	if failure != nil {
		return nil, failure
	}
	return t, nil
}

// invalidArgument rewraps a validation failure so it matches both
// ErrInvalidArgument and ErrInvalidExpression
func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
