package expr

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ludo-technologies/prexpr/internal/tree"
)

// Evaluate computes the integer value of t. Variables are looked up in
// bindings; a variable without a binding fails with ErrUnboundVariable.
// t is not modified.
func Evaluate(t *tree.Tree, bindings Bindings) (int, error) {
	if err := guard("evaluate", t); err != nil {
		return 0, err
	}
	return evaluateAt(t, t.Root(), bindings)
}

func evaluateAt(t *tree.Tree, id tree.ID, bindings Bindings) (int, error) {
	value := t.Value(id)
	if t.IsExternal(id) {
		if n, err := strconv.Atoi(value); err == nil {
			return n, nil
		}
		if n, ok := bindings[value]; ok {
			return n, nil
		}
		return 0, newError("evaluate", id, ErrUnboundVariable, fmt.Sprintf("no value for %q", value))
	}

	a, err := evaluateAt(t, t.Left(id), bindings)
	if err != nil {
		return 0, err
	}
	b, err := evaluateAt(t, t.Right(id), bindings)
	if err != nil {
		return 0, err
	}
	result, ok := apply(value, a, b)
	if !ok {
		return 0, newError("evaluate", id, ErrInvalidExpression, fmt.Sprintf("internal node %q is not an operator", value))
	}
	return result, nil
}

// IsGround reports whether every leaf of t is an integer literal
func IsGround(t *tree.Tree) bool {
	if t == nil || t.IsEmpty() {
		return false
	}
	ground := true
	t.PreOrder(func(id tree.ID) bool {
		if t.IsExternal(id) && !IsNumeric(t.Value(id)) {
			ground = false
		}
		return ground
	})
	return ground
}

// Variables returns the distinct non-numeric leaf payloads of t, sorted
func Variables(t *tree.Tree) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	t.PreOrder(func(id tree.ID) bool {
		if v := t.Value(id); t.IsExternal(id) && !IsNumeric(v) {
			seen[v] = true
		}
		return true
	})
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats summarizes the shape of an expression tree
type Stats struct {
	Nodes     int `json:"nodes" yaml:"nodes"`
	Height    int `json:"height" yaml:"height"`
	Operators int `json:"operators" yaml:"operators"`
	Constants int `json:"constants" yaml:"constants"`
	Variables int `json:"variables" yaml:"variables"`
}

// Collect computes Stats for t. Variables counts leaf occurrences, not
// distinct names.
func Collect(t *tree.Tree) Stats {
	var s Stats
	if t == nil || t.IsEmpty() {
		s.Height = -1
		return s
	}
	s.Nodes = t.Size()
	s.Height = t.Height()
	t.PreOrder(func(id tree.ID) bool {
		switch {
		case !t.IsExternal(id):
			s.Operators++
		case IsNumeric(t.Value(id)):
			s.Constants++
		default:
			s.Variables++
		}
		return true
	})
	return s
}
