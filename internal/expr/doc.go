// Package expr implements integer arithmetic expressions over binary trees.
//
// An expression tree holds a string at every node. Leaves hold variables or
// numeric literals; internal nodes hold one of the operators "+", "-", "*"
// and always have exactly two children.
//
// The package provides:
//   - Parse / ParseStrict: prefix token stream to tree
//   - IsValid / Validate: structural well-formedness
//   - Equal: structural equality
//   - ToPrefix / ToInfix: serialization
//   - Simplify / SimplifyFancy: constant folding, optionally with
//     algebraic identities
//   - Substitute / SubstituteAll: variable binding
//
// Simplification and substitution mutate the tree in place and return it.
//
// Basic usage:
//
//	t, err := expr.Parse("- + 2 15 c")
//	if err != nil {
//	    // Handle malformed input
//	}
//	t, _ = expr.Simplify(t)
//	s, _ := expr.ToInfix(t) // "(17-c)"
package expr
