// Package tree provides an arena-backed binary tree with string payloads.
//
// Nodes live in a slice and refer to each other by integer position (ID),
// which keeps parent back-references free of ownership cycles. The tree
// supports the navigation and structural mutation primitives needed by the
// expression algorithms in package expr:
//
//   - navigation: Root, Parent, Left, Right, IsExternal, NumChildren
//   - mutation: AddRoot, AddLeft, AddRight, Attach, Set, Remove
//   - subtree rewrites: Replace (move a descendant into an ancestor's slot)
//     and Prune (drop both subtrees of a node)
//
// Basic usage:
//
//	t := tree.New()
//	root, _ := t.AddRoot("+")
//	t.AddLeft(root, "2")
//	t.AddRight(root, "15")
//	fmt.Println(t.Size()) // 3
package tree
