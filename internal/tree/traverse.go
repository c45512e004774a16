package tree

import (
	"fmt"
	"io"
	"strings"
)

// Visitor defines the interface for visiting tree positions
type Visitor interface {
	// Visit is called for each position during a pre-order walk.
	// Return false to skip the position's children.
	Visit(t *Tree, id ID) bool
}

// FuncVisitor adapts a function to the Visitor interface
type FuncVisitor func(t *Tree, id ID) bool

// Visit implements the Visitor interface
func (f FuncVisitor) Visit(t *Tree, id ID) bool {
	return f(t, id)
}

// Walk visits the subtree rooted at id in pre-order
func (t *Tree) Walk(id ID, v Visitor) {
	if !t.Contains(id) {
		return
	}
	stack := []ID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !v.Visit(t, n) {
			continue
		}
		// push right first so left is visited first
		if r := t.nodes[n].right; r != None {
			stack = append(stack, r)
		}
		if l := t.nodes[n].left; l != None {
			stack = append(stack, l)
		}
	}
}

// PreOrder calls fn for every position, parents before children.
// Returning false from fn skips that position's children.
func (t *Tree) PreOrder(fn func(ID) bool) {
	t.Walk(t.root, FuncVisitor(func(_ *Tree, id ID) bool {
		return fn(id)
	}))
}

// InOrder calls fn for every position: left subtree, node, right subtree
func (t *Tree) InOrder(fn func(ID)) {
	var stack []ID
	cur := t.root
	for cur != None || len(stack) > 0 {
		for cur != None {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		cur = t.nodes[cur].right
	}
}

// PostOrder calls fn for every position, children before parents
func (t *Tree) PostOrder(fn func(ID)) {
	if t.IsEmpty() {
		return
	}
	type frame struct {
		id       ID
		expanded bool
	}
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.expanded {
			fn(f.id)
			continue
		}
		stack = append(stack, frame{id: f.id, expanded: true})
		if r := t.nodes[f.id].right; r != None {
			stack = append(stack, frame{id: r})
		}
		if l := t.nodes[f.id].left; l != None {
			stack = append(stack, frame{id: l})
		}
	}
}

// Positions returns every live position in pre-order
func (t *Tree) Positions() []ID {
	out := make([]ID, 0, t.size)
	t.PreOrder(func(id ID) bool {
		out = append(out, id)
		return true
	})
	return out
}

// Print writes an indented outline of the tree, one node per line
func (t *Tree) Print(w io.Writer) error {
	var err error
	t.PreOrder(func(id ID) bool {
		if err != nil {
			return false
		}
		value := t.Value(id)
		if !t.HasValue(id) {
			value = "<absent>"
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", t.Depth(id)), value)
		return true
	})
	return err
}
