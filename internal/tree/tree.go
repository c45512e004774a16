package tree

import (
	"errors"
	"fmt"
)

// ID addresses a node inside a Tree's arena.
type ID int

// None marks an absent position (no parent, no child, empty tree root).
const None ID = -1

// Container errors
var (
	ErrEmptyTree        = errors.New("tree is empty")
	ErrNonEmptyTree     = errors.New("tree already has a root")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrTooManyChildren  = errors.New("node has two children")
	ErrNotExternal      = errors.New("position is not external")
	ErrPositionOccupied = errors.New("position already has a child")
	ErrNotDescendant    = errors.New("source is not a descendant of target")
)

type node struct {
	value    string
	hasValue bool
	parent   ID
	left     ID
	right    ID
	live     bool
}

// Tree is a binary tree of string payloads stored in an arena.
// Links between nodes are arena indices, so there are no pointer cycles
// between parents and children. Removed nodes leave dead slots behind
// until Compact is called.
//
// A Tree is not safe for concurrent mutation.
type Tree struct {
	nodes []node
	root  ID
	size  int
}

// New creates an empty tree
func New() *Tree {
	return &Tree{root: None}
}

// NewLeaf creates a tree with a single root node holding value
func NewLeaf(value string) *Tree {
	t := New()
	_, _ = t.AddRoot(value)
	return t
}

// Root returns the root position, or None for an empty tree
func (t *Tree) Root() ID {
	return t.root
}

// Size returns the number of live nodes
func (t *Tree) Size() int {
	return t.size
}

// IsEmpty reports whether the tree has no nodes
func (t *Tree) IsEmpty() bool {
	return t.size == 0
}

// Contains reports whether id addresses a live node of this tree
func (t *Tree) Contains(id ID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].live
}

func (t *Tree) check(id ID) error {
	if !t.Contains(id) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, id)
	}
	return nil
}

// Value returns the payload at id. Absent payloads and invalid positions
// yield the empty string; use HasValue to tell them apart.
func (t *Tree) Value(id ID) string {
	if !t.Contains(id) {
		return ""
	}
	return t.nodes[id].value
}

// HasValue reports whether the node at id carries a payload
func (t *Tree) HasValue(id ID) bool {
	return t.Contains(id) && t.nodes[id].hasValue
}

// Parent returns the parent of id, or None for the root
func (t *Tree) Parent(id ID) ID {
	if !t.Contains(id) {
		return None
	}
	return t.nodes[id].parent
}

// Left returns the left child of id, or None
func (t *Tree) Left(id ID) ID {
	if !t.Contains(id) {
		return None
	}
	return t.nodes[id].left
}

// Right returns the right child of id, or None
func (t *Tree) Right(id ID) ID {
	if !t.Contains(id) {
		return None
	}
	return t.nodes[id].right
}

// Sibling returns the other child of id's parent, or None
func (t *Tree) Sibling(id ID) ID {
	p := t.Parent(id)
	if p == None {
		return None
	}
	if t.nodes[p].left == id {
		return t.nodes[p].right
	}
	return t.nodes[p].left
}

// Children returns the present children of id, left first
func (t *Tree) Children(id ID) []ID {
	var out []ID
	if l := t.Left(id); l != None {
		out = append(out, l)
	}
	if r := t.Right(id); r != None {
		out = append(out, r)
	}
	return out
}

// NumChildren returns how many children id has (0, 1 or 2)
func (t *Tree) NumChildren(id ID) int {
	n := 0
	if t.Left(id) != None {
		n++
	}
	if t.Right(id) != None {
		n++
	}
	return n
}

// IsExternal reports whether id is a leaf
func (t *Tree) IsExternal(id ID) bool {
	return t.Contains(id) && t.NumChildren(id) == 0
}

// IsInternal reports whether id has at least one child
func (t *Tree) IsInternal(id ID) bool {
	return t.Contains(id) && t.NumChildren(id) > 0
}

// IsRoot reports whether id is the root
func (t *Tree) IsRoot(id ID) bool {
	return t.Contains(id) && id == t.root
}

func (t *Tree) alloc(value string, parent ID) ID {
	t.nodes = append(t.nodes, node{
		value:    value,
		hasValue: true,
		parent:   parent,
		left:     None,
		right:    None,
		live:     true,
	})
	t.size++
	return ID(len(t.nodes) - 1)
}

// AddRoot places value at the root of an empty tree
func (t *Tree) AddRoot(value string) (ID, error) {
	if !t.IsEmpty() {
		return None, ErrNonEmptyTree
	}
	t.root = t.alloc(value, None)
	return t.root, nil
}

// AddLeft creates a left child of p holding value
func (t *Tree) AddLeft(p ID, value string) (ID, error) {
	if err := t.check(p); err != nil {
		return None, err
	}
	if t.nodes[p].left != None {
		return None, ErrPositionOccupied
	}
	c := t.alloc(value, p)
	t.nodes[p].left = c
	return c, nil
}

// AddRight creates a right child of p holding value
func (t *Tree) AddRight(p ID, value string) (ID, error) {
	if err := t.check(p); err != nil {
		return None, err
	}
	if t.nodes[p].right != None {
		return None, ErrPositionOccupied
	}
	c := t.alloc(value, p)
	t.nodes[p].right = c
	return c, nil
}

// Set replaces the payload at id and returns the previous one
func (t *Tree) Set(id ID, value string) (string, error) {
	if err := t.check(id); err != nil {
		return "", err
	}
	old := t.nodes[id].value
	t.nodes[id].value = value
	t.nodes[id].hasValue = true
	return old, nil
}

// SetAbsent clears the payload at id so the node holds no value
func (t *Tree) SetAbsent(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	t.nodes[id].value = ""
	t.nodes[id].hasValue = false
	return nil
}

// Attach grafts left and right as the subtrees of the leaf at id.
// Both source trees are emptied, matching the move semantics of a linked
// tree; nil or empty sources leave the corresponding side absent.
func (t *Tree) Attach(id ID, left, right *Tree) error {
	if err := t.check(id); err != nil {
		return err
	}
	if !t.IsExternal(id) {
		return ErrNotExternal
	}
	if left == t || right == t {
		return fmt.Errorf("%w: cannot attach a tree to itself", ErrInvalidPosition)
	}
	if left != nil && !left.IsEmpty() {
		t.nodes[id].left = t.graft(left, left.root, id)
		left.reset()
	}
	if right != nil && !right.IsEmpty() {
		t.nodes[id].right = t.graft(right, right.root, id)
		right.reset()
	}
	return nil
}

// graft copies the subtree of src rooted at sid into t under parent
func (t *Tree) graft(src *Tree, sid ID, parent ID) ID {
	if sid == None {
		return None
	}
	n := src.nodes[sid]
	id := t.alloc(n.value, parent)
	t.nodes[id].hasValue = n.hasValue
	l := t.graft(src, n.left, id)
	r := t.graft(src, n.right, id)
	t.nodes[id].left = l
	t.nodes[id].right = r
	return id
}

func (t *Tree) reset() {
	t.nodes = nil
	t.root = None
	t.size = 0
}

// Remove deletes a node with at most one child. A single child takes the
// removed node's place under its parent. The removed payload is returned.
func (t *Tree) Remove(id ID) (string, error) {
	if err := t.check(id); err != nil {
		return "", err
	}
	if t.NumChildren(id) == 2 {
		return "", ErrTooManyChildren
	}
	child := t.nodes[id].left
	if child == None {
		child = t.nodes[id].right
	}
	t.relink(id, child)
	value := t.nodes[id].value
	t.release(id)
	if t.size == 0 {
		t.reset()
	}
	return value, nil
}

// Replace moves the subtree rooted at source into target's position.
// Source must be a proper descendant of target; every other node under
// target, target included, is discarded. Only the links at target's
// parent and source are rewritten; discarded slots are released in time
// proportional to their number.
func (t *Tree) Replace(target, source ID) error {
	if err := t.check(target); err != nil {
		return err
	}
	if err := t.check(source); err != nil {
		return err
	}
	if !t.isAncestor(target, source) {
		return ErrNotDescendant
	}

	// detach source so the discard walk skips it
	sp := t.nodes[source].parent
	if t.nodes[sp].left == source {
		t.nodes[sp].left = None
	} else {
		t.nodes[sp].right = None
	}

	t.relink(target, source)
	t.discard(target)
	return nil
}

// Prune drops both subtrees of id, leaving it a leaf
func (t *Tree) Prune(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	if l := t.nodes[id].left; l != None {
		t.nodes[id].left = None
		t.discard(l)
	}
	if r := t.nodes[id].right; r != None {
		t.nodes[id].right = None
		t.discard(r)
	}
	return nil
}

// relink points id's parent slot (or the root) at repl
func (t *Tree) relink(id, repl ID) {
	parent := t.nodes[id].parent
	if repl != None {
		t.nodes[repl].parent = parent
	}
	switch {
	case parent == None:
		t.root = repl
	case t.nodes[parent].left == id:
		t.nodes[parent].left = repl
	default:
		t.nodes[parent].right = repl
	}
}

func (t *Tree) isAncestor(anc, id ID) bool {
	for p := t.nodes[id].parent; p != None; p = t.nodes[p].parent {
		if p == anc {
			return true
		}
	}
	return false
}

// discard releases every node of the subtree rooted at id
func (t *Tree) discard(id ID) {
	stack := []ID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if l := t.nodes[n].left; l != None {
			stack = append(stack, l)
		}
		if r := t.nodes[n].right; r != None {
			stack = append(stack, r)
		}
		t.release(n)
	}
}

func (t *Tree) release(id ID) {
	t.nodes[id] = node{parent: None, left: None, right: None}
	t.size--
}

// Clone returns a deep copy with a compact arena. Positions in the copy
// follow pre-order and do not match the original's.
func (t *Tree) Clone() *Tree {
	c := &Tree{root: None, nodes: make([]node, 0, t.size)}
	if !t.IsEmpty() {
		c.root = c.graft(t, t.root, None)
	}
	return c
}

// Subtree returns a copy of the subtree rooted at id as a new tree
func (t *Tree) Subtree(id ID) (*Tree, error) {
	if err := t.check(id); err != nil {
		return nil, err
	}
	c := New()
	c.root = c.graft(t, id, None)
	return c, nil
}

// Compact rebuilds the arena without dead slots. All previously obtained
// positions become invalid.
func (t *Tree) Compact() {
	if len(t.nodes) == t.size {
		return
	}
	*t = *t.Clone()
}

// Height returns the number of edges on the longest root-to-leaf path.
// An empty tree has height -1.
func (t *Tree) Height() int {
	if t.IsEmpty() {
		return -1
	}
	height := 0
	depth := map[ID]int{t.root: 0}
	t.PreOrder(func(id ID) bool {
		d := depth[id]
		if d > height {
			height = d
		}
		for _, c := range t.Children(id) {
			depth[c] = d + 1
		}
		return true
	})
	return height
}

// Depth returns the number of edges between id and the root
func (t *Tree) Depth(id ID) int {
	if !t.Contains(id) {
		return -1
	}
	d := 0
	for p := t.nodes[id].parent; p != None; p = t.nodes[p].parent {
		d++
	}
	return d
}
