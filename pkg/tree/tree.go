// Package tree implements an arena-backed intrusive tree.
//
// Nodes live in slots owned by a Tree and are addressed by a stable NodeID.
// First-child and next-sibling links carry the structure; parent,
// last-child and previous-sibling links are plain back-references kept for
// O(1) appends and upward walks. A node is created detached and attached at
// most once. There is no removal or reparenting.
package tree

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvariant is wrapped by every panic raised for a misuse of the tree.
var ErrInvariant = errors.New("tree invariant violated")

// NodeID addresses a node inside its Tree.
type NodeID int32

// None is the absent node.
const None NodeID = -1

type slot[T any] struct {
	value T

	firstChild  NodeID
	nextSibling NodeID

	// back-references
	parent      NodeID
	lastChild   NodeID
	prevSibling NodeID
}

// Tree is an arena of nodes carrying values of type T.
type Tree[T any] struct {
	slots []slot[T]
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Add creates a detached node holding v.
func (t *Tree[T]) Add(v T) NodeID {
	t.slots = append(t.slots, slot[T]{
		value:       v,
		firstChild:  None,
		nextSibling: None,
		parent:      None,
		lastChild:   None,
		prevSibling: None,
	})
	return NodeID(len(t.slots) - 1)
}

// Len returns the number of nodes in the arena, attached or not.
func (t *Tree[T]) Len() int {
	return len(t.slots)
}

func (t *Tree[T]) at(id NodeID) *slot[T] {
	if id < 0 || int(id) >= len(t.slots) {
		panic(fmt.Errorf("%w: node %d out of range (len %d)", ErrInvariant, id, len(t.slots)))
	}
	return &t.slots[id]
}

// Value returns the value stored at id.
func (t *Tree[T]) Value(id NodeID) T {
	return t.at(id).value
}

// Set replaces the value stored at id.
func (t *Tree[T]) Set(id NodeID, v T) {
	t.at(id).value = v
}

func (t *Tree[T]) Parent(id NodeID) NodeID      { return t.at(id).parent }
func (t *Tree[T]) FirstChild(id NodeID) NodeID  { return t.at(id).firstChild }
func (t *Tree[T]) LastChild(id NodeID) NodeID   { return t.at(id).lastChild }
func (t *Tree[T]) NextSibling(id NodeID) NodeID { return t.at(id).nextSibling }
func (t *Tree[T]) PrevSibling(id NodeID) NodeID { return t.at(id).prevSibling }

// IsOrphan reports whether id has no parent and no siblings, i.e. whether it
// may be passed to AppendChild. A node with children of its own can still be
// an orphan.
func (t *Tree[T]) IsOrphan(id NodeID) bool {
	s := t.at(id)
	return s.parent == None && s.nextSibling == None && s.prevSibling == None
}

// AppendChild attaches child as the last child of parent. It panics if child
// is not an orphan or if the append would create a cycle.
func (t *Tree[T]) AppendChild(parent, child NodeID) {
	if parent == child {
		panic(fmt.Errorf("%w: node %d appended to itself", ErrInvariant, child))
	}
	if !t.IsOrphan(child) {
		panic(fmt.Errorf("%w: node %d is already attached", ErrInvariant, child))
	}
	for a := t.at(parent).parent; a != None; a = t.at(a).parent {
		if a == child {
			panic(fmt.Errorf("%w: node %d is an ancestor of %d", ErrInvariant, child, parent))
		}
	}

	p := t.at(parent)
	c := t.at(child)
	c.parent = parent
	if p.lastChild == None {
		p.firstChild = child
	} else {
		t.at(p.lastChild).nextSibling = child
		c.prevSibling = p.lastChild
	}
	p.lastChild = child
}

// Children yields the children of id in order. The sequence is re-derived
// from the first child each time it is ranged over.
func (t *Tree[T]) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for c := t.at(id).firstChild; c != None; c = t.at(c).nextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildCount returns the number of children of id.
func (t *Tree[T]) ChildCount(id NodeID) int {
	n := 0
	for range t.Children(id) {
		n++
	}
	return n
}

// Walk visits id and its descendants depth first, parents before children.
// Returning false from fn skips the node's subtree.
func (t *Tree[T]) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for c := range t.Children(id) {
		t.Walk(c, fn)
	}
}
