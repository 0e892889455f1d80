package org

import "slices"

// Visitor receives traversal callbacks from [Walk].
//
// Depth is the depth of the children being visited: 0 for the root's
// direct children.
type Visitor interface {
	// Enter is called before the first child of parent is visited.
	// Leaves never receive Enter.
	Enter(parent *Entity, depth int)

	// Visit is called for each child of parent before descending into it.
	// Index is the child's position after ordering.
	Visit(parent, child *Entity, depth, index int)

	// Leave is called after the last child of parent and all of its
	// descendants have been visited.
	Leave(parent *Entity, depth int)
}

// VisitorFuncs adapts plain functions to [Visitor]. Nil fields are skipped.
type VisitorFuncs struct {
	EnterFunc func(parent *Entity, depth int)
	VisitFunc func(parent, child *Entity, depth, index int)
	LeaveFunc func(parent *Entity, depth int)
}

func (f VisitorFuncs) Enter(parent *Entity, depth int) {
	if f.EnterFunc != nil {
		f.EnterFunc(parent, depth)
	}
}

func (f VisitorFuncs) Visit(parent, child *Entity, depth, index int) {
	if f.VisitFunc != nil {
		f.VisitFunc(parent, child, depth, index)
	}
}

func (f VisitorFuncs) Leave(parent *Entity, depth int) {
	if f.LeaveFunc != nil {
		f.LeaveFunc(parent, depth)
	}
}

// WalkOption configures [Walk].
type WalkOption func(*walkConfig)

type walkConfig struct {
	order Order
}

// WithOrder sorts each sibling group with o before visiting it. The sort is
// stable and works on a copy; the tree is not modified. A nil Order keeps
// source order.
func WithOrder(o Order) WalkOption {
	return func(c *walkConfig) { c.order = o }
}

// frame is one open sibling group on the work stack.
type frame struct {
	parent   *Entity
	children []*Entity
	depth    int
	next     int
}

// Walk traverses the tree below root depth-first in pre-order. The root
// itself is not visited; it appears only as the parent of its children.
func Walk(root *Entity, v Visitor, opts ...WalkOption) {
	var cfg walkConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if root == nil || root.IsLeaf() {
		return
	}

	stack := []frame{cfg.open(root, 0, v)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.children) {
			v.Leave(top.parent, top.depth)
			stack = stack[:len(stack)-1]
			continue
		}

		parent, child, depth, index := top.parent, top.children[top.next], top.depth, top.next
		top.next++

		v.Visit(parent, child, depth, index)
		if !child.IsLeaf() {
			stack = append(stack, cfg.open(child, depth+1, v))
		}
	}
}

func (c *walkConfig) open(parent *Entity, depth int, v Visitor) frame {
	children := parent.Children
	if c.order != nil {
		children = slices.Clone(children)
		slices.SortStableFunc(children, (func(a, b *Entity) int)(c.order))
	}
	v.Enter(parent, depth)
	return frame{parent: parent, children: children, depth: depth}
}
