// Package org provides the in-memory organization tree and its traversal.
//
// # Overview
//
// An organization is a single rooted tree of [Entity] values. Each entity
// owns its ordered children and carries the claims other entities make about
// it ("reverse claims"), such as the "headOf" claim naming the holder of the
// unit's leading position. Reverse claims are lookup data only; traversal
// never follows them.
//
// # Relations
//
// [FindHeadOf] resolves the head-of label of one entity. [NewIndex] resolves
// it once for every entity of a tree and serves lookups by ID.
//
// # Traversal
//
// [Walk] visits the tree depth-first in pre-order using an explicit work
// stack, so arbitrarily deep trees cannot exhaust the goroutine stack. A
// [Visitor] receives one callback per sibling group start, per child, and per
// sibling group end. Sibling order follows the input unless an [Order] is
// supplied with [WithOrder].
//
// The tree is assumed to be acyclic. Walk does not detect cycles; a cyclic
// input never terminates.
package org
