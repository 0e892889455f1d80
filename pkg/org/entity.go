package org

// ClaimHeadOf is the claim type naming the head of an entity.
const ClaimHeadOf = "headOf"

// Entity is an organizational unit or role.
type Entity struct {
	ID        string
	Name      string
	ShortName string // empty when the unit has no short name

	// Children are owned in source order.
	Children []*Entity

	// ReverseClaims are claims made by other entities about this one.
	ReverseClaims []Claim
}

// IsLeaf reports whether e has no children.
func (e *Entity) IsLeaf() bool {
	return len(e.Children) == 0
}

// Claim is a typed assertion made by a claimant about an entity.
type Claim struct {
	Type     string // claimType.name, e.g. "headOf"
	Claimant Claimant
}

// Claimant describes the role holder making a claim.
type Claimant struct {
	Position string
	Name     string
}

// Count returns the number of entities in the tree rooted at root,
// including root itself.
func Count(root *Entity) int {
	if root == nil {
		return 0
	}
	n := 1
	Walk(root, VisitorFuncs{
		VisitFunc: func(_, _ *Entity, _, _ int) { n++ },
	})
	return n
}
