package org

// FindHeadOf returns the head-of label of e: the position and name of the
// first claimant whose claim type is [ClaimHeadOf], joined by a single space.
// It reports false when no such claim exists.
//
// Multiple head-of claims are a data error the caller is responsible for;
// the first one in source order wins.
func FindHeadOf(e *Entity) (string, bool) {
	for _, c := range e.ReverseClaims {
		if c.Type == ClaimHeadOf {
			return c.Claimant.Position + " " + c.Claimant.Name, true
		}
	}
	return "", false
}

// Index is a read-only lookup of head-of labels by entity ID.
type Index struct {
	heads map[string]string
	size  int
}

// NewIndex resolves the head-of label of every entity reachable from root.
func NewIndex(root *Entity) *Index {
	idx := &Index{heads: make(map[string]string)}
	if root == nil {
		return idx
	}
	idx.add(root)
	Walk(root, VisitorFuncs{
		VisitFunc: func(_, child *Entity, _, _ int) { idx.add(child) },
	})
	return idx
}

func (idx *Index) add(e *Entity) {
	idx.size++
	if label, ok := FindHeadOf(e); ok {
		idx.heads[e.ID] = label
	}
}

// HeadOf returns the head-of label of the entity with the given ID.
func (idx *Index) HeadOf(id string) (string, bool) {
	label, ok := idx.heads[id]
	return label, ok
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int { return idx.size }

// Vacant returns the number of indexed entities without a head.
func (idx *Index) Vacant() int { return idx.size - len(idx.heads) }
