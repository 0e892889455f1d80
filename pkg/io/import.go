package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

type document struct {
	Data *struct {
		OrganisationEntity *entity `json:"organisationEntity"`
	} `json:"data"`
}

type entity struct {
	ID            *string            `json:"id"`
	Name          *string            `json:"name"`
	ShortName     *string            `json:"shortName"`
	Children      connection[entity] `json:"children"`
	ReverseClaims connection[claim]  `json:"reverseClaims"`
}

type claim struct {
	ClaimType *struct {
		Name string `json:"name"`
	} `json:"claimType"`
	Entity *claimant `json:"entity"`
}

type claimant struct {
	Position string `json:"position"`
	Name     string `json:"name"`
}

// connection is a list that decodes from either {"edges":[{"node":x}]} or a
// plain array. Null records are kept as nil so that callers can report them.
type connection[T any] []*T

func (c *connection[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var items []*T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*c = items
		return nil
	}

	var conn struct {
		Edges []*struct {
			Node *T `json:"node"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(data, &conn); err != nil {
		return err
	}
	items := make([]*T, len(conn.Edges))
	for i, e := range conn.Edges {
		if e != nil {
			items[i] = e.Node
		}
	}
	*c = items
	return nil
}

// ReadJSON decodes an organization document from r and returns its root
// entity. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*org.Entity, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode")
	}
	if doc.Data == nil || doc.Data.OrganisationEntity == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "missing data.organisationEntity")
	}
	return convert("organisationEntity", doc.Data.OrganisationEntity)
}

// ImportJSON reads the organization document at path.
func ImportJSON(path string) (*org.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func convert(path string, e *entity) (*org.Entity, error) {
	if e.ID == nil || *e.ID == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "%s: missing id", path)
	}
	if e.Name == nil || *e.Name == "" {
		return nil, errors.New(errors.ErrCodeMissingField, "%s (%s): missing name", path, *e.ID)
	}

	out := &org.Entity{ID: *e.ID, Name: *e.Name}
	if e.ShortName != nil {
		out.ShortName = *e.ShortName
	}

	for i, c := range e.ReverseClaims {
		if c == nil {
			return nil, errors.New(errors.ErrCodeMissingField, "%s.reverseClaims[%d]: missing node", path, i)
		}
		cl := org.Claim{}
		if c.ClaimType != nil {
			cl.Type = c.ClaimType.Name
		}
		if c.Entity != nil {
			cl.Claimant = org.Claimant{Position: c.Entity.Position, Name: c.Entity.Name}
		} else if cl.Type == org.ClaimHeadOf {
			return nil, errors.New(errors.ErrCodeMissingField, "%s.reverseClaims[%d]: missing entity", path, i)
		}
		out.ReverseClaims = append(out.ReverseClaims, cl)
	}

	if len(e.Children) > 0 {
		out.Children = make([]*org.Entity, 0, len(e.Children))
	}
	for i, c := range e.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		if c == nil {
			return nil, errors.New(errors.ErrCodeMissingField, "%s: missing node", childPath)
		}
		child, err := convert(childPath, c)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}

	return out, nil
}
