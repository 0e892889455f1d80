package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/orgchart/pkg/org"
)

type exportDocument struct {
	Data exportData `json:"data"`
}

type exportData struct {
	OrganisationEntity *exportEntity `json:"organisationEntity"`
}

type exportEntity struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ShortName     *string         `json:"shortName"`
	Children      []*exportEntity `json:"children"`
	ReverseClaims []exportClaim   `json:"reverseClaims"`
}

type exportClaim struct {
	ClaimType struct {
		Name string `json:"name"`
	} `json:"claimType"`
	Entity claimant `json:"entity"`
}

// WriteJSON encodes the tree rooted at root as an organization document with
// plain arrays for children and reverse claims, and writes it to w.
func WriteJSON(root *org.Entity, w io.Writer) error {
	doc := exportDocument{Data: exportData{OrganisationEntity: toExport(root)}}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the tree rooted at root to a JSON file at path.
func ExportJSON(root *org.Entity, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}

func toExport(e *org.Entity) *exportEntity {
	if e == nil {
		return nil
	}
	out := &exportEntity{
		ID:            e.ID,
		Name:          e.Name,
		Children:      make([]*exportEntity, len(e.Children)),
		ReverseClaims: make([]exportClaim, len(e.ReverseClaims)),
	}
	if e.ShortName != "" {
		short := e.ShortName
		out.ShortName = &short
	}
	for i, c := range e.ReverseClaims {
		var ec exportClaim
		ec.ClaimType.Name = c.Type
		ec.Entity = claimant{Position: c.Claimant.Position, Name: c.Claimant.Name}
		out.ReverseClaims[i] = ec
	}
	for i, c := range e.Children {
		out.Children[i] = toExport(c)
	}
	return out
}
