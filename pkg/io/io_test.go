package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

const connectionDoc = `{
  "data": {
    "organisationEntity": {
      "id": "R",
      "name": "Root",
      "shortName": null,
      "children": {"edges": [
        {"node": {
          "id": "A",
          "name": "Alpha, Referat 1",
          "shortName": "A1",
          "children": {"edges": []},
          "reverseClaims": {"edges": [
            {"node": {"claimType": {"name": "memberOf"}, "entity": {"position": "Referent", "name": "Max"}}},
            {"node": {"claimType": {"name": "headOf"}, "entity": {"position": "Leiterin", "name": "Erika"}}}
          ]}
        }},
        {"node": {"id": "B", "name": "Bravo"}}
      ]},
      "reverseClaims": {"edges": []}
    }
  }
}`

const arrayDoc = `{
  "data": {
    "organisationEntity": {
      "id": "R",
      "name": "Root",
      "children": [
        {
          "id": "A",
          "name": "Alpha, Referat 1",
          "shortName": "A1",
          "children": [],
          "reverseClaims": [
            {"claimType": {"name": "memberOf"}, "entity": {"position": "Referent", "name": "Max"}},
            {"claimType": {"name": "headOf"}, "entity": {"position": "Leiterin", "name": "Erika"}}
          ]
        },
        {"id": "B", "name": "Bravo", "children": null}
      ]
    }
  }
}`

func checkSample(t *testing.T, root *org.Entity) {
	t.Helper()
	if root.ID != "R" || root.Name != "Root" || root.ShortName != "" {
		t.Fatalf("root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(root.Children))
	}
	a, b := root.Children[0], root.Children[1]
	if a.ID != "A" || a.ShortName != "A1" || a.Name != "Alpha, Referat 1" {
		t.Errorf("child A = %+v", a)
	}
	if !a.IsLeaf() || !b.IsLeaf() {
		t.Error("children should be leaves")
	}
	if head, ok := org.FindHeadOf(a); !ok || head != "Leiterin Erika" {
		t.Errorf("FindHeadOf(A) = (%q, %v)", head, ok)
	}
	if _, ok := org.FindHeadOf(b); ok {
		t.Error("FindHeadOf(B) should report no head")
	}
}

func TestReadJSONConnection(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(connectionDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	checkSample(t, root)
}

func TestReadJSONArrays(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(arrayDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	checkSample(t, root)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
		wantMsg  string
	}{
		{"not json", `{"data":`, errors.ErrCodeMalformedInput, "decode"},
		{"empty", ``, errors.ErrCodeMalformedInput, "decode"},
		{"no data", `{}`, errors.ErrCodeMalformedInput, "organisationEntity"},
		{"null root", `{"data":{"organisationEntity":null}}`, errors.ErrCodeMalformedInput, "organisationEntity"},
		{"wrong type", `{"data":{"organisationEntity":[]}}`, errors.ErrCodeMalformedInput, "decode"},
		{"missing id", `{"data":{"organisationEntity":{"name":"x"}}}`, errors.ErrCodeMissingField, "missing id"},
		{"empty id", `{"data":{"organisationEntity":{"id":"","name":"x"}}}`, errors.ErrCodeMissingField, "missing id"},
		{"missing name", `{"data":{"organisationEntity":{"id":"R"}}}`, errors.ErrCodeMissingField, "missing name"},
		{"empty name", `{"data":{"organisationEntity":{"id":"R","name":""}}}`, errors.ErrCodeMissingField, "R): missing name"},
		{
			"missing child name",
			`{"data":{"organisationEntity":{"id":"R","name":"x","children":[{"id":"a","name":"a"},{"id":"b"}]}}}`,
			errors.ErrCodeMissingField,
			"organisationEntity.children[1] (b): missing name",
		},
		{
			"null edge node",
			`{"data":{"organisationEntity":{"id":"R","name":"x","children":{"edges":[{"node":null}]}}}}`,
			errors.ErrCodeMissingField,
			"children[0]: missing node",
		},
		{
			"headOf without entity",
			`{"data":{"organisationEntity":{"id":"R","name":"x","reverseClaims":[{"claimType":{"name":"headOf"}}]}}}`,
			errors.ErrCodeMissingField,
			"reverseClaims[0]: missing entity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() expected error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %q, want %q (%v)", errors.GetCode(err), tt.wantCode, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

// nestedDoc returns a plain-array document whose tree is a chain of n units.
func nestedDoc(n int) string {
	var b strings.Builder
	b.WriteString(`{"data":{"organisationEntity":`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(`,"children":[`)
		}
		fmt.Fprintf(&b, `{"id":"u%d","name":"Unit %d"`, i, i)
	}
	for i := 0; i < n; i++ {
		b.WriteString(`}`)
		if i < n-1 {
			b.WriteString(`]`)
		}
	}
	b.WriteString(`}}`)
	return b.String()
}

func TestReadJSONDepth(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(nestedDoc(1000)))
	if err != nil {
		t.Fatalf("ReadJSON() depth 1000 error: %v", err)
	}
	if got := org.Count(root); got != 1000 {
		t.Errorf("Count() = %d, want 1000", got)
	}

	_, err = ReadJSON(strings.NewReader(nestedDoc(6000)))
	if !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("depth 6000: code = %q, want %q (%v)", errors.GetCode(err), errors.ErrCodeMalformedInput, err)
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "organigramm.json")
	if err := os.WriteFile(path, []byte(connectionDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	checkSample(t, root)
}

func TestImportJSONNotFound(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestImportJSONPathInError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ImportJSON(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("ImportJSON() error = %v, should mention %s", err, path)
	}
	if !errors.Is(err, errors.ErrCodeMalformedInput) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeMalformedInput)
	}
}

func TestWriteJSONReadBack(t *testing.T) {
	root, err := ReadJSON(strings.NewReader(connectionDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(root, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"shortName": null`) {
		t.Errorf("root without short name should export null:\n%s", buf.String())
	}

	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON()) error: %v", err)
	}
	checkSample(t, again)
}

func TestExportJSON(t *testing.T) {
	root := &org.Entity{ID: "R", Name: "Root"}
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(root, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if got.ID != "R" || !got.IsLeaf() {
		t.Errorf("ImportJSON() = %+v", got)
	}
}
