package orgchart

import (
	"strings"

	"github.com/matzehuels/orgchart/pkg/dot"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Vacant is shown in place of the head-of label when no head is known.
const Vacant = "NN"

// Label is the rich-text label of an organizational unit.
type Label struct {
	ShortName string   // bold first line, empty when absent
	NameLines []string // the name split at ", ", commas kept
	Head      string   // head-of label or Vacant
}

// FormatLabel builds the label of e. Head is the head-of label resolved for
// e; ok reports whether one exists.
func FormatLabel(e *org.Entity, head string, ok bool) Label {
	if !ok {
		head = Vacant
	}
	return Label{
		ShortName: e.ShortName,
		NameLines: splitName(e.Name),
		Head:      head,
	}
}

func splitName(name string) []string {
	parts := strings.Split(name, ", ")
	for i := range len(parts) - 1 {
		parts[i] += ","
	}
	return parts
}

// Bold returns the lines rendered in bold: the short name when present,
// otherwise the whole name block.
func (l Label) Bold() []string {
	if l.ShortName != "" {
		return []string{l.ShortName}
	}
	return l.NameLines
}

// Lines returns the display lines of l, including the blank separator
// before the head-of line.
func (l Label) Lines() []string {
	var lines []string
	if l.ShortName != "" {
		lines = append(lines, l.ShortName)
	}
	lines = append(lines, l.NameLines...)
	return append(lines, "", l.Head)
}

// HTML returns l as the body of a Graphviz HTML-like label.
func (l Label) HTML() string {
	name := joinEscaped(l.NameLines, "<BR/>")

	var b strings.Builder
	if l.ShortName != "" {
		b.WriteString("<B>" + dot.EscapeHTML(l.ShortName) + "</B><BR/>")
		b.WriteString(name)
	} else {
		b.WriteString("<B>" + name + "</B>")
	}
	b.WriteString("<BR/><BR/>")
	b.WriteString(dot.EscapeHTML(l.Head))
	return b.String()
}

// Attr returns l as a label attribute.
func (l Label) Attr() dot.Attr {
	return dot.HTMLAttr("label", l.HTML())
}

func joinEscaped(lines []string, sep string) string {
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = dot.EscapeHTML(line)
	}
	return strings.Join(escaped, sep)
}
