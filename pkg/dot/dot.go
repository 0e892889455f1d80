package dot

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Attr is a single key/value attribute.
type Attr struct {
	Key   string
	Value string
	// HTML marks Value as an HTML-like label, written as <Value>.
	HTML bool
}

// HTMLAttr returns an attribute whose value is written as an HTML-like label.
func HTMLAttr(key, value string) Attr {
	return Attr{Key: key, Value: value, HTML: true}
}

// Attrs is an ordered attribute list. Keys are unique; [Attrs.Set] keeps the
// position of an existing key.
type Attrs []Attr

// Get returns the value stored for key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set returns a copy of a with key set to value. An existing key keeps its
// position; a new key is appended. The receiver is never modified.
func (a Attrs) Set(key, value string) Attrs {
	out := a.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			out[i].HTML = false
			return out
		}
	}
	return append(out, Attr{Key: key, Value: value})
}

// Clone returns an independent copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Stmt is a statement inside a graph or subgraph body.
type Stmt interface {
	write(buf *bytes.Buffer, indent int)
}

// Node declares a node with attributes.
type Node struct {
	ID    string
	Attrs Attrs
}

// Edge connects two nodes.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// Scope is an ordered statement body shared by [Graph] and [Subgraph].
type Scope struct {
	Body []Stmt
}

// AddNode appends a node declaration.
func (s *Scope) AddNode(id string, attrs ...Attr) {
	s.Body = append(s.Body, &Node{ID: id, Attrs: attrs})
}

// AddEdge appends an edge from -> to.
func (s *Scope) AddEdge(from, to string, attrs ...Attr) {
	s.Body = append(s.Body, &Edge{From: from, To: to, Attrs: attrs})
}

// AddSubgraph appends sub at the current end of the body. Statements added
// to sub afterwards still belong to it.
func (s *Scope) AddSubgraph(sub *Subgraph) {
	s.Body = append(s.Body, sub)
}

// Nodes returns all node declarations in this scope and its subgraphs,
// in document order.
func (s *Scope) Nodes() []*Node {
	var out []*Node
	s.each(func(st Stmt) {
		if n, ok := st.(*Node); ok {
			out = append(out, n)
		}
	})
	return out
}

// Edges returns all edges in this scope and its subgraphs, in document order.
func (s *Scope) Edges() []*Edge {
	var out []*Edge
	s.each(func(st Stmt) {
		if e, ok := st.(*Edge); ok {
			out = append(out, e)
		}
	})
	return out
}

// Subgraphs returns all subgraphs nested in this scope, in document order.
func (s *Scope) Subgraphs() []*Subgraph {
	var out []*Subgraph
	s.each(func(st Stmt) {
		if sg, ok := st.(*Subgraph); ok {
			out = append(out, sg)
		}
	})
	return out
}

// NodeCount returns the number of node declarations, including subgraphs.
func (s *Scope) NodeCount() int { return len(s.Nodes()) }

// EdgeCount returns the number of edges, including subgraphs.
func (s *Scope) EdgeCount() int { return len(s.Edges()) }

func (s *Scope) each(fn func(Stmt)) {
	for _, st := range s.Body {
		fn(st)
		if sg, ok := st.(*Subgraph); ok {
			sg.each(fn)
		}
	}
}

// Subgraph is a named or anonymous scope inside a graph.
type Subgraph struct {
	Scope
	Name  string
	Attrs Attrs
}

// NewSubgraph creates a subgraph. An empty name creates an anonymous one.
func NewSubgraph(name string, attrs ...Attr) *Subgraph {
	return &Subgraph{Name: name, Attrs: attrs}
}

// Graph is a directed graph description.
type Graph struct {
	Scope
	Name      string
	Comment   string
	Attrs     Attrs // graph [...]
	NodeAttrs Attrs // node [...]
	EdgeAttrs Attrs // edge [...]
}

// NewGraph creates an empty directed graph.
func NewGraph(name string) *Graph {
	return &Graph{Name: name}
}

// String returns the DOT source of g.
func (g *Graph) String() string {
	var buf bytes.Buffer
	g.write(&buf)
	return buf.String()
}

// Bytes returns the DOT source of g.
func (g *Graph) Bytes() []byte {
	var buf bytes.Buffer
	g.write(&buf)
	return buf.Bytes()
}

// WriteTo writes the DOT source of g to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	g.write(&buf)
	return buf.WriteTo(w)
}

func (g *Graph) write(buf *bytes.Buffer) {
	if g.Comment != "" {
		for _, line := range strings.Split(g.Comment, "\n") {
			fmt.Fprintf(buf, "// %s\n", line)
		}
	}
	if g.Name != "" {
		fmt.Fprintf(buf, "digraph %s {\n", ID(g.Name))
	} else {
		buf.WriteString("digraph {\n")
	}
	writeDefaults(buf, 1, "graph", g.Attrs)
	writeDefaults(buf, 1, "node", g.NodeAttrs)
	writeDefaults(buf, 1, "edge", g.EdgeAttrs)
	for _, st := range g.Body {
		st.write(buf, 1)
	}
	buf.WriteString("}\n")
}

func (n *Node) write(buf *bytes.Buffer, indent int) {
	writeIndent(buf, indent)
	buf.WriteString(ID(n.ID))
	writeAttrList(buf, n.Attrs)
	buf.WriteByte('\n')
}

func (e *Edge) write(buf *bytes.Buffer, indent int) {
	writeIndent(buf, indent)
	fmt.Fprintf(buf, "%s -> %s", ID(e.From), ID(e.To))
	writeAttrList(buf, e.Attrs)
	buf.WriteByte('\n')
}

func (sg *Subgraph) write(buf *bytes.Buffer, indent int) {
	writeIndent(buf, indent)
	if sg.Name != "" {
		fmt.Fprintf(buf, "subgraph %s {\n", ID(sg.Name))
	} else {
		buf.WriteString("{\n")
	}
	writeDefaults(buf, indent+1, "graph", sg.Attrs)
	for _, st := range sg.Body {
		st.write(buf, indent+1)
	}
	writeIndent(buf, indent)
	buf.WriteString("}\n")
}

func writeDefaults(buf *bytes.Buffer, indent int, kind string, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	writeIndent(buf, indent)
	buf.WriteString(kind)
	writeAttrList(buf, attrs)
	buf.WriteByte('\n')
}

func writeAttrList(buf *bytes.Buffer, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	buf.WriteString(" [")
	for i, a := range attrs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(ID(a.Key))
		buf.WriteByte('=')
		if a.HTML {
			buf.WriteString("<" + a.Value + ">")
		} else {
			buf.WriteString(ID(a.Value))
		}
	}
	buf.WriteByte(']')
}

func writeIndent(buf *bytes.Buffer, indent int) {
	for range indent {
		buf.WriteByte('\t')
	}
}

var (
	bareIDRe  = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
	keywords  = map[string]bool{"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true}
)

// ID formats s as a DOT identifier, quoting it unless it is a plain
// identifier or a numeral. Keywords are always quoted.
func ID(s string) string {
	if keywords[strings.ToLower(s)] {
		return quote(s)
	}
	if bareIDRe.MatchString(s) || numeralRe.MatchString(s) {
		return s
	}
	return quote(s)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// EscapeHTML escapes text for use inside an HTML-like label.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}
