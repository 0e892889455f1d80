package orgchart

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/dot"
	"github.com/matzehuels/orgchart/pkg/org"
)

// DefaultJointDepth is the first depth whose edges are routed through joints.
const DefaultJointDepth = 3

const (
	subgraphPrefix = "subgraph_"
	jointSuffix    = "_intermediate"
	jointIDLen     = 5
)

// JointID returns the ID of the joint between parent and child: the last
// five characters of each ID joined by an underscore, plus a fixed suffix.
func JointID(parentID, childID string) string {
	return tail(parentID, jointIDLen) + "_" + tail(childID, jointIDLen) + jointSuffix
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// scope is an open sibling group.
type scope struct {
	sub       *dot.Subgraph
	prevJoint string
}

// Router is an [org.Visitor] that emits the edges of a chart.
//
// Every sibling group gets its own subgraph, nested like the tree. Edges
// into children above the joint depth are drawn directly. Deeper children
// hang off a chain of invisible joints instead: the first joint of a group
// connects to the parent, each further joint to its predecessor, and every
// joint shares a rank with its child. Deep groups then stack vertically
// instead of fanning out.
//
// Joint IDs keep only the last characters of both unit IDs, so distinct
// parent/child pairs can map to the same joint, which Graphviz merges into
// one node. The router counts such collisions and warns on Logger.
type Router struct {
	// Logger receives collision warnings; nil disables them.
	Logger *log.Logger

	graph      *dot.Graph
	visit      func(*org.Entity)
	jointDepth int
	joint      dot.Attrs

	open       []scope
	joints     int
	seen       map[string]string
	collisions int
}

// NewRouter creates a router writing into g. Visit is called for every
// child before its edges are emitted and may be nil.
func NewRouter(g *dot.Graph, visit func(*org.Entity), jointDepth int, joint dot.Attrs) *Router {
	return &Router{
		graph:      g,
		visit:      visit,
		jointDepth: jointDepth,
		joint:      joint,
		seen:       make(map[string]string),
	}
}

// Enter opens the subgraph of parent's sibling group.
func (r *Router) Enter(parent *org.Entity, _ int) {
	r.open = append(r.open, scope{sub: dot.NewSubgraph(subgraphPrefix + parent.ID)})
}

// Visit emits the edge, or joint chain link, from parent to child.
func (r *Router) Visit(parent, child *org.Entity, depth, _ int) {
	if r.visit != nil {
		r.visit(child)
	}

	cur := &r.open[len(r.open)-1]
	if depth < r.jointDepth {
		cur.sub.AddEdge(parent.ID, child.ID)
		return
	}

	joint := JointID(parent.ID, child.ID)
	if first, ok := r.seen[joint]; ok {
		r.collisions++
		if r.Logger != nil {
			r.Logger.Warn("joint id reused, Graphviz will merge the joints",
				"joint", joint, "first", first, "unit", child.ID)
		}
	} else {
		r.seen[joint] = child.ID
	}
	cur.sub.AddNode(joint, r.joint...)

	from := parent.ID
	if cur.prevJoint != "" {
		from = cur.prevJoint
	}
	cur.sub.AddEdge(from, joint)

	rank := dot.NewSubgraph("", dot.Attr{Key: "rank", Value: "same"})
	rank.AddEdge(joint, child.ID)
	cur.sub.AddSubgraph(rank)

	cur.prevJoint = joint
	r.joints++
}

// Leave closes the current subgraph and attaches it to the enclosing one.
func (r *Router) Leave(_ *org.Entity, _ int) {
	done := r.open[len(r.open)-1]
	r.open = r.open[:len(r.open)-1]
	if len(r.open) == 0 {
		r.graph.AddSubgraph(done.sub)
		return
	}
	r.open[len(r.open)-1].sub.AddSubgraph(done.sub)
}

// Joints returns the number of joints emitted so far.
func (r *Router) Joints() int { return r.joints }

// Collisions returns how many joints reused the ID of an earlier joint.
func (r *Router) Collisions() int { return r.collisions }

var _ org.Visitor = (*Router)(nil)
