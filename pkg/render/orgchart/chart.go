package orgchart

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/dot"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Chart is a built organization chart.
type Chart struct {
	Graph    *dot.Graph
	Entities int // units drawn, including the root
	Joints   int // joint nodes inserted by the router
	Vacant   int // units labeled Vacant

	// JointCollisions counts joints whose ID was already taken.
	JointCollisions int
}

// Option configures [Build].
type Option func(*config)

type config struct {
	name       string
	comment    string
	style      Style
	order      org.Order
	jointDepth int
	onVisit    func(*org.Entity)
	logger     *log.Logger
}

// WithName sets the graph name. Output files are named after it.
func WithName(name string) Option { return func(c *config) { c.name = name } }

// WithComment sets the comment written above the graph.
func WithComment(comment string) Option { return func(c *config) { c.comment = comment } }

// WithStyle replaces [DefaultStyle].
func WithStyle(s Style) Option { return func(c *config) { c.style = s } }

// WithOrder sorts each sibling group before it is drawn.
func WithOrder(o org.Order) Option { return func(c *config) { c.order = o } }

// WithJointDepth sets the first depth whose edges are routed through joints.
func WithJointDepth(depth int) Option { return func(c *config) { c.jointDepth = depth } }

// WithVisitHook registers fn to be called for every unit as it is drawn.
func WithVisitHook(fn func(*org.Entity)) Option { return func(c *config) { c.onVisit = fn } }

// WithLogger sets the logger that receives routing warnings.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// Build draws the tree rooted at root. The root is labeled with its plain
// name; every other unit gets a [FormatLabel] label and hangs off its parent
// as decided by [Router].
func Build(root *org.Entity, opts ...Option) *Chart {
	cfg := config{
		name:       "G",
		style:      DefaultStyle(),
		jointDepth: DefaultJointDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := dot.NewGraph(cfg.name)
	g.Comment = cfg.comment
	g.Attrs = cfg.style.Graph.Clone()
	g.NodeAttrs = cfg.style.Node.Clone()
	g.EdgeAttrs = cfg.style.Edge.Clone()

	chart := &Chart{Graph: g}
	if root == nil {
		return chart
	}

	if cfg.onVisit != nil {
		cfg.onVisit(root)
	}
	g.AddNode(root.ID, dot.Attr{Key: "label", Value: root.Name})
	chart.Entities = 1

	idx := org.NewIndex(root)
	visit := func(e *org.Entity) {
		if cfg.onVisit != nil {
			cfg.onVisit(e)
		}
		head, ok := idx.HeadOf(e.ID)
		if !ok {
			chart.Vacant++
		}
		g.AddNode(e.ID, FormatLabel(e, head, ok).Attr())
		chart.Entities++
	}

	router := NewRouter(g, visit, cfg.jointDepth, cfg.style.Joint)
	router.Logger = cfg.logger
	org.Walk(root, router, org.WithOrder(cfg.order))
	chart.Joints = router.Joints()
	chart.JointCollisions = router.Collisions()

	return chart
}
