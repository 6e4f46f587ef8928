package topology

// NodeKind classifies graph nodes.
type NodeKind string

const (
	KindBus       NodeKind = "bus"
	KindGenerator NodeKind = "generator"
	KindLoad      NodeKind = "load"
)

// EdgeKind classifies graph edges. Connection edges carry no numeric
// result; transmission-line edges carry flow/limit/congestion overlays.
type EdgeKind string

const (
	KindConnection       EdgeKind = "connection"
	KindTransmissionLine EdgeKind = "line"
)

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeStyle holds the visual attributes of a node.
type NodeStyle struct {
	Fill        string  `json:"fill"`
	Border      string  `json:"border"`
	BorderWidth float64 `json:"border_width"`
}

// EdgeStyle holds the visual attributes of an edge.
type EdgeStyle struct {
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
	Animated bool    `json:"animated"`
}

// Node is a renderable grid entity. BaseLabel and BaseStyle are fixed
// once the topology is built; Label and Style are overlay-derived and
// equal the base values whenever no usable result is applied.
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Position Position `json:"position"`

	BaseLabel string    `json:"base_label"`
	Label     string    `json:"label"`
	BaseStyle NodeStyle `json:"base_style"`
	Style     NodeStyle `json:"style"`

	// BusNumber is the 1-based bus number for bus nodes, zero otherwise.
	BusNumber int `json:"bus_number,omitempty"`
	// EntityID is the scenario identifier for generator and load nodes.
	EntityID string `json:"entity_id,omitempty"`
}

// Edge connects two nodes by id.
type Edge struct {
	ID           string   `json:"id"`
	Kind         EdgeKind `json:"kind"`
	SourceNodeID string   `json:"source"`
	TargetNodeID string   `json:"target"`

	BaseLabel string    `json:"base_label"`
	Label     string    `json:"label"`
	BaseStyle EdgeStyle `json:"base_style"`
	Style     EdgeStyle `json:"style"`

	// LineID and FlowLimitMW are set on transmission-line edges only.
	LineID      string  `json:"line_id,omitempty"`
	FlowLimitMW float64 `json:"flow_limit_mw,omitempty"`
}

// Graph is the base model handed to a rendering collaborator. Overlay
// application derives a new Graph sharing node/edge identity; the base
// graph is never mutated in place.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of the graph. Node and Edge are value types,
// so copying the backing slices is sufficient.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Node returns a pointer to the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns a pointer to the edge with the given id, or nil.
func (g *Graph) Edge(id string) *Edge {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}
