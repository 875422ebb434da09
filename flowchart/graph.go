// Package flowchart builds the control-flow diagram ("flowchart") of a
// function body: a directed multigraph of labeled vertices connected by
// optionally labeled edges, plus a side table describing the source
// fragment each vertex renders.
package flowchart

import "github.com/minio/highwayhash"

// VertexKind classifies a flowchart vertex.
type VertexKind int

const (
	Condition VertexKind = iota
	Process
	LoopOpen
	LoopClose
)

func (k VertexKind) String() string {
	switch k {
	case Condition:
		return "condition"
	case Process:
		return "process"
	case LoopOpen:
		return "loop_open"
	case LoopClose:
		return "loop_close"
	default:
		return "unknown"
	}
}

// VertexID is a handle into a Graph's vertex arena. Vertices are identified
// by handle, not pointer, so the graph stays a plain value-oriented arena
// even though the control flow it represents is cyclic (loops).
type VertexID uint64

// EdgeID is a handle into a Graph's edge arena.
type EdgeID uint64

// Vertex is the payload carried by a flowchart node.
type Vertex struct {
	ID    VertexID
	Kind  VertexKind
	Label string
}

// Edge is the payload carried by a flowchart connection. Text is the
// optional branch label ("true", "false", a case constant list, "default").
type Edge struct {
	ID     EdgeID
	From   VertexID
	To     VertexID
	Text   string
	hidden bool
}

// Operator is a side-table entry describing the rendered source fragment
// backing a non-trivial vertex.
type Operator struct {
	Label    string
	Contents string
}

// Graph is the directed multigraph described by a flowchart: an adjacency
// list of vertex/edge arrays keyed by monotonic handles, with a side
// operator table. One Graph is built per function body; its id counter is
// private to the graph so multiple graphs built concurrently across
// translation units never collide.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	operator map[VertexID]Operator
	nextV    uint64
	nextE    uint64
}

// NewGraph returns an empty graph ready for a builder to populate.
func NewGraph() *Graph {
	return &Graph{operator: make(map[VertexID]Operator)}
}

func (g *Graph) addVertex(kind VertexKind, label string) VertexID {
	id := VertexID(g.nextV)
	g.nextV++
	g.vertices = append(g.vertices, Vertex{ID: id, Kind: kind, Label: label})
	return id
}

// AddCondition allocates a Condition vertex and returns its id.
func (g *Graph) AddCondition(label string) VertexID { return g.addVertex(Condition, label) }

// AddProcess allocates a Process vertex and returns its id.
func (g *Graph) AddProcess(label string) VertexID { return g.addVertex(Process, label) }

// AddLoopOpen allocates a LoopOpen vertex and returns its id.
func (g *Graph) AddLoopOpen(label string) VertexID { return g.addVertex(LoopOpen, label) }

// AddLoopClose allocates a LoopClose vertex and returns its id.
func (g *Graph) AddLoopClose(label string) VertexID { return g.addVertex(LoopClose, label) }

// AddEdge creates a new edge between from and to and returns its handle.
// Edge text may be set afterward via SetEdgeText.
func (g *Graph) AddEdge(from, to VertexID) EdgeID {
	id := EdgeID(g.nextE)
	g.nextE++
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to})
	return id
}

// SetEdgeText sets the label of a previously created edge.
func (g *Graph) SetEdgeText(id EdgeID, text string) {
	for i := range g.edges {
		if g.edges[i].ID == id && !g.edges[i].hidden {
			g.edges[i].Text = text
			return
		}
	}
}

// RemoveEdge removes the most-recently-added visible parallel edge from
// "from" to "to", mirroring the "remove one parallel edge" semantics the
// switch/case lowering relies on. It is a no-op if no such edge exists.
func (g *Graph) RemoveEdge(from, to VertexID) {
	for i := len(g.edges) - 1; i >= 0; i-- {
		e := &g.edges[i]
		if e.hidden {
			continue
		}
		if e.From == from && e.To == to {
			e.hidden = true
			return
		}
	}
}

// SetOperator records the (label, contents) pair for a vertex id in the
// side table.
func (g *Graph) SetOperator(id VertexID, label, contents string) {
	g.operator[id] = Operator{Label: label, Contents: contents}
}

// Operator returns the side-table entry for a vertex, if any.
func (g *Graph) Operator(id VertexID) (Operator, bool) {
	op, ok := g.operator[id]
	return op, ok
}

// Vertices returns the graph's vertex set in allocation order.
func (g *Graph) Vertices() []Vertex { return append([]Vertex(nil), g.vertices...) }

// Edges returns the graph's visible (non-removed) edge set in allocation
// order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if !e.hidden {
			out = append(out, e)
		}
	}
	return out
}

// OutEdges returns the visible outgoing edges of a vertex.
func (g *Graph) OutEdges(id VertexID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if !e.hidden && e.From == id {
			out = append(out, e)
		}
	}
	return out
}

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// ContentHash returns a HighwayHash digest of the vertex's recorded operator
// contents, so callers can detect byte-identical flowcharts without
// re-walking the graph. It reports false if the vertex has no operator
// entry.
func (g *Graph) ContentHash(id VertexID) (uint64, bool) {
	op, ok := g.operator[id]
	if !ok {
		return 0, false
	}
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, false
	}
	_, _ = h.Write([]byte(op.Contents))
	return h.Sum64(), true
}
