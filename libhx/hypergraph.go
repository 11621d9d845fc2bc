package libhx

import (
	"io"

	"github.com/hx-systems/gohx/gohx"
)

// Hypergraph is a minimal directed hypergraph container: an edge list plus
// node bookkeeping. It exposes the read surface the motif engine consumes;
// richer storage and adjacency layers live with the caller.
type Hypergraph struct {
	edges EdgeList
	nodes NodeSet
}

func NewHypergraph() *Hypergraph {
	return &Hypergraph{}
}

// NewHypergraphFromString parses a hyperedge expression such as
// "1,2>3; 2,3>1,4" (see hypergraph-grammar.go).
func NewHypergraphFromString(expr string) (*Hypergraph, error) {
	h := NewHypergraph()
	if err := h.AddFromString(expr); err != nil {
		return nil, err
	}
	return h, nil
}

// AddEdge appends one directed hyperedge. Source and target must be
// non-empty; they may overlap.
func (h *Hypergraph) AddEdge(source, target []gohx.NodeID) error {
	e, err := NewHyperedge(source, target)
	if err != nil {
		return err
	}
	h.addEdge(e)
	return nil
}

// AddEdges appends already-formed hyperedges.
func (h *Hypergraph) AddEdges(edges ...Hyperedge) {
	for _, e := range edges {
		h.addEdge(e)
	}
}

func (h *Hypergraph) addEdge(e Hyperedge) {
	h.edges = append(h.edges, e)
	h.nodes = h.nodes.Union(e.Nodes())
}

func (h *Hypergraph) NumNodes() int {
	return len(h.nodes)
}

func (h *Hypergraph) NumEdges() int {
	return len(h.edges)
}

// Nodes returns the node set of the hypergraph. Read-only.
func (h *Hypergraph) Nodes() NodeSet {
	return h.nodes
}

// GetEdges returns the full edge list. The slice is a read-only snapshot;
// classification never mutates it.
func (h *Hypergraph) GetEdges() EdgeList {
	return h.edges
}

// GetEdgesUpTo returns the edges whose node span is at most order.
func (h *Hypergraph) GetEdgesUpTo(order int) EdgeList {
	return h.edges.FilterUpTo(order)
}

func (h *Hypergraph) WriteAsString(out io.Writer) {
	io.WriteString(out, h.edges.String())
}
