package libhx

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/hx-systems/gohx/gohx"
)

// HypergraphExpr is a ";"-separated list of directed hyperedge expressions.
// Each edge lists its source node IDs, a ">", then its target node IDs:
//
//	1,2>3; 2,3>1,4
type HypergraphExpr struct {
	Edges []*HyperedgeExpr `parser:"(@@ (\";\" @@)*)?"`
}

type HyperedgeExpr struct {
	Source []int64 `parser:"@Int (\",\" @Int)*"`
	Target []int64 `parser:"\">\" @Int (\",\" @Int)*"`
}

var parseHypergraphExpr = participle.MustBuild[HypergraphExpr]()

func (x *HyperedgeExpr) hyperedge() (Hyperedge, error) {
	src := make([]gohx.NodeID, len(x.Source))
	dst := make([]gohx.NodeID, len(x.Target))
	for i, id := range x.Source {
		src[i] = gohx.NodeID(id)
	}
	for i, id := range x.Target {
		dst[i] = gohx.NodeID(id)
	}
	return NewHyperedge(src, dst)
}

// AddFromString parses a hyperedge expression and appends the edges.
func (h *Hypergraph) AddFromString(expr string) error {
	hx, err := parseHypergraphExpr.ParseString("", expr)
	if err != nil {
		return err
	}

	for xi, edgeExpr := range hx.Edges {
		e, err := edgeExpr.hyperedge()
		if err != nil {
			return errors.Wrapf(err, "error reading edge #%d", xi+1)
		}
		h.addEdge(e)
	}
	return nil
}

// ParseEdgeList parses a hyperedge expression into a standalone EdgeList.
func ParseEdgeList(expr string) (EdgeList, error) {
	h := NewHypergraph()
	if err := h.AddFromString(expr); err != nil {
		return nil, err
	}
	return h.GetEdges(), nil
}
