package libhx

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hx-systems/gohx/gohx"
)

// NodeSet is a sorted, duplicate-free set of node IDs.
type NodeSet []gohx.NodeID

// MakeNodeSet forms a NodeSet from the given IDs, sorting and dropping dupes.
func MakeNodeSet(ids ...gohx.NodeID) NodeSet {
	ns := append(NodeSet{}, ids...)
	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })

	D := 0
	for i, id := range ns {
		if i > 0 && id == ns[D-1] {
			continue
		}
		ns[D] = id
		D++
	}
	return ns[:D]
}

func (ns NodeSet) Contains(id gohx.NodeID) bool {
	lo, hi := 0, len(ns)
	for lo < hi {
		mid := (lo + hi) >> 1
		if ns[mid] < id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(ns) && ns[lo] == id
}

// ContainsAll returns true if every node of sub is also in ns.
func (ns NodeSet) ContainsAll(sub NodeSet) bool {
	for _, id := range sub {
		if !ns.Contains(id) {
			return false
		}
	}
	return true
}

// Union returns a new NodeSet holding ns ∪ other.
func (ns NodeSet) Union(other NodeSet) NodeSet {
	out := make(NodeSet, 0, len(ns)+len(other))
	i, j := 0, 0
	for i < len(ns) && j < len(other) {
		a, b := ns[i], other[j]
		switch {
		case a < b:
			out = append(out, a)
			i++
		case a > b:
			out = append(out, b)
			j++
		default:
			out = append(out, a)
			i++
			j++
		}
	}
	out = append(out, ns[i:]...)
	out = append(out, other[j:]...)
	return out
}

func (ns NodeSet) IsEqual(other NodeSet) bool {
	if len(ns) != len(other) {
		return false
	}
	for i, id := range ns {
		if other[i] != id {
			return false
		}
	}
	return true
}

func (ns NodeSet) Clone() NodeSet {
	return append(NodeSet{}, ns...)
}

func (ns NodeSet) writeTo(b *strings.Builder) {
	for i, id := range ns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(id), 10))
	}
}

// Hyperedge is a directed relation from a source node set to a target node
// set. Both sets are non-empty; they may overlap.
type Hyperedge struct {
	Source NodeSet
	Target NodeSet
}

// NewHyperedge validates and forms a directed hyperedge from raw ID slices.
func NewHyperedge(source, target []gohx.NodeID) (Hyperedge, error) {
	if len(source) == 0 || len(target) == 0 {
		return Hyperedge{}, gohx.ErrBadEdge
	}
	return Hyperedge{
		Source: MakeNodeSet(source...),
		Target: MakeNodeSet(target...),
	}, nil
}

// Nodes returns the full node span of the edge (Source ∪ Target).
func (e Hyperedge) Nodes() NodeSet {
	return e.Source.Union(e.Target)
}

// Order returns the number of distinct nodes the edge spans.
func (e Hyperedge) Order() int {
	return len(e.Nodes())
}

// WithinSubset returns true if the edge is fully contained in sub.
func (e Hyperedge) WithinSubset(sub NodeSet) bool {
	return sub.ContainsAll(e.Source) && sub.ContainsAll(e.Target)
}

func (e Hyperedge) String() string {
	b := strings.Builder{}
	b.Grow(24)
	e.Source.writeTo(&b)
	b.WriteByte('>')
	e.Target.writeTo(&b)
	return b.String()
}

// EdgeList is an ordered sequence of directed hyperedges.
// Duplicates are preserved as distinct occurrences.
type EdgeList []Hyperedge

// FilterUpTo returns the edges whose node span is at most order.
func (el EdgeList) FilterUpTo(order int) EdgeList {
	out := make(EdgeList, 0, len(el))
	for _, e := range el {
		if e.Order() <= order {
			out = append(out, e)
		}
	}
	return out
}

// Nodes returns the set of all nodes touched by the list.
func (el EdgeList) Nodes() NodeSet {
	ns := NodeSet{}
	for _, e := range el {
		ns = ns.Union(e.Nodes())
	}
	return ns
}

func (el EdgeList) String() string {
	b := strings.Builder{}
	b.Grow(32 * len(el))
	for i, e := range el {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.String())
	}
	return b.String()
}
