package motif

import (
	"encoding/binary"
	"sort"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
)

// Match is one enumerated (node subset, induced edge set) pair. Induced is
// every edge of the list fully contained in Subset, in edge-list order, with
// duplicates preserved.
type Match struct {
	Subset  libhx.NodeSet
	Induced []libhx.Hyperedge
}

// VisitedSet records node subsets already attributed by a classification
// pass. The full pass returns it and the not-full pass consumes it, keeping
// the two passes mutually exclusive without hidden shared state.
type VisitedSet map[string]struct{}

func (vs VisitedSet) Has(sub libhx.NodeSet) bool {
	_, ok := vs[subsetKey(sub)]
	return ok
}

func (vs VisitedSet) Add(sub libhx.NodeSet) {
	vs[subsetKey(sub)] = struct{}{}
}

func subsetKey(sub libhx.NodeSet) string {
	var buf [4 * binary.MaxVarintLen32]byte
	b := buf[:0]
	for _, n := range sub {
		b = binary.AppendVarint(b, int64(n))
	}
	return string(b)
}

// edgeIndex is the per-classification view of an edge list: node incidence
// and node adjacency derived from shared hyperedge membership. Candidate
// subsets grow around edges through this index, so enumeration cost follows
// the hypergraph's sparsity rather than C(N, k).
type edgeIndex struct {
	edges  libhx.EdgeList
	nodes  libhx.NodeSet
	byNode map[gohx.NodeID][]int32
	adj    map[gohx.NodeID]libhx.NodeSet
}

func newEdgeIndex(edges libhx.EdgeList) *edgeIndex {
	ix := &edgeIndex{
		edges:  edges,
		byNode: make(map[gohx.NodeID][]int32),
		adj:    make(map[gohx.NodeID]libhx.NodeSet),
	}

	adjSets := make(map[gohx.NodeID]map[gohx.NodeID]struct{})
	for ei, e := range edges {
		span := e.Nodes()
		for _, n := range span {
			ix.byNode[n] = append(ix.byNode[n], int32(ei))
			peers, ok := adjSets[n]
			if !ok {
				peers = make(map[gohx.NodeID]struct{})
				adjSets[n] = peers
			}
			for _, m := range span {
				if m != n {
					peers[m] = struct{}{}
				}
			}
		}
	}

	ix.nodes = make(libhx.NodeSet, 0, len(adjSets))
	for n, peers := range adjSets {
		ix.nodes = append(ix.nodes, n)
		ns := make(libhx.NodeSet, 0, len(peers))
		for m := range peers {
			ns = append(ns, m)
		}
		sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
		ix.adj[n] = ns
	}
	sort.Slice(ix.nodes, func(i, j int) bool { return ix.nodes[i] < ix.nodes[j] })

	return ix
}

// induced collects every edge fully contained in sub, ascending by edge
// index so the result order is stable.
func (ix *edgeIndex) induced(sub libhx.NodeSet) []libhx.Hyperedge {
	var idxBuf [16]int32
	candidates := idxBuf[:0]
	for _, n := range sub {
		candidates = append(candidates, ix.byNode[n]...)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	var out []libhx.Hyperedge
	prev := int32(-1)
	for _, ei := range candidates {
		if ei == prev {
			continue
		}
		prev = ei
		if e := ix.edges[ei]; e.WithinSubset(sub) {
			out = append(out, e)
		}
	}
	return out
}

// enumFull emits every node subset that is exactly the span of some
// hyperedge of order k, once per distinct subset, and returns the visited
// set for the complementary pass.
func enumFull(ix *edgeIndex, k int, onMatch func(Match)) VisitedSet {
	visited := make(VisitedSet)

	for _, e := range ix.edges {
		span := e.Nodes()
		if len(span) != k {
			continue
		}
		if visited.Has(span) {
			continue
		}
		visited.Add(span)

		onMatch(Match{
			Subset:  span,
			Induced: ix.induced(span),
		})
	}
	return visited
}

// enumNotFull emits every connected k-node subset not claimed by the full
// pass whose induced edges (two or more, none spanning all k nodes) jointly
// cover and connect the subset. Connected subsets are grown around hyperedge
// adjacency with ordered root IDs, so each distinct subset surfaces exactly
// once.
func enumNotFull(ix *edgeIndex, k int, visited VisitedSet, onMatch func(Match)) {
	var subBuf [gohx.MaxOrder]gohx.NodeID

	for _, root := range ix.nodes {
		sub := append(subBuf[:0], root)

		var ext libhx.NodeSet
		for _, u := range ix.adj[root] {
			if u > root {
				ext = append(ext, u)
			}
		}
		ix.growSubset(root, libhx.NodeSet(sub), ext, k, visited, onMatch)
	}
}

func (ix *edgeIndex) growSubset(
	root gohx.NodeID,
	sub libhx.NodeSet,
	ext libhx.NodeSet,
	k int,
	visited VisitedSet,
	onMatch func(Match),
) {
	if len(sub) == k {
		ix.matchNotFull(sub, visited, onMatch)
		return
	}

	for i, w := range ext {
		// Extension set for the next level: the untried remainder plus w's
		// exclusive neighborhood (neighbors of no current subset node).
		next := append(libhx.NodeSet{}, ext[i+1:]...)
		for _, u := range ix.adj[w] {
			if u <= root || sub.Contains(u) || ix.adjacentToAny(sub, u) {
				continue
			}
			next = append(next, u)
		}

		grown := libhx.MakeNodeSet(append(sub.Clone(), w)...)
		ix.growSubset(root, grown, next, k, visited, onMatch)
	}
}

func (ix *edgeIndex) adjacentToAny(sub libhx.NodeSet, u gohx.NodeID) bool {
	for _, s := range sub {
		if ix.adj[s].Contains(u) {
			return true
		}
	}
	return false
}

func (ix *edgeIndex) matchNotFull(sub libhx.NodeSet, visited VisitedSet, onMatch func(Match)) {
	if visited.Has(sub) {
		return
	}

	induced := ix.induced(sub)
	if len(induced) < 2 || !coversAndConnects(sub, induced) {
		return
	}
	visited.Add(sub)

	onMatch(Match{
		Subset:  sub,
		Induced: induced,
	})
}

// coversAndConnects reports whether the induced edges jointly touch every
// subset node and form a single component under shared node membership.
func coversAndConnects(sub libhx.NodeSet, induced []libhx.Hyperedge) bool {
	k := len(sub)

	var parent [gohx.MaxOrder]int
	for i := 0; i < k; i++ {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	covered := 0
	for _, e := range induced {
		span := e.Nodes()
		first := -1
		for _, n := range span {
			pos := posOf(sub, n)
			covered |= 1 << pos
			if first < 0 {
				first = pos
				continue
			}
			ra, rb := find(first), find(pos)
			if ra != rb {
				parent[rb] = ra
			}
		}
	}

	if covered != (1<<k)-1 {
		return false
	}
	r0 := find(0)
	for i := 1; i < k; i++ {
		if find(i) != r0 {
			return false
		}
	}
	return true
}
