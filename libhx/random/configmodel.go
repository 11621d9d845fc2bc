// Package random generates degree-preserving randomizations of directed
// hypergraph edge lists, used as the null model for motif comparison.
package random

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
)

// maxRestarts bounds the number of full stub reshuffles before the degree
// sequence is declared unrealizable for the edge shape sequence.
const maxRestarts = 100

// DirectedConfigurationModel produces one randomized edge list preserving
// every node's source (head) and target (tail) stub degrees and the original
// sequence of per-edge (|Source|, |Target|) shapes, while reshuffling which
// stub lands in which edge.
//
// A node may not appear twice inside one edge's source set (or target set);
// collisions are repaired by swapping in a later stub, and the whole shuffle
// restarts when no swap repairs an edge. If no valid assignment is found
// after maxRestarts shuffles the error wraps gohx.ErrDegreeInfeasible rather
// than silently distorting degrees.
//
// A nil rng draws a fresh seed from the shared source.
func DirectedConfigurationModel(edges libhx.EdgeList, rng *rand.Rand) (libhx.EdgeList, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	var headStubs, tailStubs []gohx.NodeID
	for _, e := range edges {
		headStubs = append(headStubs, e.Source...)
		tailStubs = append(tailStubs, e.Target...)
	}

	for attempt := 0; attempt < maxRestarts; attempt++ {
		rng.Shuffle(len(headStubs), func(i, j int) {
			headStubs[i], headStubs[j] = headStubs[j], headStubs[i]
		})
		rng.Shuffle(len(tailStubs), func(i, j int) {
			tailStubs[i], tailStubs[j] = tailStubs[j], tailStubs[i]
		})

		out, ok := fillEdges(edges, headStubs, tailStubs, rng)
		if ok {
			return out, nil
		}
	}

	return nil, errors.Wrapf(gohx.ErrDegreeInfeasible,
		"no valid randomization after %d shuffles of %d edges", maxRestarts, len(edges))
}

// fillEdges consumes the shuffled stubs in edge shape order. Returns false
// when some edge's set cannot be made duplicate-free by swapping.
func fillEdges(edges libhx.EdgeList, headStubs, tailStubs []gohx.NodeID, rng *rand.Rand) (libhx.EdgeList, bool) {
	out := make(libhx.EdgeList, 0, len(edges))

	hi, ti := 0, 0
	for _, e := range edges {
		ns, nt := len(e.Source), len(e.Target)

		src, ok := takeSet(headStubs, hi, ns, rng)
		if !ok {
			return nil, false
		}
		dst, ok := takeSet(tailStubs, ti, nt, rng)
		if !ok {
			return nil, false
		}
		hi += ns
		ti += nt

		out = append(out, libhx.Hyperedge{
			Source: libhx.MakeNodeSet(src...),
			Target: libhx.MakeNodeSet(dst...),
		})
	}
	return out, true
}

// takeSet claims stubs[at:at+n] as one edge's node set, swapping duplicates
// with randomly chosen later stubs until the window is duplicate-free.
func takeSet(stubs []gohx.NodeID, at, n int, rng *rand.Rand) ([]gohx.NodeID, bool) {
	window := stubs[at : at+n]

	for i := 1; i < n; i++ {
		tries := len(stubs) - at - n
		for hasDupe(window[:i+1]) {
			if tries <= 0 {
				return nil, false
			}
			tries--
			j := at + n + rng.Intn(len(stubs)-at-n)
			stubs[at+i], stubs[j] = stubs[j], stubs[at+i]
		}
	}
	return window, true
}

func hasDupe(ids []gohx.NodeID) bool {
	last := ids[len(ids)-1]
	for _, id := range ids[:len(ids)-1] {
		if id == last {
			return true
		}
	}
	return false
}
