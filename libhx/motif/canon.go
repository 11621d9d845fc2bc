package motif

import (
	"sort"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
)

// Permutation tables for the supported subset sizes, built once. k is
// bounded at 4 by the classifier contract, so the sweep is at most 24
// relabelings per subset.
var permTables [gohx.MaxOrder + 1][][]uint8

func init() {
	for k := gohx.MinOrder; k <= gohx.MaxOrder; k++ {
		permTables[k] = permutations(k)
	}
}

func permutations(k int) [][]uint8 {
	ident := make([]uint8, k)
	for i := range ident {
		ident[i] = uint8(i)
	}

	var out [][]uint8
	var recurse func(n int)
	recurse = func(n int) {
		if n == 1 {
			out = append(out, append([]uint8{}, ident...))
			return
		}
		for i := 0; i < n; i++ {
			recurse(n - 1)
			if n%2 == 0 {
				ident[i], ident[n-1] = ident[n-1], ident[i]
			} else {
				ident[0], ident[n-1] = ident[n-1], ident[0]
			}
		}
	}
	recurse(k)
	return out
}

// Canonicalize maps a node subset plus its induced edge set to the canonical
// signature of its isomorphism class.
//
// Every relabeling of the subset's nodes onto positions 0..k-1 is swept; per
// relabeling each induced edge collapses to one byte of source/target
// position masks, the edge bytes are sorted, and the lexicographically
// smallest byte sequence over all relabelings wins. Two inputs share a
// signature iff a node bijection maps one induced edge multiset onto the
// other preserving source/target roles.
func Canonicalize(subset libhx.NodeSet, induced []libhx.Hyperedge) gohx.Signature {
	k := len(subset)

	best := make([]byte, 0, len(induced))
	trial := make([]byte, 0, len(induced))

	for pi, perm := range permTables[k] {
		trial = trial[:0]
		for _, e := range induced {
			trial = append(trial, edgeByte(e, subset, perm))
		}
		sort.Slice(trial, func(i, j int) bool { return trial[i] < trial[j] })

		if pi == 0 || lessBytes(trial, best) {
			best = append(best[:0], trial...)
		}
	}

	sig := make(gohx.Signature, 0, len(best)+1)
	sig = append(sig, byte(k))
	return append(sig, best...)
}

// edgeByte relabels e's node sets to position masks under perm.
// Pre: e is fully contained in subset.
func edgeByte(e libhx.Hyperedge, subset libhx.NodeSet, perm []uint8) byte {
	var srcMask, dstMask byte
	for _, n := range e.Source {
		srcMask |= 1 << perm[posOf(subset, n)]
	}
	for _, n := range e.Target {
		dstMask |= 1 << perm[posOf(subset, n)]
	}
	return srcMask<<4 | dstMask
}

func posOf(subset libhx.NodeSet, n gohx.NodeID) int {
	for i, id := range subset {
		if id == n {
			return i
		}
	}
	panic("node not in subset")
}

func lessBytes(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
