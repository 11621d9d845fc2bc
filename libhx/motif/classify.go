package motif

import (
	"github.com/pkg/errors"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
)

// Classify enumerates and canonicalizes every qualifying node subset of the
// given order and returns the resulting count table.
//
// Order 3 runs the full pass only: every qualifying 3-node subset is the
// span of some maximal hyperedge. Order 4 runs the full pass, then the
// not-full pass over the remaining connected subsets, threading the visited
// set between them so no subset is counted twice. Each distinct qualifying
// subset contributes exactly one occurrence to exactly one class.
//
// Any other order returns gohx.ErrUnsupportedOrder: exact enumeration above
// order 4 is refused, not approximated.
func Classify(edges libhx.EdgeList, order int) (*CountTable, error) {
	if order != 3 && order != 4 {
		return nil, errors.Wrapf(gohx.ErrUnsupportedOrder, "order %d", order)
	}

	ix := newEdgeIndex(edges)
	table := NewCountTable()

	tally := func(m Match) {
		table.Tally(Canonicalize(m.Subset, m.Induced))
	}

	visited := enumFull(ix, order, tally)
	if order == 4 {
		enumNotFull(ix, order, visited, tally)
	}

	return table, nil
}
