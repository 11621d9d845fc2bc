package motif

import (
	"github.com/hx-systems/gohx/gohx"
)

// CountTable accumulates motif class occurrence counts during one
// classification pass. Classes keep first-occurrence order, so a table built
// from a fixed edge list is fully deterministic. Frozen once returned.
type CountTable struct {
	index  map[string]int
	counts gohx.MotifCounts
}

func NewCountTable() *CountTable {
	return &CountTable{
		index: make(map[string]int),
	}
}

// Tally adds one occurrence of the given class.
func (t *CountTable) Tally(sig gohx.Signature) {
	key := sig.Key()
	if i, ok := t.index[key]; ok {
		t.counts[i].Count++
		return
	}
	t.index[key] = len(t.counts)
	t.counts = append(t.counts, gohx.MotifCount{Sig: sig, Count: 1})
}

// Get returns the count for a class, or 0 if the class never occurred.
func (t *CountTable) Get(sig gohx.Signature) int64 {
	if i, ok := t.index[sig.Key()]; ok {
		return t.counts[i].Count
	}
	return 0
}

func (t *CountTable) Len() int {
	return len(t.counts)
}

// Total returns the sum of all class counts, which equals the number of
// qualifying node subsets the pass visited.
func (t *CountTable) Total() int64 {
	total := int64(0)
	for _, c := range t.counts {
		total += c.Count
	}
	return total
}

// Counts returns the ordered count table.
func (t *CountTable) Counts() gohx.MotifCounts {
	return t.counts
}
