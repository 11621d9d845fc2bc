package motif

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/plan-systems/klog"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
	"github.com/hx-systems/gohx/libhx/random"
)

// ComputeDirectedMotifs counts the motifs of the given order in a directed
// hypergraph and compares them against a configuration model null ensemble.
//
// Order must be 3 or 4. runsConfigModel ≤ 0 defaults to
// gohx.DefaultConfigModelRuns. Each round randomizes the full edge list,
// filters it back to the requested order, and reclassifies it; rounds run
// concurrently but land in round order, so the output is identical to a
// serial run. Any randomization failure aborts the computation.
//
// An empty filtered edge list is a valid input and yields empty tables.
func ComputeDirectedMotifs(h *libhx.Hypergraph, order int, runsConfigModel int) (*gohx.MotifProfile, error) {
	if order != 3 && order != 4 {
		return nil, gohx.ErrUnsupportedOrder
	}
	if runsConfigModel <= 0 {
		runsConfigModel = gohx.DefaultConfigModelRuns
	}

	klog.V(1).Infof("computing observed motifs of order %d", order)
	observed, err := Classify(h.GetEdgesUpTo(order), order)
	if err != nil {
		return nil, err
	}

	rounds, err := runConfigModel(h.GetEdges(), order, runsConfigModel)
	if err != nil {
		return nil, err
	}

	return &gohx.MotifProfile{
		Order:       order,
		Observed:    observed.Counts(),
		ConfigModel: rounds,
		NormDelta:   normDelta(observed.Counts(), rounds),
	}, nil
}

// runConfigModel performs R independent null-model rounds on a bounded
// worker pool. Results are stored by round index; the first failure wins.
func runConfigModel(allEdges libhx.EdgeList, order, runs int) ([]gohx.MotifCounts, error) {
	rounds := make([]gohx.MotifCounts, runs)

	// Per-round sources are drawn up front so the spawn order, not the
	// scheduler, decides each round's seed.
	seeds := make([]int64, runs)
	for ri := range seeds {
		seeds[ri] = rand.Int63()
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	sem := make(chan struct{}, runtime.NumCPU())

	for ri := 0; ri < runs; ri++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(ri int) {
			defer wg.Done()
			defer func() { <-sem }()

			klog.V(2).Infof("config model round %d of %d (order %d)", ri+1, runs, order)

			rng := rand.New(rand.NewSource(seeds[ri]))
			shuffled, err := random.DirectedConfigurationModel(allEdges, rng)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}

			table, err := Classify(shuffled.FilterUpTo(order), order)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			rounds[ri] = table.Counts()
		}(ri)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return rounds, nil
}

// normDelta reduces each observed class's per-round difference vector
// (observed count minus that round's null count, 0 when the class is absent
// from a round) to its Euclidean norm. The output is aligned positionally
// with observed; classes seen only in null rounds are not reported.
func normDelta(observed gohx.MotifCounts, rounds []gohx.MotifCounts) []gohx.MotifDeviation {
	lookups := make([]map[string]int64, len(rounds))
	for ri, round := range rounds {
		m := make(map[string]int64, len(round))
		for _, c := range round {
			m[c.Sig.Key()] = c.Count
		}
		lookups[ri] = m
	}

	out := make([]gohx.MotifDeviation, len(observed))
	for i, oc := range observed {
		sum := float64(0)
		for _, m := range lookups {
			d := float64(oc.Count - m[oc.Sig.Key()])
			sum += d * d
		}
		out[i] = gohx.MotifDeviation{
			Sig:       oc.Sig,
			Deviation: math.Sqrt(sum),
		}
	}
	return out
}
