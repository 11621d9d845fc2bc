package random_test

import (
	"math/rand"
	"testing"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
	"github.com/hx-systems/gohx/libhx/random"
)

func stubCounts(edges libhx.EdgeList) (heads, tails map[gohx.NodeID]int) {
	heads = make(map[gohx.NodeID]int)
	tails = make(map[gohx.NodeID]int)
	for _, e := range edges {
		for _, n := range e.Source {
			heads[n]++
		}
		for _, n := range e.Target {
			tails[n]++
		}
	}
	return
}

func sameCounts(a, b map[gohx.NodeID]int) bool {
	if len(a) != len(b) {
		return false
	}
	for n, c := range a {
		if b[n] != c {
			return false
		}
	}
	return true
}

func TestConfigModelPreservesDegrees(t *testing.T) {
	edges, err := libhx.ParseEdgeList(
		"1,2>3; 3>4,5; 2,4>1; 5>2; 1>3; 2,3>4,5; 4>1,2")
	if err != nil {
		t.Fatal(err)
	}
	wantHeads, wantTails := stubCounts(edges)

	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		out, err := random.DirectedConfigurationModel(edges, rng)
		if err != nil {
			t.Fatal(err)
		}

		if len(out) != len(edges) {
			t.Fatalf("round %d: edge count %d", round, len(out))
		}
		for ei, e := range out {
			if len(e.Source) != len(edges[ei].Source) || len(e.Target) != len(edges[ei].Target) {
				t.Fatalf("round %d edge %d: shape changed to %s", round, ei, e)
			}
		}

		gotHeads, gotTails := stubCounts(out)
		if !sameCounts(wantHeads, gotHeads) {
			t.Fatalf("round %d: head degrees changed: %v vs %v", round, wantHeads, gotHeads)
		}
		if !sameCounts(wantTails, gotTails) {
			t.Fatalf("round %d: tail degrees changed: %v vs %v", round, wantTails, gotTails)
		}
	}
}

func TestConfigModelInputUntouched(t *testing.T) {
	edges, err := libhx.ParseEdgeList("1,2>3; 3>4,5; 2,4>1")
	if err != nil {
		t.Fatal(err)
	}
	before := edges.String()

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		if _, err := random.DirectedConfigurationModel(edges, rng); err != nil {
			t.Fatal(err)
		}
	}
	if edges.String() != before {
		t.Fatal("input edge list was mutated")
	}
}

func TestConfigModelEmpty(t *testing.T) {
	out, err := random.DirectedConfigurationModel(libhx.EdgeList{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d edges", len(out))
	}
}

func TestConfigModelShufflesStubs(t *testing.T) {
	// With enough rounds over a graph with interchangeable stubs, at least
	// one randomization must differ from the original.
	edges, err := libhx.ParseEdgeList("1>2; 3>4; 5>6; 7>8")
	if err != nil {
		t.Fatal(err)
	}
	original := edges.String()

	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		out, err := random.DirectedConfigurationModel(edges, rng)
		if err != nil {
			t.Fatal(err)
		}
		if out.String() != original {
			return
		}
	}
	t.Fatal("20 rounds never moved a stub")
}
