package motif_test

import (
	"testing"

	"github.com/hx-systems/gohx/libhx"
	"github.com/hx-systems/gohx/libhx/motif"
)

func canonOf(t *testing.T, expr string) []byte {
	t.Helper()
	edges, err := libhx.ParseEdgeList(expr)
	if err != nil {
		t.Fatalf("parse %q: %v", expr, err)
	}
	return motif.Canonicalize(edges.Nodes(), edges)
}

func TestCanonRelabelInvariance(t *testing.T) {
	// Each row is one isomorphism class written under different node labels.
	classes := [][]string{
		{"1,2>3", "4,5>6", "30,10>20"},
		{"1>2,3", "9>7,8"},
		{"1>2; 2>3", "5>9; 9>2"},
		{"1,2>3; 3>1", "7,9>4; 4>7"},
		{"1,2,3>4", "10,20,30>40"},
		{"1,2>3; 3>4", "4,3>2; 2>1"},
		{"1>2; 2>3; 3>4; 4>1", "8>5; 5>6; 6>7; 7>8"},
	}

	for ci, class := range classes {
		base := canonOf(t, class[0])
		for _, expr := range class[1:] {
			if got := canonOf(t, expr); string(got) != string(base) {
				t.Errorf("class %d: %q and %q disagree: %v vs %v",
					ci, class[0], expr, base, got)
			}
		}
	}
}

func TestCanonDistinguishes(t *testing.T) {
	// Pairwise distinct classes.
	exprs := []string{
		"1,2>3",          // 2 sources, 1 target
		"1>2,3",          // 1 source, 2 targets
		"1>2; 2>3",       // directed path
		"1>2; 3>2",       // shared target
		"1>2; 1>2; 2>3",  // doubled edge plus path
		"1,2>3; 3>1",     // cycle back into a source
		"1,2,3>4",        // order 4 single edge
		"1,2>3; 3>4",     // order 4 chain
		"1>2; 2>3; 3>4",  // order 4 path
		"1,2>3,4",        // 2 sources, 2 targets
	}

	seen := make(map[string]string)
	for _, expr := range exprs {
		key := string(canonOf(t, expr))
		if prev, dup := seen[key]; dup {
			t.Errorf("%q and %q collide", prev, expr)
		}
		seen[key] = expr
	}
}

func TestCanonDirectionMatters(t *testing.T) {
	a := canonOf(t, "1>2; 2>3")
	b := canonOf(t, "1>2; 3>2")
	if string(a) == string(b) {
		t.Fatal("path and co-target patterns must differ")
	}
}

func TestCanonDuplicateEdges(t *testing.T) {
	single := canonOf(t, "1,2>3")
	doubled := canonOf(t, "1,2>3; 1,2>3")

	if len(doubled) != len(single)+1 {
		t.Fatalf("doubled edge lost: %d vs %d bytes", len(doubled), len(single))
	}
	if string(single) == string(doubled) {
		t.Fatal("edge multiplicity must be part of the class")
	}
}

func TestCanonSignatureString(t *testing.T) {
	sig := motif.Canonicalize(
		mustEdges(t, "1,2>3").Nodes(),
		mustEdges(t, "1,2>3"),
	)
	if sig.Order() != 3 || sig.NumEdges() != 1 {
		t.Fatalf("sig header: order %d edges %d", sig.Order(), sig.NumEdges())
	}

	// The rendering parses back through the edge grammar and re-canonicalizes
	// to the same class.
	edges, err := libhx.ParseEdgeList(sig.String())
	if err != nil {
		t.Fatalf("render %q: %v", sig.String(), err)
	}
	again := motif.Canonicalize(edges.Nodes(), edges)
	if !sig.IsEqual(again) {
		t.Fatalf("render %q re-canonicalized to a different class", sig.String())
	}
}

func mustEdges(t *testing.T, expr string) libhx.EdgeList {
	t.Helper()
	edges, err := libhx.ParseEdgeList(expr)
	if err != nil {
		t.Fatal(err)
	}
	return edges
}
