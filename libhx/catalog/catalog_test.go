package catalog_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
	"github.com/hx-systems/gohx/libhx/catalog"
	"github.com/hx-systems/gohx/libhx/motif"
)

func openTestCatalog(t *testing.T) (gohx.CatalogContext, gohx.Catalog) {
	t.Helper()
	ctx := gohx.NewCatalogContext()
	cat, err := catalog.OpenCatalog(ctx, gohx.CatalogOpts{})
	if err != nil {
		t.Fatal(err)
	}
	return ctx, cat
}

func classifyExpr(t *testing.T, expr string, order int) gohx.MotifCounts {
	t.Helper()
	edges, err := libhx.ParseEdgeList(expr)
	if err != nil {
		t.Fatal(err)
	}
	table, err := motif.Classify(edges.FilterUpTo(order), order)
	if err != nil {
		t.Fatal(err)
	}
	return table.Counts()
}

func TestCatalogReadOnlyNeedsPath(t *testing.T) {
	ctx := gohx.NewCatalogContext()
	defer ctx.Close()

	_, err := catalog.OpenCatalog(ctx, gohx.CatalogOpts{ReadOnly: true})
	if !errors.Is(err, gohx.ErrBadCatalogParam) {
		t.Fatalf("got %v", err)
	}
}

func TestCatalogMerge(t *testing.T) {
	ctx, cat := openTestCatalog(t)
	defer ctx.Close()

	counts := classifyExpr(t, "1,2>3; 4,5>6; 7>8,9", 3)
	if len(counts) != 2 {
		t.Fatalf("fixture: got %d classes", len(counts))
	}

	if err := cat.MergeTable(counts); err != nil {
		t.Fatal(err)
	}
	if n := cat.NumMotifs(3); n != 2 {
		t.Fatalf("NumMotifs(3): got %d", n)
	}

	// Merging the same run again accumulates counts without new classes.
	if err := cat.MergeTable(counts); err != nil {
		t.Fatal(err)
	}
	if n := cat.NumMotifs(3); n != 2 {
		t.Fatalf("NumMotifs(3) after remerge: got %d", n)
	}
	if n := cat.NumMotifs(4); n != 0 {
		t.Fatalf("NumMotifs(4): got %d", n)
	}

	if err := cat.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogSelect(t *testing.T) {
	ctx, cat := openTestCatalog(t)
	defer ctx.Close()

	order3 := classifyExpr(t, "1,2>3; 4,5>6; 7>8,9", 3)
	order4 := classifyExpr(t, "1,2,3>4", 4)
	if err := cat.MergeTable(order3); err != nil {
		t.Fatal(err)
	}
	if err := cat.MergeTable(order4); err != nil {
		t.Fatal(err)
	}
	if err := cat.MergeTable(order3); err != nil {
		t.Fatal(err)
	}

	hits := make(chan *gohx.MotifDef, 16)
	cat.Select(gohx.MotifSelector{}, hits)
	close(hits)

	var defs []*gohx.MotifDef
	for def := range hits {
		defs = append(defs, def)
	}
	if len(defs) != 3 {
		t.Fatalf("selected %d defs", len(defs))
	}

	// Ascending signature order: order byte leads, so 3s before 4s.
	for i := 1; i < len(defs); i++ {
		if defs[i-1].Sig().Compare(defs[i].Sig()) >= 0 {
			t.Fatalf("defs %d and %d out of order", i-1, i)
		}
	}
	if defs[len(defs)-1].Order != 4 {
		t.Fatalf("last def order: got %d", defs[len(defs)-1].Order)
	}

	for _, def := range defs {
		// Expr renders over canonical positions and parses back through the
		// edge grammar.
		if _, err := libhx.ParseEdgeList(def.Expr); err != nil {
			t.Errorf("Expr %q does not parse: %v", def.Expr, err)
		}
	}

	// The doubled order-3 class accumulated across the two merges.
	var maxCount int64
	for _, def := range defs {
		if def.Count > maxCount {
			maxCount = def.Count
		}
	}
	if maxCount != 4 {
		t.Fatalf("max accumulated count: got %d", maxCount)
	}

	// MinCount filters the singletons out.
	hits = make(chan *gohx.MotifDef, 16)
	cat.Select(gohx.MotifSelector{MinCount: 2}, hits)
	close(hits)

	n := 0
	for def := range hits {
		if def.Count < 2 {
			t.Fatalf("MinCount leak: %v", def)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("MinCount select: got %d defs", n)
	}

	// Order bounds.
	hits = make(chan *gohx.MotifDef, 16)
	cat.Select(gohx.MotifSelector{MinOrder: 4, MaxOrder: 4}, hits)
	close(hits)

	n = 0
	for def := range hits {
		if def.Order != 4 {
			t.Fatalf("order filter leak: %v", def)
		}
		n++
	}
	if n != 1 {
		t.Fatalf("order 4 select: got %d defs", n)
	}
}

func TestCatalogContextLifecycle(t *testing.T) {
	ctx, cat := openTestCatalog(t)

	if cat.IsReadOnly() {
		t.Fatal("in-memory catalog reported read-only")
	}

	ctx.Close()
	<-ctx.Done()

	// Close after context shutdown is idempotent.
	if err := cat.Close(); err != nil {
		t.Fatal(err)
	}
}
