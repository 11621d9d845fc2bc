package pyhx

// Copyright 2018 The go-python Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

import (
	"os"
	"strings"

	"github.com/go-python/gpython/py"

	"github.com/hx-systems/gohx/gohx"
	"github.com/hx-systems/gohx/libhx"
	"github.com/hx-systems/gohx/libhx/catalog"
	"github.com/hx-systems/gohx/libhx/motif"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyHypergraphType = py.NewType("Hypergraph", "a directed hypergraph: an ordered list of source>target hyperedges")
	pyCatalogType    = py.NewType("Catalog", "gohx.Catalog")
	pyWorkspaceType  = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyHypergraph struct {
	*libhx.Hypergraph
}

func (h pyHypergraph) Type() *py.Type {
	return pyHypergraphType
}

func (h pyHypergraph) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	h.WriteAsString(&writer)
	return py.String(writer.String()), nil
}

func (h pyHypergraph) M__repr__() (py.Object, error) {
	return h.M__str__()
}

func getHypergraphFromObj(obj py.Object) (h pyHypergraph, err error) {
	if obj.Type().Name != "Hypergraph" {
		err = py.ExceptionNewf(py.TypeError, "expected Hypergraph object (got %v)", obj.Type().Name)
		return
	}
	h = obj.(pyHypergraph)
	return
}

// Arg 1 (str, optional): initial hyperedge expression, e.g. "1,2>3; 3>4"
func py_NewHypergraph(module py.Object, args py.Tuple) (py.Object, error) {
	h := libhx.NewHypergraph()

	if len(args) > 0 {
		expr, isStr := args[0].(py.String)
		if !isStr {
			return nil, py.ExceptionNewf(py.TypeError, "expected hyperedge expression string")
		}
		if err := h.AddFromString(string(expr)); err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	return py.Object(pyHypergraph{h}), nil
}

func py_Hypergraph_AddEdges(self py.Object, args py.Tuple) (py.Object, error) {
	h := self.(pyHypergraph)

	var expr string
	err := py.LoadTuple(args, []interface{}{&expr})
	if err != nil {
		return nil, err
	}
	if err = h.AddFromString(expr); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(h), nil
}

func py_Hypergraph_NumNodes(self py.Object, args py.Tuple) (py.Object, error) {
	h := self.(pyHypergraph)
	return py.Object(py.Int(h.NumNodes())), nil
}

func py_Hypergraph_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	h := self.(pyHypergraph)
	return py.Object(py.Int(h.NumEdges())), nil
}

func countsToPy(counts gohx.MotifCounts) py.Object {
	out := make(py.Tuple, len(counts))
	for i, c := range counts {
		out[i] = py.Tuple{py.String(c.Sig.String()), py.Int(c.Count)}
	}
	return out
}

// Arg 1 (int): motif order (3 or 4)
// Arg 2 (int, optional): config model rounds, 0 for the default
func py_Hypergraph_ComputeMotifs(self py.Object, args py.Tuple) (py.Object, error) {
	h := self.(pyHypergraph)

	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "ComputeMotifs requires a motif order")
	}
	order, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	runs := py.Int(0)
	if len(args) > 1 {
		if runs, err = py.GetInt(args[1]); err != nil {
			return nil, err
		}
	}

	profile, err := motif.ComputeDirectedMotifs(h.Hypergraph, int(order), int(runs))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}

	rounds := make(py.Tuple, len(profile.ConfigModel))
	for ri, round := range profile.ConfigModel {
		rounds[ri] = countsToPy(round)
	}

	deltas := make(py.Tuple, len(profile.NormDelta))
	for i, d := range profile.NormDelta {
		deltas[i] = py.Tuple{py.String(d.Sig.String()), py.Float(d.Deviation)}
	}

	return py.StringDict{
		"order":        py.Int(profile.Order),
		"observed":     countsToPy(profile.Observed),
		"config_model": rounds,
		"norm_delta":   deltas,
	}, nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx gohx.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: gohx.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := gohx.CatalogOpts{
		DbPathName: pathname,
		ReadOnly:   (flags & READ_ONLY) != 0,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	gohx.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumMotifs(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	order, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumMotifs(byte(order))), nil
}

// Arg 1 (Hypergraph): graph to classify
// Arg 2 (int): motif order
func py_Catalog_MergeMotifs(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "catalog is in read-only mode")
	}

	h, err := getHypergraphFromObj(args[0])
	if err != nil {
		return nil, err
	}
	order, err := py.GetInt(args[1])
	if err != nil {
		return nil, err
	}

	table, err := motif.Classify(h.GetEdgesUpTo(int(order)), int(order))
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	if err = cat.MergeTable(table.Counts()); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Int(table.Total()), nil
}

// Arg 1 (int, optional): min order
// Arg 2 (int, optional): max order
// Arg 3 (int, optional): min count
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var sel gohx.MotifSelector
	if len(args) > 0 {
		v, err := py.GetInt(args[0])
		if err != nil {
			return nil, err
		}
		sel.MinOrder = byte(v)
	}
	if len(args) > 1 {
		v, err := py.GetInt(args[1])
		if err != nil {
			return nil, err
		}
		sel.MaxOrder = byte(v)
	}
	if len(args) > 2 {
		v, err := py.GetInt(args[2])
		if err != nil {
			return nil, err
		}
		sel.MinCount = int64(v)
	}

	hits := make(chan *gohx.MotifDef, 32)
	done := make(chan py.Tuple)
	go func() {
		var out py.Tuple
		for def := range hits {
			out = append(out, py.Tuple{
				py.Int(def.Order),
				py.String(def.Expr),
				py.Int(def.Count),
			})
		}
		done <- out
	}()

	cat.Select(sel, hits)
	close(hits)

	return <-done, nil
}

func init() {

	/////////////////////////////////
	// Hypergraph
	{
		pyHypergraphType.Dict["AddEdges"] = py.MustNewMethod("AddEdges", py_Hypergraph_AddEdges, 0, "appends hyperedges parsed from an expression string")
		pyHypergraphType.Dict["NumNodes"] = py.MustNewMethod("NumNodes", py_Hypergraph_NumNodes, 0, "")
		pyHypergraphType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Hypergraph_NumEdges, 0, "")
		pyHypergraphType.Dict["ComputeMotifs"] = py.MustNewMethod("ComputeMotifs", py_Hypergraph_ComputeMotifs, 0, "classifies motifs and compares against the configuration model")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["NumMotifs"] = py.MustNewMethod("NumMotifs", py_Catalog_NumMotifs, 0, "")
		pyCatalogType.Dict["MergeMotifs"] = py.MustNewMethod("MergeMotifs", py_Catalog_MergeMotifs, 0, "")
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("NewHypergraph", py_NewHypergraph, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":  py.String(LIB_VERSION),
			"PY_VERSION":   py.String("v3.4.0"),
			"MIN_ORDER":    py.Int(gohx.MinOrder),
			"MAX_ORDER":    py.Int(gohx.MaxOrder),
			"DEFAULT_RUNS": py.Int(gohx.DefaultConfigModelRuns),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyhx",
				Doc:  "directed hypergraph motif analysis gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
