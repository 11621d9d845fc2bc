package gohx

import "errors"

// Errors
var (
	ErrUnsupportedOrder = errors.New("exact motif computation is only supported for orders 3 and 4")
	ErrDegreeInfeasible = errors.New("degree sequence admits no valid randomization")
	ErrBadEdge          = errors.New("hyperedge source and target must be non-empty")
	ErrBadNodeID        = errors.New("bad node ID")
	ErrBadSignature     = errors.New("bad motif signature encoding")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrCatalogReadOnly  = errors.New("catalog is in read-only mode")
	ErrUnmarshal        = errors.New("unmarshal failed")
)
