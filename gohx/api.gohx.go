package gohx

const (
	// MinOrder and MaxOrder bound the motif orders the engine computes exactly.
	// Exact enumeration above order 4 is combinatorially unsupported, so the
	// classifier refuses anything outside this range rather than degrade.
	MinOrder = 3
	MaxOrder = 4

	// DefaultConfigModelRuns is the number of configuration model rounds used
	// when the caller does not specify one.
	DefaultConfigModelRuns = 10
)

// NodeID identifies a node of a directed hypergraph.
// Nodes carry no attributes beyond identity.
type NodeID int32

// MotifCount is one (class, occurrence count) entry of a count table.
type MotifCount struct {
	Sig   Signature
	Count int64
}

// MotifCounts is an ordered motif count table.
// Order is fixed by the classification pass that produced it (first
// occurrence), so two runs over the same edge list yield identical tables.
type MotifCounts []MotifCount

// MotifDeviation is one (class, normalized deviation) entry.
//
// Deviation is the Euclidean norm of the per-round difference vector
// (observed count minus config-model count), so the sign convention is
// observed-minus-null.
type MotifDeviation struct {
	Sig       Signature
	Deviation float64
}

// MotifProfile is the full output of a motif computation: the observed
// counts, the per-round configuration model counts, and the normalized
// deviation of observed from the null model.
//
// NormDelta carries exactly the class signatures of Observed, in the same
// order. Classes that appear only in config model rounds are not reported.
type MotifProfile struct {
	Order       int
	Observed    MotifCounts
	ConfigModel []MotifCounts
	NormDelta   []MotifDeviation
}

// OnMotifHit is a callback channel used to return catalog entries meeting a
// set of selection criteria. Ownership of each MotifDef travels through the
// channel; the caller closes it after Select returns.
type OnMotifHit chan<- *MotifDef

// MotifSelector selects catalog entries by order and count bounds.
type MotifSelector struct {
	MinOrder byte  // 0 defaults to MinOrder
	MaxOrder byte  // 0 defaults to MaxOrder
	MinCount int64 // only entries with at least this many occurrences
}

// CatalogOpts specifies params for opening a motif Catalog.
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of motif classes keyed by canonical signature.
type Catalog interface {

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumMotifs returns the number of distinct motif classes stored for a
	// given order. An out of bounds order returns 0.
	NumMotifs(order byte) int64

	// MergeTable accumulates a classification run's counts into the catalog.
	MergeTable(counts MotifCounts) error

	// Select fires the given callback channel with each stored MotifDef that
	// meets the selection criteria, in ascending signature order.
	Select(sel MotifSelector, onHit OnMotifHit)

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Signals all open catalogs to close then closes.
	Close()

	// Closing signals when Close() has been called.
	Closing() <-chan struct{}

	// Signals when Close() completed and all open Catalogs have been closed.
	Done() <-chan struct{}
}
