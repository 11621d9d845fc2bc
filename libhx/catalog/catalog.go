// Package catalog persists motif classes in a badger LSM db keyed by
// canonical signature, accumulating occurrence counts across merged
// classification runs.
package catalog

import (
	"bytes"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"

	"github.com/hx-systems/gohx/gohx"
)

// gCatalogStateKey is where the db's CatalogState is stored. Motif keys
// always start with an order byte of 3 or higher, so no collision.
var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

type catalog struct {
	ctx        gohx.CatalogContext
	opts       gohx.CatalogOpts
	db         *badger.DB
	stateMu    sync.Mutex
	state      gohx.CatalogState
	stateDirty bool
	closeOnce  sync.Once
	closeErr   error
}

// OpenCatalog opens (or creates) a motif catalog and attaches it to the
// given context. An empty DbPathName opens an in-memory db, which cannot be
// combined with ReadOnly.
func OpenCatalog(ctx gohx.CatalogContext, opts gohx.CatalogOpts) (gohx.Catalog, error) {
	cat := &catalog{
		ctx:  ctx,
		opts: opts,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single writer, so skip the bookkeeping
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(gohx.ErrBadCatalogParam, "read-only requires a db pathname")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	if err = cat.loadState(); err != nil {
		cat.db.Close()
		return nil, err
	}

	ctx.AttachCatalog(cat)
	return cat, nil
}

func (cat *catalog) loadState() error {
	cat.state = gohx.CatalogState{}

	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := cat.state.Unmarshal(val); err != nil {
				return errors.Wrap(gohx.ErrUnmarshal, "CatalogState")
			}
			return nil
		})
	})

	switch {
	case err == badger.ErrKeyNotFound:
		cat.state = gohx.CatalogState{
			MajorVers: 2024,
			MinorVers: 1,
			NumMotifs: make([]uint64, gohx.MaxOrder+1),
		}
		cat.stateDirty = !cat.opts.ReadOnly
		return nil
	case err != nil:
		return err
	}

	// Older dbs may carry a shorter slice.
	for len(cat.state.NumMotifs) < gohx.MaxOrder+1 {
		cat.state.NumMotifs = append(cat.state.NumMotifs, 0)
	}
	return nil
}

func (cat *catalog) flushState(txn *badger.Txn) error {
	if !cat.stateDirty {
		return nil
	}
	stateBuf, err := cat.state.Marshal()
	if err != nil {
		return err
	}
	if err = txn.Set(gCatalogStateKey, stateBuf); err != nil {
		return err
	}
	cat.stateDirty = false
	return nil
}

func (cat *catalog) IsReadOnly() bool {
	return cat.opts.ReadOnly
}

func (cat *catalog) NumMotifs(order byte) int64 {
	cat.stateMu.Lock()
	defer cat.stateMu.Unlock()

	if int(order) >= len(cat.state.NumMotifs) {
		return 0
	}
	return int64(cat.state.NumMotifs[order])
}

// MergeTable accumulates one classification run into the catalog. Entries
// are staged in a sorted tree so the backing txn writes keys in ascending
// order, which is what the LSM likes.
func (cat *catalog) MergeTable(counts gohx.MotifCounts) error {
	if cat.opts.ReadOnly {
		return gohx.ErrCatalogReadOnly
	}
	if len(counts) == 0 {
		return nil
	}

	staged := &redblacktree.Tree{
		Comparator: func(A, B interface{}) int {
			return bytes.Compare(A.([]byte), B.([]byte))
		},
	}
	for i := range counts {
		key := counts[i].Sig.AppendLSM(nil)
		if prev, ok := staged.Get(key); ok {
			staged.Put(key, prev.(int64)+counts[i].Count)
		} else {
			staged.Put(key, counts[i].Count)
		}
	}

	cat.stateMu.Lock()
	defer cat.stateMu.Unlock()

	err := cat.db.Update(func(txn *badger.Txn) error {
		itr := staged.Iterator()
		for itr.Next() {
			key := itr.Key().([]byte)
			delta := itr.Value().(int64)

			sig, err := gohx.SigFromLSM(key)
			if err != nil {
				return err
			}

			var def gohx.MotifDef
			item, err := txn.Get(key)
			switch {
			case err == badger.ErrKeyNotFound:
				def = gohx.MotifDef{
					Order:     int32(sig.Order()),
					Signature: sig,
					Expr:      sig.String(),
				}
				if o := sig.Order(); o >= 0 && o < len(cat.state.NumMotifs) {
					cat.state.NumMotifs[o]++
				}
			case err != nil:
				return err
			default:
				err = item.Value(func(val []byte) error {
					if err := def.Unmarshal(val); err != nil {
						return errors.Wrap(gohx.ErrUnmarshal, "MotifDef")
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			def.Count += delta
			defBuf, err := def.Marshal()
			if err != nil {
				return err
			}
			if err = txn.Set(key, defBuf); err != nil {
				return err
			}
		}

		cat.state.RunsMerged++
		cat.stateDirty = true
		return cat.flushState(txn)
	})
	if err != nil {
		cat.stateDirty = true
	}
	return err
}

// Select streams stored MotifDefs meeting the selection criteria, in
// ascending signature order. The caller owns (and closes) onHit.
func (cat *catalog) Select(sel gohx.MotifSelector, onHit gohx.OnMotifHit) {
	if sel.MinOrder == 0 {
		sel.MinOrder = gohx.MinOrder
	}
	if sel.MaxOrder == 0 {
		sel.MaxOrder = gohx.MaxOrder
	}

	cat.db.View(func(txn *badger.Txn) error {
		itrOpts := badger.DefaultIteratorOptions
		itrOpts.PrefetchValues = true
		itr := txn.NewIterator(itrOpts)
		defer itr.Close()

		for itr.Seek([]byte{sel.MinOrder}); itr.Valid(); itr.Next() {
			item := itr.Item()
			key := item.Key()
			if len(key) == 0 || key[0] > sel.MaxOrder {
				break
			}

			def := &gohx.MotifDef{}
			err := item.Value(func(val []byte) error {
				return def.Unmarshal(val)
			})
			if err != nil || def.Count < sel.MinCount {
				continue
			}

			select {
			case onHit <- def:
			case <-cat.ctx.Closing():
				return nil
			}
		}
		return nil
	})
}

func (cat *catalog) Close() error {
	cat.closeOnce.Do(func() {
		cat.stateMu.Lock()
		if cat.stateDirty && !cat.opts.ReadOnly {
			cat.closeErr = cat.db.Update(cat.flushState)
		}
		cat.stateMu.Unlock()

		if err := cat.db.Close(); cat.closeErr == nil {
			cat.closeErr = err
		}
		cat.ctx.DetachCatalog(cat)
	})
	return cat.closeErr
}
