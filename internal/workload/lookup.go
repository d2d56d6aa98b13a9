package workload

import "hashbench/internal/tables"

// lookupFill inserts up to n keys from the multiplicative-group walk,
// stopping early if the walk cycles back to its start. Shared setup for the
// hit and miss workloads.
type lookupFill struct {
	stable
	table tables.Table
}

func (w *lookupFill) Setup(n uint64) {
	k := tables.Key(1)
	for i := uint64(0); i < n; i++ {
		w.table.Set(k, tables.Value(k))
		k = groupNext(k)
		if k == 1 {
			break
		}
	}
}

// lookupHit replays the inserted key sequence and requires every lookup to
// return the key itself.
type lookupHit struct {
	lookupFill
}

func newLookupHit(newTable tables.Factory) Workload {
	return &lookupHit{lookupFill{table: newTable()}}
}

func (w *lookupHit) Run(n uint64) error {
	k := tables.Key(1)
	for i := uint64(0); i < n; i++ {
		v, ok := w.table.Get(k)
		if !ok || v != tables.Value(k) {
			return invariantf("LookupHitTest", "get(%d) = (%d, %t), want (%d, true)", k, v, ok, k)
		}
		k = groupNext(k)
	}
	return nil
}

// lookupMiss probes key+modulus for each inserted key. Every inserted key is
// below the modulus, so every probe must miss.
type lookupMiss struct {
	lookupFill
}

func newLookupMiss(newTable tables.Factory) Workload {
	return &lookupMiss{lookupFill{table: newTable()}}
}

func (w *lookupMiss) Run(n uint64) error {
	k := tables.Key(1)
	for i := uint64(0); i < n; i++ {
		if v, ok := w.table.Get(k + lookupModulus); ok {
			return invariantf("LookupMissTest", "get(%d) = (%d, true), want a miss", k+lookupModulus, v)
		}
		k = groupNext(k)
	}
	return nil
}
