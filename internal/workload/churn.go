package workload

import "hashbench/internal/tables"

// worklistPrefill is the steady-state population the FIFO workload churns
// through.
const worklistPrefill = 700

// worklist models a table under continuous churn: each iteration inserts one
// key at the write cursor and removes one at the read cursor, in FIFO order.
// The population stays constant, stressing free-slot reuse rather than
// growth.
type worklist struct {
	stable
	table tables.Table
	r, w  tables.Key
}

func newWorklist(newTable tables.Factory) Workload {
	return &worklist{table: newTable()}
}

func (t *worklist) Setup(uint64) {
	t.r, t.w = 1, 1
	for i := 0; i < worklistPrefill; i++ {
		t.table.Set(t.w, tables.Value(t.w))
		t.w = lcgNext(t.w)
	}
}

func (t *worklist) Run(n uint64) error {
	for i := uint64(0); i < n; i++ {
		t.table.Set(t.w, tables.Value(t.w))
		t.w = lcgNext(t.w)

		if !t.table.Remove(t.r) {
			return invariantf("WorklistTest", "remove(%d) failed, key was inserted %d steps earlier", t.r, worklistPrefill)
		}
		t.r = lcgNext(t.r)
	}
	return nil
}

// coprime711 bumps n up until it shares no factor with 7 or 11, so the
// 7-step and 11-step residue walks below each visit every key exactly once.
func coprime711(n uint64) uint64 {
	for n%7 == 0 || n%11 == 0 {
		n++
	}
	return n
}

// deleteTest inserts keys 1..n walking residues by 7, then removes them
// walking by 11, so deletion order is decorrelated from insertion order.
type deleteTest struct {
	noisy
	table tables.Table
}

func newDeleteTest(newTable tables.Factory) Workload {
	return &deleteTest{table: newTable()}
}

func (w *deleteTest) Setup(n uint64) {
	n = coprime711(n)
	k := uint64(0)
	for i := uint64(0); i < n; i++ {
		w.table.Set(tables.Key(k+1), 0)
		k = (k + 7) % n
	}
}

func (w *deleteTest) Run(n uint64) error {
	n = coprime711(n)
	k := uint64(0)
	for i := uint64(0); i < n; i++ {
		if !w.table.Remove(tables.Key(k + 1)) {
			return invariantf("DeleteTest", "remove(%d) failed on the 11-step walk", k+1)
		}
		k = (k + 11) % n
	}
	return nil
}

// lookupSpan is the historical peak population for lookupAfterDelete. Every
// key not a multiple of 256 is removed again during setup, leaving a sparse
// residual in a table sized for the peak.
const lookupSpan = 50000

type lookupAfterDelete struct {
	stable
	table tables.Table
}

func newLookupAfterDelete(newTable tables.Factory) Workload {
	return &lookupAfterDelete{table: newTable()}
}

func (w *lookupAfterDelete) Setup(uint64) {
	for i := 1; i <= lookupSpan; i++ {
		w.table.Set(tables.Key(i), tables.Value(i))
	}
	for i := 1; i <= lookupSpan; i++ {
		if i&0xff != 0 {
			w.table.Remove(tables.Key(i))
		}
	}
}

func (w *lookupAfterDelete) Run(n uint64) error {
	for i := uint64(1); i <= n; i++ {
		k := tables.Key(i % lookupSpan)
		v, ok := w.table.Get(k)
		if k&0xff == 0 && k != 0 {
			if !ok || v != tables.Value(k) {
				return invariantf("LookupAfterDeleteTest", "get(%d) = (%d, %t), want (%d, true)", k, v, ok, k)
			}
		} else if ok {
			return invariantf("LookupAfterDeleteTest", "get(%d) = (%d, true), want a miss", k, v)
		}
	}
	return nil
}

// insertAfterDelete removes and immediately reinserts the same key n times,
// measuring slot-reuse cost for the delete-then-reinsert pattern.
type insertAfterDelete struct {
	stable
	table tables.Table
}

func newInsertAfterDelete(newTable tables.Factory) Workload {
	return &insertAfterDelete{table: newTable()}
}

func (w *insertAfterDelete) Setup(n uint64) {
	for i := uint64(1); i <= n; i++ {
		w.table.Set(tables.Key(i), tables.Value(i))
	}
}

func (w *insertAfterDelete) Run(n uint64) error {
	for i := uint64(1); i <= n; i++ {
		k := tables.Key(i)
		if !w.table.Remove(k) {
			return invariantf("InsertAfterDeleteTest", "remove(%d) failed, key was inserted during setup", k)
		}
		w.table.Set(k, tables.Value(k))
	}
	return nil
}
