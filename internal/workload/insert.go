package workload

import "hashbench/internal/tables"

// insertLarge inserts n pseudorandom keys into one persistent table,
// measuring sustained bulk-insert throughput with rehash costs amortized
// across the run.
type insertLarge struct {
	noisy
	table tables.Table
}

func newInsertLarge(newTable tables.Factory) Workload {
	return &insertLarge{table: newTable()}
}

func (w *insertLarge) Setup(uint64) {}

func (w *insertLarge) Run(n uint64) error {
	k := tables.Key(1)
	for i := uint64(0); i < n; i++ {
		w.table.Set(k, tables.Value(k))
		k = lcgNext(k)
	}
	return nil
}

// insertSmall repeatedly builds a fresh table of pseudorandom size (an
// exponential distribution with median near 100), discards it, and starts
// over until n total inserts are done. Building tables of varying sizes keeps
// the measurement from rewarding any particular rehash threshold; the
// stopping condition depends only on the key stream, never on the table.
type insertSmall struct {
	stable
	newTable tables.Factory
}

func newInsertSmall(newTable tables.Factory) Workload {
	return &insertSmall{newTable: newTable}
}

func (w *insertSmall) Setup(uint64) {}

func (w *insertSmall) Run(n uint64) error {
	k := tables.Key(1)
	for n > 0 {
		table := w.newTable()
		for {
			table.Set(k, tables.Value(k))
			k = lcgNext(k)
			if n--; n == 0 || k%145 == 0 {
				break
			}
		}
	}
	return nil
}
