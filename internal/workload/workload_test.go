package workload

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashbench/internal/tables"
)

// tableOp is one recorded table operation.
type tableOp struct {
	op  string
	key tables.Key
	val tables.Value
}

// recordingTable behaves like a correct map while logging every operation, so
// two runs of a workload can be diffed operation by operation.
type recordingTable struct {
	m   map[tables.Key]tables.Value
	log *[]tableOp
}

func newRecorder(log *[]tableOp) tables.Factory {
	return func() tables.Table {
		return &recordingTable{m: make(map[tables.Key]tables.Value), log: log}
	}
}

func (t *recordingTable) Set(key tables.Key, value tables.Value) {
	*t.log = append(*t.log, tableOp{"set", key, value})
	t.m[key] = value
}

func (t *recordingTable) Get(key tables.Key) (tables.Value, bool) {
	*t.log = append(*t.log, tableOp{op: "get", key: key})
	v, ok := t.m[key]
	return v, ok
}

func (t *recordingTable) Remove(key tables.Key) bool {
	*t.log = append(*t.log, tableOp{op: "remove", key: key})
	if _, ok := t.m[key]; !ok {
		return false
	}
	delete(t.m, key)
	return true
}

func (t *recordingTable) Len() int { return len(t.m) }

func (t *recordingTable) ByteSize(tables.ByteSizePolicy) int { return 0 }

// absentTable is a broken implementation that loses every entry.
type absentTable struct{}

func (absentTable) Set(tables.Key, tables.Value)        {}
func (absentTable) Get(tables.Key) (tables.Value, bool) { return 0, false }
func (absentTable) Remove(tables.Key) bool              { return false }
func (absentTable) Len() int                            { return 0 }
func (absentTable) ByteSize(tables.ByteSizePolicy) int  { return 0 }

// echoTable is a broken implementation that claims to hold every key.
type echoTable struct{}

func (echoTable) Set(tables.Key, tables.Value) {}
func (echoTable) Get(k tables.Key) (tables.Value, bool) {
	return tables.Value(k), true
}
func (echoTable) Remove(tables.Key) bool             { return true }
func (echoTable) Len() int                           { return 0 }
func (echoTable) ByteSize(tables.ByteSizePolicy) int { return 0 }

func TestKindsOrder(t *testing.T) {
	var names []string
	for _, k := range Kinds() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{
		"InsertLargeTest",
		"InsertSmallTest",
		"LookupHitTest",
		"LookupMissTest",
		"WorklistTest",
		"DeleteTest",
		"LookupAfterDeleteTest",
		"InsertAfterDeleteTest",
	}, names)
}

func TestLookupKind(t *testing.T) {
	k, ok := LookupKind("WorklistTest")
	require.True(t, ok)
	assert.Equal(t, "WorklistTest", k.Name)

	_, ok = LookupKind("NoSuchTest")
	assert.False(t, ok)
}

func TestTrialClassification(t *testing.T) {
	want := map[string]int{
		"InsertLargeTest":       NoisyTrials,
		"InsertSmallTest":       StableTrials,
		"LookupHitTest":         StableTrials,
		"LookupMissTest":        StableTrials,
		"WorklistTest":          StableTrials,
		"DeleteTest":            NoisyTrials,
		"LookupAfterDeleteTest": StableTrials,
		"InsertAfterDeleteTest": StableTrials,
	}
	for _, kind := range Kinds() {
		var log []tableOp
		w := kind.New(newRecorder(&log))
		assert.Equal(t, want[kind.Name], w.Trials(), kind.Name)
	}
}

// For a fixed n, Setup followed by Run must replay the identical operation
// sequence on every invocation.
func TestDeterminism(t *testing.T) {
	const n = 500
	for _, kind := range Kinds() {
		t.Run(kind.Name, func(t *testing.T) {
			run := func() []tableOp {
				var log []tableOp
				w := kind.New(newRecorder(&log))
				w.Setup(n)
				require.NoError(t, w.Run(n))
				return log
			}
			first := run()
			second := run()
			require.NotEmpty(t, first)
			assert.Equal(t, first, second)
		})
	}
}

// The small-insert workload's control flow must not depend on table
// internals: the number of tables built and the final key are the same no
// matter which implementation is plugged in.
func TestInsertSmallImplementationIndependence(t *testing.T) {
	const n = 1000

	type trace struct {
		tablesBuilt int
		inserts     int
		finalKey    tables.Key
	}

	traceWith := func(newTable tables.Factory) trace {
		var tr trace
		counting := func() tables.Table {
			tr.tablesBuilt++
			return &countingTable{inner: newTable(), onSet: func(k tables.Key) {
				tr.inserts++
				tr.finalKey = k
			}}
		}
		w := newInsertSmall(counting)
		w.Setup(n)
		require.NoError(t, w.Run(n))
		return tr
	}

	var log []tableOp
	reference := traceWith(newRecorder(&log))
	assert.Equal(t, n, reference.inserts)
	// Recorded reference trace for n=1000.
	assert.Equal(t, 13, reference.tablesBuilt)
	assert.Equal(t, tables.Key(3227104160), reference.finalKey)

	for _, impl := range tables.Registry() {
		assert.Equal(t, reference, traceWith(impl.New), impl.Name)
	}
}

type countingTable struct {
	inner tables.Table
	onSet func(k tables.Key)
}

func (t *countingTable) Set(k tables.Key, v tables.Value) {
	t.onSet(k)
	t.inner.Set(k, v)
}
func (t *countingTable) Get(k tables.Key) (tables.Value, bool) { return t.inner.Get(k) }
func (t *countingTable) Remove(k tables.Key) bool              { return t.inner.Remove(k) }
func (t *countingTable) Len() int                              { return t.inner.Len() }
func (t *countingTable) ByteSize(p tables.ByteSizePolicy) int  { return t.inner.ByteSize(p) }

func TestLookupHitSelfCheck(t *testing.T) {
	var log []tableOp
	w := newLookupHit(newRecorder(&log))
	w.Setup(1000)
	assert.NoError(t, w.Run(1000))
}

func TestLookupHitAbortsOnBrokenTable(t *testing.T) {
	w := newLookupHit(func() tables.Table { return absentTable{} })
	w.Setup(10)
	err := w.Run(10)
	require.Error(t, err)

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "LookupHitTest", inv.Workload)
}

func TestLookupMissSelfCheck(t *testing.T) {
	var log []tableOp
	w := newLookupMiss(newRecorder(&log))
	w.Setup(1000)
	assert.NoError(t, w.Run(1000))
}

func TestLookupMissAbortsOnBrokenTable(t *testing.T) {
	w := newLookupMiss(func() tables.Table { return echoTable{} })
	w.Setup(10)
	err := w.Run(10)
	require.Error(t, err)

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "LookupMissTest", inv.Workload)
}

// Every probed key in the hit workload must have been inserted during setup,
// even when n exceeds the generator's cycle length: setup stops as soon as
// the walk returns to 1, and the probe sequence then cycles through the same
// keys.
func TestLookupFillCycleTermination(t *testing.T) {
	var log []tableOp
	w := &lookupFill{table: newRecorder(&log)()}
	w.Setup(1 << 30)
	// 31 has order 378 in the multiplicative group mod 8675310.
	assert.Len(t, log, 378)
}

func TestWorklistFIFOOrder(t *testing.T) {
	const n = 300
	var log []tableOp
	w := newWorklist(newRecorder(&log))
	w.Setup(n)
	require.NoError(t, w.Run(n))

	var inserted, removed []tables.Key
	for _, op := range log {
		switch op.op {
		case "set":
			inserted = append(inserted, op.key)
		case "remove":
			removed = append(removed, op.key)
		}
	}
	require.Len(t, inserted, worklistPrefill+n)
	require.Len(t, removed, n)
	// Removals replay insertions in order, offset by the prefill.
	assert.Equal(t, inserted[:n], removed)
}

func TestWorklistAbortsOnFailedRemove(t *testing.T) {
	w := newWorklist(func() tables.Table { return absentTable{} })
	w.Setup(10)
	err := w.Run(10)

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "WorklistTest", inv.Workload)
}

func TestDeleteTestRemovesEverything(t *testing.T) {
	// Sizes divisible by 7 or 11 are bumped to the next coprime size; each
	// must still remove every inserted key exactly once.
	for _, n := range []uint64{1, 7, 11, 77, 100, 693} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			var log []tableOp
			factory := newRecorder(&log)
			w := newDeleteTest(factory)
			w.Setup(n)
			require.NoError(t, w.Run(n))

			adjusted := coprime711(n)
			var sets, removes int
			for _, op := range log {
				switch op.op {
				case "set":
					sets++
				case "remove":
					removes++
				}
			}
			assert.Equal(t, int(adjusted), sets)
			assert.Equal(t, int(adjusted), removes)
		})
	}
}

func TestCoprime711(t *testing.T) {
	assert.Equal(t, uint64(1), coprime711(1))
	assert.Equal(t, uint64(8), coprime711(7))
	assert.Equal(t, uint64(12), coprime711(11))
	assert.Equal(t, uint64(78), coprime711(77))
	assert.Equal(t, uint64(100), coprime711(100))
}

func TestLookupAfterDeleteExpectations(t *testing.T) {
	var log []tableOp
	w := newLookupAfterDelete(newRecorder(&log))
	w.Setup(0)
	// Only multiples of 256 survive setup.
	assert.Equal(t, lookupSpan/256, w.(*lookupAfterDelete).table.Len())
	assert.NoError(t, w.Run(100000))
}

func TestLookupAfterDeleteAbortsOnBrokenTable(t *testing.T) {
	w := newLookupAfterDelete(func() tables.Table { return echoTable{} })
	w.Setup(0)
	err := w.Run(1000)

	var inv *InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, "LookupAfterDeleteTest", inv.Workload)
}

func TestInsertAfterDeleteRoundTrips(t *testing.T) {
	const n = 500
	var log []tableOp
	w := newInsertAfterDelete(newRecorder(&log))
	w.Setup(n)
	require.NoError(t, w.Run(n))

	// Population is unchanged after n delete+reinsert cycles.
	assert.Equal(t, n, w.(*insertAfterDelete).table.Len())
}

func TestInsertLargeKeySequenceWraps(t *testing.T) {
	// The LCG must wrap mod 2^32; spot-check the first few keys.
	k := tables.Key(1)
	k = lcgNext(k)
	assert.Equal(t, tables.Key(1103527590), k)
	k = lcgNext(k)
	assert.Equal(t, tables.Key(2524885223), k)
}

func TestInvariantErrorMessage(t *testing.T) {
	err := invariantf("SomeTest", "get(%d) failed", 7)
	assert.EqualError(t, err, "SomeTest: invariant violated: get(7) failed")
}
