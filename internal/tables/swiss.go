package tables

import "github.com/cockroachdb/swiss"

// SwissTable adapts cockroachdb's Swiss-table map to the Table contract.
type SwissTable struct {
	m *swiss.Map[Key, Value]
}

const (
	swissGroupSlots = 8
	// One control byte plus key and value per slot.
	swissSlotSize = 1 + 4 + 4
)

func NewSwissTable() *SwissTable {
	return &SwissTable{m: swiss.New[Key, Value](0)}
}

func (t *SwissTable) Set(key Key, value Value) { t.m.Put(key, value) }

func (t *SwissTable) Get(key Key) (Value, bool) { return t.m.Get(key) }

func (t *SwissTable) Remove(key Key) bool {
	if _, ok := t.m.Get(key); !ok {
		return false
	}
	t.m.Delete(key)
	return true
}

func (t *SwissTable) Len() int { return t.m.Len() }

// ByteSize estimates from the Swiss-table layout: groups of 8 slots grown so
// occupancy stays at or below 7/8.
func (t *SwissTable) ByteSize(policy ByteSizePolicy) int {
	n := t.m.Len()
	if policy == BytesWritten {
		return n * swissSlotSize
	}
	slots := swissGroupSlots
	for n*8 > slots*7 {
		slots *= 2
	}
	return slots * swissSlotSize
}
