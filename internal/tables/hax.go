package tables

import "github.com/alphadose/haxmap"

// HaxTable adapts alphadose/haxmap. The map is lock-free and built for
// concurrent use; the harness drives it from a single goroutine so it
// competes on its data layout, not its synchronization.
type HaxTable struct {
	m *haxmap.Map[uint32, uint32]
}

// haxElementSize models one list element: key, value, hash, next pointer.
const haxElementSize = 4 + 4 + 8 + 8

func NewHaxTable() *HaxTable {
	return &HaxTable{m: haxmap.New[uint32, uint32]()}
}

func (t *HaxTable) Set(key Key, value Value) { t.m.Set(uint32(key), uint32(value)) }

func (t *HaxTable) Get(key Key) (Value, bool) {
	v, ok := t.m.Get(uint32(key))
	return Value(v), ok
}

func (t *HaxTable) Remove(key Key) bool {
	if _, ok := t.m.Get(uint32(key)); !ok {
		return false
	}
	t.m.Del(uint32(key))
	return true
}

func (t *HaxTable) Len() int { return int(t.m.Len()) }

// ByteSize estimates from haxmap's layout: a sorted linked list of elements
// plus a power-of-two index array of pointers.
func (t *HaxTable) ByteSize(policy ByteSizePolicy) int {
	n := int(t.m.Len())
	if policy == BytesWritten {
		return n * haxElementSize
	}
	index := 1
	for index < n {
		index *= 2
	}
	return n*haxElementSize + index*8
}
