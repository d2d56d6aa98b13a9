package tables

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

const (
	openMinCapacity = 16
	// openEntrySize is the in-memory size of one slot: key + value + state,
	// padded to alignment.
	openEntrySize = 12
)

// Slot states. The zero value is empty so a fresh slice needs no init pass.
const (
	slotEmpty = iota
	slotFull
	slotTombstone
)

type openEntry struct {
	key   Key
	value Value
	state uint8
}

// OpenTable is an open-addressing table with linear probing and tombstone
// deletion. Capacity is always a power of two; it rehashes when slots in use
// (live plus tombstones) exceed 3/4 of capacity.
type OpenTable struct {
	slots []openEntry
	mask  uint64
	live  int
	used  int // live entries plus tombstones
}

func NewOpenTable() *OpenTable {
	return &OpenTable{
		slots: make([]openEntry, openMinCapacity),
		mask:  openMinCapacity - 1,
	}
}

func hashKey(k Key) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(k))
	return xxhash.Sum64(buf[:])
}

func (t *OpenTable) Set(key Key, value Value) {
	if uint64(t.used+1)*4 > uint64(len(t.slots))*3 {
		t.rehash()
	}
	i := hashKey(key) & t.mask
	firstTombstone := -1
	for {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			if firstTombstone >= 0 {
				s = &t.slots[firstTombstone]
			} else {
				t.used++
			}
			s.key, s.value, s.state = key, value, slotFull
			t.live++
			return
		case slotFull:
			if s.key == key {
				s.value = value
				return
			}
		case slotTombstone:
			if firstTombstone < 0 {
				firstTombstone = int(i)
			}
		}
		i = (i + 1) & t.mask
	}
}

func (t *OpenTable) Get(key Key) (Value, bool) {
	i := hashKey(key) & t.mask
	for {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			return 0, false
		case slotFull:
			if s.key == key {
				return s.value, true
			}
		}
		i = (i + 1) & t.mask
	}
}

func (t *OpenTable) Remove(key Key) bool {
	i := hashKey(key) & t.mask
	for {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			return false
		case slotFull:
			if s.key == key {
				s.state = slotTombstone
				t.live--
				return true
			}
		}
		i = (i + 1) & t.mask
	}
}

func (t *OpenTable) Len() int { return t.live }

func (t *OpenTable) ByteSize(policy ByteSizePolicy) int {
	switch policy {
	case BytesWritten:
		return t.used * openEntrySize
	default:
		return len(t.slots) * openEntrySize
	}
}

// rehash copies live entries into a table sized so they occupy at most half
// of it, discarding tombstones.
func (t *OpenTable) rehash() {
	newCap := openMinCapacity
	for t.live*2 >= newCap {
		newCap *= 2
	}
	old := t.slots
	t.slots = make([]openEntry, newCap)
	t.mask = uint64(newCap - 1)
	t.live, t.used = 0, 0
	for _, s := range old {
		if s.state == slotFull {
			t.Set(s.key, s.value)
		}
	}
}
