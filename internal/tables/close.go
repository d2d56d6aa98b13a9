package tables

const (
	closeMinBuckets = 16
	// closeEntrySize is key + value + chain link, padded.
	closeEntrySize = 12
	closeHeadSize  = 4
)

type closeEntry struct {
	key   Key
	value Value
	next  int32
	live  bool
}

// CloseTable is a chained table storing entries in a dense append-only arena,
// with bucket heads indexing into it. Removal marks entries dead in place;
// dead entries are squeezed out on the next rehash.
type CloseTable struct {
	heads []int32
	arena []closeEntry
	mask  uint64
	count int // live entries
}

func NewCloseTable() *CloseTable {
	t := &CloseTable{
		heads: make([]int32, closeMinBuckets),
		arena: make([]closeEntry, 0, closeMinBuckets),
		mask:  closeMinBuckets - 1,
	}
	for i := range t.heads {
		t.heads[i] = -1
	}
	return t
}

func (t *CloseTable) Set(key Key, value Value) {
	b := hashKey(key) & t.mask
	for i := t.heads[b]; i >= 0; i = t.arena[i].next {
		e := &t.arena[i]
		if e.live && e.key == key {
			e.value = value
			return
		}
	}
	if len(t.arena) == cap(t.arena) {
		t.rehash()
		b = hashKey(key) & t.mask
	}
	t.arena = append(t.arena, closeEntry{key: key, value: value, next: t.heads[b], live: true})
	t.heads[b] = int32(len(t.arena) - 1)
	t.count++
}

func (t *CloseTable) Get(key Key) (Value, bool) {
	b := hashKey(key) & t.mask
	for i := t.heads[b]; i >= 0; i = t.arena[i].next {
		e := &t.arena[i]
		if e.live && e.key == key {
			return e.value, true
		}
	}
	return 0, false
}

func (t *CloseTable) Remove(key Key) bool {
	b := hashKey(key) & t.mask
	for i := t.heads[b]; i >= 0; i = t.arena[i].next {
		e := &t.arena[i]
		if e.live && e.key == key {
			e.live = false
			t.count--
			return true
		}
	}
	return false
}

func (t *CloseTable) Len() int { return t.count }

func (t *CloseTable) ByteSize(policy ByteSizePolicy) int {
	switch policy {
	case BytesWritten:
		return len(t.heads)*closeHeadSize + len(t.arena)*closeEntrySize
	default:
		return len(t.heads)*closeHeadSize + cap(t.arena)*closeEntrySize
	}
}

// rehash drops dead arena entries and resizes so live entries fill at most
// half of the new arena. Bucket count tracks arena capacity.
func (t *CloseTable) rehash() {
	newCap := closeMinBuckets
	for t.count*2 >= newCap {
		newCap *= 2
	}
	old := t.arena
	t.heads = make([]int32, newCap)
	for i := range t.heads {
		t.heads[i] = -1
	}
	t.arena = make([]closeEntry, 0, newCap)
	t.mask = uint64(newCap - 1)
	// Re-link in insertion order so chain order stays deterministic.
	for _, e := range old {
		if !e.live {
			continue
		}
		b := hashKey(e.key) & t.mask
		t.arena = append(t.arena, closeEntry{key: e.key, value: e.value, next: t.heads[b], live: true})
		t.heads[b] = int32(len(t.arena) - 1)
	}
}
