package tables

// BuiltinTable wraps Go's built-in map. Its footprint is an estimate modeled
// on the runtime's bucket layout (8 entries per bucket, ~6.5 average load
// before growth), since the runtime does not expose the real numbers.
type BuiltinTable struct {
	m map[Key]Value
}

const (
	builtinBucketEntries = 8
	// tophash byte + key + value per entry, plus an overflow pointer per
	// bucket.
	builtinBucketSize = builtinBucketEntries*(1+4+4) + 8
	builtinHeaderSize = 48
)

func NewBuiltinTable() *BuiltinTable {
	return &BuiltinTable{m: make(map[Key]Value)}
}

func (t *BuiltinTable) Set(key Key, value Value) { t.m[key] = value }

func (t *BuiltinTable) Get(key Key) (Value, bool) {
	v, ok := t.m[key]
	return v, ok
}

func (t *BuiltinTable) Remove(key Key) bool {
	if _, ok := t.m[key]; !ok {
		return false
	}
	delete(t.m, key)
	return true
}

func (t *BuiltinTable) Len() int { return len(t.m) }

func (t *BuiltinTable) ByteSize(policy ByteSizePolicy) int {
	n := len(t.m)
	if policy == BytesWritten {
		return builtinHeaderSize + n*(1+4+4)
	}
	buckets := 1
	for float64(n) > 6.5*float64(buckets) {
		buckets *= 2
	}
	return builtinHeaderSize + buckets*builtinBucketSize
}
