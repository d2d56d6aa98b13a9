// Package tables defines the capability contract shared by all benchmarked
// hash-table implementations, plus the registry of interchangeable
// implementations.
package tables

// Key and Value are fixed-width identifiers. Workload key sequences rely on
// uint32 wraparound, so the width is part of the contract.
type (
	Key   uint32
	Value uint32
)

// ByteSizePolicy selects how a table accounts for its memory footprint.
type ByteSizePolicy int

const (
	// BytesAllocated charges for all reserved backing storage, including
	// unused capacity.
	BytesAllocated ByteSizePolicy = iota
	// BytesWritten charges only for storage that has been logically touched.
	BytesWritten
)

// Table is the minimal associative contract every implementation satisfies.
// Implementations are not safe for concurrent use; the harness is strictly
// single-threaded.
type Table interface {
	// Set inserts or overwrites the entry for key.
	Set(key Key, value Value)
	// Get returns the value for key and whether it was present.
	Get(key Key) (Value, bool)
	// Remove deletes the entry for key, reporting whether it existed.
	Remove(key Key) bool
	// Len returns the number of live entries.
	Len() int
	// ByteSize reports the table's current footprint under the given policy.
	ByteSize(policy ByteSizePolicy) int
}

// Factory constructs a fresh, empty table.
type Factory func() Table

// Impl pairs an implementation name with its factory.
type Impl struct {
	Name string
	New  Factory
}

// Registry returns the registered implementations in a fixed order. Report
// columns and memory-profile columns follow this order.
func Registry() []Impl {
	return []Impl{
		{Name: "OpenTable", New: func() Table { return NewOpenTable() }},
		{Name: "CloseTable", New: func() Table { return NewCloseTable() }},
		{Name: "BuiltinTable", New: func() Table { return NewBuiltinTable() }},
		{Name: "SwissTable", New: func() Table { return NewSwissTable() }},
		{Name: "HaxTable", New: func() Table { return NewHaxTable() }},
	}
}

// Lookup returns the registered implementation with the given name.
func Lookup(name string) (Impl, bool) {
	for _, impl := range Registry() {
		if impl.Name == name {
			return impl, true
		}
	}
	return Impl{}, false
}
