package workload

import "hashbench/internal/tables"

// Key sequence constants. The LCG wraps mod 2^32 with the classic glibc
// multiplier. The lookup workloads instead walk the multiplicative group
// mod 8675309+1; 8675309 is prime, so the walk visits distinct keys until it
// returns to 1.
const (
	lcgMul = 1103515245
	lcgAdd = 12345

	lookupModulus = 8675309 + 1
)

func lcgNext(k tables.Key) tables.Key {
	return k*lcgMul + lcgAdd
}

func groupNext(k tables.Key) tables.Key {
	return k * 31 % lookupModulus
}
