package anonym

import (
	"hash/fnv"
	"strconv"
)

// Encode derives a stable non-negative integer from an opaque specific
// identifier. Identifiers that already parse as non-negative base-10 integers
// pass through unchanged; anything else hashes with FNV-1a (32-bit), absolute
// value.
//
// The hash function is pinned so the same input yields the same output on
// every run. Collisions are not resolved.
func Encode(specificID string) int {
	if n, err := strconv.Atoi(specificID); err == nil && n >= 0 {
		return n
	}
	h := fnv.New32a()
	h.Write([]byte(specificID))
	// abs in 64-bit space so math.MinInt32 cannot overflow
	v := int64(int32(h.Sum32()))
	if v < 0 {
		v = -v
	}
	return int(v)
}
