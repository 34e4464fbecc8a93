// Package chainmap provides a fixed-capacity concurrent hash table.
package chainmap

import (
	"fmt"
	"hash/maphash"

	"github.com/spaolacci/murmur3"
)

// Hasher maps a key to an unsigned hash. The table reduces the hash modulo
// its capacity to pick a bucket.
type Hasher[K comparable] func(K) uint64

// defaultHasher returns a seeded maphash-based hasher usable for any
// comparable key type. Each table gets its own seed.
func defaultHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		var h maphash.Hash
		h.SetSeed(seed)
		h.WriteString(fmt.Sprintf("%v", key))
		return h.Sum64()
	}
}

// IntHasher hashes a signed integer key by reinterpreting its bit pattern as
// unsigned. With capacity c, key k lands in bucket uint(k) mod c, so bucket
// placement is fully predictable: keys 5 and 9 collide at capacity 4.
func IntHasher[K ~int | ~int8 | ~int16 | ~int32 | ~int64](key K) uint64 {
	return uint64(key)
}

// BytesHasher hashes a byte-slice key with murmur3. Since []byte is not
// comparable it cannot be a table key directly; callers hash raw bytes into
// a comparable wrapper, typically a string conversion, and StringHasher is
// that path.
func BytesHasher(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// StringHasher hashes a string key with murmur3. It gives better
// distribution than IntHasher-style identity schemes when keys are
// structured (prefixes, sequential suffixes).
func StringHasher(key string) uint64 {
	return BytesHasher([]byte(key))
}
