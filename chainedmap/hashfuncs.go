package chainedmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// seed is fixed once per process so that a table's hash values stay stable
// across its own resizes and rehashes (maphash.Comparable requires a
// caller-supplied seed; a process-wide one is enough since these tables are
// single-process, single-writer).
var seed = maphash.MakeSeed()

// hashKey computes the "platform hash" of key and then applies one of three
// deterministic mixing variants:
//  1. identity of the platform hash
//  2. xor-shift mixing
//  3. splitmix-style multiplicative mixing, specialized to xxhash for
//     string keys in place of a plain FNV-1a string path
func hashKey[K comparable](variant int, key K) uint64 {
	switch variant {
	case 2:
		return xorShiftMix(maphash.Comparable(seed, key))
	case 3:
		if s, ok := any(key).(string); ok {
			return xxhash.Sum64String(s)
		}
		return splitmixMix(maphash.Comparable(seed, key))
	default:
		return maphash.Comparable(seed, key)
	}
}

// xorShiftMix is mixing variant 2:
// h ^= h<<13; h ^= h>>7; h ^= h<<17
func xorShiftMix(h uint64) uint64 {
	h ^= h << 13
	h ^= h >> 7
	h ^= h << 17
	return h
}

// splitmixMix is mixing variant 3:
// h = ((h>>16)^h) * 0x45d9f3b, applied twice, then h ^= h>>16.
func splitmixMix(h uint64) uint64 {
	h = ((h >> 16) ^ h) * 0x45d9f3b
	h = ((h >> 16) ^ h) * 0x45d9f3b
	h ^= h >> 16
	return h
}
