// ════════════════════════════════════════════════════════════════════════════════════════════════
// ROBIN HOOD HASH TABLE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Foundational Data Structures
// Component: Fixed-Capacity Hash Map Implementation
//
// Description:
//   Zero-growth, zero-removal hash table using Robin Hood hashing for cache
//   efficiency. Fixed capacity, splitmix64 keying for integer keys. No
//   internal synchronization: single-writer only.
//
//   Buckets carry a trailing padding field (bucketPad, set per-platform in
//   cacheline_apple.go / cacheline_default.go) sized against the table's
//   documented common case of an 8-byte key and an 8-byte value, landing
//   sizeof(bucket) exactly on the platform's cache line for that case; a K/V
//   pair of a different width pads the bucket to something other than an
//   exact multiple, since Go generics can't read a type's layout at the
//   point an array field's length is fixed.
//
// Design Principles (carried over from localidx.Hash, generalized to a
// fixed-capacity K/V contract instead of a uint32/uint32 index map):
//   - Fixed capacity with power-of-2 sizing for fast masked modulo
//   - Robin Hood displacement minimizes probe distances
//   - Zero-value occupancy would collide with real zero keys, so this
//     table tracks occupancy with an explicit state byte instead of
//     localidx's "0 is empty" sentinel trick
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package robinhood

import (
	"hash/maphash"

	"github.com/nyxlabs/coreds/internal/latency"
)

const (
	stateEmpty    = uint8(0)
	stateOccupied = uint8(1)
	maxProbeDist  = uint8(255)
	minCapacity   = 16
)

type bucket[K comparable, V any] struct {
	key      K
	val      V
	state    uint8
	probeDst uint8
	_        [bucketPad]byte
}

// Table is a fixed-capacity Robin-Hood open-addressing hash table.
// Capacity is rounded up to the next power of two (minimum 16) at
// construction and never changes afterward: no growth, no removal.
type Table[K comparable, V any] struct {
	buckets []bucket[K, V]
	mask    uint64
	size    int
	seed    maphash.Seed
}

// New constructs a table with at least the requested capacity, rounded up
// to the next power of two (minimum 16).
func New[K comparable, V any](capacity int) *Table[K, V] {
	cap := nextPow2(capacity)
	if cap < minCapacity {
		cap = minCapacity
	}
	return &Table[K, V]{
		buckets: make([]bucket[K, V], cap),
		mask:    uint64(cap - 1),
		seed:    maphash.MakeSeed(),
	}
}

func nextPow2(n int) int {
	if n < 1 {
		n = 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Capacity returns the fixed bucket count.
func (t *Table[K, V]) Capacity() int { return len(t.buckets) }

// Size returns the number of live entries.
func (t *Table[K, V]) Size() int { return t.size }

// splitmix64 hashing is used for integer keys; any() type switches dispatch
// the handful of fixed-width integer kinds plugin-free, falling back to
// maphash.Comparable (the platform hash) otherwise.
func (t *Table[K, V]) hash(key K) uint64 {
	switch k := any(key).(type) {
	case int:
		return splitmix64(uint64(k))
	case int8:
		return splitmix64(uint64(k))
	case int16:
		return splitmix64(uint64(k))
	case int32:
		return splitmix64(uint64(k))
	case int64:
		return splitmix64(uint64(k))
	case uint:
		return splitmix64(uint64(k))
	case uint8:
		return splitmix64(uint64(k))
	case uint16:
		return splitmix64(uint64(k))
	case uint32:
		return splitmix64(uint64(k))
	case uint64:
		return splitmix64(k)
	default:
		return maphash.Comparable(t.seed, key)
	}
}

// splitmix64 hashes a 64-bit integer key: constants 0x9E3779B97F4A7C15,
// 0xBF58476D1CE4E5B9, 0x94D049BB133111EB.
func splitmix64(key uint64) uint64 {
	z := key + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Put inserts or updates key->val. Reports true on a fresh insert, false
// on an in-place update of an existing key, or when the table is full
// (scanned a full capacity of probes without placing the entry).
//
// Follows the Robin-Hood displacement discipline directly: probe from the
// key's ideal index; if the incumbent's probe distance is less than ours,
// swap payloads (we take the slot, the incumbent continues probing with
// our former distance); advance with saturation at 255.
func (t *Table[K, V]) Put(key K, val V) bool {
	if t.size == len(t.buckets) {
		// No empty bucket can end a displacement chain, so only an in-place
		// update may succeed; never start swapping payloads.
		for i := range t.buckets {
			if t.buckets[i].key == key {
				t.buckets[i].val = val
				return false
			}
		}
		return false
	}

	idx := t.hash(key) & t.mask
	dist := uint8(0)
	insKey, insVal := key, val

	for i := 0; i <= int(t.mask); i++ {
		b := &t.buckets[idx]

		if b.state == stateEmpty {
			b.key, b.val, b.state, b.probeDst = insKey, insVal, stateOccupied, dist
			t.size++
			return true
		}

		// By the Robin-Hood invariant, if the incumbent's probe distance
		// is already smaller than ours, our key cannot be this one —
		// skip the duplicate check and fall straight to displacement.
		if b.probeDst >= dist && b.key == insKey {
			b.val = insVal
			return false
		}

		if b.probeDst < dist {
			b.key, insKey = insKey, b.key
			b.val, insVal = insVal, b.val
			b.probeDst, dist = dist, b.probeDst
		}

		idx = (idx + 1) & t.mask
		if dist < maxProbeDist {
			dist++
		}
	}
	return false
}

// Get returns the value stored under key, if present. Uses the Robin-Hood
// early-termination rule: once a probed bucket's distance is smaller than
// the search distance so far, key cannot exist further along the chain.
func (t *Table[K, V]) Get(key K) (V, bool) {
	idx := t.hash(key) & t.mask
	dist := uint8(0)

	for i := 0; i <= int(t.mask); i++ {
		b := &t.buckets[idx]
		if b.state == stateEmpty {
			var zero V
			return zero, false
		}
		if b.key == key {
			return b.val, true
		}
		if b.probeDst < dist {
			var zero V
			return zero, false
		}
		// Touch the next probe slot now. Go has no portable
		// __builtin_prefetch; reading ahead is the closest stdlib-only
		// approximation and costs nothing extra since the load happens
		// on the next iteration anyway.
		_ = t.buckets[(idx+1)&t.mask].state

		idx = (idx + 1) & t.mask
		if dist < maxProbeDist {
			dist++
		}
	}
	var zero V
	return zero, false
}

// CacheLineSize reports the padding target bucketPad is sized against on
// this platform: 128 bytes on Apple Silicon, 64 elsewhere.
func CacheLineSize() int { return latency.CacheLineSize() }
