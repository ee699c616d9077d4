// ════════════════════════════════════════════════════════════════════════════════════════════════
// SEPARATELY-CHAINED HASH TABLE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Foundational Data Structures
// Component: Mapping K -> V with Pluggable Hash Functions and Instrumentation
//
// Description:
//   Bucket array of singly-linked chains, auto-growth at 75% load factor,
//   three swappable hash-function variants, and a bounded circular buffer
//   of per-operation timing samples.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package chainedmap

import (
	"errors"

	"github.com/nyxlabs/coreds/internal/latency"
)

// ErrKeyNotFound is returned by GetChecked when the key is absent.
var ErrKeyNotFound = errors.New("chainedmap: key not found")

const (
	defaultBucketCount = 16
	growThreshold      = 0.75
	metricsWindow      = 1000
)

type node[K comparable, V any] struct {
	key  K
	val  V
	next *node[K, V]
}

// Map is a separately-chained hash table mapping K to V.
type Map[K comparable, V any] struct {
	buckets  []*node[K, V]
	size     int
	hashFnID int
	metrics  *latency.Ring
}

// New constructs a chained hash table with the given initial bucket count
// (default 16 if n <= 0) and hash function variant 1 active.
func New[K comparable, V any](initialBucketCount int) *Map[K, V] {
	if initialBucketCount <= 0 {
		initialBucketCount = defaultBucketCount
	}
	return &Map[K, V]{
		buckets:  make([]*node[K, V], initialBucketCount),
		hashFnID: 1,
		metrics:  latency.NewRing(metricsWindow),
	}
}

func (m *Map[K, V]) record(t latency.Timer) {
	start, ms := t.Stop()
	m.metrics.Record(start, ms)
}

func (m *Map[K, V]) bucketIndex(key K) int {
	h := hashKey(m.hashFnID, key)
	return int(h % uint64(len(m.buckets)))
}

// Put inserts or overwrites key->value. If the load factor exceeds 0.75
// after accounting for the new entry, the bucket array doubles and every
// node rehashes first.
func (m *Map[K, V]) Put(key K, val V) {
	t := latency.StartTimer()
	defer m.record(t)

	if len(m.buckets) == 0 {
		m.buckets = make([]*node[K, V], defaultBucketCount)
	}
	if float64(m.size+1)/float64(len(m.buckets)) > growThreshold {
		m.rehashTo(len(m.buckets) * 2)
	}

	idx := m.bucketIndex(key)
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			n.val = val
			return
		}
	}
	m.buckets[idx] = &node[K, V]{key: key, val: val, next: m.buckets[idx]}
	m.size++
}

// GetChecked returns the value stored for key, or ErrKeyNotFound.
func (m *Map[K, V]) GetChecked(key K) (V, error) {
	t := latency.StartTimer()
	defer m.record(t)

	var zero V
	if len(m.buckets) == 0 {
		return zero, ErrKeyNotFound
	}
	idx := m.bucketIndex(key)
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			return n.val, nil
		}
	}
	return zero, ErrKeyNotFound
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	t := latency.StartTimer()
	defer m.record(t)

	if len(m.buckets) == 0 {
		return false
	}
	idx := m.bucketIndex(key)
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			return true
		}
	}
	return false
}

// Remove deletes key if present, reporting whether it was found.
func (m *Map[K, V]) Remove(key K) bool {
	t := latency.StartTimer()
	defer m.record(t)

	if len(m.buckets) == 0 {
		return false
	}
	idx := m.bucketIndex(key)
	var prev *node[K, V]
	for n := m.buckets[idx]; n != nil; n = n.next {
		if n.key == key {
			if prev == nil {
				m.buckets[idx] = n.next
			} else {
				prev.next = n.next
			}
			m.size--
			return true
		}
		prev = n
	}
	return false
}

// Size returns the number of live key-value pairs.
func (m *Map[K, V]) Size() int { return m.size }

// GetLoadFactor returns size/bucket_count, or 0 if bucket_count is 0.
func (m *Map[K, V]) GetLoadFactor() float64 {
	if len(m.buckets) == 0 {
		return 0
	}
	return float64(m.size) / float64(len(m.buckets))
}

// CollisionStats summarizes chain lengths across non-empty buckets.
type CollisionStats struct {
	MaxChainLength     int
	AverageChainLength float64
	Variance           float64
}

// GetCollisionStats computes max/average/variance of chain length over
// non-empty buckets.
func (m *Map[K, V]) GetCollisionStats() CollisionStats {
	var lengths []int
	for _, head := range m.buckets {
		if head == nil {
			continue
		}
		n := 0
		for cur := head; cur != nil; cur = cur.next {
			n++
		}
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return CollisionStats{}
	}

	max := 0
	sum := 0
	for _, l := range lengths {
		if l > max {
			max = l
		}
		sum += l
	}
	avg := float64(sum) / float64(len(lengths))

	var variance float64
	for _, l := range lengths {
		d := float64(l) - avg
		variance += d * d
	}
	variance /= float64(len(lengths))

	return CollisionStats{MaxChainLength: max, AverageChainLength: avg, Variance: variance}
}

// GetPerformanceMetrics reports mean latency and throughput over the most
// recent min(lastN, tracked, 1000) operations.
func (m *Map[K, V]) GetPerformanceMetrics(lastN int) latency.Metrics {
	return m.metrics.Recent(lastN)
}

// Configuration snapshots the table's tunable state.
type Configuration struct {
	Size                 int
	BucketCount          int
	ActiveHashFunctionID int
}

// GetConfiguration returns {size, bucket_count, active_hash_function_id}.
func (m *Map[K, V]) GetConfiguration() Configuration {
	return Configuration{Size: m.size, BucketCount: len(m.buckets), ActiveHashFunctionID: m.hashFnID}
}

// ExecuteResize sets the bucket count to newB and rehashes every node.
func (m *Map[K, V]) ExecuteResize(newB int) {
	if newB <= 0 {
		newB = 1
	}
	m.rehashTo(newB)
}

// ExecuteChangeHashFunction switches the active hash function (1, 2, or 3)
// and rehashes every node under the new function.
func (m *Map[K, V]) ExecuteChangeHashFunction(id int) {
	if id < 1 || id > 3 {
		return
	}
	m.hashFnID = id
	m.rehashTo(len(m.buckets))
}

func (m *Map[K, V]) rehashTo(newB int) {
	old := m.buckets
	m.buckets = make([]*node[K, V], newB)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			idx := m.bucketIndex(n.key)
			n.next = m.buckets[idx]
			m.buckets[idx] = n
			n = next
		}
	}
}

// Clone deep-copies every chain and the table's configuration. The fresh
// metrics buffer starts empty (a copy carries no operation history of its
// own).
func (m *Map[K, V]) Clone() *Map[K, V] {
	fresh := &Map[K, V]{
		buckets:  make([]*node[K, V], len(m.buckets)),
		size:     m.size,
		hashFnID: m.hashFnID,
		metrics:  latency.NewRing(metricsWindow),
	}
	for i, head := range m.buckets {
		var newHead, tail *node[K, V]
		for n := head; n != nil; n = n.next {
			nn := &node[K, V]{key: n.key, val: n.val}
			if tail == nil {
				newHead = nn
			} else {
				tail.next = nn
			}
			tail = nn
		}
		fresh.buckets[i] = newHead
	}
	return fresh
}
