package sssp

import (
	"container/list"
	"sort"

	"github.com/nyxlabs/coreds/internal/ordmap"
)

// kv is a (vertex, distance) pair stored in a block.
type kv struct {
	key   int
	value float64
}

// block holds at most M key-value pairs in insertion order, plus the upper
// bound used to place it in the D1 balanced map.
type block struct {
	elements *list.List // of kv
	upper    float64
}

func newBlock(upper float64) *block {
	return &block{elements: list.New(), upper: upper}
}

// seqTag identifies which of the two block sequences a key lives in.
type seqTag int

const (
	seqD0 seqTag = 0
	seqD1 seqTag = 1
)

type location struct {
	seq       seqTag
	blockElem *list.Element // element of d0 or d1, holding a *block
	kvElem    *list.Element // element of block.elements, holding a kv
}

// PartialOrderDS is the block-based partial ordering structure behind
// BMSSP's recursive subproblem scheduling (Duan et al., Lemma 3.1). It
// maintains two block sequences — D0 for batch-prepended values, D1 for
// individually inserted ones — so that earlier blocks always hold values
// no greater than later blocks.
type PartialOrderDS struct {
	d0       *list.List // of *block
	d1       *list.List // of *block
	d1Bounds *ordmap.Tree[float64, *list.Element]
	keyLoc   map[int]location
	m        int
	b        float64
}

func float64Less(a, b float64) bool { return a < b }

// NewPartialOrderDS constructs an uninitialized structure; call Initialize
// before use.
func NewPartialOrderDS() *PartialOrderDS {
	return &PartialOrderDS{}
}

// Initialize resets the structure with block-size parameter m and upper
// bound b. D0 starts empty; D1 starts with a single empty block bounded
// by b.
func (ds *PartialOrderDS) Initialize(m int, b float64) {
	ds.m = m
	ds.b = b
	ds.d0 = list.New()
	ds.d1 = list.New()
	ds.d1Bounds = ordmap.New[float64, *list.Element](float64Less)
	ds.keyLoc = make(map[int]location)

	blk := newBlock(b)
	elem := ds.d1.PushBack(blk)
	ds.d1Bounds.Insert(b, elem)
}

// Empty reports whether every block in both sequences holds no elements.
func (ds *PartialOrderDS) Empty() bool {
	for e := ds.d0.Front(); e != nil; e = e.Next() {
		if e.Value.(*block).elements.Len() > 0 {
			return false
		}
	}
	for e := ds.d1.Front(); e != nil; e = e.Next() {
		if e.Value.(*block).elements.Len() > 0 {
			return false
		}
	}
	return true
}

// findBlockForValue returns the D1 block element whose upper bound is the
// smallest one >= value, or the tail block if value exceeds every bound.
func (ds *PartialOrderDS) findBlockForValue(value float64) *list.Element {
	if _, elem, ok := ds.d1Bounds.CeilingGE(value); ok {
		return elem
	}
	return ds.d1.Back()
}

// Insert places (key, value) into D1, or no-ops if key is already present
// with a value <= the candidate.
func (ds *PartialOrderDS) Insert(key int, value float64) {
	if loc, ok := ds.keyLoc[key]; ok {
		oldValue := loc.kvElem.Value.(kv).value
		if value < oldValue {
			ds.delete(key, loc)
		} else {
			return
		}
	}

	blockElem := ds.findBlockForValue(value)
	blk := blockElem.Value.(*block)
	kvElem := blk.elements.PushBack(kv{key: key, value: value})
	ds.keyLoc[key] = location{seq: seqD1, blockElem: blockElem, kvElem: kvElem}

	if blk.elements.Len() > ds.m {
		ds.splitBlock(blockElem)
	}
}

func (ds *PartialOrderDS) delete(key int, loc location) {
	blk := loc.blockElem.Value.(*block)
	blk.elements.Remove(loc.kvElem)
	delete(ds.keyLoc, key)

	if blk.elements.Len() > 0 {
		return
	}
	if loc.seq == seqD1 {
		ds.d1Bounds.Delete(blk.upper)
		ds.d1.Remove(loc.blockElem)
		ds.ensureD1Sentinel()
		return
	}
	ds.d0.Remove(loc.blockElem)
}

// ensureD1Sentinel guarantees D1 always holds at least one (possibly empty)
// trailing block bounded by the structure's overall upper bound, so
// findBlockForValue and Insert always have somewhere to land a new key even
// right after a Pull has drained every existing D1 block.
func (ds *PartialOrderDS) ensureD1Sentinel() {
	if ds.d1.Len() > 0 {
		return
	}
	blk := newBlock(ds.b)
	elem := ds.d1.PushBack(blk)
	ds.d1Bounds.Insert(blk.upper, elem)
}

// splitBlock partitions an overflowing D1 block by its median value: values
// below the median go to the left block (at most half of them), the median
// and everything above it to the right block, which is therefore the larger
// one and can hold more than half when values tie at the median. It updates
// the balanced map and every affected key's location.
func (ds *PartialOrderDS) splitBlock(blockElem *list.Element) {
	blk := blockElem.Value.(*block)

	values := make([]float64, 0, blk.elements.Len())
	for e := blk.elements.Front(); e != nil; e = e.Next() {
		values = append(values, e.Value.(kv).value)
	}
	sort.Float64s(values)
	median := values[len(values)/2]

	left := newBlock(median)
	right := newBlock(blk.upper)
	for e := blk.elements.Front(); e != nil; e = e.Next() {
		pair := e.Value.(kv)
		if pair.value < median {
			left.elements.PushBack(pair)
		} else {
			right.elements.PushBack(pair)
		}
	}

	ds.d1Bounds.Delete(blk.upper)

	blockElem.Value = left
	ds.d1Bounds.Insert(left.upper, blockElem)

	rightElem := ds.d1.InsertAfter(right, blockElem)
	ds.d1Bounds.Insert(right.upper, rightElem)

	for e := left.elements.Front(); e != nil; e = e.Next() {
		ds.keyLoc[e.Value.(kv).key] = location{seq: seqD1, blockElem: blockElem, kvElem: e}
	}
	for e := right.elements.Front(); e != nil; e = e.Next() {
		ds.keyLoc[e.Value.(kv).key] = location{seq: seqD1, blockElem: rightElem, kvElem: e}
	}
}

// BatchPrepend adds a batch of (key, value) pairs known to be smaller than
// every value currently held, front-loading them into D0. Duplicate keys
// within the batch keep their minimum value; keys already present with a
// smaller-or-equal value are dropped.
func (ds *PartialOrderDS) BatchPrepend(l []kv) {
	if len(l) == 0 {
		return
	}

	minValues := make(map[int]float64, len(l))
	for _, pair := range l {
		if cur, ok := minValues[pair.key]; !ok || pair.value < cur {
			minValues[pair.key] = pair.value
		}
	}

	filtered := make([]kv, 0, len(minValues))
	for key, value := range minValues {
		if loc, ok := ds.keyLoc[key]; ok {
			oldValue := loc.kvElem.Value.(kv).value
			if value < oldValue {
				ds.delete(key, loc)
				filtered = append(filtered, kv{key: key, value: value})
			}
		} else {
			filtered = append(filtered, kv{key: key, value: value})
		}
	}
	if len(filtered) == 0 {
		return
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].value != filtered[j].value {
			return filtered[i].value < filtered[j].value
		}
		return filtered[i].key < filtered[j].key
	})

	var blocks []*block
	if len(filtered) <= ds.m {
		blocks = []*block{{elements: sliceToList(filtered), upper: ds.b}}
	} else {
		blocks = ds.createBlocksFromSlice(filtered)
	}

	for i := len(blocks) - 1; i >= 0; i-- {
		blk := blocks[i]
		elem := ds.d0.PushFront(blk)
		for e := blk.elements.Front(); e != nil; e = e.Next() {
			ds.keyLoc[e.Value.(kv).key] = location{seq: seqD0, blockElem: elem, kvElem: e}
		}
	}
}

func sliceToList(s []kv) *list.List {
	l := list.New()
	for _, v := range s {
		l.PushBack(v)
	}
	return l
}

// createBlocksFromSlice recursively median-partitions a value-sorted slice
// into blocks of at most ceil(M/2) elements, returned in ascending value
// order. BatchPrepend pushes them onto the front of D0 from last to first,
// so they land there in ascending value order.
func (ds *PartialOrderDS) createBlocksFromSlice(l []kv) []*block {
	half := (ds.m + 1) / 2
	if len(l) <= half {
		return []*block{{elements: sliceToList(l), upper: ds.b}}
	}

	mid := len(l) / 2
	median := l[mid].value

	var left, right []kv
	for _, pair := range l {
		if pair.value < median {
			left = append(left, pair)
		} else {
			right = append(right, pair)
		}
	}
	if len(left) == 0 {
		// Every value up to the median ties; l is sorted, so split by index.
		left, right = l[:mid], l[mid:]
	}

	blocks := ds.createBlocksFromSlice(left)
	blocks = append(blocks, ds.createBlocksFromSlice(right)...)
	return blocks
}

// collectPrefix peeks at whole leading blocks of seq, without mutating it,
// until at least target elements are gathered or seq is exhausted. Blocks
// are not sorted internally, so a block is never cut short.
func collectPrefix(seq *list.List, target int) []kv {
	collected := make([]kv, 0, target)
	for e := seq.Front(); e != nil && len(collected) < target; e = e.Next() {
		blk := e.Value.(*block)
		for ke := blk.elements.Front(); ke != nil; ke = ke.Next() {
			collected = append(collected, ke.Value.(kv))
		}
	}
	return collected
}

// Pull removes and returns up to M of the smallest-valued keys, plus a
// separator: every remaining value is >= separator, and (if the structure
// did not empty out) every returned value is <= separator, strictly below
// it unless values tie at the cut. Every removal
// goes through delete, which only ever touches the one kv element being
// removed (splicing it out of its block) and the block itself only when
// that leaves it empty — a prefix that stops partway through a block never
// drops that block's untouched remainder.
func (ds *PartialOrderDS) Pull() ([]int, float64) {
	s0 := collectPrefix(ds.d0, ds.m)
	s1 := collectPrefix(ds.d1, ds.m)
	combined := append(append([]kv{}, s0...), s1...)

	selected := combined
	if len(combined) > ds.m {
		sort.Slice(combined, func(i, j int) bool {
			if combined[i].value != combined[j].value {
				return combined[i].value < combined[j].value
			}
			return combined[i].key < combined[j].key
		})
		selected = combined[:ds.m]
	}

	keys := make([]int, 0, len(selected))
	for _, pair := range selected {
		keys = append(keys, pair.key)
		if loc, ok := ds.keyLoc[pair.key]; ok {
			ds.delete(pair.key, loc)
		}
	}

	if ds.Empty() {
		return keys, ds.b
	}
	return keys, ds.minRemainingValue()
}

func (ds *PartialOrderDS) minRemainingValue() float64 {
	min := Inf
	for _, seq := range []*list.List{ds.d0, ds.d1} {
		for e := seq.Front(); e != nil; e = e.Next() {
			elems := e.Value.(*block).elements
			if elems.Len() == 0 {
				continue
			}
			for ke := elems.Front(); ke != nil; ke = ke.Next() {
				if v := ke.Value.(kv).value; v < min {
					min = v
				}
			}
			break
		}
	}
	if min == Inf {
		return ds.b
	}
	return min
}
