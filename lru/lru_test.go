package lru

import (
	"math/rand"
	"testing"
)

// cacheUnderTest is implemented by both variants so the shared test table
// below exercises both with identical scenarios.
type cacheUnderTest[K comparable, V any] interface {
	Has(K) bool
	Get(K) (V, error)
	GetOptional(K) (V, bool)
	Set(K, V) error
	Size() int
	Capacity() int
	Clear()
	ForEach(func(K, V) bool)
}

func newBaselineAny[K comparable, V any](capacity int) cacheUnderTest[K, V] {
	return NewBaseline[K, V](capacity)
}

func newOptimizedAny[K comparable, V any](capacity int) cacheUnderTest[K, V] {
	return NewOptimized[K, V](capacity)
}

func TestCapacityZeroAlwaysFails(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(0)
		if err := c.Set("k", 1); err != ErrCapacityZero {
			t.Fatalf("%s: Set on zero-capacity cache = %v, want ErrCapacityZero", name, err)
		}
		if c.Has("k") {
			t.Fatalf("%s: Has on zero-capacity cache should be false", name)
		}
	}
}

// TestEvictionScenario exercises a capacity 3 cache with
// set(key1,v1), set(key2,v2), set(key3,v3), get(key1), set(key4,v4) — key2
// is evicted; key1, key3, key4 remain.
func TestEvictionScenario(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(3)
		c.Set("key1", 1)
		c.Set("key2", 2)
		c.Set("key3", 3)
		if _, err := c.Get("key1"); err != nil {
			t.Fatalf("%s: Get(key1) failed: %v", name, err)
		}
		c.Set("key4", 4)

		if c.Has("key2") {
			t.Fatalf("%s: key2 should have been evicted", name)
		}
		for _, k := range []string{"key1", "key3", "key4"} {
			if !c.Has(k) {
				t.Fatalf("%s: %s should still be present", name, k)
			}
		}
		if c.Size() != 3 {
			t.Fatalf("%s: Size() = %d, want 3", name, c.Size())
		}
	}
}

func TestGetOptionalMissHit(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(2)
		if _, ok := c.GetOptional("missing"); ok {
			t.Fatalf("%s: GetOptional(missing) should miss", name)
		}
		c.Set("present", 42)
		v, ok := c.GetOptional("present")
		if !ok || v != 42 {
			t.Fatalf("%s: GetOptional(present) = (%v,%v), want (42,true)", name, v, ok)
		}
	}
}

func TestSetIdempotentOnRepeatedGet(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(4)
		c.Set("a", 1)
		for i := 0; i < 5; i++ {
			v, err := c.Get("a")
			if err != nil || v != 1 {
				t.Fatalf("%s: repeated Get(a) = (%v,%v), want (1,nil)", name, v, err)
			}
		}
	}
}

func TestClearResetsButKeepsCapacity(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(5)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Clear()
		if c.Size() != 0 {
			t.Fatalf("%s: Size() after Clear = %d, want 0", name, c.Size())
		}
		if c.Capacity() != 5 {
			t.Fatalf("%s: Capacity() after Clear = %d, want 5", name, c.Capacity())
		}
		if c.Has("a") {
			t.Fatalf("%s: Has(a) after Clear should be false", name)
		}
		if err := c.Set("c", 3); err != nil {
			t.Fatalf("%s: Set after Clear failed: %v", name, err)
		}
	}
}

func TestForEachOrderIsMRUToLRU(t *testing.T) {
	for name, ctor := range map[string]func(int) cacheUnderTest[string, int]{
		"baseline":  newBaselineAny[string, int],
		"optimized": newOptimizedAny[string, int],
	} {
		c := ctor(3)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Set("c", 3)
		c.Get("a") // promote a to MRU: order should now be a, c, b

		var order []string
		c.ForEach(func(k string, v int) bool {
			order = append(order, k)
			return true
		})
		want := []string{"a", "c", "b"}
		if len(order) != len(want) {
			t.Fatalf("%s: ForEach order = %v, want %v", name, order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("%s: ForEach order = %v, want %v", name, order, want)
			}
		}
	}
}

func TestBaselineGetRefReflectsMutation(t *testing.T) {
	c := NewBaseline[string, int](2)
	c.Set("a", 1)
	ref, err := c.GetRef("a")
	if err != nil {
		t.Fatalf("GetRef(a): %v", err)
	}
	*ref = 99
	v, _ := c.Get("a")
	if v != 99 {
		t.Fatalf("Get(a) after GetRef mutation = %d, want 99", v)
	}
}

func TestOptimizedGetRefReflectsMutation(t *testing.T) {
	c := NewOptimized[string, int](2)
	c.Set("a", 1)
	ref, err := c.GetRef("a")
	if err != nil {
		t.Fatalf("GetRef(a): %v", err)
	}
	*ref = 99
	v, _ := c.Get("a")
	if v != 99 {
		t.Fatalf("Get(a) after GetRef mutation = %d, want 99", v)
	}
}

// TestStressAgainstBaselineReference drives both variants through the same
// random operation sequence and checks their externally observable state
// (presence, size) agrees throughout — the optimized variant's arena and
// Robin-Hood bookkeeping must never diverge from the textbook baseline.
func TestStressAgainstBaselineReference(t *testing.T) {
	const capacity = 37
	baseline := NewBaseline[int, int](capacity)
	optimized := NewOptimized[int, int](capacity)
	rng := rand.New(rand.NewSource(2024))

	for i := 0; i < 50000; i++ {
		key := rng.Intn(200)
		switch rng.Intn(3) {
		case 0, 1:
			val := rng.Intn(1_000_000)
			baseline.Set(key, val)
			optimized.Set(key, val)
		case 2:
			bv, berr := baseline.Get(key)
			ov, oerr := optimized.Get(key)
			if (berr == nil) != (oerr == nil) {
				t.Fatalf("iter %d: Get(%d) presence mismatch: baseline=%v optimized=%v", i, key, berr, oerr)
			}
			if berr == nil && bv != ov {
				t.Fatalf("iter %d: Get(%d) = baseline %d, optimized %d", i, key, bv, ov)
			}
		}

		if baseline.Size() != optimized.Size() {
			t.Fatalf("iter %d: size mismatch: baseline=%d optimized=%d", i, baseline.Size(), optimized.Size())
		}
	}

	var baseKeys, optKeys []int
	baseline.ForEach(func(k, v int) bool { baseKeys = append(baseKeys, k); return true })
	optimized.ForEach(func(k, v int) bool { optKeys = append(optKeys, k); return true })
	if len(baseKeys) != len(optKeys) {
		t.Fatalf("final MRU order length mismatch: baseline=%d optimized=%d", len(baseKeys), len(optKeys))
	}
	for i := range baseKeys {
		if baseKeys[i] != optKeys[i] {
			t.Fatalf("final MRU order diverged at position %d: baseline=%d optimized=%d", i, baseKeys[i], optKeys[i])
		}
	}
}
