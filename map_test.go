package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// collidingKey hashes every value of the same parity to the same bucket.
type collidingKey int

func (k collidingKey) Hash() uint64 {
	return uint64(k % 2)
}

func (k collidingKey) Equals(other Hashable) bool {
	o, ok := other.(collidingKey)
	return ok && k == o
}

func stateSetOf(states ...int) *StateSet {
	s := NewStateSet()
	for _, state := range states {
		s.Incr(state)
	}
	return s
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(8))
		key := stateSetOf(1, 3).Freeze(7)
		hm.Set(key, 7)

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, 7, val)

		_, exists = hm.Get(stateSetOf(1, 2).Freeze(0))
		assert.False(t, exists)
	})

	t.Run("LookupByStateSet", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(8))
		hm.Set(stateSetOf(4, 2, 9).Freeze(3), 3)

		val, exists := hm.Get(stateSetOf(9, 4, 2))
		assert.True(t, exists)
		assert.Equal(t, 3, val)
	})

	t.Run("EmptySet", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(8))
		hm.Set(NewStateSet().Freeze(5), 5)

		val, exists := hm.Get(NewStateSet())
		assert.True(t, exists)
		assert.Equal(t, 5, val)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(8))
		hm.Set(stateSetOf(1).Freeze(1), 1)
		hm.Set(stateSetOf(1).Freeze(2), 2)

		val, exists := hm.Get(stateSetOf(1))
		assert.True(t, exists)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, hm.Size())
	})

	t.Run("DeleteKey", func(t *testing.T) {
		hm := NewHashMap[int](WithCapacity(8))
		key := stateSetOf(1).Freeze(1)
		hm.Set(key, 1)

		hm.Delete(key)
		assert.Equal(t, 0, hm.Size())

		hm.Delete(stateSetOf(2).Freeze(2))
		assert.Equal(t, 0, hm.Size())
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	hm.Set(collidingKey(1), "one")
	hm.Set(collidingKey(3), "three")
	hm.Set(collidingKey(2), "two")

	assert.Equal(t, 3, hm.Size())

	t.Run("GetCollisionKeys", func(t *testing.T) {
		val, exists := hm.Get(collidingKey(1))
		assert.True(t, exists)
		assert.Equal(t, "one", val)

		val, exists = hm.Get(collidingKey(3))
		assert.True(t, exists)
		assert.Equal(t, "three", val)
	})

	t.Run("DeleteCollisionKey", func(t *testing.T) {
		hm.Delete(collidingKey(1))
		assert.Equal(t, 2, hm.Size())
		_, exists := hm.Get(collidingKey(1))
		assert.False(t, exists)

		val, exists := hm.Get(collidingKey(3))
		assert.True(t, exists)
		assert.Equal(t, "three", val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		hm.Set(stateSetOf(i, i+100).Freeze(i), i)
	}

	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(stateSetOf(i+100, i))
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}

	count := 0
	for range hm.Iterator() {
		count++
	}
	assert.Equal(t, 13, count)
}

func TestEdgeCases(t *testing.T) {
	t.Run("NilKey", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic with nil key")
			}
		}()

		hm.Set(nil, "value")
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})

	t.Run("CapacityRoundedUp", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(5), WithLoadFactory(0.5))
		assert.Equal(t, 8, len(hm.buckets))
		assert.Equal(t, 0.5, hm.loadFactory)
	})
}
