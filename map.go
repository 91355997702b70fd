package automaton

import (
	"iter"
	"slices"
)

// Hashable A key usable in HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap A hash table keyed by Hashable values. Subset construction uses it to find the state already
// assigned to a set of states; lookups may use a different IntSet implementation than the stored key as
// long as Hash and Equals agree. Not safe for concurrent use.
type HashMap[T any] struct {
	buckets     [][]hashEntry[T]
	size        int
	mask        uint64
	loadFactory float64
}

// hashEntry keeps the key's hash so that resizing and probing do not recompute it.
type hashEntry[T any] struct {
	hash  uint64
	key   Hashable
	value T
}

type optionsHashMap struct {
	capacity    int
	loadFactory float64
}

type OptionsHashMap func(hashMap *optionsHashMap)

// WithCapacity Initial number of buckets, rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.capacity = capacity
	}
}

// WithLoadFactory Average bucket length above which the table doubles. Defaults to 0.75.
func WithLoadFactory(loadFactory float64) OptionsHashMap {
	return func(hashMap *optionsHashMap) {
		hashMap.loadFactory = loadFactory
	}
}

func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	opt := &optionsHashMap{capacity: 1, loadFactory: 0.75}
	for _, o := range options {
		o(opt)
	}
	buckets := 1
	for buckets < opt.capacity {
		buckets <<= 1
	}
	return &HashMap[T]{
		buckets:     make([][]hashEntry[T], buckets),
		mask:        uint64(buckets - 1),
		loadFactory: opt.loadFactory,
	}
}

// find returns the bucket of key and the position of key in it, or -1.
func (m *HashMap[T]) find(key Hashable) (hash uint64, bucket uint64, pos int) {
	hash = key.Hash()
	bucket = hash & m.mask
	for i, e := range m.buckets[bucket] {
		if e.hash == hash && e.key.Equals(key) {
			return hash, bucket, i
		}
	}
	return hash, bucket, -1
}

// Set Inserts or replaces the value for key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	hash, bucket, pos := m.find(key)
	if pos >= 0 {
		m.buckets[bucket][pos].value = value
		return
	}
	m.buckets[bucket] = append(m.buckets[bucket], hashEntry[T]{hash: hash, key: key, value: value})
	m.size++
	if float64(m.size) > m.loadFactory*float64(len(m.buckets)) {
		m.resize()
	}
}

// Get Returns the value stored for key.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	_, bucket, pos := m.find(key)
	if pos < 0 {
		var zero T
		return zero, false
	}
	return m.buckets[bucket][pos].value, true
}

// Delete Removes key, if present.
func (m *HashMap[T]) Delete(key Hashable) {
	_, bucket, pos := m.find(key)
	if pos < 0 {
		return
	}
	m.buckets[bucket] = slices.Delete(m.buckets[bucket], pos, pos+1)
	m.size--
}

func (m *HashMap[T]) resize() {
	buckets := make([][]hashEntry[T], len(m.buckets)<<1)
	mask := uint64(len(buckets) - 1)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			buckets[e.hash&mask] = append(buckets[e.hash&mask], e)
		}
	}
	m.buckets = buckets
	m.mask = mask
}

// Size Number of keys.
func (m *HashMap[T]) Size() int {
	return m.size
}

// Iterator Yields every key and value, in no particular order.
func (m *HashMap[T]) Iterator() iter.Seq2[Hashable, T] {
	return func(yield func(Hashable, T) bool) {
		for _, bucket := range m.buckets {
			for _, e := range bucket {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
