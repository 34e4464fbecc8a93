// Package chainmap provides a fixed-capacity concurrent hash table.
package chainmap

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrInvalidCapacity is returned by New when capacity is not positive.
var ErrInvalidCapacity = errors.New("chainmap: capacity must be positive")

// entry is a single key/value pair in a bucket chain. An entry belongs to
// exactly one chain; unlinking it under the bucket lock transfers it out of
// the table.
type entry[K comparable, V any] struct {
	key  K
	val  V
	next *entry[K, V]
}

// bucket owns the head of its chain. The mutex guards every read and write
// of the chain, for the full duration of the traversal.
type bucket[K comparable, V any] struct {
	mu   sync.Mutex
	head *entry[K, V]
}

// Table is a fixed-capacity concurrent hash table with chained buckets.
type Table[K comparable, V any] struct {
	buckets []bucket[K, V]
	hash    Hasher[K]

	// Aggregate counters, decoupled from bucket critical sections.
	// size counts distinct live keys; ops counts completed Get/Put/Delete
	// calls, hit or miss.
	size atomic.Int64
	ops  atomic.Uint64
}

// Option configures a Table.
type Option[K comparable, V any] func(*Table[K, V])

// WithHasher sets the hash function used to pick a bucket for a key.
func WithHasher[K comparable, V any](h Hasher[K]) Option[K, V] {
	return func(t *Table[K, V]) {
		t.hash = h
	}
}

// New creates a table with exactly capacity buckets, all empty.
// Capacity is fixed for the lifetime of the table; there is no resizing or
// rehashing, so chains grow without bound under key skew.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Table[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	t := &Table[K, V]{
		buckets: make([]bucket[K, V], capacity),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.hash == nil {
		t.hash = defaultHasher[K]()
	}

	return t, nil
}

// bucketFor returns the bucket owning key: index = hash(key) mod capacity.
func (t *Table[K, V]) bucketFor(key K) *bucket[K, V] {
	return &t.buckets[t.hash(key)%uint64(len(t.buckets))]
}

// Get retrieves the value stored under key.
// The second return value reports whether the key was present.
func (t *Table[K, V]) Get(key K) (V, bool) {
	b := t.bucketFor(key)

	var (
		val V
		ok  bool
	)

	b.mu.Lock()
	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			val, ok = e.val, true
			break
		}
	}
	b.mu.Unlock()

	t.ops.Add(1)
	return val, ok
}

// Put stores value under key. If the key was already present its value is
// overwritten in place and the previous value is returned with true; size is
// unchanged. Otherwise a new entry is appended at the tail of the chain and
// the zero value is returned with false.
func (t *Table[K, V]) Put(key K, value V) (V, bool) {
	b := t.bucketFor(key)

	var (
		prev    V
		existed bool
	)

	b.mu.Lock()
	if b.head == nil {
		b.head = &entry[K, V]{key: key, val: value}
	} else {
		for e := b.head; ; e = e.next {
			if e.key == key {
				prev, existed = e.val, true
				e.val = value
				break
			}
			if e.next == nil {
				e.next = &entry[K, V]{key: key, val: value}
				break
			}
		}
	}
	b.mu.Unlock()

	if !existed {
		t.size.Add(1)
	}
	t.ops.Add(1)
	return prev, existed
}

// Delete removes the entry stored under key and returns its value.
// The second return value reports whether the key was present.
func (t *Table[K, V]) Delete(key K) (V, bool) {
	// The operation is counted before the bucket section, hit or miss.
	t.ops.Add(1)

	b := t.bucketFor(key)

	var (
		removed V
		ok      bool
	)

	b.mu.Lock()
	switch {
	case b.head == nil:
		// Empty bucket, nothing to do.
	case b.head.key == key:
		removed, ok = b.head.val, true
		b.head = b.head.next
	default:
		// Scan one entry ahead so the predecessor can splice.
		for e := b.head; e.next != nil; e = e.next {
			if e.next.key == key {
				removed, ok = e.next.val, true
				e.next = e.next.next
				break
			}
		}
	}
	b.mu.Unlock()

	if ok {
		t.size.Add(-1)
	}
	return removed, ok
}

// Len returns the size counter: the number of distinct live keys.
// Concurrent mutations may not be reflected yet; the value is exact when no
// mutation is in flight.
func (t *Table[K, V]) Len() int {
	return int(t.size.Load())
}

// Ops returns the number of completed Get, Put and Delete calls.
func (t *Table[K, V]) Ops() uint64 {
	return t.ops.Load()
}

// Cap returns the fixed bucket count.
func (t *Table[K, V]) Cap() int {
	return len(t.buckets)
}

// Clear unlinks every chain and resets the size counter. The operation
// counter is preserved. Unlike a full teardown, Clear is safe to call
// concurrently with other operations; each bucket is emptied under its own
// lock and unlinked entries are reclaimed by the garbage collector.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		b := &t.buckets[i]

		b.mu.Lock()
		n := 0
		for e := b.head; e != nil; e = e.next {
			n++
		}
		b.head = nil
		b.mu.Unlock()

		if n > 0 {
			t.size.Add(int64(-n))
		}
	}
}
