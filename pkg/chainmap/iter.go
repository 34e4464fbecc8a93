// Package chainmap provides a fixed-capacity concurrent hash table.
package chainmap

import (
	"fmt"
	"io"
	"strings"
)

// Range iterates over all key-value pairs in bucket order, then chain order.
//
// The callback returns false to stop iteration.
// Note: the bucket lock is held only for that bucket's traversal, so the view
// across buckets is best-effort, not a snapshot. Each individual chain is
// internally consistent.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for i := range t.buckets {
		b := &t.buckets[i]
		b.mu.Lock()
		for e := b.head; e != nil; e = e.next {
			if !fn(e.key, e.val) {
				b.mu.Unlock()
				return
			}
		}
		b.mu.Unlock()
	}
}

// Keys returns all keys currently in the table.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, t.Len())
	t.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// BucketStat describes one bucket's chain.
type BucketStat struct {
	Index  int
	Length int
}

// Stats returns the chain length of every bucket. Summed lengths equal Len()
// when no mutation is in flight.
func (t *Table[K, V]) Stats() []BucketStat {
	stats := make([]BucketStat, len(t.buckets))
	for i := range t.buckets {
		b := &t.buckets[i]
		b.mu.Lock()
		n := 0
		for e := b.head; e != nil; e = e.next {
			n++
		}
		b.mu.Unlock()
		stats[i] = BucketStat{Index: i, Length: n}
	}
	return stats
}

// Dump writes a human-readable bucket listing to w, one line per bucket:
//
//	[1] -> (5,100) -> (9,200)
//
// Each line is rendered under that bucket's lock, so every printed chain is
// internally consistent; like Range, the view across buckets is best-effort.
// The lock is released before writing, so a slow writer never blocks mutators.
func (t *Table[K, V]) Dump(w io.Writer) error {
	for i := range t.buckets {
		b := &t.buckets[i]

		var sb strings.Builder
		fmt.Fprintf(&sb, "[%d] -> ", i)

		b.mu.Lock()
		for e := b.head; e != nil; e = e.next {
			fmt.Fprintf(&sb, "(%v,%v)", e.key, e.val)
			if e.next != nil {
				sb.WriteString(" -> ")
			}
		}
		b.mu.Unlock()

		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
