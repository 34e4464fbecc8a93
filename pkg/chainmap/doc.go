// Package chainmap provides a fixed-capacity concurrent hash table.
//
// This package implements a chained hash table with per-bucket locking:
//
//   - Fixed Layout: The bucket count is set at construction and never changes
//   - Fine-grained Locking: One mutex per bucket, no global lock on the hot path
//   - Ordered Chains: Entries within a bucket keep insertion order (append at tail)
//   - Diagnostics: Size and operation counters, per-bucket stats, text dump
//
// Usage:
//
//	t, err := chainmap.New[int64, int64](1024)
//	if err != nil {
//		return err
//	}
//	t.Put(5, 100)
//	val, ok := t.Get(5)
//
// Thread Safety:
//
// All operations are safe for concurrent use. An operation takes exactly one
// bucket lock, releases it before touching the aggregate counters, and never
// nests locks, so no lock-ordering deadlock is possible. The size and
// operation counters are decoupled from bucket critical sections and are
// eventually consistent with respect to any single mutation; they are exact
// whenever no mutation is in flight.
package chainmap
