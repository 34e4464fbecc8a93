package chainmap

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// newIntTable builds a table with the identity integer hasher so bucket
// placement is predictable in tests.
func newIntTable(t *testing.T, capacity int) *Table[int64, int64] {
	t.Helper()
	tbl, err := New[int64, int64](capacity, WithHasher[int64, int64](IntHasher[int64]))
	if err != nil {
		t.Fatalf("New(%d) failed: %v", capacity, err)
	}
	return tbl
}

func TestNew(t *testing.T) {
	tbl, err := New[int64, int64](16)
	if err != nil {
		t.Fatalf("New(16) failed: %v", err)
	}
	if tbl.Cap() != 16 {
		t.Errorf("Cap() = %d, want 16", tbl.Cap())
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	if tbl.Ops() != 0 {
		t.Errorf("Ops() = %d, want 0", tbl.Ops())
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		t.Run(fmt.Sprintf("capacity=%d", capacity), func(t *testing.T) {
			_, err := New[int64, int64](capacity)
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
			}
		})
	}
}

func TestPutAndGet(t *testing.T) {
	tbl := newIntTable(t, 8)

	if _, existed := tbl.Put(1, 10); existed {
		t.Error("Put(1, 10) on empty table reported an existing key")
	}
	if _, existed := tbl.Put(2, 20); existed {
		t.Error("Put(2, 20) reported an existing key")
	}

	val, ok := tbl.Get(1)
	if !ok || val != 10 {
		t.Errorf("Get(1) = (%d, %v), want (10, true)", val, ok)
	}
	val, ok = tbl.Get(2)
	if !ok || val != 20 {
		t.Errorf("Get(2) = (%d, %v), want (20, true)", val, ok)
	}

	if _, ok := tbl.Get(3); ok {
		t.Error("Get(3) on absent key reported found")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestPut_UpdateInPlace(t *testing.T) {
	tbl := newIntTable(t, 8)

	tbl.Put(7, 70)
	prev, existed := tbl.Put(7, 71)
	if !existed || prev != 70 {
		t.Errorf("Put(7, 71) = (%d, %v), want (70, true)", prev, existed)
	}

	val, ok := tbl.Get(7)
	if !ok || val != 71 {
		t.Errorf("Get(7) = (%d, %v), want (71, true)", val, ok)
	}

	// An update is not an insert.
	if tbl.Len() != 1 {
		t.Errorf("Len() after update = %d, want 1", tbl.Len())
	}
}

func TestDelete(t *testing.T) {
	tbl := newIntTable(t, 4)

	// Keys 1, 5, 9 all land in bucket 1 at capacity 4, forming a chain
	// 1 -> 5 -> 9 in insertion order.
	tbl.Put(1, 100)
	tbl.Put(5, 500)
	tbl.Put(9, 900)

	tests := []struct {
		name    string
		key     int64
		wantVal int64
		wantOK  bool
	}{
		{"middle of chain", 5, 500, true},
		{"head of chain", 1, 100, true},
		{"last remaining", 9, 900, true},
		{"already deleted", 9, 0, false},
		{"never present", 13, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := tbl.Delete(tt.key)
			if ok != tt.wantOK || val != tt.wantVal {
				t.Errorf("Delete(%d) = (%d, %v), want (%d, %v)",
					tt.key, val, ok, tt.wantVal, tt.wantOK)
			}
		})
	}

	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
}

func TestDelete_EmptyBucket(t *testing.T) {
	tbl := newIntTable(t, 4)

	if _, ok := tbl.Delete(2); ok {
		t.Error("Delete on empty bucket reported a removal")
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	// Misses still count as operations.
	if tbl.Ops() != 1 {
		t.Errorf("Ops() = %d, want 1", tbl.Ops())
	}
}

func TestDelete_SpliceKeepsChain(t *testing.T) {
	tbl := newIntTable(t, 4)

	tbl.Put(1, 10)
	tbl.Put(5, 50)
	tbl.Put(9, 90)

	if _, ok := tbl.Delete(5); !ok {
		t.Fatal("Delete(5) missed")
	}

	// Predecessor and successor must still be linked.
	if val, ok := tbl.Get(1); !ok || val != 10 {
		t.Errorf("Get(1) = (%d, %v), want (10, true)", val, ok)
	}
	if val, ok := tbl.Get(9); !ok || val != 90 {
		t.Errorf("Get(9) = (%d, %v), want (90, true)", val, ok)
	}
}

// TestWorkedExample walks the canonical collision example: capacity 4,
// keys 5 and 9 share bucket 1.
func TestWorkedExample(t *testing.T) {
	tbl := newIntTable(t, 4)

	if _, existed := tbl.Put(5, 100); existed {
		t.Error("Put(5, 100) reported an existing key")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}

	if _, existed := tbl.Put(9, 200); existed {
		t.Error("Put(9, 200) reported an existing key")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}

	stats := tbl.Stats()
	if stats[1].Length != 2 {
		t.Errorf("bucket 1 chain length = %d, want 2 (keys 5 and 9 collide)", stats[1].Length)
	}

	if val, ok := tbl.Get(9); !ok || val != 200 {
		t.Errorf("Get(9) = (%d, %v), want (200, true)", val, ok)
	}

	if val, ok := tbl.Delete(5); !ok || val != 100 {
		t.Errorf("Delete(5) = (%d, %v), want (100, true)", val, ok)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}

	if _, ok := tbl.Get(5); ok {
		t.Error("Get(5) after delete reported found")
	}

	// 2 puts + 2 gets + 1 delete, hits and misses alike.
	if tbl.Ops() != 5 {
		t.Errorf("Ops() = %d, want 5", tbl.Ops())
	}
}

func TestOps_CountsMisses(t *testing.T) {
	tbl := newIntTable(t, 4)

	tbl.Get(1)    // miss
	tbl.Put(1, 1) // insert
	tbl.Get(1)    // hit
	tbl.Delete(2) // miss
	tbl.Delete(1) // hit

	if tbl.Ops() != 5 {
		t.Errorf("Ops() = %d, want 5", tbl.Ops())
	}
}

func TestClear(t *testing.T) {
	tbl := newIntTable(t, 4)

	for i := int64(0); i < 10; i++ {
		tbl.Put(i, i*10)
	}
	opsBefore := tbl.Ops()

	tbl.Clear()

	if tbl.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tbl.Len())
	}
	if tbl.Ops() != opsBefore {
		t.Errorf("Ops() after Clear = %d, want %d (Clear is not an operation)", tbl.Ops(), opsBefore)
	}
	for i := int64(0); i < 10; i++ {
		if _, ok := tbl.Get(i); ok {
			t.Errorf("Get(%d) after Clear reported found", i)
		}
	}

	// The table stays usable after Clear.
	tbl.Put(3, 33)
	if val, ok := tbl.Get(3); !ok || val != 33 {
		t.Errorf("Get(3) = (%d, %v), want (33, true)", val, ok)
	}
}

func TestConcurrent_DistinctKeys(t *testing.T) {
	const workers = 32
	const perWorker = 200

	tbl := newIntTable(t, 64)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := int64(w*perWorker + i)
				tbl.Put(key, key*2)
			}
		}(w)
	}
	wg.Wait()

	if tbl.Len() != workers*perWorker {
		t.Errorf("Len() = %d, want %d", tbl.Len(), workers*perWorker)
	}
	if tbl.Ops() != workers*perWorker {
		t.Errorf("Ops() = %d, want %d", tbl.Ops(), workers*perWorker)
	}
	for key := int64(0); key < workers*perWorker; key++ {
		if val, ok := tbl.Get(key); !ok || val != key*2 {
			t.Fatalf("Get(%d) = (%d, %v), want (%d, true)", key, val, ok, key*2)
		}
	}
}

func TestConcurrent_SameKey(t *testing.T) {
	tbl := newIntTable(t, 4)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tbl.Put(42, 1)
	}()
	go func() {
		defer wg.Done()
		tbl.Put(42, 2)
	}()
	wg.Wait()

	val, ok := tbl.Get(42)
	if !ok {
		t.Fatal("Get(42) reported not found after two concurrent puts")
	}
	if val != 1 && val != 2 {
		t.Errorf("Get(42) = %d, want 1 or 2 (never a torn value)", val)
	}
	// Exactly one insert, regardless of interleaving.
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestConcurrent_PutDeleteChurn(t *testing.T) {
	const workers = 16
	const perWorker = 100

	tbl := newIntTable(t, 8)

	// Each worker owns a disjoint key range, inserts all of it, then
	// deletes the even half. The final state is deterministic even though
	// workers contend on the same (few) buckets.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := int64(w * perWorker)
			for i := int64(0); i < perWorker; i++ {
				tbl.Put(base+i, base+i)
			}
			for i := int64(0); i < perWorker; i += 2 {
				if _, ok := tbl.Delete(base + i); !ok {
					t.Errorf("Delete(%d) missed a key this worker inserted", base+i)
				}
			}
		}(w)
	}
	wg.Wait()

	want := workers * perWorker / 2
	if tbl.Len() != want {
		t.Errorf("Len() = %d, want %d", tbl.Len(), want)
	}
	if tbl.Ops() != uint64(workers*perWorker+workers*perWorker/2) {
		t.Errorf("Ops() = %d, want %d", tbl.Ops(), workers*perWorker+workers*perWorker/2)
	}

	// size must agree with the actual chains once quiescent.
	total := 0
	for _, s := range tbl.Stats() {
		total += s.Length
	}
	if total != tbl.Len() {
		t.Errorf("sum of chain lengths = %d, Len() = %d", total, tbl.Len())
	}
}

func TestNegativeKeys(t *testing.T) {
	tbl := newIntTable(t, 4)

	tbl.Put(-1, 11)
	tbl.Put(-5, 55)

	if val, ok := tbl.Get(-1); !ok || val != 11 {
		t.Errorf("Get(-1) = (%d, %v), want (11, true)", val, ok)
	}
	if val, ok := tbl.Delete(-5); !ok || val != 55 {
		t.Errorf("Delete(-5) = (%d, %v), want (55, true)", val, ok)
	}
}
