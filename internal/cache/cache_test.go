// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		capacity int
		want     int
	}{
		{0, DefaultCapacity},
		{-3, DefaultCapacity},
		{8, 8},
	}
	for _, tt := range tests {
		c := New[int](tt.capacity)
		if c.capacity != tt.want {
			t.Errorf("New(%d) capacity = %d, want %d", tt.capacity, c.capacity, tt.want)
		}
		if c.Len() != 0 {
			t.Errorf("New(%d) Len() = %d, want 0", tt.capacity, c.Len())
		}
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[int](4)
	created := 0
	create := func() int {
		created++
		return 42
	}

	if got := c.GetOrCreate("a", create); got != 42 {
		t.Errorf("GetOrCreate() = %d, want 42", got)
	}
	if got := c.GetOrCreate("a", create); got != 42 {
		t.Errorf("second GetOrCreate() = %d, want 42", got)
	}
	if created != 1 {
		t.Errorf("create called %d times, want 1", created)
	}

	v, ok := c.Get("a")
	if !ok || v != 42 {
		t.Errorf("Get(a) = %d, %v, want 42, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a value")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 2 || s.Len != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 2 misses, 1 entry", s)
	}
}

// sameShardKeys returns n distinct keys that hash to the same shard.
func sameShardKeys(c *Cache[int], n int) []string {
	first := c.shard("k0")
	keys := []string{"k0"}
	for i := 1; len(keys) < n; i++ {
		k := "k" + strconv.Itoa(i)
		if c.shard(k) == first {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2)
	keys := sameShardKeys(c, 3)

	c.GetOrCreate(keys[0], func() int { return 0 })
	c.GetOrCreate(keys[1], func() int { return 1 })
	c.Get(keys[0])
	c.GetOrCreate(keys[2], func() int { return 2 })

	if _, ok := c.Get(keys[1]); ok {
		t.Errorf("%s should have been evicted", keys[1])
	}
	for _, k := range []string{keys[0], keys[2]} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s was evicted", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCapacityBound(t *testing.T) {
	c := New[int](1)
	for i := range 100 {
		c.GetOrCreate(strconv.Itoa(i), func() int { return i })
	}
	s := c.Stats()
	if s.Len > ShardCount {
		t.Errorf("Len() = %d, want at most %d", s.Len, ShardCount)
	}
	if int(s.Evictions)+s.Len != 100 {
		t.Errorf("Evictions + Len = %d, want 100", int(s.Evictions)+s.Len)
	}
}

func TestClear(t *testing.T) {
	c := New[int](4)
	for i := range 10 {
		c.GetOrCreate(strconv.Itoa(i), func() int { return i })
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	if got := c.GetOrCreate("3", func() int { return 30 }); got != 30 {
		t.Errorf("GetOrCreate after Clear = %d, want 30", got)
	}
}

func TestConcurrent(t *testing.T) {
	c := New[int](8)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g + i) % 50)
				want := (g + i) % 50
				if got := c.GetOrCreate(k, func() int { return want }); got != want {
					t.Errorf("GetOrCreate(%s) = %d, want %d", k, got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 8*ShardCount {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func BenchmarkGetOrCreateHit(b *testing.B) {
	c := New[int](0)
	c.GetOrCreate("shadow pass", func() int { return 1 })
	b.ReportAllocs()
	for b.Loop() {
		c.GetOrCreate("shadow pass", func() int { return 1 })
	}
}
