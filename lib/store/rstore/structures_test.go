package rstore

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/store"
)

type point struct {
	X int    `json:"x"`
	Y int    `json:"y"`
	L string `json:"label,omitempty"`
}

func TestKeyValueTTL(t *testing.T) {
	m := startServer(t)
	ctx := context.Background()

	kv, err := NewKeyValue[point](ctx, "points", configFor(t, m), nil)
	if err != nil {
		t.Fatalf("NewKeyValue: %v", err)
	}
	defer kv.Close()

	if err := kv.SetTTL(ctx, "short", point{X: 1}, 10*time.Second); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}
	if err := kv.Set(ctx, "forever", point{X: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ttl, ok, err := kv.TTL(ctx, "short")
	if err != nil || !ok || ttl <= 0 || ttl > 10*time.Second {
		t.Errorf("Expected a ttl of at most 10s, got %v (ok=%v, err=%v)", ttl, ok, err)
	}
	if _, ok, err := kv.TTL(ctx, "forever"); err != nil || ok {
		t.Errorf("Expected no ttl for a key set without expiry (ok=%v, err=%v)", ok, err)
	}
	if _, ok, err := kv.TTL(ctx, "missing"); err != nil || ok {
		t.Errorf("Expected no ttl for a missing key (ok=%v, err=%v)", ok, err)
	}

	m.FastForward(11 * time.Second)

	if _, loaded, err := kv.Get(ctx, "short"); err != nil || loaded {
		t.Errorf("Expected key to be expired (loaded=%v, err=%v)", loaded, err)
	}
	if v, loaded, err := kv.Get(ctx, "forever"); err != nil || !loaded || v.X != 2 {
		t.Errorf("Expected key without ttl to survive, got %+v (loaded=%v, err=%v)", v, loaded, err)
	}
}

func TestKeyValueNamespaces(t *testing.T) {
	config := configFor(t, startServer(t))
	ctx := context.Background()

	users, err := NewKeyValue[string](ctx, "user", config, nil)
	if err != nil {
		t.Fatalf("NewKeyValue: %v", err)
	}
	defer users.Close()
	userdata, err := NewKeyValue[string](ctx, "userdata", config, nil)
	if err != nil {
		t.Fatalf("NewKeyValue: %v", err)
	}
	defer userdata.Close()

	_ = users.Set(ctx, "1", "alice")
	_ = userdata.Set(ctx, "1", "blob")

	all, err := users.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all["1"] != "alice" {
		t.Errorf("Expected namespaces not to overlap, got %v", all)
	}

	if err := users.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if v, loaded, _ := userdata.Get(ctx, "1"); !loaded || v != "blob" {
		t.Errorf("Expected Clear to leave other namespaces alone")
	}
}

func TestKeyValueDecodeError(t *testing.T) {
	config := configFor(t, startServer(t))
	ctx := context.Background()

	if err := rawClient(t, config).Set(ctx, "typed:bad", "not json", 0).Err(); err != nil {
		t.Fatalf("Set: %v", err)
	}

	kv, err := NewKeyValue[int](ctx, "typed", config, nil)
	if err != nil {
		t.Fatalf("NewKeyValue: %v", err)
	}
	defer kv.Close()

	if _, _, err := kv.Get(ctx, "bad"); !isCode(err, store.RetCDecode) {
		t.Errorf("Expected decode error, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	l, err := NewList[point](ctx, "points", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	defer l.Close()

	exists, err := l.Exists(ctx)
	if err != nil || exists {
		t.Errorf("Expected a new list not to exist (exists=%v, err=%v)", exists, err)
	}

	input := []point{{X: 1}, {X: 2}, {X: 1}, {X: 3}}
	for _, p := range input {
		if err := l.Set(ctx, p); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	t.Run("Get", func(t *testing.T) {
		tests := []struct {
			index  int64
			want   point
			loaded bool
		}{
			{0, point{X: 1}, true},
			{3, point{X: 3}, true},
			{-1, point{X: 3}, true},
			{4, point{}, false},
			{-10, point{}, false},
		}
		for _, tt := range tests {
			v, loaded, err := l.Get(ctx, tt.index)
			if err != nil {
				t.Fatalf("Get(%d): %v", tt.index, err)
			}
			if loaded != tt.loaded || v != tt.want {
				t.Errorf("Get(%d): expected %+v (loaded=%v), got %+v (loaded=%v)", tt.index, tt.want, tt.loaded, v, loaded)
			}
		}
	})

	t.Run("Count", func(t *testing.T) {
		n, err := l.Count(ctx, point{X: 1})
		if err != nil || n != 2 {
			t.Errorf("Expected 2 occurrences, got %d (err=%v)", n, err)
		}
		ok, err := l.Contains(ctx, point{X: 42})
		if err != nil || ok {
			t.Errorf("Expected list not to contain {42}, got %v (err=%v)", ok, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := l.Delete(ctx, point{X: 1}); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		all, err := l.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll: %v", err)
		}
		if !reflect.DeepEqual(all, []point{{X: 2}, {X: 3}}) {
			t.Errorf("Expected all occurrences to be removed, got %+v", all)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := l.Clear(ctx); err != nil {
			t.Fatalf("Clear: %v", err)
		}
		empty, err := l.IsEmpty(ctx)
		if err != nil || !empty {
			t.Errorf("Expected list to be empty after Clear (empty=%v, err=%v)", empty, err)
		}
	})
}

func TestListCountDynamicValues(t *testing.T) {
	ctx := context.Background()
	l, err := NewList[any](ctx, "dynamic", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	defer l.Close()

	_ = l.Set(ctx, map[string]any{"a": 1})
	_ = l.Set(ctx, map[string]any{"a": 2})

	// ints come back as float64 from json, Count compares in decoded form
	n, err := l.Count(ctx, map[string]any{"a": 1})
	if err != nil || n != 1 {
		t.Errorf("Expected 1 occurrence, got %d (err=%v)", n, err)
	}
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	s, err := NewSet[string](ctx, "tags", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defer s.Close()

	for _, v := range []string{"go", "redis", "go"} {
		if err := s.Set(ctx, v); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	size, err := s.Size(ctx)
	if err != nil || size != 2 {
		t.Errorf("Expected duplicates to collapse to 2 members, got %d (err=%v)", size, err)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	sort.Strings(all)
	if !reflect.DeepEqual(all, []string{"go", "redis"}) {
		t.Errorf("Unexpected members %v", all)
	}

	if ok, _ := s.Exists(ctx, "go"); !ok {
		t.Errorf("Expected go to be a member")
	}
	if err := s.Delete(ctx, "go"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := s.Exists(ctx, "go"); ok {
		t.Errorf("Expected go not to be a member after Delete")
	}
}

func TestSortedSet(t *testing.T) {
	ctx := context.Background()
	z, err := NewSortedSet[string](ctx, "scores", configFor(t, startServer(t)), nil)
	if err != nil {
		t.Fatalf("NewSortedSet: %v", err)
	}
	defer z.Close()

	scores := map[string]float64{"bob": 20, "alice": 10, "carol": 30}
	for member, score := range scores {
		if err := z.Set(ctx, member, score); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	all, err := z.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if !reflect.DeepEqual(all, []string{"alice", "bob", "carol"}) {
		t.Errorf("Expected members ordered by score, got %v", all)
	}

	top, err := z.GetByRank(ctx, -1, -1)
	if err != nil || !reflect.DeepEqual(top, []string{"carol"}) {
		t.Errorf("Expected the highest member, got %v (err=%v)", top, err)
	}

	// updating the score moves the member
	if err := z.Set(ctx, "alice", 40); err != nil {
		t.Fatalf("Set: %v", err)
	}
	score, loaded, err := z.Get(ctx, "alice")
	if err != nil || !loaded || score != 40 {
		t.Errorf("Expected score 40, got %v (loaded=%v, err=%v)", score, loaded, err)
	}

	if _, loaded, err := z.Get(ctx, "dave"); err != nil || loaded {
		t.Errorf("Expected a missing member to be absent (loaded=%v, err=%v)", loaded, err)
	}

	if err := z.Delete(ctx, "bob"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok, _ := z.Exists(ctx, "bob"); ok {
		t.Errorf("Expected bob to be removed")
	}
	if size, _ := z.Size(ctx); size != 2 {
		t.Errorf("Expected size 2, got %d", size)
	}
}

func TestHashSize(t *testing.T) {
	ctx := context.Background()
	h, err := NewHash[int](ctx, "counters", configFor(t, startServer(t)), codec.NewGOBCodec())
	if err != nil {
		t.Fatalf("NewHash: %v", err)
	}
	defer h.Close()

	for i := 0; i < 5; i++ {
		if err := h.Set(ctx, fmt.Sprintf("c%d", i), i); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	size, err := h.Size(ctx)
	if err != nil || size != 5 {
		t.Errorf("Expected 5 fields, got %d (err=%v)", size, err)
	}
	if v, loaded, err := h.Get(ctx, "c3"); err != nil || !loaded || v != 3 {
		t.Errorf("Expected c3=3 through the gob codec, got %d (loaded=%v, err=%v)", v, loaded, err)
	}
}

func TestQueueAndStackShareList(t *testing.T) {
	config := configFor(t, startServer(t))
	ctx := context.Background()

	q, err := NewQueue[int](ctx, "shared", config, nil)
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	defer q.Close()
	s, err := NewStack[int](ctx, "shared", config, nil)
	if err != nil {
		t.Fatalf("NewStack: %v", err)
	}
	defer s.Close()

	for i := 1; i <= 3; i++ {
		_ = q.Set(ctx, i)
	}

	head, _, _ := q.Get(ctx)
	tail, _, _ := s.Get(ctx)
	if head != 1 || tail != 3 {
		t.Errorf("Expected queue to pop the head (1) and stack the tail (3), got %d and %d", head, tail)
	}
	if s.String() != "Stack(name=shared)" {
		t.Errorf("Unexpected string representation %s", s.String())
	}
}

func TestQueueGetManyLargeCount(t *testing.T) {
	config := configFor(t, startServer(t))
	ctx := context.Background()

	q, err := NewQueue[int](ctx, "drain", config, nil)
	if err != nil {
		t.Fatalf("NewQueue: %v", err)
	}
	defer q.Close()

	values, err := q.GetMany(ctx, math.MaxInt)
	if err != nil {
		t.Fatalf("GetMany on empty queue: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Expected no values, got %v", values)
	}

	for i := 1; i <= 3; i++ {
		if err := q.Set(ctx, i); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	values, err = q.GetMany(ctx, math.MaxInt)
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if !reflect.DeepEqual(values, []int{1, 2, 3}) {
		t.Errorf("Expected [1 2 3], got %v", values)
	}
}
