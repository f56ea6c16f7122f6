package pool

import "testing"

func TestAddAssignsIncreasingIndices(t *testing.T) {
	p := New[string](KindUser)
	h1 := p.Add("a")
	h2 := p.Add("b")

	if h1.Kind != KindUser || h2.Kind != KindUser {
		t.Fatal("handles must carry the pool's kind")
	}
	if h1.Index != 0 || h2.Index != 1 {
		t.Fatalf("got indices %d, %d, want 0, 1", h1.Index, h2.Index)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
}

func TestRemoveFreesSlotForReuse(t *testing.T) {
	p := New[string](KindThread)
	h1 := p.Add("a")
	p.Add("b")
	p.Remove(h1)

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
	if _, ok := p.Get(h1); ok {
		t.Fatal("Get() on a removed handle should report not-found")
	}

	h3 := p.Add("c")
	if h3.Index != h1.Index {
		t.Fatalf("Add() after Remove() should reuse index %d, got %d", h1.Index, h3.Index)
	}
	if v, ok := p.Get(h3); !ok || v != "c" {
		t.Fatalf("Get(h3) = %v, %v, want c, true", v, ok)
	}
}

func TestGetOutOfRangeHandle(t *testing.T) {
	p := New[string](KindTag)
	if _, ok := p.Get(Handle{Kind: KindTag, Index: 99}); ok {
		t.Fatal("Get() on an out-of-range handle should report not-found")
	}
}

func TestMustGetPanicsOnMissingHandle(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustGet() on a missing handle should panic")
		}
	}()
	p := New[string](KindCategory)
	p.MustGet(Handle{Kind: KindCategory, Index: 0})
}

func TestEachVisitsOnlyLiveSlots(t *testing.T) {
	p := New[string](KindComment)
	h1 := p.Add("a")
	p.Add("b")
	p.Remove(h1)

	seen := map[uint32]string{}
	p.Each(func(h Handle, v string) {
		seen[h.Index] = v
	})
	if len(seen) != 1 || seen[1] != "b" {
		t.Fatalf("Each() visited %v, want only index 1 -> b", seen)
	}
}

func TestZeroHandleIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatal("Zero.IsZero() must be true")
	}
	h := New[string](KindUser).Add("a")
	if h.IsZero() {
		t.Fatal("a handle returned by Add() must not be the zero handle")
	}
}

func TestKindString(t *testing.T) {
	if KindUser.String() != "user" {
		t.Fatalf("KindUser.String() = %q, want %q", KindUser.String(), "user")
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("Kind(99).String() = %q, want %q", Kind(99).String(), "unknown")
	}
}
