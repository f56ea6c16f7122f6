package index

import (
	"testing"

	"github.com/forumkit/forumcore/pkg/pool"
)

func TestUniqueRejectsDuplicateKey(t *testing.T) {
	u := NewUnique[string]()
	h1 := pool.Handle{Kind: pool.KindUser, Index: 0}
	h2 := pool.Handle{Kind: pool.KindUser, Index: 1}

	if !u.Insert("frank", h1) {
		t.Fatal("first Insert() should succeed")
	}
	if u.Insert("frank", h2) {
		t.Fatal("second Insert() with the same key should fail")
	}
	if got, ok := u.Get("frank"); !ok || got != h1 {
		t.Fatalf("Get(\"frank\") = %v, %v, want %v, true", got, ok, h1)
	}
	if u.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", u.Len())
	}
}

func TestUniqueRemove(t *testing.T) {
	u := NewUnique[string]()
	h := pool.Handle{Kind: pool.KindUser, Index: 0}
	u.Insert("frank", h)
	u.Remove("frank")

	if u.Contains("frank") {
		t.Fatal("Contains() should be false after Remove()")
	}
	if !u.Insert("frank", h) {
		t.Fatal("Insert() should succeed again after Remove()")
	}
}

func TestOrderedInsertMaintainsSortOrder(t *testing.T) {
	o := NewOrdered[string](func(a, b string) bool { return a < b })
	o.Insert("carol", pool.Handle{Index: 2})
	o.Insert("alice", pool.Handle{Index: 0})
	o.Insert("bob", pool.Handle{Index: 1})

	want := []string{"alice", "bob", "carol"}
	for i, w := range want {
		key, _ := o.At(i)
		if key != w {
			t.Fatalf("At(%d) = %q, want %q", i, key, w)
		}
	}
}

func TestOrderedRemove(t *testing.T) {
	o := NewOrdered[string](func(a, b string) bool { return a < b })
	ha := pool.Handle{Index: 0}
	hb := pool.Handle{Index: 1}
	o.Insert("alice", ha)
	o.Insert("bob", hb)

	if !o.Remove(ha) {
		t.Fatal("Remove() of a present handle should return true")
	}
	if o.Remove(ha) {
		t.Fatal("Remove() of an already-removed handle should return false")
	}
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
}

func TestOrderedPage(t *testing.T) {
	o := NewOrdered[string](func(a, b string) bool { return a < b })
	names := []string{"alice", "bob", "carol", "dave", "erin"}
	for i, n := range names {
		o.Insert(n, pool.Handle{Index: uint32(i)})
	}

	page := o.Page(1, 2)
	if len(page) != 2 || page[0].Index != 1 || page[1].Index != 2 {
		t.Fatalf("Page(1, 2) = %v, want indices [1 2]", page)
	}

	if got := o.Page(100, 10); got != nil {
		t.Fatalf("Page() past the end should return nil, got %v", got)
	}

	all := o.Page(0, 0)
	if len(all) != len(names) {
		t.Fatalf("Page(0, 0) should return every entry, got %d", len(all))
	}
}

func TestOrderedLowerBoundRank(t *testing.T) {
	o := NewOrdered[string](func(a, b string) bool { return a < b })
	for i, n := range []string{"alice", "bob", "carol", "dave"} {
		o.Insert(n, pool.Handle{Index: uint32(i)})
	}

	if got := o.LowerBoundRank("carol"); got != 2 {
		t.Fatalf("LowerBoundRank(carol) = %d, want 2", got)
	}
	if got := o.LowerBoundRank("aaron"); got != 0 {
		t.Fatalf("LowerBoundRank(aaron) = %d, want 0", got)
	}
	if got := o.LowerBoundRank("zoe"); got != 4 {
		t.Fatalf("LowerBoundRank(zoe) = %d, want 4", got)
	}
}

func TestHandleSetAddRemoveContains(t *testing.T) {
	s := NewHandleSet()
	h1 := pool.Handle{Kind: pool.KindThread, Index: 0}
	h2 := pool.Handle{Kind: pool.KindThread, Index: 1}

	if !s.Add(h1) {
		t.Fatal("first Add() should return true")
	}
	if s.Add(h1) {
		t.Fatal("Add() of an already-present handle should return false")
	}
	s.Add(h2)

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains(h1) || !s.Contains(h2) {
		t.Fatal("Contains() should be true for both added handles")
	}

	if !s.Remove(h1) {
		t.Fatal("Remove() of a present handle should return true")
	}
	if s.Remove(h1) {
		t.Fatal("Remove() of an already-removed handle should return false")
	}
	if s.Contains(h1) {
		t.Fatal("Contains() should be false after Remove()")
	}

	slice := s.Slice()
	if len(slice) != 1 || slice[0] != h2 {
		t.Fatalf("Slice() = %v, want [%v]", slice, h2)
	}
}
