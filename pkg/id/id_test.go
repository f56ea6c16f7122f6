package id

import "testing"

func TestNewProducesDistinctNonZeroIDs(t *testing.T) {
	a, b := New(), New()
	if a.IsZero() || b.IsZero() {
		t.Fatal("New() must never return the zero id")
	}
	if a == b {
		t.Fatal("two calls to New() collided")
	}
}

func TestParseRoundTripsDashedAndCompact(t *testing.T) {
	want := New()

	parsed, err := Parse(want.String())
	if err != nil {
		t.Fatalf("Parse(dashed): %v", err)
	}
	if parsed != want {
		t.Fatalf("Parse(dashed) = %v, want %v", parsed, want)
	}

	parsed, err = Parse(want.Compact())
	if err != nil {
		t.Fatalf("Parse(compact): %v", err)
	}
	if parsed != want {
		t.Fatalf("Parse(compact) = %v, want %v", parsed, want)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-an-id"); err == nil {
		t.Fatal("expected an error for a malformed id")
	}
}

func TestBytesFromBytesRoundTrip(t *testing.T) {
	want := New()
	got := FromBytes(want.Bytes())
	if got != want {
		t.Fatalf("FromBytes(Bytes()) = %v, want %v", got, want)
	}
}

func TestZeroIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatal("Zero.IsZero() must be true")
	}
	if New().IsZero() {
		t.Fatal("a minted id must not report as zero")
	}
}
