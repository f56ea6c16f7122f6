package jsonstring

import "testing"

func TestNeedsEscape(t *testing.T) {
	cases := map[string]bool{
		"plain text":    false,
		`has "quotes"`:  true,
		`back\slash`:    true,
		"a/b":           true,
		"tab\there":     true,
		"newline\nhere": true,
		"\x01":          true,
		"\x7f":          true,
	}
	for s, want := range cases {
		if got := NeedsEscape(s); got != want {
			t.Errorf("NeedsEscape(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestReadyStringPreservesOriginal(t *testing.T) {
	for _, s := range []string{"plain", `has "quotes" and \slashes\`, "tab\there"} {
		if got := New(s).String(); got != s {
			t.Errorf("New(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestQuotedStringNoEscapeNeeded(t *testing.T) {
	got := New("hello world").QuotedString()
	want := "\"hello world\""
	if got != want {
		t.Fatalf("QuotedString() = %q, want %q", got, want)
	}
}

func TestQuotedStringEscapesSpecialBytes(t *testing.T) {
	got := New("a\"b\\c/d\ne\tf").QuotedString()
	want := "\"a\\\"b\\\\c\\/d\\ne\\tf\""
	if got != want {
		t.Fatalf("QuotedString() = %q, want %q", got, want)
	}
}

func TestQuotedStringEscapesControlBytes(t *testing.T) {
	got := New("\x01").QuotedString()
	want := "\"\\u0001\""
	if got != want {
		t.Fatalf("QuotedString() = %q, want %q", got, want)
	}
}
