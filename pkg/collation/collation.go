// Package collation derives the locale-aware sort key stored next to every
// collation-ordered name (user name, thread name, tag name, category name)
// so that ordering comparisons stay byte-lexicographic instead of re-running
// collation on every comparison. Built on golang.org/x/text/collate, the
// pack's pure-Go analogue of the ICU collation the original implementation
// used.
package collation

import (
	"bytes"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key is a precomputed collation sort key. Keys compare byte-lexicographically.
type Key []byte

// Compare orders two keys the way their source strings collate.
func Compare(a, b Key) int {
	return bytes.Compare(a, b)
}

var (
	collator = collate.New(language.Und, collate.Loose)
	bufPool  = sync.Pool{New: func() any { return new(collate.Buffer) }}
)

// DeriveKey computes the primary-strength (case- and accent-insensitive)
// collation key for s. s should already be NFC-normalized by the caller
// (the repository façade normalizes names before they reach storage); this
// function also accepts non-normalized input defensively.
//
// Per spec: if key derivation ever yields an empty key for non-empty input
// (the only failure shape the pure-Go table can produce, since it never
// returns an error), DeriveKey falls back to the raw NFC-normalized UTF-8
// bytes. That fallback orders differently than the successful path and is
// not guaranteed stable across locales; it exists so an unorderable name
// still has *a* position rather than being rejected outright.
func DeriveKey(s string) Key {
	normalized := norm.NFC.String(s)

	buf := bufPool.Get().(*collate.Buffer)
	defer func() {
		buf.Reset()
		bufPool.Put(buf)
	}()

	key := collator.KeyFromString(buf, normalized)
	if len(key) == 0 && len(normalized) > 0 {
		return Key(append([]byte(nil), normalized...))
	}
	return Key(append([]byte(nil), key...))
}

// LowerBoundRank returns the number of elements in keys (assumed sorted
// ascending) that compare strictly less than target — the zero-based
// position of the lower bound, used by the "search by name" paging
// primitive on the user and thread name orderings.
func LowerBoundRank(keys []Key, target Key) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := (lo + hi) / 2
		if Compare(keys[mid], target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
