package collation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, 0, Compare(DeriveKey("Alice"), DeriveKey("alice")))
}

func TestDeriveKeyOrdersAlphabetically(t *testing.T) {
	assert.True(t, Compare(DeriveKey("alice"), DeriveKey("bob")) < 0)
	assert.True(t, Compare(DeriveKey("bob"), DeriveKey("alice")) > 0)
}

func TestLowerBoundRank(t *testing.T) {
	keys := []Key{DeriveKey("alice"), DeriveKey("bob"), DeriveKey("carol"), DeriveKey("dave")}
	assert.Equal(t, 2, LowerBoundRank(keys, DeriveKey("carol")))
	assert.Equal(t, 0, LowerBoundRank(keys, DeriveKey("aaron")))
	assert.Equal(t, 4, LowerBoundRank(keys, DeriveKey("zoe")))
}
