package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysHierarchy(t *testing.T) {
	k := NewKeys("deals")

	assert.Equal(t, "deals", k.Root())
	assert.Equal(t, "deals:", k.Prefix())
	assert.Equal(t, "deals:list:", k.ListPrefix())
	assert.Equal(t, "deals:detail:42", k.Detail("42"))
	assert.Equal(t, "deals:list:all", k.List(nil))
}

func TestListKeyCanonical(t *testing.T) {
	k := NewKeys("deals")

	a := k.List(map[string]any{"category": "spa", "page": 1, "limit": 20})
	b := k.List(map[string]any{"limit": 20, "page": 1, "category": "spa"})
	assert.Equal(t, a, b)

	c := k.List(map[string]any{"category": "food", "page": 1, "limit": 20})
	assert.NotEqual(t, a, c)
}

func TestListKeyDistinguishesPages(t *testing.T) {
	k := NewKeys("orders")
	assert.NotEqual(t,
		k.List(map[string]any{"page": 1}),
		k.List(map[string]any{"page": 2}),
	)
}
