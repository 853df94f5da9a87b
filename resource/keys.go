package resource

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Keys builds the cache key hierarchy for one resource collection:
//
//	<name>                 root, also the invalidation prefix
//	<name>:list:<hash>     one cached page of a filtered listing
//	<name>:detail:<id>     one cached entity
type Keys struct {
	name string
}

// NewKeys creates a key builder for the named collection, e.g. "deals".
func NewKeys(name string) Keys {
	return Keys{name: name}
}

// Root returns the collection's base key.
func (k Keys) Root() string {
	return k.name
}

// Prefix returns the prefix shared by every key of the collection.
func (k Keys) Prefix() string {
	return k.name + ":"
}

// ListPrefix returns the prefix shared by all cached listing pages.
func (k Keys) ListPrefix() string {
	return k.name + ":list:"
}

// List returns the key for a filtered listing page. Filters are reduced to
// a canonical sorted form first, so logically equal filter maps always map
// to the same key regardless of map iteration order.
func (k Keys) List(filters map[string]any) string {
	return k.ListPrefix() + hashFilters(filters)
}

// Detail returns the key for a single entity.
func (k Keys) Detail(id string) string {
	return k.name + ":detail:" + id
}

func hashFilters(filters map[string]any) string {
	if len(filters) == 0 {
		return "all"
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		fmt.Fprintf(&sb, "%v", filters[name])
	}

	return strconv.FormatUint(xxhash.Sum64String(sb.String()), 16)
}
