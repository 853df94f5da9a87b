package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// BuildQuery serializes a flat parameter map into a URL query string.
// Nil values are dropped. Slice values expand into repeated key=value pairs
// preserving element order. Keys and values are percent-encoded. Keys are
// emitted in sorted order so the output is deterministic.
// Returns "" for an empty result, otherwise a string starting with "?".
func BuildQuery(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairs []string
	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}
		ek := url.QueryEscape(k)
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				elem := rv.Index(i).Interface()
				if elem == nil {
					continue
				}
				pairs = append(pairs, ek+"="+url.QueryEscape(fmt.Sprint(elem)))
			}
			continue
		}
		pairs = append(pairs, ek+"="+url.QueryEscape(fmt.Sprint(v)))
	}

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}
