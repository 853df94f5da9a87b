package httpclient

import "math"

// Paginated is the canonical page-based list envelope.
type Paginated struct {
	Items []any
	Page  int
	Limit int
	// Total is -1 when the server did not report a total count.
	Total int64
	// TotalPages is 0 when it cannot be derived.
	TotalPages int
}

// CursorPage is the canonical cursor-based list envelope. An empty
// NextCursor means the end of the collection.
type CursorPage struct {
	Items      []any
	NextCursor string
	PrevCursor string
}

// Extractor normalizes the backend's response envelopes into canonical
// shapes. Implementations must never fail: Data falls back to identity,
// Paginated and Cursor return nil when the shape is unrecognized, leaving
// the final fallback to the caller.
//
// Supplying a custom Extractor via Builder.WithExtractor is the override
// hook for non-standard APIs.
type Extractor interface {
	Data(v any) any
	Paginated(v any) *Paginated
	Cursor(v any) *CursorPage
}

// DefaultExtractor recognizes the envelope shapes the DealGrid API uses,
// tried in priority order:
//
//	Data:      {data: ...} else the raw payload
//	Paginated: {data: [...], meta: {...}} else {items: [...], page, limit, total}
//	Cursor:    {data|items: [...], nextCursor|cursor}
type DefaultExtractor struct{}

var _ Extractor = DefaultExtractor{}

// Data unwraps a {data: ...} envelope, returning the payload unchanged when
// no envelope is present.
func (DefaultExtractor) Data(v any) any {
	if m, ok := v.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			return data
		}
	}
	return v
}

// Paginated shapes a page-based list response, synthesizing page metadata
// when the payload carries a bare items list.
func (DefaultExtractor) Paginated(v any) *Paginated {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	// Enveloped shape: {data: [...], meta: {page, limit, total, totalPages}}
	if data, ok := m["data"]; ok {
		if meta, ok := m["meta"].(map[string]any); ok {
			p := &Paginated{
				Items: asItems(data),
				Page:  intField(meta, "page", 1),
				Limit: intField(meta, "limit", 0),
				Total: int64Field(meta, "total", -1),
			}
			p.TotalPages = intField(meta, "totalPages", derivedTotalPages(p.Total, p.Limit))
			return p
		}
	}

	// Bare items shape: {items: [...], page, limit, total}
	if rawItems, ok := m["items"]; ok {
		items := asItems(rawItems)
		p := &Paginated{
			Items: items,
			Page:  intField(m, "page", 1),
			Limit: intField(m, "limit", len(items)),
			Total: int64Field(m, "total", -1),
		}
		p.TotalPages = intField(m, "totalPages", derivedTotalPages(p.Total, p.Limit))
		return p
	}

	return nil
}

// Cursor shapes a cursor-based list response.
func (DefaultExtractor) Cursor(v any) *CursorPage {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	rawItems, ok := m["data"]
	if !ok {
		rawItems, ok = m["items"]
	}
	if !ok {
		return nil
	}

	next := stringField(m, "nextCursor", "")
	if next == "" {
		next = stringField(m, "cursor", "")
	}

	return &CursorPage{
		Items:      asItems(rawItems),
		NextCursor: next,
		PrevCursor: stringField(m, "prevCursor", ""),
	}
}

func derivedTotalPages(total int64, limit int) int {
	if total < 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func asItems(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	return nil
}

// intField reads a numeric field from a decoded JSON object. JSON numbers
// decode as float64.
func intField(m map[string]any, key string, def int) int {
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return def
}

func int64Field(m map[string]any, key string, def int64) int64 {
	if f, ok := m[key].(float64); ok {
		return int64(f)
	}
	return def
}

func stringField(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}
