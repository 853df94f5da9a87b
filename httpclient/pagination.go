package httpclient

import (
	"context"
	nethttp "net/http"
)

// GetPaginated issues a GET with page/limit merged into the query and shapes
// the response into a Paginated envelope. Unrecognized shapes degrade to a
// best-effort envelope rather than failing the call.
func (c *client) GetPaginated(ctx context.Context, path string, page PageRequest) (*Paginated, error) {
	if page.Page <= 0 {
		page.Page = 1
	}
	if page.Limit <= 0 {
		page.Limit = DefaultPageLimit
	}

	query := make(map[string]any, len(page.Query)+2)
	for k, v := range page.Query {
		query[k] = v
	}
	query["page"] = page.Page
	query["limit"] = page.Limit

	raw, err := c.request(ctx, nethttp.MethodGet, path, &RequestOptions{Query: query})
	if err != nil {
		return nil, err
	}

	if p := c.extractor.Paginated(raw); p != nil {
		return p, nil
	}

	// Manual fallback: read items and total directly off the payload.
	p := &Paginated{Page: page.Page, Limit: page.Limit, Total: -1}
	if m, ok := raw.(map[string]any); ok {
		if items, ok := m["data"].([]any); ok {
			p.Items = items
		} else if items, ok := m["items"].([]any); ok {
			p.Items = items
		}
		p.Total = int64Field(m, "total", -1)
		p.TotalPages = derivedTotalPages(p.Total, p.Limit)
	} else if items, ok := raw.([]any); ok {
		p.Items = items
	}
	return p, nil
}

// GetCursorPage issues a GET with the cursor parameter (under a configurable
// name) and limit merged into the query, shaping the response into a
// CursorPage envelope.
func (c *client) GetCursorPage(ctx context.Context, path string, cursor CursorRequest) (*CursorPage, error) {
	if cursor.Limit <= 0 {
		cursor.Limit = DefaultPageLimit
	}
	paramName := cursor.ParamName
	if paramName == "" {
		paramName = "cursor"
	}

	query := make(map[string]any, len(cursor.Query)+2)
	for k, v := range cursor.Query {
		query[k] = v
	}
	if cursor.Cursor != "" {
		query[paramName] = cursor.Cursor
	}
	query["limit"] = cursor.Limit

	raw, err := c.request(ctx, nethttp.MethodGet, path, &RequestOptions{Query: query})
	if err != nil {
		return nil, err
	}

	if p := c.extractor.Cursor(raw); p != nil {
		return p, nil
	}

	// Manual fallback.
	p := &CursorPage{}
	if m, ok := raw.(map[string]any); ok {
		if items, ok := m["data"].([]any); ok {
			p.Items = items
		} else if items, ok := m["items"].([]any); ok {
			p.Items = items
		}
		p.NextCursor = stringField(m, "nextCursor", "")
	} else if items, ok := raw.([]any); ok {
		p.Items = items
	}
	return p, nil
}
