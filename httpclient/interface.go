package httpclient

import (
	"context"
	nethttp "net/http"
	"time"
)

const (
	// DefaultTimeout is the default per-attempt request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retries for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the base delay used for exponential backoff
	DefaultRetryDelay = 1 * time.Second

	// DefaultPageLimit is the page size used when a pagination call does not specify one
	DefaultPageLimit = 20
)

// Client is the REST client contract for the DealGrid API.
// Verb methods return the extracted response payload: nil for 204, a string
// for non-JSON bodies, and the envelope-unwrapped value otherwise.
type Client interface {
	Get(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Post(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Put(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Patch(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Delete(ctx context.Context, path string, opts *RequestOptions) (any, error)
	Do(ctx context.Context, method, path string, opts *RequestOptions) (any, error)

	// GetPaginated issues a GET with page/limit query parameters and shapes
	// the response into a Paginated envelope, synthesizing metadata when the
	// server response carries none.
	GetPaginated(ctx context.Context, path string, page PageRequest) (*Paginated, error)

	// GetCursorPage issues a GET with cursor/limit query parameters and
	// shapes the response into a CursorPage envelope.
	GetCursorPage(ctx context.Context, path string, cursor CursorRequest) (*CursorPage, error)

	// Replay re-issues a previously built request context through the normal
	// request path. The bearer token is re-resolved, so a replay after a
	// token refresh carries the new credentials.
	Replay(ctx context.Context, rc *RequestContext) (any, error)

	// Use appends a plugin to the dispatch chain. The plugin list is
	// append-only; registration order is invocation order.
	Use(p *Plugin)

	// BaseURL returns the configured base URL with trailing slashes stripped.
	BaseURL() string
}

// TokenSource supplies the bearer token attached to outgoing requests.
// Returning "" means no Authorization header is set. The source may block,
// e.g. to read from a keychain, and must honor ctx.
type TokenSource func(ctx context.Context) (string, error)

// ProgressFunc receives upload progress as an integer percentage 0-100.
type ProgressFunc func(percent int)

// RequestOptions carries per-call configuration. The zero value (or nil) is
// valid and means "client defaults".
type RequestOptions struct {
	// Headers override the client's default headers for this call.
	Headers map[string]string

	// Query parameters appended to the URL. Nil values are dropped; slice
	// values expand to repeated key=value pairs.
	Query map[string]any

	// Body is marshaled to JSON unless it is a []byte or string, which are
	// sent verbatim.
	Body any

	// Timeout overrides the client's per-attempt timeout. Zero means the
	// client default; negative disables the timeout entirely.
	Timeout time.Duration

	// Retries overrides the client's retry budget. Nil means the client
	// default.
	Retries *int

	// OnProgress, when set, receives upload progress while the request body
	// is being sent.
	OnProgress ProgressFunc
}

// RequestContext is the fully resolved, replayable description of one
// request. It is handed to every plugin hook and reused verbatim across
// retry attempts. Plugins may mutate Headers in place before returning
// Continue.
type RequestContext struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	Options *RequestOptions
}

// RawResponse is the undecoded result of one attempt, as seen by OnResponse
// hooks.
type RawResponse struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Config holds the client configuration. It is fixed at Build time except
// for the plugin list, which is append-only via Client.Use.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	DefaultHeaders map[string]string
	TokenSource    TokenSource
	Extractor      Extractor
	Plugins        []*Plugin
}

// PageRequest parameterizes GetPaginated.
type PageRequest struct {
	Page  int            // defaults to 1
	Limit int            // defaults to DefaultPageLimit
	Query map[string]any // extra query parameters
}

// CursorRequest parameterizes GetCursorPage.
type CursorRequest struct {
	Cursor    string
	Limit     int            // defaults to DefaultPageLimit
	ParamName string         // query parameter carrying the cursor, defaults to "cursor"
	Query     map[string]any // extra query parameters
}
