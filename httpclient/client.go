package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dealgrid/dealgrid-go/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// retryableStatuses is the fixed set of HTTP statuses treated as transient.
var retryableStatuses = map[int]struct{}{
	nethttp.StatusRequestTimeout:     {},
	nethttp.StatusTooManyRequests:    {},
	nethttp.StatusBadGateway:         {},
	nethttp.StatusServiceUnavailable: {},
	nethttp.StatusGatewayTimeout:     {},
}

// client implements the Client interface
type client struct {
	httpClient *nethttp.Client
	log        logger.Logger
	config     *Config
	baseURL    string
	extractor  Extractor
	plugins    []*Plugin
	sleep      func(ctx context.Context, d time.Duration) error
	callCount  int64
}

// New creates a client for the given base URL with default configuration.
func New(baseURL string, log logger.Logger) Client {
	return NewBuilder(log).WithBaseURL(baseURL).Build()
}

// Builder provides a fluent interface for configuring the client
type Builder struct {
	config     *Config
	log        logger.Logger
	httpClient *nethttp.Client
}

// NewBuilder creates a new client builder. A nil logger disables logging.
func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.Noop{}
	}
	return &Builder{
		config: &Config{
			Timeout:        DefaultTimeout,
			MaxRetries:     DefaultMaxRetries,
			RetryDelay:     DefaultRetryDelay,
			DefaultHeaders: make(map[string]string),
			Extractor:      DefaultExtractor{},
		},
		log: log,
	}
}

// WithBaseURL sets the API base URL. Trailing slashes are stripped.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL
	return b
}

// WithTimeout sets the per-attempt request timeout
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithRetries sets the retry configuration
func (b *Builder) WithRetries(maxRetries int, retryDelay time.Duration) *Builder {
	b.config.MaxRetries = maxRetries
	b.config.RetryDelay = retryDelay
	return b
}

// WithDefaultHeader adds a default header that will be sent with all requests
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithTokenSource sets the bearer token source
func (b *Builder) WithTokenSource(source TokenSource) *Builder {
	b.config.TokenSource = source
	return b
}

// WithExtractor overrides the response-shape extractor
func (b *Builder) WithExtractor(e Extractor) *Builder {
	b.config.Extractor = e
	return b
}

// WithPlugin appends a plugin to the dispatch chain
func (b *Builder) WithPlugin(p *Plugin) *Builder {
	b.config.Plugins = append(b.config.Plugins, p)
	return b
}

// WithHTTPClient replaces the underlying *http.Client, e.g. to install a
// custom transport
func (b *Builder) WithHTTPClient(hc *nethttp.Client) *Builder {
	b.httpClient = hc
	return b
}

// Build creates the client with the configured options
func (b *Builder) Build() Client {
	hc := b.httpClient
	if hc == nil {
		hc = &nethttp.Client{}
	}
	return &client{
		httpClient: hc,
		log:        b.log,
		config:     b.config,
		baseURL:    strings.TrimRight(b.config.BaseURL, "/"),
		extractor:  b.config.Extractor,
		plugins:    b.config.Plugins,
		sleep:      sleepContext,
	}
}

// BaseURL returns the configured base URL with trailing slashes stripped.
func (c *client) BaseURL() string {
	return c.baseURL
}

// Use appends a plugin to the dispatch chain. Plugins must be registered
// before the client serves traffic; the list is not guarded by a lock.
func (c *client) Use(p *Plugin) {
	c.plugins = append(c.plugins, p)
}

// Get performs a GET request
func (c *client) Get(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, nethttp.MethodGet, path, opts)
}

// Post performs a POST request
func (c *client) Post(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, nethttp.MethodPost, path, opts)
}

// Put performs a PUT request
func (c *client) Put(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, nethttp.MethodPut, path, opts)
}

// Patch performs a PATCH request
func (c *client) Patch(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, nethttp.MethodPatch, path, opts)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, path string, opts *RequestOptions) (any, error) {
	return c.Do(ctx, nethttp.MethodDelete, path, opts)
}

// Do performs a request and applies the extractor's Data unwrapping to the
// decoded result. Nil results (204, empty bodies) and raw text pass through
// unchanged.
func (c *client) Do(ctx context.Context, method, path string, opts *RequestOptions) (any, error) {
	v, err := c.request(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	}
	return c.extractor.Data(v), nil
}

// Replay re-issues a previously built request context through the normal
// request path. The relative path is recovered by stripping the base URL
// prefix; headers, bearer token and plugins all re-apply.
func (c *client) Replay(ctx context.Context, rc *RequestContext) (any, error) {
	path := strings.TrimPrefix(rc.URL, c.baseURL)
	opts := &RequestOptions{}
	if rc.Options != nil {
		o := *rc.Options
		opts = &o
	}
	// The replayed URL already carries its query string and the body was
	// resolved at build time.
	opts.Query = nil
	opts.Body = rc.Body
	return c.Do(ctx, rc.Method, path, opts)
}

// request runs the full lifecycle and returns the decoded but un-extracted
// result. Pagination helpers consume this to see the envelope.
func (c *client) request(ctx context.Context, method, path string, opts *RequestOptions) (any, error) {
	rc, err := c.buildContext(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, rc)
}

// execute drives the request state machine: OnRequest dispatch, the attempt
// loop with retry/backoff, OnResponse/OnError dispatch, and body decoding.
// Exactly one attempt is in flight at a time; retries reuse rc verbatim.
func (c *client) execute(ctx context.Context, rc *RequestContext) (any, error) {
	if res, err := c.runOnRequest(ctx, rc); err != nil {
		return nil, err
	} else if res.Overridden() {
		return res.Value(), nil
	}

	timeout := c.config.Timeout
	maxRetries := c.config.MaxRetries
	if rc.Options != nil {
		if rc.Options.Timeout != 0 {
			timeout = rc.Options.Timeout
		}
		if rc.Options.Retries != nil {
			maxRetries = *rc.Options.Retries
		}
	}

	start := time.Now()
	callCount := atomic.AddInt64(&c.callCount, 1)
	c.logRequest(rc)

	for attempt := 0; ; attempt++ {
		raw, err := c.attempt(ctx, rc, timeout)
		if err == nil {
			res, hookErr := c.runOnResponse(ctx, raw, rc)
			if hookErr != nil {
				return nil, hookErr
			}
			if res.Overridden() {
				return res.Value(), nil
			}
			if IsSuccessStatus(raw.StatusCode) {
				c.logResponse(rc, raw.StatusCode, time.Since(start), callCount)
				return decodeBody(raw)
			}
			err = NewErrorFromResponse(raw)
		}

		res, hookErr := c.runOnError(ctx, err, rc)
		if hookErr != nil {
			return nil, hookErr
		}
		if res.Overridden() {
			return res.Value(), nil
		}

		// Caller cancellation is terminal, never retried.
		if ctx.Err() != nil {
			return nil, err
		}

		if attempt >= maxRetries || !isRetryableError(err) {
			c.log.Error().
				Err(err).
				Str("method", rc.Method).
				Str("url", rc.URL).
				Int("attempts", attempt+1).
				Msg("API request failed")
			return nil, err
		}

		delay := backoffDelay(c.config.RetryDelay, attempt)
		c.log.Warn().
			Str("method", rc.Method).
			Str("url", rc.URL).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("retrying API request")
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}
}

// attempt issues one network call under the per-attempt timeout and reads
// the full response body.
func (c *client) attempt(ctx context.Context, rc *RequestContext, timeout time.Duration) (*RawResponse, error) {
	actx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if rc.Body != nil {
		r := bytes.NewReader(rc.Body)
		if rc.Options != nil && rc.Options.OnProgress != nil {
			body = newProgressReader(r, int64(len(rc.Body)), rc.Options.OnProgress)
		} else {
			body = r
		}
	}

	httpReq, err := nethttp.NewRequestWithContext(actx, rc.Method, rc.URL, body)
	if err != nil {
		return nil, newTransportError(err)
	}
	for k, v := range rc.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	return &RawResponse{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// buildContext resolves the absolute URL, merges headers and injects the
// bearer token, producing the replayable request snapshot.
func (c *client) buildContext(ctx context.Context, method, path string, opts *RequestOptions) (*RequestContext, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	fullURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		fullURL = c.baseURL + path
	}
	fullURL += BuildQuery(opts.Query)

	headers := make(map[string]string, len(c.config.DefaultHeaders)+len(opts.Headers)+2)
	for k, v := range c.config.DefaultHeaders {
		headers[k] = v
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	body, err := marshalBody(opts.Body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/json"
		}
	}

	if c.config.TokenSource != nil {
		token, err := c.config.TokenSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve bearer token: %w", err)
		}
		if token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	return &RequestContext{
		URL:     fullURL,
		Method:  method,
		Headers: headers,
		Body:    body,
		Options: opts,
	}, nil
}

func marshalBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		return data, nil
	}
}

// decodeBody turns a successful raw response into the call result: nil for
// 204 or empty bodies, a decoded value for JSON, raw text otherwise.
func decodeBody(raw *RawResponse) (any, error) {
	if raw.StatusCode == nethttp.StatusNoContent {
		return nil, nil
	}
	if len(raw.Body) == 0 {
		return nil, nil
	}
	if isJSONContentType(raw.Headers.Get("Content-Type")) {
		var v any
		if err := json.Unmarshal(raw.Body, &v); err != nil {
			return nil, fmt.Errorf("decode response body: %w", err)
		}
		return v, nil
	}
	return string(raw.Body), nil
}

// isRetryableError reports whether an error looks network-transient: a
// transport failure (status 0) or a retryable HTTP status.
func isRetryableError(err error) bool {
	httpErr, ok := AsError(err)
	if !ok {
		return false
	}
	if httpErr.Status == 0 {
		return true
	}
	_, retryable := retryableStatuses[httpErr.Status]
	return retryable
}

// logRequest logs the outgoing request
func (c *client) logRequest(rc *RequestContext) {
	logEvent := c.log.Debug().
		Str("direction", "outbound").
		Str("method", rc.Method).
		Str("url", rc.URL)

	if len(rc.Body) > 0 {
		logEvent.Int("body_bytes", len(rc.Body))
	}

	logEvent.Msg("API request")
}

// logResponse logs the incoming response
func (c *client) logResponse(rc *RequestContext, status int, elapsed time.Duration, callCount int64) {
	c.log.Info().
		Str("direction", "inbound").
		Str("method", rc.Method).
		Str("url", rc.URL).
		Int("status", status).
		Dur("elapsed", elapsed).
		Int64("call_count", callCount).
		Msg("API response")
}
