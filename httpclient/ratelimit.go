package httpclient

import (
	"context"

	"golang.org/x/time/rate"
)

// NewRateLimitPlugin creates a plugin that throttles outgoing requests to
// rps requests per second with the given burst. Waiting honors the caller's
// context; cancellation while queued aborts the call.
//
// Retries pass through the limiter only once: the plugin runs before the
// attempt loop, so backoff delays are not additionally throttled.
func NewRateLimitPlugin(rps float64, burst int) *Plugin {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return &Plugin{
		Name: "rate-limit",
		OnRequest: func(ctx context.Context, _ *RequestContext) (HookResult, error) {
			if err := limiter.Wait(ctx); err != nil {
				return Continue(), err
			}
			return Continue(), nil
		},
	}
}
