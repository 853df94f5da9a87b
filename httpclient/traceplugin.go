package httpclient

import (
	"context"

	"github.com/dealgrid/dealgrid-go/trace"
)

// NewTracePlugin creates a plugin that injects correlation headers into
// every request: X-Request-ID (from context, or freshly generated) and a W3C
// traceparent. Headers already present are preserved.
func NewTracePlugin() *Plugin {
	return &Plugin{
		Name: "trace",
		OnRequest: func(ctx context.Context, rc *RequestContext) (HookResult, error) {
			if rc.Headers[trace.HeaderXRequestID] == "" {
				rc.Headers[trace.HeaderXRequestID] = trace.EnsureRequestID(ctx)
			}
			if rc.Headers[trace.HeaderTraceParent] == "" {
				if tp, ok := trace.TraceParentFromContext(ctx); ok {
					rc.Headers[trace.HeaderTraceParent] = tp
				} else {
					rc.Headers[trace.HeaderTraceParent] = trace.GenerateTraceParent()
				}
			}
			return Continue(), nil
		},
	}
}
