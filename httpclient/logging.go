package httpclient

import (
	"context"

	"github.com/dealgrid/dealgrid-go/logger"
)

// NewLoggingPlugin creates an observer plugin that logs response statuses
// and errors at debug level. The client core already logs the request
// lifecycle; this plugin exists for callers who want an additional sink,
// e.g. a per-subsystem logger.
func NewLoggingPlugin(log logger.Logger) *Plugin {
	return &Plugin{
		Name: "logging",
		OnResponse: func(_ context.Context, resp *RawResponse, rc *RequestContext) (HookResult, error) {
			log.Debug().
				Str("method", rc.Method).
				Str("url", rc.URL).
				Int("status", resp.StatusCode).
				Msg("response observed")
			return Continue(), nil
		},
		OnError: func(_ context.Context, cause error, rc *RequestContext) (HookResult, error) {
			log.Debug().
				Err(cause).
				Str("method", rc.Method).
				Str("url", rc.URL).
				Msg("error observed")
			return Continue(), nil
		},
	}
}
