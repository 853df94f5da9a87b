package httpclient

import (
	"context"
	"fmt"
	nethttp "net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dealgrid/dealgrid-go/auth"
)

// DefaultRefreshPath is the token refresh endpoint used when RefreshConfig
// does not name one.
const DefaultRefreshPath = "/auth/refresh"

// RefreshConfig configures the token-refresh plugin.
type RefreshConfig struct {
	// Store supplies the refresh token and persists the renewed pair.
	Store auth.TokenStore

	// RefreshPath is the refresh endpoint, relative to the client base URL.
	// Defaults to DefaultRefreshPath.
	RefreshPath string

	// OnAuthFailure is invoked once per failed refresh, e.g. to force a
	// re-login. Optional.
	OnAuthFailure func(err error)
}

// NewRefreshPlugin creates the 401-recovery plugin. On an authentication
// failure it performs a single token refresh (concurrent 401s share one
// refresh call) and then replays the failed request with the renewed token.
//
// A 401 from the refresh endpoint itself is surfaced directly; anything else
// would recurse.
func NewRefreshPlugin(c Client, cfg RefreshConfig) *Plugin {
	refreshPath := cfg.RefreshPath
	if refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}

	var group singleflight.Group

	refresh := func(ctx context.Context) error {
		refreshToken, err := cfg.Store.Refresh(ctx)
		if err != nil {
			return err
		}

		raw, err := c.Post(ctx, refreshPath, &RequestOptions{
			Body: map[string]string{"refreshToken": refreshToken},
		})
		if err != nil {
			return fmt.Errorf("refresh token call: %w", err)
		}

		pair, err := parseTokenPair(raw)
		if err != nil {
			return err
		}
		return cfg.Store.Save(ctx, pair)
	}

	return &Plugin{
		Name: "token-refresh",
		OnError: func(ctx context.Context, cause error, rc *RequestContext) (HookResult, error) {
			httpErr, ok := AsError(cause)
			if !ok || httpErr.Status != nethttp.StatusUnauthorized {
				return Continue(), nil
			}
			if isRefreshRequest(rc.URL, refreshPath) {
				// The refresh endpoint rejected us; recovery is impossible.
				if cfg.OnAuthFailure != nil {
					cfg.OnAuthFailure(cause)
				}
				return Continue(), nil
			}

			// All concurrently failing requests share this one refresh;
			// each waiter replays its own context afterwards.
			_, err, _ := group.Do("refresh", func() (any, error) {
				if err := refresh(ctx); err != nil {
					// A 401 from the refresh endpoint already fired the
					// callback through the guard above.
					if cfg.OnAuthFailure != nil && !IsStatus(err, nethttp.StatusUnauthorized) {
						cfg.OnAuthFailure(err)
					}
					return nil, err
				}
				return nil, nil
			})
			if err != nil {
				return Continue(), err
			}

			result, err := c.Replay(ctx, rc)
			if err != nil {
				return Continue(), err
			}
			return Override(result), nil
		},
	}
}

func isRefreshRequest(url, refreshPath string) bool {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	return strings.HasSuffix(url, refreshPath)
}

// parseTokenPair reads accessToken/refreshToken out of the refresh
// endpoint's decoded response.
func parseTokenPair(raw any) (auth.TokenPair, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return auth.TokenPair{}, fmt.Errorf("refresh response has unexpected shape %T", raw)
	}
	access, _ := m["accessToken"].(string)
	refresh, _ := m["refreshToken"].(string)
	if access == "" {
		return auth.TokenPair{}, fmt.Errorf("refresh response missing accessToken")
	}
	return auth.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
