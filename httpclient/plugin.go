package httpclient

import "context"

// HookResult is the tagged outcome of a plugin hook: either Continue, which
// passes control to the next plugin (and ultimately the normal pipeline), or
// Override, which short-circuits the call with a substitute result.
type HookResult struct {
	overridden bool
	value      any
}

// Continue signals "no override; keep processing".
func Continue() HookResult {
	return HookResult{}
}

// Override short-circuits the pipeline with v as the call's result.
func Override(v any) HookResult {
	return HookResult{overridden: true, value: v}
}

// Overridden reports whether the hook produced a substitute result.
func (r HookResult) Overridden() bool {
	return r.overridden
}

// Value returns the substitute result. Only meaningful when Overridden.
func (r HookResult) Value() any {
	return r.value
}

// RequestHook runs before the network call. It may mutate the request
// context in place (e.g. inject headers) and return Continue, or return
// Override to skip the network entirely (caching, mocking).
type RequestHook func(ctx context.Context, rc *RequestContext) (HookResult, error)

// ResponseHook runs after a response is received, before status evaluation.
// Override replaces the call's result with the hook's value.
type ResponseHook func(ctx context.Context, resp *RawResponse, rc *RequestContext) (HookResult, error)

// ErrorHook runs when an attempt failed. Override rescues the call with a
// substitute result (e.g. the token-refresh plugin replaying the request);
// Continue lets the client evaluate retry eligibility.
type ErrorHook func(ctx context.Context, cause error, rc *RequestContext) (HookResult, error)

// Plugin is a named set of optional lifecycle hooks. Plugins are appended to
// an ordered list and run in registration order; for each hook the first
// Override wins and stops the chain. A hook returning an error aborts the
// call immediately.
type Plugin struct {
	Name       string
	OnRequest  RequestHook
	OnResponse ResponseHook
	OnError    ErrorHook
}

func (c *client) runOnRequest(ctx context.Context, rc *RequestContext) (HookResult, error) {
	for _, p := range c.plugins {
		if p.OnRequest == nil {
			continue
		}
		res, err := p.OnRequest(ctx, rc)
		if err != nil {
			return Continue(), err
		}
		if res.Overridden() {
			return res, nil
		}
	}
	return Continue(), nil
}

func (c *client) runOnResponse(ctx context.Context, resp *RawResponse, rc *RequestContext) (HookResult, error) {
	for _, p := range c.plugins {
		if p.OnResponse == nil {
			continue
		}
		res, err := p.OnResponse(ctx, resp, rc)
		if err != nil {
			return Continue(), err
		}
		if res.Overridden() {
			return res, nil
		}
	}
	return Continue(), nil
}

func (c *client) runOnError(ctx context.Context, cause error, rc *RequestContext) (HookResult, error) {
	for _, p := range c.plugins {
		if p.OnError == nil {
			continue
		}
		res, err := p.OnError(ctx, cause, rc)
		if err != nil {
			return Continue(), err
		}
		if res.Overridden() {
			return res, nil
		}
	}
	return Continue(), nil
}
