// Package httpclient provides the REST client for the DealGrid API:
// verb methods, pagination helpers, plugin hooks, and a retry mechanism
// with exponential backoff and jitter.
//
// Retries
//   - Controlled via Builder.WithRetries(maxRetries, retryDelay) or per call
//     through RequestOptions.Retries.
//   - Retries occur on:
//   - Transport errors (network failures)
//   - Per-attempt timeouts
//   - HTTP 408, 429, 502, 503 and 504 responses
//   - All other HTTP failures are terminal on first occurrence.
//   - Cancellation of the caller's context is never retried.
//
// Backoff Strategy
//   - Exponential backoff based on retryDelay: delay = retryDelay * 2^attempt
//   - Delay is capped at 30 seconds to avoid excessive waits.
//   - Up to 10% random jitter is added to each delay.
//
// Plugins
//   - Plugins register OnRequest, OnResponse and OnError hooks and run in
//     registration order. The first hook returning Override stops the chain
//     and its value becomes the call result; Continue passes control on.
//   - OnResponse is override-capable: a hook may replace the decoded result
//     before status evaluation. Hooks that only observe return Continue.
//   - A hook returning an error aborts the call immediately and is never
//     retried.
//
// Responses
//   - Status 204 resolves to nil regardless of content type.
//   - application/json bodies are decoded; other content types are returned
//     as raw text.
//   - Decoded bodies pass through the configured Extractor, which unwraps
//     the DealGrid envelope shapes (see extract.go).
package httpclient
