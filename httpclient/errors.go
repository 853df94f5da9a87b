package httpclient

import (
	"errors"
	"fmt"
	"strings"
)

// Error wraps a failed HTTP response: status code, decoded body, and a
// human-readable message. Status 0 is reserved for non-HTTP failures
// (network errors, timeouts) and classifies as neither client nor server
// error.
type Error struct {
	Status  int
	Body    any
	Message string
	cause   error
}

// NewError creates an Error. When message is empty it defaults to the body's
// "message" field if present, else "HTTP <status>".
func NewError(status int, body any, message string) *Error {
	if message == "" {
		message = messageFromBody(status, body)
	}
	return &Error{Status: status, Body: body, Message: message}
}

// NewErrorFromResponse builds an Error from an undecoded response. JSON
// bodies are parsed; a parse failure yields a nil body rather than an error.
// Other content types keep the body as text.
func NewErrorFromResponse(resp *RawResponse) *Error {
	var body any
	if len(resp.Body) > 0 {
		if isJSONContentType(resp.Headers.Get("Content-Type")) {
			var decoded any
			if err := json.Unmarshal(resp.Body, &decoded); err == nil {
				body = decoded
			}
		} else {
			body = string(resp.Body)
		}
	}
	return NewError(resp.StatusCode, body, "")
}

// newTransportError wraps a low-level failure (connection error, timeout)
// into an Error with status 0.
func newTransportError(err error) *Error {
	return &Error{Status: 0, Message: err.Error(), cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsClientError reports whether the status is in the 4xx range.
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

// IsServerError reports whether the status is in the 5xx range.
func (e *Error) IsServerError() bool {
	return e.Status >= 500 && e.Status < 600
}

// AsError unwraps err into an *Error if one is in the chain.
func AsError(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	if httpErr, ok := AsError(err); ok {
		return httpErr.Status == status
	}
	return false
}

// IsSuccessStatus reports whether a status code is in the 2xx range.
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

func messageFromBody(status int, body any) string {
	if m, ok := body.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}
