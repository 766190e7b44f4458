package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an API failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindTimeout
	KindServer
	KindUnauthorized
	KindNotFound
	KindValidation
)

// Fixed messages per failure kind, overridden by a backend-supplied detail
// message when one is present.
var kindMessages = map[Kind]string{
	KindConnection:   "Unable to connect to the server. Please check your connection and try again.",
	KindTimeout:      "Request timed out. Please try again.",
	KindServer:       "An error occurred on the server. Please try again later.",
	KindUnauthorized: "You are not authorized to perform this action.",
	KindNotFound:     "The requested resource was not found.",
	KindValidation:   "Invalid request data. Please check your input.",
	KindUnknown:      "An error occurred on the server. Please try again later.",
}

// Error is a classified API failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the transport-level cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// detail mirrors FastAPI's error body: `detail` is either a plain string or
// a list of validation items carrying `msg`.
type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

func detailMessage(body []byte) string {
	var parsed detailBody
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(parsed.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(parsed.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}

// classifyStatus maps a non-2xx response to an Error, preferring the
// backend's structured detail message over the generic mapping.
func classifyStatus(status int, body []byte) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusUnprocessableEntity:
		kind = KindValidation
	case status >= 500:
		kind = KindServer
	}
	message := kindMessages[kind]
	if detail := detailMessage(body); detail != "" {
		message = detail
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// classifyTransport maps a transport-level failure to an Error.
func classifyTransport(err error) *Error {
	kind := KindConnection
	if isTimeout(err) {
		kind = KindTimeout
	}
	return &Error{Kind: kind, Message: kindMessages[kind], cause: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
