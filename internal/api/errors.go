package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Every failure leaving this package has one of three shapes: the server
// answered with an error payload (*Error), no response arrived
// (*ConnectivityError), or the request could not be built or its response
// decoded (*RequestError). Callers never see a raw transport error.

type ErrorKind int

const (
	// KindUnknown is a server error whose payload did not match any known
	// shape. Detail holds the trimmed raw body, if any.
	KindUnknown ErrorKind = iota
	// KindDetail is a server error with a single human-readable message.
	KindDetail
	// KindFieldErrors is a validation error with per-field messages, meant
	// for inline display next to the offending inputs.
	KindFieldErrors
)

// Error is a response the server actually sent with a non-2xx status.
type Error struct {
	StatusCode int
	Kind       ErrorKind
	Detail     string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDetail:
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail)
	case KindFieldErrors:
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
		}
		return fmt.Sprintf("validation error (%d): %s", e.StatusCode, strings.Join(parts, ", "))
	default:
		if e.Detail != "" {
			return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("server error (%d)", e.StatusCode)
	}
}

// ConnectivityError means no response was received: DNS failure, refused
// connection, timeout.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return "no response from server, check your connection: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// RequestError is a failure on our side of the wire: building the request or
// decoding a successful response.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "request failed: " + e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// classify parses an error response body into the tagged shape. The backend
// answers either {"detail": "..."} / {"message": "..."} or a map of field
// name to list of messages; anything else becomes KindUnknown.
func classify(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		e.Detail = strings.TrimSpace(string(body))
		return e
	}

	for _, key := range []string{"detail", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var detail string
		if json.Unmarshal(raw, &detail) == nil && detail != "" {
			e.Kind = KindDetail
			e.Detail = detail
			return e
		}
	}

	fields := make(map[string][]string, len(payload))
	for key, raw := range payload {
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			fields[key] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			fields[key] = []string{msg}
		}
	}
	if len(fields) > 0 {
		e.Kind = KindFieldErrors
		e.Fields = fields
		return e
	}

	e.Detail = strings.TrimSpace(string(body))
	return e
}

// Message extracts a human-readable message from any error produced by this
// package, with a generic fallback for everything else.
func Message(err error) string {
	switch e := err.(type) {
	case *Error:
		if e.Kind == KindDetail && e.Detail != "" {
			return e.Detail
		}
		return e.Error()
	case *ConnectivityError:
		return "No response from server. Please check your internet connection."
	case *RequestError:
		return "An unexpected error occurred."
	default:
		if err != nil {
			return err.Error()
		}
		return ""
	}
}

// StatusOf returns the HTTP status of a server error, or 0 for the other
// shapes.
func StatusOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a server-sent 401.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
