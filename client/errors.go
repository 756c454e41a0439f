package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork means the request went out but no response came back.
	ErrNetwork = errors.New("network error")
	// ErrRequest means the request could not be built.
	ErrRequest = errors.New("request error")
)

const (
	msgNetwork    = "Network error. Please check your connection."
	msgUnexpected = "An unexpected error occurred"
	msgFailed     = "An error occurred"
)

// APIError is a non-2xx response from the storefront API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Detail)
}

// parseAPIError reads the server's detail field. Validation failures carry a
// list of {msg} objects instead of a string.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) != nil || len(payload.Detail) == 0 {
		return e
	}
	var s string
	if json.Unmarshal(payload.Detail, &s) == nil {
		e.Detail = s
		return e
	}
	var list []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(payload.Detail, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			if d.Msg != "" {
				msgs = append(msgs, d.Msg)
			}
		}
		e.Detail = strings.Join(msgs, "; ")
	}
	return e
}

// Message turns a client error into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return msgFailed
	case errors.Is(err, ErrNetwork):
		return msgNetwork
	default:
		return msgUnexpected
	}
}
