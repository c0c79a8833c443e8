package readme

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Sprintf("readme: authentication failed: %s %s: %s", e.Method, e.URL, e.Status)
	case http.StatusNotFound:
		return fmt.Sprintf("readme: not found: %s %s: %s", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("readme: unexpected HTTP response status: %s %s: %s", e.Method, e.URL, e.Status)
}

// MalformedResponseError means a successful response lacked a field we depend on.
type MalformedResponseError struct {
	Endpoint string
	Field    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("readme: malformed response from %s: missing %q", e.Endpoint, e.Field)
}

// StatusCode digs the HTTP status out of err, or returns 0 when the request never got a response.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
