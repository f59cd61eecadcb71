package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors raised while talking to the remote REST API
var (
	ErrUpstream             = errors.New("upstream request failed")
	ErrUpstreamUnauthorized = errors.New("upstream rejected credentials")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
)

// NewUpstreamError wraps a non-2xx response. The remote status is kept in Details.
func NewUpstreamError(service string, status int, message string) *ApiErr {
	code := http.StatusBadGateway
	if status == http.StatusNotFound {
		code = http.StatusNotFound
	}
	details := fmt.Sprintf("%s responded with status %d", service, status)
	if message != "" {
		details = fmt.Sprintf("%s: %s", details, message)
	}
	return &ApiErr{
		StatusCode: code,
		err:        ErrUpstream,
		Details:    details,
	}
}

func NewUpstreamUnauthorizedError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUpstreamUnauthorized, ErrUnauthorized),
		Details:    fmt.Sprintf("%s rejected the session token", service),
	}
}

func NewUpstreamUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrUpstreamUnavailable,
		Details:    fmt.Sprintf("%s could not be reached", service),
		Cause:      cause,
	}
}

func IsUpstreamUnauthorized(err error) bool {
	return errors.Is(err, ErrUpstreamUnauthorized)
}

// IsUpstreamFailure reports network or non-2xx failures other than 401.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrUpstreamUnavailable)
}
