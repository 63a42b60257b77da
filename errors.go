package splitmd

import (
	"fmt"
	"net/http"
)

// CountError reports a section count that could not be parsed as an integer.
type CountError struct {
	Input string
}

func (e *CountError) Error() string {
	return fmt.Sprintf("splitmd: section count %q is not an integer", e.Input)
}

// RangeError reports a section count outside [MinSections, MaxSections].
type RangeError struct {
	Count int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("splitmd: section count %d is out of range [%d, %d]", e.Count, MinSections, MaxSections)
}

// Cause tags a CompletionError with what failed
type Cause string

const (
	CauseAuth      Cause = "auth"
	CauseRateLimit Cause = "rate_limit"
	CauseAPI       Cause = "api"
	CauseNetwork   Cause = "network"
	CauseEmpty     Cause = "empty_response"
	CauseMalformed Cause = "malformed_response"
)

// CompletionError reports a failed call to a completion service, or a reply
// that could not be used.
type CompletionError struct {
	Provider string // empty when the failure is not tied to a provider
	Cause    Cause
	Err      error
}

func (e *CompletionError) Error() string {
	name := e.Provider
	if name == "" {
		name = "splitmd"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: completion failed (%s)", name, e.Cause)
	}
	return fmt.Sprintf("%s: completion failed (%s): %v", name, e.Cause, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// CauseForStatus maps an HTTP status returned by a completion service to a
// Cause.
func CauseForStatus(code int) Cause {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CauseAuth
	case http.StatusTooManyRequests:
		return CauseRateLimit
	default:
		return CauseAPI
	}
}
