package repository

import "fmt"

// UpstreamUnreachableError is returned when the search provider answers with
// a non-2xx status.
type UpstreamUnreachableError struct {
	StatusCode int
}

func (e *UpstreamUnreachableError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// UpstreamRejectedError is returned when the provider answers 2xx but reports
// a non-zero code or omits the data payload. Message may be empty.
type UpstreamRejectedError struct {
	Code    int
	Message string
}

func (e *UpstreamRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search rejected (code %d)", e.Code)
	}
	return fmt.Sprintf("search rejected (code %d): %s", e.Code, e.Message)
}
