package feed

import (
	"errors"
	"fmt"
)

// FetchError is returned when the feed endpoint cannot be reached or answers
// with a non-200 status. StatusCode is 0 for transport failures.
type FetchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch analyses: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is returned when the feed body is not a JSON object of records.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode analyses: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsFeedError reports whether err is a FetchError or a ParseError.
func IsFeedError(err error) bool {
	var fetchErr *FetchError
	var parseErr *ParseError
	return errors.As(err, &fetchErr) || errors.As(err, &parseErr)
}
