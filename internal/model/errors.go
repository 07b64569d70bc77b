package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoData is returned when a run has no records to aggregate.
var ErrNoData = errors.New("no data")

// ErrPartialFetch marks a fetch that stopped early. The listings collected
// before the failure are still returned alongside it.
var ErrPartialFetch = errors.New("partial fetch")

// HTTPError wraps an HTTP status code returned by the search API.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MissingKeyError reports a mandatory aggregation table that was not provided.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("aggregation result is missing mandatory table %q", e.Key)
}
