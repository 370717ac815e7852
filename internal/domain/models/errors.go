package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoCredential      = errors.New("no authentication token available")
	ErrUpstreamStatus    = errors.New("upstream returned non-2xx status")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrPriceUnavailable  = errors.New("price unavailable")
	ErrNotFound          = errors.New("not found")
)

// UpstreamStatusError carries the status of a failed upstream call.
// errors.Is(err, ErrUpstreamStatus) holds for it.
type UpstreamStatusError struct {
	Status int
	Body   string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Status)
}

func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamStatus
}
