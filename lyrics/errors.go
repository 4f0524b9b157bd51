package lyrics

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrNotFound means the search succeeded but no hit matched the target artist.
	ErrNotFound = errors.New("song not found")
	// ErrExtractionFailed means the page was fetched but held no lyrics container.
	ErrExtractionFailed = errors.New("no lyrics container found on page")
)

// UpstreamError is a transport or HTTP status failure talking to a remote service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// TimeoutError is a remote call that ran past its deadline.
type TimeoutError struct {
	Service string
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Service, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsUpstream checks if err is an UpstreamError.
func IsUpstream(err error) bool {
	var upstreamErr *UpstreamError
	return errors.As(err, &upstreamErr)
}

// IsTimeout checks if err is a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// transportError classifies a failed http.Client.Do call.
func transportError(service string, err error) error {
	if isTimeout(err) {
		return &TimeoutError{Service: service, Err: err}
	}
	return &UpstreamError{Service: service, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
