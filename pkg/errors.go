package pkg

import (
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

var (
	// ErrParameterLookup is matched by every *ParameterError.
	ErrParameterLookup = errors.New("parameter lookup failed")
	// ErrSelect is matched by every *SelectError.
	ErrSelect = errors.New("select request failed")
	// ErrStream is matched by every *StreamError.
	ErrStream = errors.New("select stream failed")
	// ErrIncompleteStream is the cause of a StreamError when the stream
	// closed before the End event arrived.
	ErrIncompleteStream = errors.New("stream closed without end event")
)

// ParameterError is returned when a parameter store value cannot be resolved.
type ParameterError struct {
	Name string
	Err  error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("get parameter %q: %v", e.Name, e.Err)
}

func (e *ParameterError) Is(target error) bool {
	return target == ErrParameterLookup
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}

// SelectError is returned when the select request itself is rejected.
type SelectError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *SelectError) Error() string {
	return fmt.Sprintf("select s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *SelectError) Is(target error) bool {
	return target == ErrSelect
}

func (e *SelectError) Unwrap() error {
	return e.Err
}

// StreamError is returned when the select event stream fails after the
// request was accepted.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("read select stream: %v", e.Err)
}

func (e *StreamError) Is(target error) bool {
	return target == ErrStream
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// ErrorKind names the failure category of err, or "internal" if it is none
// of the known ones.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrParameterLookup):
		return "parameter"
	case errors.Is(err, ErrSelect):
		return "select"
	case errors.Is(err, ErrStream):
		return "stream"
	default:
		return "internal"
	}
}

// APIErrorCode returns the AWS error code carried by err, if any.
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
