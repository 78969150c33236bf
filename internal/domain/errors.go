package domain

import (
	"errors"
	"fmt"
)

// NetworkError means the request never reached the commerce backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	if e.Op == "" {
		return "backend unreachable"
	}
	return fmt.Sprintf("%s: backend unreachable", e.Op)
}

func (e NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the backend did not answer within the request deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e TimeoutError) Error() string {
	if e.Op == "" {
		return "backend request timed out"
	}
	return fmt.Sprintf("%s: backend request timed out", e.Op)
}

func (e TimeoutError) Unwrap() error { return e.Err }

// ServerError means the backend answered with a non-2xx status.
type ServerError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e ServerError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
}

// ConcurrentActionError means a bulk dispatch was attempted while another one
// is still in flight.
type ConcurrentActionError struct {
	Action string
}

func (e ConcurrentActionError) Error() string {
	if e.Action == "" {
		return "bulk action already in flight"
	}
	return fmt.Sprintf("bulk action already in flight, rejected %q", e.Action)
}

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

func IsNetwork(err error) bool {
	var target NetworkError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var target TimeoutError
	return errors.As(err, &target)
}

func IsServer(err error) bool {
	var target ServerError
	return errors.As(err, &target)
}

func IsConcurrentAction(err error) bool {
	var target ConcurrentActionError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}
