package service

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the service layer. Callers classify with
// errors.Is; anything that does not match either kind is a persistence
// failure and must not be exposed to clients verbatim.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }

func notFoundf(format string, args ...interface{}) error {
	return &domainError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func invalidArgumentf(format string, args ...interface{}) error {
	return &domainError{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}
