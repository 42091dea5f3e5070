package shared

import (
	"errors"
	"fmt"
)

// Error kinds for domain failures. Callers match them with errors.Is and
// surface Error() verbatim to the user.
var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrGateway      = errors.New("gateway failure")
)

// DomainError carries a human-readable message together with the kind it
// unwraps to.
type DomainError struct {
	kind error
	msg  string
}

func (e *DomainError) Error() string { return e.msg }

func (e *DomainError) Unwrap() error { return e.kind }

func Validationf(format string, args ...any) error {
	return &DomainError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...any) error {
	return &DomainError{kind: ErrInvalidState, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &DomainError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Gatewayf(format string, args ...any) error {
	return &DomainError{kind: ErrGateway, msg: fmt.Sprintf(format, args...)}
}
