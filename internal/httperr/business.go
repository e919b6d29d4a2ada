package httperr

import (
	"errors"
	"fmt"
)

// Kind is the caller-facing category of a failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindReference
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindReference:
		return "reference"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: code}
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

// ErrReference reports a request that points at rows which do not exist
// (foreign-key violations surfaced by the database).
func ErrReference(code, message string, cause error) error {
	return BusinessError{Kind: KindReference, Code: code, Message: message, Err: cause}
}

func ErrConflict(code, message string, cause error) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message, Err: cause}
}

// ErrInternal keeps the cause for server-side logs only.
func ErrInternal(code string, cause error) error {
	return BusinessError{Kind: KindInternal, Code: code, Message: "Internal server error.", Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns KindInternal for anything that is not a BusinessError.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}
