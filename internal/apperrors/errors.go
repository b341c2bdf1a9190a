package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for transport-level translation. Repositories and
// usecases attach a Kind; only handlers turn it into an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientBinStock
	KindInsufficientAggregateStock
	KindInvalidStatusTransition
	KindInvalidBinIdentifier
	KindConflict
	KindUnauthorized
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain,
// or KindInternal for plain errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the response code the REST layer should emit.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientBinStock, KindInsufficientAggregateStock,
		KindInvalidStatusTransition, KindInvalidBinIdentifier:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
