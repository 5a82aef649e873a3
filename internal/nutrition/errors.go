package nutrition

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures so callers can tell user mistakes apart from
// infrastructure problems.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindInvariant    Kind = "invariant"
	KindNotFound     Kind = "not_found"
	KindTransient    Kind = "transient"
	KindPartialWrite Kind = "partial_write"
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Validation(op, msg string) error {
	return newError(KindValidation, op, errors.New(msg))
}

func Invariant(op, msg string) error {
	return newError(KindInvariant, op, errors.New(msg))
}

func NotFound(op, msg string) error {
	return newError(KindNotFound, op, errors.New(msg))
}

// Transient marks err as a remote/store failure. nil stays nil.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return newError(KindTransient, op, err)
}

// PartialWrite marks err as a failure that may have left some writes behind.
func PartialWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	return newError(KindPartialWrite, op, err)
}

// KindOf returns the kind of the outermost classified error in the chain.
// Errors that were never classified are treated as transient.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// StatusCode maps an error to the HTTP status handlers respond with.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvariant:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the part of err that is safe to show to API clients.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal error"
	}
	switch e.Kind {
	case KindValidation, KindInvariant, KindNotFound:
		return e.Err.Error()
	case KindPartialWrite:
		return "operation failed midway, reload and verify the data"
	default:
		return "internal error"
	}
}
