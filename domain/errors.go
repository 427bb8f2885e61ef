package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindInvalidInput     ErrorKind = "invalid_input"
	KindForbidden        ErrorKind = "forbidden"
	KindAlreadyExists    ErrorKind = "already_exists"
	KindNotFound         ErrorKind = "not_found"
	KindInvalidTarget    ErrorKind = "invalid_target"
	KindUnknownReference ErrorKind = "unknown_reference"
	KindMissingEntity    ErrorKind = "missing_entity"
	KindInfrastructure   ErrorKind = "infrastructure"
)

// Field-level codes carried by InvalidInput and UnknownReference errors.
const (
	CodeInvalidName            = "invalid_name"
	CodeEmptyText              = "empty_text"
	CodeNonPositiveCookingTime = "non_positive_cooking_time"
	CodeEmptyIngredients       = "empty_ingredients"
	CodeNonPositiveAmount      = "non_positive_amount"
	CodeDuplicateIngredient    = "duplicate_ingredient"
	CodeUnknownIngredient      = "unknown_ingredient"
	CodeUnknownTag             = "unknown_tag"
	CodeUnknownKind            = "unknown_kind"
	CodeUnknownTarget          = "unknown_target"
	CodeSelfSubscription       = "self_subscription"
	CodeInvalidSeed            = "invalid_seed"
)

// Error is the typed result every core operation returns on failure.
// Kind selects the class of failure, Code and Field identify the offending
// input for validation and reference failures.
type Error struct {
	Kind    ErrorKind
	Code    string
	Field   string
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
		if e.Code != "" {
			msg += ": " + e.Code
		}
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %s)", msg, e.Field)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches on kind, and on code when the target carries one, so the
// sentinels below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidTarget    = &Error{Kind: KindInvalidTarget}
	ErrUnknownReference = &Error{Kind: KindUnknownReference}
	ErrMissingEntity    = &Error{Kind: KindMissingEntity}
	ErrInfrastructure   = &Error{Kind: KindInfrastructure}

	ErrDuplicateIngredient    = &Error{Kind: KindInvalidInput, Code: CodeDuplicateIngredient}
	ErrNonPositiveAmount      = &Error{Kind: KindInvalidInput, Code: CodeNonPositiveAmount}
	ErrNonPositiveCookingTime = &Error{Kind: KindInvalidInput, Code: CodeNonPositiveCookingTime}
	ErrEmptyIngredients       = &Error{Kind: KindInvalidInput, Code: CodeEmptyIngredients}
	ErrUnknownIngredient      = &Error{Kind: KindUnknownReference, Code: CodeUnknownIngredient}
	ErrUnknownTag             = &Error{Kind: KindUnknownReference, Code: CodeUnknownTag}
)

func NewInvalidInput(op, code, field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Op: op, Code: code, Field: field, Message: message}
}

func NewUnknownReference(op, code, field, message string) *Error {
	return &Error{Kind: KindUnknownReference, Op: op, Code: code, Field: field, Message: message}
}

func NewError(kind ErrorKind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain. Errors that are
// not typed are reported as infrastructure failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}

func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
