// Package apperr carries the error taxonomy every service in this backend
// maps onto HTTP responses: authentication-required, forbidden, validation,
// not-found, method-not-allowed and internal. Validation errors keep a
// field-keyed list of messages so the wire shape can mirror the API contract.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationRequired
	KindForbidden
	KindValidation
	KindNotFound
	KindMethodNotAllowed
)

// NonFieldKey collects validation messages not tied to a single field.
const NonFieldKey = "non_field_errors"

type Error struct {
	Kind   Kind
	Detail string
	// Fields is only populated for KindValidation.
	Fields map[string][]string
	cause  error
}

func (e *Error) Error() string {
	if e.Kind == KindValidation && len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
		}
		return "validation failed: " + strings.Join(parts, ", ")
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatusCode satisfies the HTTPStatusCoder convention used by the
// response layer to pick the wire status without switching on error kinds.
func (e *Error) HTTPStatusCode() int {
	switch e.Kind {
	case KindAuthenticationRequired:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func AuthenticationRequired(detail string) *Error {
	if detail == "" {
		detail = "Authentication credentials were not provided."
	}
	return &Error{Kind: KindAuthenticationRequired, Detail: detail}
}

func Forbidden(detail string) *Error {
	if detail == "" {
		detail = "You do not have permission to perform this action."
	}
	return &Error{Kind: KindForbidden, Detail: detail}
}

func NotFound(detail string) *Error {
	if detail == "" {
		detail = "Not found."
	}
	return &Error{Kind: KindNotFound, Detail: detail}
}

func MethodNotAllowed(detail string) *Error {
	if detail == "" {
		detail = "Method not allowed."
	}
	return &Error{Kind: KindMethodNotAllowed, Detail: detail}
}

func Validation(field string, messages ...string) *Error {
	return &Error{
		Kind:   KindValidation,
		Fields: map[string][]string{field: messages},
	}
}

func ValidationMap(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func NonFieldValidation(messages ...string) *Error {
	return Validation(NonFieldKey, messages...)
}

func Internal(err error) *Error {
	detail := "internal server error"
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindInternal, Detail: detail, cause: err}
}

// From normalizes any error into an *Error. gorm's record-not-found becomes
// KindNotFound so repos can bubble lookups straight to the response layer.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("")
	}
	return Internal(err)
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Kind == kind
}
