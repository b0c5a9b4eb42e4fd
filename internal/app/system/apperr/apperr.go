// internal/app/system/apperr/apperr.go
//
// Package apperr maps core failures onto a small, stable set of kinds.
// Each kind has a fixed HTTP status and a message that is safe to show
// to callers. Storage and I/O failures never expose their cause; the
// cause is kept on the error for server-side logging only.
package apperr

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	Internal Kind = iota
	NotFound
	Authorization
	Conflict
	PreconditionFailed
	Validation
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Authorization:
		return "authorization"
	case Conflict:
		return "conflict"
	case PreconditionFailed:
		return "precondition_failed"
	case Validation:
		return "validation"
	case Unavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// HTTPStatus returns the response code used for the kind.
// PreconditionFailed is a 400, matching what clients already handle
// for "campaign is not active".
func (k Kind) HTTPStatus() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case Authorization:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case PreconditionFailed, Validation:
		return http.StatusBadRequest
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

const (
	msgUnavailable = "The service is temporarily unavailable. Please try again."
	msgInternal    = "Something went wrong. Please try again."
)

// E is a classified error. Message is shown to the caller; Cause is not.
type E struct {
	Kind    Kind
	Message string
	Ref     string
	Cause   error
}

func (e *E) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *E) Unwrap() error { return e.Cause }

// Is matches another *E by kind, so errors.Is(err, apperr.ErrNotFound) works
// for any not-found error regardless of message.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Cause == nil
}

// Kind-only sentinels for errors.Is.
var (
	ErrNotFound           = &E{Kind: NotFound}
	ErrAuthorization      = &E{Kind: Authorization}
	ErrConflict           = &E{Kind: Conflict}
	ErrPreconditionFailed = &E{Kind: PreconditionFailed}
	ErrValidation         = &E{Kind: Validation}
	ErrUnavailable        = &E{Kind: Unavailable}
)

func New(kind Kind, msg string) *E {
	return &E{Kind: kind, Message: msg}
}

func NewNotFound(msg string) *E           { return New(NotFound, msg) }
func NewAuthorization(msg string) *E      { return New(Authorization, msg) }
func NewConflict(msg string) *E           { return New(Conflict, msg) }
func NewPreconditionFailed(msg string) *E { return New(PreconditionFailed, msg) }
func NewValidation(msg string) *E         { return New(Validation, msg) }

// Unavailability wraps a storage failure. The message is generic and a
// reference id is attached so the log line can be found from a report.
func Unavailability(cause error) *E {
	return &E{Kind: Unavailable, Message: msgUnavailable, Ref: uuid.NewString(), Cause: cause}
}

// Wrap wraps an unexpected failure as Internal with a reference id.
func Wrap(cause error) *E {
	return &E{Kind: Internal, Message: msgInternal, Ref: uuid.NewString(), Cause: cause}
}

// From classifies any error. Already-classified errors pass through;
// anything else becomes Internal.
func From(err error) *E {
	if err == nil {
		return nil
	}
	var e *E
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err)
}

// KindOf returns the kind of err, or Internal for unclassified errors.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
