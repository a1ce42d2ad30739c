package domain

import (
	"errors"
	"net/http"
	"strings"
)

// Kind is the closed set of error kinds the application reports to callers.
// Each kind maps to exactly one HTTP status code.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
	KindValidationFailed
	KindTooManyRequests
	KindMethodNotAllowed
)

var kindInfo = map[Kind]struct {
	name   string
	status int
}{
	KindBadRequest:       {"BadRequest", http.StatusBadRequest},
	KindNotFound:         {"NotFound", http.StatusNotFound},
	KindConflict:         {"Conflict", http.StatusConflict},
	KindInternal:         {"InternalServerError", http.StatusInternalServerError},
	KindValidationFailed: {"ValidationFailed", http.StatusBadRequest},
	KindTooManyRequests:  {"TooManyRequests", http.StatusTooManyRequests},
	KindMethodNotAllowed: {"MethodNotAllowed", http.StatusMethodNotAllowed},
}

// String returns the wire name of the kind, e.g. "Conflict".
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return kindInfo[KindInternal].name
}

// Status returns the HTTP status code bound to the kind. Unknown kinds are
// treated as internal errors.
func (k Kind) Status() int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Reason returns the canonical reason phrase for the kind's status code.
func (k Kind) Reason() string {
	return http.StatusText(k.Status())
}

// DomainError is an expected application failure. Messages are safe to show
// to callers; Detail and Cause are for server-side diagnostics only.
type DomainError struct {
	Kind     Kind
	Messages []string
	Detail   string
	Cause    error
}

// Sentinels for errors.Is comparisons. Matching is by kind only.
var (
	ErrBadRequest       = &DomainError{Kind: KindBadRequest, Messages: []string{"bad request"}}
	ErrNotFound         = &DomainError{Kind: KindNotFound, Messages: []string{"not found"}}
	ErrConflict         = &DomainError{Kind: KindConflict, Messages: []string{"conflict"}}
	ErrInternal         = &DomainError{Kind: KindInternal, Messages: []string{"internal error"}}
	ErrValidationFailed = &DomainError{Kind: KindValidationFailed, Messages: []string{"validation failed"}}
	ErrTooManyRequests  = &DomainError{Kind: KindTooManyRequests, Messages: []string{"too many requests"}}
	ErrMethodNotAllowed = &DomainError{Kind: KindMethodNotAllowed, Messages: []string{"method not allowed"}}
)

func newError(kind Kind, msg string) *DomainError {
	return &DomainError{Kind: kind, Messages: []string{msg}}
}

// BadRequest reports caller input that is invalid beyond schema validation.
func BadRequest(msg string) *DomainError { return newError(KindBadRequest, msg) }

// NotFound reports a referenced entity that does not exist.
func NotFound(msg string) *DomainError { return newError(KindNotFound, msg) }

// Conflict reports a uniqueness or state precondition violation.
func Conflict(msg string) *DomainError { return newError(KindConflict, msg) }

// Internal reports an unanticipated failure.
func Internal(msg string) *DomainError { return newError(KindInternal, msg) }

// TooManyRequests reports a caller that exceeded its request budget.
func TooManyRequests(msg string) *DomainError { return newError(KindTooManyRequests, msg) }

// MethodNotAllowed reports a known route requested with an unsupported method.
func MethodNotAllowed(msg string) *DomainError { return newError(KindMethodNotAllowed, msg) }

// ValidationFailed reports one or more field-level schema errors.
func ValidationFailed(msgs ...string) *DomainError {
	if len(msgs) == 0 {
		msgs = []string{"validation failed"}
	}
	return &DomainError{Kind: KindValidationFailed, Messages: append([]string(nil), msgs...)}
}

// WithDetail returns a copy of e carrying diagnostic detail.
func (e *DomainError) WithDetail(detail string) *DomainError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithCause returns a copy of e wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *DomainError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Cause != nil {
		return e.Kind.String() + ": " + msg + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + msg
}

func (e *DomainError) Unwrap() error { return e.Cause }

// Is matches any DomainError of the same kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

// AsDomainError extracts a *DomainError from err's chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) && de != nil {
		return de, true
	}
	return nil, false
}
