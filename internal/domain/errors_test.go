package domain_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/msomdec/user-service/internal/domain"
)

func TestKind_StatusAndName(t *testing.T) {
	tests := []struct {
		kind   domain.Kind
		name   string
		status int
	}{
		{domain.KindBadRequest, "BadRequest", http.StatusBadRequest},
		{domain.KindNotFound, "NotFound", http.StatusNotFound},
		{domain.KindConflict, "Conflict", http.StatusConflict},
		{domain.KindInternal, "InternalServerError", http.StatusInternalServerError},
		{domain.KindValidationFailed, "ValidationFailed", http.StatusBadRequest},
		{domain.KindTooManyRequests, "TooManyRequests", http.StatusTooManyRequests},
		{domain.KindMethodNotAllowed, "MethodNotAllowed", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.name {
				t.Fatalf("expected name %q, got %q", tc.name, got)
			}
			if got := tc.kind.Status(); got != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, got)
			}
			if got := tc.kind.Reason(); got != http.StatusText(tc.status) {
				t.Fatalf("expected reason %q, got %q", http.StatusText(tc.status), got)
			}
		})
	}
}

func TestKind_UnknownFallsBackToInternal(t *testing.T) {
	k := domain.Kind(99)
	if k.Status() != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", k.Status())
	}
	if k.String() != "InternalServerError" {
		t.Fatalf("expected InternalServerError, got %s", k.String())
	}
}

func TestDomainError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("create user: %w", domain.Conflict("User with this email already exists."))

	if !errors.Is(err, domain.ErrConflict) {
		t.Fatal("expected wrapped conflict to match ErrConflict")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("conflict must not match ErrNotFound")
	}

	de, ok := domain.AsDomainError(err)
	if !ok {
		t.Fatal("expected AsDomainError to find the error")
	}
	if de.Messages[0] != "User with this email already exists." {
		t.Fatalf("unexpected message %q", de.Messages[0])
	}
}

func TestDomainError_WithCauseUnwraps(t *testing.T) {
	cause := errors.New("disk on fire")
	err := domain.Internal("list users").WithCause(cause).WithDetail("sqlite")

	if !errors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Detail != "sqlite" {
		t.Fatalf("expected detail sqlite, got %q", err.Detail)
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("expected cause text in Error(), got %q", err.Error())
	}
}

func TestValidationFailed_CopiesMessages(t *testing.T) {
	msgs := []string{"name is required", "email must be a valid email address"}
	err := domain.ValidationFailed(msgs...)
	msgs[0] = "mutated"

	if err.Messages[0] != "name is required" {
		t.Fatalf("expected messages to be copied, got %q", err.Messages[0])
	}
	if len(domain.ValidationFailed().Messages) != 1 {
		t.Fatal("expected a default message when none are given")
	}
}

func TestAsDomainError_PlainError(t *testing.T) {
	if _, ok := domain.AsDomainError(errors.New("boom")); ok {
		t.Fatal("plain errors are not domain errors")
	}
}
