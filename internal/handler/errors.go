package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/msomdec/user-service/internal/domain"
)

// unexpectedErrorMessage is the only text a 500 response ever carries.
const unexpectedErrorMessage = "An unexpected error occurred."

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Error []string `json:"error"`
	Kind  string   `json:"kind"`
}

// MapError translates any error into an HTTP status and error envelope.
//
// Domain errors keep their kind and messages, validator errors become
// ValidationFailed, and everything else, including internal domain errors,
// becomes a generic 500 whose body never includes the original error text.
func MapError(err error) (status int, body ErrorResponse) {
	defer func() {
		if recover() != nil {
			status, body = internalError()
		}
	}()

	if de, ok := domain.AsDomainError(err); ok {
		if de.Kind.Status() >= http.StatusInternalServerError {
			return internalError()
		}
		msgs := append([]string(nil), de.Messages...)
		if len(msgs) == 0 {
			msgs = []string{de.Kind.Reason()}
		}
		return de.Kind.Status(), ErrorResponse{Error: msgs, Kind: de.Kind.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.KindValidationFailed.Status(), ErrorResponse{
			Error: validationMessages(verrs),
			Kind:  domain.KindValidationFailed.String(),
		}
	}

	return internalError()
}

func internalError() (int, ErrorResponse) {
	return domain.KindInternal.Status(), ErrorResponse{
		Error: []string{unexpectedErrorMessage},
		Kind:  domain.KindInternal.String(),
	}
}

// writeError renders err through MapError. Server errors are logged with
// their full detail; the client only sees the envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := MapError(err)

	if status >= http.StatusInternalServerError {
		attrs := []any{
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		}
		if de, ok := domain.AsDomainError(err); ok && de.Detail != "" {
			attrs = append(attrs, "detail", de.Detail)
		}
		slog.Error("request failed", attrs...)
	}

	writeJSON(w, status, body)
}
