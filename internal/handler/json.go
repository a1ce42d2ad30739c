package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/msomdec/user-service/internal/domain"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// readJSON decodes the request body into dst. Decoding problems are returned
// as BadRequest or ValidationFailed domain errors.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// The body must hold exactly one JSON value.
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return domain.BadRequest("Invalid request body.")
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return domain.ValidationFailed(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.Kind()))
	case errors.As(err, &maxErr):
		return domain.BadRequest("Request body is too large.")
	case errors.Is(err, io.EOF):
		return domain.BadRequest("Request body is required.")
	default:
		return domain.BadRequest("Invalid request body.").WithCause(err)
	}
}
