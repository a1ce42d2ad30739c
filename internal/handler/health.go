package handler

import (
	"net/http"

	"github.com/msomdec/user-service/internal/domain"
)

// HandleHealthz responds with a 200 OK and a JSON body indicating the server is healthy.
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleHome greets API clients.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the API!"})
}

// handleNotFound answers unknown routes with the standard error envelope.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, domain.NotFound("Route not found."))
}

// handleMethodNotAllowed answers a known route requested with the wrong method.
func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, domain.MethodNotAllowed("Method not allowed."))
}
