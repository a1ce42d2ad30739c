package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/user-service/internal/domain"
	"github.com/msomdec/user-service/internal/service"
)

// UserHandler serves the /users resource.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// respond renders an outcome: the value with successStatus, or the failure
// through the error mapper.
func respond[T any](w http.ResponseWriter, r *http.Request, successStatus int, o domain.Outcome[T, *domain.DomainError]) {
	domain.Match(o,
		func(v T) struct{} {
			writeJSON(w, successStatus, v)
			return struct{}{}
		},
		func(e *domain.DomainError) struct{} {
			writeError(w, r, e)
			return struct{}{}
		},
	)
}

// HandleCreate registers a user.
// POST /users
// Request:  {"name":"...","email":"..."}
// Response: 201 {"id":"...","name":"...","email":"..."}
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	outcome := h.users.CreateUser(r.Context(), service.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	respond(w, r, http.StatusCreated, outcome)
}

// HandleList returns a page of users.
// GET /users?page=1&limit=10
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListUsersQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, h.users.ListUsers(r.Context(), q.Page, q.Limit))
}

// HandleGet returns a single user.
// GET /users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, h.users.GetUser(r.Context(), chi.URLParam(r, "id")))
}
