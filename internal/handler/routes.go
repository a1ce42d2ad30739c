package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/msomdec/user-service/internal/service"
)

// RouterOption customizes NewRouter.
type RouterOption func(*routerOptions)

type routerOptions struct {
	trustProxy bool
}

// WithTrustedProxy takes the client address from X-Forwarded-For or
// X-Real-IP. Without it the rate limiter keys on the connection address,
// since any client can set those headers.
func WithTrustedProxy() RouterOption {
	return func(o *routerOptions) { o.trustProxy = true }
}

// NewRouter builds the HTTP handler for the service. A nil limiter disables
// rate limiting of user creation.
func NewRouter(users *service.UserService, limiter *service.TokenBucket, opts ...RouterOption) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if o.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		RequestLogger,
		Recoverer,
		SecurityHeaders,
	)
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	RegisterRoutes(r, users, limiter)
	return r
}

// RegisterRoutes sets up all HTTP routes on the given router.
func RegisterRoutes(r chi.Router, users *service.UserService, limiter *service.TokenBucket) {
	r.Get("/", HandleHome)
	r.Get("/healthz", HandleHealthz)

	uh := NewUserHandler(users)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", uh.HandleList)
		r.Get("/{id}", uh.HandleGet)
		r.With(RateLimit(limiter)).Post("/", uh.HandleCreate)
	})
}
