package handler

import (
	"net/url"
	"strconv"

	"github.com/msomdec/user-service/internal/domain"
)

// Listing defaults when the query omits page or limit.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// createUserRequest is the body of POST /users.
type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// listUsersQuery holds the query parameters of GET /users.
type listUsersQuery struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// parseListUsersQuery reads page and limit, applying defaults for absent
// values. Non-integer values are reported as ValidationFailed.
func parseListUsersQuery(values url.Values) (listUsersQuery, error) {
	q := listUsersQuery{Page: defaultPage, Limit: defaultLimit}

	var msgs []string
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"page", &q.Page},
		{"limit", &q.Limit},
	} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			msgs = append(msgs, p.name+" must be an integer")
			continue
		}
		*p.dst = n
	}
	if len(msgs) > 0 {
		return q, domain.ValidationFailed(msgs...)
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
