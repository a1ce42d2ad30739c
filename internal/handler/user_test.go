package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/msomdec/user-service/internal/domain"
	"github.com/msomdec/user-service/internal/handler"
	"github.com/msomdec/user-service/internal/repository/memory"
	"github.com/msomdec/user-service/internal/service"
)

func newTestRouter(t *testing.T, limiter *service.TokenBucket) http.Handler {
	t.Helper()
	users := service.NewUserService(memory.NewUserRepository())
	return handler.NewRouter(users, limiter)
}

func postUser(t *testing.T, srvURL, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srvURL+"/users", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /users: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(body.Error) == 0 {
		t.Fatal("expected non-empty error array")
	}
	return body
}

func TestIntegration_CreateTwiceThenList(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	// 1. First create succeeds with a generated id.
	resp := postUser(t, srv.URL, `{"name":"Ana","email":"ana@x.com"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", resp.StatusCode)
	}
	var created domain.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	resp.Body.Close()
	if created.ID == "" || created.Name != "Ana" || created.Email != "ana@x.com" {
		t.Fatalf("unexpected user %+v", created)
	}

	// 2. Same email again is a conflict.
	resp = postUser(t, srv.URL, `{"name":"Ana","email":"ana@x.com"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second create: expected 409, got %d", resp.StatusCode)
	}
	body := decodeError(t, resp)
	resp.Body.Close()
	if body.Kind != "Conflict" {
		t.Fatalf("expected Conflict kind, got %s", body.Kind)
	}

	// 3. A second distinct user.
	resp = postUser(t, srv.URL, `{"name":"Bea","email":"bea@x.com"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("third create: expected 201, got %d", resp.StatusCode)
	}

	// 4. List one per page.
	resp, err := http.Get(srv.URL + "/users?page=1&limit=1")
	if err != nil {
		t.Fatalf("GET /users: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var page domain.Page[domain.User]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 1 || page.Total != 2 || page.TotalPages != 2 || !page.HasNext || page.HasPrevious {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].ID != created.ID {
		t.Fatalf("expected first created user on page 1, got %+v", page.Items[0])
	}
}

func TestCreateUser_ValidationFailures(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	tests := []struct {
		name     string
		body     string
		kind     string
		contains string
	}{
		{"missing name", `{"email":"a@b.com"}`, "ValidationFailed", "name is required"},
		{"bad email", `{"name":"Ana","email":"nope"}`, "ValidationFailed", "email must be a valid email address"},
		{"wrong type", `{"name":42,"email":"a@b.com"}`, "ValidationFailed", "name must be of type string"},
		{"malformed json", `{"name":`, "BadRequest", "Invalid request body."},
		{"empty body", ``, "BadRequest", "Request body is required."},
		{"trailing data", `{"name":"Ana","email":"a@b.com"} junk`, "BadRequest", "Invalid request body."},
		{"two objects", `{"name":"Ana","email":"a@b.com"}{"name":"Bo","email":"b@b.com"}`, "BadRequest", "Invalid request body."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postUser(t, srv.URL, tc.body)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			body := decodeError(t, resp)
			if body.Kind != tc.kind {
				t.Fatalf("expected kind %s, got %s", tc.kind, body.Kind)
			}
			if !strings.Contains(strings.Join(body.Error, "|"), tc.contains) {
				t.Fatalf("expected message containing %q, got %v", tc.contains, body.Error)
			}
		})
	}
}

func TestListUsers_QueryParams(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	tests := []struct {
		query  string
		status int
	}{
		{"", http.StatusOK},
		{"?page=2", http.StatusOK},
		{"?limit=100", http.StatusOK},
		{"?page=100000000000000001&limit=100", http.StatusOK},
		{"?page=0", http.StatusBadRequest},
		{"?limit=0", http.StatusBadRequest},
		{"?limit=101", http.StatusBadRequest},
		{"?page=abc", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/users" + tc.query)
			if err != nil {
				t.Fatalf("GET: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
			if tc.status == http.StatusBadRequest {
				if body := decodeError(t, resp); body.Kind != "ValidationFailed" {
					t.Fatalf("expected ValidationFailed, got %s", body.Kind)
				}
			}
		})
	}
}

func TestListUsers_Defaults(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("GET /users: %v", err)
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw["page"] != float64(1) || raw["limit"] != float64(10) {
		t.Fatalf("expected page=1 limit=10, got %v %v", raw["page"], raw["limit"])
	}
	if items, ok := raw["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty items array, got %v", raw["items"])
	}
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	resp := postUser(t, srv.URL, `{"name":"Ana","email":"ana@x.com"}`)
	var created domain.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/users/" + created.ID)
	if err != nil {
		t.Fatalf("GET user: %v", err)
	}
	var got domain.User
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	resp.Body.Close()
	if got != created {
		t.Fatalf("expected %+v, got %+v", created, got)
	}

	resp, err = http.Get(srv.URL + "/users/does-not-exist")
	if err != nil {
		t.Fatalf("GET missing user: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Kind != "NotFound" {
		t.Fatalf("expected NotFound, got %s", body.Kind)
	}
}

func TestCreateUser_RateLimited(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := service.NewTokenBucket(ctx, 0, 2)

	srv := httptest.NewServer(newTestRouter(t, limiter))
	defer srv.Close()

	for i := 0; i < 2; i++ {
		resp := postUser(t, srv.URL, fmt.Sprintf(`{"name":"U","email":"u%d@x.com"}`, i))
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, resp.StatusCode)
		}
	}

	resp := postUser(t, srv.URL, `{"name":"U","email":"late@x.com"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Kind != "TooManyRequests" {
		t.Fatalf("expected TooManyRequests, got %s", body.Kind)
	}

	// Reads are not limited.
	listResp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("GET /users: %v", err)
	}
	listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for list, got %d", listResp.StatusCode)
	}
}
