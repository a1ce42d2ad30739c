package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/msomdec/user-service/internal/domain"
)

func TestNewUser(t *testing.T) {
	a := domain.NewUser("Ana", "ana@x.com")
	b := domain.NewUser("Ana", "ana@x.com")

	if a.Name != "Ana" || a.Email != "ana@x.com" {
		t.Fatalf("unexpected fields %+v", a)
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("expected a UUID id, got %q: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct ids")
	}
}
