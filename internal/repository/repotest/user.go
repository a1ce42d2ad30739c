// Package repotest holds contract tests that every domain.UserRepository
// implementation must pass.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/msomdec/user-service/internal/domain"
)

// Factory returns an empty repository. It is called once per subtest.
type Factory func(t *testing.T) domain.UserRepository

// RunUserRepository runs the contract suite against repositories made by newRepo.
func RunUserRepository(t *testing.T, newRepo Factory) {
	t.Run("SaveThenFindByID", func(t *testing.T) { testSaveThenFindByID(t, newRepo(t)) })
	t.Run("SaveUpdatesInPlace", func(t *testing.T) { testSaveUpdatesInPlace(t, newRepo(t)) })
	t.Run("Save_DuplicateEmail", func(t *testing.T) { testSaveDuplicateEmail(t, newRepo(t)) })
	t.Run("FindByID_NotFound", func(t *testing.T) { testFindByIDNotFound(t, newRepo(t)) })
	t.Run("FindByEmail", func(t *testing.T) { testFindByEmail(t, newRepo(t)) })
	t.Run("FindAll_Order", func(t *testing.T) { testFindAllOrder(t, newRepo(t)) })
	t.Run("FindAll_Empty", func(t *testing.T) { testFindAllEmpty(t, newRepo(t)) })
	t.Run("FindAll_InvalidBounds", func(t *testing.T) { testFindAllInvalidBounds(t, newRepo(t)) })
	t.Run("FindAll_HugeBounds", func(t *testing.T) { testFindAllHugeBounds(t, newRepo(t)) })
	t.Run("Create_DuplicateEmail", func(t *testing.T) { testCreateDuplicateEmail(t, newRepo(t)) })
	t.Run("Create_Concurrent", func(t *testing.T) { testCreateConcurrent(t, newRepo(t)) })
}

func testSaveThenFindByID(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	user := domain.NewUser("Ana", "ana@x.com")

	if err := repo.Save(ctx, &user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !reflect.DeepEqual(*found, user) {
		t.Fatalf("expected %+v, got %+v", user, *found)
	}
}

func testSaveUpdatesInPlace(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	first := domain.NewUser("First", "first@x.com")
	second := domain.NewUser("Second", "second@x.com")
	for _, u := range []*domain.User{&first, &second} {
		if err := repo.Save(ctx, u); err != nil {
			t.Fatalf("Save %s: %v", u.Name, err)
		}
	}

	first.Name = "First Renamed"
	if err := repo.Save(ctx, &first); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	page, err := repo.FindAll(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 users after update, got %d", page.Total)
	}
	if page.Items[0].Name != "First Renamed" || page.Items[1].ID != second.ID {
		t.Fatalf("expected update in place preserving order, got %+v", page.Items)
	}
}

func testSaveDuplicateEmail(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	first := domain.NewUser("One", "taken@x.com")
	second := domain.NewUser("Two", "other@x.com")
	for _, u := range []*domain.User{&first, &second} {
		if err := repo.Save(ctx, u); err != nil {
			t.Fatalf("Save %s: %v", u.Name, err)
		}
	}

	dup := domain.NewUser("Three", "taken@x.com")
	if err := repo.Save(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict saving a new user with a taken email, got %v", err)
	}

	second.Email = "taken@x.com"
	if err := repo.Save(ctx, &second); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict moving a user onto a taken email, got %v", err)
	}

	// Re-saving a user with its own email is an update, not a conflict.
	first.Name = "One Renamed"
	if err := repo.Save(ctx, &first); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "taken@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != first.ID || got.Name != "One Renamed" {
		t.Fatalf("expected the original owner of the email, got %+v", got)
	}
}

func testFindByIDNotFound(t *testing.T, repo domain.UserRepository) {
	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testFindByEmail(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	user := domain.NewUser("Bea", "bea@x.com")
	if err := repo.Create(ctx, &user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "bea@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, found.ID)
	}

	if _, err := repo.FindByEmail(ctx, "BEA@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
}

func testFindAllOrder(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		u := domain.NewUser(fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@x.com", i))
		if err := repo.Create(ctx, &u); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, u.ID)
	}

	page, err := repo.FindAll(ctx, 2, 2)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || !page.HasNext || !page.HasPrevious {
		t.Fatalf("unexpected metadata %+v", page)
	}
	if len(page.Items) != 2 || page.Items[0].ID != ids[2] || page.Items[1].ID != ids[3] {
		t.Fatalf("expected users 2 and 3 in insertion order, got %+v", page.Items)
	}

	last, err := repo.FindAll(ctx, 3, 2)
	if err != nil {
		t.Fatalf("FindAll last page: %v", err)
	}
	if len(last.Items) != 1 || last.HasNext {
		t.Fatalf("unexpected last page %+v", last)
	}
}

func testFindAllEmpty(t *testing.T, repo domain.UserRepository) {
	page, err := repo.FindAll(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.Total != 0 || page.TotalPages != 0 {
		t.Fatalf("unexpected empty page %+v", page)
	}
	if page.HasNext || page.HasPrevious {
		t.Fatalf("expected no navigation on empty page, got %+v", page)
	}
}

func testFindAllHugeBounds(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	u := domain.NewUser("A", "a@x.com")
	if err := repo.Create(ctx, &u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	far, err := repo.FindAll(ctx, 100000000000000001, 100)
	if err != nil {
		t.Fatalf("FindAll far page: %v", err)
	}
	if far.Items == nil || len(far.Items) != 0 || far.Total != 1 || far.TotalPages != 1 || far.HasNext {
		t.Fatalf("expected an empty page past the end, got %+v", far)
	}

	all, err := repo.FindAll(ctx, 1, math.MaxInt)
	if err != nil {
		t.Fatalf("FindAll max limit: %v", err)
	}
	if len(all.Items) != 1 || all.TotalPages != 1 || all.HasNext || all.HasPrevious {
		t.Fatalf("expected a single full page, got %+v", all)
	}
}

func testFindAllInvalidBounds(t *testing.T, repo domain.UserRepository) {
	if _, err := repo.FindAll(context.Background(), 1, 0); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for limit 0, got %v", err)
	}
	if _, err := repo.FindAll(context.Background(), 0, 10); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for page 0, got %v", err)
	}
}

func testCreateDuplicateEmail(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	first := domain.NewUser("One", "dup@x.com")
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := domain.NewUser("Two", "dup@x.com")
	if err := repo.Create(ctx, &second); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	page, err := repo.FindAll(ctx, 1, 10)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected store unchanged with 1 user, got %d", page.Total)
	}
}

func testCreateConcurrent(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	const workers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u := domain.NewUser(fmt.Sprintf("Racer %d", i), "race@x.com")
			err := repo.Create(ctx, &u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				t.Errorf("Create %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", workers-1, succeeded, conflicts)
	}
}
