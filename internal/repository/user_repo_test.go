package repository

import (
	"sync"
	"testing"
)

func TestUpsertUserCreatesThenRefreshes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	userRepo := NewUserRepository(db)

	user, err := userRepo.UpsertUser("u1", "old@example.com", "Ada", "Smith", "")
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if user.Email != "old@example.com" {
		t.Errorf("email = %q, want old@example.com", user.Email)
	}

	user, err = userRepo.UpsertUser("u1", "new@example.com", "Ada", "Jones", "/uploads/pic.jpg")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if user.Email != "new@example.com" || user.LastName != "Jones" {
		t.Errorf("provider fields not refreshed: %+v", user)
	}
}

func TestConcurrentUpsertNewUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	userRepo := NewUserRepository(db)

	// Simultaneous first requests from the same identity must all succeed:
	// one wins the insert, the rest land on the update path.
	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = userRepo.UpsertUser("u1", "u1@example.com", "Ada", "Smith", "")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("upsert %d failed: %v", i, err)
		}
	}

	user, err := userRepo.GetUserByID("u1")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user == nil {
		t.Fatal("expected user row to exist")
	}
}
