package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

// testEnv wires real repositories over a migrated SQLite database
type testEnv struct {
	db         *database.DB
	familyRepo *repository.FamilyRepository
	postRepo   *repository.PostRepository
	userRepo   *repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &testEnv{
		db:         db,
		familyRepo: repository.NewFamilyRepository(db),
		postRepo:   repository.NewPostRepository(db),
		userRepo:   repository.NewUserRepository(db),
	}
}

func (env *testEnv) addUser(t *testing.T, id, email string) {
	t.Helper()
	if _, err := env.userRepo.UpsertUser(id, email, "Test", "User", ""); err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
}

// addFamily creates a family whose creator is an approved admin
func (env *testEnv) addFamily(t *testing.T, creatorID string) *models.Family {
	t.Helper()
	env.addUser(t, creatorID, creatorID+"@example.com")
	family, err := env.familyRepo.CreateFamily("The Smiths", "", "", creatorID)
	if err != nil {
		t.Fatalf("failed to create family: %v", err)
	}
	return family
}

func (env *testEnv) addMember(t *testing.T, familyID int64, userID, email, role string, approved bool) *models.FamilyMember {
	t.Helper()
	env.addUser(t, userID, email)
	member, err := env.familyRepo.AddMember(familyID, userID, role, approved)
	if err != nil {
		t.Fatalf("failed to add member %s: %v", userID, err)
	}
	return member
}

// fakeSender records sent emails and can be told to fail for specific
// addresses. Safe for the concurrent sends the dispatcher performs.
type fakeSender struct {
	mu     sync.Mutex
	sent   []string
	failTo map[string]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{failTo: map[string]bool{}}
}

func (f *fakeSender) Send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[toEmail] {
		return fmt.Errorf("provider rejected %s", toEmail)
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func (f *fakeSender) IsEnabled() bool { return true }

func (f *fakeSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}
