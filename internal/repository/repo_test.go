package repository

import (
	"path/filepath"
	"testing"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// newTestDB creates a migrated SQLite database in a temp directory
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *database.DB, id string) *models.User {
	t.Helper()

	userRepo := NewUserRepository(db)
	user, err := userRepo.UpsertUser(id, id+"@example.com", "Test", "User", "")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
	return user
}

func createTestFamily(t *testing.T, db *database.DB, creatorID string) *models.Family {
	t.Helper()

	createTestUser(t, db, creatorID)
	familyRepo := NewFamilyRepository(db)
	family, err := familyRepo.CreateFamily("The Smiths", "our family", "", creatorID)
	if err != nil {
		t.Fatalf("failed to create family: %v", err)
	}
	return family
}
