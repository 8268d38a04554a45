package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, profile_image_url,
		       bio, phone_number, address, birthday, created_at, updated_at
		FROM users WHERE id = ?
	`
	user := &models.User{}
	err := r.db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.ProfileImageURL,
		&user.Bio,
		&user.PhoneNumber,
		&user.Address,
		&user.Birthday,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpsertUser creates the user row on first sight of an identity, or
// refreshes the provider-owned fields (email, names, picture) on later ones
func (r *UserRepository) UpsertUser(id, email, firstName, lastName, profileImageURL string) (*models.User, error) {
	existing, err := r.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		query := `
			INSERT INTO users (id, email, first_name, last_name, profile_image_url)
			VALUES (?, ?, ?, ?, ?)
		`
		_, err := r.db.Exec(query, id, email, firstName, lastName, profileImageURL)
		if err == nil {
			return r.GetUserByID(id)
		}
		// A concurrent first request won the insert; fall through to the
		// update path.
		if !r.db.GetDialect().IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	query := `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, profile_image_url = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, email, firstName, lastName, profileImageURL, time.Now(), id); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetUserByID(id)
}

// UpdateProfile updates the user-editable display fields. Returns false
// when no such user exists.
func (r *UserRepository) UpdateProfile(user *models.User) (bool, error) {
	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, bio = ?, phone_number = ?,
		    address = ?, birthday = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		user.FirstName, user.LastName, user.Bio, user.PhoneNumber,
		user.Address, user.Birthday, time.Now(), user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows > 0, nil
}
