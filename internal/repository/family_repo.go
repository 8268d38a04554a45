package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// FamilyRepository handles database operations for families and memberships.
// It is the single source of truth for who can do what in which family.
type FamilyRepository struct {
	db *database.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *database.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// CreateFamily creates a new family and adds the creator as an approved
// admin member in the same transaction
func (r *FamilyRepository) CreateFamily(name, description, coverImageURL, creatorUserID string) (*models.Family, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO families (name, description, cover_image_url) VALUES (?, ?, ?)"
	familyID, err := tx.ExecReturningID(query, name, description, coverImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	query = "INSERT INTO family_members (family_id, user_id, role, is_approved) VALUES (?, ?, ?, ?)"
	_, err = tx.Exec(query, familyID, creatorUserID, models.RoleAdmin, true)
	if err != nil {
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	family := &models.Family{
		ID:            familyID,
		Name:          name,
		Description:   description,
		CoverImageURL: coverImageURL,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return family, nil
}

// GetFamilyByID retrieves a family by ID
func (r *FamilyRepository) GetFamilyByID(familyID int64) (*models.Family, error) {
	query := `
		SELECT id, name, description, cover_image_url, created_at, updated_at
		FROM families WHERE id = ?
	`
	family := &models.Family{}
	err := r.db.QueryRow(query, familyID).Scan(
		&family.ID,
		&family.Name,
		&family.Description,
		&family.CoverImageURL,
		&family.CreatedAt,
		&family.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

// GetUserFamilies retrieves all families where the user is an approved member
func (r *FamilyRepository) GetUserFamilies(userID string) ([]models.Family, error) {
	query := `
		SELECT f.id, f.name, f.description, f.cover_image_url, f.created_at, f.updated_at
		FROM families f
		INNER JOIN family_members fm ON f.id = fm.family_id
		WHERE fm.user_id = ? AND fm.is_approved = ?
		ORDER BY f.created_at DESC
	`
	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query families: %w", err)
	}
	defer rows.Close()

	var families []models.Family
	for rows.Next() {
		var family models.Family
		if err := rows.Scan(&family.ID, &family.Name, &family.Description,
			&family.CoverImageURL, &family.CreatedAt, &family.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, family)
	}

	return families, rows.Err()
}

// UpdateFamily updates a family's display fields. Returns false when the
// family does not exist.
func (r *FamilyRepository) UpdateFamily(familyID int64, name, description, coverImageURL string) (bool, error) {
	query := `
		UPDATE families
		SET name = ?, description = ?, cover_image_url = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, name, description, coverImageURL, time.Now(), familyID)
	if err != nil {
		return false, fmt.Errorf("failed to update family: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}

	return rows > 0, nil
}

// AddMember inserts a membership row. The UNIQUE(family_id, user_id)
// constraint makes a second request for the same pair fail atomically;
// that failure is surfaced as ErrDuplicate.
func (r *FamilyRepository) AddMember(familyID int64, userID, role string, approved bool) (*models.FamilyMember, error) {
	query := "INSERT INTO family_members (family_id, user_id, role, is_approved) VALUES (?, ?, ?, ?)"
	memberID, err := r.db.ExecReturningID(query, familyID, userID, role, approved)
	if err != nil {
		if r.db.GetDialect().IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add family member: %w", err)
	}

	return &models.FamilyMember{
		ID:         memberID,
		FamilyID:   familyID,
		UserID:     userID,
		Role:       role,
		IsApproved: approved,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

// GetMembership retrieves the membership for a (family, user) pair, or nil
func (r *FamilyRepository) GetMembership(familyID int64, userID string) (*models.FamilyMember, error) {
	query := `
		SELECT id, family_id, user_id, role, is_approved, created_at, updated_at
		FROM family_members
		WHERE family_id = ? AND user_id = ?
	`
	member := &models.FamilyMember{}
	err := r.db.QueryRow(query, familyID, userID).Scan(
		&member.ID,
		&member.FamilyID,
		&member.UserID,
		&member.Role,
		&member.IsApproved,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return member, nil
}

// GetMemberByID retrieves a membership row by its ID, or nil
func (r *FamilyRepository) GetMemberByID(memberID int64) (*models.FamilyMember, error) {
	query := `
		SELECT id, family_id, user_id, role, is_approved, created_at, updated_at
		FROM family_members
		WHERE id = ?
	`
	member := &models.FamilyMember{}
	err := r.db.QueryRow(query, memberID).Scan(
		&member.ID,
		&member.FamilyID,
		&member.UserID,
		&member.Role,
		&member.IsApproved,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// ApproveMember marks a membership approved. Returns false when no such
// member exists.
func (r *FamilyRepository) ApproveMember(memberID int64) (bool, error) {
	dialect := r.db.GetDialect()
	query := fmt.Sprintf(
		"UPDATE family_members SET is_approved = %s, updated_at = ? WHERE id = ?",
		dialect.BoolValue(true))

	result, err := r.db.Exec(query, time.Now(), memberID)
	if err != nil {
		return false, fmt.Errorf("failed to approve member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check approve result: %w", err)
	}

	return rows > 0, nil
}

// UpdateMemberRole changes a member's role. Returns false when no such
// member exists.
func (r *FamilyRepository) UpdateMemberRole(memberID int64, role string) (bool, error) {
	query := "UPDATE family_members SET role = ?, updated_at = ? WHERE id = ?"
	result, err := r.db.Exec(query, role, time.Now(), memberID)
	if err != nil {
		return false, fmt.Errorf("failed to update member role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check role update result: %w", err)
	}

	return rows > 0, nil
}

// RemoveMember deletes a membership row. Returns false when no such member
// exists.
func (r *FamilyRepository) RemoveMember(memberID int64) (bool, error) {
	query := "DELETE FROM family_members WHERE id = ?"
	result, err := r.db.Exec(query, memberID)
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check remove result: %w", err)
	}

	return rows > 0, nil
}

// ListMembers retrieves all memberships of a family joined with user
// display data, ordered by join date
func (r *FamilyRepository) ListMembers(familyID int64) ([]models.MemberWithUser, error) {
	query := `
		SELECT fm.id, fm.family_id, fm.user_id, fm.role, fm.is_approved,
		       fm.created_at, fm.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.profile_image_url,
		       u.bio, u.phone_number, u.address, u.birthday, u.created_at, u.updated_at
		FROM family_members fm
		INNER JOIN users u ON fm.user_id = u.id
		WHERE fm.family_id = ?
		ORDER BY fm.created_at, fm.id
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.MemberWithUser
	for rows.Next() {
		var m models.MemberWithUser
		if err := rows.Scan(
			&m.FamilyMember.ID, &m.FamilyID, &m.FamilyMember.UserID, &m.Role,
			&m.IsApproved, &m.FamilyMember.CreatedAt, &m.FamilyMember.UpdatedAt,
			&m.User.ID, &m.User.Email, &m.User.FirstName, &m.User.LastName,
			&m.User.ProfileImageURL, &m.User.Bio, &m.User.PhoneNumber,
			&m.User.Address, &m.User.Birthday, &m.User.CreatedAt, &m.User.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
