package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// NewsletterRepository handles database operations for newsletters
type NewsletterRepository struct {
	db *database.DB
}

// NewNewsletterRepository creates a new newsletter repository
func NewNewsletterRepository(db *database.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// CreateNewsletter creates a newsletter draft
func (r *NewsletterRepository) CreateNewsletter(familyID int64, createdByUserID, title, content string, includedPostIDs []int64) (*models.Newsletter, error) {
	query := `
		INSERT INTO newsletters (family_id, created_by_user_id, title, content, included_post_ids)
		VALUES (?, ?, ?, ?, ?)
	`
	newsletterID, err := r.db.ExecReturningID(query, familyID, createdByUserID, title, content,
		postIDsToString(includedPostIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}

	return &models.Newsletter{
		ID:              newsletterID,
		FamilyID:        familyID,
		CreatedByUserID: createdByUserID,
		Title:           title,
		Content:         content,
		IncludedPostIDs: includedPostIDs,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}, nil
}

// GetNewsletterByID retrieves a newsletter by ID, or nil
func (r *NewsletterRepository) GetNewsletterByID(newsletterID int64) (*models.Newsletter, error) {
	query := `
		SELECT id, family_id, created_by_user_id, title, content, included_post_ids,
		       is_sent, sent_at, created_at, updated_at
		FROM newsletters WHERE id = ?
	`
	newsletter := &models.Newsletter{}
	var idList string
	var sentAt sql.NullTime
	err := r.db.QueryRow(query, newsletterID).Scan(
		&newsletter.ID, &newsletter.FamilyID, &newsletter.CreatedByUserID,
		&newsletter.Title, &newsletter.Content, &idList,
		&newsletter.IsSent, &sentAt, &newsletter.CreatedAt, &newsletter.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get newsletter: %w", err)
	}

	if newsletter.IncludedPostIDs, err = stringToPostIDs(idList); err != nil {
		return nil, err
	}
	if sentAt.Valid {
		newsletter.SentAt = &sentAt.Time
	}

	return newsletter, nil
}

// ListFamilyNewsletters retrieves all of a family's newsletters, newest first
func (r *NewsletterRepository) ListFamilyNewsletters(familyID int64) ([]models.Newsletter, error) {
	query := `
		SELECT id, family_id, created_by_user_id, title, content, included_post_ids,
		       is_sent, sent_at, created_at, updated_at
		FROM newsletters
		WHERE family_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query newsletters: %w", err)
	}
	defer rows.Close()

	var newsletters []models.Newsletter
	for rows.Next() {
		var n models.Newsletter
		var idList string
		var sentAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.FamilyID, &n.CreatedByUserID, &n.Title,
			&n.Content, &idList, &n.IsSent, &sentAt,
			&n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan newsletter: %w", err)
		}
		if n.IncludedPostIDs, err = stringToPostIDs(idList); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}
		newsletters = append(newsletters, n)
	}

	return newsletters, rows.Err()
}

// MarkSent records a successful dispatch. Returns false when no such
// newsletter exists.
func (r *NewsletterRepository) MarkSent(newsletterID int64, sentAt time.Time) (bool, error) {
	dialect := r.db.GetDialect()
	query := fmt.Sprintf(
		"UPDATE newsletters SET is_sent = %s, sent_at = ?, updated_at = ? WHERE id = ?",
		dialect.BoolValue(true))

	result, err := r.db.Exec(query, sentAt, time.Now(), newsletterID)
	if err != nil {
		return false, fmt.Errorf("failed to mark newsletter sent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check mark sent result: %w", err)
	}

	return rows > 0, nil
}

// postIDsToString serializes post IDs as a comma-separated list for storage
func postIDsToString(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// stringToPostIDs deserializes a comma-separated ID list
func stringToPostIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse post ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
