package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"familyconnect/internal/database"
)

// BackupData is the complete database backup structure
type BackupData struct {
	Version     string             `json:"version"`
	ExportedAt  time.Time          `json:"exported_at"`
	Users       []UserBackup       `json:"users"`
	Families    []FamilyBackup     `json:"families"`
	Members     []MemberBackup     `json:"members"`
	Posts       []PostBackup       `json:"posts"`
	Comments    []CommentBackup    `json:"comments"`
	Likes       []LikeBackup       `json:"likes"`
	Events      []EventBackup      `json:"events"`
	Newsletters []NewsletterBackup `json:"newsletters"`
}

type UserBackup struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	Bio             string `json:"bio"`
	PhoneNumber     string `json:"phone_number"`
	Address         string `json:"address"`
	Birthday        string `json:"birthday"`
}

type FamilyBackup struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
}

type MemberBackup struct {
	FamilyID   int64  `json:"family_id"`
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

type PostBackup struct {
	ID       int64  `json:"id"`
	UserID   string `json:"user_id"`
	FamilyID int64  `json:"family_id"`
	Content  string `json:"content"`
	Images   string `json:"images"`
}

type CommentBackup struct {
	PostID  int64  `json:"post_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

type LikeBackup struct {
	PostID int64  `json:"post_id"`
	UserID string `json:"user_id"`
}

type EventBackup struct {
	FamilyID        int64     `json:"family_id"`
	CreatedByUserID string    `json:"created_by_user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       time.Time `json:"event_date"`
	EventType       string    `json:"event_type"`
}

type NewsletterBackup struct {
	FamilyID        int64      `json:"family_id"`
	CreatedByUserID string     `json:"created_by_user_id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	IncludedPostIDs string     `json:"included_post_ids"`
	IsSent          bool       `json:"is_sent"`
	SentAt          *time.Time `json:"sent_at"`
}

// BackupService handles database export and restore
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes the whole database to a JSON file
func (s *BackupService) Export(outputPath string) error {
	data := BackupData{
		Version:    "1",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(&data); err != nil {
		return err
	}
	if err := s.exportFamilies(&data); err != nil {
		return err
	}
	if err := s.exportContent(&data); err != nil {
		return err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	return nil
}

func (s *BackupService) exportUsers(data *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, email, first_name, last_name, profile_image_url,
		       bio, phone_number, address, birthday
		FROM users ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName,
			&u.ProfileImageURL, &u.Bio, &u.PhoneNumber, &u.Address, &u.Birthday); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		data.Users = append(data.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportFamilies(data *BackupData) error {
	rows, err := s.db.Query("SELECT id, name, description, cover_image_url FROM families ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export families: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f FamilyBackup
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.CoverImageURL); err != nil {
			return fmt.Errorf("failed to scan family: %w", err)
		}
		data.Families = append(data.Families, f)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	memberRows, err := s.db.Query("SELECT family_id, user_id, role, is_approved FROM family_members ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var m MemberBackup
		if err := memberRows.Scan(&m.FamilyID, &m.UserID, &m.Role, &m.IsApproved); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		data.Members = append(data.Members, m)
	}
	return memberRows.Err()
}

func (s *BackupService) exportContent(data *BackupData) error {
	postRows, err := s.db.Query("SELECT id, user_id, family_id, content, images FROM posts ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export posts: %w", err)
	}
	defer postRows.Close()

	for postRows.Next() {
		var p PostBackup
		if err := postRows.Scan(&p.ID, &p.UserID, &p.FamilyID, &p.Content, &p.Images); err != nil {
			return fmt.Errorf("failed to scan post: %w", err)
		}
		data.Posts = append(data.Posts, p)
	}
	if err := postRows.Err(); err != nil {
		return err
	}

	commentRows, err := s.db.Query("SELECT post_id, user_id, content FROM comments ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var c CommentBackup
		if err := commentRows.Scan(&c.PostID, &c.UserID, &c.Content); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		data.Comments = append(data.Comments, c)
	}
	if err := commentRows.Err(); err != nil {
		return err
	}

	likeRows, err := s.db.Query("SELECT post_id, user_id FROM likes ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to export likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var l LikeBackup
		if err := likeRows.Scan(&l.PostID, &l.UserID); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		data.Likes = append(data.Likes, l)
	}
	if err := likeRows.Err(); err != nil {
		return err
	}

	eventRows, err := s.db.Query(`
		SELECT family_id, created_by_user_id, title, description, event_date, event_type
		FROM events ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to export events: %w", err)
	}
	defer eventRows.Close()

	for eventRows.Next() {
		var e EventBackup
		if err := eventRows.Scan(&e.FamilyID, &e.CreatedByUserID, &e.Title,
			&e.Description, &e.EventDate, &e.EventType); err != nil {
			return fmt.Errorf("failed to scan event: %w", err)
		}
		data.Events = append(data.Events, e)
	}
	if err := eventRows.Err(); err != nil {
		return err
	}

	newsletterRows, err := s.db.Query(`
		SELECT family_id, created_by_user_id, title, content, included_post_ids, is_sent, sent_at
		FROM newsletters ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to export newsletters: %w", err)
	}
	defer newsletterRows.Close()

	for newsletterRows.Next() {
		var n NewsletterBackup
		if err := newsletterRows.Scan(&n.FamilyID, &n.CreatedByUserID, &n.Title,
			&n.Content, &n.IncludedPostIDs, &n.IsSent, &n.SentAt); err != nil {
			return fmt.Errorf("failed to scan newsletter: %w", err)
		}
		data.Newsletters = append(data.Newsletters, n)
	}
	return newsletterRows.Err()
}

// Import merges a JSON backup into the database. IDs of posts are
// remapped, so counters are rebuilt from the imported comments and
// likes rather than trusted from the file.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	var data BackupData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	for _, u := range data.Users {
		query := `
			INSERT INTO users (id, email, first_name, last_name, profile_image_url,
			                   bio, phone_number, address, birthday)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, u.ID, u.Email, u.FirstName, u.LastName,
			u.ProfileImageURL, u.Bio, u.PhoneNumber, u.Address, u.Birthday); err != nil {
			if !s.db.GetDialect().IsUniqueViolation(err) {
				return fmt.Errorf("failed to import user %s: %w", u.ID, err)
			}
		}
	}

	familyIDs := make(map[int64]int64, len(data.Families))
	for _, f := range data.Families {
		newID, err := s.db.ExecReturningID(
			"INSERT INTO families (name, description, cover_image_url) VALUES (?, ?, ?)",
			f.Name, f.Description, f.CoverImageURL)
		if err != nil {
			return fmt.Errorf("failed to import family %q: %w", f.Name, err)
		}
		familyIDs[f.ID] = newID
	}

	for _, m := range data.Members {
		query := "INSERT INTO family_members (family_id, user_id, role, is_approved) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, familyIDs[m.FamilyID], m.UserID, m.Role, m.IsApproved); err != nil {
			if !s.db.GetDialect().IsUniqueViolation(err) {
				return fmt.Errorf("failed to import member %s: %w", m.UserID, err)
			}
		}
	}

	postIDs := make(map[int64]int64, len(data.Posts))
	for _, p := range data.Posts {
		newID, err := s.db.ExecReturningID(
			"INSERT INTO posts (user_id, family_id, content, images) VALUES (?, ?, ?, ?)",
			p.UserID, familyIDs[p.FamilyID], p.Content, p.Images)
		if err != nil {
			return fmt.Errorf("failed to import post %d: %w", p.ID, err)
		}
		postIDs[p.ID] = newID
	}

	for _, c := range data.Comments {
		query := "INSERT INTO comments (post_id, user_id, content) VALUES (?, ?, ?)"
		if _, err := s.db.Exec(query, postIDs[c.PostID], c.UserID, c.Content); err != nil {
			return fmt.Errorf("failed to import comment: %w", err)
		}
	}

	for _, l := range data.Likes {
		query := "INSERT INTO likes (post_id, user_id) VALUES (?, ?)"
		if _, err := s.db.Exec(query, postIDs[l.PostID], l.UserID); err != nil {
			if !s.db.GetDialect().IsUniqueViolation(err) {
				return fmt.Errorf("failed to import like: %w", err)
			}
		}
	}

	// Rebuild the denormalized counters for the imported posts
	for _, newID := range postIDs {
		query := `
			UPDATE posts SET
				like_count = (SELECT COUNT(*) FROM likes WHERE post_id = ?),
				comment_count = (SELECT COUNT(*) FROM comments WHERE post_id = ?)
			WHERE id = ?
		`
		if _, err := s.db.Exec(query, newID, newID, newID); err != nil {
			return fmt.Errorf("failed to rebuild counters: %w", err)
		}
	}

	for _, e := range data.Events {
		query := `
			INSERT INTO events (family_id, created_by_user_id, title, description, event_date, event_type)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, familyIDs[e.FamilyID], e.CreatedByUserID,
			e.Title, e.Description, e.EventDate, e.EventType); err != nil {
			return fmt.Errorf("failed to import event %q: %w", e.Title, err)
		}
	}

	for _, n := range data.Newsletters {
		query := `
			INSERT INTO newsletters (family_id, created_by_user_id, title, content,
			                         included_post_ids, is_sent, sent_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, familyIDs[n.FamilyID], n.CreatedByUserID,
			n.Title, n.Content, remapIDList(n.IncludedPostIDs, postIDs), n.IsSent, n.SentAt); err != nil {
			return fmt.Errorf("failed to import newsletter %q: %w", n.Title, err)
		}
	}

	return nil
}

// remapIDList rewrites a comma-separated post ID list through the
// old-to-new ID mapping, dropping references the backup did not carry
func remapIDList(csv string, postIDs map[int64]int64) string {
	if csv == "" {
		return ""
	}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		old, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		if newID, ok := postIDs[old]; ok {
			out = append(out, strconv.FormatInt(newID, 10))
		}
	}
	return strings.Join(out, ",")
}
