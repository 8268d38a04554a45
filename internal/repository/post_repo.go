package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// PostRepository handles database operations for posts, comments and likes.
// The denormalized like_count and comment_count columns are only ever
// touched here, inside the same transaction as the row change that
// justifies them.
type PostRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) *PostRepository {
	return &PostRepository{db: db}
}

// CreatePost creates a new post in a family
func (r *PostRepository) CreatePost(userID string, familyID int64, content string, images []string) (*models.Post, error) {
	imagesJSON, err := encodeImages(images)
	if err != nil {
		return nil, err
	}

	query := "INSERT INTO posts (user_id, family_id, content, images) VALUES (?, ?, ?, ?)"
	postID, err := r.db.ExecReturningID(query, userID, familyID, content, imagesJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &models.Post{
		ID:        postID,
		UserID:    userID,
		FamilyID:  familyID,
		Content:   content,
		Images:    images,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetPostByID retrieves a post by ID, or nil
func (r *PostRepository) GetPostByID(postID int64) (*models.Post, error) {
	query := `
		SELECT id, user_id, family_id, content, images, like_count, comment_count,
		       created_at, updated_at
		FROM posts WHERE id = ?
	`
	return scanPost(r.db.QueryRow(query, postID))
}

// ListFamilyPosts retrieves a page of a family's posts, newest first
func (r *PostRepository) ListFamilyPosts(familyID int64, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT id, user_id, family_id, content, images, like_count, comment_count,
		       created_at, updated_at
		FROM posts
		WHERE family_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	return r.queryPosts(query, familyID, limit, offset)
}

// ListUserPosts retrieves a page of a user's posts across families, newest first
func (r *PostRepository) ListUserPosts(userID string, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT id, user_id, family_id, content, images, like_count, comment_count,
		       created_at, updated_at
		FROM posts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	return r.queryPosts(query, userID, limit, offset)
}

// AddComment inserts a comment and increments the post's comment count in
// one transaction, so the counter can never drift from the row count
func (r *PostRepository) AddComment(postID int64, userID, content string) (*models.Comment, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO comments (post_id, user_id, content) VALUES (?, ?, ?)"
	commentID, err := tx.ExecReturningID(query, postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	query = "UPDATE posts SET comment_count = comment_count + 1, updated_at = ? WHERE id = ?"
	if _, err := tx.Exec(query, time.Now(), postID); err != nil {
		return nil, fmt.Errorf("failed to update comment count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Comment{
		ID:        commentID,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// ListComments retrieves all comments on a post, oldest first
func (r *PostRepository) ListComments(postID int64) ([]models.Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// AddLike inserts a like and increments the post's like count in one
// transaction. The UNIQUE(post_id, user_id) constraint resolves concurrent
// duplicate likes to exactly one row and one increment; the loser sees
// ErrDuplicate.
func (r *PostRepository) AddLike(postID int64, userID string) (*models.Like, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO likes (post_id, user_id) VALUES (?, ?)"
	likeID, err := tx.ExecReturningID(query, postID, userID)
	if err != nil {
		if tx.GetDialect().IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	query = "UPDATE posts SET like_count = like_count + 1, updated_at = ? WHERE id = ?"
	if _, err := tx.Exec(query, time.Now(), postID); err != nil {
		return nil, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.Like{
		ID:        likeID,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}

// RemoveLike deletes a user's like and decrements the post's like count in
// one transaction. Returns false when no like existed.
func (r *PostRepository) RemoveLike(postID int64, userID string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "DELETE FROM likes WHERE post_id = ? AND user_id = ?"
	result, err := tx.Exec(query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	query = "UPDATE posts SET like_count = like_count - 1, updated_at = ? WHERE id = ?"
	if _, err := tx.Exec(query, time.Now(), postID); err != nil {
		return false, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// GetLike retrieves a user's like on a post, or nil
func (r *PostRepository) GetLike(postID int64, userID string) (*models.Like, error) {
	query := "SELECT id, post_id, user_id, created_at FROM likes WHERE post_id = ? AND user_id = ?"
	like := &models.Like{}
	err := r.db.QueryRow(query, postID, userID).Scan(
		&like.ID, &like.PostID, &like.UserID, &like.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return like, nil
}

func (r *PostRepository) queryPosts(query string, args ...interface{}) ([]models.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var imagesJSON string
		if err := rows.Scan(&p.ID, &p.UserID, &p.FamilyID, &p.Content, &imagesJSON,
			&p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if p.Images, err = decodeImages(imagesJSON); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

func scanPost(row *sql.Row) (*models.Post, error) {
	post := &models.Post{}
	var imagesJSON string
	err := row.Scan(&post.ID, &post.UserID, &post.FamilyID, &post.Content,
		&imagesJSON, &post.LikeCount, &post.CommentCount,
		&post.CreatedAt, &post.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if post.Images, err = decodeImages(imagesJSON); err != nil {
		return nil, err
	}

	return post, nil
}

// encodeImages stores the image URL list as a JSON array in a text column
func encodeImages(images []string) (string, error) {
	if len(images) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("failed to encode images: %w", err)
	}
	return string(data), nil
}

func decodeImages(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var images []string
	if err := json.Unmarshal([]byte(data), &images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return images, nil
}
