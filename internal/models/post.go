package models

import "time"

// MaxPostImages caps the number of image URLs attached to a single post
const MaxPostImages = 5

// Post is an update shared within a family. LikeCount and CommentCount are
// denormalized counters maintained by the repository in the same transaction
// as the like/comment row change; they are never set directly.
type Post struct {
	ID           int64
	UserID       string
	FamilyID     int64
	Content      string
	Images       []string
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Comment belongs to a post. Comments cannot be deleted, so the post's
// comment count only ever grows.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Like records a single user's like on a post. At most one exists per
// (post, user) pair.
type Like struct {
	ID        int64
	PostID    int64
	UserID    string
	CreatedAt time.Time
}
