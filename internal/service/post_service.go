package service

import (
	"errors"
	"fmt"

	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PostService handles post, comment and like business logic
type PostService struct {
	postRepo   *repository.PostRepository
	familyRepo *repository.FamilyRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo *repository.PostRepository, familyRepo *repository.FamilyRepository) *PostService {
	return &PostService{
		postRepo:   postRepo,
		familyRepo: familyRepo,
	}
}

// CreatePost creates a post in a family. Any approved member may post.
func (s *PostService) CreatePost(userID string, familyID int64, content string, images []string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: post content is required", ErrInvalidInput)
	}
	if len(images) > models.MaxPostImages {
		return nil, fmt.Errorf("%w: a post can have at most %d images", ErrInvalidInput, models.MaxPostImages)
	}

	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanCreateContent(membership) {
		return nil, ErrForbidden
	}

	post, err := s.postRepo.CreatePost(userID, familyID, content, images)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost retrieves a post. The caller must be an approved member of the
// post's family.
func (s *PostService) GetPost(userID string, postID int64) (*models.Post, error) {
	post, _, err := s.resolvePost(userID, postID)
	return post, err
}

// ListFamilyPosts retrieves a page of a family's posts, newest first
func (s *PostService) ListFamilyPosts(userID string, familyID int64, limit, offset int) ([]models.Post, error) {
	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	limit, offset = clampPage(limit, offset)
	posts, err := s.postRepo.ListFamilyPosts(familyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListUserPosts retrieves a page of the caller's own posts across all
// their families, newest first
func (s *PostService) ListUserPosts(userID string, limit, offset int) ([]models.Post, error) {
	limit, offset = clampPage(limit, offset)
	posts, err := s.postRepo.ListUserPosts(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// AddComment adds a comment to a post. Any approved member of the post's
// family may comment.
func (s *PostService) AddComment(userID string, postID int64, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}

	_, membership, err := s.resolvePost(userID, postID)
	if err != nil {
		return nil, err
	}
	if !CanInteract(membership) {
		return nil, ErrForbidden
	}

	comment, err := s.postRepo.AddComment(postID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ListComments retrieves a post's comments, oldest first
func (s *PostService) ListComments(userID string, postID int64) ([]models.Comment, error) {
	_, membership, err := s.resolvePost(userID, postID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	comments, err := s.postRepo.ListComments(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// LikePost records the caller's like on a post. Liking twice is
// ErrAlreadyLiked, no matter how the two attempts interleave.
func (s *PostService) LikePost(userID string, postID int64) (*models.Like, error) {
	_, membership, err := s.resolvePost(userID, postID)
	if err != nil {
		return nil, err
	}
	if !CanInteract(membership) {
		return nil, ErrForbidden
	}

	like, err := s.postRepo.AddLike(postID, userID)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrAlreadyLiked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	return like, nil
}

// UnlikePost removes the caller's like from a post
func (s *PostService) UnlikePost(userID string, postID int64) error {
	_, membership, err := s.resolvePost(userID, postID)
	if err != nil {
		return err
	}
	if !CanInteract(membership) {
		return ErrForbidden
	}

	removed, err := s.postRepo.RemoveLike(postID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	if !removed {
		return ErrLikeNotFound
	}

	return nil
}

// resolvePost loads a post and the caller's membership in its family.
// Non-members get ErrForbidden rather than a hint that the post exists.
func (s *PostService) resolvePost(userID string, postID int64) (*models.Post, *models.FamilyMember, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}

	membership, err := s.familyRepo.GetMembership(post.FamilyID, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if !CanViewFamily(membership) {
		return nil, nil, ErrForbidden
	}

	return post, membership, nil
}

func (s *PostService) requireFamily(userID string, familyID int64) (*models.FamilyMember, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	membership, err := s.familyRepo.GetMembership(familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
