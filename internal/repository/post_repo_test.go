package repository

import (
	"errors"
	"sync"
	"testing"
)

func TestCommentCountTracksComments(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	postRepo := NewPostRepository(db)

	post, err := postRepo.CreatePost("creator", family.ID, "hello", nil)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := postRepo.AddComment(post.ID, "creator", "nice"); err != nil {
			t.Fatalf("failed to add comment: %v", err)
		}
	}

	got, err := postRepo.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("failed to get post: %v", err)
	}
	if got.CommentCount != 3 {
		t.Errorf("expected comment count 3, got %d", got.CommentCount)
	}

	comments, err := postRepo.ListComments(post.ID)
	if err != nil {
		t.Fatalf("failed to list comments: %v", err)
	}
	if len(comments) != got.CommentCount {
		t.Errorf("comment count %d does not match %d rows", got.CommentCount, len(comments))
	}
}

func TestLikeCountTracksLikes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	postRepo := NewPostRepository(db)

	post, err := postRepo.CreatePost("creator", family.ID, "hello", nil)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	if _, err := postRepo.AddLike(post.ID, "creator"); err != nil {
		t.Fatalf("failed to like: %v", err)
	}
	got, _ := postRepo.GetPostByID(post.ID)
	if got.LikeCount != 1 {
		t.Errorf("expected like count 1, got %d", got.LikeCount)
	}
	if like, err := postRepo.GetLike(post.ID, "creator"); err != nil || like == nil {
		t.Fatalf("expected like row, got like=%v err=%v", like, err)
	}

	// Second like from the same user must not change the counter
	if _, err := postRepo.AddLike(post.ID, "creator"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	got, _ = postRepo.GetPostByID(post.ID)
	if got.LikeCount != 1 {
		t.Errorf("expected like count 1 after duplicate, got %d", got.LikeCount)
	}

	removed, err := postRepo.RemoveLike(post.ID, "creator")
	if err != nil || !removed {
		t.Fatalf("unlike failed: removed=%v err=%v", removed, err)
	}
	got, _ = postRepo.GetPostByID(post.ID)
	if got.LikeCount != 0 {
		t.Errorf("expected like count 0 after unlike, got %d", got.LikeCount)
	}
	if like, err := postRepo.GetLike(post.ID, "creator"); err != nil || like != nil {
		t.Errorf("expected no like row, got like=%v err=%v", like, err)
	}

	// Removing a like that is not there reports false without touching
	// the counter
	removed, err = postRepo.RemoveLike(post.ID, "creator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("expected false for missing like")
	}
}

func TestConcurrentDuplicateLikes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	postRepo := NewPostRepository(db)

	post, err := postRepo.CreatePost("creator", family.ID, "hello", nil)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = postRepo.AddLike(post.ID, "creator")
		}(i)
	}
	wg.Wait()

	successes, duplicates := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicate):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 successful like, got %d", successes)
	}
	if duplicates != attempts-1 {
		t.Errorf("expected %d duplicates, got %d", attempts-1, duplicates)
	}

	got, err := postRepo.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("failed to get post: %v", err)
	}
	if got.LikeCount != 1 {
		t.Errorf("expected like count 1, got %d", got.LikeCount)
	}
}

func TestPostImagesRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	postRepo := NewPostRepository(db)

	images := []string{"/uploads/a.jpg", "/uploads/b.png"}
	post, err := postRepo.CreatePost("creator", family.ID, "pics", images)
	if err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	got, err := postRepo.GetPostByID(post.ID)
	if err != nil {
		t.Fatalf("failed to get post: %v", err)
	}
	if len(got.Images) != 2 || got.Images[0] != images[0] || got.Images[1] != images[1] {
		t.Errorf("expected images %v, got %v", images, got.Images)
	}
}

func TestListFamilyPostsNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := newTestDB(t)
	family := createTestFamily(t, db, "creator")
	postRepo := NewPostRepository(db)

	var lastID int64
	for i := 0; i < 3; i++ {
		post, err := postRepo.CreatePost("creator", family.ID, "post", nil)
		if err != nil {
			t.Fatalf("failed to create post: %v", err)
		}
		lastID = post.ID
	}

	posts, err := postRepo.ListFamilyPosts(family.ID, 10, 0)
	if err != nil {
		t.Fatalf("failed to list posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].ID != lastID {
		t.Errorf("expected newest post first, got id %d", posts[0].ID)
	}

	page, err := postRepo.ListFamilyPosts(family.ID, 2, 2)
	if err != nil {
		t.Fatalf("failed to list page: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("expected 1 post on second page, got %d", len(page))
	}
}
