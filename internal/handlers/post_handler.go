package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"familyconnect/internal/service"
)

// PostHandler handles post, comment and like endpoints
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost handles POST /api/families/{id}/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	post, err := h.postService.CreatePost(userID, familyID, req.Content, req.Images)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// GetPost handles GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	post, err := h.postService.GetPost(userID, postID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// ListFamilyPosts handles GET /api/families/{id}/posts
func (h *PostHandler) ListFamilyPosts(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	limit, offset := pageParams(r)
	posts, err := h.postService.ListFamilyPosts(userID, familyID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

// ListOwnPosts handles GET /api/user/posts
func (h *PostHandler) ListOwnPosts(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	limit, offset := pageParams(r)
	posts, err := h.postService.ListUserPosts(userID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponses(posts))
}

// AddComment handles POST /api/posts/{id}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	comment, err := h.postService.AddComment(userID, postID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListComments handles GET /api/posts/{id}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	comments, err := h.postService.ListComments(userID, postID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCommentResponses(comments))
}

// LikePost handles POST /api/posts/{id}/likes
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	like, err := h.postService.LikePost(userID, postID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, likeResponse{
		ID:        like.ID,
		PostID:    like.PostID,
		UserID:    like.UserID,
		CreatedAt: like.CreatedAt,
	})
}

// UnlikePost handles DELETE /api/posts/{id}/likes
func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	postID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.postService.UnlikePost(userID, postID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pageParams parses limit and offset query parameters, leaving zero
// values for the service defaults
func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
