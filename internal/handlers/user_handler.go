package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"familyconnect/internal/service"
)

// UserHandler handles user profile and upload endpoints
type UserHandler struct {
	userService   *service.UserService
	uploadService *service.UploadService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, uploadService *service.UploadService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		uploadService: uploadService,
	}
}

// GetMe handles GET /api/auth/user
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /api/user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	user, err := h.userService.UpdateProfile(userID, req.FirstName, req.LastName,
		req.Bio, req.PhoneNumber, req.Address, req.Birthday)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UploadImage handles POST /api/upload. Accepts a multipart form with an
// "image" field and returns the stored file's URL path.
func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.uploadService.MaxSize()); err != nil {
		respondError(w, fmt.Errorf("%w: invalid multipart form", service.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, fmt.Errorf("%w: image field is required", service.ErrInvalidInput))
		return
	}
	defer file.Close()

	url, err := h.uploadService.SaveImage(file, header.Filename)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
