package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"familyconnect/internal/service"
)

// NewsletterHandler handles newsletter endpoints
type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// CreateNewsletter handles POST /api/families/{id}/newsletters
func (h *NewsletterHandler) CreateNewsletter(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createNewsletterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	newsletter, err := h.newsletterService.CreateNewsletter(userID, familyID, req.Title, req.Content, req.IncludedPostIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNewsletterResponse(newsletter))
}

// ListFamilyNewsletters handles GET /api/families/{id}/newsletters
func (h *NewsletterHandler) ListFamilyNewsletters(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	newsletters, err := h.newsletterService.ListFamilyNewsletters(userID, familyID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNewsletterResponses(newsletters))
}

// GetNewsletter handles GET /api/newsletters/{id}
func (h *NewsletterHandler) GetNewsletter(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	newsletterID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	newsletter, err := h.newsletterService.GetNewsletter(userID, newsletterID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNewsletterResponse(newsletter))
}

// SendNewsletter handles POST /api/newsletters/{id}/send
func (h *NewsletterHandler) SendNewsletter(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	newsletterID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	newsletter, err := h.newsletterService.SendNewsletter(r.Context(), userID, newsletterID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toNewsletterResponse(newsletter))
}
