package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"familyconnect/internal/service"
)

// FamilyHandler handles family and membership endpoints
type FamilyHandler struct {
	familyService *service.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// CreateFamily handles POST /api/families
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req createFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	family, err := h.familyService.CreateFamily(userID, req.Name, req.Description, req.CoverImageURL)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFamilyResponse(family))
}

// ListFamilies handles GET /api/families
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	families, err := h.familyService.GetUserFamilies(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponses(families))
}

// GetFamily handles GET /api/families/{id}
func (h *FamilyHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	family, err := h.familyService.GetFamily(userID, familyID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(family))
}

// UpdateFamily handles PUT /api/families/{id}
func (h *FamilyHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	family, err := h.familyService.UpdateFamily(userID, familyID, req.Name, req.Description, req.CoverImageURL)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(family))
}

// JoinFamily handles POST /api/families/{id}/members
func (h *FamilyHandler) JoinFamily(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.familyService.JoinFamily(userID, familyID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

// ListMembers handles GET /api/families/{id}/members
func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	members, err := h.familyService.ListMembers(userID, familyID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberWithUserResponses(members))
}

// ApproveMember handles PUT /api/families/{familyId}/members/{memberId}/approve
func (h *FamilyHandler) ApproveMember(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, memberID, err := memberPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.familyService.ApproveMember(userID, familyID, memberID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// UpdateMemberRole handles PUT /api/families/{familyId}/members/{memberId}/role
func (h *FamilyHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, memberID, err := memberPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	member, err := h.familyService.UpdateMemberRole(userID, familyID, memberID, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// RemoveMember handles DELETE /api/families/{familyId}/members/{memberId}
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, memberID, err := memberPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.familyService.RemoveMember(userID, familyID, memberID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func memberPathIDs(r *http.Request) (familyID, memberID int64, err error) {
	familyID, err = pathID(r, "familyId")
	if err != nil {
		return 0, 0, err
	}
	memberID, err = pathID(r, "memberId")
	if err != nil {
		return 0, 0, err
	}
	return familyID, memberID, nil
}

// pathID parses an int64 path parameter
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", service.ErrInvalidInput, name)
	}
	return id, nil
}
