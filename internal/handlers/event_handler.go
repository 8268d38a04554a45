package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"familyconnect/internal/service"
)

// EventHandler handles family calendar endpoints
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent handles POST /api/families/{id}/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return
	}

	event, err := h.eventService.CreateEvent(userID, familyID, req.Title, req.Description, req.EventDate, req.EventType)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	event, err := h.eventService.GetEvent(userID, eventID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(event))
}

// ListFamilyEvents handles GET /api/families/{id}/events
func (h *EventHandler) ListFamilyEvents(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	events, err := h.eventService.ListFamilyEvents(userID, familyID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

// ListUpcomingEvents handles GET /api/families/{id}/upcoming-events
func (h *EventHandler) ListUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	familyID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.eventService.ListUpcomingEvents(userID, familyID, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}
