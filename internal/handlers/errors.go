package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"familyconnect/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps a service error onto an HTTP status and a JSON body.
// Anything that is not a known sentinel is logged and reported as a bare
// internal error, without leaking detail to the client.
func respondError(w http.ResponseWriter, err error) {
	status, kind := classifyError(err)
	msg := err.Error()
	if kind == "internal" {
		log.Printf("internal error: %v", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: kind, Message: msg})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrFamilyNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrNewsletterNotFound),
		errors.Is(err, service.ErrLikeNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrAlreadyLiked):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrEmailDelivery):
		return http.StatusInternalServerError, "email_delivery"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
