package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"familyconnect/internal/service"
)

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"validation", fmt.Errorf("%w: name is required", service.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"family not found", service.ErrFamilyNotFound, http.StatusNotFound, "not_found"},
		{"post not found", service.ErrPostNotFound, http.StatusNotFound, "not_found"},
		{"like not found", service.ErrLikeNotFound, http.StatusNotFound, "not_found"},
		{"already member", service.ErrAlreadyMember, http.StatusConflict, "conflict"},
		{"already liked", service.ErrAlreadyLiked, http.StatusConflict, "conflict"},
		{"email delivery", fmt.Errorf("%w: 1 of 3 sends failed", service.ErrEmailDelivery), http.StatusInternalServerError, "email_delivery"},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error != tt.wantKind {
				t.Errorf("error kind = %q, want %q", body.Error, tt.wantKind)
			}
			if body.Message == "" {
				t.Error("message must not be empty")
			}
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("pq: connection refused to 10.0.0.5"))

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Errorf("internal errors must not leak detail, got %q", body.Message)
	}
}
