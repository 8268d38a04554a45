package models

import "time"

// Event is a dated family occasion (birthday, anniversary, graduation, ...)
type Event struct {
	ID              int64
	FamilyID        int64
	CreatedByUserID string
	Title           string
	Description     string
	EventDate       time.Time
	EventType       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
