package repository

import (
	"database/sql"
	"fmt"
	"time"

	"familyconnect/internal/database"
	"familyconnect/internal/models"
)

// EventRepository handles database operations for family events
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateEvent creates a new event in a family
func (r *EventRepository) CreateEvent(familyID int64, createdByUserID, title, description string, eventDate time.Time, eventType string) (*models.Event, error) {
	query := `
		INSERT INTO events (family_id, created_by_user_id, title, description, event_date, event_type)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	eventID, err := r.db.ExecReturningID(query, familyID, createdByUserID, title, description, eventDate, eventType)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &models.Event{
		ID:              eventID,
		FamilyID:        familyID,
		CreatedByUserID: createdByUserID,
		Title:           title,
		Description:     description,
		EventDate:       eventDate,
		EventType:       eventType,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}, nil
}

// GetEventByID retrieves an event by ID, or nil
func (r *EventRepository) GetEventByID(eventID int64) (*models.Event, error) {
	query := `
		SELECT id, family_id, created_by_user_id, title, description, event_date,
		       event_type, created_at, updated_at
		FROM events WHERE id = ?
	`
	event := &models.Event{}
	err := r.db.QueryRow(query, eventID).Scan(
		&event.ID, &event.FamilyID, &event.CreatedByUserID, &event.Title,
		&event.Description, &event.EventDate, &event.EventType,
		&event.CreatedAt, &event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListFamilyEvents retrieves all of a family's events, earliest first
func (r *EventRepository) ListFamilyEvents(familyID int64) ([]models.Event, error) {
	query := `
		SELECT id, family_id, created_by_user_id, title, description, event_date,
		       event_type, created_at, updated_at
		FROM events
		WHERE family_id = ?
		ORDER BY event_date, id
	`
	return r.queryEvents(query, familyID)
}

// ListUpcomingEvents retrieves events on or after now, earliest first,
// capped at limit
func (r *EventRepository) ListUpcomingEvents(familyID int64, now time.Time, limit int) ([]models.Event, error) {
	query := `
		SELECT id, family_id, created_by_user_id, title, description, event_date,
		       event_type, created_at, updated_at
		FROM events
		WHERE family_id = ? AND event_date >= ?
		ORDER BY event_date, id
		LIMIT ?
	`
	return r.queryEvents(query, familyID, now, limit)
}

func (r *EventRepository) queryEvents(query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.FamilyID, &e.CreatedByUserID, &e.Title,
			&e.Description, &e.EventDate, &e.EventType,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
