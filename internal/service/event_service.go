package service

import (
	"fmt"
	"time"

	"familyconnect/internal/models"
	"familyconnect/internal/repository"
)

const defaultUpcomingLimit = 10

// EventService handles family calendar business logic
type EventService struct {
	eventRepo  *repository.EventRepository
	familyRepo *repository.FamilyRepository
	now        func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo *repository.EventRepository, familyRepo *repository.FamilyRepository) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		familyRepo: familyRepo,
		now:        time.Now,
	}
}

// CreateEvent creates an event in a family's calendar. Any approved member
// may create one. The date is accepted as RFC 3339 or as a bare YYYY-MM-DD.
func (s *EventService) CreateEvent(userID string, familyID int64, title, description, eventDate, eventType string) (*models.Event, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	date, err := parseEventDate(eventDate)
	if err != nil {
		return nil, err
	}
	if eventType == "" {
		eventType = "general"
	}

	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanCreateContent(membership) {
		return nil, ErrForbidden
	}

	event, err := s.eventRepo.CreateEvent(familyID, userID, title, description, date, eventType)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event. The caller must be an approved member of
// its family; outsiders are refused without revealing whether the event
// exists.
func (s *EventService) GetEvent(userID string, eventID int64) (*models.Event, error) {
	event, err := s.eventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	membership, err := s.familyRepo.GetMembership(event.FamilyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	return event, nil
}

// ListFamilyEvents retrieves a family's full calendar, earliest first
func (s *EventService) ListFamilyEvents(userID string, familyID int64) ([]models.Event, error) {
	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	events, err := s.eventRepo.ListFamilyEvents(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// ListUpcomingEvents retrieves a family's next events from now, earliest
// first
func (s *EventService) ListUpcomingEvents(userID string, familyID int64, limit int) ([]models.Event, error) {
	membership, err := s.requireFamily(userID, familyID)
	if err != nil {
		return nil, err
	}
	if !CanViewFamily(membership) {
		return nil, ErrForbidden
	}

	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	events, err := s.eventRepo.ListUpcomingEvents(familyID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return events, nil
}

func (s *EventService) requireFamily(userID string, familyID int64) (*models.FamilyMember, error) {
	family, err := s.familyRepo.GetFamilyByID(familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	membership, err := s.familyRepo.GetMembership(familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership, nil
}

func parseEventDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: event date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid event date %q", ErrInvalidInput, value)
}
