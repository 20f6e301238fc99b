package services

import (
	"errors"
	"fmt"
	"time"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventService handles event CRUD and discovery. The capacity fields
// it exposes are read-only here; only the registration ledger mutates
// the participant counter.
type EventService struct {
	events  repositories.EventRepository
	catalog repositories.CatalogRepository
	cfg     *config.Config
}

func NewEventService(events repositories.EventRepository, catalog repositories.CatalogRepository, cfg *config.Config) *EventService {
	return &EventService{events: events, catalog: catalog, cfg: cfg}
}

type CreateEventRequest struct {
	OrganizerID          string
	Title                string
	Description          string
	SportTypeID          string
	EventTypeID          string
	LocationID           string
	CustomLocationText   string
	StartDatetime        time.Time
	EndDatetime          *time.Time
	RegistrationDeadline *time.Time
	MaxParticipants      *int
	Status               models.EventStatus
	IsPublic             bool
	EntryFee             *float64
	ContactEmail         string
	ContactPhone         string
}

func (s *EventService) validateSchedule(start time.Time, end, deadline *time.Time) error {
	if end != nil && !end.After(start) {
		return NewDomainError("end date must be after start date", ErrInvalidInput, nil)
	}
	if deadline != nil && !deadline.Before(start) {
		return NewDomainError("registration deadline must be before the start date", ErrInvalidInput, nil)
	}
	return nil
}

func (s *EventService) CreateEvent(req CreateEventRequest) (*models.Event, error) {
	if err := s.validateSchedule(req.StartDatetime, req.EndDatetime, req.RegistrationDeadline); err != nil {
		return nil, err
	}
	if req.MaxParticipants != nil && *req.MaxParticipants <= 0 {
		return nil, NewDomainError("max participants must be a positive number", ErrInvalidInput, nil)
	}

	status := req.Status
	if status == "" {
		status = models.EventPlanned
	}
	if !status.Valid() {
		return nil, NewDomainError(fmt.Sprintf("%q is not a valid event status", status), ErrInvalidInput, nil)
	}

	if _, err := s.catalog.GetSportTypeByID(req.SportTypeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("sport type not found", ErrInvalidInput, err)
		}
		return nil, NewDomainError("failed to look up sport type", ErrDatabaseError, err)
	}
	if _, err := s.catalog.GetEventTypeByID(req.EventTypeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event type not found", ErrInvalidInput, err)
		}
		return nil, NewDomainError("failed to look up event type", ErrDatabaseError, err)
	}

	event := &models.Event{
		ID:                   uuid.New(),
		Title:                req.Title,
		Description:          req.Description,
		OrganizerID:          uuid.MustParse(req.OrganizerID),
		SportTypeID:          uuid.MustParse(req.SportTypeID),
		EventTypeID:          uuid.MustParse(req.EventTypeID),
		CustomLocationText:   req.CustomLocationText,
		StartDatetime:        req.StartDatetime,
		EndDatetime:          req.EndDatetime,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxParticipants:      req.MaxParticipants,
		Status:               status,
		IsPublic:             req.IsPublic,
		EntryFee:             req.EntryFee,
		ContactEmail:         req.ContactEmail,
		ContactPhone:         req.ContactPhone,
	}

	if req.LocationID != "" {
		loc, err := s.catalog.GetLocationByID(req.LocationID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NewDomainError("location not found", ErrInvalidInput, err)
			}
			return nil, NewDomainError("failed to look up location", ErrDatabaseError, err)
		}
		event.LocationID = &loc.ID
	}

	if err := s.events.CreateEvent(event); err != nil {
		return nil, NewDomainError("failed to create event", ErrDatabaseError, err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"organizer": event.OrganizerID,
	}).Info("event created")

	return event, nil
}

type UpdateEventRequest struct {
	Title                *string
	Description          *string
	LocationID           *string
	CustomLocationText   *string
	StartDatetime        *time.Time
	EndDatetime          *time.Time
	RegistrationDeadline *time.Time
	MaxParticipants      *int
	Status               *models.EventStatus
	IsPublic             *bool
	EntryFee             *float64
	ContactEmail         *string
	ContactPhone         *string
}

// UpdateEvent applies partial changes to an event. Organizer only. The
// participant counter is never client-settable.
func (s *EventService) UpdateEvent(eventID, actorID string, req UpdateEventRequest) (*models.Event, error) {
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event not found", ErrEventNotFound, err)
		}
		return nil, NewDomainError("failed to load event", ErrDatabaseError, err)
	}
	if event.OrganizerID.String() != actorID {
		return nil, NewDomainError("only the organizer can update the event", ErrPermissionDenied, nil)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.CustomLocationText != nil {
		event.CustomLocationText = *req.CustomLocationText
	}
	if req.StartDatetime != nil {
		event.StartDatetime = *req.StartDatetime
	}
	if req.EndDatetime != nil {
		event.EndDatetime = req.EndDatetime
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants <= 0 {
			return nil, NewDomainError("max participants must be a positive number", ErrInvalidInput, nil)
		}
		event.MaxParticipants = req.MaxParticipants
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, NewDomainError(fmt.Sprintf("%q is not a valid event status", *req.Status), ErrInvalidInput, nil)
		}
		event.Status = *req.Status
	}
	if req.IsPublic != nil {
		event.IsPublic = *req.IsPublic
	}
	if req.EntryFee != nil {
		event.EntryFee = req.EntryFee
	}
	if req.ContactEmail != nil {
		event.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		event.ContactPhone = *req.ContactPhone
	}

	if req.LocationID != nil {
		if *req.LocationID == "" {
			event.LocationID = nil
		} else {
			loc, err := s.catalog.GetLocationByID(*req.LocationID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return nil, NewDomainError("location not found", ErrInvalidInput, err)
				}
				return nil, NewDomainError("failed to look up location", ErrDatabaseError, err)
			}
			event.LocationID = &loc.ID
		}
	}

	if err := s.validateSchedule(event.StartDatetime, event.EndDatetime, event.RegistrationDeadline); err != nil {
		return nil, err
	}

	if err := s.events.UpdateEvent(event); err != nil {
		return nil, NewDomainError("failed to update event", ErrDatabaseError, err)
	}
	return event, nil
}

// DeleteEvent removes an event together with its registrations and
// results. Organizer only.
func (s *EventService) DeleteEvent(eventID, actorID string) error {
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NewDomainError("event not found", ErrEventNotFound, err)
		}
		return NewDomainError("failed to load event", ErrDatabaseError, err)
	}
	if event.OrganizerID.String() != actorID {
		return NewDomainError("only the organizer can delete the event", ErrPermissionDenied, nil)
	}

	if err := s.events.DeleteEvent(eventID); err != nil {
		return NewDomainError("failed to delete event", ErrDatabaseError, err)
	}

	logrus.WithField("event_id", eventID).Info("event deleted")
	return nil
}

func (s *EventService) GetEvent(id string) (*models.Event, error) {
	event, err := s.events.GetEventDetail(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event not found", ErrEventNotFound, err)
		}
		return nil, NewDomainError("failed to load event", ErrDatabaseError, err)
	}
	return event, nil
}

func (s *EventService) ListEvents(page, pageSize int, filters *repositories.EventFilters) ([]models.Event, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	events, total, err := s.events.ListEvents(offset, pageSize, filters)
	if err != nil {
		return nil, 0, 0, NewDomainError("failed to list events", ErrDatabaseError, err)
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return events, total, totalPages, nil
}
