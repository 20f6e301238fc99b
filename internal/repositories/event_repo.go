package repositories

import (
	"errors"
	"time"

	"sports-events-backend/internal/models"

	"gorm.io/gorm"
)

type EventFilters struct {
	IncludePrivate bool
	Status         models.EventStatus
	SportTypeID    string
	EventTypeID    string
	City           string
	DateFrom       *time.Time
	DateTo         *time.Time
	Search         string
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

// CreateEvent inserts a new event
func (r *eventRepo) CreateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	return translateError(r.db.Create(event).Error)
}

// GetEventByID retrieves an event by its ID without relations
func (r *eventRepo) GetEventByID(id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	var event models.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

// GetEventDetail retrieves an event with organizer, catalog references,
// registrations and results preloaded.
func (r *eventRepo) GetEventDetail(id string) (*models.Event, error) {
	if id == "" {
		return nil, errors.New("event ID cannot be empty")
	}

	var event models.Event
	if err := r.db.
		Preload("Organizer").
		Preload("SportType").
		Preload("EventType").
		Preload("Location").
		Preload("Registrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_registrations.registration_datetime ASC")
		}).
		Preload("Registrations.User").
		Preload("Results").
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

// ListEvents retrieves a paginated list of events with optional filters
func (r *eventRepo) ListEvents(offset, limit int, filters *EventFilters) ([]models.Event, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []models.Event
	var total int64

	query := r.db.Model(&models.Event{})

	// Apply filters
	if filters != nil {
		if !filters.IncludePrivate {
			query = query.Where("is_public = ?", true)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.SportTypeID != "" {
			query = query.Where("sport_type_id = ?", filters.SportTypeID)
		}
		if filters.EventTypeID != "" {
			query = query.Where("event_type_id = ?", filters.EventTypeID)
		}
		if filters.City != "" {
			query = query.
				Joins("LEFT JOIN locations ON events.location_id = locations.id").
				Where("locations.city ILIKE ?", "%"+filters.City+"%")
		}
		if filters.DateFrom != nil {
			query = query.Where("start_datetime >= ?", *filters.DateFrom)
		}
		if filters.DateTo != nil {
			query = query.Where("start_datetime <= ?", *filters.DateTo)
		}
		if filters.Search != "" {
			searchTerm := "%" + filters.Search + "%"
			query = query.Where("title ILIKE ? OR events.description ILIKE ?", searchTerm, searchTerm)
		}
	}

	// Count total records
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	// Fetch paginated results
	if err := query.
		Preload("SportType").
		Preload("EventType").
		Preload("Location").
		Offset(offset).
		Limit(limit).
		Order("start_datetime ASC").
		Find(&events).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return events, total, nil
}

// UpdateEvent saves changes to an existing event. The participant
// counter column is excluded from the write: it belongs to the
// registration ledger transaction, and a plain save would overwrite it
// with whatever stale value the caller read before a concurrent
// registration committed.
func (r *eventRepo) UpdateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	var existing models.Event
	if err := r.db.Where("id = ?", event.ID).First(&existing).Error; err != nil {
		return translateError(err)
	}

	return translateError(r.db.Omit("current_participants_count").Save(event).Error)
}

// DeleteEvent removes an event. Registrations and results go with it
// through the cascade constraints.
func (r *eventRepo) DeleteEvent(id string) error {
	if id == "" {
		return errors.New("event ID cannot be empty")
	}

	result := r.db.Where("id = ?", id).Delete(&models.Event{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
