package repositories

import (
	"errors"

	"sports-events-backend/internal/models"

	"gorm.io/gorm"
)

// Sentinel errors the gorm implementations translate storage failures
// into. Services match on these instead of driver-specific errors.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey means a unique constraint rejected the write,
	// e.g. a second registration for the same (event, user) pair.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrSerialization means the transaction lost a concurrency
	// conflict and may be retried.
	ErrSerialization = errors.New("transaction serialization failure")
)

type Repository struct {
	DB               *gorm.DB
	UserRepo         UserRepository
	EventRepo        EventRepository
	RegistrationRepo RegistrationRepository
	ResultRepo       ResultRepository
	CatalogRepo      CatalogRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:               db,
		UserRepo:         NewUserRepository(db),
		EventRepo:        NewEventRepository(db),
		RegistrationRepo: NewRegistrationRepository(db),
		ResultRepo:       NewResultRepository(db),
		CatalogRepo:      NewCatalogRepository(db),
	}
}

func AutoMigrate(db *gorm.DB) error {
	// Enable UUID extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	// Migrate models
	return db.AutoMigrate(
		&models.User{},
		&models.SportType{},
		&models.EventType{},
		&models.Location{},
		&models.Event{},
		&models.EventRegistration{},
		&models.EventResult{},
	)
}

// Interface definitions
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
}

type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	GetEventDetail(id string) (*models.Event, error)
	ListEvents(offset, limit int, filters *EventFilters) ([]models.Event, int64, error)
	// UpdateEvent persists event fields but never the participant
	// counter; only RegistrationTx.AddParticipants mutates it.
	UpdateEvent(event *models.Event) error
	DeleteEvent(id string) error
}

// RegistrationTx is the transaction-scoped view of the registration
// ledger. Every mutation of a registration row and of the event's
// participant counter goes through one RegistrationTx so the capacity
// check, the ledger write and the counter update commit or fail as a
// single unit.
type RegistrationTx interface {
	// GetEventForUpdate loads the event row with a row lock held until
	// the transaction ends, so concurrent capacity checks on the same
	// event serialize.
	GetEventForUpdate(id string) (*models.Event, error)
	GetRegistrationByID(id string) (*models.EventRegistration, error)
	GetRegistrationByEventAndUser(eventID, userID string) (*models.EventRegistration, error)
	CreateRegistration(reg *models.EventRegistration) error
	SaveRegistration(reg *models.EventRegistration) error
	// AddParticipants adjusts the event's denormalized participant
	// counter by delta, floored at zero.
	AddParticipants(eventID string, delta int) error
}

type RegistrationRepository interface {
	InTransaction(fn func(tx RegistrationTx) error) error
	GetRegistrationByID(id string) (*models.EventRegistration, error)
	ListRegistrationsByEvent(eventID string) ([]models.EventRegistration, error)
	ListRegistrationsByUser(userID string) ([]models.EventRegistration, error)
	HasCountedRegistration(eventID, userID string) (bool, error)
	CountCountedByEvent(eventID string) (int64, error)
}

type ResultRepository interface {
	CreateResult(result *models.EventResult) error
	ListResultsByEvent(eventID string) ([]models.EventResult, error)
}

type CatalogRepository interface {
	CreateSportType(st *models.SportType) error
	GetSportTypeByID(id string) (*models.SportType, error)
	ListSportTypes() ([]models.SportType, error)

	CreateEventType(et *models.EventType) error
	GetEventTypeByID(id string) (*models.EventType, error)
	ListEventTypes() ([]models.EventType, error)

	CreateLocation(loc *models.Location) error
	GetLocationByID(id string) (*models.Location, error)
	ListLocations(city string) ([]models.Location, error)
}
