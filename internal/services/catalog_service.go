package services

import (
	"errors"
	"strings"

	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService manages the lookup tables events reference: sport
// types, event types and locations.
type CatalogService struct {
	catalog repositories.CatalogRepository
}

func NewCatalogService(catalog repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) CreateSportType(name, description, iconPath string) (*models.SportType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewDomainError("name is required", ErrInvalidInput, nil)
	}

	st := &models.SportType{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IconPath:    iconPath,
	}
	if err := s.catalog.CreateSportType(st); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewDomainError("sport type already exists", ErrInvalidInput, err)
		}
		return nil, NewDomainError("failed to create sport type", ErrDatabaseError, err)
	}
	return st, nil
}

func (s *CatalogService) ListSportTypes() ([]models.SportType, error) {
	types, err := s.catalog.ListSportTypes()
	if err != nil {
		return nil, NewDomainError("failed to list sport types", ErrDatabaseError, err)
	}
	return types, nil
}

func (s *CatalogService) CreateEventType(name, description string) (*models.EventType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewDomainError("name is required", ErrInvalidInput, nil)
	}

	et := &models.EventType{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.catalog.CreateEventType(et); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, NewDomainError("event type already exists", ErrInvalidInput, err)
		}
		return nil, NewDomainError("failed to create event type", ErrDatabaseError, err)
	}
	return et, nil
}

func (s *CatalogService) ListEventTypes() ([]models.EventType, error) {
	types, err := s.catalog.ListEventTypes()
	if err != nil {
		return nil, NewDomainError("failed to list event types", ErrDatabaseError, err)
	}
	return types, nil
}

type CreateLocationRequest struct {
	Name            string
	Address         string
	City            string
	Latitude        *float64
	Longitude       *float64
	Details         string
	CreatedByUserID string
}

func (s *CatalogService) CreateLocation(req CreateLocationRequest) (*models.Location, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.Name == "" || req.Address == "" || req.City == "" {
		return nil, NewDomainError("name, address and city are required", ErrInvalidInput, nil)
	}

	loc := &models.Location{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Details:   req.Details,
	}
	if req.CreatedByUserID != "" {
		createdBy := uuid.MustParse(req.CreatedByUserID)
		loc.CreatedByUserID = &createdBy
	}

	if err := s.catalog.CreateLocation(loc); err != nil {
		return nil, NewDomainError("failed to create location", ErrDatabaseError, err)
	}
	return loc, nil
}

func (s *CatalogService) ListLocations(city string) ([]models.Location, error) {
	locations, err := s.catalog.ListLocations(city)
	if err != nil {
		return nil, NewDomainError("failed to list locations", ErrDatabaseError, err)
	}
	return locations, nil
}
