package repositories

import (
	"sports-events-backend/internal/models"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) CreateSportType(st *models.SportType) error {
	return translateError(r.db.Create(st).Error)
}

func (r *catalogRepo) GetSportTypeByID(id string) (*models.SportType, error) {
	var st models.SportType
	if err := r.db.Where("id = ?", id).First(&st).Error; err != nil {
		return nil, translateError(err)
	}
	return &st, nil
}

func (r *catalogRepo) ListSportTypes() ([]models.SportType, error) {
	var types []models.SportType
	if err := r.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, translateError(err)
	}
	return types, nil
}

func (r *catalogRepo) CreateEventType(et *models.EventType) error {
	return translateError(r.db.Create(et).Error)
}

func (r *catalogRepo) GetEventTypeByID(id string) (*models.EventType, error) {
	var et models.EventType
	if err := r.db.Where("id = ?", id).First(&et).Error; err != nil {
		return nil, translateError(err)
	}
	return &et, nil
}

func (r *catalogRepo) ListEventTypes() ([]models.EventType, error) {
	var types []models.EventType
	if err := r.db.Order("name ASC").Find(&types).Error; err != nil {
		return nil, translateError(err)
	}
	return types, nil
}

func (r *catalogRepo) CreateLocation(loc *models.Location) error {
	return translateError(r.db.Create(loc).Error)
}

func (r *catalogRepo) GetLocationByID(id string) (*models.Location, error) {
	var loc models.Location
	if err := r.db.Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, translateError(err)
	}
	return &loc, nil
}

func (r *catalogRepo) ListLocations(city string) ([]models.Location, error) {
	query := r.db.Order("name ASC")
	if city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}

	var locations []models.Location
	if err := query.Find(&locations).Error; err != nil {
		return nil, translateError(err)
	}
	return locations, nil
}
