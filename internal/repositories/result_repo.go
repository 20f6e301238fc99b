package repositories

import (
	"sports-events-backend/internal/models"

	"gorm.io/gorm"
)

type resultRepo struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) CreateResult(result *models.EventResult) error {
	return translateError(r.db.Create(result).Error)
}

func (r *resultRepo) ListResultsByEvent(eventID string) ([]models.EventResult, error) {
	var results []models.EventResult
	if err := r.db.
		Preload("ParticipantUser").
		Preload("RecordedByUser").
		Where("event_id = ?", eventID).
		Order("position ASC NULLS LAST, recorded_at ASC").
		Find(&results).Error; err != nil {
		return nil, translateError(err)
	}
	return results, nil
}
