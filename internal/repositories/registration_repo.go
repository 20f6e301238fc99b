package repositories

import (
	"errors"

	"sports-events-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type registrationRepo struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

// translateError maps gorm/postgres failures onto the repository
// sentinels so the service layer never sees driver error codes.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrDuplicateKey
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return ErrSerialization
		}
	}
	return err
}

func (r *registrationRepo) InTransaction(fn func(tx RegistrationTx) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&registrationTx{db: tx})
	})
	return translateError(err)
}

func (r *registrationRepo) GetRegistrationByID(id string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := r.db.Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, translateError(err)
	}
	return &reg, nil
}

func (r *registrationRepo) ListRegistrationsByEvent(eventID string) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	if err := r.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("registration_datetime ASC").
		Find(&regs).Error; err != nil {
		return nil, translateError(err)
	}
	return regs, nil
}

func (r *registrationRepo) ListRegistrationsByUser(userID string) ([]models.EventRegistration, error) {
	var regs []models.EventRegistration
	if err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Order("registration_datetime DESC").
		Find(&regs).Error; err != nil {
		return nil, translateError(err)
	}
	return regs, nil
}

func (r *registrationRepo) HasCountedRegistration(eventID, userID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ? AND status IN ?",
			eventID, userID,
			[]models.RegistrationStatus{models.RegistrationConfirmed, models.RegistrationAttended}).
		Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

func (r *registrationRepo) CountCountedByEvent(eventID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND status IN ?",
			eventID,
			[]models.RegistrationStatus{models.RegistrationConfirmed, models.RegistrationAttended}).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// registrationTx is the gorm-backed RegistrationTx bound to one
// database transaction.
type registrationTx struct {
	db *gorm.DB
}

func (t *registrationTx) GetEventForUpdate(id string) (*models.Event, error) {
	var event models.Event
	if err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, translateError(err)
	}
	return &event, nil
}

func (t *registrationTx) GetRegistrationByID(id string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := t.db.Where("id = ?", id).First(&reg).Error; err != nil {
		return nil, translateError(err)
	}
	return &reg, nil
}

func (t *registrationTx) GetRegistrationByEventAndUser(eventID, userID string) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	if err := t.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&reg).Error; err != nil {
		return nil, translateError(err)
	}
	return &reg, nil
}

func (t *registrationTx) CreateRegistration(reg *models.EventRegistration) error {
	return translateError(t.db.Create(reg).Error)
}

func (t *registrationTx) SaveRegistration(reg *models.EventRegistration) error {
	return translateError(t.db.Save(reg).Error)
}

func (t *registrationTx) AddParticipants(eventID string, delta int) error {
	result := t.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("current_participants_count",
			gorm.Expr("GREATEST(current_participants_count + ?, 0)", delta))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
