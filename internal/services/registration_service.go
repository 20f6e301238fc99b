package services

import (
	"errors"
	"fmt"
	"time"

	"sports-events-backend/internal/config"
	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"
	"sports-events-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RegistrationService owns the registration lifecycle: creating
// registrations, self-cancellation and organizer status changes. Every
// mutation runs inside one ledger transaction that also carries the
// event's participant counter, so the counter always equals the number
// of counted (CONFIRMED or ATTENDED) registrations.
type RegistrationService struct {
	registrations repositories.RegistrationRepository
	events        repositories.EventRepository
	users         repositories.UserRepository
	cfg           *config.Config
}

func NewRegistrationService(
	registrations repositories.RegistrationRepository,
	events repositories.EventRepository,
	users repositories.UserRepository,
	cfg *config.Config,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		users:         users,
		cfg:           cfg,
	}
}

// RegisterRequest describes one registration creation. A non-empty
// TargetUserID distinct from ActorUserID switches the operation into
// the organizer mode: the actor must be the event's organizer and the
// target user is registered directly as CONFIRMED. Otherwise the actor
// registers themselves and starts as PENDING_APPROVAL.
type RegisterRequest struct {
	EventID      string
	ActorUserID  string
	TargetUserID string
	Notes        string
}

// Register creates a registration for an event. The event-status,
// deadline, duplicate and capacity checks plus the row insert and the
// counter update execute under a row lock on the event, so two
// concurrent registrations cannot both take the last slot.
func (s *RegistrationService) Register(req RegisterRequest) (*models.EventRegistration, error) {
	organizerMode := req.TargetUserID != "" && req.TargetUserID != req.ActorUserID

	subjectID := req.ActorUserID
	initialStatus := models.RegistrationPendingApproval
	if organizerMode {
		subjectID = req.TargetUserID
		initialStatus = models.RegistrationConfirmed

		if _, err := s.users.GetUserByID(subjectID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NewDomainError("target user not found", ErrUserNotFound, err)
			}
			return nil, NewDomainError("failed to look up target user", ErrDatabaseError, err)
		}
	}

	var created *models.EventRegistration
	err := s.runTx(func(tx repositories.RegistrationTx) error {
		event, err := tx.GetEventForUpdate(req.EventID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewDomainError("event not found", ErrEventNotFound, err)
			}
			return err
		}

		if organizerMode && event.OrganizerID.String() != req.ActorUserID {
			return NewDomainError("only the organizer can add participants", ErrPermissionDenied, nil)
		}
		if !organizerMode && event.OrganizerID.String() == req.ActorUserID {
			return NewDomainError("an organizer cannot register for their own event", ErrSelfOrganizerConflict, nil)
		}

		if !event.Status.AcceptsRegistrations() {
			return NewDomainError(
				fmt.Sprintf("registration is not available, event status is %s", event.Status),
				ErrRegistrationClosed, nil)
		}
		if event.RegistrationDeadline != nil && !time.Now().Before(*event.RegistrationDeadline) {
			return NewDomainError("registration deadline has passed", ErrRegistrationClosed, nil)
		}

		if _, err := tx.GetRegistrationByEventAndUser(req.EventID, subjectID); err == nil {
			return NewDomainError("user is already registered for this event", ErrAlreadyRegistered, nil)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		// Capacity check against the locked row's counter. The insert
		// and increment below commit with this check or not at all.
		if event.MaxParticipants != nil && event.CurrentParticipantsCount >= *event.MaxParticipants {
			return NewDomainError("event has reached its participant limit", ErrCapacityExceeded, nil)
		}

		reg := &models.EventRegistration{
			ID:                   uuid.New(),
			EventID:              event.ID,
			UserID:               uuid.MustParse(subjectID),
			RegistrationDatetime: time.Now(),
			Status:               initialStatus,
			NotesByUser:          req.Notes,
		}
		if err := tx.CreateRegistration(reg); err != nil {
			// The unique (event, user) index is the backstop for two
			// concurrent creations on the same pair.
			if errors.Is(err, repositories.ErrDuplicateKey) {
				return NewDomainError("user is already registered for this event", ErrAlreadyRegistered, err)
			}
			return err
		}

		if initialStatus.Counted() {
			if err := tx.AddParticipants(req.EventID, 1); err != nil {
				return err
			}
		}

		created = reg
		return nil
	})
	if err != nil {
		return nil, s.asDomainError(err, "failed to create registration")
	}

	// The check-in QR is written only once the registration committed,
	// so rolled-back or retried transactions leave no files behind. A
	// registration without a QR is still valid.
	if filename, err := utils.GenerateQRCodeImage(created.ID.String(), s.cfg.QRDir); err != nil {
		logrus.WithError(err).WithField("registration_id", created.ID).
			Warn("failed to generate check-in QR code")
	} else {
		created.QRPath = "/qrcodes/" + filename
		if err := s.runTx(func(tx repositories.RegistrationTx) error {
			return tx.SaveRegistration(created)
		}); err != nil {
			logrus.WithError(err).WithField("registration_id", created.ID).
				Warn("failed to store check-in QR path")
			created.QRPath = ""
		}
	}

	logrus.WithFields(logrus.Fields{
		"event_id": req.EventID,
		"user_id":  subjectID,
		"status":   created.Status,
	}).Info("registration created")

	return created, nil
}

// Cancel withdraws the requesting user's own registration. A counted
// registration releases its capacity slot; cancelling an already
// withdrawn registration fails without touching the counter.
func (s *RegistrationService) Cancel(eventID, userID string) error {
	err := s.runTx(func(tx repositories.RegistrationTx) error {
		if _, err := tx.GetEventForUpdate(eventID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewDomainError("event not found", ErrEventNotFound, err)
			}
			return err
		}

		reg, err := tx.GetRegistrationByEventAndUser(eventID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewDomainError("you are not registered for this event", ErrNotRegistered, err)
			}
			return err
		}
		if reg.Status.Terminal() {
			return NewDomainError("registration is already withdrawn", ErrNotRegistered, nil)
		}

		wasCounted := reg.Status.Counted()
		reg.Status = models.RegistrationCancelledByUser
		if err := tx.SaveRegistration(reg); err != nil {
			return err
		}
		if wasCounted {
			if err := tx.AddParticipants(eventID, -1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.asDomainError(err, "failed to cancel registration")
	}

	logrus.WithFields(logrus.Fields{
		"event_id": eventID,
		"user_id":  userID,
	}).Info("registration cancelled by user")

	return nil
}

// UpdateStatus applies an organizer-driven status change. The counter
// delta is derived from the single transition rule in models
// (counts(new) - counts(old)), never from pairwise special cases.
func (s *RegistrationService) UpdateStatus(registrationID, actorID string, newStatus models.RegistrationStatus) (*models.EventRegistration, error) {
	if !newStatus.Valid() {
		return nil, NewDomainError(
			fmt.Sprintf("%q is not a valid registration status", newStatus),
			ErrInvalidStatusValue, nil)
	}

	var updated *models.EventRegistration
	err := s.runTx(func(tx repositories.RegistrationTx) error {
		reg, err := tx.GetRegistrationByID(registrationID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewDomainError("registration not found", ErrNotRegistered, err)
			}
			return err
		}

		event, err := tx.GetEventForUpdate(reg.EventID.String())
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return NewDomainError("event not found", ErrEventNotFound, err)
			}
			return err
		}
		if event.OrganizerID.String() != actorID {
			return NewDomainError("only the organizer can change registration status", ErrPermissionDenied, nil)
		}

		delta := models.CounterDelta(reg.Status, newStatus)
		reg.Status = newStatus
		if err := tx.SaveRegistration(reg); err != nil {
			return err
		}
		if delta != 0 {
			if err := tx.AddParticipants(reg.EventID.String(), delta); err != nil {
				return err
			}
		}

		updated = reg
		return nil
	})
	if err != nil {
		return nil, s.asDomainError(err, "failed to update registration status")
	}

	logrus.WithFields(logrus.Fields{
		"registration_id": registrationID,
		"status":          newStatus,
	}).Info("registration status updated")

	return updated, nil
}

// ListForEvent returns all registrations for an event. Organizer only.
func (s *RegistrationService) ListForEvent(eventID, actorID string) ([]models.EventRegistration, error) {
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event not found", ErrEventNotFound, err)
		}
		return nil, NewDomainError("failed to load event", ErrDatabaseError, err)
	}
	if event.OrganizerID.String() != actorID {
		return nil, NewDomainError("only the organizer can list registrations", ErrPermissionDenied, nil)
	}

	regs, err := s.registrations.ListRegistrationsByEvent(eventID)
	if err != nil {
		return nil, NewDomainError("failed to list registrations", ErrDatabaseError, err)
	}
	return regs, nil
}

// ListForUser returns the user's own registrations.
func (s *RegistrationService) ListForUser(userID string) ([]models.EventRegistration, error) {
	regs, err := s.registrations.ListRegistrationsByUser(userID)
	if err != nil {
		return nil, NewDomainError("failed to list registrations", ErrDatabaseError, err)
	}
	return regs, nil
}

// runTx executes fn in a ledger transaction, retrying once when the
// storage layer reports a serialization conflict.
func (s *RegistrationService) runTx(fn func(tx repositories.RegistrationTx) error) error {
	err := s.registrations.InTransaction(fn)
	if errors.Is(err, repositories.ErrSerialization) {
		logrus.Warn("registration transaction hit a serialization conflict, retrying once")
		err = s.registrations.InTransaction(fn)
	}
	return err
}

// asDomainError passes typed errors through and wraps everything else.
func (s *RegistrationService) asDomainError(err error, msg string) error {
	if IsDomainError(err) {
		return err
	}
	if errors.Is(err, repositories.ErrSerialization) {
		return NewDomainError("storage conflict, please retry", ErrTransientStorage, err)
	}
	return NewDomainError(msg, ErrDatabaseError, err)
}
