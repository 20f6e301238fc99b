package services

import (
	"errors"
	"fmt"
	"time"

	"sports-events-backend/internal/models"
	"sports-events-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ResultService records and lists event outcomes. Results never touch
// the participant counter; they only read the ledger to check that a
// named participant actually took part.
type ResultService struct {
	results       repositories.ResultRepository
	registrations repositories.RegistrationRepository
	events        repositories.EventRepository
	users         repositories.UserRepository
}

func NewResultService(
	results repositories.ResultRepository,
	registrations repositories.RegistrationRepository,
	events repositories.EventRepository,
	users repositories.UserRepository,
) *ResultService {
	return &ResultService{
		results:       results,
		registrations: registrations,
		events:        events,
		users:         users,
	}
}

type RecordResultRequest struct {
	EventID                string
	ActorUserID            string
	ParticipantUserID      string // empty when the result is for a team / free-text name
	TeamNameIfApplicable   string
	Position               *int
	Score                  string
	AchievementDescription string
}

// RecordResult appends a result for an event. Organizer only; the
// event must be active or completed. A named participant must hold a
// counted registration. Repeated results for the same participant are
// allowed.
func (s *ResultService) RecordResult(req RecordResultRequest) (*models.EventResult, error) {
	event, err := s.events.GetEventByID(req.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event not found", ErrEventNotFound, err)
		}
		return nil, NewDomainError("failed to load event", ErrDatabaseError, err)
	}

	if event.OrganizerID.String() != req.ActorUserID {
		return nil, NewDomainError("only the organizer can record results", ErrPermissionDenied, nil)
	}
	if !event.Status.AcceptsResults() {
		return nil, NewDomainError(
			fmt.Sprintf("results can only be recorded for active or completed events, status is %s", event.Status),
			ErrInvalidEventState, nil)
	}

	result := &models.EventResult{
		ID:                     uuid.New(),
		EventID:                event.ID,
		TeamNameIfApplicable:   req.TeamNameIfApplicable,
		Position:               req.Position,
		Score:                  req.Score,
		AchievementDescription: req.AchievementDescription,
		RecordedByUserID:       uuid.MustParse(req.ActorUserID),
		RecordedAt:             time.Now(),
	}

	if req.ParticipantUserID != "" {
		if _, err := s.users.GetUserByID(req.ParticipantUserID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NewDomainError("participant user not found", ErrUserNotFound, err)
			}
			return nil, NewDomainError("failed to look up participant", ErrDatabaseError, err)
		}

		eligible, err := s.registrations.HasCountedRegistration(req.EventID, req.ParticipantUserID)
		if err != nil {
			return nil, NewDomainError("failed to check participant registration", ErrDatabaseError, err)
		}
		if !eligible {
			return nil, NewDomainError(
				"this user does not hold a confirmed registration for the event",
				ErrParticipantNotEligible, nil)
		}

		participantID := uuid.MustParse(req.ParticipantUserID)
		result.ParticipantUserID = &participantID
	} else if req.TeamNameIfApplicable == "" {
		return nil, NewDomainError(
			"a result needs a participant user or a team name",
			ErrInvalidInput, nil)
	}

	if err := s.results.CreateResult(result); err != nil {
		return nil, NewDomainError("failed to record result", ErrDatabaseError, err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  req.EventID,
		"result_id": result.ID,
	}).Info("result recorded")

	return result, nil
}

// ListResults returns all results for an event. Public.
func (s *ResultService) ListResults(eventID string) ([]models.EventResult, error) {
	if _, err := s.events.GetEventByID(eventID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NewDomainError("event not found", ErrEventNotFound, err)
		}
		return nil, NewDomainError("failed to load event", ErrDatabaseError, err)
	}

	results, err := s.results.ListResultsByEvent(eventID)
	if err != nil {
		return nil, NewDomainError("failed to list results", ErrDatabaseError, err)
	}
	return results, nil
}
