package models

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventDraft              EventStatus = "DRAFT"
	EventPlanned            EventStatus = "PLANNED"
	EventRegistrationOpen   EventStatus = "REGISTRATION_OPEN"
	EventRegistrationClosed EventStatus = "REGISTRATION_CLOSED"
	EventActive             EventStatus = "ACTIVE"
	EventCompleted          EventStatus = "COMPLETED"
	EventCancelled          EventStatus = "CANCELLED"
)

var eventStatuses = map[EventStatus]bool{
	EventDraft:              true,
	EventPlanned:            true,
	EventRegistrationOpen:   true,
	EventRegistrationClosed: true,
	EventActive:             true,
	EventCompleted:          true,
	EventCancelled:          true,
}

func (s EventStatus) Valid() bool {
	return eventStatuses[s]
}

// AcceptsRegistrations reports whether new registrations may be created
// for an event in this status.
func (s EventStatus) AcceptsRegistrations() bool {
	return s == EventPlanned || s == EventRegistrationOpen
}

// AcceptsResults reports whether results may be recorded for an event
// in this status.
func (s EventStatus) AcceptsResults() bool {
	return s == EventActive || s == EventCompleted
}

// RegistrationStatus is the lifecycle status of a single registration.
type RegistrationStatus string

const (
	RegistrationPendingApproval     RegistrationStatus = "PENDING_APPROVAL"
	RegistrationConfirmed           RegistrationStatus = "CONFIRMED"
	RegistrationRejectedByOrganizer RegistrationStatus = "REJECTED_BY_ORGANIZER"
	RegistrationCancelledByUser     RegistrationStatus = "CANCELLED_BY_USER"
	RegistrationAttended            RegistrationStatus = "ATTENDED"
)

var registrationStatuses = map[RegistrationStatus]bool{
	RegistrationPendingApproval:     true,
	RegistrationConfirmed:           true,
	RegistrationRejectedByOrganizer: true,
	RegistrationCancelledByUser:     true,
	RegistrationAttended:            true,
}

func (s RegistrationStatus) Valid() bool {
	return registrationStatuses[s]
}

// Counted reports whether a registration in this status contributes to
// the event's participant counter. Only confirmed and attended
// registrations occupy a capacity slot.
func (s RegistrationStatus) Counted() bool {
	return s == RegistrationConfirmed || s == RegistrationAttended
}

// Terminal reports whether the registration has been withdrawn and can
// no longer be cancelled by the user.
func (s RegistrationStatus) Terminal() bool {
	return s == RegistrationCancelledByUser || s == RegistrationRejectedByOrganizer
}

// CounterDelta returns the participant-counter adjustment for a status
// transition. The rule is uniform for every old/new pair: a slot is
// gained when the new status counts and the old did not, and released
// in the opposite direction.
func CounterDelta(old, new RegistrationStatus) int {
	delta := 0
	if new.Counted() {
		delta++
	}
	if old.Counted() {
		delta--
	}
	return delta
}
