package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SportType struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IconPath    string    `json:"icon_path"`
}

type EventType struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

type Location struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string     `gorm:"type:varchar(150);not null" json:"name"`
	Address         string     `gorm:"not null" json:"address"`
	City            string     `gorm:"type:varchar(100);not null;index" json:"city"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	Details         string     `gorm:"type:text" json:"details"`
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id"`

	CreatedByUser *User `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL" json:"created_by_user,omitempty"`
}

type Event struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title              string     `gorm:"type:varchar(200);not null" json:"title"`
	Description        string     `gorm:"type:text;not null" json:"description"`
	OrganizerID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"organizer_id"`
	SportTypeID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"sport_type_id"`
	EventTypeID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_type_id"`
	LocationID         *uuid.UUID `gorm:"type:uuid" json:"location_id"`
	CustomLocationText string     `json:"custom_location_text"`
	StartDatetime      time.Time  `gorm:"not null" json:"start_datetime"`
	EndDatetime        *time.Time `json:"end_datetime"`

	// Registration and capacity fields. CurrentParticipantsCount is
	// denormalized: it must always equal the number of registrations
	// for this event whose status counts toward capacity, and is only
	// mutated in the same transaction as the registration write.
	RegistrationDeadline     *time.Time  `json:"registration_deadline"`
	MaxParticipants          *int        `json:"max_participants"` // nil = unlimited
	CurrentParticipantsCount int         `gorm:"not null;default:0" json:"current_participants_count"`
	Status                   EventStatus `gorm:"type:varchar(50);not null;default:'PLANNED'" json:"status"`

	IsPublic     bool     `gorm:"default:true" json:"is_public"`
	EntryFee     *float64 `json:"entry_fee"`
	ContactEmail string   `json:"contact_email"`
	ContactPhone string   `gorm:"type:varchar(50)" json:"contact_phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Organizer     User                `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
	SportType     SportType           `gorm:"foreignKey:SportTypeID;constraint:OnDelete:RESTRICT" json:"sport_type,omitempty"`
	EventType     EventType           `gorm:"foreignKey:EventTypeID;constraint:OnDelete:RESTRICT" json:"event_type,omitempty"`
	Location      *Location           `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
	Results       []EventResult       `gorm:"foreignKey:EventID" json:"results,omitempty"`
}

type EventRegistration struct {
	ID                   uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID              uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user" json:"event_id"`
	UserID               uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user" json:"user_id"`
	RegistrationDatetime time.Time          `gorm:"not null" json:"registration_datetime"`
	Status               RegistrationStatus `gorm:"type:varchar(50);not null;default:'PENDING_APPROVAL'" json:"status"`
	NotesByUser          string             `gorm:"type:text" json:"notes_by_user"`
	QRPath               string             `json:"qr_path"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`

	// Relations. Registrations cascade with the event and with the
	// user; a deleted user takes their registrations with them, unlike
	// results which only null the participant reference.
	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

type EventResult struct {
	ID                     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID                uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	ParticipantUserID      *uuid.UUID `gorm:"type:uuid" json:"participant_user_id"`
	TeamNameIfApplicable   string     `gorm:"type:varchar(100)" json:"team_name_if_applicable"`
	Position               *int       `json:"position"`
	Score                  string     `gorm:"type:varchar(100)" json:"score"`
	AchievementDescription string     `gorm:"type:text" json:"achievement_description"`
	RecordedByUserID       uuid.UUID  `gorm:"type:uuid;not null" json:"recorded_by_user_id"`
	RecordedAt             time.Time  `gorm:"not null" json:"recorded_at"`

	// Relations
	Event           Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
	ParticipantUser *User `gorm:"foreignKey:ParticipantUserID;constraint:OnDelete:SET NULL" json:"participant_user,omitempty"`
	RecordedByUser  User  `gorm:"foreignKey:RecordedByUserID;constraint:OnDelete:CASCADE" json:"recorded_by_user,omitempty"`
}
