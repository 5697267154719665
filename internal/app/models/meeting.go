package models

import "time"

// MeetingType classifies a statutory or committee meeting.
type MeetingType string

const (
	MeetingTypeAGM       MeetingType = "AGM"
	MeetingTypeEGM       MeetingType = "EGM"
	MeetingTypeSGM       MeetingType = "SGM"
	MeetingTypeCommittee MeetingType = "Committee"
)

// Meeting is owned by a Property; its lifecycle is bound to it.
type Meeting struct {
	ID         int64       `json:"id" db:"id"`
	PropertyID int64       `json:"propertyId" db:"property_id"`
	Type       MeetingType `json:"type" db:"type"`
	Date       time.Time   `json:"date" db:"date"`
	Time       string      `json:"time" db:"time"`
	Venue      string      `json:"venue" db:"venue"`
	VenueAddr  string      `json:"venueAddress,omitempty" db:"venue_address"`

	// Precomputed AGM notice dates, persisted when the meeting is created or
	// updated. Informational only; deadline derivation recomputes from Date.
	NoiDueDate         *time.Time `json:"noiDueDate,omitempty" db:"noi_due_date"`
	NoiResponseDueDate *time.Time `json:"noiResponseDueDate,omitempty" db:"noi_response_due_date"`

	// Document tracking. A flag set true marks the obligation satisfied and
	// permanently suppresses its reminder.
	NoiIssued     bool `json:"noiIssued" db:"noi_issued"`
	NomIssued     bool `json:"nomIssued" db:"nom_issued"`
	MinutesIssued bool `json:"minutesIssued" db:"minutes_issued"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
