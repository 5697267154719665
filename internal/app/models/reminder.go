package models

import (
	"fmt"
	"time"
)

// ReminderType tags the obligation a reminder was derived from.
type ReminderType string

const (
	ReminderTypeInsurance ReminderType = "INSURANCE"
	ReminderTypeBwof      ReminderType = "BWOF"
	ReminderTypeMeeting   ReminderType = "MEETING"
)

// Severity is the urgency band surfaced to operators.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Reminder is a derived compliance deadline. Reminders are never persisted;
// the full set is regenerated on every calculation pass. The ID is
// deterministic over (obligation, property, meeting) so action-log entries
// keyed by it stay addressable across regenerations.
type Reminder struct {
	ID           string       `json:"id"`
	PropertyID   int64        `json:"propertyId"`
	PropertyName string       `json:"propertyName"`
	Type         ReminderType `json:"type"`
	DueDate      time.Time    `json:"dueDate"`
	Message      string       `json:"message"`
	Severity     Severity     `json:"severity"`
}

// Reminder ID constructors. The formats are part of the action-log contract:
// comments reference reminders by these strings.

func InsuranceReminderID(propertyID int64) string {
	return fmt.Sprintf("ins-%d", propertyID)
}

func InsuranceExpiredReminderID(propertyID int64) string {
	return fmt.Sprintf("ins-exp-%d", propertyID)
}

func BwofReminderID(propertyID int64) string {
	return fmt.Sprintf("bwof-%d", propertyID)
}

func BwofExpiredReminderID(propertyID int64) string {
	return fmt.Sprintf("bwof-exp-%d", propertyID)
}

func NoiReminderID(propertyID, meetingID int64) string {
	return fmt.Sprintf("noi-%d-%d", propertyID, meetingID)
}

func NomReminderID(propertyID, meetingID int64) string {
	return fmt.Sprintf("nom-%d-%d", propertyID, meetingID)
}
