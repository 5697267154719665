package services

import (
	"fmt"
	"time"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/dates"
)

// Deadline windows, in days.
const (
	// Insurance renewals surface 90 days out and turn urgent inside 30.
	insuranceWindowDays = 90
	insuranceUrgentDays = 30
	// BWOF renewals surface 30 days out; only expiry itself is urgent.
	bwofWindowDays = 30
	// Notice of intention is due 22 days before a Body Corporate AGM.
	noiDaysPrior = 22
	// Meeting notice deadlines surface a week out and turn urgent at 2 days.
	meetingActionWindowDays = 7
	meetingUrgentDays       = 2
)

// ComputeReminders derives the full set of compliance reminders for a
// portfolio as of the given day. It is a pure function: identical inputs
// produce an identical slice, in evaluation order (property order, then
// insurance, BWOF, per-meeting NOI/NOM). Archived properties contribute
// nothing. The passed-in clock is the only time source.
func ComputeReminders(properties []*models.Property, today time.Time) []*models.Reminder {
	today = dates.Normalize(today)

	reminders := []*models.Reminder{}
	for _, p := range properties {
		if p.IsArchived {
			continue
		}

		if r := insuranceReminder(p, today); r != nil {
			reminders = append(reminders, r)
		}
		if r := bwofReminder(p, today); r != nil {
			reminders = append(reminders, r)
		}
		for _, m := range p.Meetings {
			reminders = append(reminders, meetingReminders(p, m, today)...)
		}
	}
	return reminders
}

// insuranceReminder evaluates the insurance expiry obligation. A missing
// expiry date suppresses the obligation entirely; incomplete data entry is
// the expected common case, not an error.
func insuranceReminder(p *models.Property, today time.Time) *models.Reminder {
	if p.InsuranceExpiry == nil {
		return nil
	}
	expiry := dates.Normalize(*p.InsuranceExpiry)
	days := dates.DaysUntil(today, expiry)

	switch {
	case days < 0:
		return &models.Reminder{
			ID:           models.InsuranceExpiredReminderID(p.ID),
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Type:         models.ReminderTypeInsurance,
			DueDate:      expiry,
			Message:      fmt.Sprintf("URGENT: Insurance EXPIRED on %s", dates.FormatISO(expiry)),
			Severity:     models.SeverityHigh,
		}
	case days <= insuranceWindowDays:
		severity := models.SeverityMedium
		if days < insuranceUrgentDays {
			severity = models.SeverityHigh
		}
		return &models.Reminder{
			ID:           models.InsuranceReminderID(p.ID),
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Type:         models.ReminderTypeInsurance,
			DueDate:      expiry,
			Message:      fmt.Sprintf("Insurance renewal due in %d days.", days),
			Severity:     severity,
		}
	default:
		return nil
	}
}

// bwofReminder evaluates the building warrant of fitness obligation. Unlike
// insurance there is no medium/high split inside the window: expired is high,
// due-within-30-days is medium.
func bwofReminder(p *models.Property, today time.Time) *models.Reminder {
	if !p.HasBwof || p.BwofExpiry == nil {
		return nil
	}
	expiry := dates.Normalize(*p.BwofExpiry)
	days := dates.DaysUntil(today, expiry)

	switch {
	case days < 0:
		return &models.Reminder{
			ID:           models.BwofExpiredReminderID(p.ID),
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Type:         models.ReminderTypeBwof,
			DueDate:      expiry,
			Message:      fmt.Sprintf("URGENT: BWOF EXPIRED on %s", dates.FormatISO(expiry)),
			Severity:     models.SeverityHigh,
		}
	case days <= bwofWindowDays:
		return &models.Reminder{
			ID:           models.BwofReminderID(p.ID),
			PropertyID:   p.ID,
			PropertyName: p.Name,
			Type:         models.ReminderTypeBwof,
			DueDate:      expiry,
			Message:      fmt.Sprintf("BWOF expires in %d days.", days),
			Severity:     models.SeverityMedium,
		}
	default:
		return nil
	}
}

// meetingReminders evaluates the notice obligations for one meeting.
// Strictly past meetings produce nothing; today's meetings still count.
// Classification uses the dual check on the property (explicit type or the
// legacy "IS" registration prefix) and recomputes every deadline from the
// meeting date; the property's denormalized next-AGM fields are never read.
func meetingReminders(p *models.Property, m *models.Meeting, today time.Time) []*models.Reminder {
	meetingDate := dates.Normalize(m.Date)
	if meetingDate.Before(today) {
		return nil
	}

	var reminders []*models.Reminder

	// NOI: AGMs on Body Corporates only. Incorporated Societies use the
	// configurable NOM path by statute and never get an NOI deadline.
	if m.Type == models.MeetingTypeAGM && !p.IsIncorporatedSociety() && !m.NoiIssued {
		deadline := meetingDate.AddDate(0, 0, -noiDaysPrior)
		if r := noticeReminder(p, m, deadline, today, noticeNOI); r != nil {
			reminders = append(reminders, r)
		}
	}

	// NOM/Agenda: every meeting type, both classifications; the subtracted
	// day count depends on the classification.
	if !m.NomIssued {
		deadline := meetingDate.AddDate(0, 0, -p.NomNoticeDays())
		if r := noticeReminder(p, m, deadline, today, noticeNOM); r != nil {
			reminders = append(reminders, r)
		}
	}

	return reminders
}

type noticeKind int

const (
	noticeNOI noticeKind = iota
	noticeNOM
)

// noticeReminder emits a reminder for an unissued notice deadline due within
// the action window or already overdue (no lower bound: arbitrarily overdue
// deadlines still surface until the issued flag is set).
func noticeReminder(p *models.Property, m *models.Meeting, deadline, today time.Time, kind noticeKind) *models.Reminder {
	days := dates.DaysUntil(today, deadline)
	if days > meetingActionWindowDays {
		return nil
	}

	var id, label string
	switch kind {
	case noticeNOI:
		id = models.NoiReminderID(p.ID, m.ID)
		label = "NOI"
	case noticeNOM:
		id = models.NomReminderID(p.ID, m.ID)
		label = "NOM/Agenda"
	}

	var message string
	if days < 0 {
		message = fmt.Sprintf("OVERDUE: %s for %s was due on %s", label, m.Type, dates.FormatNZ(deadline))
	} else {
		message = fmt.Sprintf("Send %s for %s (Due: %s)", label, m.Type, dates.FormatNZ(deadline))
	}

	severity := models.SeverityMedium
	if days <= meetingUrgentDays {
		severity = models.SeverityHigh
	}

	return &models.Reminder{
		ID:           id,
		PropertyID:   p.ID,
		PropertyName: p.Name,
		Type:         models.ReminderTypeMeeting,
		DueDate:      deadline,
		Message:      message,
		Severity:     severity,
	}
}
