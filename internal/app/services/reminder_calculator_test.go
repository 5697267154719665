package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop101/strataops/internal/app/models"
)

// Fixed evaluation day for all calculator tests.
var calcToday = date(2025, 1, 1)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func intPtr(v int) *int { return &v }

func complexTypePtr(t models.ComplexType) *models.ComplexType { return &t }

func TestComputeReminders_EmptyPortfolio(t *testing.T) {
	reminders := ComputeReminders(nil, calcToday)
	assert.Empty(t, reminders)
}

func TestComputeReminders_Deterministic(t *testing.T) {
	properties := []*models.Property{
		{
			ID:              1,
			Name:            "Harbourview Terraces",
			BcNumber:        "BC 198211",
			InsuranceExpiry: datePtr(2025, 2, 1),
			HasBwof:         true,
			BwofExpiry:      datePtr(2025, 1, 20),
			Meetings: []*models.Meeting{
				{ID: 10, Type: models.MeetingTypeAGM, Date: date(2025, 1, 15)},
			},
		},
	}

	first := ComputeReminders(properties, calcToday)
	second := ComputeReminders(properties, calcToday)
	assert.Equal(t, first, second)
}

func TestComputeReminders_ArchivedPropertySuppressed(t *testing.T) {
	property := &models.Property{
		ID:              1,
		Name:            "Harbourview Terraces",
		BcNumber:        "BC 198211",
		IsArchived:      true,
		InsuranceExpiry: datePtr(2024, 6, 1),
		HasBwof:         true,
		BwofExpiry:      datePtr(2024, 6, 1),
		Meetings: []*models.Meeting{
			{ID: 10, Type: models.MeetingTypeAGM, Date: date(2025, 1, 15)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	assert.Empty(t, reminders)
}

func TestComputeReminders_InsuranceWindow(t *testing.T) {
	tests := []struct {
		name         string
		expiry       *time.Time
		wantID       string
		wantMessage  string
		wantSeverity models.Severity
	}{
		{
			name:   "no expiry date means no reminder",
			expiry: nil,
		},
		{
			name:   "91 days out is outside the window",
			expiry: datePtr(2025, 4, 2),
		},
		{
			name:         "90 days out enters the window at medium",
			expiry:       datePtr(2025, 4, 1),
			wantID:       "ins-1",
			wantMessage:  "Insurance renewal due in 90 days.",
			wantSeverity: models.SeverityMedium,
		},
		{
			name:         "exactly 30 days out stays medium",
			expiry:       datePtr(2025, 1, 31),
			wantID:       "ins-1",
			wantMessage:  "Insurance renewal due in 30 days.",
			wantSeverity: models.SeverityMedium,
		},
		{
			name:         "29 days out turns high",
			expiry:       datePtr(2025, 1, 30),
			wantID:       "ins-1",
			wantMessage:  "Insurance renewal due in 29 days.",
			wantSeverity: models.SeverityHigh,
		},
		{
			name:         "due today is high with zero days",
			expiry:       datePtr(2025, 1, 1),
			wantID:       "ins-1",
			wantMessage:  "Insurance renewal due in 0 days.",
			wantSeverity: models.SeverityHigh,
		},
		{
			name:         "expired switches to the expired identity",
			expiry:       datePtr(2024, 12, 31),
			wantID:       "ins-exp-1",
			wantMessage:  "URGENT: Insurance EXPIRED on 2024-12-31",
			wantSeverity: models.SeverityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := &models.Property{
				ID:              1,
				Name:            "Harbourview Terraces",
				BcNumber:        "BC 198211",
				InsuranceExpiry: tt.expiry,
			}

			reminders := ComputeReminders([]*models.Property{property}, calcToday)
			if tt.wantID == "" {
				assert.Empty(t, reminders)
				return
			}

			require.Len(t, reminders, 1)
			r := reminders[0]
			assert.Equal(t, tt.wantID, r.ID)
			assert.Equal(t, models.ReminderTypeInsurance, r.Type)
			assert.Equal(t, tt.wantMessage, r.Message)
			assert.Equal(t, tt.wantSeverity, r.Severity)
			assert.Equal(t, int64(1), r.PropertyID)
			assert.Equal(t, "Harbourview Terraces", r.PropertyName)
		})
	}
}

func TestComputeReminders_BwofWindow(t *testing.T) {
	tests := []struct {
		name         string
		hasBwof      bool
		expiry       *time.Time
		wantID       string
		wantMessage  string
		wantSeverity models.Severity
	}{
		{
			name:    "flag off suppresses even an expired date",
			hasBwof: false,
			expiry:  datePtr(2024, 6, 1),
		},
		{
			name:    "31 days out is outside the window",
			hasBwof: true,
			expiry:  datePtr(2025, 2, 1),
		},
		{
			name:         "30 days out is medium",
			hasBwof:      true,
			expiry:       datePtr(2025, 1, 31),
			wantID:       "bwof-1",
			wantMessage:  "BWOF expires in 30 days.",
			wantSeverity: models.SeverityMedium,
		},
		{
			name:         "due tomorrow is still medium",
			hasBwof:      true,
			expiry:       datePtr(2025, 1, 2),
			wantID:       "bwof-1",
			wantMessage:  "BWOF expires in 1 days.",
			wantSeverity: models.SeverityMedium,
		},
		{
			name:         "expired is high with the expired identity",
			hasBwof:      true,
			expiry:       datePtr(2024, 12, 15),
			wantID:       "bwof-exp-1",
			wantMessage:  "URGENT: BWOF EXPIRED on 2024-12-15",
			wantSeverity: models.SeverityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := &models.Property{
				ID:         1,
				Name:       "Harbourview Terraces",
				BcNumber:   "BC 198211",
				HasBwof:    tt.hasBwof,
				BwofExpiry: tt.expiry,
			}

			reminders := ComputeReminders([]*models.Property{property}, calcToday)
			if tt.wantID == "" {
				assert.Empty(t, reminders)
				return
			}

			require.Len(t, reminders, 1)
			r := reminders[0]
			assert.Equal(t, tt.wantID, r.ID)
			assert.Equal(t, models.ReminderTypeBwof, r.Type)
			assert.Equal(t, tt.wantMessage, r.Message)
			assert.Equal(t, tt.wantSeverity, r.Severity)
		})
	}
}

func TestComputeReminders_BodyCorporateAgmNotices(t *testing.T) {
	property := &models.Property{
		ID:       3,
		Name:     "Harbourview Terraces",
		BcNumber: "BC 198211",
		Meetings: []*models.Meeting{
			// NOI deadline 2024-12-29 (overdue 3 days), NOM deadline 2025-01-05.
			{ID: 21, Type: models.MeetingTypeAGM, Date: date(2025, 1, 20)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 2)

	noi := reminders[0]
	assert.Equal(t, "noi-3-21", noi.ID)
	assert.Equal(t, models.ReminderTypeMeeting, noi.Type)
	assert.Equal(t, "OVERDUE: NOI for AGM was due on 29/12/2024", noi.Message)
	assert.Equal(t, models.SeverityHigh, noi.Severity)
	assert.Equal(t, date(2024, 12, 29), noi.DueDate)

	nom := reminders[1]
	assert.Equal(t, "nom-3-21", nom.ID)
	assert.Equal(t, "Send NOM/Agenda for AGM (Due: 05/01/2025)", nom.Message)
	assert.Equal(t, models.SeverityMedium, nom.Severity)
	assert.Equal(t, date(2025, 1, 5), nom.DueDate)
}

func TestComputeReminders_IssuedFlagsSuppressNotices(t *testing.T) {
	property := &models.Property{
		ID:       3,
		Name:     "Harbourview Terraces",
		BcNumber: "BC 198211",
		Meetings: []*models.Meeting{
			{ID: 21, Type: models.MeetingTypeAGM, Date: date(2025, 1, 20), NoiIssued: true},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 1)
	assert.Equal(t, "nom-3-21", reminders[0].ID)

	property.Meetings[0].NomIssued = true
	reminders = ComputeReminders([]*models.Property{property}, calcToday)
	assert.Empty(t, reminders)
}

func TestComputeReminders_IncorporatedSocietyByPrefix(t *testing.T) {
	// No explicit type; the "IS" registration prefix alone classifies it.
	property := &models.Property{
		ID:       4,
		Name:     "Fernleaf Gardens Society",
		BcNumber: "IS 440072",
		Meetings: []*models.Meeting{
			// Default 7-day NOM period: deadline 2025-01-02, one day out.
			{ID: 30, Type: models.MeetingTypeAGM, Date: date(2025, 1, 9)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 1)

	r := reminders[0]
	assert.Equal(t, "nom-4-30", r.ID, "societies never get an NOI reminder")
	assert.Equal(t, "Send NOM/Agenda for AGM (Due: 02/01/2025)", r.Message)
	assert.Equal(t, models.SeverityHigh, r.Severity)
}

func TestComputeReminders_IncorporatedSocietyNomOverride(t *testing.T) {
	property := &models.Property{
		ID:               5,
		Name:             "Fernleaf Gardens Society",
		BcNumber:         "IS 440072",
		Type:             complexTypePtr(models.ComplexTypeIncorporatedSociety),
		IsocNomDaysPrior: intPtr(10),
		Meetings: []*models.Meeting{
			// Override of 10 days: deadline 2025-01-02, one day out.
			{ID: 31, Type: models.MeetingTypeSGM, Date: date(2025, 1, 12)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 1)
	assert.Equal(t, "nom-5-31", reminders[0].ID)
	assert.Equal(t, "Send NOM/Agenda for SGM (Due: 02/01/2025)", reminders[0].Message)
	assert.Equal(t, models.SeverityHigh, reminders[0].Severity)
}

func TestComputeReminders_PastMeetingsSkipped(t *testing.T) {
	property := &models.Property{
		ID:       6,
		Name:     "Harbourview Terraces",
		BcNumber: "BC 198211",
		Meetings: []*models.Meeting{
			{ID: 40, Type: models.MeetingTypeAGM, Date: date(2024, 12, 31)},
			// A meeting today is still evaluated; both notices are long overdue.
			{ID: 41, Type: models.MeetingTypeCommittee, Date: date(2025, 1, 1)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 1)
	assert.Equal(t, "nom-6-41", reminders[0].ID)
	assert.Equal(t, "OVERDUE: NOM/Agenda for Committee was due on 17/12/2024", reminders[0].Message)
	assert.Equal(t, models.SeverityHigh, reminders[0].Severity)
}

func TestComputeReminders_NoticeOutsideActionWindow(t *testing.T) {
	property := &models.Property{
		ID:       7,
		Name:     "Harbourview Terraces",
		BcNumber: "BC 198211",
		Meetings: []*models.Meeting{
			// NOM deadline 2025-01-09, eight days out: nothing yet. The NOI
			// deadline is already inside the window.
			{ID: 50, Type: models.MeetingTypeAGM, Date: date(2025, 1, 24)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 1)
	assert.Equal(t, "noi-7-50", reminders[0].ID)
	assert.Equal(t, "Send NOI for AGM (Due: 02/01/2025)", reminders[0].Message)
	assert.Equal(t, models.SeverityHigh, reminders[0].Severity)
}

func TestComputeReminders_EvaluationOrder(t *testing.T) {
	property := &models.Property{
		ID:              8,
		Name:            "Harbourview Terraces",
		BcNumber:        "BC 198211",
		InsuranceExpiry: datePtr(2025, 2, 1),
		HasBwof:         true,
		BwofExpiry:      datePtr(2025, 1, 20),
		Meetings: []*models.Meeting{
			{ID: 60, Type: models.MeetingTypeAGM, Date: date(2025, 1, 20)},
		},
	}

	reminders := ComputeReminders([]*models.Property{property}, calcToday)
	require.Len(t, reminders, 4)
	assert.Equal(t, "ins-8", reminders[0].ID)
	assert.Equal(t, "bwof-8", reminders[1].ID)
	assert.Equal(t, "noi-8-60", reminders[2].ID)
	assert.Equal(t, "nom-8-60", reminders[3].ID)
}

func TestComputeReminders_ClockNormalization(t *testing.T) {
	property := &models.Property{
		ID:              9,
		Name:            "Harbourview Terraces",
		BcNumber:        "BC 198211",
		InsuranceExpiry: datePtr(2025, 1, 31),
	}

	// Late in the evening of the same calendar day must give the same count.
	evening := time.Date(2025, 1, 1, 23, 45, 0, 0, time.UTC)
	reminders := ComputeReminders([]*models.Property{property}, evening)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Insurance renewal due in 30 days.", reminders[0].Message)
}
