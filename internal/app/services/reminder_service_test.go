package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop101/strataops/internal/app/models"
)

// fakePropertyReader serves a swappable portfolio snapshot.
type fakePropertyReader struct {
	properties []*models.Property
	err        error
}

func (f *fakePropertyReader) GetAllWithMeetings(_ context.Context) ([]*models.Property, error) {
	return f.properties, f.err
}

func newTestReminderService(reader *fakePropertyReader) *reminderServiceImpl {
	return &reminderServiceImpl{
		properties: reader,
		now:        func() time.Time { return calcToday },
		current:    []*models.Reminder{},
	}
}

func TestReminderService_RecomputeReplacesWholesale(t *testing.T) {
	reader := &fakePropertyReader{
		properties: []*models.Property{
			{ID: 1, Name: "Harbourview Terraces", BcNumber: "BC 198211", InsuranceExpiry: datePtr(2025, 2, 1)},
		},
	}
	svc := newTestReminderService(reader)

	require.NoError(t, svc.Recompute(context.Background()))
	require.Len(t, svc.Reminders(), 1)
	assert.Equal(t, "ins-1", svc.Reminders()[0].ID)

	// Condition resolved: the stale reminder must vanish, not linger.
	reader.properties[0].InsuranceExpiry = datePtr(2025, 12, 1)
	require.NoError(t, svc.Recompute(context.Background()))
	assert.Empty(t, svc.Reminders())
}

func TestReminderService_RecomputeErrorKeepsPreviousSet(t *testing.T) {
	reader := &fakePropertyReader{
		properties: []*models.Property{
			{ID: 1, Name: "Harbourview Terraces", BcNumber: "BC 198211", InsuranceExpiry: datePtr(2025, 2, 1)},
		},
	}
	svc := newTestReminderService(reader)
	require.NoError(t, svc.Recompute(context.Background()))

	reader.err = errors.New("connection refused")
	require.Error(t, svc.Recompute(context.Background()))
	assert.Len(t, svc.Reminders(), 1, "a failed recompute must not clear the projection")
}

func TestReminderService_ReminderLookup(t *testing.T) {
	reader := &fakePropertyReader{
		properties: []*models.Property{
			{ID: 1, Name: "Harbourview Terraces", BcNumber: "BC 198211", InsuranceExpiry: datePtr(2025, 2, 1)},
		},
	}
	svc := newTestReminderService(reader)
	require.NoError(t, svc.Recompute(context.Background()))

	r, found := svc.Reminder("ins-1")
	require.True(t, found)
	assert.Equal(t, models.ReminderTypeInsurance, r.Type)

	_, found = svc.Reminder("ins-99")
	assert.False(t, found)
}

func TestReminderService_RemindersReturnsCopy(t *testing.T) {
	reader := &fakePropertyReader{
		properties: []*models.Property{
			{ID: 1, Name: "Harbourview Terraces", BcNumber: "BC 198211", InsuranceExpiry: datePtr(2025, 2, 1)},
		},
	}
	svc := newTestReminderService(reader)
	require.NoError(t, svc.Recompute(context.Background()))

	first := svc.Reminders()
	first[0] = nil
	assert.NotNil(t, svc.Reminders()[0], "callers must not be able to mutate the internal set")
}
