package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// fakePropertyStore keeps the portfolio in memory.
type fakePropertyStore struct {
	nextID     int64
	properties map[int64]*models.Property
	agmDetails map[int64]*models.NextAgmDetails
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{
		nextID:     1,
		properties: map[int64]*models.Property{},
		agmDetails: map[int64]*models.NextAgmDetails{},
	}
}

func (f *fakePropertyStore) GetAllWithMeetings(_ context.Context) ([]*models.Property, error) {
	out := []*models.Property{}
	for _, p := range f.properties {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePropertyStore) GetByID(_ context.Context, id int64) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, apperrors.ErrPropertyNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePropertyStore) Create(_ context.Context, property *models.Property) (int64, error) {
	for _, p := range f.properties {
		if p.BcNumber == property.BcNumber {
			return 0, apperrors.ErrPropertyAlreadyExists
		}
	}
	id := f.nextID
	f.nextID++
	stored := *property
	stored.ID = id
	f.properties[id] = &stored
	return id, nil
}

func (f *fakePropertyStore) Update(_ context.Context, property *models.Property) error {
	if _, ok := f.properties[property.ID]; !ok {
		return apperrors.ErrPropertyNotFound
	}
	stored := *property
	f.properties[property.ID] = &stored
	return nil
}

func (f *fakePropertyStore) UpdateNextAgmDetails(_ context.Context, propertyID int64, details *models.NextAgmDetails) error {
	if _, ok := f.properties[propertyID]; !ok {
		return apperrors.ErrPropertyNotFound
	}
	f.agmDetails[propertyID] = details
	return nil
}

// fakeMeetingStore keeps meetings in memory, scoped by property.
type fakeMeetingStore struct {
	nextID   int64
	meetings map[int64]*models.Meeting
}

func newFakeMeetingStore() *fakeMeetingStore {
	return &fakeMeetingStore{nextID: 1, meetings: map[int64]*models.Meeting{}}
}

func (f *fakeMeetingStore) Insert(_ context.Context, meeting *models.Meeting) (int64, error) {
	id := f.nextID
	f.nextID++
	stored := *meeting
	stored.ID = id
	f.meetings[id] = &stored
	return id, nil
}

func (f *fakeMeetingStore) Update(_ context.Context, meeting *models.Meeting) error {
	existing, ok := f.meetings[meeting.ID]
	if !ok || existing.PropertyID != meeting.PropertyID {
		return apperrors.ErrMeetingNotFound
	}
	stored := *meeting
	f.meetings[meeting.ID] = &stored
	return nil
}

func (f *fakeMeetingStore) Delete(_ context.Context, propertyID, meetingID int64) error {
	existing, ok := f.meetings[meetingID]
	if !ok || existing.PropertyID != propertyID {
		return apperrors.ErrMeetingNotFound
	}
	delete(f.meetings, meetingID)
	return nil
}

// recordingReminderService counts recompute requests.
type recordingReminderService struct {
	recomputes int
}

func (r *recordingReminderService) Recompute(_ context.Context) error {
	r.recomputes++
	return nil
}
func (r *recordingReminderService) Reminders() []*models.Reminder { return nil }

func (r *recordingReminderService) Reminder(string) (*models.Reminder, bool) { return nil, false }

type propertyServiceFixture struct {
	svc        *propertyServiceImpl
	properties *fakePropertyStore
	meetings   *fakeMeetingStore
	reminders  *recordingReminderService
}

func newPropertyFixture() *propertyServiceFixture {
	properties := newFakePropertyStore()
	meetings := newFakeMeetingStore()
	reminders := &recordingReminderService{}
	users := &fakeUserReader{users: map[int64]*models.User{
		1: {ID: 1, Name: "Dana Wright", Role: models.RoleAdmin},
		2: {ID: 2, Name: "Sam Porter", Role: models.RoleAccountManager},
		3: {ID: 3, Name: "Riley Chen", Role: models.RoleSupport},
	}}
	svc := &propertyServiceImpl{
		properties: properties,
		meetings:   meetings,
		users:      users,
		reminders:  reminders,
		now:        func() time.Time { return date(2025, 1, 1) },
	}
	return &propertyServiceFixture{svc: svc, properties: properties, meetings: meetings, reminders: reminders}
}

func validProperty() *models.Property {
	return &models.Property{
		BcNumber: "BC 198211",
		Name:     "Harbourview Terraces",
		Address:  "12 Marine Parade, Auckland",
		Units:    24,
	}
}

func TestPropertyService_CreateProperty(t *testing.T) {
	fx := newPropertyFixture()

	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, fx.reminders.recomputes)

	stored, err := fx.svc.GetPropertyByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.IsArchived, "new properties always start active")
}

func TestPropertyService_CreatePropertyValidation(t *testing.T) {
	fx := newPropertyFixture()

	p := validProperty()
	p.Name = "  "
	_, err := fx.svc.CreateProperty(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	p = validProperty()
	p.Units = -1
	_, err = fx.svc.CreateProperty(context.Background(), p)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	assert.Zero(t, fx.reminders.recomputes, "failed validation must not trigger a recompute")
}

func TestPropertyService_CreateDuplicateRegistrationNumber(t *testing.T) {
	fx := newPropertyFixture()

	_, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	_, err = fx.svc.CreateProperty(context.Background(), validProperty())
	assert.ErrorIs(t, err, apperrors.ErrPropertyAlreadyExists)
}

func TestPropertyService_ToggleArchive(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	archived, err := fx.svc.ToggleArchive(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, archived)

	archived, err = fx.svc.ToggleArchive(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, archived)

	// create + two toggles
	assert.Equal(t, 3, fx.reminders.recomputes)
}

func TestPropertyService_AssignManager(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	require.NoError(t, fx.svc.AssignManager(context.Background(), id, 2))
	stored, err := fx.svc.GetPropertyByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Sam Porter", stored.ManagerName)

	err = fx.svc.AssignManager(context.Background(), id, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotAManager, "support staff cannot manage properties")

	err = fx.svc.AssignManager(context.Background(), id, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPropertyService_AddMeetingStampsNoticeDates(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	meeting := &models.Meeting{Type: models.MeetingTypeAGM, Date: date(2025, 3, 1), Time: "18:30", Venue: "Community Hall"}
	created, err := fx.svc.AddMeeting(context.Background(), id, meeting)
	require.NoError(t, err)

	require.NotNil(t, created.NoiDueDate)
	require.NotNil(t, created.NoiResponseDueDate)
	assert.Equal(t, date(2025, 2, 7), *created.NoiDueDate, "NOI is due 22 days before the AGM")
	assert.Equal(t, date(2025, 2, 14), *created.NoiResponseDueDate, "responses are due 15 days before the AGM")

	// Future AGM mirrors onto the property's convenience fields.
	details := fx.properties.agmDetails[id]
	require.NotNil(t, details)
	assert.Equal(t, date(2025, 3, 1), details.Date)
	assert.Equal(t, "18:30", details.Time)
	assert.Equal(t, "Community Hall", details.Venue)
}

func TestPropertyService_AddMeetingSocietyGetsNoNoticeDates(t *testing.T) {
	fx := newPropertyFixture()
	p := validProperty()
	p.BcNumber = "IS 440072"
	id, err := fx.svc.CreateProperty(context.Background(), p)
	require.NoError(t, err)

	created, err := fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: models.MeetingTypeAGM, Date: date(2025, 3, 1)})
	require.NoError(t, err)
	assert.Nil(t, created.NoiDueDate)
	assert.Nil(t, created.NoiResponseDueDate)
}

func TestPropertyService_PastMeetingDoesNotSyncAgmDetails(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	_, err = fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: models.MeetingTypeAGM, Date: date(2024, 11, 1)})
	require.NoError(t, err)
	assert.Nil(t, fx.properties.agmDetails[id])

	_, err = fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: models.MeetingTypeCommittee, Date: date(2025, 6, 1)})
	require.NoError(t, err)
	assert.Nil(t, fx.properties.agmDetails[id], "committee meetings never drive the next-AGM fields")
}

func TestPropertyService_MeetingValidation(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	_, err = fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: "Workshop", Date: date(2025, 3, 1)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: models.MeetingTypeAGM})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPropertyService_DeleteMeeting(t *testing.T) {
	fx := newPropertyFixture()
	id, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	created, err := fx.svc.AddMeeting(context.Background(), id, &models.Meeting{Type: models.MeetingTypeSGM, Date: date(2025, 4, 1)})
	require.NoError(t, err)

	before := fx.reminders.recomputes
	require.NoError(t, fx.svc.DeleteMeeting(context.Background(), id, created.ID))
	assert.Equal(t, before+1, fx.reminders.recomputes)

	err = fx.svc.DeleteMeeting(context.Background(), id, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrMeetingNotFound)
}

func TestPropertyService_UpdateMeetingWrongProperty(t *testing.T) {
	fx := newPropertyFixture()
	first, err := fx.svc.CreateProperty(context.Background(), validProperty())
	require.NoError(t, err)

	other := validProperty()
	other.BcNumber = "BC 555000"
	second, err := fx.svc.CreateProperty(context.Background(), other)
	require.NoError(t, err)

	created, err := fx.svc.AddMeeting(context.Background(), first, &models.Meeting{Type: models.MeetingTypeAGM, Date: date(2025, 3, 1)})
	require.NoError(t, err)

	err = fx.svc.UpdateMeeting(context.Background(), second, created)
	assert.ErrorIs(t, err, apperrors.ErrMeetingNotFound, "meetings cannot be addressed through another property")
}
