package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/dates"
)

// Days before an AGM the notice of intention and the owners' response are
// due; used to precompute the informational due dates stored on meetings.
const (
	agmNoiDaysPrior      = 22
	agmResponseDaysPrior = 15
)

// PropertyStore persists the property aggregate.
type PropertyStore interface {
	PropertyReader
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) (int64, error)
	Update(ctx context.Context, property *models.Property) error
	// UpdateNextAgmDetails writes the denormalized next-AGM convenience
	// fields without touching the rest of the row.
	UpdateNextAgmDetails(ctx context.Context, propertyID int64, details *models.NextAgmDetails) error
}

// MeetingStore persists meetings owned by properties.
type MeetingStore interface {
	Insert(ctx context.Context, meeting *models.Meeting) (int64, error)
	// Update returns apperrors.ErrMeetingNotFound when no meeting matches
	// the (property, meeting) pair.
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, propertyID, meetingID int64) error
}

// PropertyService defines portfolio maintenance operations. Every mutation
// finishes by asking the reminder projection to recompute, so the derived
// reminder set always reflects the stored portfolio.
type PropertyService interface {
	CreateProperty(ctx context.Context, property *models.Property) (int64, error)
	GetPropertyByID(ctx context.Context, id int64) (*models.Property, error)
	GetAllProperties(ctx context.Context) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, property *models.Property) error
	// ToggleArchive flips the archival flag and returns the new state.
	// Archived properties contribute no reminders.
	ToggleArchive(ctx context.Context, id int64) (bool, error)
	AssignManager(ctx context.Context, propertyID, userID int64) error
	AddMeeting(ctx context.Context, propertyID int64, meeting *models.Meeting) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, propertyID int64, meeting *models.Meeting) error
	DeleteMeeting(ctx context.Context, propertyID, meetingID int64) error
}

// propertyServiceImpl implements the PropertyService interface.
type propertyServiceImpl struct {
	properties PropertyStore
	meetings   MeetingStore
	users      UserReader
	reminders  ReminderService
	now        func() time.Time
}

// NewPropertyService creates a new property service instance.
func NewPropertyService(properties PropertyStore, meetings MeetingStore, users UserReader, reminders ReminderService) PropertyService {
	return &propertyServiceImpl{
		properties: properties,
		meetings:   meetings,
		users:      users,
		reminders:  reminders,
		now:        time.Now,
	}
}

// validateProperty validates property data before persistence.
func (s *propertyServiceImpl) validateProperty(property *models.Property) error {
	if property == nil {
		return fmt.Errorf("%w: property is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(property.BcNumber) == "" {
		return fmt.Errorf("%w: registration number cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(property.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if property.Units < 0 {
		return fmt.Errorf("%w: units cannot be negative", apperrors.ErrValidationFailed)
	}
	if property.Type != nil && *property.Type != models.ComplexTypeBodyCorporate && *property.Type != models.ComplexTypeIncorporatedSociety {
		return fmt.Errorf("%w: unknown complex type %q", apperrors.ErrValidationFailed, *property.Type)
	}
	if property.IsocNomDaysPrior != nil && *property.IsocNomDaysPrior <= 0 {
		return fmt.Errorf("%w: notice of motion days must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

// validateMeeting validates meeting data before persistence.
func (s *propertyServiceImpl) validateMeeting(meeting *models.Meeting) error {
	if meeting == nil {
		return fmt.Errorf("%w: meeting is nil", apperrors.ErrValidationFailed)
	}
	switch meeting.Type {
	case models.MeetingTypeAGM, models.MeetingTypeEGM, models.MeetingTypeSGM, models.MeetingTypeCommittee:
	default:
		return fmt.Errorf("%w: unknown meeting type %q", apperrors.ErrValidationFailed, meeting.Type)
	}
	if meeting.Date.IsZero() {
		return fmt.Errorf("%w: meeting date is required", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateProperty creates a new property. New properties always start active
// and with an empty meeting history.
func (s *propertyServiceImpl) CreateProperty(ctx context.Context, property *models.Property) (int64, error) {
	if err := s.validateProperty(property); err != nil {
		return 0, err
	}
	property.IsArchived = false
	property.Meetings = nil

	id, err := s.properties.Create(ctx, property)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyAlreadyExists) {
			return 0, apperrors.ErrPropertyAlreadyExists
		}
		return 0, fmt.Errorf("error creating property: %w", err)
	}
	property.ID = id

	if err := s.reminders.Recompute(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// GetPropertyByID retrieves a property with its meetings.
func (s *propertyServiceImpl) GetPropertyByID(ctx context.Context, id int64) (*models.Property, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid property ID", apperrors.ErrValidationFailed)
	}
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error retrieving property: %w", err)
	}
	return property, nil
}

// GetAllProperties retrieves the portfolio with meetings attached.
func (s *propertyServiceImpl) GetAllProperties(ctx context.Context) ([]*models.Property, error) {
	properties, err := s.properties.GetAllWithMeetings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving properties: %w", err)
	}
	return properties, nil
}

// UpdateProperty updates an existing property.
func (s *propertyServiceImpl) UpdateProperty(ctx context.Context, property *models.Property) error {
	if err := s.validateProperty(property); err != nil {
		return err
	}
	if property.ID <= 0 {
		return fmt.Errorf("%w: invalid property ID", apperrors.ErrValidationFailed)
	}

	if err := s.properties.Update(ctx, property); err != nil {
		if errors.Is(err, apperrors.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		if errors.Is(err, apperrors.ErrPropertyAlreadyExists) {
			return apperrors.ErrPropertyAlreadyExists
		}
		return fmt.Errorf("error updating property: %w", err)
	}

	return s.reminders.Recompute(ctx)
}

// ToggleArchive flips the archival flag.
func (s *propertyServiceImpl) ToggleArchive(ctx context.Context, id int64) (bool, error) {
	property, err := s.GetPropertyByID(ctx, id)
	if err != nil {
		return false, err
	}

	property.IsArchived = !property.IsArchived
	if err := s.properties.Update(ctx, property); err != nil {
		return false, fmt.Errorf("error archiving property: %w", err)
	}

	if err := s.reminders.Recompute(ctx); err != nil {
		return false, err
	}
	return property.IsArchived, nil
}

// AssignManager sets the named manager on a property. Only admins and
// account managers are eligible.
func (s *propertyServiceImpl) AssignManager(ctx context.Context, propertyID, userID int64) error {
	property, err := s.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error resolving manager: %w", err)
	}
	if !user.CanManageProperties() {
		return apperrors.ErrNotAManager
	}

	property.ManagerName = user.Name
	if err := s.properties.Update(ctx, property); err != nil {
		return fmt.Errorf("error assigning manager: %w", err)
	}
	return nil
}

// AddMeeting appends a meeting to a property, precomputes its AGM notice
// dates and syncs the property's next-AGM convenience fields.
func (s *propertyServiceImpl) AddMeeting(ctx context.Context, propertyID int64, meeting *models.Meeting) (*models.Meeting, error) {
	if err := s.validateMeeting(meeting); err != nil {
		return nil, err
	}

	property, err := s.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	meeting.PropertyID = property.ID
	s.stampNoticeDates(property, meeting)

	id, err := s.meetings.Insert(ctx, meeting)
	if err != nil {
		return nil, fmt.Errorf("error adding meeting: %w", err)
	}
	meeting.ID = id

	if err := s.syncNextAgmDetails(ctx, property, meeting); err != nil {
		return nil, err
	}
	if err := s.reminders.Recompute(ctx); err != nil {
		return nil, err
	}
	return meeting, nil
}

// UpdateMeeting updates a meeting and re-syncs the property's next-AGM
// convenience fields.
func (s *propertyServiceImpl) UpdateMeeting(ctx context.Context, propertyID int64, meeting *models.Meeting) error {
	if err := s.validateMeeting(meeting); err != nil {
		return err
	}
	if meeting.ID <= 0 {
		return fmt.Errorf("%w: invalid meeting ID", apperrors.ErrValidationFailed)
	}

	property, err := s.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return err
	}

	meeting.PropertyID = property.ID
	s.stampNoticeDates(property, meeting)

	if err := s.meetings.Update(ctx, meeting); err != nil {
		if errors.Is(err, apperrors.ErrMeetingNotFound) {
			return apperrors.ErrMeetingNotFound
		}
		return fmt.Errorf("error updating meeting: %w", err)
	}

	if err := s.syncNextAgmDetails(ctx, property, meeting); err != nil {
		return err
	}
	return s.reminders.Recompute(ctx)
}

// DeleteMeeting removes a meeting from a property.
func (s *propertyServiceImpl) DeleteMeeting(ctx context.Context, propertyID, meetingID int64) error {
	if propertyID <= 0 || meetingID <= 0 {
		return fmt.Errorf("%w: invalid meeting ID", apperrors.ErrValidationFailed)
	}

	if err := s.meetings.Delete(ctx, propertyID, meetingID); err != nil {
		if errors.Is(err, apperrors.ErrMeetingNotFound) {
			return apperrors.ErrMeetingNotFound
		}
		return fmt.Errorf("error deleting meeting: %w", err)
	}

	return s.reminders.Recompute(ctx)
}

// stampNoticeDates precomputes the informational NOI due dates on AGM
// meetings of Body Corporate properties. Incorporated Societies have no NOI
// obligation, so their meetings carry none.
func (s *propertyServiceImpl) stampNoticeDates(property *models.Property, meeting *models.Meeting) {
	if meeting.Type != models.MeetingTypeAGM || property.IsIncorporatedSociety() {
		return
	}
	noiDue := dates.Normalize(meeting.Date).AddDate(0, 0, -agmNoiDaysPrior)
	noiResponseDue := dates.Normalize(meeting.Date).AddDate(0, 0, -agmResponseDaysPrior)
	meeting.NoiDueDate = &noiDue
	meeting.NoiResponseDueDate = &noiResponseDue
}

// syncNextAgmDetails mirrors a future AGM or SGM onto the property's
// denormalized next-AGM fields so dashboards can read them without scanning
// meetings. Past meetings and other meeting types leave the fields alone.
func (s *propertyServiceImpl) syncNextAgmDetails(ctx context.Context, property *models.Property, meeting *models.Meeting) error {
	if meeting.Type != models.MeetingTypeAGM && meeting.Type != models.MeetingTypeSGM {
		return nil
	}
	if !dates.Normalize(meeting.Date).After(dates.Normalize(s.now())) {
		return nil
	}

	details := &models.NextAgmDetails{
		Date:               meeting.Date,
		Time:               meeting.Time,
		Venue:              meeting.Venue,
		VenueAddress:       meeting.VenueAddr,
		NoiDueDate:         meeting.NoiDueDate,
		NoiResponseDueDate: meeting.NoiResponseDueDate,
	}
	if err := s.properties.UpdateNextAgmDetails(ctx, property.ID, details); err != nil {
		return fmt.Errorf("error syncing next AGM details: %w", err)
	}
	return nil
}
