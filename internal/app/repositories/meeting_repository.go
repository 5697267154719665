package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/db"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/logger"
)

// MeetingRepository handles meeting database operations. Meetings always
// belong to a property; every statement is scoped by property_id so a
// meeting can never be moved or deleted across properties by ID alone.
type MeetingRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMeetingRepository creates a new MeetingRepository.
func NewMeetingRepository(database *db.PostgresDB) *MeetingRepository {
	return &MeetingRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert creates a new meeting under a property.
func (r *MeetingRepository) Insert(ctx context.Context, meeting *models.Meeting) (int64, error) {
	sql, args, err := r.sb.Insert("meetings").
		Columns(
			"property_id", "type", "date", "time", "venue", "venue_address",
			"noi_due_date", "noi_response_due_date",
			"noi_issued", "nom_issued", "minutes_issued",
		).
		Values(
			meeting.PropertyID, meeting.Type, meeting.Date, meeting.Time, meeting.Venue, meeting.VenueAddr,
			meeting.NoiDueDate, meeting.NoiResponseDueDate,
			meeting.NoiIssued, meeting.NomIssued, meeting.MinutesIssued,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert meeting SQL")
		return 0, fmt.Errorf("failed to build insert meeting query: %w", err)
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("propertyID", meeting.PropertyID).Msg("Error executing insert meeting query")
		return 0, fmt.Errorf("error inserting meeting: %w", err)
	}
	return id, nil
}

// Update updates an existing meeting.
func (r *MeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	sql, args, err := r.sb.Update("meetings").
		SetMap(map[string]interface{}{
			"type":                  meeting.Type,
			"date":                  meeting.Date,
			"time":                  meeting.Time,
			"venue":                 meeting.Venue,
			"venue_address":         meeting.VenueAddr,
			"noi_due_date":          meeting.NoiDueDate,
			"noi_response_due_date": meeting.NoiResponseDueDate,
			"noi_issued":            meeting.NoiIssued,
			"nom_issued":            meeting.NomIssued,
			"minutes_issued":        meeting.MinutesIssued,
			"updated_at":            squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": meeting.ID, "property_id": meeting.PropertyID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update meeting SQL")
		return fmt.Errorf("failed to build update meeting query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("meetingID", meeting.ID).Msg("Error executing update meeting query")
		return fmt.Errorf("error updating meeting: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMeetingNotFound
	}
	return nil
}

// Delete removes a meeting from a property.
func (r *MeetingRepository) Delete(ctx context.Context, propertyID, meetingID int64) error {
	sql, args, err := r.sb.Delete("meetings").
		Where(squirrel.Eq{"id": meetingID, "property_id": propertyID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete meeting SQL")
		return fmt.Errorf("failed to build delete meeting query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("meetingID", meetingID).Msg("Error executing delete meeting query")
		return fmt.Errorf("error deleting meeting: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMeetingNotFound
	}
	return nil
}
