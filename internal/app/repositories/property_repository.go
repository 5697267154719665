package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/db"
	"github.com/prop101/strataops/internal/pkg/apperrors"
	"github.com/prop101/strataops/internal/pkg/dberrors"
	"github.com/prop101/strataops/internal/pkg/logger"
)

// propertyColumns is the canonical column order for property scans.
var propertyColumns = []string{
	"id", "bc_number", "name", "address", "units",
	"type", "manager_name", "management_fee", "onboarding_type", "is_archived",
	"financial_year_end", "isoc_nom_days_prior",
	"insurance_expiry", "insurance_broker",
	"has_bwof", "bwof_expiry", "bwof_consultant",
	"has_ltmp", "ltmp_completed_date", "next_ltmp_renewal_date",
	"next_agm_date", "next_agm_time", "next_agm_venue", "next_agm_venue_address",
	"noi_due_date", "noi_response_due_date",
	"created_at", "updated_at",
}

// PropertyRepository handles property database operations.
type PropertyRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPropertyRepository creates a new PropertyRepository.
func NewPropertyRepository(database *db.PostgresDB) *PropertyRepository {
	return &PropertyRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(
		&p.ID, &p.BcNumber, &p.Name, &p.Address, &p.Units,
		&p.Type, &p.ManagerName, &p.ManagementFee, &p.OnboardingType, &p.IsArchived,
		&p.FinancialYearEnd, &p.IsocNomDaysPrior,
		&p.InsuranceExpiry, &p.InsuranceBroker,
		&p.HasBwof, &p.BwofExpiry, &p.BwofConsultant,
		&p.HasLtmp, &p.LtmpCompletedDate, &p.NextLtmpRenewalDate,
		&p.NextAgmDate, &p.NextAgmTime, &p.NextAgmVenue, &p.NextAgmVenueAddress,
		&p.NoiDueDate, &p.NoiResponseDueDate,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new property.
func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) (int64, error) {
	sql, args, err := r.sb.Insert("properties").
		Columns(
			"bc_number", "name", "address", "units",
			"type", "manager_name", "management_fee", "onboarding_type", "is_archived",
			"financial_year_end", "isoc_nom_days_prior",
			"insurance_expiry", "insurance_broker",
			"has_bwof", "bwof_expiry", "bwof_consultant",
			"has_ltmp", "ltmp_completed_date", "next_ltmp_renewal_date",
		).
		Values(
			property.BcNumber, property.Name, property.Address, property.Units,
			property.Type, property.ManagerName, property.ManagementFee, property.OnboardingType, property.IsArchived,
			property.FinancialYearEnd, property.IsocNomDaysPrior,
			property.InsuranceExpiry, property.InsuranceBroker,
			property.HasBwof, property.BwofExpiry, property.BwofConsultant,
			property.HasLtmp, property.LtmpCompletedDate, property.NextLtmpRenewalDate,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create property SQL")
		return 0, fmt.Errorf("failed to build create property query: %w", err)
	}

	var id int64
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrPropertyAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create property query")
		return 0, fmt.Errorf("error creating property: %w", err)
	}
	return id, nil
}

// GetByID retrieves a property with its meetings.
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	sql, args, err := r.sb.Select(propertyColumns...).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get property SQL")
		return nil, fmt.Errorf("failed to build get property query: %w", err)
	}

	property, err := scanProperty(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPropertyNotFound
		}
		logger.Error().Err(err).Int64("propertyID", id).Msg("Error scanning property row")
		return nil, fmt.Errorf("error getting property by ID: %w", err)
	}

	meetings, err := r.meetingsForProperties(ctx, r.db.Pool, []int64{id})
	if err != nil {
		return nil, err
	}
	property.Meetings = meetings[id]
	if property.Meetings == nil {
		property.Meetings = []*models.Meeting{}
	}
	return property, nil
}

// GetAllWithMeetings loads the whole portfolio with meetings attached. Both
// selects run on one repeatable-read transaction so the reminder projection
// never recomputes from a half-updated portfolio.
func (r *PropertyRepository) GetAllWithMeetings(ctx context.Context) ([]*models.Property, error) {
	var properties []*models.Property

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select(propertyColumns...).
			From("properties").
			OrderBy("name ASC").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build get all properties query: %w", err)
		}

		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error querying properties: %w", err)
		}
		defer rows.Close()

		ids := []int64{}
		for rows.Next() {
			p, err := scanProperty(rows)
			if err != nil {
				return fmt.Errorf("error scanning property row: %w", err)
			}
			p.Meetings = []*models.Meeting{}
			properties = append(properties, p)
			ids = append(ids, p.ID)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating property rows: %w", err)
		}
		rows.Close()

		if len(ids) == 0 {
			return nil
		}

		meetings, err := r.meetingsForProperties(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, p := range properties {
			if ms, ok := meetings[p.ID]; ok {
				p.Meetings = ms
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error loading portfolio snapshot")
		return nil, err
	}

	if properties == nil {
		properties = []*models.Property{}
	}
	return properties, nil
}

// queryer abstracts pool and transaction query execution.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// meetingsForProperties loads meetings for the given properties, newest first.
func (r *PropertyRepository) meetingsForProperties(ctx context.Context, q queryer, propertyIDs []int64) (map[int64][]*models.Meeting, error) {
	sql, args, err := r.sb.Select(
		"id", "property_id", "type", "date", "time", "venue", "venue_address",
		"noi_due_date", "noi_response_due_date",
		"noi_issued", "nom_issued", "minutes_issued",
		"created_at", "updated_at",
	).
		From("meetings").
		Where(squirrel.Eq{"property_id": propertyIDs}).
		OrderBy("property_id ASC", "date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get meetings query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying meetings: %w", err)
	}
	defer rows.Close()

	meetings := map[int64][]*models.Meeting{}
	for rows.Next() {
		m := &models.Meeting{}
		err := rows.Scan(
			&m.ID, &m.PropertyID, &m.Type, &m.Date, &m.Time, &m.Venue, &m.VenueAddr,
			&m.NoiDueDate, &m.NoiResponseDueDate,
			&m.NoiIssued, &m.NomIssued, &m.MinutesIssued,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning meeting row: %w", err)
		}
		meetings[m.PropertyID] = append(meetings[m.PropertyID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}
	return meetings, nil
}

// Update updates an existing property.
func (r *PropertyRepository) Update(ctx context.Context, property *models.Property) error {
	sql, args, err := r.sb.Update("properties").
		SetMap(map[string]interface{}{
			"bc_number":              property.BcNumber,
			"name":                   property.Name,
			"address":                property.Address,
			"units":                  property.Units,
			"type":                   property.Type,
			"manager_name":           property.ManagerName,
			"management_fee":         property.ManagementFee,
			"onboarding_type":        property.OnboardingType,
			"is_archived":            property.IsArchived,
			"financial_year_end":     property.FinancialYearEnd,
			"isoc_nom_days_prior":    property.IsocNomDaysPrior,
			"insurance_expiry":       property.InsuranceExpiry,
			"insurance_broker":       property.InsuranceBroker,
			"has_bwof":               property.HasBwof,
			"bwof_expiry":            property.BwofExpiry,
			"bwof_consultant":        property.BwofConsultant,
			"has_ltmp":               property.HasLtmp,
			"ltmp_completed_date":    property.LtmpCompletedDate,
			"next_ltmp_renewal_date": property.NextLtmpRenewalDate,
			"updated_at":             squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": property.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update property SQL")
		return fmt.Errorf("failed to build update property query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrPropertyAlreadyExists
		}
		logger.Error().Err(err).Int64("propertyID", property.ID).Msg("Error executing update property query")
		return fmt.Errorf("error updating property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}

// UpdateNextAgmDetails writes the denormalized next-AGM fields.
func (r *PropertyRepository) UpdateNextAgmDetails(ctx context.Context, propertyID int64, details *models.NextAgmDetails) error {
	sql, args, err := r.sb.Update("properties").
		SetMap(map[string]interface{}{
			"next_agm_date":          details.Date,
			"next_agm_time":          details.Time,
			"next_agm_venue":         details.Venue,
			"next_agm_venue_address": details.VenueAddress,
			"noi_due_date":           details.NoiDueDate,
			"noi_response_due_date":  details.NoiResponseDueDate,
			"updated_at":             squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": propertyID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building next AGM sync SQL")
		return fmt.Errorf("failed to build next AGM sync query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("propertyID", propertyID).Msg("Error syncing next AGM details")
		return fmt.Errorf("error syncing next AGM details: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPropertyNotFound
	}
	return nil
}
