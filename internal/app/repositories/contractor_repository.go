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
	"github.com/prop101/strataops/internal/pkg/logger"
)

// ContractorRepository handles contractor database operations.
type ContractorRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewContractorRepository creates a new ContractorRepository.
func NewContractorRepository(database *db.PostgresDB) *ContractorRepository {
	return &ContractorRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new contractor.
func (r *ContractorRepository) Create(ctx context.Context, contractor *models.Contractor) (int64, error) {
	sql, args, err := r.sb.Insert("contractors").
		Columns("name", "category", "contact_person", "email", "phone").
		Values(contractor.Name, contractor.Category, contractor.ContactPerson, contractor.Email, contractor.Phone).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create contractor SQL")
		return 0, fmt.Errorf("failed to build create contractor query: %w", err)
	}

	var id int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create contractor query")
		return 0, fmt.Errorf("error creating contractor: %w", err)
	}
	return id, nil
}

// GetByID retrieves a contractor by ID.
func (r *ContractorRepository) GetByID(ctx context.Context, id int64) (*models.Contractor, error) {
	sql, args, err := r.sb.Select("id", "name", "category", "contact_person", "email", "phone", "created_at", "updated_at").
		From("contractors").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get contractor SQL")
		return nil, fmt.Errorf("failed to build get contractor query: %w", err)
	}

	c := &models.Contractor{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).
		Scan(&c.ID, &c.Name, &c.Category, &c.ContactPerson, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContractorNotFound
		}
		logger.Error().Err(err).Int64("contractorID", id).Msg("Error scanning contractor row")
		return nil, fmt.Errorf("error getting contractor by ID: %w", err)
	}
	return c, nil
}

// GetAll retrieves all contractors ordered by name.
func (r *ContractorRepository) GetAll(ctx context.Context) ([]*models.Contractor, error) {
	sql, args, err := r.sb.Select("id", "name", "category", "contact_person", "email", "phone", "created_at", "updated_at").
		From("contractors").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all contractors SQL")
		return nil, fmt.Errorf("failed to build get all contractors query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all contractors query")
		return nil, fmt.Errorf("error querying contractors: %w", err)
	}
	defer rows.Close()

	contractors := []*models.Contractor{}
	for rows.Next() {
		c := &models.Contractor{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.ContactPerson, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contractor row: %w", err)
		}
		contractors = append(contractors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contractor rows: %w", err)
	}
	return contractors, nil
}

// Update updates an existing contractor.
func (r *ContractorRepository) Update(ctx context.Context, contractor *models.Contractor) error {
	sql, args, err := r.sb.Update("contractors").
		SetMap(map[string]interface{}{
			"name":           contractor.Name,
			"category":       contractor.Category,
			"contact_person": contractor.ContactPerson,
			"email":          contractor.Email,
			"phone":          contractor.Phone,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": contractor.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update contractor SQL")
		return fmt.Errorf("failed to build update contractor query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contractorID", contractor.ID).Msg("Error executing update contractor query")
		return fmt.Errorf("error updating contractor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrContractorNotFound
	}
	return nil
}

// Delete removes a contractor.
func (r *ContractorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("contractors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete contractor SQL")
		return fmt.Errorf("failed to build delete contractor query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contractorID", id).Msg("Error executing delete contractor query")
		return fmt.Errorf("error deleting contractor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrContractorNotFound
	}
	return nil
}
