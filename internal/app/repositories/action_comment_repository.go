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

// ActionCommentRepository handles action log database operations. The table
// is append-only: rows are only ever inserted or flagged deleted, never
// removed, so the audit history stays complete.
type ActionCommentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewActionCommentRepository creates a new ActionCommentRepository.
func NewActionCommentRepository(database *db.PostgresDB) *ActionCommentRepository {
	return &ActionCommentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert appends a new comment.
func (r *ActionCommentRepository) Insert(ctx context.Context, comment *models.ActionComment) error {
	sql, args, err := r.sb.Insert("action_comments").
		Columns("id", "reminder_id", "user_id", "user_name", "text", "created_at", "is_deleted").
		Values(comment.ID, comment.ReminderID, comment.UserID, comment.UserName, comment.Text, comment.Timestamp, comment.IsDeleted).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert comment SQL")
		return fmt.Errorf("failed to build insert comment query: %w", err)
	}

	if _, err := r.db.Pool.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("reminderID", comment.ReminderID).Msg("Error executing insert comment query")
		return fmt.Errorf("error inserting action comment: %w", err)
	}
	return nil
}

// MarkDeleted sets the soft-delete flag on a comment.
func (r *ActionCommentRepository) MarkDeleted(ctx context.Context, id string) error {
	sql, args, err := r.sb.Update("action_comments").
		Set("is_deleted", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building soft delete SQL")
		return fmt.Errorf("failed to build soft delete query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("commentID", id).Msg("Error executing soft delete query")
		return fmt.Errorf("error soft-deleting action comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// ListByReminder returns a reminder's comments, oldest first.
func (r *ActionCommentRepository) ListByReminder(ctx context.Context, reminderID string, includeDeleted bool) ([]*models.ActionComment, error) {
	builder := r.sb.Select("id", "reminder_id", "user_id", "user_name", "text", "created_at", "is_deleted").
		From("action_comments").
		Where(squirrel.Eq{"reminder_id": reminderID}).
		OrderBy("created_at ASC")
	if !includeDeleted {
		builder = builder.Where(squirrel.Eq{"is_deleted": false})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list comments SQL")
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("reminderID", reminderID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error querying action comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.ActionComment{}
	for rows.Next() {
		c := &models.ActionComment{}
		if err := rows.Scan(&c.ID, &c.ReminderID, &c.UserID, &c.UserName, &c.Text, &c.Timestamp, &c.IsDeleted); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// CountActive returns non-deleted comment counts grouped by reminder.
func (r *ActionCommentRepository) CountActive(ctx context.Context) (map[string]int, error) {
	sql, args, err := r.sb.Select("reminder_id", "COUNT(*)").
		From("action_comments").
		Where(squirrel.Eq{"is_deleted": false}).
		GroupBy("reminder_id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count comments SQL")
		return nil, fmt.Errorf("failed to build count comments query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count comments query")
		return nil, fmt.Errorf("error counting action comments: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var reminderID string
		var count int
		if err := rows.Scan(&reminderID, &count); err != nil {
			return nil, fmt.Errorf("error scanning comment count row: %w", err)
		}
		counts[reminderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment count rows: %w", err)
	}
	return counts, nil
}
