package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prop101/strataops/internal/app/models"
	"github.com/prop101/strataops/internal/pkg/apperrors"
)

// ActionCommentStore persists the append-only action log. Records are never
// hard-deleted; MarkDeleted only flips the soft-delete flag.
type ActionCommentStore interface {
	Insert(ctx context.Context, comment *models.ActionComment) error
	// MarkDeleted returns apperrors.ErrCommentNotFound when no record
	// matches the ID.
	MarkDeleted(ctx context.Context, id string) error
	// ListByReminder returns comments for a reminder sorted by creation
	// time ascending, excluding soft-deleted records unless asked.
	ListByReminder(ctx context.Context, reminderID string, includeDeleted bool) ([]*models.ActionComment, error)
	// CountActive returns per-reminder counts of non-deleted comments.
	CountActive(ctx context.Context) (map[string]int, error)
}

// UserReader resolves comment authors.
type UserReader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// ActionLogService defines the audit-trail operations against reminders.
// Reminders are keyed by their deterministic IDs, so the log has a lifecycle
// independent of the properties generating the reminders.
type ActionLogService interface {
	// AddComment appends a comment. Empty or whitespace-only text fails
	// with apperrors.ErrValidationFailed; the check lives here so every
	// caller gets the guarantee, not just the HTTP boundary.
	AddComment(ctx context.Context, reminderID string, userID int64, text string) (*models.ActionComment, error)
	// RemoveComment soft-deletes a comment. A missing ID is reported as
	// apperrors.ErrCommentNotFound rather than ignored.
	RemoveComment(ctx context.Context, commentID string) error
	ListComments(ctx context.Context, reminderID string, includeDeleted bool) ([]*models.ActionComment, error)
	// CommentCounts returns badge counts per reminder, counting only
	// non-deleted records.
	CommentCounts(ctx context.Context) (map[string]int, error)
}

// actionLogServiceImpl implements the ActionLogService interface.
type actionLogServiceImpl struct {
	comments ActionCommentStore
	users    UserReader
	now      func() time.Time
}

// NewActionLogService creates a new action log service instance.
func NewActionLogService(comments ActionCommentStore, users UserReader) ActionLogService {
	return &actionLogServiceImpl{
		comments: comments,
		users:    users,
		now:      time.Now,
	}
}

// AddComment appends a new annotation to a reminder's audit trail.
func (s *actionLogServiceImpl) AddComment(ctx context.Context, reminderID string, userID int64, text string) (*models.ActionComment, error) {
	if strings.TrimSpace(reminderID) == "" {
		return nil, fmt.Errorf("%w: reminder id cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving comment author: %w", err)
	}

	comment := &models.ActionComment{
		ID:         uuid.NewString(),
		ReminderID: reminderID,
		UserID:     user.ID,
		UserName:   user.Name,
		Text:       text,
		Timestamp:  s.now(),
		IsDeleted:  false,
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, fmt.Errorf("error adding action comment: %w", err)
	}
	return comment, nil
}

// RemoveComment soft-deletes a comment so it stays visible in the history view.
func (s *actionLogServiceImpl) RemoveComment(ctx context.Context, commentID string) error {
	err := s.comments.MarkDeleted(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("error removing action comment: %w", err)
	}
	return nil
}

// ListComments returns a reminder's audit trail, oldest first.
func (s *actionLogServiceImpl) ListComments(ctx context.Context, reminderID string, includeDeleted bool) ([]*models.ActionComment, error) {
	comments, err := s.comments.ListByReminder(ctx, reminderID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("error listing action comments: %w", err)
	}
	return comments, nil
}

// CommentCounts returns non-deleted comment counts keyed by reminder ID.
func (s *actionLogServiceImpl) CommentCounts(ctx context.Context) (map[string]int, error) {
	counts, err := s.comments.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting action comments: %w", err)
	}
	return counts, nil
}
