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

// fakeCommentStore keeps the action log in memory with the same soft-delete
// semantics as the real repository.
type fakeCommentStore struct {
	comments []*models.ActionComment
}

func (f *fakeCommentStore) Insert(_ context.Context, comment *models.ActionComment) error {
	stored := *comment
	f.comments = append(f.comments, &stored)
	return nil
}

func (f *fakeCommentStore) MarkDeleted(_ context.Context, id string) error {
	for _, c := range f.comments {
		if c.ID == id {
			c.IsDeleted = true
			return nil
		}
	}
	return apperrors.ErrCommentNotFound
}

func (f *fakeCommentStore) ListByReminder(_ context.Context, reminderID string, includeDeleted bool) ([]*models.ActionComment, error) {
	out := []*models.ActionComment{}
	for _, c := range f.comments {
		if c.ReminderID != reminderID {
			continue
		}
		if c.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCommentStore) CountActive(_ context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, c := range f.comments {
		if !c.IsDeleted {
			counts[c.ReminderID]++
		}
	}
	return counts, nil
}

// fakeUserReader resolves authors from a fixed directory.
type fakeUserReader struct {
	users map[int64]*models.User
}

func (f *fakeUserReader) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newTestActionLog() (*actionLogServiceImpl, *fakeCommentStore) {
	store := &fakeCommentStore{}
	users := &fakeUserReader{users: map[int64]*models.User{
		1: {ID: 1, Name: "Dana Wright", Role: models.RoleAdmin},
	}}
	svc := &actionLogServiceImpl{
		comments: store,
		users:    users,
		now:      func() time.Time { return date(2025, 1, 1) },
	}
	return svc, store
}

func TestActionLog_AddComment(t *testing.T) {
	svc, store := newTestActionLog()

	comment, err := svc.AddComment(context.Background(), "ins-1", 1, "Broker chased for renewal terms")
	require.NoError(t, err)

	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "ins-1", comment.ReminderID)
	assert.Equal(t, int64(1), comment.UserID)
	assert.Equal(t, "Dana Wright", comment.UserName)
	assert.Equal(t, date(2025, 1, 1), comment.Timestamp)
	assert.False(t, comment.IsDeleted)
	assert.Len(t, store.comments, 1)
}

func TestActionLog_AddCommentValidation(t *testing.T) {
	svc, _ := newTestActionLog()

	_, err := svc.AddComment(context.Background(), "ins-1", 1, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AddComment(context.Background(), "", 1, "text")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AddComment(context.Background(), "ins-1", 99, "text")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestActionLog_UniqueCommentIDs(t *testing.T) {
	svc, _ := newTestActionLog()

	a, err := svc.AddComment(context.Background(), "ins-1", 1, "first")
	require.NoError(t, err)
	b, err := svc.AddComment(context.Background(), "ins-1", 1, "second")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestActionLog_SoftDelete(t *testing.T) {
	svc, store := newTestActionLog()

	comment, err := svc.AddComment(context.Background(), "bwof-2", 1, "Consultant booked for inspection")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveComment(context.Background(), comment.ID))

	// The record survives, only flagged.
	require.Len(t, store.comments, 1)
	assert.True(t, store.comments[0].IsDeleted)

	visible, err := svc.ListComments(context.Background(), "bwof-2", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := svc.ListComments(context.Background(), "bwof-2", true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDeleted)
}

func TestActionLog_RemoveMissingComment(t *testing.T) {
	svc, _ := newTestActionLog()

	err := svc.RemoveComment(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestActionLog_CommentCountsExcludeDeleted(t *testing.T) {
	svc, _ := newTestActionLog()

	_, err := svc.AddComment(context.Background(), "ins-1", 1, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(context.Background(), "ins-1", 1, "second")
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), "noi-1-5", 1, "notice drafted")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveComment(context.Background(), second.ID))

	counts, err := svc.CommentCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ins-1": 1, "noi-1-5": 1}, counts)
}

func TestActionLog_SurvivesReminderRegeneration(t *testing.T) {
	// Comments key on the deterministic reminder ID, so a comment added
	// before a recompute still lists afterwards under the same ID.
	svc, _ := newTestActionLog()

	_, err := svc.AddComment(context.Background(), "nom-3-21", 1, "agenda sent to committee")
	require.NoError(t, err)

	property := &models.Property{
		ID: 3, Name: "Harbourview Terraces", BcNumber: "BC 198211",
		Meetings: []*models.Meeting{{ID: 21, Type: models.MeetingTypeAGM, Date: date(2025, 1, 20)}},
	}
	reminders := ComputeReminders([]*models.Property{property}, calcToday)

	var ids []string
	for _, r := range reminders {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "nom-3-21")

	comments, err := svc.ListComments(context.Background(), "nom-3-21", false)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
