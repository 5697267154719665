package dto

import "github.com/prop101/strataops/internal/app/models"

// AddCommentRequest carries a new action-log comment.
type AddCommentRequest struct {
	UserID int64  `json:"userId" binding:"required,min=1"`
	Text   string `json:"text" binding:"required"`
}

// ReminderListResponse is the reminder feed with per-reminder comment badge
// counts attached.
type ReminderListResponse struct {
	Reminders     []*models.Reminder `json:"reminders"`
	CommentCounts map[string]int     `json:"commentCounts"`
}

// CommentListResponse is a single reminder's audit trail.
type CommentListResponse struct {
	ReminderID string                  `json:"reminderId"`
	Comments   []*models.ActionComment `json:"comments"`
}
