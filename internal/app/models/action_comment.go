package models

import "time"

// ActionComment is an operator annotation against a reminder. Comments are
// append-only: deletion only sets IsDeleted so the audit history survives.
type ActionComment struct {
	ID         string    `json:"id" db:"id"`
	ReminderID string    `json:"reminderId" db:"reminder_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	UserName   string    `json:"userName" db:"user_name"`
	Text       string    `json:"text" db:"text"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
	IsDeleted  bool      `json:"isDeleted" db:"is_deleted"`
}
