package models

import "time"

// UserRole controls what an operator may manage.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleAccountManager UserRole = "account_manager"
	RoleSupport        UserRole = "support"
)

// User is an operator of the system. Authentication is handled outside this
// service; users exist here as the author identity for the action log and as
// the manager directory for properties.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Name           string    `json:"name" db:"name"`
	Role           UserRole  `json:"role" db:"role"`
	Title          string    `json:"title,omitempty" db:"title"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	Qualifications string    `json:"qualifications,omitempty" db:"qualifications"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// CanManageProperties reports whether the user may be assigned as a property
// manager.
func (u *User) CanManageProperties() bool {
	return u.Role == RoleAdmin || u.Role == RoleAccountManager
}
