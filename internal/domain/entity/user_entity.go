package entity

import (
	"strings"
	"time"
)

// User is the account aggregate shared by candidates, recruiters and admins.
// Password holds a bcrypt hash.
type User struct {
	ID          string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        Role
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CanLogin reports whether the account is usable.
func (u *User) CanLogin() bool {
	return u.IsActive && u.DeletedAt == nil
}
