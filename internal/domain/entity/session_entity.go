package entity

import "time"

// Session is the server-side record of a login. SessionID rotates on refresh.
type Session struct {
	UserID    string
	SessionID string
	Email     string
	Role      Role
	CreatedAt time.Time
}
