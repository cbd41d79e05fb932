package model

import "time"

// Session backs a pair of access/refresh tokens. Revoking it invalidates both.
type Session struct {
	ID        string
	AccountID int64
	ExpiresAt time.Time
	Revoked   bool
	Created   time.Time
}
