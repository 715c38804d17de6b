package models

import "time"

// Role identifies who authored a transcript entry
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Entry is one message in the transcript.
// Pending is true only for a bot placeholder whose reply has not arrived.
type Entry struct {
	ID        string
	Role      Role
	Text      string
	Pending   bool
	CreatedAt time.Time
}

// IsUser reports whether the entry was written by the user
func (e Entry) IsUser() bool {
	return e.Role == RoleUser
}
