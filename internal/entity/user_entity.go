package entity

import "time"

// User is identified by its username. The username is the primary key and
// is embedded as a reference in sessions, memberships, note authorship and
// user-typed note fields; renames go through the cascade engine.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is identified by its opaque auth token. Removed when the owning
// user is removed; grants nothing past ExpiresAt.
type Session struct {
	AuthToken    string
	Username     string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActiveAt time.Time
}
