package domain

import "time"

// User is the domain entity for a user account. PasswordHash is derived
// from the plaintext password and the per-user Salt; the plaintext is
// never stored.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
