package users

import "time"

// User is an account record. Email is stored lowercased and is unique.
// PasswordHash is a self-contained bcrypt hash and never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
