package models

import "time"

// User is a registered account. The password is stored only as a bcrypt hash.
type User struct {
	ID           string
	Email        string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
