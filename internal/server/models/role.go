package models

// Role names are a small fixed set seeded at startup.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Role struct {
	ID   int64
	Name string
}
