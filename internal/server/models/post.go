package models

import "time"

// Post is a blog entry. Author is free text, not a reference to a user;
// UpdatedAt is nil until the first update and is always >= CreatedAt after.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    string     `json:"author,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Field length limits enforced on create/update and mirrored by the schema.
const (
	PostTitleMaxLen   = 200
	PostContentMaxLen = 10000
	PostAuthorMaxLen  = 100
)
