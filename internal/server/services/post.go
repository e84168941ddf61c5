package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avolkov/microblog/internal/server/models"
	"github.com/avolkov/microblog/internal/server/repositories/repomanager"
)

// List pagination bounds. Take is clamped into [ListTakeMin, ListTakeMax];
// callers that omit it use ListTakeDefault.
const (
	ListTakeMin     = 1
	ListTakeMax     = 100
	ListTakeDefault = 20
)

// PostService implements the posts resource: paginated listing plus CRUD.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Length bounds count characters, not bytes, matching the VARCHAR(n) columns.
func validatePost(title, content, author string) error {
	ve := &ValidationError{}
	if title == "" {
		ve.add("title", "is required")
	} else if utf8.RuneCountInString(title) > models.PostTitleMaxLen {
		ve.add("title", fmt.Sprintf("must be at most %d characters", models.PostTitleMaxLen))
	}
	if content == "" {
		ve.add("content", "is required")
	} else if utf8.RuneCountInString(content) > models.PostContentMaxLen {
		ve.add("content", fmt.Sprintf("must be at most %d characters", models.PostContentMaxLen))
	}
	if utf8.RuneCountInString(author) > models.PostAuthorMaxLen {
		ve.add("author", fmt.Sprintf("must be at most %d characters", models.PostAuthorMaxLen))
	}
	return ve.orNil()
}

// List returns posts ordered by creation time descending. Negative skip is
// treated as 0; take is clamped into [1, 100].
func (s *PostService) List(ctx context.Context, skip, take int) ([]*models.Post, error) {
	if skip < 0 {
		skip = 0
	}
	if take < ListTakeMin {
		take = ListTakeMin
	}
	if take > ListTakeMax {
		take = ListTakeMax
	}
	return s.repomanager.Posts(s.db).List(ctx, skip, take)
}

// Get returns the post or common.ErrorNotFound.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, id)
}

// Create validates and stores a new post. A blank author falls back to
// fallbackAuthor (the authenticated username). The creation timestamp is set
// server-side to the current UTC time.
func (s *PostService) Create(ctx context.Context, title, content, author, fallbackAuthor string) (*models.Post, error) {
	if err := validatePost(title, content, author); err != nil {
		return nil, err
	}
	if strings.TrimSpace(author) == "" {
		author = fallbackAuthor
	}
	post := &models.Post{
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	return s.repomanager.Posts(s.db).Create(ctx, post)
}

// Update replaces title and content of an existing post; the author is
// replaced only when the supplied value is non-blank. Sets the update
// timestamp to the current UTC time. Returns common.ErrorNotFound for an
// unknown id.
func (s *PostService) Update(ctx context.Context, id int64, title, content, author string) (*models.Post, error) {
	if err := validatePost(title, content, author); err != nil {
		return nil, err
	}

	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = content
	if strings.TrimSpace(author) != "" {
		post.Author = author
	}
	now := time.Now().UTC()
	post.UpdatedAt = &now

	if err := repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post or returns common.ErrorNotFound.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}
