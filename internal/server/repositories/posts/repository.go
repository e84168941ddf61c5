package posts

import (
	"context"

	"github.com/avolkov/microblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, skip, take int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}
