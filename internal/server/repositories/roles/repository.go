package roles

import "context"

type Repository interface {
	Ensure(ctx context.Context, name string) error
	AddToRole(ctx context.Context, userID, role string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
}
