package ports

import (
	"context"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

// TaskRepository defines persistence operations for todo tasks. Every lookup
// is scoped by (id, owner): a task owned by someone else is indistinguishable
// from a missing one, both return domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByIDAndOwner(ctx context.Context, id, owner string) (*domain.Task, error)
	// ListByOwner returns the owner's tasks ordered by updated_at ascending.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id, owner string) error
}
