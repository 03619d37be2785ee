package ports

import (
	"context"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
)

// TaskInput carries the client-settable fields for creating a task. The
// owner is always the requester, regardless of the payload.
type TaskInput struct {
	Title       string
	Description string
	Done        bool
}

// TaskPatch is a partial update; nil fields are preserved.
type TaskPatch struct {
	Title       *string
	Description *string
	Done        *bool
}

// TaskService defines use-case operations for todo tasks. All operations
// require an authenticated requester.
type TaskService interface {
	List(ctx context.Context, req policy.Requester) ([]*domain.Task, error)
	Create(ctx context.Context, req policy.Requester, in TaskInput) (*domain.Task, error)
	Get(ctx context.Context, req policy.Requester, id string) (*domain.Task, error)
	Update(ctx context.Context, req policy.Requester, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, req policy.Requester, id string) error
}
