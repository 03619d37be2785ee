package ports

import (
	"context"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
)

// PostInput carries the client-settable fields for creating a post. The
// author is never client-supplied: it is forced to the requester.
type PostInput struct {
	Title   string
	Content string
}

// PostPatch is a partial update; nil fields are left as they were.
type PostPatch struct {
	Title   *string
	Content *string
}

// PostService defines use-case operations for blog posts.
type PostService interface {
	List(ctx context.Context) ([]*domain.Post, error)
	Create(ctx context.Context, req policy.Requester, in PostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, req policy.Requester, id string, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, req policy.Requester, id string) error
}
