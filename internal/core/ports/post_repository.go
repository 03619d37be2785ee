package ports

import (
	"context"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

// PostRepository defines persistence operations for blog posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	// UpdateAuthorName rewrites the denormalized author username on every
	// post owned by authorID. Called when a user renames their account.
	UpdateAuthorName(ctx context.Context, authorID, username string) error
}
