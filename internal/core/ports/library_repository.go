package ports

import (
	"context"
	"time"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

// AuthorRepository defines persistence operations for catalog authors.
// GetOrCreate must be atomic at the store: two concurrent calls with the
// same fields resolve to a single record (unique index or native upsert).
type AuthorRepository interface {
	// GetOrCreate resolves by exact match on all fields, inserting when no
	// record matches. The bool reports whether a new record was created.
	GetOrCreate(ctx context.Context, name, bio string) (*domain.Author, bool, error)
	FindByID(ctx context.Context, id string) (*domain.Author, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Author, error)
	List(ctx context.Context) ([]*domain.Author, error)
	Update(ctx context.Context, a *domain.Author) error
}

// GenreRepository defines persistence operations for catalog genres.
type GenreRepository interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Genre, bool, error)
	FindByID(ctx context.Context, id string) (*domain.Genre, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Genre, error)
	List(ctx context.Context) ([]*domain.Genre, error)
	Update(ctx context.Context, g *domain.Genre) error
}

// BookRecord is the stored shape of a book: scalar fields plus id sets for
// the many-to-many author and genre associations.
type BookRecord struct {
	ID              string
	Title           string
	Description     string
	PublicationDate time.Time
	AuthorIDs       []string
	GenreIDs        []string
}

// BookRepository defines persistence operations for books.
type BookRepository interface {
	Create(ctx context.Context, b *BookRecord) (*BookRecord, error)
	FindByID(ctx context.Context, id string) (*BookRecord, error)
	List(ctx context.Context) ([]*BookRecord, error)
	Update(ctx context.Context, b *BookRecord) error
}
