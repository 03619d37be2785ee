package ports

import (
	"context"
	"time"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
)

// AuthorInput carries the fields for creating an author, standalone or
// nested inside a book payload.
type AuthorInput struct {
	Name string
	Bio  string
}

// AuthorPatch is a partial author update; nil fields are preserved.
type AuthorPatch struct {
	Name *string
	Bio  *string
}

// GenreInput carries the fields for creating a genre.
type GenreInput struct {
	Name string
}

// GenrePatch is a partial genre update.
type GenrePatch struct {
	Name *string
}

// BookInput carries the fields for creating a book. Nested authors and
// genres are resolved get-or-create against existing records.
type BookInput struct {
	Title           string
	Description     string
	PublicationDate time.Time
	Authors         []AuthorInput
	Genres          []GenreInput
}

// BookPatch is a partial book update. A nil Authors or Genres pointer leaves
// the association set untouched; a non-nil pointer (even to an empty slice)
// fully replaces it.
type BookPatch struct {
	Title           *string
	Description     *string
	PublicationDate *time.Time
	Authors         *[]AuthorInput
	Genres          *[]GenreInput
}

// LibraryService defines use-case operations for the catalog. Reads are
// public; writes require any authenticated requester (no ownership).
type LibraryService interface {
	ListAuthors(ctx context.Context) ([]*domain.Author, error)
	CreateAuthor(ctx context.Context, req policy.Requester, in AuthorInput) (*domain.Author, error)
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	UpdateAuthor(ctx context.Context, req policy.Requester, id string, patch AuthorPatch) (*domain.Author, error)

	ListGenres(ctx context.Context) ([]*domain.Genre, error)
	CreateGenre(ctx context.Context, req policy.Requester, in GenreInput) (*domain.Genre, error)
	GetGenre(ctx context.Context, id string) (*domain.Genre, error)
	UpdateGenre(ctx context.Context, req policy.Requester, id string, patch GenrePatch) (*domain.Genre, error)

	ListBooks(ctx context.Context) ([]*domain.Book, error)
	CreateBook(ctx context.Context, req policy.Requester, in BookInput) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, req policy.Requester, id string, patch BookPatch) (*domain.Book, error)
}
