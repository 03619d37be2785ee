package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scribehub/scribehub-api/internal/api/metrics"
	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// LibraryService implements the catalog use cases. Authors and genres are
// shared reference entities: nested occurrences inside a book payload are
// resolved get-or-create by exact field match, so identical payloads across
// requests never create duplicates. Writes need any authenticated requester;
// the catalog carries no ownership.
type LibraryService struct {
	authors ports.AuthorRepository
	genres  ports.GenreRepository
	books   ports.BookRepository
	log     zerolog.Logger
}

func NewLibraryService(
	authors ports.AuthorRepository,
	genres ports.GenreRepository,
	books ports.BookRepository,
	log zerolog.Logger,
) *LibraryService {
	return &LibraryService{authors: authors, genres: genres, books: books, log: log}
}

// --- Authors ---

func (s *LibraryService) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.authors.List(ctx)
}

// CreateAuthor resolves through the same get-or-create path as nested
// occurrences, so an identical payload reuses the existing record.
func (s *LibraryService) CreateAuthor(ctx context.Context, req policy.Requester, in ports.AuthorInput) (*domain.Author, error) {
	if !policy.CanWrite(req, &domain.Author{}) {
		return nil, domain.ErrForbidden
	}
	author, created, err := s.authors.GetOrCreate(ctx, in.Name, in.Bio)
	if err != nil {
		return nil, err
	}
	metrics.ObserveGetOrCreate("author", created)
	return author, nil
}

func (s *LibraryService) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	return s.authors.FindByID(ctx, id)
}

func (s *LibraryService) UpdateAuthor(ctx context.Context, req policy.Requester, id string, patch ports.AuthorPatch) (*domain.Author, error) {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWrite(req, author) {
		return nil, domain.ErrForbidden
	}

	if patch.Name != nil {
		author.Name = *patch.Name
	}
	if patch.Bio != nil {
		author.Bio = *patch.Bio
	}

	if err := s.authors.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// --- Genres ---

func (s *LibraryService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.genres.List(ctx)
}

func (s *LibraryService) CreateGenre(ctx context.Context, req policy.Requester, in ports.GenreInput) (*domain.Genre, error) {
	if !policy.CanWrite(req, &domain.Genre{}) {
		return nil, domain.ErrForbidden
	}
	genre, created, err := s.genres.GetOrCreate(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	metrics.ObserveGetOrCreate("genre", created)
	return genre, nil
}

func (s *LibraryService) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.genres.FindByID(ctx, id)
}

func (s *LibraryService) UpdateGenre(ctx context.Context, req policy.Requester, id string, patch ports.GenrePatch) (*domain.Genre, error) {
	genre, err := s.genres.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWrite(req, genre) {
		return nil, domain.ErrForbidden
	}

	if patch.Name != nil {
		genre.Name = *patch.Name
	}

	if err := s.genres.Update(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

// --- Books ---

func (s *LibraryService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	records, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Book, 0, len(records))
	for _, rec := range records {
		book, err := s.expand(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, book)
	}
	return out, nil
}

func (s *LibraryService) CreateBook(ctx context.Context, req policy.Requester, in ports.BookInput) (*domain.Book, error) {
	if !policy.CanWrite(req, &domain.Book{}) {
		return nil, domain.ErrForbidden
	}

	authorIDs, err := s.resolveAuthors(ctx, in.Authors)
	if err != nil {
		return nil, err
	}
	genreIDs, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}

	rec, err := s.books.Create(ctx, &ports.BookRecord{
		Title:           in.Title,
		Description:     in.Description,
		PublicationDate: in.PublicationDate,
		AuthorIDs:       authorIDs,
		GenreIDs:        genreIDs,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("book_id", rec.ID).Str("title", rec.Title).Msg("book created")
	return s.expand(ctx, rec)
}

func (s *LibraryService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	rec, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, rec)
}

// UpdateBook applies a partial patch. A present authors or genres list fully
// replaces the association set (clear then re-resolve); an absent list leaves
// the stored set untouched.
func (s *LibraryService) UpdateBook(ctx context.Context, req policy.Requester, id string, patch ports.BookPatch) (*domain.Book, error) {
	rec, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWrite(req, &domain.Book{ID: rec.ID}) {
		return nil, domain.ErrForbidden
	}

	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.PublicationDate != nil {
		rec.PublicationDate = *patch.PublicationDate
	}
	if patch.Authors != nil {
		rec.AuthorIDs, err = s.resolveAuthors(ctx, *patch.Authors)
		if err != nil {
			return nil, err
		}
	}
	if patch.Genres != nil {
		rec.GenreIDs, err = s.resolveGenres(ctx, *patch.Genres)
		if err != nil {
			return nil, err
		}
	}

	if err := s.books.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.expand(ctx, rec)
}

// resolveAuthors maps nested author inputs to record ids via the store's
// atomic get-or-create, deduplicating repeats within a single payload.
func (s *LibraryService) resolveAuthors(ctx context.Context, inputs []ports.AuthorInput) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		author, created, err := s.authors.GetOrCreate(ctx, in.Name, in.Bio)
		if err != nil {
			return nil, err
		}
		metrics.ObserveGetOrCreate("author", created)
		if _, dup := seen[author.ID]; dup {
			continue
		}
		seen[author.ID] = struct{}{}
		ids = append(ids, author.ID)
	}
	return ids, nil
}

func (s *LibraryService) resolveGenres(ctx context.Context, inputs []ports.GenreInput) ([]string, error) {
	ids := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		genre, created, err := s.genres.GetOrCreate(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		metrics.ObserveGetOrCreate("genre", created)
		if _, dup := seen[genre.ID]; dup {
			continue
		}
		seen[genre.ID] = struct{}{}
		ids = append(ids, genre.ID)
	}
	return ids, nil
}

// expand inflates a stored record into the serialized Book shape with full
// nested author and genre objects.
func (s *LibraryService) expand(ctx context.Context, rec *ports.BookRecord) (*domain.Book, error) {
	authors, err := s.authors.FindByIDs(ctx, rec.AuthorIDs)
	if err != nil {
		return nil, err
	}
	genres, err := s.genres.FindByIDs(ctx, rec.GenreIDs)
	if err != nil {
		return nil, err
	}

	return &domain.Book{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		PublicationDate: rec.PublicationDate,
		Authors:         authors,
		Genres:          genres,
	}, nil
}
