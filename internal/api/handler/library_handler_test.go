package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

type stubLibraryService struct {
	listAuthorsFn  func(ctx context.Context) ([]*domain.Author, error)
	createAuthorFn func(ctx context.Context, req policy.Requester, in ports.AuthorInput) (*domain.Author, error)
	getAuthorFn    func(ctx context.Context, id string) (*domain.Author, error)
	updateAuthorFn func(ctx context.Context, req policy.Requester, id string, patch ports.AuthorPatch) (*domain.Author, error)

	listGenresFn  func(ctx context.Context) ([]*domain.Genre, error)
	createGenreFn func(ctx context.Context, req policy.Requester, in ports.GenreInput) (*domain.Genre, error)
	getGenreFn    func(ctx context.Context, id string) (*domain.Genre, error)
	updateGenreFn func(ctx context.Context, req policy.Requester, id string, patch ports.GenrePatch) (*domain.Genre, error)

	listBooksFn  func(ctx context.Context) ([]*domain.Book, error)
	createBookFn func(ctx context.Context, req policy.Requester, in ports.BookInput) (*domain.Book, error)
	getBookFn    func(ctx context.Context, id string) (*domain.Book, error)
	updateBookFn func(ctx context.Context, req policy.Requester, id string, patch ports.BookPatch) (*domain.Book, error)
}

func (s *stubLibraryService) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.listAuthorsFn(ctx)
}

func (s *stubLibraryService) CreateAuthor(ctx context.Context, req policy.Requester, in ports.AuthorInput) (*domain.Author, error) {
	return s.createAuthorFn(ctx, req, in)
}

func (s *stubLibraryService) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	return s.getAuthorFn(ctx, id)
}

func (s *stubLibraryService) UpdateAuthor(ctx context.Context, req policy.Requester, id string, patch ports.AuthorPatch) (*domain.Author, error) {
	return s.updateAuthorFn(ctx, req, id, patch)
}

func (s *stubLibraryService) ListGenres(ctx context.Context) ([]*domain.Genre, error) {
	return s.listGenresFn(ctx)
}

func (s *stubLibraryService) CreateGenre(ctx context.Context, req policy.Requester, in ports.GenreInput) (*domain.Genre, error) {
	return s.createGenreFn(ctx, req, in)
}

func (s *stubLibraryService) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.getGenreFn(ctx, id)
}

func (s *stubLibraryService) UpdateGenre(ctx context.Context, req policy.Requester, id string, patch ports.GenrePatch) (*domain.Genre, error) {
	return s.updateGenreFn(ctx, req, id, patch)
}

func (s *stubLibraryService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.listBooksFn(ctx)
}

func (s *stubLibraryService) CreateBook(ctx context.Context, req policy.Requester, in ports.BookInput) (*domain.Book, error) {
	return s.createBookFn(ctx, req, in)
}

func (s *stubLibraryService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.getBookFn(ctx, id)
}

func (s *stubLibraryService) UpdateBook(ctx context.Context, req policy.Requester, id string, patch ports.BookPatch) (*domain.Book, error) {
	return s.updateBookFn(ctx, req, id, patch)
}

func TestLibraryHandler_CreateBook_NestedPayload(t *testing.T) {
	stub := &stubLibraryService{
		createBookFn: func(ctx context.Context, req policy.Requester, in ports.BookInput) (*domain.Book, error) {
			if len(in.Authors) != 1 || in.Authors[0].Name != "Le Guin" || in.Authors[0].Bio != "sci-fi" {
				t.Fatalf("unexpected nested authors: %+v", in.Authors)
			}
			if len(in.Genres) != 2 {
				t.Fatalf("unexpected nested genres: %+v", in.Genres)
			}
			return &domain.Book{
				ID:      "b1",
				Title:   in.Title,
				Authors: []domain.Author{{ID: "a1", Name: "Le Guin", Bio: "sci-fi"}},
				Genres:  []domain.Genre{{ID: "g1", Name: "Science Fiction"}, {ID: "g2", Name: "Utopian"}},
			}, nil
		},
	}
	handler := NewLibraryHandler(stub)

	body := `{
		"title": "The Dispossessed",
		"description": "an ambiguous utopia",
		"publication_date": "1974-05-01T00:00:00Z",
		"authors": [{"name": "Le Guin", "bio": "sci-fi"}],
		"genres": [{"name": "Science Fiction"}, {"name": "Utopian"}]
	}`
	c, rec := newTestContext(t, http.MethodPost, "/books", body)
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	if err := handler.CreateBook(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	authors, ok := resp["authors"].([]any)
	if !ok || len(authors) != 1 {
		t.Fatalf("expected expanded author objects, got %+v", resp["authors"])
	}
	if first := authors[0].(map[string]any); first["name"] != "Le Guin" {
		t.Fatalf("unexpected author payload: %+v", first)
	}
}

func TestLibraryHandler_CreateBook_MissingAssociations(t *testing.T) {
	stub := &stubLibraryService{
		createBookFn: func(ctx context.Context, req policy.Requester, in ports.BookInput) (*domain.Book, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewLibraryHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/books", `{"title":"No Authors"}`)
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	err := handler.CreateBook(c)
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if got := fieldErrs["authors"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
}

func TestLibraryHandler_CreateAuthor_Success(t *testing.T) {
	stub := &stubLibraryService{
		createAuthorFn: func(ctx context.Context, req policy.Requester, in ports.AuthorInput) (*domain.Author, error) {
			return &domain.Author{ID: "a1", Name: in.Name, Bio: in.Bio}, nil
		},
	}
	handler := NewLibraryHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/authors", `{"name":"Le Guin","bio":"sci-fi"}`)
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	if err := handler.CreateAuthor(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLibraryHandler_GetGenre_NotFoundPassesThrough(t *testing.T) {
	stub := &stubLibraryService{
		getGenreFn: func(ctx context.Context, id string) (*domain.Genre, error) {
			return nil, domain.ErrGenreNotFound
		},
	}
	handler := NewLibraryHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/genres/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.GetGenre(c); !errors.Is(err, domain.ErrGenreNotFound) {
		t.Fatalf("expected ErrGenreNotFound, got %v", err)
	}
}
