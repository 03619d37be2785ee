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

type stubPostService struct {
	listFn   func(ctx context.Context) ([]*domain.Post, error)
	createFn func(ctx context.Context, req policy.Requester, in ports.PostInput) (*domain.Post, error)
	getFn    func(ctx context.Context, id string) (*domain.Post, error)
	updateFn func(ctx context.Context, req policy.Requester, id string, patch ports.PostPatch) (*domain.Post, error)
	deleteFn func(ctx context.Context, req policy.Requester, id string) error
}

func (s *stubPostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) Create(ctx context.Context, req policy.Requester, in ports.PostInput) (*domain.Post, error) {
	return s.createFn(ctx, req, in)
}

func (s *stubPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) Update(ctx context.Context, req policy.Requester, id string, patch ports.PostPatch) (*domain.Post, error) {
	return s.updateFn(ctx, req, id, patch)
}

func (s *stubPostService) Delete(ctx context.Context, req policy.Requester, id string) error {
	return s.deleteFn(ctx, req, id)
}

func TestPostHandler_List_Anonymous(t *testing.T) {
	stub := &stubPostService{
		listFn: func(ctx context.Context) ([]*domain.Post, error) {
			return []*domain.Post{
				{ID: "p1", Title: "hello", AuthorName: "alice"},
			}, nil
		},
	}
	handler := NewPostHandler(stub)

	// No identity on the context: public reads work anonymously.
	c, rec := newTestContext(t, http.MethodGet, "/posts", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["author"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPostHandler_Create_Success(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, req policy.Requester, in ports.PostInput) (*domain.Post, error) {
			if req.ID != "u1" {
				t.Fatalf("unexpected requester: %+v", req)
			}
			return &domain.Post{ID: "p1", Title: in.Title, Content: in.Content, AuthorName: req.Username}, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/posts", `{"title":"hello","content":"world"}`)
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestPostHandler_Create_MissingFields(t *testing.T) {
	stub := &stubPostService{
		createFn: func(ctx context.Context, req policy.Requester, in ports.PostInput) (*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPostHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/posts", `{"title":"only a title"}`)
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	err := handler.Create(c)
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if got := fieldErrs["content"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
}

func TestPostHandler_Update_ForbiddenPassesThrough(t *testing.T) {
	stub := &stubPostService{
		updateFn: func(ctx context.Context, req policy.Requester, id string, patch ports.PostPatch) (*domain.Post, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewPostHandler(stub)

	c, _ := newTestContext(t, http.MethodPatch, "/posts/p1", `{"title":"hijack"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u2")
	c.Set("username", "bob")

	if err := handler.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostHandler_Delete_NoContent(t *testing.T) {
	stub := &stubPostService{
		deleteFn: func(ctx context.Context, req policy.Requester, id string) error {
			if id != "p1" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set("user_id", "u1")
	c.Set("username", "alice")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}
