package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

type stubPostRepo struct {
	posts map[string]*domain.Post
	order []string
	seq   int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.seq++
	copy := clonePost(p)
	copy.ID = fmt.Sprintf("p%d", r.seq)
	r.posts[copy.ID] = clonePost(copy)
	r.order = append(r.order, copy.ID)
	return copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clonePost(r.posts[id]))
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubPostRepo) UpdateAuthorName(_ context.Context, authorID, username string) error {
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			p.AuthorName = username
		}
	}
	return nil
}

var (
	alice = policy.Requester{ID: "u1", Username: "alice", Authenticated: true}
	bob   = policy.Requester{ID: "u2", Username: "bob", Authenticated: true}
)

func TestPostService_Create_ForcesAuthor(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), zerolog.Nop())

	post, err := svc.Create(context.Background(), alice, ports.PostInput{Title: "hello", Content: "world"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.AuthorID != "u1" || post.AuthorName != "alice" {
		t.Fatalf("expected author forced to requester, got %+v", post)
	}
}

func TestPostService_Create_Anonymous(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), policy.Anonymous, ports.PostInput{Title: "x", Content: "y"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostService_Create_IdenticalPayloadsAreDistinct(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), zerolog.Nop())

	in := ports.PostInput{Title: "same", Content: "same"}
	first, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), alice, in)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct posts, both got id %s", first.ID)
	}
}

func TestPostService_Update_NonAuthorForbidden(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	post, err := svc.Create(context.Background(), alice, ports.PostInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "hijacked"
	if _, err := svc.Update(context.Background(), bob, post.ID, ports.PostPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), bob, post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestPostService_Update_PartialPatch(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), zerolog.Nop())

	post, err := svc.Create(context.Background(), alice, ports.PostInput{Title: "orig", Content: "body"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := "renamed"
	updated, err := svc.Update(context.Background(), alice, post.ID, ports.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "renamed" || updated.Content != "body" {
		t.Fatalf("expected only title to change, got %+v", updated)
	}
	if updated.AuthorName != "alice" {
		t.Fatalf("expected author preserved, got %q", updated.AuthorName)
	}
}

func TestPostService_Delete(t *testing.T) {
	svc := NewPostService(newStubPostRepo(), zerolog.Nop())

	post, err := svc.Create(context.Background(), alice, ports.PostInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), alice, post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}
