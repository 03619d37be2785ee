package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// PostService implements blog post use cases. Reads are public; writes are
// restricted to the post's author.
type PostService struct {
	repo ports.PostRepository
	log  zerolog.Logger
}

func NewPostService(repo ports.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.repo.List(ctx)
}

// Create persists a new post with the requester as author. Any client-sent
// author value has already been discarded by the transport schema.
func (s *PostService) Create(ctx context.Context, req policy.Requester, in ports.PostInput) (*domain.Post, error) {
	if !req.Authenticated {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   req.ID,
		AuthorName: req.Username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", created.ID).Str("author", req.Username).Msg("post created")
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial patch after the write-policy check. Unspecified
// fields keep their stored values.
func (s *PostService) Update(ctx context.Context, req policy.Requester, id string, patch ports.PostPatch) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWrite(req, post) {
		return nil, domain.ErrForbidden
	}

	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, req policy.Requester, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanWrite(req, post) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("post_id", id).Str("requester", req.Username).Msg("post deleted")
	return nil
}
