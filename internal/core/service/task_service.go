package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// TaskService implements the todo use cases. Every lookup is scoped by
// (id, requester) at the repository, so a task owned by another user is
// reported as not found — the policy's existence-leak guard.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

// List returns the requester's tasks ordered by updated_at ascending.
func (s *TaskService) List(ctx context.Context, req policy.Requester) ([]*domain.Task, error) {
	if !req.Authenticated {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByOwner(ctx, req.ID)
}

// Create persists a new task owned by the requester. Any owner value in the
// payload has already been discarded by the transport schema.
func (s *TaskService) Create(ctx context.Context, req policy.Requester, in ports.TaskInput) (*domain.Task, error) {
	if !req.Authenticated {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Done:        in.Done,
		Owner:       req.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", created.ID).Str("owner", req.Username).Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, req policy.Requester, id string) (*domain.Task, error) {
	if !req.Authenticated {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByIDAndOwner(ctx, id, req.ID)
}

func (s *TaskService) Update(ctx context.Context, req policy.Requester, id string, patch ports.TaskPatch) (*domain.Task, error) {
	if !req.Authenticated {
		return nil, domain.ErrForbidden
	}

	task, err := s.repo.FindByIDAndOwner(ctx, id, req.ID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Done != nil {
		task.Done = *patch.Done
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, req policy.Requester, id string) error {
	if !req.Authenticated {
		return domain.ErrForbidden
	}

	// Scoped lookup first: a foreign task id must surface as not-found.
	if _, err := s.repo.FindByIDAndOwner(ctx, id, req.ID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, req.ID); err != nil {
		return err
	}

	s.log.Info().Str("task_id", id).Str("owner", req.Username).Msg("task deleted")
	return nil
}
