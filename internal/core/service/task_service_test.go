package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/policy"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

type stubTaskRepo struct {
	tasks map[string]*domain.Task
	seq   int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.seq++
	copy := cloneTask(t)
	copy.ID = fmt.Sprintf("t%d", r.seq)
	r.tasks[copy.ID] = cloneTask(copy)
	return copy, nil
}

func (r *stubTaskRepo) FindByIDAndOwner(_ context.Context, id, owner string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, owner string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.Owner == owner {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	existing, ok := r.tasks[t.ID]
	if !ok || existing.Owner != t.Owner {
		return domain.ErrTaskNotFound
	}
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, owner string) error {
	t, ok := r.tasks[id]
	if !ok || t.Owner != owner {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func TestTaskService_Create_ForcesOwner(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), zerolog.Nop())

	task, err := svc.Create(context.Background(), alice, ports.TaskInput{Title: "buy milk"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Owner != "u1" {
		t.Fatalf("expected owner forced to requester, got %q", task.Owner)
	}
	if task.Done {
		t.Fatalf("expected new task to default to not done")
	}
}

func TestTaskService_ForeignTaskIsNotFound(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), zerolog.Nop())

	task, err := svc.Create(context.Background(), alice, ports.TaskInput{Title: "secret"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another user probing the id must get not-found, never forbidden:
	// a 403 would confirm the task exists.
	if _, err := svc.Get(context.Background(), bob, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	done := true
	if _, err := svc.Update(context.Background(), bob, task.ID, ports.TaskPatch{Done: &done}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on update, got %v", err)
	}
	if err := svc.Delete(context.Background(), bob, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on delete, got %v", err)
	}

	if _, err := svc.Get(context.Background(), alice, task.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}

func TestTaskService_List_OnlyOwnTasksOldestUpdateFirst(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, zerolog.Nop())

	now := time.Now().UTC()
	seed := []*domain.Task{
		{Title: "third", Owner: "u1", UpdatedAt: now.Add(3 * time.Minute)},
		{Title: "first", Owner: "u1", UpdatedAt: now.Add(1 * time.Minute)},
		{Title: "second", Owner: "u1", UpdatedAt: now.Add(2 * time.Minute)},
		{Title: "not mine", Owner: "u2", UpdatedAt: now},
	}
	for _, task := range seed {
		if _, err := repo.Create(context.Background(), task); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	tasks, err := svc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if tasks[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, tasks[i].Title)
		}
	}
}

func TestTaskService_Update_PartialPatch(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), zerolog.Nop())

	task, err := svc.Create(context.Background(), alice, ports.TaskInput{Title: "chore", Description: "details"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := true
	updated, err := svc.Update(context.Background(), alice, task.ID, ports.TaskPatch{Done: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Done {
		t.Fatalf("expected done to flip")
	}
	if updated.Title != "chore" || updated.Description != "details" {
		t.Fatalf("expected unpatched fields preserved, got %+v", updated)
	}
}

func TestTaskService_RequiresAuthentication(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), zerolog.Nop())

	if _, err := svc.List(context.Background(), policy.Anonymous); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on list, got %v", err)
	}
	if _, err := svc.Create(context.Background(), policy.Anonymous, ports.TaskInput{Title: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on create, got %v", err)
	}
}
