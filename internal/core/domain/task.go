package domain

import "time"

// Task is a private todo item. Visibility is strictly per-owner: lookups are
// scoped by (id, owner) at the repository, so another user's task id resolves
// to not-found rather than forbidden.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Done        bool      `json:"done"`
	Owner       string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) OwnerID() string { return t.Owner }

// OwnerScoped marks tasks as owner-only for reads as well as writes.
func (t *Task) OwnerScoped() bool { return true }
