package domain

import "time"

// Post is a blog entry. AuthorID is the owning user; AuthorName is a
// denormalized copy of the owner's username kept for serialization.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"-"`
	AuthorName string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnerID identifies the user allowed to mutate the post.
func (p *Post) OwnerID() string { return p.AuthorID }

// OwnerScoped reports whether reads are restricted to the owner.
// Posts are publicly readable.
func (p *Post) OwnerScoped() bool { return false }
