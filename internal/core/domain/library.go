package domain

import "time"

// Author is a catalog author, shared across books. Authors are resolved by
// exact field match on create: an incoming {name, bio} pair that matches an
// existing record reuses it instead of inserting a duplicate.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Genre is a catalog genre, shared across books. Same get-or-create
// resolution rules as Author.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Book aggregates a title with its resolved author and genre sets.
// Associations are expanded to full objects on output, never bare ids.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublicationDate time.Time `json:"publication_date"`
	Authors         []Author  `json:"authors"`
	Genres          []Genre   `json:"genres"`
}

// Library resources carry no ownership: any authenticated user may write.
// This is intentionally weaker than the Post/Task policy.

func (a *Author) OwnerID() string   { return "" }
func (a *Author) OwnerScoped() bool { return false }

func (g *Genre) OwnerID() string   { return "" }
func (g *Genre) OwnerScoped() bool { return false }

func (b *Book) OwnerID() string   { return "" }
func (b *Book) OwnerScoped() bool { return false }
