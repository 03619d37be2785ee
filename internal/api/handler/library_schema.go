package handler

import "time"

type authorRequest struct {
	Name string `json:"name" validate:"required"`
	Bio  string `json:"bio"  validate:"required"`
}

type updateAuthorRequest struct {
	Name *string `json:"name"`
	Bio  *string `json:"bio"`
}

type authorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type genreRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateGenreRequest struct {
	Name *string `json:"name"`
}

type genreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// createBookRequest embeds nested author/genre representations; each nested
// item is resolved get-or-create against existing records.
type createBookRequest struct {
	Title           string          `json:"title"            validate:"required"`
	Description     string          `json:"description"      validate:"required"`
	PublicationDate time.Time       `json:"publication_date" validate:"required"`
	Authors         []authorRequest `json:"authors"          validate:"required,dive"`
	Genres          []genreRequest  `json:"genres"           validate:"required,dive"`
}

// updateBookRequest is a partial update. A present authors or genres list
// fully replaces the book's association set; an absent one leaves it alone.
type updateBookRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	PublicationDate *time.Time       `json:"publication_date"`
	Authors         *[]authorRequest `json:"authors" validate:"omitempty,dive"`
	Genres          *[]genreRequest  `json:"genres"  validate:"omitempty,dive"`
}

type bookResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	PublicationDate time.Time        `json:"publication_date"`
	Authors         []authorResponse `json:"authors"`
	Genres          []genreResponse  `json:"genres"`
}
