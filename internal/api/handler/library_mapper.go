package handler

import (
	"github.com/scribehub/scribehub-api/internal/core/domain"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// --- Request → Service input ---

func toBookInput(req createBookRequest) ports.BookInput {
	return ports.BookInput{
		Title:           req.Title,
		Description:     req.Description,
		PublicationDate: req.PublicationDate,
		Authors:         toAuthorInputs(req.Authors),
		Genres:          toGenreInputs(req.Genres),
	}
}

func toBookPatch(req updateBookRequest) ports.BookPatch {
	patch := ports.BookPatch{
		Title:           req.Title,
		Description:     req.Description,
		PublicationDate: req.PublicationDate,
	}
	if req.Authors != nil {
		authors := toAuthorInputs(*req.Authors)
		patch.Authors = &authors
	}
	if req.Genres != nil {
		genres := toGenreInputs(*req.Genres)
		patch.Genres = &genres
	}
	return patch
}

func toAuthorInputs(reqs []authorRequest) []ports.AuthorInput {
	out := make([]ports.AuthorInput, len(reqs))
	for i, r := range reqs {
		out[i] = ports.AuthorInput{Name: r.Name, Bio: r.Bio}
	}
	return out
}

func toGenreInputs(reqs []genreRequest) []ports.GenreInput {
	out := make([]ports.GenreInput, len(reqs))
	for i, r := range reqs {
		out[i] = ports.GenreInput{Name: r.Name}
	}
	return out
}

// --- Domain → HTTP response ---

func toAuthorResponse(a *domain.Author) authorResponse {
	return authorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

func toGenreResponse(g *domain.Genre) genreResponse {
	return genreResponse{ID: g.ID, Name: g.Name}
}

func toBookResponse(b *domain.Book) bookResponse {
	authors := make([]authorResponse, len(b.Authors))
	for i := range b.Authors {
		authors[i] = toAuthorResponse(&b.Authors[i])
	}
	genres := make([]genreResponse, len(b.Genres))
	for i := range b.Genres {
		genres[i] = toGenreResponse(&b.Genres[i])
	}

	return bookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		PublicationDate: b.PublicationDate.UTC(),
		Authors:         authors,
		Genres:          genres,
	}
}
