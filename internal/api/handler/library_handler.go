package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scribehub/scribehub-api/internal/api/metrics"
	"github.com/scribehub/scribehub-api/internal/core/ports"
)

// LibraryHandler handles HTTP requests for the catalog: authors, genres,
// and books. Reads are public; writes require authentication but carry no
// ownership check.
type LibraryHandler struct {
	service ports.LibraryService
}

func NewLibraryHandler(service ports.LibraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// --- Authors ---

// ListAuthors handles GET /authors.
//
// @Summary      List authors
// @Tags         library
// @Produce      json
// @Success      200  {array}  authorResponse
// @Router       /authors [get]
func (h *LibraryHandler) ListAuthors(c echo.Context) error {
	authors, err := h.service.ListAuthors(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]authorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorResponse(a))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateAuthor handles POST /authors.
//
// @Summary      Create an author
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      authorRequest  true  "Author fields"
// @Success      201   {object}  authorResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /authors [post]
func (h *LibraryHandler) CreateAuthor(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body authorRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	author, err := h.service.CreateAuthor(c.Request().Context(), req, ports.AuthorInput{
		Name: body.Name,
		Bio:  body.Bio,
	})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("author").Inc()
	return c.JSON(http.StatusCreated, toAuthorResponse(author))
}

// GetAuthor handles GET /authors/:id.
//
// @Summary      Get an author
// @Tags         library
// @Produce      json
// @Param        id   path      string  true  "Author id"
// @Success      200  {object}  authorResponse
// @Failure      404  {object}  errorResponse
// @Router       /authors/{id} [get]
func (h *LibraryHandler) GetAuthor(c echo.Context) error {
	author, err := h.service.GetAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthorResponse(author))
}

// UpdateAuthor handles PUT/PATCH /authors/:id.
//
// @Summary      Update an author
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Author id"
// @Param        body  body      updateAuthorRequest  true  "Fields to change"
// @Success      200   {object}  authorResponse
// @Failure      404   {object}  errorResponse
// @Router       /authors/{id} [put]
func (h *LibraryHandler) UpdateAuthor(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body updateAuthorRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	author, err := h.service.UpdateAuthor(c.Request().Context(), req, c.Param("id"), ports.AuthorPatch{
		Name: body.Name,
		Bio:  body.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthorResponse(author))
}

// --- Genres ---

// ListGenres handles GET /genres.
//
// @Summary      List genres
// @Tags         library
// @Produce      json
// @Success      200  {array}  genreResponse
// @Router       /genres [get]
func (h *LibraryHandler) ListGenres(c echo.Context) error {
	genres, err := h.service.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]genreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, toGenreResponse(g))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateGenre handles POST /genres.
//
// @Summary      Create a genre
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      genreRequest  true  "Genre fields"
// @Success      201   {object}  genreResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /genres [post]
func (h *LibraryHandler) CreateGenre(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body genreRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	genre, err := h.service.CreateGenre(c.Request().Context(), req, ports.GenreInput{Name: body.Name})
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("genre").Inc()
	return c.JSON(http.StatusCreated, toGenreResponse(genre))
}

// GetGenre handles GET /genres/:id.
//
// @Summary      Get a genre
// @Tags         library
// @Produce      json
// @Param        id   path      string  true  "Genre id"
// @Success      200  {object}  genreResponse
// @Failure      404  {object}  errorResponse
// @Router       /genres/{id} [get]
func (h *LibraryHandler) GetGenre(c echo.Context) error {
	genre, err := h.service.GetGenre(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGenreResponse(genre))
}

// UpdateGenre handles PUT/PATCH /genres/:id.
//
// @Summary      Update a genre
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Genre id"
// @Param        body  body      updateGenreRequest  true  "Fields to change"
// @Success      200   {object}  genreResponse
// @Failure      404   {object}  errorResponse
// @Router       /genres/{id} [put]
func (h *LibraryHandler) UpdateGenre(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body updateGenreRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	genre, err := h.service.UpdateGenre(c.Request().Context(), req, c.Param("id"), ports.GenrePatch{Name: body.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGenreResponse(genre))
}

// --- Books ---

// ListBooks handles GET /books.
//
// @Summary      List books
// @Tags         library
// @Produce      json
// @Success      200  {array}  bookResponse
// @Router       /books [get]
func (h *LibraryHandler) ListBooks(c echo.Context) error {
	books, err := h.service.ListBooks(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateBook handles POST /books. Nested authors and genres are resolved
// get-or-create: an exact match reuses the existing record.
//
// @Summary      Create a book
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book with nested authors and genres"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /books [post]
func (h *LibraryHandler) CreateBook(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body createBookRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	book, err := h.service.CreateBook(c.Request().Context(), req, toBookInput(body))
	if err != nil {
		return err
	}

	metrics.ResourcesCreatedTotal.WithLabelValues("book").Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// GetBook handles GET /books/:id.
//
// @Summary      Get a book
// @Tags         library
// @Produce      json
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  bookResponse
// @Failure      404  {object}  errorResponse
// @Router       /books/{id} [get]
func (h *LibraryHandler) GetBook(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// UpdateBook handles PUT/PATCH /books/:id.
//
// @Summary      Update a book
// @Tags         library
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "Fields to change"
// @Success      200   {object}  bookResponse
// @Failure      400   {object}  map[string][]string
// @Failure      404   {object}  errorResponse
// @Router       /books/{id} [put]
func (h *LibraryHandler) UpdateBook(c echo.Context) error {
	req, err := mustRequester(c)
	if err != nil {
		return err
	}

	var body updateBookRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	book, err := h.service.UpdateBook(c.Request().Context(), req, c.Param("id"), toBookPatch(body))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}
