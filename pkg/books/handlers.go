package books

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/ratings"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService         *Service
	ratingService       *ratings.Service
	recommendationCount int
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) listByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Books for this category")
	}

	books, err := h.bookService.ListBooksByCategory(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(books) == 0 {
		return errcodes.NotFound("Books for this category")
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) listByAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Books for this author")
	}

	books, err := h.bookService.ListBooksByAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(books) == 0 {
		return errcodes.NotFound("Books for this author")
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) recommendations(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.RecommendBooks(ctx, h.recommendationCount)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

// starAverage responds with the mean rating formatted to one decimal place as
// a bare text body, "0.0" when the book has no ratings.
func (h *handler) starAverage(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	avg, err := h.ratingService.AverageStar(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.String(http.StatusOK, fmt.Sprintf("%.1f", avg)))
}
