package categories

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	categoryService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.categoryService.ListCategories(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, categories))
}
