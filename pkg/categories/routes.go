package categories

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all category routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{categoryService: NewService(db)}

	e.GET("/categories", h.list)
}
