package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all author routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{authorService: NewService(db)}

	g := e.Group("/authors")

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
}
