package users

import (
	"github.com/bookstarhq/bookstar/pkg/ratings"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all user routes, including the per-user book
// rating routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		userService:   NewService(db),
		ratingService: ratings.NewService(db),
	}

	g := e.Group("/users")

	g.POST("/login", h.login)
	g.POST("/register", h.register)
	g.GET("/:userId", h.retrieve)
	g.PUT("/:userId", h.update)
	g.GET("/:userId/star/:bookId", h.retrieveStar)
	g.POST("/:userId/star/:bookId", h.rateBook)
}
