package books

import (
	"github.com/bookstarhq/bookstar/pkg/config"
	"github.com/bookstarhq/bookstar/pkg/ratings"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all book routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	h := &handler{
		bookService:         NewService(db),
		ratingService:       ratings.NewService(db),
		recommendationCount: cfg.RecommendationCount,
	}

	g := e.Group("/books")

	g.GET("", h.list)
	g.GET("/recommendations", h.recommendations)
	g.GET("/category/:id", h.listByCategory)
	g.GET("/author/:id", h.listByAuthor)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/star", h.starAverage)
}
