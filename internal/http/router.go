package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/services"
)

// RouterConfig carries every dependency the router needs.
type RouterConfig struct {
	Database *database.Database
	Store    AppStore
	Version  string

	// Books opens books that are not in the current list. Optional.
	Books services.BookReader

	// Refresh is reported by /health. Nil reports the refresh as disabled.
	Refresh RefreshStatus

	// SettleTimeout bounds how long an intent waits for its effects.
	// Zero means DefaultSettleTimeout.
	SettleTimeout time.Duration
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version).WithRefresh(cfg.Refresh)
	state := NewStateController(cfg.Store, cfg.SettleTimeout)
	books := NewBooksController(cfg.Store, cfg.Books, cfg.SettleTimeout)
	path := NewPathController(cfg.Store, cfg.SettleTimeout)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Application shell
	api.GET("/state", state.Get)
	api.POST("/tabs/:tab", state.SelectTab)

	// Book list and delete confirmation
	api.POST("/books/appear", books.Appear)
	api.PUT("/books/query", books.ChangeQuery)
	api.POST("/books/delete", books.RequestDelete)
	api.POST("/books/delete/confirm", books.ConfirmDelete)
	api.POST("/books/delete/cancel", books.CancelDelete)
	api.POST("/books/:id/open", books.Open)

	// Creation sheet
	api.POST("/books/new", books.PresentNew)
	api.PUT("/books/new", books.EditNew)
	api.POST("/books/new/create", books.CreateNew)
	api.POST("/books/new/cancel", books.CancelNew)

	// Edit screens
	api.PUT("/path/:index", path.Edit)
	api.POST("/path/:index/update", path.Update)
	api.POST("/path/:index/dismiss", path.Dismiss)

	return router
}
