package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/features/booklist"
	"github.com/mrlokans/bookshelf/internal/features/container"
	"github.com/mrlokans/bookshelf/internal/features/home"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/store"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything a running server owns.
type App struct {
	DB        *database.Database
	Store     *home.Store
	Scheduler *scheduler.RefreshScheduler
	Router    *gin.Engine

	cancel context.CancelFunc
}

// NewApp opens the database, creates the application store and wires the
// router. The initial list fetch is started before NewApp returns.
func NewApp(cfg *config.Config, version string) (*App, error) {
	sort, err := entities.ParseSortOrder(cfg.Library.DefaultSort)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_SORT: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var opts []store.Option
	if cfg.Global.LogStateChanges {
		opts = append(opts, store.WithChangeLogging("home"))
	}
	app := &App{DB: db, Store: home.NewStore(db.Books(), sort, opts...)}
	app.Store.Send(refreshAction())

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if cfg.Refresh.Enabled {
		app.Scheduler = scheduler.NewRefreshScheduler(cfg.Refresh.Schedule, func() {
			app.Store.Send(refreshAction())
		})
		if err := app.Scheduler.Start(ctx); err != nil {
			app.Close(context.Background())
			return nil, fmt.Errorf("failed to start refresh scheduler: %w", err)
		}
	} else {
		log.Printf("Refresh scheduler disabled. Set 'REFRESH_ENABLED=true' to reload the list periodically.")
	}

	routerCfg := http_controllers.RouterConfig{
		Database: db,
		Store:    app.Store,
		Version:  version,
		Books:    db.Books(),
	}
	if app.Scheduler != nil {
		routerCfg.Refresh = app.Scheduler
	}
	app.Router = http_controllers.NewRouter(routerCfg)

	return app, nil
}

func refreshAction() home.Action {
	return home.Books{Action: container.List{Action: booklist.Appear{}}}
}

// Close stops the scheduler, lets running effects finish until ctx is done
// and releases the database.
func (app *App) Close(ctx context.Context) {
	if app.cancel != nil {
		app.cancel()
	}
	if app.Scheduler != nil {
		app.Scheduler.Stop()
	}
	if err := app.Store.Wait(ctx); err != nil {
		log.Printf("Effects still running at shutdown: %v", err)
	}
	app.Store.Close()
	if err := app.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// SIGKILL cannot be caught, so only SIGINT and SIGTERM trigger a graceful stop.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version, commit string) {
	log.Printf("Starting Bookshelf v%s (commit %s)", version, commit)
	log.Printf("Using database at %s", cfg.Database.Path)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("%v", err)
	}

	Serve(app.Router, cfg, app.Close)
}
