package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise/pennywise/internal/config"
	"github.com/pennywise/pennywise/internal/database"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server

	// set when the database was unreachable at startup
	pendingMigrations bool
}

// NewApplication constructs the full HTTP application, ready to Run(). An
// unreachable database is not fatal: the application starts, reports degrade
// to zero and mutations answer 503 until the database comes back.
func NewApplication(cfg config.Application) (*Application, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		if !database.IsUnavailable(err) {
			return nil, err
		}
		log.Warnf("database is not reachable, starting anyway: %v", err)
	}
	pendingMigrations := err != nil
	if err == nil {
		if err := database.Migrate(cfg.Database); err != nil {
			if !database.IsUnavailable(err) {
				db.Close()
				return nil, err
			}
			log.Warnf("migrations postponed, database is not reachable: %v", err)
			pendingMigrations = true
		}
	}

	r := mux.NewRouter()

	deps := BuildDependencies(context.Background(), db, cfg)

	SetupMiddleware(r, deps)

	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv, pendingMigrations: pendingMigrations}, nil
}

func (a *Application) Dependencies() *Dependencies {
	return a.deps
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
// Migrations postponed at startup are retried in the background meanwhile.
func (a *Application) Run(ctx context.Context) error {
	if a.pendingMigrations {
		go a.migrateWhenReachable(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *Application) migrateWhenReachable(ctx context.Context) {
	err := retryMigrations(ctx, a.cfg.Database, database.Migrate, migrationBackOff())
	switch {
	case err == nil:
		log.Info("Database reachable, migrations applied")
	case ctx.Err() != nil:
		log.Warn("Stopped waiting for the database, run `pennywise migrate` once it is up")
	default:
		log.Errorf("migrations failed: %v", err)
	}
}

func (a *Application) Close() {
	a.db.Close()
}
