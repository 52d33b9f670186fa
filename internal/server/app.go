// Package server initializes and runs the DogBox server: it opens the
// registry database, applies migrations, and serves the gRPC API and the
// Prometheus metrics endpoint until it is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/logging"
	"github.com/dmitrijs2005/dogbox/internal/server/config"
	"github.com/dmitrijs2005/dogbox/internal/server/metrics"
	"github.com/dmitrijs2005/dogbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dogbox/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/dogbox/internal/server/grpc"
)

// seams for tests
var (
	openDB         = repomanager.OpenPostgres
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	fileService *services.FileService
	metrics     *metrics.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	fs := services.NewFileService(db, rm, services.NewBlobService(c))

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		fileService: fs,
		metrics:     metrics.New(),
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives. The first
// server error stops the others and is returned.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.fileService, app.metrics, app.config.SecretKey)
		return s.Run(ctx)
	})

	if app.config.MetricsAddr != "" {
		g.Go(func() error {
			return app.runMetricsServer(ctx)
		})
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) runMetricsServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
