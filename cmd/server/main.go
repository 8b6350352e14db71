package main

import (
	"GalleryBackend/config"
	"GalleryBackend/internal/importer"
	"GalleryBackend/internal/repository"
	"GalleryBackend/internal/repository/postgres"
	"GalleryBackend/internal/repository/sqlite"
	"GalleryBackend/internal/router"
	"GalleryBackend/internal/server"
	"GalleryBackend/internal/service"
	"GalleryBackend/internal/storage"
	"GalleryBackend/internal/web"
	"GalleryBackend/pkg/logger"
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// app holds everything built from the configuration.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *sql.DB
	images  repository.ImageRepository
	fillers repository.FillerWordRepository
	store   storage.Store
}

func main() {
	cliApp := &cli.App{
		Name:  "gallery",
		Usage: "Image gallery with tag search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to the .env file",
				Value: ".env",
			},
		},
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serveCommand,
			},
			{
				Name:   "sync",
				Usage:  "Reconcile the image table with the stored files",
				Action: syncCommand,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*app, error) {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := config.NewConnection(cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	a := &app{cfg: cfg, log: log, db: db}

	ctx := c.Context
	switch cfg.DBDriver {
	case config.DriverPostgres:
		err = postgres.Migrate(ctx, db)
		a.images = postgres.NewImageRepository(db)
		a.fillers = postgres.NewFillerWordRepository(db)
	default:
		err = sqlite.Migrate(ctx, db)
		a.images = sqlite.NewImageRepository(db)
		a.fillers = sqlite.NewFillerWordRepository(db)
	}
	if err != nil {
		a.close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	switch cfg.StorageBackend {
	case config.StorageS3:
		a.store, err = storage.NewS3Store(ctx, cfg.S3, log)
	default:
		a.store, err = storage.NewLocalStore(cfg.UploadFolder)
	}
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	log.Info("Configuration loaded",
		zap.String("db_driver", cfg.DBDriver),
		zap.String("storage", cfg.StorageBackend))
	return a, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("Error closing the database", zap.Error(err))
	}
	a.log.Sync()
}

func (a *app) sync(ctx context.Context) error {
	_, err := importer.New(a.images, a.store, a.cfg.ThumbSize, a.log).Sync(ctx)
	return err
}

func serveCommand(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.SyncOnStart {
		if err := a.sync(c.Context); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	images := service.NewImageService(a.images, a.fillers, a.store, service.ImageOptions{
		MaxUploadSize: a.cfg.MaxUploadSize,
		ThumbSize:     a.cfg.ThumbSize,
	}, a.log)
	fillers := service.NewFillerWordService(a.fillers, a.log)

	r := router.NewRouter(router.Deps{
		Images:        images,
		FillerWords:   fillers,
		Store:         a.store,
		Renderer:      renderer,
		MaxUploadSize: a.cfg.MaxUploadSize,
		Log:           a.log,
	})

	srv := server.New(a.cfg.Port, r, a.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.log.Info("Received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info("Server exited")
	return nil
}

func syncCommand(c *cli.Context) error {
	a, err := setup(c)
	if err != nil {
		return err
	}
	defer a.close()
	return a.sync(c.Context)
}
