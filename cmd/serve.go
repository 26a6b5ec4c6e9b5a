package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bakerbass/guitarchops/api"
	"github.com/bakerbass/guitarchops/api/types"
	"github.com/bakerbass/guitarchops/internal/analysis/chunker"
	"github.com/bakerbass/guitarchops/internal/analysis/estimators"
	"github.com/bakerbass/guitarchops/internal/analysis/peaks"
	"github.com/bakerbass/guitarchops/internal/database"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/internal/services/analyzer"
	"github.com/bakerbass/guitarchops/internal/services/contentcache"
	"github.com/bakerbass/guitarchops/internal/services/exports"
	"github.com/bakerbass/guitarchops/internal/services/library"
	"github.com/bakerbass/guitarchops/internal/services/tasks"
	"github.com/bakerbass/guitarchops/internal/services/workers"
	"github.com/bakerbass/guitarchops/pkg/config"
	"github.com/bakerbass/guitarchops/pkg/ffmpeg"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the GuitarChops API server with the configured settings.

Example:
  guitarchops serve
  guitarchops serve --port 9090
  guitarchops serve --host 0.0.0.0 --port 8000`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	deps, pool, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := pool.Start(ctx); err != nil {
		return err
	}
	defer pool.Stop()

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address, cfg)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	logger.Info().Str("address", address).Msg("starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info().Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// buildDependencies wires the service graph from configuration.
func buildDependencies(cfg *config.Config, db *database.DB) (*types.Dependencies, *workers.Pool, error) {
	if cfg.Processing.FFmpegPath != "" {
		ffmpeg.SetBinary(cfg.Processing.FFmpegPath)
	}

	cache := contentcache.NewService(contentcache.NewRepository(db.DB))
	trackService := library.NewService(library.NewRepository(db.DB), cache, cfg.Storage.UploadDir)

	registry := estimators.NewRegistry(estimators.Options{
		OnsetBackend: cfg.Analysis.OnsetBackend,
		AubioPath:    cfg.Analysis.AubioPath,
		TempDir:      cfg.Storage.TempDir,
	})
	analyzerService := analyzer.NewService(cache, registry, analysisConfig(cfg))

	backend, err := exportBackend(cfg)
	if err != nil {
		return nil, nil, err
	}
	exportService := exports.NewService(exports.NewRepository(db.DB), backend, cfg.Storage.TempDir)

	store := tasks.NewStore()
	pool := workers.NewPool(cfg.Processing.Workers, cfg.Processing.MaxQueueSize)
	pool.SetJobTimeout(cfg.Processing.TaskTimeout)
	pool.RegisterProcessor(workers.NewUploadProcessor(trackService, analyzerService, store))
	pool.RegisterProcessor(workers.NewAnalysisProcessor(trackService, analyzerService, store))

	return &types.Dependencies{
		DB:            db,
		TrackService:  trackService,
		Analyzer:      analyzerService,
		ExportService: exportService,
		TaskStore:     store,
		WorkerPool:    pool,
		UploadDir:     cfg.Storage.UploadDir,
	}, pool, nil
}

func analysisConfig(cfg *config.Config) analyzer.Config {
	resolutions := cfg.Analysis.PeakResolutions
	if len(resolutions) == 0 {
		resolutions = peaks.DefaultResolutions
	}
	return analyzer.Config{
		Resolutions: resolutions,
		Chunk: chunker.Config{
			ChunkDuration: cfg.Analysis.ChunkDuration,
			OverlapRatio:  cfg.Analysis.ChunkOverlap,
		},
		MinSegmentDuration: cfg.Analysis.MinSegmentDuration,
		TempoTolerance:     cfg.Analysis.TempoTolerance,
		MinOnsetGap:        cfg.Analysis.MinOnsetGap,
		SilenceMinLenMS:    cfg.Analysis.SilenceMinLenMS,
		SilenceThresholdDB: cfg.Analysis.SilenceThresholdDB,
		SilenceSeekStepMS:  cfg.Analysis.SilenceSeekStepMS,
	}
}

func exportBackend(cfg *config.Config) (exports.Backend, error) {
	switch cfg.Exports.Backend {
	case "s3":
		return exports.NewS3Backend(context.Background(), exports.S3Config{
			Bucket:          cfg.Exports.S3.Bucket,
			Region:          cfg.Exports.S3.Region,
			Endpoint:        cfg.Exports.S3.Endpoint,
			AccessKeyID:     cfg.Exports.S3.AccessKeyID,
			SecretAccessKey: cfg.Exports.S3.SecretAccessKey,
		})
	default:
		return exports.NewFilesystemBackend(cfg.Storage.ExportDir)
	}
}
