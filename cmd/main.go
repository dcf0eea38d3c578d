package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "addy/internal/adapter/http"
	"addy/internal/adapter/postgres"
	"addy/internal/adapter/usecase"
	"addy/internal/config"
	"addy/internal/core/registry"
	"addy/internal/db"
	"addy/internal/metrics"
)

// main is the entry point of the addy registry service. It loads
// configuration, builds the in-memory registry, optionally wires audit export
// to PostgreSQL, then serves the HTTP API until a termination signal arrives.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	instanceID := uuid.New()
	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(
		slog.String("env", cfg.Env),
		slog.String("instance_id", instanceID.String()),
	)
	if err = run(cfg, logger, instanceID); err != nil {
		logger.Error("registry service failed", slog.Any("error", err))
		return
	}
	exitCode = 0
}

func run(cfg config.Config, logger *slog.Logger, instanceID uuid.UUID) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(promReg, "addy")
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	var (
		opts         = []registry.Option{registry.WithAuditCapacity(cfg.Registry.AuditCapacity)}
		exporter     *usecase.AuditExporter
		exporterDone = make(chan struct{})
	)
	exportCtx, stopExport := context.WithCancel(context.Background())
	defer stopExport()

	if cfg.Psql.Enabled {
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		defer pool.Close()

		repo, err := postgres.NewAuditRepository(pool, cfg.Psql.AuditTable)
		if err != nil {
			return err
		}
		exporter = usecase.NewAuditExporter(repo, instanceID, usecase.ExporterConfig{
			QueueSize:     cfg.Export.QueueSize,
			BatchSize:     cfg.Export.BatchSize,
			FlushInterval: cfg.Export.FlushInterval,
		}, logger, m)
		opts = append(opts, registry.WithAuditHook(exporter.Enqueue))

		go func() {
			defer close(exporterDone)
			exporter.Run(exportCtx)
		}()
		logger.Info("audit export enabled", slog.String("table", cfg.Psql.AuditTable))
	} else {
		close(exporterDone)
	}

	reg, err := registry.New(
		cfg.Registry.OracleAddress,
		cfg.Registry.ControllerAddress,
		cfg.Registry.TreasuryAddress,
		cfg.Registry.MaxKeywords,
		cfg.Registry.BidFloorNanos,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	svc, err := usecase.NewRegistryUseCase(usecase.Config{
		Registry:   reg,
		Logger:     logger,
		Metrics:    m,
		Exporter:   exporter,
		InstanceID: instanceID,
	})
	if err != nil {
		return err
	}

	if n := cfg.Registry.SeedCampaigns; n > 0 {
		if err = usecase.Seed(ctx, svc, n, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
			logger.Warn("seeding stopped early", slog.Any("error", err))
		} else {
			logger.Info("seeded demo campaigns", slog.Int("count", n))
		}
	}

	handler := httpadapter.NewHandler(svc, logger, httpadapter.Options{
		Metrics:        promhttp.HandlerFor(promReg, promhttp.HandlerOpts{Registry: promReg}),
		AllowedOrigins: cfg.HTTP.CORSOrigins,
	})
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}

	stopExport()
	<-exporterDone
	if exporter != nil {
		logger.Info("audit export stopped", slog.Uint64("dropped", exporter.Dropped()))
	}
	return nil
}
