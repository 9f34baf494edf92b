package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/api"
	"github.com/fleetdepot/depot/internal/cache"
	"github.com/fleetdepot/depot/internal/config"
	"github.com/fleetdepot/depot/internal/db"
	"github.com/fleetdepot/depot/internal/etl"
	"github.com/fleetdepot/depot/internal/events"
	"github.com/fleetdepot/depot/internal/logger"
	"github.com/fleetdepot/depot/internal/service"
)

const shutdownTimeout = 15 * time.Second

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(parent context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	dbURL := databaseURL(conf)
	if conf.Postgres.AutoMigrate {
		if err = db.MigrateUp(dbURL); err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	postgresDB, err := openDatabase(conf)
	if err != nil {
		return err
	}

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var stockCache service.StockCache = cache.Noop{}
	if conf.Redis.Addr != "" {
		client, err := cache.Connect(ctx, conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis -> %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		stockCache = cache.NewRedisStockCache(client, conf.Redis.TTL)
	}

	hub := events.NewHub()
	go hub.Run(ctx)

	publisher := events.Multi{hub}
	if conf.Kafka.Enabled {
		producer, err := events.NewKafkaProducer(conf.Kafka.Brokers)
		if err != nil {
			return fmt.Errorf("failed to initialize kafka -> %w", err)
		}
		kafkaPub := events.NewKafkaPublisher(producer, conf.Kafka.StockTopic)
		closers = append(closers, func() { _ = kafkaPub.Close() })
		publisher = append(publisher, kafkaPub)
	}

	deps := api.Deps{
		DB:        postgresDB,
		Publisher: publisher,
		Cache:     stockCache,
		Hub:       hub,
	}

	if conf.ETL.Enabled {
		job, cleanup, err := buildETLJob(ctx, conf, dbURL, publisher)
		if err != nil {
			return err
		}
		closers = append(closers, cleanup)
		deps.ETL = job

		scheduler, err := etl.NewScheduler(job, conf.ETL.Interval)
		if err != nil {
			return fmt.Errorf("failed to schedule etl -> %w", err)
		}
		scheduler.Start()
		closers = append(closers, func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			scheduler.Stop(stopCtx)
		})
	}

	s := api.NewServer(conf, deps)

	err = config.Watch(configPath, func(next *config.AppConfig) {
		if err := logger.SetLevel(next.API.LogLevel); err != nil {
			zap.L().Warn("ignoring log level from reloaded config", zap.Error(err))
		}
		s.CORS.Set(next.API.AllowedCORSDomains)
		zap.L().Info("config reloaded")
	}, func(err error) {
		zap.L().Error("config reload failed", zap.Error(err))
	})
	if err != nil {
		return fmt.Errorf("failed to watch config -> %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + conf.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}

// buildETLJob connects the upstream feed and the bulk loader pool.
func buildETLJob(ctx context.Context, conf *config.AppConfig, dbURL string, pub etl.Publisher) (*etl.Job, func(), error) {
	source, err := etl.OpenSource(ctx, conf.ETL.SourceDSN, conf.ETL.SourceTable)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to etl source -> %w", err)
	}

	pool, err := db.OpenPool(ctx, dbURL)
	if err != nil {
		_ = source.Close()
		return nil, nil, fmt.Errorf("failed to open etl pool -> %w", err)
	}

	cleanup := func() {
		pool.Close()
		_ = source.Close()
	}

	return etl.NewJob(source, etl.NewStore(pool), pub, conf.ETL.BatchSize), cleanup, nil
}
