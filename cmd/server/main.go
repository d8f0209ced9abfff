package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sunflower/internal/plants/events"
	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/network"
	"sunflower/internal/plants/ports"
	"sunflower/internal/plants/refresh"
	"sunflower/internal/plants/sortorder"
	"sunflower/internal/plants/viewmodel"
	"sunflower/internal/platform/config"
	"sunflower/internal/platform/httpserver"
	"sunflower/internal/platform/logger"
	platformmetrics "sunflower/internal/platform/metrics"
	"sunflower/internal/platform/redis"
	httptransport "sunflower/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Plant logic lives in internal/plants.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("sunflower stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := platformmetrics.NewRegistry()
	m := metrics.New(reg)
	checks := map[string]httptransport.HealthCheck{}

	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer closeStore()
	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		checks["store"] = pinger.Ping
	}

	api, err := network.NewClient(network.Config{
		BaseURL:    cfg.PlantAPI.BaseURL,
		Timeout:    cfg.PlantAPI.HTTPTimeout,
		Attempts:   cfg.PlantAPI.Attempts,
		RetryDelay: cfg.PlantAPI.RetryDelay,

		BreakerThreshold: cfg.PlantAPI.BreakerThreshold,
	}, log)
	if err != nil {
		return fmt.Errorf("plant api client: %w", err)
	}

	var orderSource ports.SortOrderSource = api
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = rdb.Health
		orderSource = sortorder.NewRedisSource(rdb.Client, api,
			sortorder.WithTTL(cfg.Redis.SortOrderTTL),
			sortorder.WithRedisLogger(log),
		)
		log.Info("sort order shared through redis", "ttl", cfg.Redis.SortOrderTTL)
	}
	orders := sortorder.NewCache(orderSource, sortorder.WithLogger(log), sortorder.WithMetrics(m))

	refreshOpts := []refresh.Option{
		refresh.WithTimeout(cfg.Refresh.Timeout),
		refresh.WithLogger(log),
		refresh.WithMetrics(m),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return fmt.Errorf("kafka publisher: %w", err)
		}
		defer pub.Close()
		if err := pub.EnsureTopic(ctx, 1, 1); err != nil {
			log.Warn("refresh event topic not ensured", "topic", cfg.Kafka.Topic, "error", err)
		}
		refreshOpts = append(refreshOpts, refresh.WithPublisher(pub))
	}
	refresher := refresh.New(api, store, refreshOpts...)

	vm := viewmodel.New(store, refresher, orders, log, m)
	defer vm.Close()

	router := httptransport.NewRouter(httptransport.NewHandler(vm, log), reg, checks, log)
	g, ctx := errgroup.WithContext(ctx)
	srv := httpserver.New(ctx, cfg.Server.Addr, router)

	g.Go(func() error {
		return vm.Start(ctx)
	})
	g.Go(func() error {
		log.Info("starting sunflower", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("sunflower stopped")
		return nil
	})
	return g.Wait()
}
