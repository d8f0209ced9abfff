package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sunflower/internal/plants/upstream"
	"sunflower/internal/platform/httpserver"
	"sunflower/internal/platform/logger"
)

// main serves the embedded plant catalogue for local development.
func main() {
	addr := os.Getenv("PLANTAPI_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	log, err := logger.New("info", "text")
	if err != nil {
		panic(err)
	}

	catalogue, err := upstream.New(log)
	if err != nil {
		log.Error("load catalogue", "error", err)
		os.Exit(1)
	}
	if latency, err := time.ParseDuration(os.Getenv("PLANTAPI_LATENCY")); err == nil {
		catalogue.SetLatency(latency)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	srv := httpserver.New(ctx, addr, catalogue.Router())

	go func() {
		log.Info("starting plant api", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
