package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/okovalenko/spendtrack/internal/config"
	"github.com/okovalenko/spendtrack/internal/middleware"
	"github.com/okovalenko/spendtrack/internal/server"
	"github.com/okovalenko/spendtrack/internal/service"
	"github.com/okovalenko/spendtrack/internal/storage/sqlite"
	"github.com/okovalenko/spendtrack/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	api := server.New(service.NewExpenseService(store))

	mux := http.NewServeMux()
	mux.Handle("/", api.Routes())
	mux.Handle("GET /metrics", promhttp.Handler())

	// Logging and CORS wrap metrics so the metrics middleware sees the
	// final status codes.
	handler := middleware.Logging(middleware.CORS(middleware.Metrics(mux)))

	// h2c allows HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: h2cHandler,
	}

	go func() {
		slog.Info("Server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
