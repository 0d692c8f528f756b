package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/msgboard/internal/auth"
	"github.com/mmynk/msgboard/internal/board"
	"github.com/mmynk/msgboard/internal/config"
	"github.com/mmynk/msgboard/internal/metrics"
	"github.com/mmynk/msgboard/internal/middleware"
	"github.com/mmynk/msgboard/internal/service"
	"github.com/mmynk/msgboard/internal/storage"
	"github.com/mmynk/msgboard/internal/storage/memory"
	"github.com/mmynk/msgboard/internal/storage/postgres"
	"github.com/mmynk/msgboard/internal/storage/sqlite"
	"github.com/mmynk/msgboard/pkg/boardapi"
	"github.com/mmynk/msgboard/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("BOARD_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	logStoredCollections(ctx, kv)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	writer := storage.NewWriter(kv,
		storage.WithMetrics(m),
		storage.WithWriteTimeout(cfg.Storage.WriteTimeout),
	)
	svc := service.NewBoardService(ctx, writer, board.WithMetrics(m))

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if cfg.AuthEnabled() {
		jwtManager, err := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		if err != nil {
			slog.Error("Failed to initialize auth", "error", err)
			os.Exit(1)
		}
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager))
		slog.Info("Bearer token auth enabled")
	}

	mux := http.NewServeMux()
	boardPath, boardHandler := boardapi.NewBoardServiceHandler(svc, connect.WithInterceptors(interceptors...))
	mux.Handle(boardPath, boardHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := writer.Close(shutdownCtx); err != nil {
		slog.Error("Failed to flush pending writes", "error", err)
		os.Exit(1)
	}
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DSN)
	case config.DriverMemory:
		slog.Warn("Using in-memory storage, data will not survive restart")
		return memory.New(), nil
	default:
		return sqlite.New(cfg.Path)
	}
}

// logStoredCollections logs how many collections the store already holds.
func logStoredCollections(ctx context.Context, kv storage.KV) {
	lister, ok := kv.(storage.Lister)
	if !ok {
		return
	}
	keys, err := lister.Keys(ctx)
	if err != nil {
		slog.Warn("Failed to list stored collections", "error", err)
		return
	}
	counts := storage.CountKinds(keys)
	slog.Info("Stored collections", "groups", counts[storage.KindGroups], "message_lists", counts[storage.KindMessages])
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
