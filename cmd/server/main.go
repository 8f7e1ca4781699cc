package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/light-bringer/price-resolver/internal/config"
	"github.com/light-bringer/price-resolver/internal/obs"
	"github.com/light-bringer/price-resolver/internal/services"
	grpcprice "github.com/light-bringer/price-resolver/internal/transport/grpc/price"
)

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := obs.InitLogger(cfg.LogLevel)

	logger.Info("starting price resolver",
		"store", cfg.StoreBackend,
		"spanner_db", cfg.SpannerDB,
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. gRPC server with health and reflection
	grpcServer, healthSrv := grpcprice.NewServer(serviceOpts.GRPCHandler, logger)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 4. HTTP server
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           serviceOpts.HTTPHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 5. Wait for a signal or a server failure
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down gracefully", "timeout", cfg.ShutdownTimeout.String())
	case runErr = <-errCh:
		logger.Error("server failed, shutting down", "error", runErr)
	}

	healthSrv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		logger.Warn("gRPC graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}

	return runErr
}
