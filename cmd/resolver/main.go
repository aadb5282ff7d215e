package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Belphemur/StreamResolver/internal/cache"
	"github.com/Belphemur/StreamResolver/internal/catalog"
	"github.com/Belphemur/StreamResolver/internal/client"
	"github.com/Belphemur/StreamResolver/internal/config"
	"github.com/Belphemur/StreamResolver/internal/gateway"
	grpcserver "github.com/Belphemur/StreamResolver/internal/grpc"
	"github.com/Belphemur/StreamResolver/internal/metadata"
	"github.com/Belphemur/StreamResolver/internal/metrics"
	"github.com/Belphemur/StreamResolver/internal/reporting"
	"github.com/Belphemur/StreamResolver/internal/services"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("version", version).
		Str("metadata_base_url", cfg.Metadata.BaseURL).
		Str("catalog_base_url", cfg.Catalog.BaseURL).
		Int("match_concurrency", cfg.Catalog.MatchConcurrency).
		Str("cache_provider", cfg.Cache.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	if cfg.Catalog.BaseURL == "" {
		logger.Fatal().Msg("catalog.base_url is required")
	}

	if err := reporting.Init(cfg.Sentry.DSN, cfg.Sentry.Environment, version); err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
	}
	defer reporting.Flush(2 * time.Second)

	metadataCache, err := cache.FromConfig(cfg, "metadata")
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.Cache.Provider).Msg("Failed to create metadata cache")
	}
	if metadataCache != nil {
		defer func() {
			if err := metadataCache.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close metadata cache")
			}
		}()
	}

	// One client per provider so a tripped breaker only affects its own host
	catalogClient := catalog.NewClient(client.NewHTTPClient(cfg), cfg.Catalog.BaseURL)
	resolver := services.NewStreamResolver(
		metadata.NewResolverFromConfig(cfg, client.NewHTTPClient(cfg), metadataCache),
		catalog.NewMatcher(catalogClient, cfg.Catalog.MatchConcurrency),
		catalog.NewFetcher(catalogClient),
	)

	grpcServer := grpcserver.NewGRPCServer(resolver)

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port, prometheus.DefaultGatherer)
		serveHTTP("metrics", metricsServer)
		defer shutdownHTTP("metrics", metricsServer)
	}

	if cfg.Gateway.Enabled {
		gatewayServer := gateway.NewHTTPServer(cfg.Server.Address, cfg.Gateway.Port, resolver)
		serveHTTP("gateway", gatewayServer)
		defer shutdownHTTP("gateway", gatewayServer)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		logger.Fatal().Err(err).Str("address", address).Msg("Failed to create listener")
	}

	logger.Info().Str("address", address).Msg("Starting gRPC server")

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(listener); err != nil {
		logger.Error().Err(err).Msg("Failed to serve gRPC")
		return
	}

	logger.Info().Msg("Server stopped gracefully")
}

func serveHTTP(name string, srv *http.Server) {
	logger := config.GetLogger()
	go func() {
		logger.Info().Str("server", name).Str("address", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Str("server", name).Msg("Failed to serve HTTP")
		}
	}()
}

func shutdownHTTP(name string, srv *http.Server) {
	logger := config.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Str("server", name).Msg("Failed to shutdown HTTP server")
	}
}
