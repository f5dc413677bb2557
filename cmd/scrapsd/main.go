// Command scrapsd runs the scraps REST backend: PostgreSQL for durable
// storage, redis or an in-process cache in front of it, JWT bearer auth.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-scraps/config"
	"github.com/goliatone/go-scraps/internal/storage"
	"github.com/goliatone/go-scraps/pkg/di"
	"github.com/goliatone/go-scraps/rest"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()

	if err := storage.InitSchema(ctx, container.DB()); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	logger.Info("starting scrapsd",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("cache_backend", cfg.CacheBackend))

	server := rest.NewServer(cfg.HTTPAddr, container.Handler().Router(), logger.Named("http"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	return g.Wait()
}
