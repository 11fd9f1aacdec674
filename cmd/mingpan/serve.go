package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/mingpan/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr      string
	serveAITimeout time.Duration
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addBuilderFlags(cmd)
	addLegacyFlags(cmd)
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&serveAITimeout, "ai-timeout", 0, "per-request AI provider timeout; 0 uses the provider default")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyDurationConfig(cmd, "ai-timeout", &serveAITimeout, fileCfg.AI.Timeout)

	builder, err := newBuilder(cmd, fileCfg, logger)
	if err != nil {
		return err
	}
	handler := httpapi.NewHandler(httpapi.Deps{
		Builder:   builder,
		Legacy:    newLegacyRunner(cmd, fileCfg, logger),
		Logger:    logger,
		AITimeout: serveAITimeout,
	})
	router := httpapi.NewRouter(logger)
	router.RegisterRoutes(handler)
	srv := httpapi.NewServer(serveAddr, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return <-errCh
}
