package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/p4wq/internal/handlers"
	"github.com/kubev2v/p4wq/internal/metrics"
	"github.com/kubev2v/p4wq/internal/server"
	"github.com/kubev2v/p4wq/internal/services"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

const shutdownTimeout = 10 * time.Second

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Boot the configured pools and serve their state over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer func() { _ = zap.L().Sync() }()

			m := metrics.New()
			pools, err := services.NewPoolService(cfg.Pools,
				p4wq.WithLogger(zap.L()),
				p4wq.WithObserver(m.Observe),
			)
			if err != nil {
				return err
			}
			defer pools.Close()

			if err := m.RegisterPools(pools); err != nil {
				return err
			}
			if err := pools.Boot(); err != nil {
				return err
			}
			zap.S().Infow("pools booted", "pools", pools.Names())

			srv, err := server.NewServer(cfg, handlers.New(pools).RegisterRoutes, server.WithMetrics(m.Registry()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Start(ctx)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			zap.S().Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
}
