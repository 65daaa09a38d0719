package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/p4wq/internal/config"
	"github.com/kubev2v/p4wq/internal/models"
	"github.com/kubev2v/p4wq/internal/report"
	"github.com/kubev2v/p4wq/internal/services"
	"github.com/kubev2v/p4wq/internal/store"
	"github.com/kubev2v/p4wq/internal/store/migrations"
	"github.com/kubev2v/p4wq/internal/util"
	"github.com/kubev2v/p4wq/pkg/p4wq"
)

type benchFlags struct {
	items     int
	producers int
	report    string
	trace     string
}

func newBenchCmd(flags *rootFlags) *cobra.Command {
	bf := &benchFlags{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a synthetic load through a pool and check its dispatch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			defer func() { _ = zap.L().Sync() }()
			applyBenchFlags(cmd, bf, cfg)
			if err := cfg.Bench.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pools, err := services.NewPoolService(cfg.Pools, p4wq.WithLogger(zap.L()))
			if err != nil {
				return err
			}
			defer pools.Close()
			if err := pools.Boot(); err != nil {
				return err
			}
			// a DelayedStart bench pool would never drain
			if err := pools.Start(cfg.Bench.Pool); err != nil {
				return err
			}

			var st *store.Store
			if cfg.Trace.Path != "" {
				db, err := openTrace(ctx, cfg.Trace.Path)
				if err != nil {
					return err
				}
				st = store.NewStore(db)
				defer st.Close()
			}

			f := services.NewBenchService(pools, st, cfg.Bench).Start(ctx)
			defer f.Stop()

			var res models.Result[models.BenchRun]
			select {
			case res = <-f.C():
			case <-ctx.Done():
				f.Stop()
				res = <-f.C()
			}
			if res.Err != nil {
				return res.Err
			}

			printSummary(res.Data.Result)

			if cfg.Bench.Report != "" {
				if err := report.Write(cfg.Bench.Report, res.Data); err != nil {
					return err
				}
				zap.S().Infow("report written", "path", cfg.Bench.Report)
			}
			if res.Data.Result.Inversions > 0 {
				return fmt.Errorf("%d priority inversions detected", res.Data.Result.Inversions)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&bf.items, "items", 0, "number of work items, overrides the configuration")
	cmd.Flags().IntVar(&bf.producers, "producers", 0, "number of submitting goroutines, overrides the configuration")
	cmd.Flags().StringVar(&bf.report, "report", "", "write an XLSX report to this path")
	cmd.Flags().StringVar(&bf.trace, "trace", "", "persist the dispatch trace to this DuckDB file")

	return cmd
}

func applyBenchFlags(cmd *cobra.Command, bf *benchFlags, cfg *config.Configuration) {
	if cmd.Flags().Changed("items") {
		cfg.Bench.Items = bf.items
	}
	if cmd.Flags().Changed("producers") {
		cfg.Bench.Producers = bf.producers
	}
	if bf.report != "" {
		cfg.Bench.Report = bf.report
	}
	if bf.trace != "" {
		cfg.Trace.Path = bf.trace
	}
}

func openTrace(ctx context.Context, path string) (*sql.DB, error) {
	db, err := store.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate trace database: %w", err)
	}
	return db, nil
}

func printSummary(r models.BenchResult) {
	title := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)

	title.Printf("bench %s on pool %s (%d workers)\n", r.RunID, r.Pool, r.Workers)
	fmt.Printf("  items       %d\n", r.Items)
	fmt.Printf("  completed   %d\n", r.Completed)
	fmt.Printf("  cancelled   %d\n", r.Cancelled)
	fmt.Printf("  resubmitted %d\n", r.Resubmitted)
	fmt.Printf("  preempted   %d\n", r.Preempted)
	fmt.Printf("  exhausted   %d\n", r.Exhausted)
	fmt.Printf("  duration    %s (%.2f items/s)\n", r.Duration, util.Round(r.Throughput()))

	if r.Inversions == 0 {
		ok.Println("  inversions  0")
	} else {
		bad.Printf("  inversions  %d\n", r.Inversions)
	}

	for _, l := range r.Latency {
		fmt.Printf("  priority %3d: %6d dispatched, mean %s, max %s\n", l.Priority, l.Dispatched, l.Mean, l.Max)
	}
}
