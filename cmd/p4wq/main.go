package main

import (
	"fmt"
	"os"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/p4wq/internal/config"
)

type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "p4wq",
		Short:         "Parallel priority/deadline work queues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(config.EnvPrefix),
		),
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the configuration")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console, json), overrides the configuration")

	cmd.AddCommand(newRunCmd(flags), newBenchCmd(flags))
	return cmd
}

// loadConfig loads and validates the configuration, then installs the global
// logger and sets GOMAXPROCS from the cgroup quota.
func loadConfig(flags *rootFlags, opts ...config.ConfigurationOption) (*config.Configuration, error) {
	if flags.logLevel != "" {
		opts = append(opts, config.WithLogLevel(flags.logLevel))
	}
	if flags.logFormat != "" {
		opts = append(opts, config.WithLogFormat(flags.logFormat))
	}

	cfg, err := config.Load(flags.configPath, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(zap.S().Named("maxprocs").Infof)); err != nil {
		zap.S().Warnw("failed to set GOMAXPROCS", "error", err)
	}

	zap.S().Debugw("configuration loaded", "config", cfg.DebugMap())
	return cfg, nil
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}
