package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/p4wq/internal/util"
	srvErrors "github.com/kubev2v/p4wq/pkg/errors"
)

const EnvPrefix = "P4WQ"

// Load reads the configuration file at path (any format viper understands)
// on top of the defaults. Environment variables prefixed with P4WQ_ override
// scalar keys, e.g. P4WQ_SERVER_HTTP_PORT. An empty path loads defaults only.
func Load(path string, opts ...ConfigurationOption) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
		}
	}

	cfg := NewConfigurationWithOptionsAndDefaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	ConfigurationWithOptions(cfg, opts...)

	if err := cfg.ApplyPoolDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnv registers the scalar keys so AutomaticEnv sees them during
// Unmarshal even when no file mentions them.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"log_format", "log_level",
		"server.mode", "server.http_port",
		"trace.path",
		"bench.pool", "bench.items", "bench.producers", "bench.max_priority",
		"bench.max_deadline", "bench.handler_time", "bench.resubmit_ratio",
		"bench.cancel_ratio", "bench.async_ratio", "bench.rate", "bench.report",
	} {
		_ = v.BindEnv(key)
	}
}

// ApplyPoolDefaults fills unset pool fields. When no pool is declared the
// bench pool is declared with default settings so the service always has
// something to serve.
func (c *Configuration) ApplyPoolDefaults() error {
	if len(c.Pools) == 0 {
		c.Pools = []Pool{{Name: c.Bench.Pool}}
	}
	for i := range c.Pools {
		if err := defaults.Set(&c.Pools[i]); err != nil {
			return fmt.Errorf("failed to set defaults for pool %q: %w", c.Pools[i].Name, err)
		}
	}
	return nil
}

func (c *Configuration) Validate() error {
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return srvErrors.NewInvalidConfigurationError("log_format must be console or json, got %q", c.LogFormat)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return srvErrors.NewInvalidConfigurationError("log_level: %v", err)
	}
	if c.Server.ServerMode != "dev" && c.Server.ServerMode != "prod" {
		return srvErrors.NewInvalidConfigurationError("server mode must be dev or prod, got %q", c.Server.ServerMode)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return srvErrors.NewInvalidConfigurationError("http_port %d out of range", c.Server.HTTPPort)
	}

	names := make(map[string]struct{}, len(c.Pools))
	for _, p := range c.Pools {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := names[p.Name]; ok {
			return srvErrors.NewInvalidConfigurationError("pool %q declared twice", p.Name)
		}
		names[p.Name] = struct{}{}
	}

	return c.Bench.Validate()
}

func (p Pool) Validate() error {
	if p.Name == "" {
		return srvErrors.NewInvalidConfigurationError("pool name is required")
	}
	if p.Array < 0 {
		return srvErrors.NewInvalidConfigurationError("pool %q: array must not be negative", p.Name)
	}
	if p.Array == 0 && p.Workers <= 0 {
		return srvErrors.NewInvalidConfigurationError("pool %q: workers must be positive", p.Name)
	}
	if p.ActiveTarget < 0 {
		return srvErrors.NewInvalidConfigurationError("pool %q: active_target must not be negative", p.Name)
	}
	if _, err := util.ParseCPUList(p.CPUs); err != nil {
		return srvErrors.NewInvalidConfigurationError("pool %q: %v", p.Name, err)
	}
	return nil
}

func (b Bench) Validate() error {
	if b.Items <= 0 {
		return srvErrors.NewInvalidConfigurationError("bench items must be positive")
	}
	if b.Producers <= 0 {
		return srvErrors.NewInvalidConfigurationError("bench producers must be positive")
	}
	if b.MaxPriority < 0 || b.MaxDeadline < 0 || b.HandlerTime < 0 || b.Rate < 0 {
		return srvErrors.NewInvalidConfigurationError("bench priority, deadline, handler time and rate must not be negative")
	}
	for name, r := range map[string]float64{
		"resubmit_ratio": b.ResubmitRatio,
		"cancel_ratio":   b.CancelRatio,
		"async_ratio":    b.AsyncRatio,
	} {
		if r < 0 || r > 1 {
			return srvErrors.NewInvalidConfigurationError("bench %s must be within [0, 1], got %v", name, r)
		}
	}
	return nil
}
