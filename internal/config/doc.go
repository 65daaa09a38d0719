// Package config defines the configuration structure for the p4wq service.
//
// Configuration is organized into logical sections (Server, Pools, Trace, Bench)
// and uses code generation via optgen to create functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Pools          - Work queues declared at startup
//	├── Trace          - DuckDB dispatch trace
//	├── Bench          - Load generator settings
//	├── LogFormat      - Logging format ("console" or "json")
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌────────────────┬─────────┬──────────────────────────────────────────┐
//	│ Field          │ Default │ Description                              │
//	├────────────────┼─────────┼──────────────────────────────────────────┤
//	│ Name           │ ""      │ Queue name (required, unique)            │
//	│ Workers        │ 2       │ Workers serving the queue                │
//	│ Array          │ 0       │ >0: declare N one-worker queues instead  │
//	│ ActiveTarget   │ 0       │ Parallelism target, 0 means GOMAXPROCS   │
//	│ DelayedStart   │ false   │ Workers wait for an explicit start       │
//	│ CPUs           │ ""      │ Cpu list ("0-3,6") workers are pinned to │
//	│ PerWorkerQueue │ false   │ Active target forced to 1                │
//	└────────────────┴─────────┴──────────────────────────────────────────┘
//
// When no pool is declared, Load declares one pool named after Bench.Pool.
//
// # Trace Configuration
//
//	┌───────┬─────────┬────────────────────────────────────────────────────┐
//	│ Field │ Default │ Description                                        │
//	├───────┼─────────┼────────────────────────────────────────────────────┤
//	│ Path  │ ""      │ DuckDB file for dispatch events, "" disables trace │
//	└───────┴─────────┴────────────────────────────────────────────────────┘
//
// # Bench Configuration
//
//	┌───────────────┬─────────┬───────────────────────────────────────────┐
//	│ Field         │ Default │ Description                               │
//	├───────────────┼─────────┼───────────────────────────────────────────┤
//	│ Pool          │ "bench" │ Pool receiving the generated load         │
//	│ Items         │ 1000    │ Work items submitted                      │
//	│ Producers     │ 4       │ Concurrent submitting goroutines          │
//	│ MaxPriority   │ 10      │ Priorities drawn from [0, MaxPriority]    │
//	│ MaxDeadline   │ 10ms    │ Relative deadlines drawn from [0, max]    │
//	│ HandlerTime   │ 200us   │ Busy time spent in each handler           │
//	│ ResubmitRatio │ 0.1     │ Share of items resubmitting once          │
//	│ CancelRatio   │ 0.1     │ Share of items cancelled after submit     │
//	│ AsyncRatio    │ 0.2     │ Share of items waited on by polling       │
//	│ Rate          │ 0       │ Submissions per second, 0 is unlimited    │
//	│ Report        │ ""      │ XLSX report path, "" skips the report     │
//	└───────────────┴─────────┴───────────────────────────────────────────┘
//
// # Loading
//
//	cfg, err := config.Load("/etc/p4wq/config.yaml")
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// Scalar keys can be overridden from the environment with the P4WQ_ prefix,
// dots replaced by underscores (P4WQ_SERVER_HTTP_PORT=9000).
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool Trace Bench
//
// Generated helpers include:
//
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithPools(Pool), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// # Debug Logging
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
