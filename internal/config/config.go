package config

import "time"

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool Trace Bench

type Configuration struct {
	LogFormat string `debugmap:"visible" default:"console" mapstructure:"log_format"`
	LogLevel  string `debugmap:"visible" default:"info" mapstructure:"log_level"`
	Server    Server `debugmap:"visible" mapstructure:"server"`
	Pools     []Pool `debugmap:"visible" mapstructure:"pools"`
	Trace     Trace  `debugmap:"visible" mapstructure:"trace"`
	Bench     Bench  `debugmap:"visible" mapstructure:"bench"`
}

type Server struct {
	ServerMode string `debugmap:"visible" default:"dev" mapstructure:"mode"`
	HTTPPort   int    `debugmap:"visible" default:"8000" mapstructure:"http_port"`
}

// Pool declares one work queue. With Array > 0 it declares Array queues of
// one worker each instead, named Name-0 .. Name-(Array-1).
type Pool struct {
	Name           string `debugmap:"visible" mapstructure:"name"`
	Workers        int    `debugmap:"visible" default:"2" mapstructure:"workers"`
	Array          int    `debugmap:"visible" mapstructure:"array"`
	ActiveTarget   int    `debugmap:"visible" mapstructure:"active_target"`
	DelayedStart   bool   `debugmap:"visible" mapstructure:"delayed_start"`
	CPUs           string `debugmap:"visible" mapstructure:"cpus"`
	PerWorkerQueue bool   `debugmap:"visible" mapstructure:"per_worker_queue"`
}

// Trace points at the DuckDB database receiving dispatch traces. Empty Path
// disables tracing.
type Trace struct {
	Path string `debugmap:"visible" mapstructure:"path"`
}

type Bench struct {
	Pool          string        `debugmap:"visible" default:"bench" mapstructure:"pool"`
	Items         int           `debugmap:"visible" default:"1000" mapstructure:"items"`
	Producers     int           `debugmap:"visible" default:"4" mapstructure:"producers"`
	MaxPriority   int           `debugmap:"visible" default:"10" mapstructure:"max_priority"`
	MaxDeadline   time.Duration `debugmap:"visible" default:"10ms" mapstructure:"max_deadline"`
	HandlerTime   time.Duration `debugmap:"visible" default:"200us" mapstructure:"handler_time"`
	ResubmitRatio float64       `debugmap:"visible" default:"0.1" mapstructure:"resubmit_ratio"`
	CancelRatio   float64       `debugmap:"visible" default:"0.1" mapstructure:"cancel_ratio"`
	AsyncRatio    float64       `debugmap:"visible" default:"0.2" mapstructure:"async_ratio"`
	Rate          float64       `debugmap:"visible" mapstructure:"rate"`
	Report        string        `debugmap:"visible" mapstructure:"report"`
}
