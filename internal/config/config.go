// Package config defines exporter configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and MCSTATS_* env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// MetricsPath is the scrape endpoint path.
	MetricsPath string `koanf:"metrics_path"`

	// MetricsNamespace prefixes the exporter's own metrics.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels attached to the exporter's own
	// metrics, e.g. to tell several servers apart.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// SelfMetrics turns the exporter's own metrics on or off. Game
	// families are always served.
	SelfMetrics bool `koanf:"self_metrics"`

	// ServerRoot is the game server installation directory holding
	// server.properties, usercache.json and the world directory.
	ServerRoot string `koanf:"server_root"`

	// WorldName overrides the world directory; empty means read level-name
	// from server.properties and fall back to "world".
	WorldName string `koanf:"world_name"`

	// WorkerCount bounds concurrent player normalizations.
	WorkerCount int `koanf:"worker_count"`

	// CollectTimeoutMS bounds one collection cycle.
	CollectTimeoutMS int `koanf:"collect_timeout_ms"`

	// RCON settings. RCON is enabled when both host and password are set.
	RconHost      string  `koanf:"rcon_host"`
	RconPort      int     `koanf:"rcon_port"`
	RconPassword  string  `koanf:"rcon_password"`
	RconTimeoutMS int     `koanf:"rcon_timeout_ms"`
	RconRate      float64 `koanf:"rcon_rate_per_sec"`
	RconBurst     int     `koanf:"rcon_burst"`

	// ForgeServer enables the Forge entity and mod listings.
	ForgeServer bool `koanf:"forge_server"`

	// OnlineTTLSeconds caches volatile RCON answers (online roster, entities).
	OnlineTTLSeconds int `koanf:"online_ttl_s"`

	// ModsTTLSeconds caches near-static RCON answers (mods, world meta).
	ModsTTLSeconds int `koanf:"mods_ttl_s"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8000",
		MetricsPath:      "/metrics",
		MetricsNamespace: "mcstats",
		SelfMetrics:      true,
		ServerRoot:       "/minecraft",
		WorldName:        "",
		WorkerCount:      runtime.NumCPU(),
		CollectTimeoutMS: 10_000,
		RconPort:         25575,
		RconTimeoutMS:    3_000,
		RconRate:         10,
		RconBurst:        4,
		OnlineTTLSeconds: 60,
		ModsTTLSeconds:   600,
	}
}

// RconEnabled reports whether the live query channel is configured.
func (c *Config) RconEnabled() bool {
	return c.RconHost != "" && c.RconPassword != ""
}

// RconAddr returns host:port for the RCON dialer.
func (c *Config) RconAddr() string {
	return fmt.Sprintf("%s:%d", c.RconHost, c.RconPort)
}

// CollectTimeout returns the per-cycle deadline.
func (c *Config) CollectTimeout() time.Duration {
	return time.Duration(c.CollectTimeoutMS) * time.Millisecond
}

// RconTimeout returns the dial and read deadline for RCON.
func (c *Config) RconTimeout() time.Duration {
	return time.Duration(c.RconTimeoutMS) * time.Millisecond
}

// OnlineTTL returns the cache lifetime for volatile RCON answers.
func (c *Config) OnlineTTL() time.Duration {
	return time.Duration(c.OnlineTTLSeconds) * time.Second
}

// ModsTTL returns the cache lifetime for near-static RCON answers.
func (c *Config) ModsTTL() time.Duration {
	return time.Duration(c.ModsTTLSeconds) * time.Second
}

// reservedPaths are served by the exporter itself and cannot host metrics.
var reservedPaths = map[string]struct{}{
	"/healthz": {},
	"/stats":   {},
}

// Validate checks invariants Load cannot express through defaults.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ServerRoot == "":
		return fmt.Errorf("%w: server_root must not be empty", ErrInvalidConfig)
	case c.MetricsPath == "" || c.MetricsPath[0] != '/':
		return fmt.Errorf("%w: metrics_path must start with /", ErrInvalidConfig)
	case c.MetricsNamespace == "":
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	case isReserved(c.MetricsPath):
		return fmt.Errorf("%w: metrics_path %s is already served", ErrInvalidConfig, c.MetricsPath)
	case c.CollectTimeoutMS <= 0:
		return fmt.Errorf("%w: collect_timeout_ms must be positive", ErrInvalidConfig)
	case c.RconEnabled() && (c.RconPort <= 0 || c.RconPort > 65535):
		return fmt.Errorf("%w: rcon_port out of range", ErrInvalidConfig)
	}
	return nil
}

func isReserved(path string) bool {
	_, ok := reservedPaths[path]
	return ok
}
