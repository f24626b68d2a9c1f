package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: EVROUTE_ROUTING__QUEUE_SIZE=512
// sets routing.queue_size.
const EnvPrefix = "EVROUTE_"

// Config is the top-level application config.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Rules      RulesConfig      `koanf:"rules"`
	Routing    RoutingConfig    `koanf:"routing"`
	Enablement EnablementConfig `koanf:"enablement"`
	Audit      AuditConfig      `koanf:"audit"`
	Sources    SourcesConfig    `koanf:"sources"`
	Plugins    PortConfig       `koanf:"plugins"`
	Extensions PortConfig       `koanf:"extensions"`
	Broadcast  BroadcastConfig  `koanf:"broadcast"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // memory | postgres
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type RulesConfig struct {
	// SeedDir holds YAML rule files created on startup when missing. Empty disables seeding.
	SeedDir string `koanf:"seed_dir"`
}

type RoutingConfig struct {
	QueueSize       int           `koanf:"queue_size"`
	MaxInFlight     int           `koanf:"max_in_flight"`
	DispatchTimeout time.Duration `koanf:"dispatch_timeout"`
	DrainTimeout    time.Duration `koanf:"drain_timeout"`
}

type EnablementConfig struct {
	// DefaultGateway is the gateway flag of a scope nobody has set yet.
	DefaultGateway bool `koanf:"default_gateway"`
}

type AuditConfig struct {
	BufferSize    int           `koanf:"buffer_size"`
	BatchSize     int           `koanf:"batch_size"`
	FlushInterval time.Duration `koanf:"flush_interval"`
	Retention     time.Duration `koanf:"retention"` // 0 keeps everything
	PruneInterval time.Duration `koanf:"prune_interval"`
}

type SourcesConfig struct {
	Kafka KafkaConfig `koanf:"kafka"`
}

type KafkaConfig struct {
	Enabled  bool     `koanf:"enabled"`
	Brokers  []string `koanf:"brokers"`
	Topic    string   `koanf:"topic"`
	GroupID  string   `koanf:"group_id"`
	MinBytes int      `koanf:"min_bytes"`
	MaxBytes int      `koanf:"max_bytes"`
}

// PortConfig addresses an HTTP host for plugin tools or extension operations.
// An empty BaseURL leaves the port unconfigured and its dispatches fail.
type PortConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type BroadcastConfig struct {
	SendBuffer   int           `koanf:"send_buffer"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Database.Type {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	default:
		return fmt.Errorf("unsupported database.type %q (must be memory or postgres)", c.Database.Type)
	}

	if c.Routing.QueueSize <= 0 {
		return fmt.Errorf("routing.queue_size must be > 0")
	}
	if c.Routing.MaxInFlight < 0 {
		return fmt.Errorf("routing.max_in_flight must be >= 0 (0 means unbounded)")
	}
	if c.Routing.DispatchTimeout <= 0 {
		return fmt.Errorf("routing.dispatch_timeout must be > 0")
	}
	if c.Routing.DrainTimeout <= 0 {
		return fmt.Errorf("routing.drain_timeout must be > 0")
	}

	if c.Audit.BufferSize <= 0 {
		return fmt.Errorf("audit.buffer_size must be > 0")
	}
	if c.Audit.BatchSize <= 0 {
		return fmt.Errorf("audit.batch_size must be > 0")
	}
	if c.Audit.FlushInterval <= 0 {
		return fmt.Errorf("audit.flush_interval must be > 0")
	}
	if c.Audit.Retention < 0 {
		return fmt.Errorf("audit.retention must be >= 0")
	}
	if c.Audit.Retention > 0 && c.Audit.PruneInterval <= 0 {
		return fmt.Errorf("audit.prune_interval must be > 0 when retention is set")
	}

	if k := c.Sources.Kafka; k.Enabled {
		if len(k.Brokers) == 0 {
			return fmt.Errorf("sources.kafka.brokers is required when kafka is enabled")
		}
		if strings.TrimSpace(k.Topic) == "" {
			return fmt.Errorf("sources.kafka.topic is required when kafka is enabled")
		}
		if strings.TrimSpace(k.GroupID) == "" {
			return fmt.Errorf("sources.kafka.group_id is required when kafka is enabled")
		}
	}

	for name, p := range map[string]PortConfig{"plugins": c.Plugins, "extensions": c.Extensions} {
		if p.BaseURL == "" {
			continue
		}
		u, err := url.Parse(p.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s.base_url %q", name, p.BaseURL)
		}
	}

	if c.Broadcast.SendBuffer <= 0 {
		return fmt.Errorf("broadcast.send_buffer must be > 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and EVROUTE_ env
// vars (in that order of precedence), then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                8080,
		"server.host":                "0.0.0.0",
		"server.max_body_size_mb":    1,
		"server.mode":                "release",
		"database.type":              "memory",
		"database.dsn":               "",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.auto_migrate":      true,
		"rules.seed_dir":             "",
		"routing.queue_size":         1024,
		"routing.max_in_flight":      0,
		"routing.dispatch_timeout":   "10s",
		"routing.drain_timeout":      "30s",
		"enablement.default_gateway": true,
		"audit.buffer_size":          4096,
		"audit.batch_size":           256,
		"audit.flush_interval":       "1s",
		"audit.retention":            "0s",
		"audit.prune_interval":       "1h",
		"sources.kafka.enabled":      false,
		"sources.kafka.group_id":     "eventroute",
		"sources.kafka.min_bytes":    1,
		"sources.kafka.max_bytes":    10_000_000,
		"plugins.timeout":            "15s",
		"extensions.timeout":         "15s",
		"broadcast.send_buffer":      64,
		"broadcast.write_timeout":    "5s",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Sources.Kafka.Brokers = splitList(cfg.Sources.Kafka.Brokers)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitList accepts both YAML lists and the comma-separated form env vars produce.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
