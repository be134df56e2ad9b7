package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/storage"
)

// Config is the top-level configuration for a Tempo session.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Storage StorageConfig `json:"storage"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr   string        `json:"addr"`
	Tick   time.Duration `json:"tick"`   // sampling interval for the tick loop
	Source string        `json:"source"` // label for readings taken by the server
}

// StorageConfig selects and configures the reading storage backend.
type StorageConfig struct {
	Backend string             `json:"backend"`
	Memory  StorageMemory      `json:"memory"`
	Redis   StorageRedisConfig `json:"redis"`
}

// StorageMemory holds settings for the in-memory backend.
type StorageMemory struct {
	Retention time.Duration `json:"retention"` // zero keeps everything
}

// StorageRedisConfig holds settings for the Redis backend.
type StorageRedisConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Password     string        `json:"password"`
	DB           int           `json:"db"`
	Cluster      bool          `json:"cluster"`
	ClusterNodes []string      `json:"cluster_nodes"`
	PoolSize     int           `json:"pool_size"`
	MaxRetries   int           `json:"max_retries"`
	DialTimeout  time.Duration `json:"dial_timeout"`
	Retention    time.Duration `json:"retention"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:   ":8080",
			Tick:   time.Second,
			Source: "system",
		},
		Storage: StorageConfig{
			Backend: storage.BackendMemory,
			Memory: StorageMemory{
				Retention: time.Hour,
			},
			Redis: StorageRedisConfig{
				Host:        "localhost",
				Port:        6379,
				PoolSize:    20,
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
				Retention:   time.Hour,
			},
		},
	}
}

// Validate checks that the config is valid.
func (c Config) Validate() error {
	if c.Server.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", c.Server.Tick)
	}
	if c.Server.Source == "" {
		return fmt.Errorf("source must not be empty")
	}
	switch c.Storage.Backend {
	case storage.BackendMemory, storage.BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q, must be one of: memory, redis", c.Storage.Backend)
	}
	if c.Storage.Memory.Retention < 0 {
		return fmt.Errorf("memory retention must not be negative, got %s", c.Storage.Memory.Retention)
	}
	return nil
}

// LoadFile reads a JSON config file and merges it with defaults.
// Fields not specified in the file retain their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	// Use a raw intermediate struct to handle duration parsing.
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if raw.Server.Addr != "" {
		cfg.Server.Addr = raw.Server.Addr
	}
	if raw.Server.Tick != "" {
		d, err := time.ParseDuration(raw.Server.Tick)
		if err != nil {
			return cfg, fmt.Errorf("parsing server.tick: %w", err)
		}
		cfg.Server.Tick = d
	}
	if raw.Server.Source != "" {
		cfg.Server.Source = raw.Server.Source
	}
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Memory.Retention != "" {
		d, err := time.ParseDuration(raw.Storage.Memory.Retention)
		if err != nil {
			return cfg, fmt.Errorf("parsing storage.memory.retention: %w", err)
		}
		cfg.Storage.Memory.Retention = d
	}
	if raw.Storage.Redis.Host != "" {
		cfg.Storage.Redis.Host = raw.Storage.Redis.Host
	}
	if raw.Storage.Redis.Port > 0 {
		cfg.Storage.Redis.Port = raw.Storage.Redis.Port
	}
	if raw.Storage.Redis.Password != "" {
		cfg.Storage.Redis.Password = raw.Storage.Redis.Password
	}
	if raw.Storage.Redis.DB > 0 {
		cfg.Storage.Redis.DB = raw.Storage.Redis.DB
	}
	if raw.Storage.Redis.Cluster {
		cfg.Storage.Redis.Cluster = true
	}
	if len(raw.Storage.Redis.ClusterNodes) > 0 {
		cfg.Storage.Redis.ClusterNodes = raw.Storage.Redis.ClusterNodes
	}
	if raw.Storage.Redis.PoolSize > 0 {
		cfg.Storage.Redis.PoolSize = raw.Storage.Redis.PoolSize
	}
	if raw.Storage.Redis.MaxRetries > 0 {
		cfg.Storage.Redis.MaxRetries = raw.Storage.Redis.MaxRetries
	}
	if raw.Storage.Redis.DialTimeout != "" {
		d, err := time.ParseDuration(raw.Storage.Redis.DialTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parsing storage.redis.dial_timeout: %w", err)
		}
		cfg.Storage.Redis.DialTimeout = d
	}
	if raw.Storage.Redis.Retention != "" {
		d, err := time.ParseDuration(raw.Storage.Redis.Retention)
		if err != nil {
			return cfg, fmt.Errorf("parsing storage.redis.retention: %w", err)
		}
		cfg.Storage.Redis.Retention = d
	}

	return cfg, nil
}

// rawConfig is the JSON-friendly representation with string durations.
type rawConfig struct {
	Server struct {
		Addr   string `json:"addr"`
		Tick   string `json:"tick"`
		Source string `json:"source"`
	} `json:"server"`
	Storage struct {
		Backend string `json:"backend"`
		Memory  struct {
			Retention string `json:"retention"`
		} `json:"memory"`
		Redis struct {
			Host         string   `json:"host"`
			Port         int      `json:"port"`
			Password     string   `json:"password"`
			DB           int      `json:"db"`
			Cluster      bool     `json:"cluster"`
			ClusterNodes []string `json:"cluster_nodes"`
			PoolSize     int      `json:"pool_size"`
			MaxRetries   int      `json:"max_retries"`
			DialTimeout  string   `json:"dial_timeout"`
			Retention    string   `json:"retention"`
		} `json:"redis"`
	} `json:"storage"`
}

// WriteExample writes an example config file to the given path.
func WriteExample(path string) error {
	example := `{
  "server": {
    "addr": ":8080",
    "tick": "1s",
    "source": "system"
  },
  "storage": {
    "backend": "memory",
    "memory": {
      "retention": "1h"
    },
    "redis": {
      "host": "localhost",
      "port": 6379,
      "retention": "1h"
    }
  }
}
`
	return os.WriteFile(path, []byte(example), 0o644)
}
