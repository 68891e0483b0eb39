package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StorageBackend selects where the session store persists its keys.
type StorageBackend string

const (
	// StorageBackendBolt keeps keys in a local bbolt file (survives restarts).
	StorageBackendBolt StorageBackend = "bolt"
	// StorageBackendRedis keeps keys in Redis under a prefix.
	StorageBackendRedis StorageBackend = "redis"
	// StorageBackendMemory keeps keys in process memory only.
	StorageBackendMemory StorageBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "bolt", "redis", "memory":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: bolt, redis, memory)", v)
	}
}

// StorageConfig contains durable session storage configuration.
type StorageConfig struct {
	Backend StorageBackend `env:"BACKEND" envDefault:"bolt"`

	// Path is the bbolt file. Defaults to <user config dir>/storefront/session.db.
	Path string `env:"PATH"`

	// Bucket is the bbolt bucket holding the session keys.
	Bucket string `env:"BUCKET" envDefault:"storefront"`

	// OpenTimeout bounds waiting for the bbolt file lock held by another process.
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT" envDefault:"1s"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageBackendBolt
	}
	s.Path = strings.TrimSpace(s.Path)
	if s.Path == "" {
		s.Path = defaultStoragePath()
	}
	if s.Bucket = strings.TrimSpace(s.Bucket); s.Bucket == "" {
		s.Bucket = "storefront"
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = time.Second
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "storefront", "session.db")
}

// RedisConfig contains Redis configuration for the redis storage backend.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	KeyPrefix          string   `env:"KEY_PREFIX"           envDefault:"storefront:"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:""`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	if r.DB < 0 {
		r.DB = 0
	}
	nodes := r.SentinelNodes[:0]
	for _, n := range r.SentinelNodes {
		if n = strings.TrimSpace(n); n != "" {
			nodes = append(nodes, n)
		}
	}
	r.SentinelNodes = nodes
}
