package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/storefront-client/config"
	"github.com/target/storefront-client/internal/adapters/bolt"
	"github.com/target/storefront-client/internal/adapters/memory"
	redisadapter "github.com/target/storefront-client/internal/adapters/redis"
	"github.com/target/storefront-client/internal/ports"
)

// StorageConfig contains storage selection parameters.
type StorageConfig struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// BuildStorage opens the configured session storage backend.
// The returned close function releases it and is never nil.
func BuildStorage(ctx context.Context, cfg StorageConfig) (ports.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		return memory.NewStorage(), noop, nil

	case config.StorageBackendRedis:
		client, err := ConnectRedis(ctx, RedisConnectConfig{Redis: cfg.Redis, Logger: cfg.Logger})
		if err != nil {
			return nil, noop, err
		}
		return redisadapter.NewStorage(client, cfg.Redis.KeyPrefix, 0), client.Close, nil

	case config.StorageBackendBolt, "":
		store, err := bolt.OpenStorage(cfg.Storage.Path, bolt.Options{
			Bucket:  cfg.Storage.Bucket,
			Timeout: cfg.Storage.OpenTimeout,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("open session storage: %w", err)
		}
		if cfg.Logger != nil {
			cfg.Logger.Debug("session storage opened", "backend", "bolt", "path", cfg.Storage.Path)
		}
		return store, store.Close, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// RedisConnectConfig contains Redis connection parameters.
type RedisConnectConfig struct {
	Redis  config.RedisConfig
	Logger *slog.Logger
}

const sessionRedisPingTimeout = 5 * time.Second

// ConnectRedis opens the Redis client behind the session storage and checks
// that it answers before handing it out. The client is closed again when the
// check fails.
//
//nolint:ireturn // direct and sentinel setups yield different client types.
func ConnectRedis(ctx context.Context, cfg RedisConnectConfig) (redis.UniversalClient, error) {
	client, target, err := sessionRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("session redis: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, sessionRedisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("session redis %s unreachable: %w", target, err), client.Close())
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("session storage opened", "backend", "redis", "target", target, "prefix", cfg.Redis.KeyPrefix)
	}
	return client, nil
}

// sessionRedisClient builds the client for cfg along with a credential-free
// description of where it points.
//
//nolint:ireturn // see ConnectRedis.
func sessionRedisClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	if cfg.UseSentinel {
		if len(cfg.SentinelNodes) == 0 {
			return nil, "", errors.New("sentinel mode needs at least one REDIS_SENTINEL_NODES entry")
		}
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:            cfg.SentinelNodes,
			MasterName:       cfg.SentinelMasterName,
			Password:         cfg.Password,
			SentinelPassword: cfg.SentinelPassword,
			DB:               cfg.DB,
		})
		return client, "sentinel/" + cfg.SentinelMasterName, nil
	}

	uri := strings.TrimSpace(cfg.URI)
	switch {
	case uri == "":
		return nil, "", errors.New("REDIS_URI is empty")
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("REDIS_URI: %w", err)
		}
		return redis.NewClient(opt), redisURLTarget(uri), nil
	default:
		// bare host:port
		return redis.NewClient(&redis.Options{Addr: uri, Password: cfg.Password, DB: cfg.DB}), uri, nil
	}
}

// redisURLTarget reduces a redis:// URL to host and database so the
// password never reaches the log.
func redisURLTarget(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return "redis"
	}
	return u.Host + u.Path
}
