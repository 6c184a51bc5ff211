// Package bootstrap wires configuration into concrete stores and senders,
// shared by the API server and the refill worker.
package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/arogyalabs/pharmacy-ai-platform/internal/catalog"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/chat"
	appconfig "github.com/arogyalabs/pharmacy-ai-platform/internal/config"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/orders"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/patient"
	"github.com/arogyalabs/pharmacy-ai-platform/internal/refill"
	"github.com/arogyalabs/pharmacy-ai-platform/pkg/logging"
)

// Stores bundles every persistence dependency the binaries need.
type Stores struct {
	Catalog  catalog.Repository
	Patients patient.Repository
	Orders   orders.Repository
	ChatLogs chat.LogStore
	Alerts   refill.AlertStore

	// Pool is non-nil only for the postgres backend.
	Pool *pgxpool.Pool
}

// Close releases the underlying connection pool, if any.
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// BuildStores constructs the store set for the configured backend. The
// backend is an explicit startup choice: an unknown value is an error, never
// a silent fallback.
func BuildStores(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*Stores, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.StoreBackend {
	case "memory":
		logger.Info("using in-memory stores with demo seed data")
		cat := catalog.NewInMemoryRepository(catalog.DemoProducts())
		return &Stores{
			Catalog:  cat,
			Patients: patient.NewInMemoryRepository(patient.DemoPatients()),
			Orders:   orders.NewInMemoryRepository(cat),
			ChatLogs: chat.NewMemoryLogStore(),
			Alerts:   refill.NewMemoryAlertStore(),
		}, nil

	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("bootstrap: postgres backend requires DATABASE_URL")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
		}
		logger.Info("connected to postgres")
		return &Stores{
			Catalog:  catalog.NewPostgresRepository(pool),
			Patients: patient.NewPostgresRepository(pool),
			Orders:   orders.NewPostgresRepository(pool),
			ChatLogs: chat.NewPostgresLogStore(pool),
			Alerts:   refill.NewPostgresAlertStore(pool),
			Pool:     pool,
		}, nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown store backend %q", cfg.StoreBackend)
	}
}

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPendingStore prefers Redis so pending orders survive restarts and are
// shared across instances; without Redis it degrades to process memory.
func BuildPendingStore(redisClient *redis.Client, logger *logging.Logger) chat.PendingOrderStore {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient != nil {
		logger.Info("pending orders stored in redis")
		return chat.NewRedisPendingStore(redisClient)
	}
	logger.Info("pending orders stored in memory")
	return chat.NewMemoryPendingStore()
}
