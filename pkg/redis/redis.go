package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cumplimed/backend/config"
)

// Client envoltorio del cliente Redis
// Usado como caché del snapshot de configuración operacional; el backend
// funciona sin Redis (modo degradado: lecturas directas a la base)
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient crea la conexión Redis y hace Ping de verificación
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conexión a Redis falló: %w", err)
	}

	logger.Info("conexión a Redis establecida", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Caché de snapshot de configuración operacional ──

const opConfigKey = "opconfig:snapshot"

// GetJSON lee y deserializa el snapshot cacheado; ok=false si no existe
func (c *Client) GetJSON(ctx context.Context, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, opConfigKey).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa y guarda el snapshot con TTL
func (c *Client) SetJSON(ctx context.Context, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, opConfigKey, raw, ttl).Err()
}

// Invalidate borra el snapshot cacheado (tras actualizar la configuración)
func (c *Client) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, opConfigKey).Err()
}

// Close cierra la conexión
func (c *Client) Close() error {
	return c.rdb.Close()
}
