package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/pkg/config"
)

var _ ports.NarrativeGenerator = (*CachedNarrator)(nil)

const keyPrefix = "narrative"

// CachedNarrator decora un NarrativeGenerator guardando en Redis cada texto generado.
// Mismo tema y mismos hechos devuelven el texto cacheado sin llamar al generador.
// Redis caído no bloquea la narrativa: se registra y se delega en el generador.
type CachedNarrator struct {
	next   ports.NarrativeGenerator
	client *redis.Client
	ttl    time.Duration
}

// NewCachedNarrator construye el decorador.
func NewCachedNarrator(next ports.NarrativeGenerator, client *redis.Client, ttl time.Duration) *CachedNarrator {
	return &CachedNarrator{next: next, client: client, ttl: ttl}
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Explain devuelve el texto cacheado o lo genera y lo guarda. Los errores del generador no se cachean.
func (c *CachedNarrator) Explain(ctx context.Context, nc ports.NarrativeContext) (string, error) {
	key := Key(nc)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("caché de narrativa no disponible")
	}

	text, err := c.next.Explain(ctx, nc)
	if err != nil {
		return "", err
	}
	if text == "" {
		return text, nil
	}
	if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la narrativa en caché")
	}
	return text, nil
}

// Key deriva la clave de caché: narrative:<tema>:<sha256 de los hechos en orden>.
func Key(nc ports.NarrativeContext) string {
	h := sha256.New()
	for _, f := range nc.Facts {
		h.Write([]byte(f.Key))
		h.Write([]byte{0})
		h.Write([]byte(f.Value))
		h.Write([]byte{0})
	}
	return keyPrefix + ":" + nc.Topic + ":" + hex.EncodeToString(h.Sum(nil))
}
