// Package redis implementa el bloqueo distribuido de períodos de cierre con go-redis y redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/saeron-inventario/internal/application/ports"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/pkg/config"
)

var _ ports.PeriodLocker = (*PeriodLocker)(nil)

// DefaultLockTTL duración máxima del lock si el proceso muere sin liberarlo.
const DefaultLockTTL = 30 * time.Second

// Connect crea el cliente y verifica la conexión con PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// PeriodLocker toma un lock por clave (ej. closing:2025-03) sin reintentos.
type PeriodLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewPeriodLocker construye el locker. ttl <= 0 usa DefaultLockTTL.
func NewPeriodLocker(client goredis.UniversalClient, ttl time.Duration) *PeriodLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &PeriodLocker{locker: redislock.New(client), ttl: ttl}
}

// Lock obtiene el lock o devuelve domain.ErrPeriodLocked si otro proceso lo tiene.
func (l *PeriodLocker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := l.locker.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrPeriodLocked)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("liberar lock %s: %w", key, err)
		}
		return nil
	}, nil
}
