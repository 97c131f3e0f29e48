// Package redis guarda en Redis el estado de los asistentes de movimiento.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/config"
)

var _ ports.WizardStore = (*WizardStore)(nil)

// NewClient abre la conexión y verifica que Redis responda.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// WizardStore estado de cada asistente como JSON con TTL. Cada Save renueva el TTL.
type WizardStore struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewWizardStore construye el store.
func NewWizardStore(rdb goredis.Cmdable, ttl time.Duration) *WizardStore {
	return &WizardStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return fmt.Sprintf("fleet:wizard:%s", id) }

// Save guarda el estado.
func (s *WizardStore) Save(ctx context.Context, id string, state json.RawMessage) error {
	if err := s.rdb.Set(ctx, key(id), []byte(state), s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar asistente: %w", err)
	}
	return nil
}

// Load devuelve el estado o domain.ErrNotFound si no existe o expiró.
func (s *WizardStore) Load(ctx context.Context, id string) (json.RawMessage, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer asistente: %w", err)
	}
	return json.RawMessage(b), nil
}

// Delete elimina el asistente. Borrar uno inexistente no es error.
func (s *WizardStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("borrar asistente: %w", err)
	}
	return nil
}
