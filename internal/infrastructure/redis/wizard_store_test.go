package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "fleet:wizard:abc", key("abc"))
}

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/redis
func TestWizardStore_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewWizardStore(rdb, time.Minute)
	id := "test-" + time.Now().Format("150405.000000")

	require.NoError(t, store.Save(ctx, id, json.RawMessage(`{"step":"select_devices"}`)))
	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"select_devices"}`, string(got))

	ttl, err := rdb.TTL(ctx, key(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, id))
}
