package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileStore базовый контракт Get/Set/Remove
func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "kie_api_key", "sk-test"))

	value, err := store.Get(ctx, "kie_api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", value)

	// Перезапись
	require.NoError(t, store.Set(ctx, "kie_api_key", "sk-new"))
	value, err = store.Get(ctx, "kie_api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-new", value)

	require.NoError(t, store.Remove(ctx, "kie_api_key"))
	_, err = store.Get(ctx, "kie_api_key")
	assert.ErrorIs(t, err, ErrNotFound)

	// Удаление отсутствующего ключа не ошибка
	assert.NoError(t, store.Remove(ctx, "kie_api_key"))
}
