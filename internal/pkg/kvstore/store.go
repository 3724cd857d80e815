package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: key not found")

// Store — key-value хранилище клиентского состояния (ключ API, история,
// баланс, использованные промокоды). Репозитории работают только через
// этот интерфейс, бэкенд подменяется конфигом.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
