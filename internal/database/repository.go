package database

import (
	"context"
	"sync"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kvstore"
)

// Именованные слоты в kv-хранилище. Имена повторяют ключи localStorage
// веб-клиента, чтобы форматы данных оставались совместимыми.
const (
	slotCredential = "kie_api_key"
	slotHistory    = "kie_history"
	slotBalance    = "wallet_balance"
	slotUsedCodes  = "wallet_used_codes"
)

type HistoryRepository interface {
	Upsert(ctx context.Context, entry entity.HistoryEntry) error
	FindByID(ctx context.Context, id string) (*entity.HistoryEntry, error)
	List(ctx context.Context) ([]entity.HistoryEntry, error)
	Clear(ctx context.Context) error
}

type WalletRepository interface {
	Balance(ctx context.Context) (int, error)
	Deduct(ctx context.Context, amount int) error
	Redeem(ctx context.Context, code string) (*entity.RedeemResult, error)
	Credential(ctx context.Context) (string, error)
	SetCredential(ctx context.Context, key string) error
	ClearCredential(ctx context.Context) error
}

// Хранилище не даёт транзакций, поэтому каждая последовательность
// read-modify-write выполняется под мьютексом репозитория.
type historyRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

type walletRepository struct {
	mu           sync.Mutex
	store        kvstore.Store
	startBalance int
}
