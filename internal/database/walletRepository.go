package database

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kvstore"
)

func NewWalletRepository(store kvstore.Store, startBalance int) WalletRepository {
	return &walletRepository{store: store, startBalance: startBalance}
}

func (r *walletRepository) Balance(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.balance(ctx)
}

func (r *walletRepository) Deduct(ctx context.Context, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance, err := r.balance(ctx)
	if err != nil {
		return err
	}
	if balance < amount {
		return entity.ErrInsufficientBalance
	}
	return r.setBalance(ctx, balance-amount)
}

func (r *walletRepository) Redeem(ctx context.Context, code string) (*entity.RedeemResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code = strings.TrimSpace(code)
	rate := entity.PromoRate(code)
	if rate == 0 {
		return nil, entity.ErrPromoUnknown
	}

	used, err := r.usedCodes(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range used {
		if c == code {
			return nil, entity.ErrPromoUsed
		}
	}

	balance, err := r.balance(ctx)
	if err != nil {
		return nil, err
	}
	balance += rate

	if err := r.setBalance(ctx, balance); err != nil {
		return nil, err
	}

	used = append(used, code)
	data, err := json.Marshal(used)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, slotUsedCodes, string(data)); err != nil {
		return nil, err
	}

	return &entity.RedeemResult{Credited: rate, Balance: balance}, nil
}

func (r *walletRepository) Credential(ctx context.Context) (string, error) {
	key, err := r.store.Get(ctx, slotCredential)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

func (r *walletRepository) SetCredential(ctx context.Context, key string) error {
	return r.store.Set(ctx, slotCredential, key)
}

func (r *walletRepository) ClearCredential(ctx context.Context) error {
	return r.store.Remove(ctx, slotCredential)
}

func (r *walletRepository) balance(ctx context.Context) (int, error) {
	raw, err := r.store.Get(ctx, slotBalance)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return r.startBalance, nil
		}
		return 0, err
	}
	return strconv.Atoi(raw)
}

func (r *walletRepository) setBalance(ctx context.Context, balance int) error {
	return r.store.Set(ctx, slotBalance, strconv.Itoa(balance))
}

func (r *walletRepository) usedCodes(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, slotUsedCodes)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
