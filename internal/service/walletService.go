package service

import (
	"context"
	"strings"

	"github.com/ferixdi/kie-studio/internal/entity"
)

func (s *walletService) Balance(ctx context.Context) (*entity.WalletState, error) {
	balance, err := s.wallet.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return &entity.WalletState{Balance: balance}, nil
}

func (s *walletService) RedeemPromo(ctx context.Context, code string) (*entity.RedeemResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, entity.NewValidationError("введите промокод")
	}
	return s.wallet.Redeem(ctx, code)
}

func (s *walletService) SetCredential(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return entity.NewValidationError("введите API ключ")
	}
	return s.wallet.SetCredential(ctx, strings.TrimSpace(key))
}

func (s *walletService) ClearCredential(ctx context.Context) error {
	return s.wallet.ClearCredential(ctx)
}
