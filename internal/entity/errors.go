package entity

import "errors"

var (
	ErrInsufficientBalance = errors.New("недостаточно средств на балансе")
	ErrPromoUnknown        = errors.New("промокод не найден")
	ErrPromoUsed           = errors.New("промокод уже использован")
	ErrCredentialMissing   = errors.New("API ключ не задан")
	ErrHistoryNotFound     = errors.New("history entry not found")
)

// ValidationError — ошибка пользовательского ввода, показывается как есть
// до любого сетевого вызова.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}
