package service

import (
	"context"
	"io"

	"github.com/ferixdi/kie-studio/internal/database"
	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kafka"
	"github.com/ferixdi/kie-studio/internal/pkg/poller"
)

// KieClient — сетевой клиент генеративного API; интерфейс здесь, чтобы
// сервис можно было тестировать без сети.
type KieClient interface {
	CreateTask(ctx context.Context, apiKey string, model entity.Model, input entity.TaskInput) (string, error)
	GetTaskStatus(ctx context.Context, apiKey, taskID string) (*entity.TaskRecord, error)
	UploadFile(ctx context.Context, apiKey, filename string, r io.Reader) (string, error)
}

type TaskService interface {
	Submit(ctx context.Context, req *entity.GenerateRequest) (*entity.HistoryEntry, error)
	Status(ctx context.Context, id string) (*entity.HistoryEntry, error)
	History(ctx context.Context) ([]entity.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

type WalletService interface {
	Balance(ctx context.Context) (*entity.WalletState, error)
	RedeemPromo(ctx context.Context, code string) (*entity.RedeemResult, error)
	SetCredential(ctx context.Context, key string) error
	ClearCredential(ctx context.Context) error
}

type taskService struct {
	history       database.HistoryRepository
	wallet        database.WalletRepository
	client        KieClient
	poller        *poller.Poller
	producer      kafka.Producer
	defaultAPIKey string
}

type walletService struct {
	wallet database.WalletRepository
}

func NewTaskService(history database.HistoryRepository, wallet database.WalletRepository, client KieClient, p *poller.Poller, producer kafka.Producer, defaultAPIKey string) TaskService {
	return &taskService{
		history:       history,
		wallet:        wallet,
		client:        client,
		poller:        p,
		producer:      producer,
		defaultAPIKey: defaultAPIKey,
	}
}

func NewWalletService(wallet database.WalletRepository) WalletService {
	return &walletService{wallet: wallet}
}
