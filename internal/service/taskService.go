package service

import (
	"bytes"
	"context"
	"time"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/builder"
	"github.com/ferixdi/kie-studio/internal/pkg/kafka"
	"github.com/ferixdi/kie-studio/internal/pkg/poller"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Submit проводит запрос через весь конвейер: валидация, создание задачи,
// списание, запись истории, запуск опроса. Деньги списываются строго после
// успешного createTask и ровно один раз.
func (s *taskService) Submit(ctx context.Context, req *entity.GenerateRequest) (*entity.HistoryEntry, error) {
	apiKey, err := s.resolveAPIKey(ctx, req)
	if err != nil {
		return nil, err
	}

	model := entity.Model(req.Model)
	if !model.Valid() {
		return nil, entity.NewValidationError("неизвестная модель")
	}

	price := model.Price()
	balance, err := s.wallet.Balance(ctx)
	if err != nil {
		return nil, err
	}
	if balance < price {
		return nil, entity.ErrInsufficientBalance
	}

	// Файл видео сперва превращаем в размещённый URL
	if len(req.VideoData) > 0 && req.VideoURL == "" {
		hostedURL, err := s.client.UploadFile(ctx, apiKey, req.VideoFilename, bytes.NewReader(req.VideoData))
		if err != nil {
			return nil, err
		}
		req.VideoURL = hostedURL
	}

	input, err := builder.Build(req)
	if err != nil {
		return nil, err
	}

	taskID, err := s.client.CreateTask(ctx, apiKey, model, input)
	if err != nil {
		// Задача не принята — баланс не трогаем
		return nil, err
	}

	if err := s.wallet.Deduct(ctx, price); err != nil {
		logrus.Errorf("failed to deduct %d for task %s: %s", price, taskID, err.Error())
	}

	entry := entity.HistoryEntry{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Model:     model,
		Status:    entity.HistoryWaiting,
		Timestamp: time.Now().UnixMilli(),
	}
	if model == entity.ModelNanoBanana {
		entry.Prompt = req.Prompt
	} else {
		entry.VideoInputURL = req.VideoURL
	}

	if err := s.history.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	s.publish("task.created", entry)
	s.startPolling(apiKey, req.ClientID, entry)

	return &entry, nil
}

func (s *taskService) Status(ctx context.Context, id string) (*entity.HistoryEntry, error) {
	return s.history.FindByID(ctx, id)
}

func (s *taskService) History(ctx context.Context) ([]entity.HistoryEntry, error) {
	return s.history.List(ctx)
}

func (s *taskService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// startPolling передаёт задачу оркестратору. Ключ владельца — идентификатор
// клиента: новая генерация того же клиента гасит его предыдущий опрос.
// Без ClientID каждая отправка опрашивается независимо.
func (s *taskService) startPolling(apiKey, clientID string, entry entity.HistoryEntry) {
	ownerKey := clientID
	if ownerKey == "" {
		ownerKey = entry.ID
	}

	fetch := func(ctx context.Context) (*entity.TaskRecord, error) {
		return s.client.GetTaskStatus(ctx, apiKey, entry.TaskID)
	}

	s.poller.Start(ownerKey, fetch, func(result poller.Result) {
		// Запрос давно завершён, фиксируем исход в фоновом контексте
		ctx := context.Background()

		entry.Status = result.Status
		entry.ResultURL = result.ResultURL
		entry.FailMsg = result.FailMsg

		if err := s.history.Upsert(ctx, entry); err != nil {
			logrus.Errorf("failed to update history entry %s: %s", entry.ID, err.Error())
		}

		if result.Status == entity.HistorySuccess {
			s.publish("task.success", entry)
		} else {
			s.publish("task.fail", entry)
		}
	})
}

func (s *taskService) resolveAPIKey(ctx context.Context, req *entity.GenerateRequest) (string, error) {
	if req.APIKey != "" {
		return req.APIKey, nil
	}
	stored, err := s.wallet.Credential(ctx)
	if err != nil {
		return "", err
	}
	if stored != "" {
		return stored, nil
	}
	if s.defaultAPIKey != "" {
		return s.defaultAPIKey, nil
	}
	return "", entity.ErrCredentialMissing
}

func (s *taskService) publish(event string, entry entity.HistoryEntry) {
	ev := entity.TaskEvent{
		Event:     event,
		TaskID:    entry.TaskID,
		HistoryID: entry.ID,
		Model:     entry.Model,
		ResultURL: entry.ResultURL,
		FailMsg:   entry.FailMsg,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.producer.SendMessage(kafka.TaskEventsTopic, ev); err != nil {
		logrus.Warnf("failed to publish %s for task %s: %s", event, entry.TaskID, err.Error())
	}
}
