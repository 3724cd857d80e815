package poller

import (
	"context"
	"sync"
	"time"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kie"
	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxAttempts = 150 // ~5 минут при интервале 2s
)

// Policy ограничивает опрос: фиксированный интервал и потолок попыток,
// чтобы задача, которую сервис так и не завершил, не крутила таймер вечно.
type Policy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Result — единственный терминальный исход одного запуска опроса.
type Result struct {
	Status    entity.HistoryStatus
	ResultURL string
	FailMsg   string
}

// FetchFunc запрашивает текущее состояние задачи.
type FetchFunc func(ctx context.Context) (*entity.TaskRecord, error)

type handle struct {
	cancel context.CancelFunc
}

// Poller ведёт задачу от создания до терминального состояния, не блокируя
// вызывающего. На каждый ключ владельца — ровно один активный цикл:
// повторный Start с тем же ключом сперва гасит предыдущий.
type Poller struct {
	policy Policy

	mu     sync.Mutex
	active map[string]*handle
	wg     sync.WaitGroup
}

func New(policy Policy) *Poller {
	if policy.Interval <= 0 {
		policy.Interval = DefaultInterval
	}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	return &Poller{
		policy: policy,
		active: make(map[string]*handle),
	}
}

// Start запускает цикл опроса. onTerminal вызывается ровно один раз,
// если цикл не был отменён повторным запуском или остановкой.
func (p *Poller) Start(ownerKey string, fetch FetchFunc, onTerminal func(Result)) {
	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{cancel: cancel}

	p.mu.Lock()
	if prev, ok := p.active[ownerKey]; ok {
		prev.cancel()
	}
	p.active[ownerKey] = h
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.release(ownerKey, h)
		p.run(ctx, ownerKey, fetch, onTerminal)
	}()
}

// Stop отменяет активный цикл владельца, если он есть.
func (p *Poller) Stop(ownerKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.active[ownerKey]; ok {
		h.cancel()
		delete(p.active, ownerKey)
	}
}

// StopAll гасит все циклы и дожидается их завершения.
func (p *Poller) StopAll() {
	p.mu.Lock()
	for key, h := range p.active {
		h.cancel()
		delete(p.active, key)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Poller) run(ctx context.Context, ownerKey string, fetch FetchFunc, onTerminal func(Result)) {
	ticker := time.NewTicker(p.policy.Interval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			attempts++

			record, err := fetch(ctx)
			if err != nil {
				// Транспортная ошибка тика не роняет опрос
				logrus.Warnf("poll %s: %s", ownerKey, err.Error())
			} else {
				switch record.State {
				case entity.TaskStateSuccess:
					urls := kie.ParseResultJSON(record.ResultJSON)
					if len(urls) > 0 {
						onTerminal(Result{Status: entity.HistorySuccess, ResultURL: urls[0]})
					} else {
						// Удалённый success без результата — локальный отказ
						onTerminal(Result{Status: entity.HistoryFail, FailMsg: "API не вернул результат"})
					}
					return
				case entity.TaskStateFail:
					msg := record.FailMsg
					if msg == "" {
						msg = "Ошибка генерации"
					}
					onTerminal(Result{Status: entity.HistoryFail, FailMsg: msg})
					return
				}
			}

			if attempts >= p.policy.MaxAttempts {
				onTerminal(Result{Status: entity.HistoryFail, FailMsg: "превышено время ожидания результата"})
				return
			}
		}
	}
}

func (p *Poller) release(ownerKey string, h *handle) {
	h.cancel()
	p.mu.Lock()
	defer p.mu.Unlock()
	// Не трогаем запись, если ключ уже занят новым циклом
	if cur, ok := p.active[ownerKey]; ok && cur == h {
		delete(p.active, ownerKey)
	}
}
