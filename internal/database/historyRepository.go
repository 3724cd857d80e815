package database

import (
	"context"
	"encoding/json"

	"github.com/ferixdi/kie-studio/internal/entity"
	"github.com/ferixdi/kie-studio/internal/pkg/kvstore"
)

func NewHistoryRepository(store kvstore.Store) HistoryRepository {
	return &historyRepository{store: store}
}

func (r *historyRepository) Upsert(ctx context.Context, entry entity.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}

	// Существующая запись обновляется на месте, новая встаёт в начало
	updated := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			updated = true
			break
		}
	}
	if !updated {
		entries = append([]entity.HistoryEntry{entry}, entries...)
	}

	if len(entries) > entity.HistoryLimit {
		entries = entries[:entity.HistoryLimit]
	}

	return r.save(ctx, entries)
}

func (r *historyRepository) FindByID(ctx context.Context, id string) (*entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, entity.ErrHistoryNotFound
}

func (r *historyRepository) List(ctx context.Context) ([]entity.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *historyRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.Remove(ctx, slotHistory)
}

func (r *historyRepository) load(ctx context.Context) ([]entity.HistoryEntry, error) {
	raw, err := r.store.Get(ctx, slotHistory)
	if err != nil {
		if err == kvstore.ErrNotFound {
			return []entity.HistoryEntry{}, nil
		}
		return nil, err
	}

	var entries []entity.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) save(ctx context.Context, entries []entity.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, slotHistory, string(data))
}
