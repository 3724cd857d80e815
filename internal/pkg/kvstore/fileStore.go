package kvstore

import (
	"context"
	"os"
	"path/filepath"
)

type fileStore struct {
	basePath string
}

// NewFileStore хранит каждое значение в отдельном файле под basePath.
func NewFileStore(basePath string) (Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	return &fileStore{basePath: basePath}, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(data), nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0644)
}

func (s *fileStore) Remove(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.basePath, key)
}
