package repository

import (
	"context"
	"sync"

	errorvalues "github.com/limbo/fitlog/internal/error_values"
)

// MemoryKV is a process-local store, mainly for local runs and tests
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (kv *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.values[key]
	if !ok {
		return "", errorvalues.ErrKeyNotFound
	}
	return v, nil
}

func (kv *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.values[key] = value
	return nil
}
