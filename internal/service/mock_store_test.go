package service_test

import (
	"context"
	"errors"
	"sync"

	errorvalues "github.com/limbo/fitlog/internal/error_values"
)

type mockState int

const (
	stateSuccess = iota
	stateReadError
	stateWriteError
	stateCorrupted
)

// kvMock keeps values in a map and counts writes. Its state switches the
// failure mode of the next calls.
type kvMock struct {
	mu     sync.Mutex
	state  mockState
	values map[string]string
	sets   int
}

func newKVMock() *kvMock {
	return &kvMock{state: stateSuccess, values: map[string]string{}}
}

func (m *kvMock) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case stateReadError:
		return "", errors.New("storage unavailable")
	case stateCorrupted:
		return "{not json", nil
	}
	v, ok := m.values[key]
	if !ok {
		return "", errorvalues.ErrKeyNotFound
	}
	return v, nil
}

func (m *kvMock) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.state == stateWriteError {
		return errors.New("disk full")
	}
	m.values[key] = value
	return nil
}

// blockingKV parks the first Get after it has read the value: reading is
// closed once the value is in hand, and the call returns when release is closed.
type blockingKV struct {
	*kvMock
	once    sync.Once
	reading chan struct{}
	release chan struct{}
}

func newBlockingKV(inner *kvMock) *blockingKV {
	return &blockingKV{
		kvMock:  inner,
		reading: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (b *blockingKV) Get(ctx context.Context, key string) (string, error) {
	v, err := b.kvMock.Get(ctx, key)
	b.once.Do(func() {
		close(b.reading)
		<-b.release
	})
	return v, err
}
