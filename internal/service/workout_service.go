package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/repository"
	"github.com/limbo/fitlog/pkg/entity"
)

// WorkoutService owns the append-only workout log
type WorkoutService struct {
	store    repository.KeyValueStore
	now      func() time.Time
	mu       sync.RWMutex
	workouts []entity.WorkoutEntry
	lastID   int64
}

func NewWorkoutService(store repository.KeyValueStore) *WorkoutService {
	return NewWorkoutServiceWithClock(store, time.Now)
}

func NewWorkoutServiceWithClock(store repository.KeyValueStore, now func() time.Time) *WorkoutService {
	if store == nil {
		log.Fatal("provided nil key-value store for workout service")
	}
	return &WorkoutService{
		store:    store,
		now:      now,
		workouts: []entity.WorkoutEntry{},
	}
}

// Load holds the write lock for the whole read so an append made meanwhile
// can't be replaced by the older stored list.
func (ws *WorkoutService) Load(ctx context.Context) ([]entity.WorkoutEntry, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	raw, err := ws.store.Get(ctx, WorkoutsKey)
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			slog.Info("no stored workouts")
		} else {
			slog.Error("loading workouts error", slog.String("error", err.Error()))
		}
		return ws.snapshot(), errors.Join(errorvalues.ErrStorageRead, err)
	}
	var loaded []entity.WorkoutEntry
	if err = sonic.UnmarshalString(raw, &loaded); err != nil {
		slog.Error("stored workouts are corrupted", slog.String("error", err.Error()))
		return ws.snapshot(), errors.Join(errorvalues.ErrStorageRead, err)
	}
	if loaded == nil {
		loaded = []entity.WorkoutEntry{}
	}
	ws.workouts = loaded
	for _, w := range loaded {
		ws.lastID = max(ws.lastID, w.ID)
	}
	return ws.snapshot(), nil
}

// Workouts returns a copy of the log in insertion order
func (ws *WorkoutService) Workouts() []entity.WorkoutEntry {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.snapshot()
}

// Caller holds ws.mu
func (ws *WorkoutService) snapshot() []entity.WorkoutEntry {
	out := make([]entity.WorkoutEntry, len(ws.workouts))
	copy(out, ws.workouts)
	return out
}

func (ws *WorkoutService) Totals() entity.Totals {
	return Aggregate(ws.Workouts())
}

// AddWorkout appends an entry and writes the whole log. Empty exercise or
// duration is a no-op reported as ErrEmptyWorkoutInput. If the write fails the
// entry stays in memory and is returned together with ErrStorageWrite.
func (ws *WorkoutService) AddWorkout(ctx context.Context, exercise, duration string) (*entity.WorkoutEntry, error) {
	if exercise == "" || duration == "" {
		return nil, errorvalues.ErrEmptyWorkoutInput
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	entry := entity.WorkoutEntry{
		ID:       ws.nextID(),
		Exercise: exercise,
		Duration: duration,
		Calories: CaloriesFor(duration),
	}
	next := make([]entity.WorkoutEntry, len(ws.workouts), len(ws.workouts)+1)
	copy(next, ws.workouts)
	next = append(next, entry)
	ws.workouts = next
	if err := ws.persist(ctx, next); err != nil {
		return &entry, err
	}
	return &entry, nil
}

func (ws *WorkoutService) LogWorkout(ctx context.Context, req *AddWorkoutRequest) (*entity.WorkoutEntry, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return ws.AddWorkout(ctx, req.Exercise, req.Duration)
}

func (ws *WorkoutService) Progress(ctx context.Context) (entity.Progress, error) {
	workouts, err := ws.Load(ctx)
	return entity.Progress{
		Totals:   Aggregate(workouts),
		Workouts: workouts,
	}, err
}

// nextID is the current time in milliseconds, bumped past the last issued id
// when the clock hasn't moved or went backwards. Caller holds ws.mu.
func (ws *WorkoutService) nextID() int64 {
	id := ws.now().UnixMilli()
	if id <= ws.lastID {
		id = ws.lastID + 1
	}
	ws.lastID = id
	return id
}

func (ws *WorkoutService) persist(ctx context.Context, workouts []entity.WorkoutEntry) error {
	blob, err := sonic.MarshalString(workouts)
	if err != nil {
		slog.Error("encoding workouts error", slog.String("error", err.Error()))
		return errors.Join(errorvalues.ErrStorageWrite, err)
	}
	if err = ws.store.Set(ctx, WorkoutsKey, blob); err != nil {
		slog.Error("saving workouts error", slog.String("error", err.Error()))
		return errors.Join(errorvalues.ErrStorageWrite, err)
	}
	return nil
}
