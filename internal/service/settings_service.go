package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/repository"
	"github.com/limbo/fitlog/pkg/entity"
)

// SettingsService owns the settings record. Every change produces a new
// snapshot which is then written to storage as a whole.
type SettingsService struct {
	store   repository.KeyValueStore
	mu      sync.RWMutex
	current entity.Settings
	loading bool
}

func NewSettingsService(store repository.KeyValueStore) *SettingsService {
	if store == nil {
		log.Fatal("provided nil key-value store for settings service")
	}
	return &SettingsService{
		store:   store,
		current: entity.DefaultSettings(),
		loading: true,
	}
}

// Load replaces current settings with the stored record. Fields missing in the
// stored record keep their default values. On any failure the defaults stay in
// place. Loading is reported false afterwards in every case. The write lock is
// held for the whole read, so updates wait for it to finish.
func (ss *SettingsService) Load(ctx context.Context) error {
	ss.mu.Lock()
	defer func() {
		ss.loading = false
		ss.mu.Unlock()
	}()
	raw, err := ss.store.Get(ctx, SettingsKey)
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			slog.Info("no stored settings, using defaults")
		} else {
			slog.Error("loading settings error", slog.String("error", err.Error()))
		}
		return errors.Join(errorvalues.ErrStorageRead, err)
	}
	loaded := entity.DefaultSettings()
	if err = sonic.UnmarshalString(raw, &loaded); err != nil {
		slog.Error("stored settings are corrupted, using defaults", slog.String("error", err.Error()))
		return errors.Join(errorvalues.ErrStorageRead, err)
	}
	ss.current = loaded
	return nil
}

func (ss *SettingsService) Settings() entity.Settings {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.current
}

func (ss *SettingsService) Loading() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.loading
}

func (ss *SettingsService) SetNotifications(ctx context.Context, enabled bool) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.Notifications = enabled })
}

func (ss *SettingsService) SetDarkMode(ctx context.Context, enabled bool) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.DarkMode = enabled })
}

func (ss *SettingsService) SetWeightUnit(ctx context.Context, unit entity.WeightUnit) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.WeightUnit = unit })
}

func (ss *SettingsService) SetRestTime(ctx context.Context, rt entity.RestTime) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.RestTime = rt })
}

func (ss *SettingsService) SetCalorieTracker(ctx context.Context, calories string) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.CalorieTracker = calories })
}

func (ss *SettingsService) CycleRestTime(ctx context.Context) (entity.Settings, error) {
	return ss.update(ctx, func(s *entity.Settings) { s.RestTime = s.RestTime.Next() })
}

func (ss *SettingsService) ApplyUpdate(ctx context.Context, req *UpdateSettingsRequest) (entity.Settings, error) {
	if err := validateRequest(req); err != nil {
		return ss.Settings(), err
	}
	return ss.update(ctx, func(s *entity.Settings) {
		if req.Notifications != nil {
			s.Notifications = *req.Notifications
		}
		if req.DarkMode != nil {
			s.DarkMode = *req.DarkMode
		}
		if req.WeightUnit != nil {
			s.WeightUnit = entity.WeightUnit(*req.WeightUnit)
		}
		if req.RestTime != nil {
			s.RestTime = entity.RestTime(*req.RestTime)
		}
		if req.CalorieTracker != nil {
			s.CalorieTracker = *req.CalorieTracker
		}
	})
}

func (ss *SettingsService) Theme() entity.Palette {
	return PaletteFor(ss.Settings().DarkMode)
}

// update swaps in the mutated copy first and persists it afterwards.
// A failed write keeps the new snapshot in memory.
func (ss *SettingsService) update(ctx context.Context, mutate func(*entity.Settings)) (entity.Settings, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	next := ss.current
	mutate(&next)
	ss.current = next
	if err := ss.persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

func (ss *SettingsService) persist(ctx context.Context, s entity.Settings) error {
	blob, err := sonic.MarshalString(s)
	if err != nil {
		slog.Error("encoding settings error", slog.String("error", err.Error()))
		return errors.Join(errorvalues.ErrStorageWrite, err)
	}
	if err = ss.store.Set(ctx, SettingsKey, blob); err != nil {
		slog.Error("saving settings error", slog.String("error", err.Error()))
		return errors.Join(errorvalues.ErrStorageWrite, err)
	}
	return nil
}
