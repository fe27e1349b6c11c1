package service

import (
	"context"

	"github.com/limbo/fitlog/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_services.go -package=mocks

const (
	SettingsKey = "workout-app-settings"
	WorkoutsKey = "workout-logs"
)

// UpdateSettingsRequest carries the fields to change; nil fields stay as they are
type UpdateSettingsRequest struct {
	Notifications  *bool   `json:"notifications"`
	DarkMode       *bool   `json:"darkMode"`
	WeightUnit     *string `json:"weightUnit" validate:"omitnil,oneof=kg lbs"`
	RestTime       *int    `json:"restTime" validate:"omitnil,oneof=30 60 90"`
	CalorieTracker *string `json:"calorieTracker" validate:"omitnil,numeric"`
}

type AddWorkoutRequest struct {
	Exercise string `json:"exercise" validate:"required,max=100"`
	Duration string `json:"duration" validate:"required,minutes"`
}

type SettingsServiceI interface {
	// Returns a copy of the current settings
	Settings() entity.Settings
	// Reports whether the initial load hasn't finished yet
	Loading() bool
	// Validates req and applies all present fields as one snapshot. On a storage
	// write failure the new settings are still returned along with the error
	ApplyUpdate(ctx context.Context, req *UpdateSettingsRequest) (entity.Settings, error)
	// Moves rest time to the next value of 30 -> 60 -> 90 cycle
	CycleRestTime(ctx context.Context) (entity.Settings, error)
	// Colour palette for the current dark mode setting
	Theme() entity.Palette
}

type WorkoutServiceI interface {
	// Rereads the log from storage. On failure the in-memory log is returned with the error
	Load(ctx context.Context) ([]entity.WorkoutEntry, error)
	// Validates req and appends a new entry
	LogWorkout(ctx context.Context, req *AddWorkoutRequest) (*entity.WorkoutEntry, error)
	// Rereads the log and computes totals over it
	Progress(ctx context.Context) (entity.Progress, error)
}

var (
	_ SettingsServiceI = (*SettingsService)(nil)
	_ WorkoutServiceI  = (*WorkoutService)(nil)
)
