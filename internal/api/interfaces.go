package api

import "github.com/limbo/fitlog/pkg/entity"

type SettingsResponse struct {
	Settings  entity.Settings `json:"settings"`
	Loading   bool            `json:"loading"`
	Persisted bool            `json:"persisted"`
}

type AddWorkoutRequest struct {
	Exercise string `json:"exercise"`
	Duration string `json:"duration"`
}

type WorkoutResponse struct {
	Workout   entity.WorkoutEntry `json:"workout"`
	Persisted bool                `json:"persisted"`
}

type WorkoutsResponse struct {
	Workouts []entity.WorkoutEntry `json:"workouts"`
	Loaded   bool                  `json:"loaded"`
}

type ProgressResponse struct {
	entity.Progress
	Loaded bool `json:"loaded"`
}
