package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/service"
	"github.com/limbo/fitlog/pkg/httputil"
)

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, SettingsResponse{
		Settings:  s.settingsService.Settings(),
		Loading:   s.settingsService.Loading(),
		Persisted: true,
	})
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req service.UpdateSettingsRequest
	defer r.Body.Close()
	err := httputil.DecodeJSON(r.Body, &req)
	if err != nil {
		logger.Error("update settings error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	settings, err := s.settingsService.ApplyUpdate(ctx, &req)
	if err != nil && !errors.Is(err, errorvalues.ErrStorageWrite) {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("update settings error: validation failed", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid settings values", err)
			return
		}
		logger.Error("update settings error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating settings", nil)
		return
	}
	if err != nil {
		logger.Warn("settings updated in memory only", slog.String("error", err.Error()))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, SettingsResponse{
		Settings:  settings,
		Loading:   s.settingsService.Loading(),
		Persisted: err == nil,
	})
	logger.Info("settings updated")
}

func (s *Server) CycleRestTime(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	settings, err := s.settingsService.CycleRestTime(ctx)
	if err != nil {
		logger.Warn("rest time changed in memory only", slog.String("error", err.Error()))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, SettingsResponse{
		Settings:  settings,
		Loading:   s.settingsService.Loading(),
		Persisted: err == nil,
	})
}

func (s *Server) GetTheme(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, s.settingsService.Theme())
}

func (s *Server) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	workouts, err := s.workoutService.Load(ctx)
	loaded := readSucceeded(err)
	if !loaded {
		logger.Warn("serving workouts from memory", slog.String("error", err.Error()))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, WorkoutsResponse{
		Workouts: workouts,
		Loaded:   loaded,
	})
}

func (s *Server) AddWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req AddWorkoutRequest
	defer r.Body.Close()
	err := httputil.DecodeJSON(r.Body, &req)
	if err != nil {
		logger.Error("add workout error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	entry, err := s.workoutService.LogWorkout(ctx, &service.AddWorkoutRequest{
		Exercise: req.Exercise,
		Duration: req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrStorageWrite) && entry != nil:
			logger.Warn("workout logged in memory only", slog.String("error", err.Error()))
		case errors.Is(err, errorvalues.ErrValidation), errors.Is(err, errorvalues.ErrEmptyWorkoutInput):
			logger.Error("add workout error: invalid input", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "exercise and numeric duration are required", err)
			return
		default:
			logger.Error("add workout error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging workout", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, WorkoutResponse{
		Workout:   *entry,
		Persisted: err == nil,
	})
	logger.Info("workout logged")
}

func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	progress, err := s.workoutService.Progress(ctx)
	loaded := readSucceeded(err)
	if !loaded {
		logger.Warn("progress computed from memory", slog.String("error", err.Error()))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, ProgressResponse{
		Progress: progress,
		Loaded:   loaded,
	})
}

// readSucceeded treats "nothing stored yet" as a successful read
func readSucceeded(err error) bool {
	return err == nil || errors.Is(err, errorvalues.ErrKeyNotFound)
}
