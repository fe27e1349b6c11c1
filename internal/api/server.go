package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/fitlog/internal/service"
)

const requestTimeout = time.Second * 10

type Server struct {
	mx              *chi.Mux
	settingsService service.SettingsServiceI
	workoutService  service.WorkoutServiceI
}

type ServicesList struct {
	SettingsService service.SettingsServiceI
	WorkoutService  service.WorkoutServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		settingsService: servicesOptions.SettingsService,
		workoutService:  servicesOptions.WorkoutService,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/settings", s.GetSettings)
		r.Patch("/settings", s.UpdateSettings)
		r.Post("/settings/rest-time/cycle", s.CycleRestTime)
		r.Get("/theme", s.GetTheme)
		r.Get("/workouts", s.GetWorkouts)
		r.Post("/workouts", s.AddWorkout)
		r.Get("/progress", s.GetProgress)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts the listener down gracefully
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server started", slog.String("address", address))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
