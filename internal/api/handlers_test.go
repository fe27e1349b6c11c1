package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/limbo/fitlog/internal/api"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
	"github.com/limbo/fitlog/internal/repository"
	"github.com/limbo/fitlog/internal/service"
	"github.com/limbo/fitlog/internal/service/mocks"
	"github.com/limbo/fitlog/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	darkSettings = entity.Settings{
		Notifications:  true,
		DarkMode:       true,
		WeightUnit:     entity.WeightUnitLbs,
		RestTime:       entity.RestTimeMedium,
		CalorieTracker: "0",
	}
	testEntry = entity.WorkoutEntry{
		ID:       1740819600000,
		Exercise: "Running",
		Duration: "30",
		Calories: 240,
	}
)

func newTestServer(t *testing.T) (*api.Server, *mocks.MockSettingsServiceI, *mocks.MockWorkoutServiceI) {
	ctrl := gomock.NewController(t)
	sService := mocks.NewMockSettingsServiceI(ctrl)
	wService := mocks.NewMockWorkoutServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		SettingsService: sService,
		WorkoutService:  wService,
	})
	return serv, sService, wService
}

func doRequest(serv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	serv.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestGetSettings(t *testing.T) {
	serv, sService, _ := newTestServer(t)
	sService.EXPECT().Settings().Return(darkSettings)
	sService.EXPECT().Loading().Return(false)
	rr := doRequest(serv, http.MethodGet, "/api/v1/settings", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[api.SettingsResponse](t, rr)
	assert.Equal(t, darkSettings, resp.Settings)
	assert.False(t, resp.Loading)
	assert.True(t, resp.Persisted)
	_, err := uuid.Parse(rr.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestUpdateSettings(t *testing.T) {
	serv, sService, _ := newTestServer(t)
	t.Run("success", func(t *testing.T) {
		sService.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req *service.UpdateSettingsRequest) (entity.Settings, error) {
				require.NotNil(t, req.DarkMode)
				assert.True(t, *req.DarkMode)
				assert.Nil(t, req.WeightUnit)
				return darkSettings, nil
			})
		sService.EXPECT().Loading().Return(false)
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"darkMode":true}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.SettingsResponse](t, rr)
		assert.Equal(t, darkSettings, resp.Settings)
		assert.True(t, resp.Persisted)
	})
	t.Run("write failure", func(t *testing.T) {
		sService.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any()).
			Return(darkSettings, errors.Join(errorvalues.ErrStorageWrite, errors.New("disk full")))
		sService.EXPECT().Loading().Return(false)
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"darkMode":true}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.SettingsResponse](t, rr)
		assert.False(t, resp.Persisted)
		assert.Equal(t, darkSettings, resp.Settings)
	})
	t.Run("validation error", func(t *testing.T) {
		sService.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any()).
			Return(entity.DefaultSettings(), errorvalues.ErrValidation)
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"weightUnit":"st"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"darkMode":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("unknown setting", func(t *testing.T) {
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"fontSize":12}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCycleRestTime(t *testing.T) {
	serv, sService, _ := newTestServer(t)
	cycled := darkSettings
	cycled.RestTime = entity.RestTimeLong
	sService.EXPECT().CycleRestTime(gomock.Any()).Return(cycled, nil)
	sService.EXPECT().Loading().Return(false)
	rr := doRequest(serv, http.MethodPost, "/api/v1/settings/rest-time/cycle", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[api.SettingsResponse](t, rr)
	assert.Equal(t, entity.RestTimeLong, resp.Settings.RestTime)
}

func TestGetTheme(t *testing.T) {
	serv, sService, _ := newTestServer(t)
	sService.EXPECT().Theme().Return(service.PaletteFor(true))
	rr := doRequest(serv, http.MethodGet, "/api/v1/theme", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[entity.Palette](t, rr)
	assert.Equal(t, "#1C1C1E", resp.Card)
}

func TestAddWorkout(t *testing.T) {
	serv, _, wService := newTestServer(t)
	body, err := sonic.MarshalString(api.AddWorkoutRequest{Exercise: "Running", Duration: "30"})
	require.NoError(t, err)
	t.Run("created", func(t *testing.T) {
		wService.EXPECT().LogWorkout(gomock.Any(), &service.AddWorkoutRequest{Exercise: "Running", Duration: "30"}).
			Return(&testEntry, nil)
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", body)
		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[api.WorkoutResponse](t, rr)
		assert.Equal(t, testEntry, resp.Workout)
		assert.True(t, resp.Persisted)
	})
	t.Run("kept in memory", func(t *testing.T) {
		wService.EXPECT().LogWorkout(gomock.Any(), gomock.Any()).
			Return(&testEntry, errors.Join(errorvalues.ErrStorageWrite, errors.New("disk full")))
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", body)
		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[api.WorkoutResponse](t, rr)
		assert.False(t, resp.Persisted)
	})
	t.Run("invalid input", func(t *testing.T) {
		wService.EXPECT().LogWorkout(gomock.Any(), gomock.Any()).
			Return(nil, errorvalues.ErrValidation)
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", `{"exercise":"","duration":"30"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("service error", func(t *testing.T) {
		wService.EXPECT().LogWorkout(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("mocked error"))
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
	t.Run("invalid body", func(t *testing.T) {
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", `[]`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetWorkouts(t *testing.T) {
	serv, _, wService := newTestServer(t)
	t.Run("loaded", func(t *testing.T) {
		wService.EXPECT().Load(gomock.Any()).Return([]entity.WorkoutEntry{testEntry}, nil)
		rr := doRequest(serv, http.MethodGet, "/api/v1/workouts", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.WorkoutsResponse](t, rr)
		assert.True(t, resp.Loaded)
		assert.Equal(t, []entity.WorkoutEntry{testEntry}, resp.Workouts)
	})
	t.Run("nothing stored yet", func(t *testing.T) {
		wService.EXPECT().Load(gomock.Any()).
			Return([]entity.WorkoutEntry{}, errors.Join(errorvalues.ErrStorageRead, errorvalues.ErrKeyNotFound))
		rr := doRequest(serv, http.MethodGet, "/api/v1/workouts", "")
		resp := decode[api.WorkoutsResponse](t, rr)
		assert.True(t, resp.Loaded)
		assert.Empty(t, resp.Workouts)
	})
	t.Run("read failure", func(t *testing.T) {
		wService.EXPECT().Load(gomock.Any()).
			Return([]entity.WorkoutEntry{testEntry}, errors.Join(errorvalues.ErrStorageRead, errors.New("timeout")))
		rr := doRequest(serv, http.MethodGet, "/api/v1/workouts", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.WorkoutsResponse](t, rr)
		assert.False(t, resp.Loaded)
		assert.Len(t, resp.Workouts, 1)
	})
}

func TestGetProgress(t *testing.T) {
	serv, _, wService := newTestServer(t)
	progress := entity.Progress{
		Totals:   entity.Totals{Sessions: 1, Minutes: 30, Calories: 240},
		Workouts: []entity.WorkoutEntry{testEntry},
	}
	wService.EXPECT().Progress(gomock.Any()).Return(progress, nil)
	rr := doRequest(serv, http.MethodGet, "/api/v1/progress", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[api.ProgressResponse](t, rr)
	assert.True(t, resp.Loaded)
	assert.Equal(t, progress, resp.Progress)
}

func TestAPIWithMemoryStore(t *testing.T) {
	kv := repository.NewMemoryKV()
	settingsService := service.NewSettingsService(kv)
	serv := api.New(&api.ServicesList{
		SettingsService: settingsService,
		WorkoutService:  service.NewWorkoutService(kv),
	})
	t.Run("settings", func(t *testing.T) {
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"weightUnit":"lbs","restTime":60}`)
		require.Equal(t, http.StatusOK, rr.Code)
		rr = doRequest(serv, http.MethodPost, "/api/v1/settings/rest-time/cycle", "")
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.SettingsResponse](t, rr)
		assert.Equal(t, entity.RestTimeLong, resp.Settings.RestTime)
		assert.Equal(t, entity.WeightUnitLbs, resp.Settings.WeightUnit)
		assert.True(t, resp.Persisted)
	})
	t.Run("invalid rest time", func(t *testing.T) {
		rr := doRequest(serv, http.MethodPatch, "/api/v1/settings", `{"restTime":45}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	t.Run("workouts and progress", func(t *testing.T) {
		for _, w := range []string{`{"exercise":"Running","duration":"30"}`, `{"exercise":"Rowing","duration":"45"}`} {
			rr := httptest.NewRecorder()
			serv.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/workouts", bytes.NewBufferString(w)))
			require.Equal(t, http.StatusCreated, rr.Code)
		}
		rr := doRequest(serv, http.MethodPost, "/api/v1/workouts", `{"exercise":"","duration":"10"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		rr = doRequest(serv, http.MethodGet, "/api/v1/progress", "")
		resp := decode[api.ProgressResponse](t, rr)
		assert.Equal(t, entity.Totals{Sessions: 2, Minutes: 75, Calories: 600}, resp.Totals)
	})
	t.Run("settings survive reload", func(t *testing.T) {
		fresh := service.NewSettingsService(kv)
		require.NoError(t, fresh.Load(context.Background()))
		assert.Equal(t, settingsService.Settings(), fresh.Settings())
	})
}
