package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/service"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

func newTestRouter(h Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

type scheduleServiceMock struct {
	schedule     *models.Schedule
	err          error
	deleteCalled bool
}

func (m *scheduleServiceMock) Get(ctx context.Context, id string) (*models.Schedule, error) {
	return m.schedule, m.err
}

func (m *scheduleServiceMock) Create(ctx context.Context, req service.CreateScheduleRequest) (*models.Schedule, error) {
	return m.schedule, m.err
}

func (m *scheduleServiceMock) Delete(ctx context.Context, id string) error {
	m.deleteCalled = true
	return m.err
}

func scheduleOnlyHandlers(svc scheduleService) Handlers {
	return Handlers{
		Schedules:    NewScheduleHandler(svc),
		Appointments: NewAppointmentHandler(&appointmentServiceMock{}),
		Views:        NewViewHandler(&viewServiceMock{}),
		Preferences:  NewPreferenceHandler(&preferenceAPIMock{}, &scheduleServiceMock{}),
	}
}

func TestScheduleHandlerCreate(t *testing.T) {
	mockSvc := &scheduleServiceMock{schedule: &models.Schedule{ID: "brave-otter-07", Title: "Standup"}}
	r := newTestRouter(scheduleOnlyHandlers(mockSvc))

	body := []byte(`{"title":"Standup"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "brave-otter-07")
}

func TestScheduleHandlerCreateInvalidBody(t *testing.T) {
	r := newTestRouter(scheduleOnlyHandlers(&scheduleServiceMock{}))

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/schedules", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerGet(t *testing.T) {
	mockSvc := &scheduleServiceMock{schedule: &models.Schedule{ID: "brave-otter-07", Title: "Standup"}}
	r := newTestRouter(scheduleOnlyHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/schedules/brave-otter-07", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Standup")
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	mockSvc := &scheduleServiceMock{err: appErrors.ErrNotFound}
	r := newTestRouter(scheduleOnlyHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/schedules/missing-moose-99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrNotFound.Code)
}

func TestScheduleHandlerDelete(t *testing.T) {
	mockSvc := &scheduleServiceMock{schedule: &models.Schedule{ID: "brave-otter-07"}}
	r := newTestRouter(scheduleOnlyHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/schedules/brave-otter-07", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.True(t, mockSvc.deleteCalled)
}

func TestScheduleHandlerDeletePartial(t *testing.T) {
	mockSvc := &scheduleServiceMock{err: appErrors.ErrPartiallyDeleted}
	r := newTestRouter(scheduleOnlyHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/schedules/brave-otter-07", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), appErrors.ErrPartiallyDeleted.Code)
}
