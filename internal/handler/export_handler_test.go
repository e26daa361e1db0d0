package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slotbook/slotbook-api/internal/service"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type exportServiceMock struct {
	file       *service.ExportFile
	err        error
	lastFormat string
}

func (m *exportServiceMock) Render(ctx context.Context, scheduleID, format string) (*service.ExportFile, error) {
	m.lastFormat = format
	return m.file, m.err
}

func exportHandlers(svc exportService) Handlers {
	h := scheduleOnlyHandlers(&scheduleServiceMock{})
	h.Exports = NewExportHandler(svc)
	return h
}

func TestExportHandlerDownload(t *testing.T) {
	mockSvc := &exportServiceMock{
		file: &service.ExportFile{
			Content:     []byte("Start,End,Name\n"),
			ContentType: "text/csv",
			Filename:    "brave-otter-07-agenda.csv",
		},
	}
	r := newTestRouter(exportHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/schedules/brave-otter-07/export?format=csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "csv", mockSvc.lastFormat)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "brave-otter-07-agenda.csv")
}

func TestExportHandlerUnsupportedFormat(t *testing.T) {
	mockSvc := &exportServiceMock{err: appErrors.ErrValidation}
	r := newTestRouter(exportHandlers(mockSvc))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/schedules/brave-otter-07/export?format=xlsx", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandlerNotMounted(t *testing.T) {
	// Exports can be disabled by configuration; the route then 404s.
	r := newTestRouter(scheduleOnlyHandlers(&scheduleServiceMock{}))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/schedules/brave-otter-07/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
