package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

func newExportService(repo *appointmentRepoStub) *ExportService {
	finder := scheduleFinderStub{schedule: &models.Schedule{ID: "brave-otter-07", Title: "Standup", Icon: "📅"}}
	return NewExportService(finder, repo, zap.NewNop())
}

func TestExportServiceRenderCSV(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{
			appointmentAt(t, "late", "14:00", "15:00"),
			appointmentAt(t, "early", "09:00", "09:30"),
		},
	}
	service := newExportService(repo)

	file, err := service.Render(context.Background(), "brave-otter-07", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "brave-otter-07-agenda.csv", file.Filename)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Start,End,Name", strings.TrimSpace(lines[0]))
	// Rows come out in chronological order regardless of store order.
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "09:00"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "14:00"))
}

func TestExportServiceRenderDefaultsToCSV(t *testing.T) {
	service := newExportService(&appointmentRepoStub{})

	file, err := service.Render(context.Background(), "brave-otter-07", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
}

func TestExportServiceRenderPDF(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{appointmentAt(t, "alice", "09:30", "10:00")},
	}
	service := newExportService(repo)

	file, err := service.Render(context.Background(), "brave-otter-07", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "brave-otter-07-agenda.pdf", file.Filename)
	assert.True(t, strings.HasPrefix(string(file.Content), "%PDF"))
}

func TestExportServiceRenderUnknownFormat(t *testing.T) {
	service := newExportService(&appointmentRepoStub{})

	_, err := service.Render(context.Background(), "brave-otter-07", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRenderUnknownSchedule(t *testing.T) {
	service := NewExportService(scheduleFinderStub{}, &appointmentRepoStub{}, zap.NewNop())

	_, err := service.Render(context.Background(), "missing-moose-99", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
