package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
	"github.com/slotbook/slotbook-api/pkg/export"
)

// ExportFile is a rendered agenda ready to stream to the client.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders a schedule's day agenda as CSV or PDF.
type ExportService struct {
	schedules    scheduleFinder
	appointments appointmentLister
	logger       *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleFinder, appointments appointmentLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{schedules: schedules, appointments: appointments, logger: logger}
}

// Render produces the agenda in the requested format ("csv" or "pdf").
func (s *ExportService) Render(ctx context.Context, scheduleID, format string) (*ExportFile, error) {
	schedule, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
	}
	models.SortAppointments(appointments)

	dataset := export.Dataset{
		Headers: []string{"Start", "End", "Name"},
		Rows:    make([]map[string]string, 0, len(appointments)),
	}
	for _, apt := range appointments {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Start": apt.StartTime.String(),
			"End":   apt.EndTime.String(),
			"Name":  apt.Name,
		})
	}

	switch format {
	case "csv", "":
		content, err := export.RenderCSV(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s-agenda.csv", schedule.ID),
		}, nil
	case "pdf":
		title := fmt.Sprintf("%s %s", schedule.Icon, schedule.Title)
		content, err := export.RenderPDF(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s-agenda.pdf", schedule.ID),
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
