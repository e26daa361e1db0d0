package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/slotbook/slotbook-api/internal/dto"
	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/palette"
	"github.com/slotbook/slotbook-api/internal/timegrid"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type scheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
}

type appointmentLister interface {
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.Appointment, error)
}

type configResolver interface {
	Resolve(ctx context.Context, scheduleID string, overrides ViewOverrides) (models.ViewConfig, error)
}

// ViewService derives the complete render model for a schedule: metadata,
// resolved view configuration, slot axis and positioned appointment blocks
// with stable colors. Nothing is cached between calls: the grid is cheap
// to recompute and the appointment list is always re-fetched as the source
// of truth.
type ViewService struct {
	schedules    scheduleReader
	appointments appointmentLister
	preferences  configResolver
	colors       *palette.Registry
	logger       *zap.Logger
}

// NewViewService constructs a ViewService.
func NewViewService(
	schedules scheduleReader,
	appointments appointmentLister,
	preferences configResolver,
	colors *palette.Registry,
	logger *zap.Logger,
) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		schedules:    schedules,
		appointments: appointments,
		preferences:  preferences,
		colors:       colors,
		logger:       logger,
	}
}

// BuildView fetches schedule metadata and appointments concurrently, then
// derives the grid. An unknown slug yields NotFound; any other fetch
// failure is internal.
func (s *ViewService) BuildView(ctx context.Context, scheduleID string, overrides ViewOverrides) (*dto.ScheduleView, error) {
	var (
		schedule     *models.Schedule
		appointments []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.schedules.FindByID(gctx, scheduleID)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
		}
		schedule = found
		return nil
	})
	g.Go(func() error {
		listed, err := s.appointments.ListBySchedule(gctx, scheduleID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointments")
		}
		appointments = listed
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cfg, err := s.preferences.Resolve(ctx, scheduleID, overrides)
	if err != nil {
		return nil, err
	}

	models.SortAppointments(appointments)
	view := &dto.ScheduleView{
		Schedule:     *schedule,
		Config:       cfg,
		Slots:        s.layout(scheduleID, cfg, appointments),
		Appointments: appointments,
	}
	return view, nil
}

// layout walks the slot axis and positions every occupied appointment in
// each row. The first occupied slot per appointment carries the label.
func (s *ViewService) layout(scheduleID string, cfg models.ViewConfig, appointments []models.Appointment) []dto.SlotView {
	assigner := s.colors.For(scheduleID)

	tracked := make(map[string]struct{}, len(appointments))
	for _, apt := range appointments {
		tracked[apt.ID] = struct{}{}
	}
	assigner.Forget(tracked)

	slots := timegrid.Slots(cfg.WindowStart, cfg.WindowEnd, cfg.GranularityMinutes)
	labeled := make(map[string]bool, len(appointments))

	views := make([]dto.SlotView, len(slots))
	for i, slotStart := range slots {
		view := dto.SlotView{Start: slotStart}
		for _, apt := range appointments {
			if !timegrid.OccupiesSlot(apt.Interval(), slotStart, cfg.GranularityMinutes) {
				continue
			}
			block := dto.AppointmentBlock{
				AppointmentID: apt.ID,
				Name:          apt.Name,
				StartTime:     apt.StartTime,
				EndTime:       apt.EndTime,
				First:         !labeled[apt.ID],
				Layout:        timegrid.LayoutWithinSlot(apt.Interval(), slotStart, cfg.GranularityMinutes),
				Color:         assigner.ColorFor(apt.ID),
			}
			labeled[apt.ID] = true
			view.Blocks = append(view.Blocks, block)
		}
		views[i] = view
	}
	return views
}
