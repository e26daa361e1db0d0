package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/slotbook/slotbook-api/internal/models"
	"github.com/slotbook/slotbook-api/internal/palette"
	"github.com/slotbook/slotbook-api/internal/timegrid"
	appErrors "github.com/slotbook/slotbook-api/pkg/errors"
)

type appointmentRepoStub struct {
	items       []models.Appointment
	listErr     error
	createErr   error
	deleteErr   error
	created     []*models.Appointment
	deleteCalls []string
}

func (s *appointmentRepoStub) ListBySchedule(ctx context.Context, scheduleID string) ([]models.Appointment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]models.Appointment, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *appointmentRepoStub) Create(ctx context.Context, appointment *models.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	if appointment.ID == "" {
		appointment.ID = "generated-id"
	}
	s.created = append(s.created, appointment)
	s.items = append(s.items, *appointment)
	return nil
}

func (s *appointmentRepoStub) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	s.deleteCalls = append(s.deleteCalls, scheduleID)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.items = nil
	return nil
}

type scheduleFinderStub struct {
	schedule *models.Schedule
	err      error
}

func (s scheduleFinderStub) Get(ctx context.Context, id string) (*models.Schedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	return s.schedule, nil
}

type bookingRecorderStub struct {
	outcomes []string
}

func (s *bookingRecorderStub) RecordBooking(outcome string) {
	s.outcomes = append(s.outcomes, outcome)
}

func tod(t *testing.T, raw string) timegrid.TimeOfDay {
	t.Helper()
	parsed, err := timegrid.ParseTimeOfDay(raw)
	require.NoError(t, err)
	return parsed
}

func appointmentAt(t *testing.T, id, start, end string) models.Appointment {
	t.Helper()
	return models.Appointment{
		ID:         id,
		ScheduleID: "brave-otter-07",
		Name:       id,
		StartTime:  tod(t, start),
		EndTime:    tod(t, end),
	}
}

func newAppointmentService(repo *appointmentRepoStub, recorder *bookingRecorderStub) *AppointmentService {
	return NewAppointmentService(
		repo,
		scheduleFinderStub{schedule: &models.Schedule{ID: "brave-otter-07"}},
		palette.NewRegistry(rand.New(rand.NewSource(1))),
		nil,
		recorder,
		zap.NewNop(),
	)
}

func TestAppointmentServiceBook(t *testing.T) {
	repo := &appointmentRepoStub{}
	recorder := &bookingRecorderStub{}
	service := newAppointmentService(repo, recorder)

	apt, err := service.Book(context.Background(), "brave-otter-07", BookAppointmentRequest{
		Name:            "Alice",
		StartTime:       "09:30",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, tod(t, "09:30"), apt.StartTime)
	assert.Equal(t, tod(t, "10:00"), apt.EndTime)
	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{"accepted"}, recorder.outcomes)
}

func TestAppointmentServiceBookConflict(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{appointmentAt(t, "alice", "09:30", "10:00")},
	}
	recorder := &bookingRecorderStub{}
	service := newAppointmentService(repo, recorder)

	// 09:45-10:15 overlaps 09:30-10:00.
	_, err := service.Book(context.Background(), "brave-otter-07", BookAppointmentRequest{
		Name:            "Bob",
		StartTime:       "09:45",
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotTaken.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
	assert.Equal(t, []string{"conflict"}, recorder.outcomes)
}

func TestAppointmentServiceBookTouchingEndpoints(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{appointmentAt(t, "alice", "09:30", "10:00")},
	}
	service := newAppointmentService(repo, &bookingRecorderStub{})

	// Back to back is not a conflict: intervals are half-open.
	apt, err := service.Book(context.Background(), "brave-otter-07", BookAppointmentRequest{
		Name:            "Bob",
		StartTime:       "10:00",
		DurationMinutes: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, tod(t, "10:15"), apt.EndTime)
}

func TestAppointmentServiceBookValidation(t *testing.T) {
	repo := &appointmentRepoStub{}
	service := newAppointmentService(repo, &bookingRecorderStub{})

	cases := []struct {
		name string
		req  BookAppointmentRequest
	}{
		{"missing name", BookAppointmentRequest{StartTime: "09:00", DurationMinutes: 30}},
		{"whitespace-only name", BookAppointmentRequest{Name: "   ", StartTime: "09:00", DurationMinutes: 30}},
		{"zero duration", BookAppointmentRequest{Name: "Bob", StartTime: "09:00"}},
		{"negative duration", BookAppointmentRequest{Name: "Bob", StartTime: "09:00", DurationMinutes: -15}},
		{"bad start format", BookAppointmentRequest{Name: "Bob", StartTime: "9 o'clock", DurationMinutes: 30}},
		{"past midnight", BookAppointmentRequest{Name: "Bob", StartTime: "23:30", DurationMinutes: 45}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Book(context.Background(), "brave-otter-07", tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
	assert.Empty(t, repo.created)
}

func TestAppointmentServiceBookUnknownSchedule(t *testing.T) {
	service := NewAppointmentService(
		&appointmentRepoStub{},
		scheduleFinderStub{},
		palette.NewRegistry(rand.New(rand.NewSource(1))),
		nil, nil, zap.NewNop(),
	)

	_, err := service.Book(context.Background(), "missing-moose-99", BookAppointmentRequest{
		Name:            "Bob",
		StartTime:       "09:00",
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAppointmentServiceListSorted(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{
			appointmentAt(t, "late", "14:00", "15:00"),
			appointmentAt(t, "early", "09:00", "09:30"),
		},
	}
	service := newAppointmentService(repo, nil)

	listed, err := service.List(context.Background(), "brave-otter-07")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "early", listed[0].ID)
	assert.Equal(t, "late", listed[1].ID)
}

func TestAppointmentServiceDeleteAll(t *testing.T) {
	repo := &appointmentRepoStub{
		items: []models.Appointment{appointmentAt(t, "alice", "09:30", "10:00")},
	}
	colors := palette.NewRegistry(rand.New(rand.NewSource(1)))
	service := NewAppointmentService(repo, scheduleFinderStub{schedule: &models.Schedule{ID: "brave-otter-07"}}, colors, nil, nil, zap.NewNop())

	before := colors.For("brave-otter-07").ColorFor("alice")

	require.NoError(t, service.DeleteAll(context.Background(), "brave-otter-07"))
	assert.Equal(t, []string{"brave-otter-07"}, repo.deleteCalls)

	// Clearing the board also discards the color assignments.
	after := colors.For("brave-otter-07").ColorFor("alice")
	assert.NotEqual(t, before, after)

	// Deleting again on an already empty schedule is fine.
	require.NoError(t, service.DeleteAll(context.Background(), "brave-otter-07"))
}
