package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/model"
	"github.com/mediflow/mediflow/internal/repository"
)

// DefaultReminderHorizon is the lookahead window used when a caller does
// not specify one.
const DefaultReminderHorizon = 24 * time.Hour

// AppointmentService orchestrates appointment store operations and the
// reminder window selection.
type AppointmentService struct {
	appts repository.AppointmentRepository
	log   *logger.Logger
	now   func() time.Time
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appts repository.AppointmentRepository, log *logger.Logger) *AppointmentService {
	return &AppointmentService{
		appts: appts,
		log:   log.WithComponent("appointments"),
		now:   time.Now,
	}
}

// List retrieves all appointments
func (s *AppointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	return s.appts.List(ctx)
}

// Get retrieves an appointment by ID
func (s *AppointmentService) Get(ctx context.Context, id int) (*model.Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// Create stores a new appointment. The store assigns the ID, defaults the
// status to scheduled and stamps CreatedAt.
func (s *AppointmentService) Create(ctx context.Context, a *model.Appointment) error {
	if a.Status != "" && !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", repository.ErrInvalidInput, a.Status)
	}
	if _, err := time.Parse(model.DateLayout, a.ScheduledDate); err != nil {
		return fmt.Errorf("%w: scheduledDate must be %s", repository.ErrInvalidInput, model.DateLayout)
	}
	if _, err := time.Parse(model.TimeLayout, a.ScheduledTime); err != nil {
		return fmt.Errorf("%w: scheduledTime must be %s", repository.ErrInvalidInput, model.TimeLayout)
	}

	if err := s.appts.Create(ctx, a); err != nil {
		return err
	}

	s.log.Info().
		Int("appointment_id", a.ID).
		Int("patient_id", a.PatientID).
		Int("doctor_id", a.DoctorID).
		Str("date", a.ScheduledDate).
		Str("time", a.ScheduledTime).
		Msg("appointment created")

	return nil
}

// Update merges a partial patch into an appointment
func (s *AppointmentService) Update(ctx context.Context, id int, patch *model.AppointmentPatch) (*model.Appointment, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", repository.ErrInvalidInput, *patch.Status)
	}
	if patch.ScheduledDate != nil {
		if _, err := time.Parse(model.DateLayout, *patch.ScheduledDate); err != nil {
			return nil, fmt.Errorf("%w: scheduledDate must be %s", repository.ErrInvalidInput, model.DateLayout)
		}
	}
	if patch.ScheduledTime != nil {
		if _, err := time.Parse(model.TimeLayout, *patch.ScheduledTime); err != nil {
			return nil, fmt.Errorf("%w: scheduledTime must be %s", repository.ErrInvalidInput, model.TimeLayout)
		}
	}

	a, err := s.appts.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("appointment_id", id).Msg("appointment updated")
	return a, nil
}

// Delete removes an appointment by ID
func (s *AppointmentService) Delete(ctx context.Context, id int) error {
	if err := s.appts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("appointment_id", id).Msg("appointment deleted")
	return nil
}

// ByDate retrieves appointments on an exact calendar date
func (s *AppointmentService) ByDate(ctx context.Context, date string) ([]model.Appointment, error) {
	return s.appts.GetByDate(ctx, date)
}

// ByPatient retrieves a patient's appointments
func (s *AppointmentService) ByPatient(ctx context.Context, patientID int) ([]model.Appointment, error) {
	return s.appts.GetByPatient(ctx, patientID)
}

// Today retrieves appointments on the current calendar date in the local
// time zone.
func (s *AppointmentService) Today(ctx context.Context) ([]model.Appointment, error) {
	return s.appts.GetByDate(ctx, s.now().Format(model.DateLayout))
}

// UpcomingReminders selects the appointments eligible for reminder
// dispatch: scheduled status only, with a start instant strictly after now
// and no later than now+horizon. Order of the result is not guaranteed.
func (s *AppointmentService) UpcomingReminders(ctx context.Context, horizon time.Duration) ([]model.Appointment, error) {
	if horizon <= 0 {
		horizon = DefaultReminderHorizon
	}

	all, err := s.appts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	now := s.now()
	limit := now.Add(horizon)

	var out []model.Appointment
	for _, a := range all {
		if a.Status != model.AppointmentScheduled {
			continue
		}
		start, err := a.StartTime()
		if err != nil {
			s.log.Warn().Err(err).Int("appointment_id", a.ID).Msg("skipping appointment with unparseable schedule")
			continue
		}
		if start.After(now) && !start.After(limit) {
			out = append(out, a)
		}
	}
	return out, nil
}
