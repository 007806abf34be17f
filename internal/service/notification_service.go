package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/model"
	"github.com/mediflow/mediflow/internal/repository"
)

// NotificationStats summarizes the tracked notification states
type NotificationStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// BatchItemResult reports the outcome of one send within a batch dispatch
type BatchItemResult struct {
	AppointmentID int                      `json:"appointmentId"`
	Status        model.NotificationStatus `json:"status"`
	Error         string                   `json:"error,omitempty"`
}

// NotificationService tracks per-appointment notification state and drives
// single and batch dispatch through the delivery gateway. State lives in
// memory and is rebuilt on every window load; it is never persisted.
type NotificationService struct {
	mu      sync.Mutex
	tracked map[int]*model.Notification
	order   []int

	appointments *AppointmentService
	patients     repository.PatientRepository
	doctors      repository.DoctorRepository
	gateway      *DeliveryGateway
	batchPause   time.Duration
	log          *logger.Logger
	now          func() time.Time
}

// NewNotificationService creates a new NotificationService. batchPause is
// the pause between successive sends in a batch; values <= 0 fall back to
// one second.
func NewNotificationService(
	appointments *AppointmentService,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	gateway *DeliveryGateway,
	batchPause time.Duration,
	log *logger.Logger,
) *NotificationService {
	if batchPause <= 0 {
		batchPause = time.Second
	}
	return &NotificationService{
		tracked:      make(map[int]*model.Notification),
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		gateway:      gateway,
		batchPause:   batchPause,
		log:          log.WithComponent("notifications"),
		now:          time.Now,
	}
}

// LoadWindow rebuilds the tracked set from the appointments inside the
// reminder window. Every entry starts out pending; earlier state is
// discarded, since a notification only reflects its latest delivery
// outcome. The result is sorted by scheduled instant for display.
func (s *NotificationService) LoadWindow(ctx context.Context, horizon time.Duration) ([]model.Notification, error) {
	upcoming, err := s.appointments.UpcomingReminders(ctx, horizon)
	if err != nil {
		return nil, fmt.Errorf("select reminder window: %w", err)
	}

	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	patientByID := make(map[int]model.Patient, len(patients))
	for _, p := range patients {
		patientByID[p.ID] = p
	}
	doctorByID := make(map[int]model.Doctor, len(doctors))
	for _, d := range doctors {
		doctorByID[d.ID] = d
	}

	// Callers must not rely on selector order, so sort explicitly.
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].ScheduledDate != upcoming[j].ScheduledDate {
			return upcoming[i].ScheduledDate < upcoming[j].ScheduledDate
		}
		return upcoming[i].ScheduledTime < upcoming[j].ScheduledTime
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracked = make(map[int]*model.Notification, len(upcoming))
	s.order = s.order[:0]

	for _, a := range upcoming {
		n := &model.Notification{
			AppointmentID: a.ID,
			PatientName:   "Unknown",
			DoctorName:    "Unknown",
			ScheduledDate: a.ScheduledDate,
			ScheduledTime: a.ScheduledTime,
			Status:        model.NotificationPending,
		}
		if p, ok := patientByID[a.PatientID]; ok {
			n.PatientName = p.Name
			n.PatientEmail = p.Email
		}
		if d, ok := doctorByID[a.DoctorID]; ok {
			n.DoctorName = d.Name
		}
		s.tracked[a.ID] = n
		s.order = append(s.order, a.ID)
	}

	s.log.Info().Int("count", len(s.order)).Dur("horizon", horizon).Msg("reminder window loaded")

	return s.snapshotLocked(), nil
}

// Notifications returns the tracked notifications in window order
func (s *NotificationService) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Stats returns counts per notification status
func (s *NotificationService) Stats() NotificationStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := NotificationStats{Total: len(s.order)}
	for _, id := range s.order {
		switch s.tracked[id].Status {
		case model.NotificationPending:
			stats.Pending++
		case model.NotificationSent:
			stats.Sent++
		case model.NotificationFailed:
			stats.Failed++
		}
	}
	return stats
}

// SendReminder dispatches a single notification for an appointment and
// records the outcome. It serves first sends and user-initiated resends
// alike: resending from sent is allowed and refreshes SentAt on success,
// and a failed entry that succeeds on retry transitions back to sent.
// Appointments not present in the tracked window are resolved from the
// stores on the fly.
func (s *NotificationService) SendReminder(ctx context.Context, appointmentID int, typ model.NotificationType) (*model.Notification, *model.Outcome, error) {
	n, err := s.resolve(ctx, appointmentID)
	if err != nil {
		return nil, nil, err
	}

	req := &model.ReminderRequest{
		AppointmentID: n.AppointmentID,
		PatientEmail:  n.PatientEmail,
		PatientName:   n.PatientName,
		DoctorName:    n.DoctorName,
		Date:          n.ScheduledDate,
		Time:          n.ScheduledTime,
		Type:          string(typ),
	}

	outcome := s.gateway.Send(ctx, req)

	s.mu.Lock()
	tracked, ok := s.tracked[appointmentID]
	if !ok {
		tracked = n
		s.tracked[appointmentID] = tracked
		s.order = append(s.order, appointmentID)
	}
	s.applyOutcomeLocked(tracked, outcome)
	result := *tracked
	s.mu.Unlock()

	return &result, outcome, nil
}

// SendAllPending dispatches every notification that was pending when the
// batch began, sequentially, pausing between successive sends to avoid
// bursting the mail transport. A failed item does not halt the batch.
// Entries turning pending after the snapshot are not part of this run. The
// context is honored between iterations, so a cancelled batch stops before
// its next send.
func (s *NotificationService) SendAllPending(ctx context.Context) ([]BatchItemResult, error) {
	s.mu.Lock()
	var pending []int
	for _, id := range s.order {
		if s.tracked[id].Status == model.NotificationPending {
			pending = append(pending, id)
		}
	}
	s.mu.Unlock()

	s.log.Info().Int("pending", len(pending)).Msg("batch dispatch started")

	results := make([]BatchItemResult, 0, len(pending))
	for i, id := range pending {
		if i > 0 {
			select {
			case <-time.After(s.batchPause):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		n, _, err := s.SendReminder(ctx, id, model.NotificationReminder)
		if err != nil {
			// The appointment vanished between snapshot and send.
			results = append(results, BatchItemResult{
				AppointmentID: id,
				Status:        model.NotificationFailed,
				Error:         err.Error(),
			})
			continue
		}
		results = append(results, BatchItemResult{
			AppointmentID: id,
			Status:        n.Status,
			Error:         n.Error,
		})
	}

	s.log.Info().Int("attempted", len(results)).Msg("batch dispatch finished")

	return results, nil
}

// resolve returns a copy of the tracked notification, or reconstructs one
// from the stores when the appointment is not in the current window.
func (s *NotificationService) resolve(ctx context.Context, appointmentID int) (*model.Notification, error) {
	s.mu.Lock()
	if n, ok := s.tracked[appointmentID]; ok {
		copied := *n
		s.mu.Unlock()
		return &copied, nil
	}
	s.mu.Unlock()

	a, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", appointmentID, err)
	}

	n := &model.Notification{
		AppointmentID: a.ID,
		PatientName:   "Unknown",
		DoctorName:    "Unknown",
		ScheduledDate: a.ScheduledDate,
		ScheduledTime: a.ScheduledTime,
		Status:        model.NotificationPending,
	}
	if p, err := s.patients.GetByID(ctx, a.PatientID); err == nil {
		n.PatientName = p.Name
		n.PatientEmail = p.Email
	}
	if d, err := s.doctors.GetByID(ctx, a.DoctorID); err == nil {
		n.DoctorName = d.Name
	}
	return n, nil
}

// applyOutcomeLocked advances the notification state machine. Success
// always lands on sent with a fresh SentAt and a cleared error. Failure
// moves pending and failed entries to failed with the classified error;
// there is no transition out of sent on a failed resend.
func (s *NotificationService) applyOutcomeLocked(n *model.Notification, outcome *model.Outcome) {
	if outcome.Success {
		at := s.now()
		n.Status = model.NotificationSent
		n.SentAt = &at
		n.Error = ""
		return
	}

	if n.Status == model.NotificationSent {
		return
	}
	n.Status = model.NotificationFailed
	n.Error = outcome.Error
}

func (s *NotificationService) snapshotLocked() []model.Notification {
	out := make([]model.Notification, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tracked[id])
	}
	return out
}
