package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/model"
	"github.com/mediflow/mediflow/internal/repository"
)

func testLogger() *logger.Logger {
	return logger.New("disabled", "json")
}

func mustCreate(t *testing.T, repo repository.AppointmentRepository, a model.Appointment) model.Appointment {
	t.Helper()
	if err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestAppointmentServiceCreateValidation(t *testing.T) {
	svc := NewAppointmentService(repository.NewMemoryAppointmentRepository(), testLogger())
	ctx := context.Background()

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		err := svc.Create(ctx, &model.Appointment{
			PatientID: 1, DoctorID: 1,
			ScheduledDate: "2026-09-02", ScheduledTime: "09:00",
			Status: "archived",
		})
		if !errors.Is(err, repository.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("RejectsBadDate", func(t *testing.T) {
		err := svc.Create(ctx, &model.Appointment{
			PatientID: 1, DoctorID: 1,
			ScheduledDate: "02/09/2026", ScheduledTime: "09:00",
		})
		if !errors.Is(err, repository.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("RejectsBadTime", func(t *testing.T) {
		err := svc.Create(ctx, &model.Appointment{
			PatientID: 1, DoctorID: 1,
			ScheduledDate: "2026-09-02", ScheduledTime: "9am",
		})
		if !errors.Is(err, repository.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("AcceptsValid", func(t *testing.T) {
		a := &model.Appointment{
			PatientID: 1, DoctorID: 1,
			ScheduledDate: "2026-09-02", ScheduledTime: "09:00",
		}
		if err := svc.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if a.ID == 0 {
			t.Fatal("expected assigned id")
		}
	})
}

func TestAppointmentServiceUpdateValidation(t *testing.T) {
	repo := repository.NewMemoryAppointmentRepository()
	svc := NewAppointmentService(repo, testLogger())
	ctx := context.Background()

	a := mustCreate(t, repo, model.Appointment{
		PatientID: 1, DoctorID: 1,
		ScheduledDate: "2026-09-02", ScheduledTime: "09:00",
	})

	bad := model.AppointmentStatus("archived")
	if _, err := svc.Update(ctx, a.ID, &model.AppointmentPatch{Status: &bad}); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	badDate := "tomorrow"
	if _, err := svc.Update(ctx, a.ID, &model.AppointmentPatch{ScheduledDate: &badDate}); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	good := model.AppointmentCancelled
	updated, err := svc.Update(ctx, a.ID, &model.AppointmentPatch{Status: &good})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != model.AppointmentCancelled {
		t.Fatalf("expected cancelled, got %q", updated.Status)
	}
}

func TestAppointmentServiceToday(t *testing.T) {
	repo := repository.NewMemoryAppointmentRepository()
	svc := NewAppointmentService(repo, testLogger())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local) }
	ctx := context.Background()

	mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "14:00"})
	mustCreate(t, repo, model.Appointment{PatientID: 2, DoctorID: 1, ScheduledDate: "2024-06-02", ScheduledTime: "09:00"})

	got, err := svc.Today(ctx)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if len(got) != 1 || got[0].ScheduledDate != "2024-06-01" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpcomingReminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)

	newSvc := func(t *testing.T) (*AppointmentService, *repository.MemoryAppointmentRepository) {
		repo := repository.NewMemoryAppointmentRepository()
		svc := NewAppointmentService(repo, testLogger())
		svc.now = func() time.Time { return now }
		return svc, repo
	}

	t.Run("WindowBoundaries", func(t *testing.T) {
		svc, repo := newSvc(t)
		mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "07:00"}) // past
		atNow := mustCreate(t, repo, model.Appointment{PatientID: 2, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "08:00"})
		inside := mustCreate(t, repo, model.Appointment{PatientID: 3, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "09:00"})
		atLimit := mustCreate(t, repo, model.Appointment{PatientID: 4, DoctorID: 1, ScheduledDate: "2024-06-02", ScheduledTime: "08:00"})
		mustCreate(t, repo, model.Appointment{PatientID: 5, DoctorID: 1, ScheduledDate: "2024-06-02", ScheduledTime: "08:01"}) // past limit

		got, err := svc.UpcomingReminders(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("UpcomingReminders: %v", err)
		}

		ids := make(map[int]bool, len(got))
		for _, a := range got {
			ids[a.ID] = true
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 eligible appointments, got %d: %+v", len(got), got)
		}
		// Start exactly at now is excluded, start exactly at the limit is included
		if ids[atNow.ID] {
			t.Error("appointment starting at now must be excluded")
		}
		if !ids[inside.ID] || !ids[atLimit.ID] {
			t.Errorf("expected ids %d and %d, got %v", inside.ID, atLimit.ID, ids)
		}
	})

	t.Run("OnlyScheduledStatus", func(t *testing.T) {
		svc, repo := newSvc(t)
		for _, st := range []model.AppointmentStatus{
			model.AppointmentInProgress,
			model.AppointmentCompleted,
			model.AppointmentCancelled,
		} {
			mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "10:00", Status: st})
		}
		keep := mustCreate(t, repo, model.Appointment{PatientID: 2, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "10:00"})

		got, err := svc.UpcomingReminders(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("UpcomingReminders: %v", err)
		}
		if len(got) != 1 || got[0].ID != keep.ID {
			t.Fatalf("expected only the scheduled appointment, got %+v", got)
		}
	})

	t.Run("CustomHorizon", func(t *testing.T) {
		svc, repo := newSvc(t)
		near := mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "09:30"})
		mustCreate(t, repo, model.Appointment{PatientID: 2, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "11:00"})

		got, err := svc.UpcomingReminders(ctx, 2*time.Hour)
		if err != nil {
			t.Fatalf("UpcomingReminders: %v", err)
		}
		if len(got) != 1 || got[0].ID != near.ID {
			t.Fatalf("expected only the near appointment, got %+v", got)
		}
	})

	t.Run("NonPositiveHorizonDefaults", func(t *testing.T) {
		svc, repo := newSvc(t)
		mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "12:00"})

		got, err := svc.UpcomingReminders(ctx, 0)
		if err != nil {
			t.Fatalf("UpcomingReminders: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected default 24h window to apply, got %+v", got)
		}
	})

	t.Run("SkipsUnparseableSchedule", func(t *testing.T) {
		svc, repo := newSvc(t)
		// Written straight to the store, bypassing service validation
		mustCreate(t, repo, model.Appointment{PatientID: 1, DoctorID: 1, ScheduledDate: "junk", ScheduledTime: "09:00"})
		keep := mustCreate(t, repo, model.Appointment{PatientID: 2, DoctorID: 1, ScheduledDate: "2024-06-01", ScheduledTime: "09:00"})

		got, err := svc.UpcomingReminders(ctx, 24*time.Hour)
		if err != nil {
			t.Fatalf("UpcomingReminders: %v", err)
		}
		if len(got) != 1 || got[0].ID != keep.ID {
			t.Fatalf("expected the unparseable appointment to be skipped, got %+v", got)
		}
	})
}
