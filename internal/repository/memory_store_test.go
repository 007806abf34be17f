package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/mediflow/mediflow/internal/model"
)

func TestMemoryAppointmentCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()

	t.Run("Create", func(t *testing.T) {
		a := &model.Appointment{
			PatientID:     1,
			DoctorID:      2,
			ScheduledDate: "2026-09-02",
			ScheduledTime: "09:00",
			Reason:        "Annual checkup",
		}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if a.ID != 1 {
			t.Fatalf("expected first id 1, got %d", a.ID)
		}
		if a.Status != model.AppointmentScheduled {
			t.Fatalf("expected default status scheduled, got %q", a.Status)
		}
		if a.CreatedAt.IsZero() {
			t.Fatal("expected CreatedAt to be stamped")
		}
	})

	t.Run("Create_AssignsMaxPlusOne", func(t *testing.T) {
		b := &model.Appointment{PatientID: 1, DoctorID: 2, ScheduledDate: "2026-09-03", ScheduledTime: "10:00"}
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if b.ID != 2 {
			t.Fatalf("expected id 2, got %d", b.ID)
		}

		// Removing a lower id must not cause reuse of a higher one
		if err := repo.Delete(ctx, 1); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		c := &model.Appointment{PatientID: 3, DoctorID: 2, ScheduledDate: "2026-09-04", ScheduledTime: "11:00"}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if c.ID != 3 {
			t.Fatalf("expected id 3 after deleting id 1, got %d", c.ID)
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		a, err := repo.GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if a.ScheduledDate != "2026-09-03" {
			t.Fatalf("unexpected appointment: %+v", a)
		}
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update_MergesPartialFields", func(t *testing.T) {
		status := model.AppointmentCompleted
		notes := "patient arrived early"
		a, err := repo.Update(ctx, 2, &model.AppointmentPatch{Status: &status, Notes: &notes})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if a.Status != model.AppointmentCompleted {
			t.Fatalf("expected status completed, got %q", a.Status)
		}
		if a.Notes != notes {
			t.Fatalf("expected notes merged, got %q", a.Notes)
		}
		// Untouched fields survive the merge
		if a.ScheduledDate != "2026-09-03" || a.PatientID != 1 {
			t.Fatalf("unpatched fields changed: %+v", a)
		}
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		reason := "x"
		if _, err := repo.Update(ctx, 999, &model.AppointmentPatch{Reason: &reason}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		if err := repo.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMemoryAppointmentQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAppointmentRepository()

	seed := []model.Appointment{
		{PatientID: 1, DoctorID: 1, ScheduledDate: "2026-09-02", ScheduledTime: "09:00"},
		{PatientID: 2, DoctorID: 1, ScheduledDate: "2026-09-02", ScheduledTime: "14:30"},
		{PatientID: 1, DoctorID: 2, ScheduledDate: "2026-09-05", ScheduledTime: "09:00"},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	t.Run("GetByDate", func(t *testing.T) {
		got, err := repo.GetByDate(ctx, "2026-09-02")
		if err != nil {
			t.Fatalf("GetByDate: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 appointments, got %d", len(got))
		}
	})

	t.Run("GetByDate_NoMatch", func(t *testing.T) {
		got, err := repo.GetByDate(ctx, "2030-01-01")
		if err != nil {
			t.Fatalf("GetByDate: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no appointments, got %d", len(got))
		}
	})

	t.Run("GetByPatient", func(t *testing.T) {
		got, err := repo.GetByPatient(ctx, 1)
		if err != nil {
			t.Fatalf("GetByPatient: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 appointments, got %d", len(got))
		}
		for _, a := range got {
			if a.PatientID != 1 {
				t.Fatalf("wrong patient: %+v", a)
			}
		}
	})

	t.Run("List_ReturnsCopy", func(t *testing.T) {
		got, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		got[0].Reason = "mutated"
		again, _ := repo.List(ctx)
		if again[0].Reason == "mutated" {
			t.Fatal("List must not expose internal storage")
		}
	})
}

func TestMemoryPatientAndDoctorLookups(t *testing.T) {
	ctx := context.Background()
	patients := NewMemoryPatientRepository()
	doctors := NewMemoryDoctorRepository()

	patients.patients = append(patients.patients, model.Patient{ID: 7, Name: "Jane Doe", Email: "a@b.com"})
	doctors.doctors = append(doctors.doctors, model.Doctor{ID: 3, Name: "Dr. Smith", Specialization: "Cardiology"})

	p, err := patients.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("patient GetByID: %v", err)
	}
	if p.Name != "Jane Doe" {
		t.Fatalf("unexpected patient: %+v", p)
	}

	if _, err := patients.GetByID(ctx, 8); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	d, err := doctors.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("doctor GetByID: %v", err)
	}
	if d.Specialization != "Cardiology" {
		t.Fatalf("unexpected doctor: %+v", d)
	}

	if _, err := doctors.GetByID(ctx, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
