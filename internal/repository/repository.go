package repository

import (
	"context"

	"github.com/mediflow/mediflow/internal/model"
)

// AppointmentRepository defines the appointment store operations.
// Implementations exist for the in-memory store and PostgreSQL; consumers
// receive one of them at construction and never reach for a global.
type AppointmentRepository interface {
	// List retrieves all appointments
	List(ctx context.Context) ([]model.Appointment, error)

	// GetByID retrieves an appointment, ErrNotFound when absent
	GetByID(ctx context.Context, id int) (*model.Appointment, error)

	// Create stores a new appointment, assigning the next ID, defaulting
	// the status to scheduled and stamping CreatedAt
	Create(ctx context.Context, a *model.Appointment) error

	// Update merges a partial patch, ErrNotFound when absent
	Update(ctx context.Context, id int, patch *model.AppointmentPatch) (*model.Appointment, error)

	// Delete removes an appointment, ErrNotFound when absent
	Delete(ctx context.Context, id int) error

	// GetByDate retrieves appointments on an exact calendar date
	GetByDate(ctx context.Context, date string) ([]model.Appointment, error)

	// GetByPatient retrieves a patient's appointments
	GetByPatient(ctx context.Context, patientID int) ([]model.Appointment, error)
}

// PatientRepository exposes the patient lookups the reminder core needs
type PatientRepository interface {
	List(ctx context.Context) ([]model.Patient, error)
	GetByID(ctx context.Context, id int) (*model.Patient, error)
}

// DoctorRepository exposes the doctor lookups the reminder core needs
type DoctorRepository interface {
	List(ctx context.Context) ([]model.Doctor, error)
	GetByID(ctx context.Context, id int) (*model.Doctor, error)
}
