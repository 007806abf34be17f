package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mediflow/mediflow/internal/model"
)

// MemoryAppointmentRepository is an in-memory appointment store. The
// business model assumes a single logical caller, but the HTTP server
// serves requests concurrently, so access is still guarded.
type MemoryAppointmentRepository struct {
	mu           sync.RWMutex
	appointments []model.Appointment
}

// NewMemoryAppointmentRepository creates an empty in-memory store
func NewMemoryAppointmentRepository() *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{}
}

// List retrieves all appointments
func (r *MemoryAppointmentRepository) List(_ context.Context) ([]model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out, nil
}

// GetByID retrieves an appointment by ID
func (r *MemoryAppointmentRepository) GetByID(_ context.Context, id int) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			a := r.appointments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Create stores a new appointment with the next integer ID
func (r *MemoryAppointmentRepository) Create(_ context.Context, a *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for i := range r.appointments {
		if r.appointments[i].ID > maxID {
			maxID = r.appointments[i].ID
		}
	}
	a.ID = maxID + 1
	if a.Status == "" {
		a.Status = model.AppointmentScheduled
	}
	a.CreatedAt = time.Now()

	r.appointments = append(r.appointments, *a)
	return nil
}

// Update merges a partial patch into an existing appointment
func (r *MemoryAppointmentRepository) Update(_ context.Context, id int, patch *model.AppointmentPatch) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			patch.Apply(&r.appointments[i])
			a := r.appointments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes an appointment by ID
func (r *MemoryAppointmentRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		if r.appointments[i].ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// GetByDate retrieves appointments on an exact calendar date
func (r *MemoryAppointmentRepository) GetByDate(_ context.Context, date string) ([]model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Appointment
	for i := range r.appointments {
		if r.appointments[i].ScheduledDate == date {
			out = append(out, r.appointments[i])
		}
	}
	return out, nil
}

// GetByPatient retrieves a patient's appointments
func (r *MemoryAppointmentRepository) GetByPatient(_ context.Context, patientID int) ([]model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Appointment
	for i := range r.appointments {
		if r.appointments[i].PatientID == patientID {
			out = append(out, r.appointments[i])
		}
	}
	return out, nil
}

// MemoryPatientRepository is an in-memory patient store
type MemoryPatientRepository struct {
	mu       sync.RWMutex
	patients []model.Patient
}

// NewMemoryPatientRepository creates an empty in-memory patient store
func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{}
}

// List retrieves all patients
func (r *MemoryPatientRepository) List(_ context.Context) ([]model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

// GetByID retrieves a patient by ID
func (r *MemoryPatientRepository) GetByID(_ context.Context, id int) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.patients {
		if r.patients[i].ID == id {
			p := r.patients[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// MemoryDoctorRepository is an in-memory doctor store
type MemoryDoctorRepository struct {
	mu      sync.RWMutex
	doctors []model.Doctor
}

// NewMemoryDoctorRepository creates an empty in-memory doctor store
func NewMemoryDoctorRepository() *MemoryDoctorRepository {
	return &MemoryDoctorRepository{}
}

// List retrieves all doctors
func (r *MemoryDoctorRepository) List(_ context.Context) ([]model.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Doctor, len(r.doctors))
	copy(out, r.doctors)
	return out, nil
}

// GetByID retrieves a doctor by ID
func (r *MemoryDoctorRepository) GetByID(_ context.Context, id int) (*model.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.doctors {
		if r.doctors[i].ID == id {
			d := r.doctors[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}
