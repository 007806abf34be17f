package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mediflow/mediflow/internal/model"
)

// SeedData is the JSON fixture shape loaded into the memory stores
type SeedData struct {
	Appointments []model.Appointment `json:"appointments"`
	Patients     []model.Patient     `json:"patients"`
	Doctors      []model.Doctor      `json:"doctors"`
}

// LoadSeedFile reads a fixture file and populates the given memory stores.
// Records keep the IDs they carry in the fixture.
func LoadSeedFile(path string, appts *MemoryAppointmentRepository, patients *MemoryPatientRepository, doctors *MemoryDoctorRepository) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now()

	appts.mu.Lock()
	for _, a := range seed.Appointments {
		if a.Status == "" {
			a.Status = model.AppointmentScheduled
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		appts.appointments = append(appts.appointments, a)
	}
	appts.mu.Unlock()

	patients.mu.Lock()
	for _, p := range seed.Patients {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		patients.patients = append(patients.patients, p)
	}
	patients.mu.Unlock()

	doctors.mu.Lock()
	doctors.doctors = append(doctors.doctors, seed.Doctors...)
	doctors.mu.Unlock()

	return nil
}
