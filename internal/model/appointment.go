package model

import (
	"fmt"
	"time"
)

// Date and time-of-day layouts used across the API and the stores.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "scheduled"
	AppointmentInProgress AppointmentStatus = "in-progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
)

// Valid reports whether the status is one of the known lifecycle states
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentInProgress, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment represents a scheduled clinic visit
type Appointment struct {
	ID            int               `json:"id"`
	PatientID     int               `json:"patientId"`
	DoctorID      int               `json:"doctorId"`
	ScheduledDate string            `json:"scheduledDate"` // calendar date, DateLayout
	ScheduledTime string            `json:"scheduledTime"` // time of day, TimeLayout
	Status        AppointmentStatus `json:"status"`
	Reason        string            `json:"reason"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// StartTime combines the scheduled date and time into an instant in the
// system's local time zone.
func (a *Appointment) StartTime() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.ScheduledDate+" "+a.ScheduledTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse appointment %d schedule: %w", a.ID, err)
	}
	return t, nil
}

// AppointmentPatch carries a partial update; nil fields are left untouched
type AppointmentPatch struct {
	PatientID     *int               `json:"patientId,omitempty"`
	DoctorID      *int               `json:"doctorId,omitempty"`
	ScheduledDate *string            `json:"scheduledDate,omitempty"`
	ScheduledTime *string            `json:"scheduledTime,omitempty"`
	Status        *AppointmentStatus `json:"status,omitempty"`
	Reason        *string            `json:"reason,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
}

// Apply merges the patch into the appointment
func (p *AppointmentPatch) Apply(a *Appointment) {
	if p.PatientID != nil {
		a.PatientID = *p.PatientID
	}
	if p.DoctorID != nil {
		a.DoctorID = *p.DoctorID
	}
	if p.ScheduledDate != nil {
		a.ScheduledDate = *p.ScheduledDate
	}
	if p.ScheduledTime != nil {
		a.ScheduledTime = *p.ScheduledTime
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Reason != nil {
		a.Reason = *p.Reason
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
