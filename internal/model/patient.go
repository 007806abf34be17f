package model

import "time"

// Patient is a clinic patient. The reminder core reads patients but does
// not own their lifecycle.
type Patient struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	CurrentStatus string    `json:"currentStatus,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Doctor is a clinic doctor, referenced by appointments.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
}
