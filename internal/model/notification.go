package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// NotificationType selects the audience and template for a composed email
type NotificationType string

const (
	NotificationReminder     NotificationType = "reminder"
	NotificationConfirmation NotificationType = "confirmation"
	NotificationStaff        NotificationType = "staff"
)

// ParseNotificationType maps a wire value to a known type. Unrecognized
// values fall back to the reminder template, mirroring the mail function's
// default branch.
func ParseNotificationType(s string) NotificationType {
	switch NotificationType(s) {
	case NotificationConfirmation:
		return NotificationConfirmation
	case NotificationStaff:
		return NotificationStaff
	default:
		return NotificationReminder
	}
}

// NotificationStatus is the observable delivery state of a notification
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is derived from an appointment and its resolved patient and
// doctor. It is rebuilt on every window load and never persisted; its
// status reflects only the most recent delivery outcome.
type Notification struct {
	AppointmentID int                `json:"appointmentId"`
	PatientName   string             `json:"patientName"`
	PatientEmail  string             `json:"patientEmail"`
	DoctorName    string             `json:"doctorName"`
	ScheduledDate string             `json:"scheduledDate"`
	ScheduledTime string             `json:"scheduledTime"`
	Status        NotificationStatus `json:"status"`
	SentAt        *time.Time         `json:"sentAt,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// ReminderRequest is the payload handed to the delivery gateway, one field
// per attribute of the outbound mail contract.
type ReminderRequest struct {
	AppointmentID int    `json:"appointmentId"`
	PatientEmail  string `json:"patientEmail"`
	PatientName   string `json:"patientName"`
	DoctorName    string `json:"doctorName"`
	Date          string `json:"appointmentDate"`
	Time          string `json:"appointmentTime"`
	Type          string `json:"notificationType"`
}

// ErrInvalidEmail reports a well-formed request carrying a malformed address
var ErrInvalidEmail = errors.New("Invalid email address format")

// MissingFieldsError enumerates the required fields absent from a request
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the required fields and the email shape. A missing field
// and a malformed address are distinct failures so callers can classify
// them separately.
func (r *ReminderRequest) Validate() error {
	var missing []string
	if r.AppointmentID == 0 {
		missing = append(missing, "appointmentId")
	}
	if r.PatientEmail == "" {
		missing = append(missing, "patientEmail")
	}
	if r.PatientName == "" {
		missing = append(missing, "patientName")
	}
	if r.DoctorName == "" {
		missing = append(missing, "doctorName")
	}
	if r.Date == "" {
		missing = append(missing, "appointmentDate")
	}
	if r.Time == "" {
		missing = append(missing, "appointmentTime")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	if !emailPattern.MatchString(r.PatientEmail) {
		return ErrInvalidEmail
	}

	return nil
}

// Outcome is the normalized result of a delivery attempt. StatusCode
// follows the mail function's HTTP classification: 400 validation, 422
// malformed email, 503 missing credential, 502 transport failure, 500
// unclassified fault, 200 success.
type Outcome struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"-"`
	Message       string `json:"message,omitempty"`
	EmailID       string `json:"emailId,omitempty"`
	AppointmentID int    `json:"appointmentId,omitempty"`
	Error         string `json:"error,omitempty"`
}
