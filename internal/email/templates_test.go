package email

import (
	"strings"
	"testing"

	"github.com/mediflow/mediflow/internal/model"
)

func sampleRequest() *model.ReminderRequest {
	return &model.ReminderRequest{
		AppointmentID: 42,
		PatientEmail:  "jane.doe@example.com",
		PatientName:   "Jane Doe",
		DoctorName:    "Dr. Smith",
		Date:          "2024-06-01",
		Time:          "09:00",
	}
}

func TestComposeReminder(t *testing.T) {
	c := Compose(sampleRequest(), model.NotificationReminder)

	if c.Subject != "Appointment Reminder - 2024-06-01" {
		t.Fatalf("unexpected subject %q", c.Subject)
	}
	for _, want := range []string{
		"Dear Jane Doe,",
		"Dr. Smith",
		"2024-06-01",
		"09:00",
		"Appointment ID:</strong> 42",
		"15 minutes early",
		"as soon as possible",
		"MediFlow Clinic",
	} {
		if !strings.Contains(c.HTMLBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
	}
	// The patient does not see their own name in the details list
	if strings.Contains(c.HTMLBody, "<strong>Patient:</strong>") {
		t.Error("reminder details should not list the patient")
	}
	if !strings.Contains(c.TextBody, "friendly reminder") {
		t.Errorf("text body missing reminder phrasing: %q", c.TextBody)
	}
	if strings.Contains(c.TextBody, "<") {
		t.Error("text body must not contain markup")
	}
}

func TestComposeConfirmation(t *testing.T) {
	c := Compose(sampleRequest(), model.NotificationConfirmation)

	if c.Subject != "Appointment Confirmation - 2024-06-01" {
		t.Fatalf("unexpected subject %q", c.Subject)
	}
	if !strings.Contains(c.HTMLBody, "successfully scheduled") {
		t.Errorf("HTML body missing confirmation phrasing")
	}
	if !strings.Contains(c.HTMLBody, "24 hours in advance") {
		t.Errorf("HTML body missing cancellation notice")
	}
	if !strings.Contains(c.TextBody, "Appointment ID: 42") {
		t.Errorf("text body missing appointment id: %q", c.TextBody)
	}
}

func TestComposeStaff(t *testing.T) {
	c := Compose(sampleRequest(), model.NotificationStaff)

	if c.Subject != "Staff Notification: Upcoming Appointment - Jane Doe" {
		t.Fatalf("unexpected subject %q", c.Subject)
	}
	// Staff mail addresses the team and lists the patient
	if !strings.Contains(c.HTMLBody, "Dear Medical Team,") {
		t.Error("HTML body missing staff salutation")
	}
	if !strings.Contains(c.HTMLBody, "<strong>Patient:</strong> Jane Doe") {
		t.Error("HTML body missing patient line")
	}
	if !strings.Contains(c.TextBody, "Patient: Jane Doe") {
		t.Error("text body missing patient line")
	}
}

func TestComposeUnknownTypeFallsBackToReminder(t *testing.T) {
	got := Compose(sampleRequest(), model.NotificationType("promotional"))
	want := Compose(sampleRequest(), model.NotificationReminder)

	if got != want {
		t.Fatalf("unknown type should compose the reminder template, got subject %q", got.Subject)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	for _, typ := range []model.NotificationType{
		model.NotificationReminder,
		model.NotificationConfirmation,
		model.NotificationStaff,
	} {
		a := Compose(sampleRequest(), typ)
		b := Compose(sampleRequest(), typ)
		if a != b {
			t.Fatalf("Compose(%s) not deterministic", typ)
		}
	}
}
