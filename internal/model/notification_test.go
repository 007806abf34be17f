package model

import (
	"errors"
	"testing"
)

func validRequest() ReminderRequest {
	return ReminderRequest{
		AppointmentID: 1,
		PatientEmail:  "jane@example.com",
		PatientName:   "Jane Doe",
		DoctorName:    "Dr. Smith",
		Date:          "2024-06-01",
		Time:          "09:00",
	}
}

func TestReminderRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r := validRequest()
		if err := r.Validate(); err != nil {
			t.Fatalf("expected valid request, got %v", err)
		}
	})

	t.Run("MissingSingleField", func(t *testing.T) {
		r := validRequest()
		r.DoctorName = ""
		err := r.Validate()
		var mfe *MissingFieldsError
		if !errors.As(err, &mfe) {
			t.Fatalf("expected MissingFieldsError, got %v", err)
		}
		if got := mfe.Error(); got != "Missing required fields: doctorName" {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("MissingAllFields", func(t *testing.T) {
		var r ReminderRequest
		err := r.Validate()
		var mfe *MissingFieldsError
		if !errors.As(err, &mfe) {
			t.Fatalf("expected MissingFieldsError, got %v", err)
		}
		if len(mfe.Fields) != 6 {
			t.Fatalf("expected 6 missing fields, got %v", mfe.Fields)
		}
		want := "Missing required fields: appointmentId, patientEmail, patientName, doctorName, appointmentDate, appointmentTime"
		if got := mfe.Error(); got != want {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		for _, addr := range []string{"not-an-email", "a@b", "a b@c.com", "@c.com", "a@"} {
			r := validRequest()
			r.PatientEmail = addr
			if err := r.Validate(); !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("address %q: expected ErrInvalidEmail, got %v", addr, err)
			}
		}
	})

	t.Run("MissingFieldsReportedBeforeEmailShape", func(t *testing.T) {
		r := validRequest()
		r.PatientName = ""
		r.PatientEmail = "broken"
		err := r.Validate()
		var mfe *MissingFieldsError
		if !errors.As(err, &mfe) {
			t.Fatalf("expected MissingFieldsError, got %v", err)
		}
	})
}

func TestParseNotificationType(t *testing.T) {
	cases := map[string]NotificationType{
		"reminder":     NotificationReminder,
		"confirmation": NotificationConfirmation,
		"staff":        NotificationStaff,
		"":             NotificationReminder,
		"bogus":        NotificationReminder,
	}
	for in, want := range cases {
		if got := ParseNotificationType(in); got != want {
			t.Errorf("ParseNotificationType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{AppointmentScheduled, AppointmentInProgress, AppointmentCompleted, AppointmentCancelled} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if AppointmentStatus("archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}
