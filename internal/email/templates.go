package email

import (
	"fmt"

	"github.com/mediflow/mediflow/internal/model"
)

// Content is a composed email: subject plus HTML and plain-text bodies.
type Content struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Compose builds the subject and bodies for a reminder request. It is pure:
// the same request and type always produce the same content. Unrecognized
// types compose the reminder template.
func Compose(req *model.ReminderRequest, typ model.NotificationType) Content {
	switch typ {
	case model.NotificationStaff:
		return staffNotification(req)
	case model.NotificationConfirmation:
		return confirmationEmail(req)
	default:
		return reminderEmail(req)
	}
}

// detailsHTML renders the appointment facts shared by every template.
func detailsHTML(req *model.ReminderRequest, withPatient bool) string {
	patient := ""
	if withPatient {
		patient = fmt.Sprintf("<li><strong>Patient:</strong> %s</li>\n", req.PatientName)
	}
	return fmt.Sprintf(`<ul>
%s<li><strong>Doctor:</strong> %s</li>
<li><strong>Date:</strong> %s</li>
<li><strong>Time:</strong> %s</li>
<li><strong>Appointment ID:</strong> %d</li>
</ul>`, patient, req.DoctorName, req.Date, req.Time, req.AppointmentID)
}

func detailsText(req *model.ReminderRequest, withPatient bool) string {
	patient := ""
	if withPatient {
		patient = fmt.Sprintf("Patient: %s\n", req.PatientName)
	}
	return fmt.Sprintf(`%sDoctor: %s
Date: %s
Time: %s
Appointment ID: %d`, patient, req.DoctorName, req.Date, req.Time, req.AppointmentID)
}

func staffNotification(req *model.ReminderRequest) Content {
	subject := fmt.Sprintf("Staff Notification: Upcoming Appointment - %s", req.PatientName)

	html := fmt.Sprintf(`<h2>Upcoming Appointment Notification</h2>
<p>Dear Medical Team,</p>
<p>This is a notification about an upcoming appointment:</p>
%s
<p>Please ensure all necessary preparations are completed before the appointment.</p>
<p>Best regards,<br>MediFlow System</p>`, detailsHTML(req, true))

	text := fmt.Sprintf(`Dear Medical Team,

This is a notification about an upcoming appointment:

%s

Please ensure all necessary preparations are completed before the appointment.

Best regards,
MediFlow System`, detailsText(req, true))

	return Content{Subject: subject, HTMLBody: html, TextBody: text}
}

func confirmationEmail(req *model.ReminderRequest) Content {
	subject := fmt.Sprintf("Appointment Confirmation - %s", req.Date)

	html := fmt.Sprintf(`<h2>Appointment Confirmed</h2>
<p>Dear %s,</p>
<p>Your appointment has been successfully scheduled:</p>
%s
<p>Please arrive 15 minutes early for check-in.</p>
<p>If you need to reschedule or cancel, please contact us at least 24 hours in advance.</p>
<p>Best regards,<br>MediFlow Clinic</p>`, req.PatientName, detailsHTML(req, false))

	text := fmt.Sprintf(`Dear %s,

Your appointment has been successfully scheduled:

%s

Please arrive 15 minutes early for check-in.

If you need to reschedule or cancel, please contact us at least 24 hours in advance.

Best regards,
MediFlow Clinic`, req.PatientName, detailsText(req, false))

	return Content{Subject: subject, HTMLBody: html, TextBody: text}
}

func reminderEmail(req *model.ReminderRequest) Content {
	subject := fmt.Sprintf("Appointment Reminder - %s", req.Date)

	html := fmt.Sprintf(`<h2>Upcoming Appointment Reminder</h2>
<p>Dear %s,</p>
<p>This is a friendly reminder about your upcoming appointment:</p>
%s
<p>Please arrive 15 minutes early for check-in.</p>
<p>If you need to reschedule or cancel, please contact us as soon as possible.</p>
<p>Best regards,<br>MediFlow Clinic</p>`, req.PatientName, detailsHTML(req, false))

	text := fmt.Sprintf(`Dear %s,

This is a friendly reminder about your upcoming appointment:

%s

Please arrive 15 minutes early for check-in.

If you need to reschedule or cancel, please contact us as soon as possible.

Best regards,
MediFlow Clinic`, req.PatientName, detailsText(req, false))

	return Content{Subject: subject, HTMLBody: html, TextBody: text}
}
