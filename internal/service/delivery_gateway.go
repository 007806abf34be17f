package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mediflow/mediflow/internal/email"
	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/model"
)

// DeliveryGateway sends a composed notification through the mail transport
// and normalizes every possible failure into a classified Outcome. It never
// returns an error: transport faults, validation failures and panics all
// come back as outcomes.
type DeliveryGateway struct {
	sender email.Sender // nil when no mail credential is configured
	log    *logger.Logger
}

// NewDeliveryGateway creates a new DeliveryGateway. A nil sender marks the
// mail provider as unconfigured; sends then classify as unavailable without
// attempting delivery.
func NewDeliveryGateway(sender email.Sender, log *logger.Logger) *DeliveryGateway {
	return &DeliveryGateway{
		sender: sender,
		log:    log.WithComponent("delivery"),
	}
}

// Send validates the request, composes the email for its notification type
// and attempts delivery.
//
// Classification mirrors the mail function's contract: 400 missing fields,
// 422 malformed address, 503 missing credential, 502 transport fault or
// missing provider id, 500 for anything unclassified, 200 on success.
func (g *DeliveryGateway) Send(ctx context.Context, req *model.ReminderRequest) (out *model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Int("appointment_id", req.AppointmentID).Msg("panic during delivery")
			out = &model.Outcome{
				Success:    false,
				StatusCode: http.StatusInternalServerError,
				Error:      fmt.Sprintf("Server error: %v", r),
			}
		}
	}()

	if err := req.Validate(); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, model.ErrInvalidEmail) {
			status = http.StatusUnprocessableEntity
		}
		return &model.Outcome{
			Success:    false,
			StatusCode: status,
			Error:      err.Error(),
		}
	}

	if g.sender == nil {
		return &model.Outcome{
			Success:    false,
			StatusCode: http.StatusServiceUnavailable,
			Error:      "Resend API key not configured",
		}
	}

	typ := model.ParseNotificationType(req.Type)
	content := email.Compose(req, typ)

	result, err := g.sender.Send(ctx, email.Message{
		To:       req.PatientEmail,
		Subject:  content.Subject,
		HTMLBody: content.HTMLBody,
		TextBody: content.TextBody,
	})
	if err != nil {
		g.log.Error().Err(err).Int("appointment_id", req.AppointmentID).Msg("mail transport failed")
		return &model.Outcome{
			Success:    false,
			StatusCode: http.StatusBadGateway,
			Error:      fmt.Sprintf("Email service error: %s", err.Error()),
		}
	}

	if result == nil || result.ID == "" {
		return &model.Outcome{
			Success:    false,
			StatusCode: http.StatusBadGateway,
			Error:      "Failed to send email - no response from email service",
		}
	}

	g.log.Info().
		Int("appointment_id", req.AppointmentID).
		Str("email_id", result.ID).
		Str("type", string(typ)).
		Msg("notification delivered")

	return &model.Outcome{
		Success:       true,
		StatusCode:    http.StatusOK,
		Message:       "Appointment reminder sent successfully",
		EmailID:       result.ID,
		AppointmentID: req.AppointmentID,
	}
}
