package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mediflow/mediflow/internal/model"
	"github.com/mediflow/mediflow/internal/repository"
)

// LoadNotifications handles GET /api/v1/notifications
// Rebuilds the tracked reminder window. ?horizon=N overrides the lookahead
// in hours.
func (h *Handler) LoadNotifications(w http.ResponseWriter, r *http.Request) {
	horizon := h.cfg.Reminder.DefaultHorizon
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "horizon must be a positive number of hours")
			return
		}
		horizon = time.Duration(hours) * time.Hour
	}

	notifications, err := h.notifSvc.LoadWindow(r.Context(), horizon)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load notifications")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"stats":         h.notifSvc.Stats(),
	})
}

// NotificationStats handles GET /api/v1/notifications/stats
func (h *Handler) NotificationStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.notifSvc.Stats())
}

// SendReminder handles POST /api/v1/appointments/{id}/reminder
// Sends (or resends) a single notification for the appointment. The
// response status mirrors the delivery outcome classification.
func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Appointment id must be a positive integer")
		return
	}

	var req struct {
		NotificationType string `json:"notificationType"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
			return
		}
	}
	typ := model.ParseNotificationType(req.NotificationType)

	notification, outcome, err := h.notifSvc.SendReminder(r.Context(), id, typ)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Appointment not found")
			return
		}
		h.log.Error().Err(err).Int("appointment_id", id).Msg("failed to send reminder")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to send reminder")
		return
	}

	writeJSON(w, outcome.StatusCode, map[string]interface{}{
		"notification": notification,
		"outcome":      outcome,
	})
}

// SendAllPending handles POST /api/v1/notifications/send-all
// Dispatches every pending notification sequentially and reports per-item
// results.
func (h *Handler) SendAllPending(w http.ResponseWriter, r *http.Request) {
	results, err := h.notifSvc.SendAllPending(r.Context())
	if err != nil {
		// Client went away mid-batch; partial results are all we have.
		h.log.Warn().Err(err).Int("attempted", len(results)).Msg("batch dispatch interrupted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"stats":   h.notifSvc.Stats(),
	})
}
