package handler

import (
	"net/http"

	"github.com/mediflow/mediflow/internal/model"
)

// SendReminderEmail handles POST /api/v1/reminders/send
//
// This is the raw mail endpoint: the caller supplies the full recipient
// snapshot and gets back the classified delivery outcome. The response is
// always `{"success": ...}` shaped, with the HTTP status carrying the
// classification (400 missing fields, 422 bad address, 503 unconfigured,
// 502 transport failure, 500 fault, 200 success).
func (h *Handler) SendReminderEmail(w http.ResponseWriter, r *http.Request) {
	var req model.ReminderRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	outcome := h.gateway.Send(r.Context(), &req)
	writeJSON(w, outcome.StatusCode, outcome)
}
