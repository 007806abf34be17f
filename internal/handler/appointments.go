package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mediflow/mediflow/internal/model"
	"github.com/mediflow/mediflow/internal/repository"
)

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// pathID parses the {id} path segment as a positive integer
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// ListAppointments handles GET /api/v1/appointments
// Supports ?date=YYYY-MM-DD, ?patientId=N and ?today=true filters.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		appts []model.Appointment
		err   error
	)
	switch {
	case q.Get("today") == "true":
		appts, err = h.apptSvc.Today(ctx)
	case q.Get("date") != "":
		appts, err = h.apptSvc.ByDate(ctx, q.Get("date"))
	case q.Get("patientId") != "":
		var patientID int
		patientID, err = strconv.Atoi(q.Get("patientId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "patientId must be an integer")
			return
		}
		appts, err = h.apptSvc.ByPatient(ctx, patientID)
	default:
		appts, err = h.apptSvc.List(ctx)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list appointments")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list appointments")
		return
	}

	if appts == nil {
		appts = []model.Appointment{}
	}
	writeJSON(w, http.StatusOK, appts)
}

// GetAppointment handles GET /api/v1/appointments/{id}
func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Appointment id must be a positive integer")
		return
	}

	a, err := h.apptSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Appointment not found")
			return
		}
		h.log.Error().Err(err).Int("appointment_id", id).Msg("failed to get appointment")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get appointment")
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// CreateAppointment handles POST /api/v1/appointments
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatientID     int    `json:"patientId"`
		DoctorID      int    `json:"doctorId"`
		ScheduledDate string `json:"scheduledDate"`
		ScheduledTime string `json:"scheduledTime"`
		Reason        string `json:"reason"`
		Notes         string `json:"notes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.PatientID <= 0 || req.DoctorID <= 0 || req.ScheduledDate == "" || req.ScheduledTime == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "patientId, doctorId, scheduledDate and scheduledTime are required")
		return
	}

	a := &model.Appointment{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Reason:        req.Reason,
		Notes:         req.Notes,
	}
	if err := h.apptSvc.Create(r.Context(), a); err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.Error().Err(err).Msg("failed to create appointment")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create appointment")
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

// UpdateAppointment handles PATCH /api/v1/appointments/{id}
func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Appointment id must be a positive integer")
		return
	}

	var patch model.AppointmentPatch
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	a, err := h.apptSvc.Update(r.Context(), id, &patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Appointment not found")
		case errors.Is(err, repository.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			h.log.Error().Err(err).Int("appointment_id", id).Msg("failed to update appointment")
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update appointment")
		}
		return
	}

	writeJSON(w, http.StatusOK, a)
}

// DeleteAppointment handles DELETE /api/v1/appointments/{id}
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Appointment id must be a positive integer")
		return
	}

	if err := h.apptSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Appointment not found")
			return
		}
		h.log.Error().Err(err).Int("appointment_id", id).Msg("failed to delete appointment")
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete appointment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
