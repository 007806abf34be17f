package router

import (
	"net/http"
	"time"

	"github.com/mediflow/mediflow/internal/config"
	"github.com/mediflow/mediflow/internal/handler"
	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// API v1 routes
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"MediFlow API v1","version":"0.1.0"}`))
	})

	// Appointment store
	mux.HandleFunc("GET /api/v1/appointments", h.ListAppointments)
	mux.HandleFunc("POST /api/v1/appointments", h.CreateAppointment)
	mux.HandleFunc("GET /api/v1/appointments/{id}", h.GetAppointment)
	mux.HandleFunc("PATCH /api/v1/appointments/{id}", h.UpdateAppointment)
	mux.HandleFunc("DELETE /api/v1/appointments/{id}", h.DeleteAppointment)

	// Send endpoints are rate limited to protect the mail transport
	sendWindow, err := time.ParseDuration(cfg.RateLimiting.SendWindow)
	if err != nil {
		sendWindow = time.Minute
	}
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  cfg.RateLimiting.SendLimit,
		Window: sendWindow,
		KeyFn:  middleware.IPKey,
	})

	// Notification workflow
	mux.HandleFunc("GET /api/v1/notifications", h.LoadNotifications)
	mux.HandleFunc("GET /api/v1/notifications/stats", h.NotificationStats)
	mux.Handle("POST /api/v1/notifications/send-all", sendRateLimit(http.HandlerFunc(h.SendAllPending)))
	mux.Handle("POST /api/v1/appointments/{id}/reminder", sendRateLimit(http.HandlerFunc(h.SendReminder)))

	// Raw mail endpoint
	mux.Handle("POST /api/v1/reminders/send", sendRateLimit(http.HandlerFunc(h.SendReminderEmail)))

	// Apply global middleware (innermost first)
	var root http.Handler = mux
	root = mw.Logger(root)
	root = mw.Recover(root)
	root = mw.RequestID(root)

	return root
}
