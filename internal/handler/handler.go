package handler

import (
	"github.com/mediflow/mediflow/internal/config"
	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/logger"
	"github.com/mediflow/mediflow/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	db       *database.Postgres // nil when the memory store is active
	rdb      *database.Redis    // nil when rate limiting is disabled
	log      *logger.Logger
	cfg      *config.Config
	apptSvc  *service.AppointmentService
	notifSvc *service.NotificationService
	gateway  *service.DeliveryGateway
}

// New creates a new Handler instance
func New(db *database.Postgres, rdb *database.Redis, log *logger.Logger, cfg *config.Config, apptSvc *service.AppointmentService, notifSvc *service.NotificationService, gateway *service.DeliveryGateway) *Handler {
	return &Handler{
		db:       db,
		rdb:      rdb,
		log:      log,
		cfg:      cfg,
		apptSvc:  apptSvc,
		notifSvc: notifSvc,
		gateway:  gateway,
	}
}
