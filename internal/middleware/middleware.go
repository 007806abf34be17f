package middleware

import (
	"github.com/mediflow/mediflow/internal/config"
	"github.com/mediflow/mediflow/internal/database"
	"github.com/mediflow/mediflow/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	rdb *database.Redis // nil when rate limiting is disabled
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		rdb: rdb,
		log: log,
		cfg: cfg,
	}
}
