// Package leads provides the lead management bounded context module.
// This file defines the module that encapsulates all leads setup and route
// registration.
package leads

import (
	"leadcrm_backend/internal/access"
	"leadcrm_backend/internal/events"
	apphttp "leadcrm_backend/internal/http"
	"leadcrm_backend/internal/leads/handler"
	"leadcrm_backend/internal/leads/repository"
	"leadcrm_backend/internal/leads/service"
	"leadcrm_backend/platform/config"
	"leadcrm_backend/platform/logger"
	"leadcrm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config combines the settings the leads module needs.
type Config interface {
	config.AccessConfig
	config.LeadsConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, cfg Config, log *logger.Logger) *Module {
	repo := repository.New(pool)
	composer := access.NewComposer(cfg)
	svc := service.New(repo, composer, eventBus, cfg, log)

	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts all lead routes under the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}
