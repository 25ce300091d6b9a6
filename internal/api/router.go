// Package api exposes the configurator over HTTP: the wizard session
// endpoints for the page, the save_lead RPC, and the admin lead management.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"it-configurator/internal/common/config"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/observability"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/recommend"
	"it-configurator/internal/configurator/submission"
	"it-configurator/internal/leads"
	"it-configurator/internal/sessions"
)

// Deps collects everything the handlers need.
type Deps struct {
	Config      *config.Config
	Sessions    *sessions.Repository
	LeadStore   *leads.Store
	Saver       submission.Saver
	Pricer      *pricing.Engine
	Recommender *recommend.Engine
	Obs         *observability.Observability
	Log         logger.Logger
	Health      HealthChecker
}

// NewRouter wires all routes.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	wizardHandler := NewWizardHandler(deps)
	adminHandler := NewAdminHandler(deps.LeadStore, deps.Log)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", wizardHandler.CreateSession)
		v1.GET("/sessions/:id", wizardHandler.GetSession)
		v1.POST("/sessions/:id/services/:key", wizardHandler.SetService)
		v1.POST("/sessions/:id/options/:key", wizardHandler.SetOption)
		v1.POST("/sessions/:id/profile", wizardHandler.SetProfile)
		v1.POST("/sessions/:id/contact", wizardHandler.SetContact)
		v1.POST("/sessions/:id/advance", wizardHandler.Advance)
		v1.POST("/sessions/:id/retreat", wizardHandler.Retreat)

		v1.POST("/save_lead", wizardHandler.SaveLead)

		admin := v1.Group("/leads", APIKeyAuth(deps.Config.Admin.APIKey))
		{
			admin.GET("", adminHandler.List)
			admin.GET("/stats", adminHandler.Stats)
			admin.PATCH("/:id/status", adminHandler.UpdateStatus)
			admin.DELETE("/:id", adminHandler.Delete)
		}
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", HealthHandler(deps.Health))

	return router
}
