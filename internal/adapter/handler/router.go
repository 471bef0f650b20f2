package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-reactions/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	trackerHandler *Tracker
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, trackerHandler *Tracker) *Router {
	return &Router{
		cfg:            cfg,
		trackerHandler: trackerHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	v1.GET("/clock", rt.trackerHandler.GetClock)
	rt.setupParticipantRoutes(v1)
	rt.setupRecordRoutes(v1)
	rt.setupExportRoutes(v1)
	rt.setupTimerRoutes(v1)
}

// setupParticipantRoutes configures roster routes
func (rt *Router) setupParticipantRoutes(g *echo.Group) {
	participants := g.Group("/participants")

	participants.GET("", rt.trackerHandler.ListParticipants)
	participants.POST("", rt.trackerHandler.AddParticipant)
	participants.PUT("/selected", rt.trackerHandler.SelectParticipant)
	participants.DELETE("/:name", rt.trackerHandler.DeleteParticipant)
}

// setupRecordRoutes configures reaction log routes
func (rt *Router) setupRecordRoutes(g *echo.Group) {
	records := g.Group("/records")

	records.GET("", rt.trackerHandler.GetHistory)
	records.DELETE("", rt.trackerHandler.ClearHistory)
	records.POST("/reactions", rt.trackerHandler.RecordReaction)
	records.POST("/dividers", rt.trackerHandler.AddDivider)
}

// setupExportRoutes configures import and export routes
func (rt *Router) setupExportRoutes(g *echo.Group) {
	g.POST("/import", rt.trackerHandler.ImportData)

	exports := g.Group("/export")
	exports.GET("", rt.trackerHandler.ExportData)
	exports.GET("/pivot", rt.trackerHandler.ExportPivot)
	exports.GET("/spreadsheet", rt.trackerHandler.ExportSpreadsheet)
	exports.GET("/archive", rt.trackerHandler.ListArchives)
	exports.POST("/archive", rt.trackerHandler.ArchiveExports)
}

// setupTimerRoutes configures meeting timer routes
func (rt *Router) setupTimerRoutes(g *echo.Group) {
	timer := g.Group("/timer")

	timer.GET("", rt.trackerHandler.GetTimer)
	timer.POST("/start", rt.trackerHandler.StartTimer)
	timer.POST("/stop", rt.trackerHandler.StopTimer)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
		"store":       rt.cfg.Store.Backend,
	})
}
