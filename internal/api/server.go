// Package api exposes the engine, the lab catalog, presets and topic
// suggestions over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/persuasion-engine/internal/catalog"
	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/metrics"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/internal/source/prompts"
	"github.com/persuasion-engine/internal/storage"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

// Deps are the collaborators of the HTTP server. Engine, Catalog, Topics and
// Featured are required; the rest may be nil.
type Deps struct {
	Engine   *engine.Engine
	Catalog  *catalog.Catalog
	Presets  storage.Repository
	Topics   *source.Manager
	Featured *prompts.Featured
	Limiter  *ratelimit.MultiLimiter
	Metrics  *metrics.Metrics
	Log      *logger.Logger

	// Latency delays every generation response
	Latency        time.Duration
	AllowedOrigins []string
}

// Server holds the HTTP handlers
type Server struct {
	deps Deps
	log  *logger.Logger
}

// NewServer creates a server
func NewServer(deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	return &Server{deps: deps, log: deps.Log.WithComponent("api")}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(s.log))
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(s.deps.AllowedOrigins))
	router.Use(s.deps.Metrics.Middleware())

	router.GET("/health", s.health)
	router.GET("/metrics", s.deps.Metrics.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/content", RateLimitMiddleware(s.deps.Limiter, ratelimit.LimiterGenerate, s.deps.Metrics), s.generate)

		v1.GET("/templates", s.listTemplates)
		v1.GET("/patterns", s.listPatterns)
		v1.GET("/patterns/:id", s.getPattern)
		v1.GET("/triggers", s.listTriggers)
		v1.GET("/lab/analytics", s.labAnalytics)

		v1.GET("/topics/suggestions", s.topicSuggestions)
		v1.GET("/topics/featured", s.featuredTopic)

		presets := v1.Group("/presets")
		presets.Use(s.requirePresets)
		presets.GET("", s.listPresets)
		presets.POST("", s.savePreset)
		presets.GET("/:name", s.getPreset)
		presets.DELETE("/:name", s.deletePreset)
	}

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "persuasion-engine",
		"templates": len(s.deps.Engine.Registry().Keys()),
	})
}

// sleep waits for the simulated latency or until the request is canceled
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
