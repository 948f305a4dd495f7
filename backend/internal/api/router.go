// Package api exposes the analyzer over a local HTTP interface.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ghostcheck/backend/internal/analysis"
	"ghostcheck/backend/internal/session"
)

// Handler serves archive uploads and the resulting report
type Handler struct {
	analyzer       *analysis.Analyzer
	store          *session.Store
	maxUploadBytes int64
	log            *zap.Logger
}

// NewHandler creates a Handler
func NewHandler(analyzer *analysis.Analyzer, store *session.Store, maxUploadBytes int64, log *zap.Logger) *Handler {
	return &Handler{
		analyzer:       analyzer,
		store:          store,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// NewRouter wires middleware and routes
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(h.log))
	router.Use(gin.Recovery())
	router.Use(cors())

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
		api.GET("/report", h.GetReport)
		api.DELETE("/report", h.ClearReport)
		api.GET("/report/collections/:name", h.GetCollection)
	}

	return router
}

// cors lets a browser front end served from another local port call the API
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ginLogger logs each request through zap
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
