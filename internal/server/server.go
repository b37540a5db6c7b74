// Package server exposes the bridge over HTTP: an ingest endpoint accepting
// Segment-format events, a settings update endpoint, health and metrics.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/destination"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/metrics"
)

type Config struct {
	Port int
}

type Server struct {
	config      *Config
	destination *destination.Destination
	logger      *logrus.Logger
	router      *gin.Engine
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func New(config *Config, dest *destination.Destination, logger *logrus.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(latencyMiddleware())

	s := &Server{
		config:      config,
		destination: dest,
		logger:      logger,
		router:      router,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := s.router.Group("/v1")
	{
		v1.POST("/events", s.handleEvents)
		v1.POST("/settings", s.handleSettings)
	}
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.WithField("addr", addr).Info("starting ingest server")
	return s.router.Run(addr)
}

// latencyMiddleware records per-route request latency in milliseconds.
func latencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start).Microseconds()) / 1000.0
		metrics.RequestLatency.WithLabelValues(c.FullPath()).Observe(duration)
	}
}
