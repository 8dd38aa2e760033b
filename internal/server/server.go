// Package server serves the contest dashboard over HTTP.
//
// Every request runs a fresh aggregation; nothing is cached between requests.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/contest-radar/internal/calendar"
	"github.com/pfrederiksen/contest-radar/internal/logger"
	"github.com/pfrederiksen/contest-radar/internal/radar"
	"github.com/pfrederiksen/contest-radar/internal/render"
)

const shutdownTimeout = 10 * time.Second

// Collector produces one report per call
type Collector interface {
	Collect(ctx context.Context) *radar.Report
}

// Server wires the dashboard routes onto a gin engine
type Server struct {
	engine    *gin.Engine
	collector Collector
	renderer  *render.Renderer
	log       *logger.Logger
	metrics   *logger.Metrics
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithMetrics sets the tracker exposed on /metrics
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a Server rendering reports from collector
func New(collector Collector, renderer *render.Renderer, opts ...Option) *Server {
	s := &Server{
		engine:    gin.New(),
		collector: collector,
		renderer:  renderer,
		log:       logger.Default(),
		metrics:   logger.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(logRequests(s.log, s.metrics))
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handlePage)
	s.engine.GET("/calendar.ics", s.handleCalendar)
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetSnapshot())
	})

	api := s.engine.Group("/api")
	{
		api.GET("/contests", s.handleContests)
	}
}

// Handler returns the HTTP handler for all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handlePage(c *gin.Context) {
	report := s.collector.Collect(c.Request.Context())

	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, report); err != nil {
		s.log.Error("Failed to render page", logger.Fields{"run_id": report.RunID}, err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleContests(c *gin.Context) {
	c.JSON(http.StatusOK, s.collector.Collect(c.Request.Context()))
}

func (s *Server) handleCalendar(c *gin.Context) {
	report := s.collector.Collect(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="contests.ics"`)
	c.Data(http.StatusOK, calendar.ContentType, []byte(calendar.GenerateICS(report.Contests, report.GeneratedAt)))
}

// logRequests logs one entry per request through the structured logger
func logRequests(log *logger.Logger, metrics *logger.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordTiming("http."+route, latency)
		log.Info("Request handled", logger.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   latency.String(),
			"client_ip": c.ClientIP(),
		})
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server starting", logger.Fields{"address": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
