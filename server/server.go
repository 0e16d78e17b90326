// Package server exposes the schedule and the chat agent over HTTP.
//
// Every /api request holds one mutex for its whole duration, so the store and
// the agent only ever see one request at a time.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ogreowl/flightdesk/dispatch"
	"github.com/ogreowl/flightdesk/schedule"
	"github.com/ogreowl/flightdesk/weather"
)

const shutdownTimeout = 5 * time.Second

// Server serves the JSON API and Prometheus metrics.
type Server struct {
	mu       sync.Mutex
	agent    *dispatch.Agent
	store    *schedule.Store
	weather  weather.Lookup
	log      zerolog.Logger
	gatherer prometheus.Gatherer
}

// New creates a server around agent. Flight routes operate on the agent's
// store.
func New(agent *dispatch.Agent) *Server {
	return &Server{
		agent:    agent,
		store:    agent.Store(),
		log:      zerolog.Nop(),
		gatherer: prometheus.DefaultGatherer,
	}
}

// WithWeather sets the lookup behind POST /api/weather.
func (s *Server) WithWeather(w weather.Lookup) *Server {
	s.weather = w
	return s
}

// WithLogger sets the access and error logger.
func (s *Server) WithLogger(log zerolog.Logger) *Server {
	s.log = log
	return s
}

// WithGatherer sets the registry exposed on /metrics.
func (s *Server) WithGatherer(g prometheus.Gatherer) *Server {
	s.gatherer = g
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api", s.serialize)
	api.POST("/chat", s.chat)
	api.GET("/flights", s.listFlights)
	api.POST("/flights", s.addFlight)
	api.GET("/flights/:id", s.getFlight)
	api.PATCH("/flights/:id", s.editFlight)
	api.DELETE("/flights/:id", s.deleteFlight)
	api.GET("/aircraft", s.listAircraft)
	api.GET("/airports", s.listAirports)
	api.GET("/warnings", s.warnings)
	api.POST("/weather", s.checkWeather)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) serialize(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Next()
}
