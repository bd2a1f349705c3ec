package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
	"github.com/custodia-labs/dashreport/internal/logger"
)

// HeaderRequestID carries the per-request identifier.
const HeaderRequestID = "X-Request-ID"

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// RateLimit is the sustained requests per second across all clients.
	// Zero disables limiting.
	RateLimit int

	// MaxUploadMB caps request bodies.
	MaxUploadMB int
}

// Server serves the report API.
type Server struct {
	reports driving.ReportService
	cfg     Config
	limiter *rate.Limiter
	server  *fasthttp.Server

	// base is passed to service calls. It is cancelled when the server
	// is shutting down.
	base context.Context
}

// NewServer creates a new HTTP server over the report service.
func NewServer(reports driving.ReportService, cfg Config) (*Server, error) {
	if reports == nil {
		return nil, ErrMissingReportService
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 32
	}

	s := &Server{
		reports: reports,
		cfg:     cfg,
		base:    context.Background(),
	}
	if cfg.RateLimit > 0 {
		// Allow a burst of one second's worth of requests.
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	s.server = &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "dashreport",
		MaxRequestBodySize: cfg.MaxUploadMB << 20,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
	}

	return s, nil
}

// Handler returns the root request handler with request IDs, CORS and
// rate limiting applied.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		requestID := string(ctx.Request.Header.Peek(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Response.Header.Set(HeaderRequestID, requestID)
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")

		switch {
		case ctx.IsOptions():
			ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			ctx.Response.Header.Set("Access-Control-Allow-Headers", "*")
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		case s.limiter != nil && !s.limiter.Allow():
			ctx.Response.Header.Set("Retry-After", "1")
			writeError(ctx, fasthttp.StatusTooManyRequests, "rate limit exceeded")
		default:
			s.route(ctx)
		}

		logger.Debug("http %s %s %d %s id=%s",
			ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start).Round(time.Microsecond), requestID)
	}
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.base = ctx
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe(s.cfg.Addr)
	}()

	logger.Info("http server listening on %s", s.cfg.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
		if err := s.server.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}
