package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dashreport/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

const (
	healthPath      = "/healthz"
	shutdownTimeout = 5 * time.Second
)

// Server exposes stored DASH reports to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "dashreport",
		Version: Version,
	}
	opts := &mcp.ServerOptions{
		Instructions: instructions(ports.Reports.SupportedExtensions()),
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, opts),
	}
	s.server.AddReceivingMiddleware(logRequests)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells clients how the tools and resources fit together.
func instructions(exts []string) string {
	var b strings.Builder
	b.WriteString("Tools and resources for DASH driver reports.\n")
	b.WriteString("Call list_reports or read " + reportsURI + " to find report ids, then get_report ")
	b.WriteString("or read " + reportsPrefix + "{reportId} for the full record.\n")
	b.WriteString("parse_text takes report text with pages separated by form feeds; set save to keep the result.\n")
	b.WriteString("diff_policies compares two policies by report id and zero-based policy index.\n")
	if len(exts) > 0 {
		b.WriteString("Files of type " + strings.Join(exts, ", ") + " can be stored with the dashreport CLI.")
	}
	return b.String()
}

// logRequests records each incoming method and how long it took.
func logRequests(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		start := time.Now()
		res, err := next(ctx, method, req)
		if err != nil {
			logger.Warn("mcp %s failed after %s: %v", method, time.Since(start), err)
		} else {
			logger.Debug("mcp %s in %s", method, time.Since(start))
		}
		return res, err
	}
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the streamable MCP transport with a health route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(healthPath, s.handleHealth)
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))
	return mux
}

// handleHealth reports liveness and how many reports are stored.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reports, err := s.ports.Reports.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "detail": err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "reports": len(reports)})
}

// RunHTTP serves Handler on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp http shutdown: %v", err)
		}
	}()

	logger.Info("mcp server listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
