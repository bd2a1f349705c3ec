package httpapi

import (
	"strings"

	"github.com/valyala/fasthttp"
)

const (
	prefixReports = "/api/reports/"
	prefixExport  = "/api/export/"
)

// route dispatches on method and path.
func (s *Server) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz":
		s.onlyMethod(ctx, method, fasthttp.MethodGet, s.handleHealth)
	case path == "/api/parse":
		s.onlyMethod(ctx, method, fasthttp.MethodPost, s.handleParse)
	case path == "/api/reports":
		s.onlyMethod(ctx, method, fasthttp.MethodGet, s.handleListReports)
	case path == "/api/clear":
		s.onlyMethod(ctx, method, fasthttp.MethodPost, s.handleClear)
	case path == "/api/diff":
		s.onlyMethod(ctx, method, fasthttp.MethodPost, s.handleDiff)
	case strings.HasPrefix(path, prefixReports):
		id, ok := pathID(path, prefixReports)
		if !ok {
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
			return
		}
		switch method {
		case fasthttp.MethodGet:
			s.handleGetReport(ctx, id)
		case fasthttp.MethodDelete:
			s.handleDeleteReport(ctx, id)
		default:
			methodNotAllowed(ctx, "GET, DELETE")
		}
	case strings.HasPrefix(path, prefixExport):
		id, ok := pathID(path, prefixExport)
		if !ok {
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
			return
		}
		s.onlyMethod(ctx, method, fasthttp.MethodGet, func(ctx *fasthttp.RequestCtx) {
			s.handleExport(ctx, id)
		})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) onlyMethod(ctx *fasthttp.RequestCtx, got, want string, h fasthttp.RequestHandler) {
	if got != want {
		methodNotAllowed(ctx, want)
		return
	}
	h(ctx)
}

func methodNotAllowed(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set("Allow", allow)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
}

// pathID returns the single path segment after prefix.
func pathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
