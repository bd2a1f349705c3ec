package httpapi

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
	"github.com/custodia-labs/dashreport/internal/logger"
)

// uploadField is the multipart field holding the report file.
const uploadField = "file"

// diffRequest is the body of POST /api/diff.
type diffRequest struct {
	PolicyA map[string]any `json:"policyA"`
	PolicyB map[string]any `json:"policyB"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleParse(ctx *fasthttp.RequestCtx) {
	header, err := ctx.FormFile(uploadField)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "missing upload field \""+uploadField+"\"")
		return
	}

	if !s.supported(header.Filename) {
		writeError(ctx, fasthttp.StatusBadRequest,
			"Please upload one of: "+strings.Join(s.reports.SupportedExtensions(), ", "))
		return
	}

	f, err := header.Open()
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "cannot read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "cannot read upload")
		return
	}

	report, err := s.reports.ParseBytes(s.base, header.Filename, data, driving.ParseOptions{Save: true})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "report": report})
}

func (s *Server) handleListReports(ctx *fasthttp.RequestCtx) {
	reports, err := s.reports.List(s.base)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "reports": reports})
}

func (s *Server) handleGetReport(ctx *fasthttp.RequestCtx, id string) {
	report, err := s.reports.Get(s.base, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "report": report})
}

func (s *Server) handleDeleteReport(ctx *fasthttp.RequestCtx, id string) {
	if err := s.reports.Delete(s.base, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Report not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "message": "Report deleted"})
}

func (s *Server) handleClear(ctx *fasthttp.RequestCtx) {
	if err := s.reports.Clear(s.base); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "message": "All data cleared"})
}

func (s *Server) handleDiff(ctx *fasthttp.RequestCtx) {
	var raw any
	if err := json.Unmarshal(ctx.PostBody(), &raw); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateDiffRequest(raw); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid diff request: "+err.Error())
		return
	}

	var req diffRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid diff request")
		return
	}

	entries, err := s.reports.Diff(req.PolicyA, req.PolicyB)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{"ok": true, "diff": entries})
}

func (s *Server) handleExport(ctx *fasthttp.RequestCtx, id string) {
	result, err := s.reports.Export(s.base, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, "Report not found")
			return
		}
		writeServiceError(ctx, err)
		return
	}

	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.FileName))
	ctx.SetContentType(result.ContentType)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(result.Data)
}

func (s *Server) supported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.reports.SupportedExtensions() {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("encoding response: %v", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"ok":false,"detail":"encoding response"}`)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, detail string) {
	writeJSON(ctx, status, map[string]any{"ok": false, "detail": detail})
}

// writeServiceError maps domain errors to status codes.
func writeServiceError(ctx *fasthttp.RequestCtx, err error) {
	status := StatusFor(err)
	detail := err.Error()
	if status == fasthttp.StatusNotFound {
		detail = "Not found"
	}
	if status == fasthttp.StatusInternalServerError {
		logger.Error("request %s %s: %v", ctx.Method(), ctx.Path(), err)
	}
	writeError(ctx, status, detail)
}

// StatusFor returns the HTTP status for a service error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedType):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return fasthttp.StatusTooManyRequests
	case errors.Is(err, domain.ErrNotImplemented):
		return fasthttp.StatusNotImplemented
	default:
		return fasthttp.StatusInternalServerError
	}
}
