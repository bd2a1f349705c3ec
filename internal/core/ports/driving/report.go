package driving

import (
	"context"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// ParseOptions controls a parse request.
type ParseOptions struct {
	// FileName overrides the name recorded on the report.
	FileName string

	// Save stores the report after parsing.
	Save bool
}

// PolicyRef addresses one policy of a stored report.
type PolicyRef struct {
	ReportID string

	// Index is the zero-based position in the report's policy list.
	Index int
}

// ExportResult is a rendered report ready for download.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ReportService parses, stores and compares DASH reports.
type ReportService interface {
	// ParseFile reads a file from disk and parses it.
	ParseFile(ctx context.Context, path string, opts ParseOptions) (*domain.Report, error)

	// ParseBytes parses an in-memory document, e.g. an upload.
	ParseBytes(ctx context.Context, name string, data []byte, opts ParseOptions) (*domain.Report, error)

	// ParsePages parses already-extracted page texts.
	ParsePages(ctx context.Context, name string, pages []string, opts ParseOptions) (*domain.Report, error)

	// List returns stored reports without their full text.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// Get retrieves a stored report.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a stored report.
	Delete(ctx context.Context, id string) error

	// Clear removes all stored reports.
	Clear(ctx context.Context) error

	// Diff compares two structured values path by path.
	Diff(a, b any) ([]domain.DiffEntry, error)

	// ComparePolicies diffs two stored policies.
	ComparePolicies(ctx context.Context, a, b PolicyRef) ([]domain.DiffEntry, error)

	// Export renders a stored report.
	Export(ctx context.Context, id string) (*ExportResult, error)

	// SupportedExtensions lists the file extensions that can be parsed.
	SupportedExtensions() []string
}
