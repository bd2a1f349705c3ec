package driven

import (
	"context"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// ReportExporter renders a report into a downloadable document.
type ReportExporter interface {
	// Export renders the report.
	Export(ctx context.Context, report *domain.Report) ([]byte, error)

	// Extension is the file extension of exported documents, e.g. ".xlsx".
	Extension() string

	// ContentType is the MIME type of exported documents.
	ContentType() string
}
