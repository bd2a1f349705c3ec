package driven

import (
	"context"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// ReportStore persists parsed reports keyed by report ID.
type ReportStore interface {
	// Upsert stores a report, replacing any report with the same ID.
	Upsert(ctx context.Context, report *domain.Report) error

	// List returns all reports without their full text, ordered by ID.
	List(ctx context.Context) ([]domain.ReportSummary, error)

	// Get retrieves a report by ID.
	// Returns domain.ErrNotFound if no report has that ID.
	Get(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes a report by ID.
	// Returns domain.ErrNotFound if no report has that ID.
	Delete(ctx context.Context, id string) error

	// Clear removes every report.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
