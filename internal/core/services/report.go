package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
	"github.com/custodia-labs/dashreport/internal/extract"
	"github.com/custodia-labs/dashreport/internal/logger"
	"github.com/custodia-labs/dashreport/internal/structdiff"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// exportIDLength is how much of the report ID goes into export file names.
const exportIDLength = 8

// ReportService parses DASH reports and manages stored ones.
type ReportService struct {
	store     driven.ReportStore
	pages     driven.PageSource
	exporter  driven.ReportExporter
	assembler *extract.Assembler
	now       func() time.Time
}

// NewReportService creates a new report service.
// exporter may be nil, in which case Export returns ErrNotImplemented.
func NewReportService(
	store driven.ReportStore,
	pages driven.PageSource,
	exporter driven.ReportExporter,
) *ReportService {
	return &ReportService{
		store:     store,
		pages:     pages,
		exporter:  exporter,
		assembler: extract.NewAssembler(extract.WithTracer(logger.Tracer{})),
		now:       time.Now,
	}
}

// ParseFile reads a file from disk and parses it.
func (s *ReportService) ParseFile(ctx context.Context, path string, opts driving.ParseOptions) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	if opts.FileName != "" {
		name = opts.FileName
	}
	return s.ParseBytes(ctx, name, data, opts)
}

// ParseBytes extracts pages from data and parses them.
// The page source is chosen by the extension of name.
func (s *ReportService) ParseBytes(ctx context.Context, name string, data []byte, opts driving.ParseOptions) (*domain.Report, error) {
	if s.pages == nil {
		return nil, domain.ErrNotImplemented
	}
	logger.Section("Parse " + name)

	pages, err := s.pages.Pages(ctx, name, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("extracted %d pages from %s", len(pages), name)

	return s.ParsePages(ctx, name, pages, opts)
}

// ParsePages parses already-extracted page texts.
func (s *ReportService) ParsePages(ctx context.Context, name string, pages []string, opts driving.ParseOptions) (*domain.Report, error) {
	if opts.FileName != "" {
		name = opts.FileName
	}
	if name == "" {
		return nil, fmt.Errorf("file name is required: %w", domain.ErrInvalidInput)
	}

	report := s.assembler.Assemble(name, pages)
	report.ParsedAt = s.now().UTC()

	if opts.Save {
		if s.store == nil {
			return nil, domain.ErrNotImplemented
		}
		if err := s.store.Upsert(ctx, &report); err != nil {
			return nil, fmt.Errorf("saving report: %w", err)
		}
		logger.Info("saved report %s (%s)", report.ID, report.Header.DriverLabel())
	}

	return &report, nil
}

// List returns stored reports without their full text.
func (s *ReportService) List(ctx context.Context) ([]domain.ReportSummary, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Get retrieves a stored report.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// Delete removes a stored report.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Delete(ctx, id)
}

// Clear removes all stored reports.
func (s *ReportService) Clear(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx)
}

// Diff compares two structured values path by path.
func (s *ReportService) Diff(a, b any) ([]domain.DiffEntry, error) {
	entries, err := structdiff.Values(a, b)
	if err != nil {
		return nil, fmt.Errorf("diff: %v: %w", err, domain.ErrInvalidInput)
	}
	if entries == nil {
		entries = []domain.DiffEntry{}
	}
	return entries, nil
}

// ComparePolicies diffs two stored policies.
func (s *ReportService) ComparePolicies(ctx context.Context, a, b driving.PolicyRef) ([]domain.DiffEntry, error) {
	pa, err := s.policy(ctx, a)
	if err != nil {
		return nil, err
	}
	pb, err := s.policy(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.Diff(pa, pb)
}

// Export renders a stored report.
func (s *ReportService) Export(ctx context.Context, id string) (*driving.ExportResult, error) {
	if s.exporter == nil {
		return nil, domain.ErrNotImplemented
	}
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.exporter.Export(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", id, err)
	}

	return &driving.ExportResult{
		FileName:    ExportFileName(id, s.exporter.Extension()),
		ContentType: s.exporter.ContentType(),
		Data:        data,
	}, nil
}

// SupportedExtensions lists the file extensions that can be parsed.
func (s *ReportService) SupportedExtensions() []string {
	if s.pages == nil {
		return nil
	}
	return s.pages.Extensions()
}

// ExportFileName returns "report_<first 8 chars of id><ext>".
func ExportFileName(id, ext string) string {
	if len(id) > exportIDLength {
		id = id[:exportIDLength]
	}
	return "report_" + id + ext
}

func (s *ReportService) policy(ctx context.Context, ref driving.PolicyRef) (*domain.Policy, error) {
	report, err := s.Get(ctx, ref.ReportID)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", ref.ReportID, err)
	}
	if ref.Index < 0 || ref.Index >= len(report.Policies) {
		return nil, fmt.Errorf("report %s has %d policies, index %d: %w",
			ref.ReportID, len(report.Policies), ref.Index, domain.ErrInvalidInput)
	}
	return &report.Policies[ref.Index], nil
}
