package mcp

import (
	"context"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	summaries []domain.ReportSummary
	report    *domain.Report
	diff      []domain.DiffEntry
	err       error

	// captured arguments
	parsedName  string
	parsedPages []string
	parsedOpts  driving.ParseOptions
	refA, refB  driving.PolicyRef
}

func (m *mockReportService) ParseFile(
	_ context.Context,
	_ string,
	_ driving.ParseOptions,
) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) ParseBytes(
	_ context.Context,
	_ string,
	_ []byte,
	_ driving.ParseOptions,
) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) ParsePages(
	_ context.Context,
	name string,
	pages []string,
	opts driving.ParseOptions,
) (*domain.Report, error) {
	m.parsedName = name
	m.parsedPages = pages
	m.parsedOpts = opts
	return m.report, m.err
}

func (m *mockReportService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return m.summaries, m.err
}

func (m *mockReportService) Get(_ context.Context, _ string) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockReportService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockReportService) Diff(_, _ any) ([]domain.DiffEntry, error) {
	return m.diff, m.err
}

func (m *mockReportService) ComparePolicies(
	_ context.Context,
	a, b driving.PolicyRef,
) ([]domain.DiffEntry, error) {
	m.refA, m.refB = a, b
	return m.diff, m.err
}

func (m *mockReportService) Export(_ context.Context, _ string) (*driving.ExportResult, error) {
	return nil, m.err
}

func (m *mockReportService) SupportedExtensions() []string {
	return []string{".pdf", ".txt"}
}

func strPtr(s string) *string { return &s }

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:       "abc123",
		FileName: "dash.pdf",
		Header: domain.Header{
			DriverName: strPtr("REDDY, VISHWANAUTH"),
			ReportDate: strPtr("11/07/2025"),
		},
		Policies: []domain.Policy{{}, {}},
		Claims:   []domain.Claim{{}},
		FullText: "DRIVER REPORT",
	}
}
