package tui

import (
	"context"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
)

// MockReportService is a mock implementation of driving.ReportService.
type MockReportService struct {
	driving.ReportService

	Summaries []domain.ReportSummary
	Report    *domain.Report
	Err       error
}

func (m *MockReportService) List(_ context.Context) ([]domain.ReportSummary, error) {
	return m.Summaries, m.Err
}

func (m *MockReportService) Get(_ context.Context, _ string) (*domain.Report, error) {
	return m.Report, m.Err
}

func (m *MockReportService) Delete(_ context.Context, _ string) error {
	return m.Err
}

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	driving.SettingsService
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) ConfigPath() string {
	return "config.toml"
}
