package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
)

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// Upsert stores or replaces a report.
func (s *reportStore) Upsert(ctx context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}

	summaryJSON, err := json.Marshal(report.Summary())
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}

	var parsedAt any
	if !report.ParsedAt.IsZero() {
		parsedAt = report.ParsedAt.UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO reports (id, file_name, driver_name, report_date, policy_count, summary, full_text, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			file_name = excluded.file_name,
			driver_name = excluded.driver_name,
			report_date = excluded.report_date,
			policy_count = excluded.policy_count,
			summary = excluded.summary,
			full_text = excluded.full_text,
			parsed_at = excluded.parsed_at
	`, report.ID, report.FileName,
		nullString(domain.Deref(report.Header.DriverName)), nullString(domain.Deref(report.Header.ReportDate)),
		len(report.Policies), string(summaryJSON), report.FullText, parsedAt)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// List returns report summaries ordered by ID.
func (s *reportStore) List(ctx context.Context) ([]domain.ReportSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT summary FROM reports ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	summaries := []domain.ReportSummary{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		var summary domain.ReportSummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, fmt.Errorf("unmarshaling summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return summaries, nil
}

// Get retrieves a report by ID.
func (s *reportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT summary, full_text FROM reports WHERE id = ?", id)

	var raw, fullText string
	if err := row.Scan(&raw, &fullText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	var summary domain.ReportSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("unmarshaling summary: %w", err)
	}

	return fromSummary(summary, fullText), nil
}

// Delete removes a report by ID.
func (s *reportStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear removes every report.
func (s *reportStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM reports"); err != nil {
		return fmt.Errorf("clearing reports: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *reportStore) Close() error {
	return s.store.Close()
}

func fromSummary(sum domain.ReportSummary, fullText string) *domain.Report {
	return &domain.Report{
		ID:                sum.ID,
		FileName:          sum.FileName,
		Header:            sum.Header,
		Policies:          sum.Policies,
		PreviousInquiries: sum.PreviousInquiries,
		Claims:            sum.Claims,
		PagesCount:        sum.PagesCount,
		ExtractionStats:   sum.ExtractionStats,
		Correlation:       sum.Correlation,
		FullText:          fullText,
		ParsedAt:          sum.ParsedAt,
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
