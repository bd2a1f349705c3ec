// Package xlsx renders parsed reports as Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
	"github.com/custodia-labs/dashreport/internal/logger"
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Sheet names in workbook order.
const (
	SheetDriver    = "Driver"
	SheetPolicies  = "Policies"
	SheetOperators = "Operators"
	SheetVehicles  = "Vehicles"
	SheetClaims    = "Claims"
	SheetInquiries = "Inquiries"
)

// Placeholder is written for absent values.
const Placeholder = "—"

const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter writes one sheet per report section.
type Exporter struct{}

// New creates a new XLSX exporter.
func New() *Exporter {
	return &Exporter{}
}

// Extension returns ".xlsx".
func (e *Exporter) Extension() string {
	return ".xlsx"
}

// ContentType returns the XLSX MIME type.
func (e *Exporter) ContentType() string {
	return contentType
}

// Export renders the report into workbook bytes.
func (e *Exporter) Export(ctx context.Context, report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, domain.ErrInvalidInput
	}

	f := excelize.NewFile()
	defer f.Close()

	w := &workbook{f: f}
	if err := w.init(); err != nil {
		return nil, err
	}

	writers := []func(*domain.Report) error{
		w.driver,
		w.policies,
		w.operators,
		w.vehicles,
		w.claims,
		w.inquiries,
	}
	for _, write := range writers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := write(report); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Debug("export.xlsx report=%s policies=%d claims=%d bytes=%d",
		report.ID, len(report.Policies), len(report.Claims), buf.Len())
	return buf.Bytes(), nil
}

type workbook struct {
	f           *excelize.File
	headerStyle int
	labelStyle  int
}

func (w *workbook) init() error {
	// NewFile starts with Sheet1; reuse it as the first sheet.
	if err := w.f.SetSheetName("Sheet1", SheetDriver); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetPolicies, SheetOperators, SheetVehicles, SheetClaims, SheetInquiries} {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}
	w.f.SetActiveSheet(0)

	var err error
	w.headerStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F0EDFF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	w.labelStyle, err = w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("label style: %w", err)
	}
	return nil
}

// table writes a header row followed by data rows starting at A1.
func (w *workbook) table(sheet string, headers []string, rows [][]any) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("%s header: %w", sheet, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := w.f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("%s row %d: %w", sheet, r+1, err)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = w.f.SetColWidth(sheet, "A", lastCol, 18)
	return nil
}

func (w *workbook) driver(r *domain.Report) error {
	h := r.Header
	dln := text(h.DLN)
	if p := domain.Deref(h.Province); p != "" && h.DLN != nil {
		dln += " " + p
	}
	rows := [][]any{
		{"Driver Name", text(h.DriverName)},
		{"Address", text(h.Address)},
		{"DLN", dln},
		{"Date of Birth", text(h.DateOfBirth)},
		{"Gender", text(h.Gender)},
		{"Marital Status", text(h.MaritalStatus)},
		{"Claims (6y)", number(h.ClaimsLast6Years)},
		{"At-Fault Claims (6y)", number(h.AtFaultClaimsLast6Years)},
		{"Years Continuous Insurance", number(h.YearsContinuousInsurance)},
		{"Report Date", text(h.ReportDate)},
		{"Source File", r.FileName},
		{"Report ID", r.ID},
	}
	for i, row := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := w.f.SetCellValue(SheetDriver, label, row[0]); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
		if err := w.f.SetCellValue(SheetDriver, value, row[1]); err != nil {
			return fmt.Errorf("driver: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := w.f.SetCellStyle(SheetDriver, "A1", last, w.labelStyle); err != nil {
		return fmt.Errorf("driver style: %w", err)
	}
	_ = w.f.SetColWidth(SheetDriver, "A", "A", 28)
	_ = w.f.SetColWidth(SheetDriver, "B", "B", 48)
	return nil
}

// policies lists policies in reverse document order.
func (w *workbook) policies(r *domain.Report) error {
	headers := []string{
		"#", "Policy #", "Company", "Effective Date", "Expiry Date", "Cancellation Date",
		"Status", "Policyholder", "Start of Earliest Term", "Operators", "Vehicles",
	}
	rows := make([][]any, 0, len(r.Policies))
	for i := len(r.Policies) - 1; i >= 0; i-- {
		p := r.Policies[i]
		ph := p.Header
		company := domain.Deref(ph.Insurer)
		if company == "" {
			company = ph.RangeInsurerStatus
		}
		rows = append(rows, []any{
			i + 1,
			text(ph.PolicyNumber),
			orPlaceholder(company),
			text(ph.EffectiveDate),
			text(ph.ExpiryDate),
			text(ph.CancellationDate),
			text(ph.Status),
			text(ph.Policyholder),
			orPlaceholder(ph.StartOfEarliestTerm),
			len(p.Operators),
			len(p.Vehicles),
		})
	}
	return w.table(SheetPolicies, headers, rows)
}

func (w *workbook) operators(r *domain.Report) error {
	headers := []string{"Policy", "Operator", "DLN", "Province", "Relationship", "Year of Birth", "Start Term", "End Term", "Vehicle"}
	var rows [][]any
	for i, p := range r.Policies {
		for _, op := range p.Operators {
			rows = append(rows, []any{
				i + 1,
				text(op.Name),
				text(op.DLN),
				text(op.Province),
				text(op.Relationship),
				text(op.YearOfBirth),
				text(op.StartTerm),
				text(op.EndTerm),
				text(op.VehicleRef),
			})
		}
	}
	return w.table(SheetOperators, headers, rows)
}

func (w *workbook) vehicles(r *domain.Report) error {
	headers := []string{"Policy", "Vehicle", "Year", "Model", "VIN", "Coverage"}
	var rows [][]any
	for i, p := range r.Policies {
		for _, v := range p.Vehicles {
			rows = append(rows, []any{
				i + 1,
				orPlaceholder(v.Label),
				orPlaceholder(v.Year),
				text(v.Model),
				text(v.VIN),
				text(v.Coverage),
			})
		}
	}
	return w.table(SheetVehicles, headers, rows)
}

func (w *workbook) claims(r *domain.Report) error {
	headers := []string{
		"Claim", "Claim Number", "Date of Loss", "Insurer", "At-Fault", "At-Fault %",
		"Status", "Total Loss", "Total Expense", "Subtotal",
	}
	rows := make([][]any, 0, len(r.Claims))
	for i, c := range r.Claims {
		rows = append(rows, []any{
			"#" + strconv.Itoa(i+1),
			text(c.ClaimNumber),
			text(c.DateOfLoss),
			text(c.Insurer),
			yesNo(c.AtFault),
			number(c.AtFaultPct),
			text(c.ClaimStatus),
			text(c.TotalLoss),
			text(c.TotalExpense),
			c.Subtotal,
		})
	}
	return w.table(SheetClaims, headers, rows)
}

func (w *workbook) inquiries(r *domain.Report) error {
	rows := make([][]any, 0, len(r.PreviousInquiries))
	for _, inq := range r.PreviousInquiries {
		rows = append(rows, []any{orPlaceholder(inq.Date), orPlaceholder(inq.Who)})
	}
	return w.table(SheetInquiries, []string{"Date", "Who"}, rows)
}

func text(s *string) string {
	return orPlaceholder(domain.Deref(s))
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

func number(n *int) any {
	if n == nil {
		return Placeholder
	}
	return *n
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
