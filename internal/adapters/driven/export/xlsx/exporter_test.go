package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

func strp(s string) *string { return &s }

func intp(n int) *int { return &n }

func testReport() *domain.Report {
	return &domain.Report{
		ID:       "abc123",
		FileName: "dash.pdf",
		Header: domain.Header{
			DriverName:       strp("REDDY, VISHWANAUTH"),
			DLN:              strp("R1234-56789-01234"),
			Province:         strp("ON"),
			ClaimsLast6Years: intp(2),
		},
		Policies: []domain.Policy{
			{
				Header: domain.PolicyHeader{PolicyNumber: strp("OLD-1"), Insurer: strp("Aviva"), StartOfEarliestTerm: "05/01/2021"},
				Operators: []domain.Operator{
					{Name: strp("REDDY, VISHWANAUTH"), DLN: strp("R1234-56789-01234")},
				},
				Vehicles: []domain.Vehicle{{Label: "Vehicle #1", Year: "2018", VIN: strp("1HGCM82633A004352")}},
			},
			{
				Header: domain.PolicyHeader{PolicyNumber: strp("NEW-2"), RangeInsurerStatus: "Policy #2 raw line"},
			},
		},
		Claims: []domain.Claim{
			{DateOfLoss: strp("03/04/2022"), Insurer: strp("Aviva"), AtFault: true, AtFaultPct: intp(100), Subtotal: "1057.00"},
		},
		PreviousInquiries: []domain.Inquiry{{Date: "01/02/2025", Who: "Broker Inc"}},
	}
}

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

func TestExporter_Metadata(t *testing.T) {
	e := New()

	assert.Equal(t, ".xlsx", e.Extension())
	assert.Contains(t, e.ContentType(), "spreadsheetml")
}

func TestExporter_Sheets(t *testing.T) {
	data, err := New().Export(context.Background(), testReport())
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{
		SheetDriver, SheetPolicies, SheetOperators, SheetVehicles, SheetClaims, SheetInquiries,
	}, f.GetSheetList())
}

func TestExporter_Driver(t *testing.T) {
	data, err := New().Export(context.Background(), testReport())
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, "Driver Name", cell(t, f, SheetDriver, "A1"))
	assert.Equal(t, "REDDY, VISHWANAUTH", cell(t, f, SheetDriver, "B1"))
	assert.Equal(t, Placeholder, cell(t, f, SheetDriver, "B2"))
	assert.Equal(t, "R1234-56789-01234 ON", cell(t, f, SheetDriver, "B3"))
	assert.Equal(t, "2", cell(t, f, SheetDriver, "B7"))
}

func TestExporter_PoliciesNewestFirst(t *testing.T) {
	data, err := New().Export(context.Background(), testReport())
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, "Policy #", cell(t, f, SheetPolicies, "B1"))
	assert.Equal(t, "2", cell(t, f, SheetPolicies, "A2"))
	assert.Equal(t, "NEW-2", cell(t, f, SheetPolicies, "B2"))
	assert.Equal(t, "Policy #2 raw line", cell(t, f, SheetPolicies, "C2"))
	assert.Equal(t, Placeholder, cell(t, f, SheetPolicies, "I2"))
	assert.Equal(t, "OLD-1", cell(t, f, SheetPolicies, "B3"))
	assert.Equal(t, "Aviva", cell(t, f, SheetPolicies, "C3"))
	assert.Equal(t, "05/01/2021", cell(t, f, SheetPolicies, "I3"))
}

func TestExporter_Rows(t *testing.T) {
	data, err := New().Export(context.Background(), testReport())
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, "R1234-56789-01234", cell(t, f, SheetOperators, "C2"))
	assert.Equal(t, "1HGCM82633A004352", cell(t, f, SheetVehicles, "E2"))
	assert.Equal(t, "#1", cell(t, f, SheetClaims, "A2"))
	assert.Equal(t, "Yes", cell(t, f, SheetClaims, "E2"))
	assert.Equal(t, "100", cell(t, f, SheetClaims, "F2"))
	assert.Equal(t, "1057.00", cell(t, f, SheetClaims, "J2"))
	assert.Equal(t, "Broker Inc", cell(t, f, SheetInquiries, "B2"))
}

func TestExporter_EmptyReport(t *testing.T) {
	data, err := New().Export(context.Background(), &domain.Report{ID: "empty"})
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, "Date", cell(t, f, SheetInquiries, "A1"))
	assert.Equal(t, "", cell(t, f, SheetInquiries, "A2"))
}

func TestExporter_NilReport(t *testing.T) {
	_, err := New().Export(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Export(ctx, testReport())

	assert.ErrorIs(t, err, context.Canceled)
}
