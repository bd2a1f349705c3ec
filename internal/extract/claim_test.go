package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

func TestParseClaims_Sample(t *testing.T) {
	claims := ParseClaims(loadSample(t))
	require.Len(t, claims, 2)

	c := claims[0]
	assert.Equal(t, "1", domain.Deref(c.ClaimNumber))
	assert.Equal(t, "07/12/2023", domain.Deref(c.DateOfLoss))
	assert.Equal(t, "Aviva Canada", domain.Deref(c.Insurer))
	assert.Equal(t, "07/14/2023", domain.Deref(c.DateReported))
	assert.Equal(t, "2018 HONDA CIVIC LX", domain.Deref(c.Vehicle))
	assert.Equal(t, "2HGFC2F59JH512345", domain.Deref(c.VIN))
	assert.Equal(t, "Collision", domain.Deref(c.Coverage))
	assert.Equal(t, "Closed", domain.Deref(c.ClaimStatus))
	assert.True(t, c.AtFault)
	require.NotNil(t, c.AtFaultPct)
	assert.Equal(t, 35, *c.AtFaultPct)
	assert.Equal(t, "1057.00", domain.Deref(c.TotalLoss))
	assert.Nil(t, c.TotalExpense)
	assert.Equal(t, "1057.00", c.Subtotal)

	require.Len(t, c.KOLs, 1)
	assert.Equal(t, domain.KOL{Code: "12", Description: "Collision", Loss: "1000.00", Expense: "57.00"}, c.KOLs[0])

	assert.Equal(t, "REDDY, VISHWANAUTH", domain.Deref(c.FirstParty.Name))
	assert.Equal(t, "R1234-56789-01234", domain.Deref(c.FirstParty.License))
	assert.Equal(t, "DOE, JANE", domain.Deref(c.ThirdParty.Name))
	assert.Equal(t, "D1111-22222-33333", domain.Deref(c.ThirdParty.License))

	c = claims[1]
	assert.Equal(t, "Intact Insurance", domain.Deref(c.Insurer))
	assert.False(t, c.AtFault)
	assert.Equal(t, "2400.50", domain.Deref(c.TotalLoss))
	assert.Equal(t, "100.00", domain.Deref(c.TotalExpense))
	assert.Equal(t, "2500.50", c.Subtotal)
	assert.Nil(t, c.Vehicle)
	assert.Nil(t, c.VIN)
	assert.Empty(t, c.KOLs)
	assert.Nil(t, c.FirstParty.Name)
}

func TestAtFault(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected bool
	}{
		{name: "zero percent", block: "At-Fault: 0%", expected: false},
		{name: "partial percent", block: "At-Fault: 35%", expected: true},
		{name: "full percent without colon", block: "At Fault 100 %", expected: true},
		{name: "zero without percent sign", block: "At-Fault: 0", expected: false},
		{name: "number without percent sign", block: "At-Fault: 50", expected: true},
		{name: "year is not a percentage", block: "At-Fault 2021-03-04", expected: true},
		{name: "keyword without percent", block: "Date of Loss 2020-01-01 Aviva At-Fault", expected: true},
		{name: "lower case keyword", block: "driver was at-fault", expected: true},
		{name: "absent", block: "Not applicable", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := atFault(tt.block)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAtFault_NumberOnNextLineIsNotAPercent(t *testing.T) {
	got, pct := atFault("Claim #1 Date of Loss 2020-01-01 Aviva At-Fault\n2020-01-05 reported")

	assert.True(t, got)
	assert.Nil(t, pct)
}

func TestClaimTotals(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		loss     *string
		expense  *string
		subtotal string
	}{
		{name: "both absent", block: "Claim #1 x", subtotal: "0.00"},
		{name: "loss only", block: "Total Loss: $1,057.00", loss: strp("1057.00"), subtotal: "1057.00"},
		{name: "expense only whole dollars", block: "Total Expense: 250", expense: strp("250.00"), subtotal: "250.00"},
		{
			name:     "both with separators",
			block:    "TOTAL LOSS $12,345.67\nTotal Expense: $1,000",
			loss:     strp("12345.67"),
			expense:  strp("1000.00"),
			subtotal: "13345.67",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseClaim(tt.block, NopTracer{})
			assert.Equal(t, tt.loss, c.TotalLoss)
			assert.Equal(t, tt.expense, c.TotalExpense)
			assert.Equal(t, tt.subtotal, c.Subtotal)
		})
	}
}

func TestKindsOfLoss_PreservesOrder(t *testing.T) {
	block := "KOL01 - Bodily Injury: $5,000.00 (Loss); $250.00 (Expense)\n" +
		"KOL12 - Collision: $1,000 (Loss); $0.00 (Expense)\n"

	kols := kindsOfLoss(block)

	require.Len(t, kols, 2)
	assert.Equal(t, "01", kols[0].Code)
	assert.Equal(t, "Bodily Injury", kols[0].Description)
	assert.Equal(t, "5000.00", kols[0].Loss)
	assert.Equal(t, "250.00", kols[0].Expense)
	assert.Equal(t, "12", kols[1].Code)
	assert.Equal(t, "1000.00", kols[1].Loss)
}

func TestParseClaim_LowerCaseVIN(t *testing.T) {
	c := parseClaim("Claim #4 Date of Loss 2022-06-01 Aviva At-Fault: 0\nVehicle: 2019 MAZDA 3 - VIN 3mze5bd8kf1234567", NopTracer{})

	assert.Equal(t, "3MZE5BD8KF1234567", domain.Deref(c.VIN))
	assert.Equal(t, "2019 MAZDA 3", domain.Deref(c.Vehicle))
	assert.False(t, c.AtFault)
}

func TestParseClaim_VehicleFallback(t *testing.T) {
	c := parseClaim("Claim #3 Date of Loss 2021-01-01 X At-Fault\nVehicle: Unlisted trailer VIN: none", NopTracer{})

	assert.Equal(t, "Unlisted trailer", domain.Deref(c.Vehicle))
}
