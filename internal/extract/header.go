package extract

import (
	"regexp"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

var (
	hdrDriverName = regexp.MustCompile(`(?m)DRIVER REPORT\s+(.+?)(?:\s+Report Date:|$)`)
	hdrDLN        = regexp.MustCompile(`DLN:\s*([A-Z0-9\-]+)(?:[ \t]+([A-Za-z]+))?`)
	hdrBirth      = label("Date of Birth", `([0-9\-/]+)`)
	hdrRequestor  = label("Requestor", `(.+)`)
	hdrCompany    = label("Company", `(.+)`)
	hdrLastUpdate = label("Last Data Update", `([0-9\-/]+)`)
	hdrYearsData  = label("Number of Years of Data", `([0-9]+)`)
	hdrAddress    = regexp.MustCompile(`(?s)Address:\s*(.+?)\s+Number of Claims in Last 6 Years:`)

	hdrReportDate = Chain{
		{Pattern: regexp.MustCompile(`Report Date:\s*([0-9:\- ]+(?:EST|UTC|EDT|IST|GMT|CST|PST|MST|AST|NST))`)},
		{Pattern: label("Report Date", `([0-9\-/]+)`)},
	}

	hdrClaims     = label("Number of Claims in Last 6 Years", `([0-9]+)`)
	hdrAtFault    = label("Number of At-Fault Claims in Last 6 Years", `([0-9]+)`)
	hdrCompLosses = label("Number of Comprehensive Losses in Last 6 Years", `([0-9]+)`)
	hdrDCPD       = label("Number of DCPD Claims in Last 6 Years", `([0-9]+)`)

	hdrGender         = label("Gender", `([A-Za-z]+)`)
	hdrMarital        = label("Marital Status", `([A-Za-z]+)`)
	hdrLicensed       = label("Years Licensed", `([0-9]+)`)
	hdrContinuous     = label("Years of Continuous Insurance", `([0-9]+)`)
	hdrClaimsFree     = label("Years Claims Free", `([0-9]+)`)
	hdrDriverTraining = label("Driver Training", `([A-Za-z0-9]+)`)
)

// ParseHeader extracts the driver-level fields from the whole document.
func ParseHeader(text string) domain.Header {
	return parseHeader(text, NopTracer{})
}

func parseHeader(text string, tr Tracer) domain.Header {
	h := domain.Header{
		DriverName:     optString(hdrDriverName, text),
		DateOfBirth:    optDate(hdrBirth, text),
		ReportDate:     normalizePtr(optChain(hdrReportDate, text)),
		Requestor:      optString(hdrRequestor, text),
		Company:        optString(hdrCompany, text),
		LastDataUpdate: optDate(hdrLastUpdate, text),
		YearsOfData:    optString(hdrYearsData, text),

		ClaimsLast6Years:        optInt(hdrClaims, text),
		AtFaultClaimsLast6Years: optInt(hdrAtFault, text),
		CompLossesLast6Years:    optInt(hdrCompLosses, text),
		DCPDClaimsLast6Years:    optInt(hdrDCPD, text),

		Gender:                   optString(hdrGender, text),
		MaritalStatus:            optString(hdrMarital, text),
		YearsLicensed:            optInt(hdrLicensed, text),
		YearsContinuousInsurance: optInt(hdrContinuous, text),
		YearsClaimsFree:          optInt(hdrClaimsFree, text),
		DriverTraining:           optString(hdrDriverTraining, text),
	}

	h.DLN, h.Province = dlnProvince(text)

	if addr, ok := Extract(hdrAddress, text); ok {
		h.Address = ptr(collapse(addr))
	}

	tr.Trace("header", "driver_name", "value", domain.Deref(h.DriverName))
	tr.Trace("header", "dln", "value", domain.Deref(h.DLN), "province", domain.Deref(h.Province))
	return h
}

// dlnProvince reads "DLN: <id> <province>" from the first DLN line.
func dlnProvince(text string) (dln, province *string) {
	m := hdrDLN.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	dln = ptr(m[1])
	if m[2] != "" {
		province = ptr(m[2])
	}
	return dln, province
}
