package domain

import "time"

// CorrelationDocumentOrder marks start-of-term values that were shifted
// with document order assumed chronological. The direction of that order
// is not verified against the source.
const CorrelationDocumentOrder = "document_order"

// Report is a parsed DASH driver report.
// JSON field names are stable because stored reports and API clients
// depend on them.
type Report struct {
	// ID is a deterministic digest of the file name, driver name,
	// report date and policy count.
	ID string `json:"_id" yaml:"_id"`

	// FileName is the name the document was uploaded or parsed under.
	FileName string `json:"file_name" yaml:"file_name"`

	Header            Header    `json:"header" yaml:"header"`
	Policies          []Policy  `json:"policies" yaml:"policies"`
	PreviousInquiries []Inquiry `json:"previous_inquiries" yaml:"previous_inquiries"`
	Claims            []Claim   `json:"claims" yaml:"claims"`

	// PagesCount is the number of pages the source produced.
	PagesCount int `json:"pages_count" yaml:"pages_count"`

	// ExtractionStats holds the character count of each page.
	ExtractionStats []int `json:"extraction_stats" yaml:"extraction_stats"`

	// Correlation describes how start-of-term values were derived.
	Correlation Correlation `json:"correlation" yaml:"correlation"`

	// FullText is the concatenated page text. List views omit it.
	FullText string `json:"full_text" yaml:"full_text"`

	// ParsedAt is when the report was produced. Zero for bare parses.
	ParsedAt time.Time `json:"parsed_at" yaml:"parsed_at"`
}

// Correlation records the assumptions behind cross-policy start terms.
type Correlation struct {
	// Assumption names the ordering rule used for the shift.
	Assumption string `json:"assumption" yaml:"assumption"`

	// GroupSize is the number of policies the header driver appears in.
	GroupSize int `json:"group_size" yaml:"group_size"`
}

// Header holds driver-level fields from the report cover section.
// Nil pointers mean the field was not found.
type Header struct {
	DriverName     *string `json:"driver_name" yaml:"driver_name"`
	DLN            *string `json:"dln" yaml:"dln"`
	Province       *string `json:"province" yaml:"province"`
	DateOfBirth    *string `json:"date_of_birth" yaml:"date_of_birth"`
	ReportDate     *string `json:"report_date" yaml:"report_date"`
	Requestor      *string `json:"requestor" yaml:"requestor"`
	Company        *string `json:"company" yaml:"company"`
	LastDataUpdate *string `json:"last_data_update" yaml:"last_data_update"`
	YearsOfData    *string `json:"years_of_data" yaml:"years_of_data"`
	Address        *string `json:"address" yaml:"address"`

	ClaimsLast6Years        *int `json:"num_claims_6y" yaml:"num_claims_6y"`
	AtFaultClaimsLast6Years *int `json:"num_atfault_6y" yaml:"num_atfault_6y"`
	CompLossesLast6Years    *int `json:"num_comp_losses_6y" yaml:"num_comp_losses_6y"`
	DCPDClaimsLast6Years    *int `json:"num_dcpd_6y" yaml:"num_dcpd_6y"`

	Gender                   *string `json:"gender" yaml:"gender"`
	MaritalStatus            *string `json:"marital_status" yaml:"marital_status"`
	YearsLicensed            *int    `json:"years_licensed" yaml:"years_licensed"`
	YearsContinuousInsurance *int    `json:"years_cont_insurance" yaml:"years_cont_insurance"`
	YearsClaimsFree          *int    `json:"years_claims_free" yaml:"years_claims_free"`
	DriverTraining           *string `json:"driver_training" yaml:"driver_training"`
}

// Policy is one insurance policy block of the report.
type Policy struct {
	Header    PolicyHeader `json:"header" yaml:"header"`
	Operators []Operator   `json:"operators" yaml:"operators"`
	Vehicles  []Vehicle    `json:"vehicles" yaml:"vehicles"`

	// Raw is the original block text.
	Raw string `json:"raw" yaml:"raw"`
}

// PolicyHeader holds the fields of a policy block before its operators.
type PolicyHeader struct {
	PolicyNumber     *string `json:"policy_number" yaml:"policy_number"`
	EffectiveDate    *string `json:"effective_date" yaml:"effective_date"`
	ExpiryDate       *string `json:"expiry_date" yaml:"expiry_date"`
	CancellationDate *string `json:"cancellation_date" yaml:"cancellation_date"`
	PolicyRange      *string `json:"policy_range" yaml:"policy_range"`
	Insurer          *string `json:"insurer" yaml:"insurer"`
	Status           *string `json:"status" yaml:"status"`

	// RangeInsurerStatus is the raw first line of the block.
	RangeInsurerStatus string `json:"range_insurer_status" yaml:"range_insurer_status"`

	Policyholder        *string `json:"policyholder_name" yaml:"policyholder_name"`
	PolicyholderAddress *string `json:"policyholder_address" yaml:"policyholder_address"`
	ReportedOperators   *int    `json:"num_reported_operators" yaml:"num_reported_operators"`
	PrivateVehicles     *int    `json:"num_pp_vehicles" yaml:"num_pp_vehicles"`

	// StartOfEarliestTerm is always present; empty when the header
	// driver is not an operator on this policy.
	StartOfEarliestTerm string `json:"start_of_earliest_term" yaml:"start_of_earliest_term"`
}

// Operator is a driver listed on a policy.
type Operator struct {
	Name         *string `json:"operator_name" yaml:"operator_name"`
	DLN          *string `json:"dln" yaml:"dln"`
	Province     *string `json:"province" yaml:"province"`
	Relationship *string `json:"relationship" yaml:"relationship"`
	YearOfBirth  *string `json:"year_of_birth" yaml:"year_of_birth"`
	StartTerm    *string `json:"start_term" yaml:"start_term"`
	EndTerm      *string `json:"end_term" yaml:"end_term"`
	VehicleRef   *string `json:"vehicle_ref" yaml:"vehicle_ref"`
}

// Vehicle is a vehicle listed on a policy.
type Vehicle struct {
	Label    string  `json:"vehicle" yaml:"vehicle"`
	Year     string  `json:"year" yaml:"year"`
	Model    *string `json:"model" yaml:"model"`
	VIN      *string `json:"vin" yaml:"vin"`
	Coverage *string `json:"coverage" yaml:"coverage"`
}

// Claim is one loss event.
type Claim struct {
	ClaimNumber  *string `json:"claim_number" yaml:"claim_number"`
	DateOfLoss   *string `json:"date_of_loss" yaml:"date_of_loss"`
	Insurer      *string `json:"insurer" yaml:"insurer"`
	AtFault      bool    `json:"at_fault" yaml:"at_fault"`
	AtFaultPct   *int    `json:"at_fault_pct" yaml:"at_fault_pct"`
	DateReported *string `json:"date_reported" yaml:"date_reported"`
	Vehicle      *string `json:"vehicle" yaml:"vehicle"`
	VIN          *string `json:"vin" yaml:"vin"`
	Coverage     *string `json:"coverage" yaml:"coverage"`
	ClaimStatus  *string `json:"claim_status" yaml:"claim_status"`

	// Monetary amounts are two-decimal strings without separators.
	// Subtotal is always set; missing operands count as zero.
	TotalLoss    *string `json:"total_loss" yaml:"total_loss"`
	TotalExpense *string `json:"total_expense" yaml:"total_expense"`
	Subtotal     string  `json:"subtotal" yaml:"subtotal"`

	KOLs       []KOL `json:"kind_of_loss" yaml:"kind_of_loss"`
	FirstParty Party `json:"first_party_driver" yaml:"first_party_driver"`
	ThirdParty Party `json:"third_party_driver" yaml:"third_party_driver"`
}

// KOL is a kind-of-loss line item of a claim.
type KOL struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Loss        string `json:"loss" yaml:"loss"`
	Expense     string `json:"expense" yaml:"expense"`
}

// Party is a driver involved in a claim.
type Party struct {
	Name    *string `json:"name" yaml:"name"`
	License *string `json:"license" yaml:"license"`
}

// Inquiry is a prior inquiry against the driver record.
type Inquiry struct {
	Date string `json:"date" yaml:"date"`
	Who  string `json:"who" yaml:"who"`
}

// ReportSummary is a stored report without its full text.
type ReportSummary struct {
	ID                string      `json:"_id" yaml:"_id"`
	FileName          string      `json:"file_name" yaml:"file_name"`
	Header            Header      `json:"header" yaml:"header"`
	Policies          []Policy    `json:"policies" yaml:"policies"`
	PreviousInquiries []Inquiry   `json:"previous_inquiries" yaml:"previous_inquiries"`
	Claims            []Claim     `json:"claims" yaml:"claims"`
	PagesCount        int         `json:"pages_count" yaml:"pages_count"`
	ExtractionStats   []int       `json:"extraction_stats" yaml:"extraction_stats"`
	Correlation       Correlation `json:"correlation" yaml:"correlation"`
	ParsedAt          time.Time   `json:"parsed_at" yaml:"parsed_at"`
}

// Summary returns the report without its full text.
func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ID:                r.ID,
		FileName:          r.FileName,
		Header:            r.Header,
		Policies:          r.Policies,
		PreviousInquiries: r.PreviousInquiries,
		Claims:            r.Claims,
		PagesCount:        r.PagesCount,
		ExtractionStats:   r.ExtractionStats,
		Correlation:       r.Correlation,
		ParsedAt:          r.ParsedAt,
	}
}

// DriverLabel returns the driver name or a placeholder.
func (h Header) DriverLabel() string {
	if h.DriverName == nil || *h.DriverName == "" {
		return "(unknown driver)"
	}
	return *h.DriverName
}

// Deref returns the pointed-to string or the empty string.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
