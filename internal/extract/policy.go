package extract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

const policyScanLines = 30

var (
	polFirstLine = regexp.MustCompile(
		`^(Policy #\d+)\s+(\d{4}-\d{2}-\d{2}\s+to\s+\d{4}-\d{2}-\d{2})\s+(.+?)\s+` +
			`(Active|Inactive|Lapsed|Expired|Non-?Renewed.*|Cancelled.*)$`)
	polRange       = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})`)
	polCancelled   = label("Cancellation Date", `([A-Za-z0-9\-\\/]+|N/A)`)
	polAddress     = label("Policyholder Address", `(.+)`)
	polOperators   = label("Number of Reported Operators", `([0-9]+)`)
	polVehicles    = label("Number of Private Passenger Vehicles", `([0-9]+)`)
	polHolderTail  = regexp.MustCompile(`\s+(?:Expiry|Effective|Cancellation).*$`)
	isoDateOnly    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	effectiveLabel = label("Effective Date", `(\d{4}-\d{2}-\d{2}|\d{2}[-/]\d{2}[-/]\d{4})`)
	expiryLabel    = label("Expiry Date", `(\d{4}-\d{2}-\d{2}|\d{2}[-/]\d{2}[-/]\d{4})`)

	policyNumber = Chain{
		{Pattern: label("Policy Number", `([A-Z0-9][A-Z0-9\-]*)`)},
		{Pattern: regexp.MustCompile(`Policy No\.?\s*:\s*([A-Z0-9][A-Z0-9\-]*)`)},
		{Pattern: regexp.MustCompile(`Policy #:\s*([A-Z0-9][A-Z0-9\-]*)`)},
		{
			Pattern: regexp.MustCompile(`(?m)^Policy #\d+[ \t]+([A-Z0-9][A-Z0-9\-]*)`),
			Accept:  func(v string) bool { return !isoDateOnly.MatchString(v) },
		},
	}

	// Bare labels are anchored so "Relationship to Policyholder:" is
	// never read as the policyholder.
	policyholder = Chain{
		{Pattern: label("Policyholder Name", `([^\n]+)`)},
		{Pattern: label("Policy Holder Name", `([^\n]+)`)},
		{Pattern: lineLabel("Policyholder", `([^\n]+)`)},
		{Pattern: lineLabel("Policy Holder", `([^\n]+)`)},
		{Pattern: label("Insured Name", `([^\n]+)`)},
		{Pattern: lineLabel("Insured", `([^\n]+)`)},
	}

	effectiveScan = lineScan{
		maxLines: policyScanLines,
		ignore:   scanIgnore,
		keywords: regexp.MustCompile(`\b(?:Policy Start|Period From|Start|Effective|Issue|Beginning)\b`),
	}
	expiryScan = lineScan{
		maxLines: policyScanLines,
		ignore:   scanIgnore,
		keywords: regexp.MustCompile(`\b(?:Period To|End|Expiry|Expiration)\b`),
	}
	// Operator term lines carry "Start"/"End" but are not policy dates.
	scanIgnore = []string{
		"Print", "Generated", "Revised", "Billed", "Printed", "Report Date",
		"Earliest Term", "Latest Term",
	}
)

var (
	opName         = regexp.MustCompile(`^Operator:[ \t]*([^\n]+)`)
	opNameTail     = regexp.MustCompile(`\s+Vehicle\s*#.*$`)
	opRelationship = label("Relationship to Policyholder", `([^\n]+)`)
	opBirthYear    = label("Year of Birth", `([0-9]+)`)
	opStartTerm    = label("Start of the Earliest Term", `([0-9\-/]+)`)
	opEndTerm      = label("End of the Latest Term", `([0-9\-/]+)`)
	opVehicleRef   = regexp.MustCompile(`(Vehicle #\d+: [^\n]+)`)
)

// lineScan finds a date on the first keyword line near the top of a block.
type lineScan struct {
	maxLines int
	ignore   []string
	keywords *regexp.Regexp
}

// findDate returns the first date after the keyword on the first
// accepted line, or the first date on that line when none follows.
func (s lineScan) findDate(block string) (string, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) > s.maxLines {
		lines = lines[:s.maxLines]
	}
	for _, line := range lines {
		if containsAny(line, s.ignore) {
			continue
		}
		loc := s.keywords.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if d := dateToken.FindString(line[loc[1]:]); d != "" {
			return d, true
		}
		if d := dateToken.FindString(line); d != "" {
			return d, true
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ParsePolicies segments text into policy blocks and parses each one.
// Operators are not yet filtered and start terms are not yet correlated.
func ParsePolicies(text string) []domain.Policy {
	return parsePolicies(text, NopTracer{})
}

func parsePolicies(text string, tr Tracer) []domain.Policy {
	blocks := NewSegmenter(policyDelimiter).Split(text)
	policies := make([]domain.Policy, 0, len(blocks))
	for _, b := range blocks {
		policies = append(policies, parsePolicy(b, tr))
	}
	return policies
}

func parsePolicy(block string, tr Tracer) domain.Policy {
	firstLine, _, _ := strings.Cut(block, "\n")
	firstLine = strings.TrimSpace(firstLine)

	h := domain.PolicyHeader{
		PolicyNumber:        optChain(policyNumber, block),
		CancellationDate:    optDate(polCancelled, block),
		RangeInsurerStatus:  firstLine,
		PolicyholderAddress: optString(polAddress, block),
		ReportedOperators:   optInt(polOperators, block),
		PrivateVehicles:     optInt(polVehicles, block),
	}

	if v, ok := policyholder.Find(block); ok {
		if v = strings.TrimSpace(polHolderTail.ReplaceAllString(v, "")); v != "" {
			h.Policyholder = &v
		}
	}

	rangeDates := polRange.FindStringSubmatch(firstLine)
	h.EffectiveDate = termDate(block, effectiveScan, effectiveLabel, rangeDates, 1)
	h.ExpiryDate = termDate(block, expiryScan, expiryLabel, rangeDates, 2)

	if m := polFirstLine.FindStringSubmatch(firstLine); m != nil {
		h.PolicyRange = ptr(m[2])
		h.Insurer = ptr(strings.TrimSpace(m[3]))
		h.Status = ptr(strings.TrimSpace(m[4]))
	} else if rangeDates != nil {
		h.PolicyRange = ptr(rangeDates[0])
	} else if h.EffectiveDate != nil && h.ExpiryDate != nil {
		h.PolicyRange = ptr(*h.EffectiveDate + " to " + *h.ExpiryDate)
	}

	p := domain.Policy{
		Header:    h,
		Operators: parseOperators(block),
		Vehicles:  parseVehicles(block, tr),
		Raw:       block,
	}

	tr.Trace("policy", "header",
		"policy_number", domain.Deref(h.PolicyNumber),
		"effective", domain.Deref(h.EffectiveDate),
		"expiry", domain.Deref(h.ExpiryDate),
		"operators", len(p.Operators),
		"vehicles", len(p.Vehicles))
	return p
}

// termDate tries the bounded line scan, then the labelled field, then
// the range on the first line.
func termDate(block string, scan lineScan, labelled *regexp.Regexp, rangeDates []string, idx int) *string {
	if d, ok := scan.findDate(block); ok {
		return ptr(NormalizeDate(d))
	}
	if d := optDate(labelled, block); d != nil {
		return d
	}
	if rangeDates != nil {
		return ptr(NormalizeDate(rangeDates[idx]))
	}
	return nil
}

func parseOperators(block string) []domain.Operator {
	blocks := NewSegmenter(operatorDelimiter).Split(block)
	ops := make([]domain.Operator, 0, len(blocks))
	for _, b := range blocks {
		ops = append(ops, parseOperator(b))
	}
	return ops
}

// parseOperator reads one operator sub-block. Fields other than the
// vehicle reference come from the text before the first vehicle line.
// Start terms are kept as written; the correlator normalises them.
func parseOperator(raw string) domain.Operator {
	block := truncateAt(raw, vehicleDelimiter)
	op := domain.Operator{
		Relationship: optString(opRelationship, block),
		YearOfBirth:  optString(opBirthYear, block),
		StartTerm:    optString(opStartTerm, block),
		EndTerm:      optDate(opEndTerm, block),
		VehicleRef:   optString(opVehicleRef, raw),
	}
	if name, ok := Extract(opName, block); ok {
		if name = strings.TrimSpace(opNameTail.ReplaceAllString(name, "")); name != "" {
			op.Name = &name
		}
	}
	op.DLN, op.Province = dlnProvince(block)
	return op
}

func parseVehicles(block string, tr Tracer) []domain.Vehicle {
	var vehicles []domain.Vehicle
	for _, b := range NewSegmenter(vehicleDelimiter).Split(block) {
		if v, ok := parseVehicle(b, tr); ok {
			vehicles = append(vehicles, v)
		}
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles
}
