package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

var (
	clmNumber       = regexp.MustCompile(`^Claim #(\d+)`)
	clmLossInsurer  = regexp.MustCompile(`Date of Loss\s+(\d{4}-\d{2}-\d{2})\s+(.+?)\s+At-?Fault`)
	clmDateOfLoss   = regexp.MustCompile(`Date of Loss\s*:?\s*(\d{4}-\d{2}-\d{2}|\d{2}[-/]\d{2}[-/]\d{4})`)
	clmDateReported = regexp.MustCompile(`Date Reported\s*[:\s]*(\d{4}-\d{2}-\d{2})`)
	clmCoverage     = regexp.MustCompile(`Coverage[ \t]*:?[ \t]*([^\n]+)`)
	clmStatus       = regexp.MustCompile(`Claim Status[ \t]*:?[ \t]*([^\n]+)`)
	clmAtFaultPct   = regexp.MustCompile(`At[-\s]?Fault[ \t]*:?[ \t]*([0-9]{1,3})\b[ \t]*%?`)
	clmAtFaultWord  = regexp.MustCompile(`(?i)\bAt[- ]?Fault\b`)
	clmTotalLoss    = regexp.MustCompile(`(?i)Total Loss\s*[:\s]*\$?([0-9,]+(?:\.[0-9]{2})?)`)
	clmTotalExpense = regexp.MustCompile(`(?i)Total Expense\s*[:\s]*\$?([0-9,]+(?:\.[0-9]{2})?)`)
	clmTrailingDash = regexp.MustCompile(`[\-\s]*$`)

	clmKOL = regexp.MustCompile(
		`KOL(\w+)\s*-\s*([^\n]+?):\s*\$([0-9,]+(?:\.[0-9]{2})?)\s*\(Loss\);\s*\$([0-9,]+(?:\.[0-9]{2})?)\s*\(Expense\)`)

	clmFirstParty = regexp.MustCompile(`(?is)First Party Driver(.+?)(?:Third Party Driver|$)`)
	clmThirdParty = regexp.MustCompile(`(?is)Third Party Driver(.+)$`)

	// clmVIN accepts lower-case VINs; the stored value is upper-cased.
	clmVIN = regexp.MustCompile(`(?i)\b([A-HJ-NPR-Z0-9]{11,17})\b`)

	partyName    = regexp.MustCompile(`Name\s*:\s*(.+)`)
	partyLicense = regexp.MustCompile(`License\s*:\s*(.+)`)

	// clmVehicle stops before a VIN label or a VIN-shaped token.
	clmVehicle = Chain{
		{Pattern: regexp.MustCompile(
			`(?i:vehicle)\s*:?\s*((?:19|20)\d{2}\b[^\n]*?)(?:\s*-?\s*\bVIN\b|\s*-?\s*\b[A-HJ-NPR-Z0-9]{11,17}\b|\n|$)`)},
		{Pattern: regexp.MustCompile(`(?im)vehicle\s*:?\s*([^\n]+?)\s*(?:VIN:?|$)`)},
	}
)

// ParseClaims segments text into claim blocks and parses each one.
func ParseClaims(text string) []domain.Claim {
	return parseClaims(text, NopTracer{})
}

func parseClaims(text string, tr Tracer) []domain.Claim {
	blocks := NewSegmenter(claimDelimiter).Split(text)
	claims := make([]domain.Claim, 0, len(blocks))
	for _, b := range blocks {
		claims = append(claims, parseClaim(b, tr))
	}
	return claims
}

func parseClaim(block string, tr Tracer) domain.Claim {
	c := domain.Claim{
		ClaimNumber:  optString(clmNumber, block),
		DateReported: optDate(clmDateReported, block),
		Coverage:     optString(clmCoverage, block),
		ClaimStatus:  optString(clmStatus, block),
		TotalLoss:    money(clmTotalLoss, block),
		TotalExpense: money(clmTotalExpense, block),
		KOLs:         kindsOfLoss(block),
		FirstParty:   party(clmFirstParty, block),
		ThirdParty:   party(clmThirdParty, block),
	}

	if m := clmLossInsurer.FindStringSubmatch(block); m != nil {
		c.DateOfLoss = ptr(NormalizeDate(m[1]))
		c.Insurer = ptr(strings.TrimSpace(m[2]))
	} else {
		c.DateOfLoss = optDate(clmDateOfLoss, block)
	}

	if v, ok := clmVehicle.Find(block); ok {
		if v = collapse(clmTrailingDash.ReplaceAllString(v, "")); v != "" {
			c.Vehicle = &v
		}
	}
	if vin, ok := Extract(clmVIN, block); ok {
		c.VIN = ptr(strings.ToUpper(vin))
	}

	c.AtFault, c.AtFaultPct = atFault(block)
	c.Subtotal = formatAmount(amount(c.TotalLoss) + amount(c.TotalExpense))

	tr.Trace("claim", "totals",
		"claim", domain.Deref(c.ClaimNumber),
		"loss", domain.Deref(c.TotalLoss),
		"expense", domain.Deref(c.TotalExpense),
		"subtotal", c.Subtotal)
	return c
}

// atFault is true when a non-zero number follows "At-Fault", with or
// without a percent sign, or when the keyword appears without a number.
func atFault(block string) (bool, *int) {
	if v, ok := Extract(clmAtFaultPct, block); ok {
		if pct, err := strconv.Atoi(v); err == nil {
			return pct != 0, &pct
		}
		return true, nil
	}
	return clmAtFaultWord.MatchString(block), nil
}

func kindsOfLoss(block string) []domain.KOL {
	matches := clmKOL.FindAllStringSubmatch(block, -1)
	kols := make([]domain.KOL, 0, len(matches))
	for _, m := range matches {
		kols = append(kols, domain.KOL{
			Code:        m[1],
			Description: strings.TrimSpace(m[2]),
			Loss:        normalizeAmount(m[3]),
			Expense:     normalizeAmount(m[4]),
		})
	}
	return kols
}

func party(span *regexp.Regexp, block string) domain.Party {
	text, ok := Extract(span, block)
	if !ok {
		return domain.Party{}
	}
	return domain.Party{
		Name:    optString(partyName, text),
		License: optString(partyLicense, text),
	}
}

// money extracts a currency amount and formats it with two decimals.
func money(re *regexp.Regexp, text string) *string {
	v, ok := Extract(re, text)
	if !ok {
		return nil
	}
	return ptr(normalizeAmount(v))
}

// normalizeAmount strips separators and currency symbols. Values that
// do not parse are returned stripped but otherwise unchanged.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(strings.NewReplacer(",", "", "$", "").Replace(s))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return formatAmount(f)
}

func amount(s *string) float64 {
	if s == nil {
		return 0
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0
	}
	return f
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
