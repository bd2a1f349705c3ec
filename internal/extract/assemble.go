package extract

import (
	"crypto/sha1" //nolint:gosec // identity digest, not a security boundary
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// Assembler runs the full extraction pipeline over page texts.
// An Assembler holds no per-parse state and is safe for concurrent use.
type Assembler struct {
	tracer Tracer
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithTracer sends extraction records to t.
func WithTracer(t Tracer) Option {
	return func(a *Assembler) {
		if t != nil {
			a.tracer = t
		}
	}
}

// NewAssembler creates an assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{tracer: NopTracer{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble parses the pages of one document into a Report.
// Pages are joined with newlines; empty pages are allowed.
func (a *Assembler) Assemble(fileName string, pages []string) domain.Report {
	fullText := strings.Join(pages, "\n")

	stats := make([]int, len(pages))
	for i, p := range pages {
		stats[i] = utf8.RuneCountInString(p)
	}

	header := parseHeader(fullText, a.tracer)
	policies := parsePolicies(fullText, a.tracer)
	corr := correlate(policies, domain.Deref(header.DLN), a.tracer)

	r := domain.Report{
		FileName:          fileName,
		Header:            header,
		Policies:          corr.Policies,
		PreviousInquiries: ParseInquiries(fullText),
		Claims:            parseClaims(fullText, a.tracer),
		PagesCount:        len(pages),
		ExtractionStats:   stats,
		Correlation: domain.Correlation{
			Assumption: domain.CorrelationDocumentOrder,
			GroupSize:  corr.GroupSize,
		},
		FullText: fullText,
	}
	r.ID = DocumentID(fileName, domain.Deref(header.DriverName), domain.Deref(header.ReportDate), len(r.Policies))

	a.tracer.Trace("assembler", "report",
		"id", r.ID,
		"pages", r.PagesCount,
		"policies", len(r.Policies),
		"claims", len(r.Claims),
		"inquiries", len(r.PreviousInquiries))
	return r
}

// DocumentID is the hex SHA-1 of "<file>|<driver>|<report date>|<policies>".
// Absent fields contribute an empty string.
func DocumentID(fileName, driverName, reportDate string, policyCount int) string {
	key := strings.Join([]string{fileName, driverName, reportDate, strconv.Itoa(policyCount)}, "|")
	sum := sha1.Sum([]byte(key)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}
