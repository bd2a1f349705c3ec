package extract

import (
	"regexp"
	"strings"
	"time"
)

// CanonicalDateLayout is the output format of NormalizeDate.
const CanonicalDateLayout = "01/02/2006"

var (
	timezoneSuffix = regexp.MustCompile(`[\s\-]*\b(?:EST|UTC|EDT|IST|GMT|CST|PST|MST|AST|NST)\b.*$`)
	isoPrefix      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	usPrefix       = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{4}`)

	// dateToken finds an ISO or US date anywhere in a line.
	dateToken = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{2}[-/]\d{2}[-/]\d{4})\b`)
)

// NormalizeDate converts a date-like string to MM/DD/YYYY.
// Input that is not a recognised date, including impossible dates such
// as month 13, is returned unchanged. NormalizeDate is idempotent.
func NormalizeDate(s string) string {
	v := strings.TrimSpace(timezoneSuffix.ReplaceAllString(s, ""))
	if len(v) < 10 {
		return s
	}
	head := v[:10]

	switch {
	case isoPrefix.MatchString(head):
		if t, err := time.Parse("2006-01-02", head); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	case usPrefix.MatchString(head):
		layout := "01-02-2006"
		if head[2] == '/' {
			layout = CanonicalDateLayout
		}
		if head[2] != head[5] {
			return s
		}
		if t, err := time.Parse(layout, head); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}
	return s
}

// normalizePtr normalises an optional date in place of a copy.
func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := NormalizeDate(*s)
	return &v
}
