package extract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

var (
	inquirySection = regexp.MustCompile(`(?s)Previous Inquiries(.+?)(?:Page \d+ of|\z)`)
	inquiryLine    = regexp.MustCompile(`^(\S+)\s+(.+)$`)
)

// ParseInquiries reads the lines between "Previous Inquiries" and the
// next page footer. Only lines starting with an ISO date are kept.
func ParseInquiries(text string) []domain.Inquiry {
	inquiries := []domain.Inquiry{}

	m := inquirySection.FindStringSubmatch(text)
	if m == nil {
		return inquiries
	}
	for _, line := range strings.Split(m[1], "\n") {
		parts := inquiryLine.FindStringSubmatch(strings.TrimSpace(line))
		if parts == nil || !isoDateOnly.MatchString(parts[1]) {
			continue
		}
		inquiries = append(inquiries, domain.Inquiry{
			Date: NormalizeDate(parts[1]),
			Who:  strings.TrimSpace(parts[2]),
		})
	}
	return inquiries
}
