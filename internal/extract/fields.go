package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Matcher is one way of extracting a field value from text.
type Matcher struct {
	// Pattern must contain at least Group capture groups.
	Pattern *regexp.Regexp

	// Group selects the capture group. Zero means 1.
	Group int

	// Accept, when set, rejects candidate values. Rejected matches are
	// skipped and later matches of the same pattern are tried.
	Accept func(string) bool
}

// Match returns the trimmed capture of the first acceptable match.
func (m Matcher) Match(text string) (string, bool) {
	group := m.Group
	if group == 0 {
		group = 1
	}

	n := 1
	if m.Accept != nil {
		n = -1
	}
	for _, idx := range m.Pattern.FindAllStringSubmatchIndex(text, n) {
		if 2*group+1 >= len(idx) || idx[2*group] < 0 {
			continue
		}
		v := strings.TrimSpace(text[idx[2*group]:idx[2*group+1]])
		if v == "" {
			continue
		}
		if m.Accept != nil && !m.Accept(v) {
			continue
		}
		return v, true
	}
	return "", false
}

// Chain is an ordered list of alternatives for one field.
// The first matcher that succeeds wins.
type Chain []Matcher

// Find evaluates the chain left to right.
func (c Chain) Find(text string) (string, bool) {
	for _, m := range c {
		if v, ok := m.Match(text); ok {
			return v, true
		}
	}
	return "", false
}

// Extract returns the first capture group of the first match of re.
func Extract(re *regexp.Regexp, text string) (string, bool) {
	return Matcher{Pattern: re}.Match(text)
}

// ExtractOr is Extract with a default for absent values.
func ExtractOr(re *regexp.Regexp, text, def string) string {
	if v, ok := Extract(re, text); ok {
		return v
	}
	return def
}

func optString(re *regexp.Regexp, text string) *string {
	if v, ok := Extract(re, text); ok {
		return &v
	}
	return nil
}

func optChain(c Chain, text string) *string {
	if v, ok := c.Find(text); ok {
		return &v
	}
	return nil
}

// optInt parses the capture as an integer. Malformed numbers are absent.
func optInt(re *regexp.Regexp, text string) *int {
	v, ok := Extract(re, text)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func optDate(re *regexp.Regexp, text string) *string {
	return normalizePtr(optString(re, text))
}

// label builds the pattern "<label>:\s*<value>" with a single capture.
func label(name, value string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(name) + `:\s*` + value)
}

// lineLabel is label anchored to the start of a line.
func lineLabel(name, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(name) + `:[ \t]*` + value)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapse trims s and replaces whitespace runs with single spaces.
func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func ptr[T any](v T) *T {
	return &v
}
