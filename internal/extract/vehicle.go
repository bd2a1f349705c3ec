package extract

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
)

// vinPattern matches 11 to 17 VIN characters. I, O and Q are never
// valid VIN characters.
var vinPattern = regexp.MustCompile(`\b([A-HJ-NPR-Z0-9]{11,17})\b`)

var (
	vehicleLabel      = regexp.MustCompile(`^Vehicle #\d+:`)
	vehicleYear       = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	vehicleCoverage   = regexp.MustCompile(`Coverage:\s*([^\n\r]+)`)
	operatorMarker    = regexp.MustCompile(`\bOperator:`)
	leadingPunct      = regexp.MustCompile(`^[:\-\s]+`)
	trailingVINMarker = regexp.MustCompile(`(?i)\bVIN:?.*$`)
	trailingPunct     = regexp.MustCompile(`[\s\-/,:]+$`)
)

// FindVIN returns the first VIN-shaped token in text.
func FindVIN(text string) (string, bool) {
	return Extract(vinPattern, text)
}

// parseVehicle reads one "Vehicle #N:" sub-block. Blocks without a
// model year on the first line are not vehicles and return false.
func parseVehicle(raw string, tr Tracer) (domain.Vehicle, bool) {
	raw = truncateAt(raw, operatorMarker)
	rest := strings.TrimSpace(vehicleLabel.ReplaceAllString(strings.TrimSpace(raw), ""))
	firstLine, _, _ := strings.Cut(rest, "\n")

	yearLoc := vehicleYear.FindStringSubmatchIndex(firstLine)
	if yearLoc == nil {
		tr.Trace("vehicle", "year", "status", "missing", "line", firstLine)
		return domain.Vehicle{}, false
	}
	year := firstLine[yearLoc[2]:yearLoc[3]]

	v := domain.Vehicle{Year: year}
	vin, hasVIN := FindVIN(rest)
	if hasVIN {
		v.VIN = &vin
	}
	v.Coverage = optString(vehicleCoverage, raw)

	if model := makeModel(firstLine, yearLoc[1], vin); model != "" {
		v.Model = &model
	}
	v.Label = year
	if v.Model != nil {
		v.Label = year + " " + *v.Model
	}

	tr.Trace("vehicle", "label", "value", v.Label, "vin", domain.Deref(v.VIN))
	return v, true
}

// makeModel takes the span of line after the year up to the VIN or the
// "Coverage:" marker, whichever comes first.
func makeModel(line string, afterYear int, vin string) string {
	end := len(line)
	if vin != "" {
		if i := strings.Index(line[afterYear:], vin); i >= 0 {
			end = afterYear + i
		}
	}
	if i := strings.Index(line[afterYear:], "Coverage:"); i >= 0 && afterYear+i < end {
		end = afterYear + i
	}

	s := line[afterYear:end]
	s = leadingPunct.ReplaceAllString(s, "")
	s = trailingVINMarker.ReplaceAllString(s, "")
	s = trailingPunct.ReplaceAllString(s, "")
	return collapse(s)
}
