package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryRange  = regexp.MustCompile(`\$(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:-|\s*to\s*)\s*\$?(\d+(?:,\d+)*(?:\.\d+)?)`)
	salarySingle = regexp.MustCompile(`\$(\d+(?:,\d+)*(?:\.\d+)?)`)
)

// ParseSalary extracts dollar bounds from free text such as
// "$50,000 - $70,000 a year" or "$85,000". A single amount sets both bounds.
// Text without a dollar amount yields nil bounds.
func ParseSalary(text string) (minSalary, maxSalary *float64) {
	if text == "" {
		return nil, nil
	}
	text = strings.ReplaceAll(strings.ToLower(text), " a year", "")

	if m := salaryRange.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1]), parseAmount(m[2])
	}
	if m := salarySingle.FindStringSubmatch(text); m != nil {
		v := parseAmount(m[1])
		if v == nil {
			return nil, nil
		}
		lo, hi := *v, *v
		return &lo, &hi
	}
	return nil, nil
}

// SalaryText returns the upstream salary field, or the first dollar range
// found in the description formatted as "$A - $B".
func SalaryText(field, description string) string {
	if field != "" {
		return field
	}
	m := salaryRange.FindStringSubmatch(strings.ToLower(description))
	if m == nil {
		return ""
	}
	return fmt.Sprintf("$%s - $%s", m[1], m[2])
}

func parseAmount(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
