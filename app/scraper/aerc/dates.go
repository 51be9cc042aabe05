package aerc

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

// dateparse rejects ordinal suffixes like "March 20th, 2025".
var ordinalRe = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\b`)

// parseCalendarDate normalizes the heterogeneous date strings the calendar
// uses ("Mar 20, 2025", "20-Mar-2025", "March 20th, 2025") to 2006-01-02.
func parseCalendarDate(text string) (string, error) {
	text = strings.TrimSpace(ordinalRe.ReplaceAllString(text, "$1"))
	if text == "" {
		return "", fmt.Errorf("empty date string")
	}

	// The calendar is US-run, so ambiguous numeric dates read as MM/DD.
	parsed, err := dateparse.ParseAny(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", text, err)
	}

	return parsed.Format(dateLayout), nil
}

// parseDistanceDate resolves a per-distance date marker against the
// event's base start date. Markers without a year ("Mar 21") take the base
// date's year.
func parseDistanceDate(text, dateStart string) (string, error) {
	text = strings.TrimSpace(text)

	if parsed, err := time.Parse("Jan 2", text); err == nil {
		base, err := time.Parse(dateLayout, dateStart)
		if err != nil {
			return "", fmt.Errorf("failed to parse base date %q: %w", dateStart, err)
		}
		resolved := time.Date(base.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		return resolved.Format(dateLayout), nil
	}

	return parseCalendarDate(text)
}
