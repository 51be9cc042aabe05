package aerc

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/scraper"
)

// extractDetails fills row from the expanded details section, a
// table.detailData block linked to the calendar row by ride id. Every
// labelled detail line is optional.
func (s *Source) extractDetails(doc *goquery.Document, row *scraper.RawRow) {
	if row.RideID == "" {
		return
	}

	selector := "tr[name='" + row.RideID + "Details'], div[name='" + row.RideID + "Details']"
	details := doc.Find(selector)
	if details.Length() == 0 {
		return
	}

	details.Find("table.detailData td").Each(func(_ int, cell *goquery.Selection) {
		text := collapseWhitespace(cell.Text())
		if text == "" {
			return
		}

		if match := s.judgePattern.FindStringSubmatch(text); match != nil {
			role := "Control Judge"
			if match[1] != "" {
				role = "Head Control Judge"
			}
			row.ControlJudges = append(row.ControlJudges, scraper.ControlJudge{
				Name: strings.TrimSpace(match[2]),
				Role: role,
			})
			return
		}

		label, value, ok := splitLabel(text)
		if !ok {
			return
		}

		switch label {
		case "location":
			if value != "" {
				row.LocationName = value
			}
		case "ride manager":
			s.extractManagerContact(value, row)
		case "distances":
			row.Distances = s.parseDistances(value, row.DateStart)
		case "description":
			row.Description = s.extractParagraphs(cell)
		case "directions":
			row.Directions = s.extractParagraphs(cell)
		}
	})
}

// splitLabel separates a "Label : value" detail line. The markup is
// inconsistent about spacing around the colon.
func splitLabel(text string) (label, value string, ok bool) {
	idx := strings.IndexByte(text, ':')
	if idx < 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(text[:idx]))
	value = strings.TrimSpace(text[idx+1:])
	return label, value, true
}

// extractManagerContact pulls name, phone, and email out of one free-text
// contact line, tolerating varying order and extra whitespace. Subfields
// that do not match are left unset.
func (s *Source) extractManagerContact(value string, row *scraper.RawRow) {
	remainder := value

	if match := s.phonePattern.FindStringSubmatch(remainder); match != nil {
		row.ManagerPhone = match[1]
		remainder = strings.Replace(remainder, match[0], " ", 1)
	}

	if match := s.emailPattern.FindString(remainder); match != "" {
		row.ManagerEmail = match
		remainder = strings.Replace(remainder, match, " ", 1)
	}

	name := collapseWhitespace(strings.Trim(remainder, " ,()"))
	if name != "" {
		row.RideManager = name
	}
}

// parseDistances splits the distance list and pairs each cleaned label with
// its start time and date. A distance without its own date marker belongs
// to the event's base start date.
func (s *Source) parseDistances(value, dateStart string) []scraper.Distance {
	entries := splitOutsideParens(value)
	distances := make([]scraper.Distance, 0, len(entries))

	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		distance := scraper.Distance{Date: dateStart}

		if match := s.timePattern.FindString(entry); match != "" {
			distance.StartTime = strings.TrimSpace(match)
			entry = strings.Replace(entry, match, " ", 1)
		}

		if match := s.parenPattern.FindStringSubmatch(entry); match != nil {
			if date, err := parseDistanceDate(match[1], dateStart); err == nil {
				distance.Date = date
			}
			entry = strings.Replace(entry, match[0], " ", 1)
		}

		distance.Distance = strings.Trim(collapseWhitespace(entry), " -")
		if distance.Distance == "" {
			continue
		}
		distances = append(distances, distance)
	}

	return distances
}

// splitOutsideParens splits on commas that are not inside parentheses, so
// date markers like "(Mar 21, 2025)" survive the split.
func splitOutsideParens(value string) []string {
	var parts []string
	depth := 0
	start := 0

	for i, r := range value {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, value[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, value[start:])

	return parts
}

// extractParagraphs renders a detail cell's text after the label,
// splitting on line-break markup into paragraphs rejoined with a blank
// line.
func (s *Source) extractParagraphs(cell *goquery.Selection) string {
	markup, err := cell.Html()
	if err != nil {
		return ""
	}

	idx := strings.IndexByte(markup, ':')
	if idx >= 0 {
		markup = markup[idx+1:]
	}

	var paragraphs []string
	for _, part := range s.brPattern.Split(markup, -1) {
		text := collapseWhitespace(html.UnescapeString(s.tagPattern.ReplaceAllString(part, " ")))
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
