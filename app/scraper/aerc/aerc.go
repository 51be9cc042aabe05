// Package aerc implements row extraction for the AERC ride calendar. The
// calendar page repeats one markup block per ride day; multi-day rides show
// up as several rows sharing a ride id and are folded back together by the
// engine's consolidation pass.
package aerc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/HighwayofLife/TrailBlazeApp-Scrapers/app/scraper"
)

const (
	SourceName         = "AERC"
	DefaultCalendarURL = "https://aerc.org/calendar"
)

var _ scraper.Source = (*Source)(nil)

// Source is the AERC implementation of the row extraction capability.
type Source struct {
	managerPattern *regexp.Regexp
	phonePattern   *regexp.Regexp
	emailPattern   *regexp.Regexp
	judgePattern   *regexp.Regexp
	timePattern    *regexp.Regexp
	parenPattern   *regexp.Regexp
	brPattern      *regexp.Regexp
	tagPattern     *regexp.Regexp
	cancelPattern  *regexp.Regexp
}

func New() *Source {
	return &Source{
		// "mgr: Test Manager" in the collapsed row
		managerPattern: regexp.MustCompile(`(?i)mgr:\s*(.+)`),
		phonePattern:   regexp.MustCompile(`\(?(\d{3}[-.\s]\d{3}[-.\s]\d{4})\)?`),
		emailPattern:   regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		judgePattern:   regexp.MustCompile(`(?i)^(head\s+)?control\s+judge\s*:\s*(.+)$`),
		timePattern:    regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)?`),
		parenPattern:   regexp.MustCompile(`\(([^)]+)\)`),
		brPattern:      regexp.MustCompile(`(?i)<br\s*/?>`),
		tagPattern:     regexp.MustCompile(`<[^>]*>`),
		cancelPattern:  regexp.MustCompile(`(?i)\*?\*?\s*cancell?ed\s*\*?\*?`),
	}
}

func (s *Source) Name() string {
	return SourceName
}

// ExtractRows finds every calendar row in document order and extracts one
// RawRow per block. Blocks missing the ride name marker entirely cannot be
// matched to the row pattern and are skipped, not fatal.
func (s *Source) ExtractRows(doc *goquery.Document) ([]scraper.RawRow, int) {
	var rows []scraper.RawRow
	skipped := 0

	doc.Find("tr.calendarRow, div.calendarRow").Each(func(_ int, block *goquery.Selection) {
		if block.Find("span.rideName").Length() == 0 {
			skipped++
			return
		}
		rows = append(rows, s.extractRow(doc, block))
	})

	return rows, skipped
}

// extractRow applies every field extractor to one calendar block. Each
// extractor tolerates missing markup: a field that cannot be found stays at
// its zero value and extraction of the remaining fields continues.
func (s *Source) extractRow(doc *goquery.Document, block *goquery.Selection) scraper.RawRow {
	row := scraper.RawRow{
		Source:    SourceName,
		EventType: "endurance",
	}

	row.Name, row.RideID, row.IsCanceled = s.extractNameAndID(block)
	row.Region, row.DateStart, row.LocationName = s.extractRegionDateLocation(block)
	row.RideManager = s.extractManagerName(block)
	row.Website, row.FlyerURL = s.extractWebsiteFlyer(block)
	row.HasIntroRide = strings.Contains(block.Text(), "Has Intro Ride")

	s.extractDetails(doc, &row)

	row.City, row.State, row.Country = parseLocation(row.LocationName)

	return row
}

func (s *Source) extractNameAndID(block *goquery.Selection) (name, rideID string, canceled bool) {
	sel := block.Find("span.rideName").First()
	rideID, _ = sel.Attr("tag")

	name = collapseWhitespace(sel.Text())
	if s.cancelPattern.MatchString(name) {
		canceled = true
		name = collapseWhitespace(s.cancelPattern.ReplaceAllString(name, " "))
	}

	return name, rideID, canceled
}

func (s *Source) extractRegionDateLocation(block *goquery.Selection) (region, dateStart, location string) {
	region = strings.TrimSpace(block.Find("td.region, span.region").First().Text())

	dateText := strings.TrimSpace(block.Find("td.bold, span.bold").First().Text())
	if parsed, err := parseCalendarDate(dateText); err == nil {
		dateStart = parsed
	}

	// The location cell carries no class: take the first plain cell that is
	// not the manager line and holds no links.
	block.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if _, hasClass := cell.Attr("class"); hasClass {
			return true
		}
		if cell.Find("a").Length() > 0 || cell.Find("span").Length() > 0 {
			return true
		}
		text := collapseWhitespace(cell.Text())
		if text == "" || s.managerPattern.MatchString(text) {
			return true
		}
		location = text
		return false
	})

	return region, dateStart, location
}

func (s *Source) extractManagerName(block *goquery.Selection) string {
	match := s.managerPattern.FindStringSubmatch(block.Text())
	if match == nil {
		return ""
	}
	// The collapsed row shows only the name; the line ends at the newline.
	name := match[1]
	if idx := strings.IndexByte(name, '\n'); idx >= 0 {
		name = name[:idx]
	}
	return collapseWhitespace(name)
}

func (s *Source) extractWebsiteFlyer(block *goquery.Selection) (website, flyer string) {
	block.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		text := strings.ToLower(link.Text())
		if strings.Contains(text, "flyer") || strings.Contains(text, "entry") {
			if flyer == "" {
				flyer = href
			}
		} else if website == "" {
			website = href
		}
	})

	return website, flyer
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

var whitespaceRe = regexp.MustCompile(`\s+`)
