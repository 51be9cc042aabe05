package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// Source extracts raw event rows from one calendar page. Implementations
// are per-site; the engine, consolidator, and reconciler are source
// agnostic.
//
// ExtractRows returns the rows in document order (the first-seen tie-break
// for conflicting scalar fields) plus the number of markup blocks that
// matched the row pattern but could not be extracted at all.
type Source interface {
	Name() string
	ExtractRows(doc *goquery.Document) ([]RawRow, int)
}
