package scraper

import (
	"time"
)

const dateLayout = "2006-01-02"

// Classification is the derived multi-day status for one identity key.
type Classification struct {
	IsMultiDayEvent bool
	IsPioneerRide   bool
	RideDays        int
	DateEnd         string
}

// Classify derives the multi-day, pioneer, and ride-day values from the
// merged distance list, the event's base start date, and the start dates of
// any later rows merged into the event. Pure and deterministic: the same
// inputs always produce the same classification.
//
// An event spanning more than one distinct date is multi-day; a multi-day
// event of 3 or more ride days is a pioneer ride (fixed business rule).
func Classify(distances []Distance, dateStart string, rowDates ...string) Classification {
	single := Classification{RideDays: 1, DateEnd: dateStart}

	start, err := time.Parse(dateLayout, dateStart)
	if err != nil {
		return single
	}

	distinct := map[string]struct{}{dateStart: {}}
	end := start
	addDate := func(value string) {
		parsed, err := time.Parse(dateLayout, value)
		if err != nil {
			return
		}
		distinct[value] = struct{}{}
		if parsed.After(end) {
			end = parsed
		}
	}

	for _, d := range distances {
		if d.Date != "" {
			addDate(d.Date)
		}
	}
	for _, date := range rowDates {
		if date != "" {
			addDate(date)
		}
	}

	if len(distinct) <= 1 {
		return single
	}

	rideDays := int(end.Sub(start).Hours()/24) + 1
	return Classification{
		IsMultiDayEvent: true,
		IsPioneerRide:   rideDays >= 3,
		RideDays:        rideDays,
		DateEnd:         end.Format(dateLayout),
	}
}
