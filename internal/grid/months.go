package grid

import (
	"time"

	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

// MonthRef identifies one month to render, with its year resolved.
type MonthRef struct {
	Year  int
	Month time.Month
}

// Months resolves the record's calendar_months into concrete (year, month)
// pairs. calendar_months carries month numbers only, so a December→January
// span needs the year attributed per month: each month takes the year of the
// record dates that fall in it, and the record year when no date does.
func Months(rec *holiday.Record) []MonthRef {
	yearByMonth := make(map[time.Month]int)
	note := func(s string) {
		if t, err := dateutil.ParseISODate(s); err == nil {
			yearByMonth[t.Month()] = t.Year()
		}
	}
	note(rec.StartDate)
	note(rec.EndDate)
	for _, d := range rec.HolidayDates {
		note(d)
	}
	for _, w := range rec.MakeupWorkdays {
		note(w.Date)
	}

	refs := make([]MonthRef, 0, len(rec.CalendarMonths))
	for _, m := range rec.CalendarMonths {
		month := time.Month(m)
		year, ok := yearByMonth[month]
		if !ok {
			year = rec.Year
		}
		refs = append(refs, MonthRef{Year: year, Month: month})
	}
	return refs
}

// BuildAll builds one grid per resolved calendar month.
func BuildAll(rec *holiday.Record, weekStart time.Weekday) []*MonthGrid {
	refs := Months(rec)
	grids := make([]*MonthGrid, 0, len(refs))
	for _, ref := range refs {
		grids = append(grids, Build(ref.Year, ref.Month, rec, weekStart))
	}
	return grids
}
