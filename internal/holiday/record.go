package holiday

import (
	"time"

	"github.com/username/holiday-calendar/pkg/dateutil"
)

// Record is the structured representation of a holiday announcement produced
// by the parsing model. Field names and types are the wire contract shared
// with the parser prompt and must not change.
//
// A Record is untrusted until Validate accepts it, and immutable afterwards.
type Record struct {
	HolidayName    string          `json:"holiday_name" validate:"required"`
	Year           int             `json:"year" validate:"required,gte=1900,lte=2200"`
	Month          int             `json:"month" validate:"required,gte=1,lte=12"`
	StartDate      string          `json:"start_date" validate:"required"`
	EndDate        string          `json:"end_date" validate:"required"`
	TotalDays      int             `json:"total_days" validate:"required,gt=0"`
	HolidayDates   []string        `json:"holiday_dates" validate:"required,min=1"`
	MakeupWorkdays []MakeupWorkday `json:"makeup_workdays" validate:"dive"`
	CalendarMonths []int           `json:"calendar_months"`
	Notes          string          `json:"notes"`
}

// MakeupWorkday is a normally-off day converted to a mandatory workday to
// compensate for the holiday.
type MakeupWorkday struct {
	Date        string `json:"date" validate:"required"`
	Description string `json:"description"`
}

// Span returns the parsed start and end dates. Valid only after Validate.
func (r *Record) Span() (start, end time.Time) {
	start, _ = dateutil.ParseISODate(r.StartDate)
	end, _ = dateutil.ParseISODate(r.EndDate)
	return start, end
}

// HolidaySet returns the holiday dates keyed by their YYYY-MM-DD string.
func (r *Record) HolidaySet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.HolidayDates))
	for _, d := range r.HolidayDates {
		set[d] = struct{}{}
	}
	return set
}

// MakeupByDate returns makeup workdays keyed by date, with their descriptions.
func (r *Record) MakeupByDate() map[string]string {
	m := make(map[string]string, len(r.MakeupWorkdays))
	for _, w := range r.MakeupWorkdays {
		desc := w.Description
		if desc == "" {
			desc = "调休上班"
		}
		m[w.Date] = desc
	}
	return m
}

// Normalize fills derivable fields the parsing model is allowed to omit.
// It is part of the parser adapter's output shaping and runs before
// validation; Validate itself never repairs a record.
func (r *Record) Normalize() {
	if len(r.CalendarMonths) == 0 {
		months := []int{}
		seen := map[int]bool{}
		add := func(s string) {
			if t, err := dateutil.ParseISODate(s); err == nil && !seen[int(t.Month())] {
				seen[int(t.Month())] = true
				months = append(months, int(t.Month()))
			}
		}
		add(r.StartDate)
		add(r.EndDate)
		if len(months) == 0 && r.Month >= 1 && r.Month <= 12 {
			months = append(months, r.Month)
		}
		r.CalendarMonths = months
	}
}
