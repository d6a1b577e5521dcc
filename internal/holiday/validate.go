package holiday

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/username/holiday-calendar/pkg/dateutil"
)

// Validation rule numbers, checked in order with short-circuit on first failure.
const (
	RuleRequiredFields = 1 // all required fields present with the expected shape
	RuleDateFormat     = 2 // every date string parses as a calendar date
	RuleDateOrder      = 3 // start_date <= end_date
	RuleTotalDays      = 4 // total_days equals the inclusive span day count
	RuleHolidayDates   = 5 // holiday_dates count, containment and uniqueness
	RuleMakeupOverlap  = 6 // no date in both holiday_dates and makeup_workdays
	RuleCalendarMonths = 7 // calendar_months shape and coverage of all dates
)

var ruleNames = map[int]string{
	RuleRequiredFields: "required fields",
	RuleDateFormat:     "date format",
	RuleDateOrder:      "date order",
	RuleTotalDays:      "total_days mismatch",
	RuleHolidayDates:   "holiday_dates",
	RuleMakeupOverlap:  "makeup overlap",
	RuleCalendarMonths: "calendar_months",
}

// ValidationError reports the first schema rule a candidate record violates.
type ValidationError struct {
	Rule   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule %d (%s): %s: %s", e.Rule, ruleNames[e.Rule], e.Field, e.Reason)
}

var structValidator = validator.New()

// Validate checks a candidate record against the holiday-data contract.
// It is a pure check: no repair, no side effects. On failure it returns a
// *ValidationError naming the first violated rule and the offending value.
func Validate(r *Record) error {
	// Rule 1: required fields and primitive shapes
	if err := structValidator.Struct(r); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			fe := errs[0]
			return &ValidationError{
				Rule:   RuleRequiredFields,
				Field:  fe.Field(),
				Reason: fmt.Sprintf("failed %q constraint", fe.Tag()),
			}
		}
		return &ValidationError{Rule: RuleRequiredFields, Field: "record", Reason: err.Error()}
	}

	// Rule 2: all dates parse
	start, err := dateutil.ParseISODate(r.StartDate)
	if err != nil {
		return &ValidationError{Rule: RuleDateFormat, Field: "start_date", Reason: err.Error()}
	}
	end, err := dateutil.ParseISODate(r.EndDate)
	if err != nil {
		return &ValidationError{Rule: RuleDateFormat, Field: "end_date", Reason: err.Error()}
	}
	holidayDays := make([]time.Time, len(r.HolidayDates))
	for i, d := range r.HolidayDates {
		t, err := dateutil.ParseISODate(d)
		if err != nil {
			return &ValidationError{Rule: RuleDateFormat, Field: "holiday_dates", Reason: err.Error()}
		}
		holidayDays[i] = t
	}
	makeupDays := make([]time.Time, len(r.MakeupWorkdays))
	for i, w := range r.MakeupWorkdays {
		t, err := dateutil.ParseISODate(w.Date)
		if err != nil {
			return &ValidationError{Rule: RuleDateFormat, Field: "makeup_workdays", Reason: err.Error()}
		}
		makeupDays[i] = t
	}

	// Rule 3: chronological order
	if end.Before(start) {
		return &ValidationError{
			Rule:   RuleDateOrder,
			Field:  "start_date",
			Reason: fmt.Sprintf("start_date %s is after end_date %s", r.StartDate, r.EndDate),
		}
	}

	// Rule 4: total_days cross-check
	if span := dateutil.InclusiveDays(start, end); r.TotalDays != span {
		return &ValidationError{
			Rule:   RuleTotalDays,
			Field:  "total_days",
			Reason: fmt.Sprintf("total_days is %d but %s..%s spans %d days", r.TotalDays, r.StartDate, r.EndDate, span),
		}
	}

	// Rule 5: holiday_dates count, range containment, uniqueness
	if len(r.HolidayDates) != r.TotalDays {
		return &ValidationError{
			Rule:   RuleHolidayDates,
			Field:  "holiday_dates",
			Reason: fmt.Sprintf("expected %d dates, got %d", r.TotalDays, len(r.HolidayDates)),
		}
	}
	seen := make(map[string]bool, len(r.HolidayDates))
	for i, t := range holidayDays {
		if !dateutil.Between(t, start, end) {
			return &ValidationError{
				Rule:   RuleHolidayDates,
				Field:  "holiday_dates",
				Reason: fmt.Sprintf("%s is outside [%s, %s]", r.HolidayDates[i], r.StartDate, r.EndDate),
			}
		}
		if seen[r.HolidayDates[i]] {
			return &ValidationError{
				Rule:   RuleHolidayDates,
				Field:  "holiday_dates",
				Reason: fmt.Sprintf("duplicate date %s", r.HolidayDates[i]),
			}
		}
		seen[r.HolidayDates[i]] = true
	}

	// Rule 6: holiday/makeup disjointness
	for _, w := range r.MakeupWorkdays {
		if seen[w.Date] {
			return &ValidationError{
				Rule:   RuleMakeupOverlap,
				Field:  "makeup_workdays",
				Reason: fmt.Sprintf("%s appears in both holiday_dates and makeup_workdays", w.Date),
			}
		}
	}

	// Rule 7: calendar_months shape and coverage
	if len(r.CalendarMonths) == 0 {
		return &ValidationError{Rule: RuleCalendarMonths, Field: "calendar_months", Reason: "must not be empty"}
	}
	if len(r.CalendarMonths) > 2 {
		return &ValidationError{
			Rule:   RuleCalendarMonths,
			Field:  "calendar_months",
			Reason: fmt.Sprintf("at most 2 months supported, got %d", len(r.CalendarMonths)),
		}
	}
	allowed := make(map[int]bool, len(r.CalendarMonths))
	for _, m := range r.CalendarMonths {
		if m < 1 || m > 12 {
			return &ValidationError{
				Rule:   RuleCalendarMonths,
				Field:  "calendar_months",
				Reason: fmt.Sprintf("invalid month number %d", m),
			}
		}
		if allowed[m] {
			return &ValidationError{
				Rule:   RuleCalendarMonths,
				Field:  "calendar_months",
				Reason: fmt.Sprintf("duplicate month %d", m),
			}
		}
		allowed[m] = true
	}
	// Every referenced date must fall in a displayed month. Month numbers are
	// year-agnostic, so a December→January span is covered by [12, 1].
	check := func(field string, days []time.Time, raw func(int) string) *ValidationError {
		for i, t := range days {
			if !allowed[int(t.Month())] {
				return &ValidationError{
					Rule:   RuleCalendarMonths,
					Field:  field,
					Reason: fmt.Sprintf("%s falls in month %d, not listed in calendar_months", raw(i), t.Month()),
				}
			}
		}
		return nil
	}
	if err := check("start_date", []time.Time{start}, func(int) string { return r.StartDate }); err != nil {
		return err
	}
	if err := check("end_date", []time.Time{end}, func(int) string { return r.EndDate }); err != nil {
		return err
	}
	if err := check("holiday_dates", holidayDays, func(i int) string { return r.HolidayDates[i] }); err != nil {
		return err
	}
	if err := check("makeup_workdays", makeupDays, func(i int) string { return r.MakeupWorkdays[i].Date }); err != nil {
		return err
	}

	return nil
}
