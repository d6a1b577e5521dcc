package grid

import (
	"time"

	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

// DayClass classifies a day cell for rendering
type DayClass int

const (
	ClassWorkday DayClass = iota + 1
	ClassWeekend
	ClassHoliday
	ClassMakeup
)

// Cell is one day slot in a month grid. Padding cells carry the date of the
// adjacent month's day and InMonth=false; renderers draw them muted.
type Cell struct {
	Date    time.Time
	InMonth bool
	Class   DayClass
}

// MonthGrid is the weekday-aligned cell layout for one calendar month.
// Built fresh per render, never persisted.
type MonthGrid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weeks     [][7]Cell
}

// Days returns the number of in-month days covered by the grid.
func (g *MonthGrid) Days() int {
	return dateutil.DaysInMonth(g.Year, g.Month)
}

// Build produces the grid for one (year, month) from a validated record.
// weekStart must be time.Monday or time.Sunday.
//
// Leading cells are padded with the trailing days of the previous month and
// trailing cells with the leading days of the next month, so every row is a
// full week. Classification precedence: holiday > makeup > weekend > workday.
func Build(year int, month time.Month, rec *holiday.Record, weekStart time.Weekday) *MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := dateutil.DaysInMonth(year, month)
	rows := (days + lead + 6) / 7

	holidays := rec.HolidaySet()
	makeups := rec.MakeupByDate()

	g := &MonthGrid{
		Year:      year,
		Month:     month,
		WeekStart: weekStart,
		Weeks:     make([][7]Cell, rows),
	}

	cursor := first.AddDate(0, 0, -lead)
	for row := 0; row < rows; row++ {
		for col := 0; col < 7; col++ {
			g.Weeks[row][col] = Cell{
				Date:    cursor,
				InMonth: cursor.Month() == month && cursor.Year() == year,
				Class:   classify(cursor, holidays, makeups),
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	return g
}

func classify(date time.Time, holidays map[string]struct{}, makeups map[string]string) DayClass {
	key := dateutil.FormatISODate(date)
	if _, ok := holidays[key]; ok {
		return ClassHoliday
	}
	if _, ok := makeups[key]; ok {
		return ClassMakeup
	}
	if dateutil.IsWeekend(date) {
		return ClassWeekend
	}
	return ClassWorkday
}
