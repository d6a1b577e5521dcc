package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

func springFestival2025() *holiday.Record {
	return &holiday.Record{
		HolidayName: "2025年春节",
		Year:        2025,
		Month:       1,
		StartDate:   "2025-01-28",
		EndDate:     "2025-02-04",
		TotalDays:   8,
		HolidayDates: []string{
			"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31",
			"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04",
		},
		MakeupWorkdays: []holiday.MakeupWorkday{
			{Date: "2025-01-26", Description: "周日上班"},
			{Date: "2025-02-08", Description: "周六上班"},
		},
		CalendarMonths: []int{1, 2},
	}
}

func classAt(t *testing.T, g *MonthGrid, date string) DayClass {
	t.Helper()
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.InMonth && dateutil.FormatISODate(cell.Date) == date {
				return cell.Class
			}
		}
	}
	t.Fatalf("date %s not found in grid %d-%d", date, g.Year, g.Month)
	return 0
}

func TestBuildRowAndCellCounts(t *testing.T) {
	rec := &holiday.Record{Year: 2025, CalendarMonths: []int{1}}

	tests := []struct {
		name      string
		year      int
		month     time.Month
		weekStart time.Weekday
	}{
		{"january 2025 monday start", 2025, time.January, time.Monday},
		{"february 2025 monday start", 2025, time.February, time.Monday},
		{"february 2026 sunday start", 2026, time.February, time.Sunday},
		{"march 2025 sunday start", 2025, time.March, time.Sunday},
		{"june 2025 monday start", 2025, time.June, time.Monday},
		{"december 2025 monday start", 2025, time.December, time.Monday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.year, tt.month, rec, tt.weekStart)

			first := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
			lead := (int(first.Weekday()) - int(tt.weekStart) + 7) % 7
			days := dateutil.DaysInMonth(tt.year, tt.month)
			wantRows := (days + lead + 6) / 7

			assert.Len(t, g.Weeks, wantRows, "row count")

			inMonth := 0
			for _, week := range g.Weeks {
				for _, cell := range week {
					if cell.InMonth {
						inMonth++
					}
				}
			}
			assert.Equal(t, days, inMonth, "in-month cell count")
		})
	}
}

func TestBuildWeekdayAlignment(t *testing.T) {
	rec := &holiday.Record{Year: 2025, CalendarMonths: []int{1}}

	// January 1, 2025 is a Wednesday: two leading padding cells (Mon, Tue)
	g := Build(2025, time.January, rec, time.Monday)

	require.NotEmpty(t, g.Weeks)
	firstWeek := g.Weeks[0]

	assert.False(t, firstWeek[0].InMonth)
	assert.Equal(t, "2024-12-30", dateutil.FormatISODate(firstWeek[0].Date))
	assert.False(t, firstWeek[1].InMonth)
	assert.True(t, firstWeek[2].InMonth)
	assert.Equal(t, "2025-01-01", dateutil.FormatISODate(firstWeek[2].Date))

	// Last row ends with February padding
	lastWeek := g.Weeks[len(g.Weeks)-1]
	assert.False(t, lastWeek[6].InMonth)
	assert.Equal(t, "2025-02-02", dateutil.FormatISODate(lastWeek[6].Date))
}

func TestBuildClassification(t *testing.T) {
	rec := springFestival2025()

	jan := Build(2025, time.January, rec, time.Monday)
	feb := Build(2025, time.February, rec, time.Monday)

	// Holiday dates across both months
	for _, d := range []string{"2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31"} {
		assert.Equal(t, ClassHoliday, classAt(t, jan, d), d)
	}
	for _, d := range []string{"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04"} {
		assert.Equal(t, ClassHoliday, classAt(t, feb, d), d)
	}

	// Makeup workdays
	assert.Equal(t, ClassMakeup, classAt(t, jan, "2025-01-26"))
	assert.Equal(t, ClassMakeup, classAt(t, feb, "2025-02-08"))

	// Unmarked weekend stays weekend, ordinary weekday stays workday
	assert.Equal(t, ClassWeekend, classAt(t, jan, "2025-01-18"))
	assert.Equal(t, ClassWeekend, classAt(t, feb, "2025-02-09"))
	assert.Equal(t, ClassWorkday, classAt(t, jan, "2025-01-15"))
	assert.Equal(t, ClassWorkday, classAt(t, feb, "2025-02-10"))
}

func TestBuildBaselineMonthWithoutMarks(t *testing.T) {
	rec := &holiday.Record{Year: 2025, CalendarMonths: []int{6}}

	g := Build(2025, time.June, rec, time.Monday)

	holidayCells := 0
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Class == ClassHoliday || cell.Class == ClassMakeup {
				holidayCells++
			}
		}
	}
	assert.Zero(t, holidayCells, "baseline calendar must have no marked cells")
}

func TestMonthsYearBoundary(t *testing.T) {
	rec := &holiday.Record{
		HolidayName: "元旦",
		Year:        2025,
		Month:       12,
		StartDate:   "2025-12-31",
		EndDate:     "2026-01-02",
		TotalDays:   3,
		HolidayDates: []string{
			"2025-12-31", "2026-01-01", "2026-01-02",
		},
		CalendarMonths: []int{12, 1},
	}

	refs := Months(rec)
	require.Len(t, refs, 2)
	assert.Equal(t, MonthRef{Year: 2025, Month: time.December}, refs[0])
	assert.Equal(t, MonthRef{Year: 2026, Month: time.January}, refs[1])
}

func TestMonthsFallsBackToRecordYear(t *testing.T) {
	rec := springFestival2025()

	refs := Months(rec)
	require.Len(t, refs, 2)
	assert.Equal(t, 2025, refs[0].Year)
	assert.Equal(t, 2025, refs[1].Year)
}

func TestBuildAll(t *testing.T) {
	grids := BuildAll(springFestival2025(), time.Monday)

	require.Len(t, grids, 2)
	assert.Equal(t, time.January, grids[0].Month)
	assert.Equal(t, time.February, grids[1].Month)
	assert.Equal(t, 31, grids[0].Days())
	assert.Equal(t, 28, grids[1].Days())
}
