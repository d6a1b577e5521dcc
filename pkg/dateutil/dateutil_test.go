package dateutil

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"valid date",
			"2025-01-28",
			time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"leap day",
			"2024-02-29",
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			false,
		},
		{"non-leap february 29", "2025-02-29", time.Time{}, true},
		{"wrong separator", "2025/01/28", time.Time{}, true},
		{"missing zero padding", "2025-1-28", time.Time{}, true},
		{"month out of range", "2025-13-01", time.Time{}, true},
		{"empty string", "", time.Time{}, true},
		{"trailing garbage", "2025-01-28T00:00", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseISODate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseISODate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseISODate(%q) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestFormatISODate(t *testing.T) {
	input := time.Date(2025, 2, 4, 15, 30, 0, 0, time.UTC)
	result := FormatISODate(input)

	if result != "2025-02-04" {
		t.Errorf("FormatISODate(%v) = %v, want 2025-02-04", input, result)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"january", 2025, time.January, 31},
		{"february non-leap", 2025, time.February, 28},
		{"february leap", 2024, time.February, 29},
		{"april", 2025, time.April, 30},
		{"december", 2025, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DaysInMonth(tt.year, tt.month)

			if result != tt.want {
				t.Errorf("DaysInMonth(%d, %v) = %v, want %v", tt.year, tt.month, result, tt.want)
			}
		})
	}
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"same day",
			time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			1,
		},
		{
			"spring festival span",
			time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
			8,
		},
		{
			"year boundary",
			time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			3,
		},
		{
			"end before start",
			time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InclusiveDays(tt.start, tt.end)

			if result != tt.want {
				t.Errorf("InclusiveDays(%v, %v) = %v, want %v",
					tt.start.Format(ISODate), tt.end.Format(ISODate), result, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Saturday is weekend", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), true},
		{"Sunday is weekend", time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), true},
		{"Monday is not weekend", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), false},
		{"Friday is not weekend", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekend(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	start := time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"start boundary", start, true},
		{"end boundary", end, true},
		{"inside", time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC), true},
		{"before", time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), false},
		{"after", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Between(tt.date, start, end)

			if result != tt.want {
				t.Errorf("Between(%v) = %v, want %v", tt.date.Format(ISODate), result, tt.want)
			}
		})
	}
}
