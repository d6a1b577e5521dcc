package render

import (
	"time"

	"github.com/username/holiday-calendar/internal/grid"
	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/internal/style"
)

// Format is an output artifact format
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "pdf":
		return FormatPDF, true
	case "html":
		return FormatHTML, true
	}
	return "", false
}

// Options carries per-run rendering parameters.
type Options struct {
	AspectRatio string // e.g. "16:9"
	Resolution  string // "1K", "2K" or "4K"
	WeekStart   time.Weekday

	// Logical layout dimensions, configurable via the renderer config section
	CellWidth        int
	CellHeight       int
	SingleMonthWidth int
	MultiMonthWidth  int
}

// Default logical layout dimensions, matching the renderer config defaults.
const (
	DefaultCellWidth        = 75
	DefaultCellHeight       = 70
	DefaultSingleMonthWidth = 800
	DefaultMultiMonthWidth  = 1000
)

func (o Options) withDefaults() Options {
	if o.AspectRatio == "" {
		o.AspectRatio = "16:9"
	}
	if o.Resolution == "" {
		o.Resolution = "2K"
	}
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = DefaultCellHeight
	}
	if o.SingleMonthWidth <= 0 {
		o.SingleMonthWidth = DefaultSingleMonthWidth
	}
	if o.MultiMonthWidth <= 0 {
		o.MultiMonthWidth = DefaultMultiMonthWidth
	}
	return o
}

// Renderer turns a validated record and its month grids into a single
// artifact. The raster backend returns PNG bytes; the HTML backend returns a
// markup document for external screenshotting.
type Renderer interface {
	Render(rec *holiday.Record, grids []*grid.MonthGrid, preset *style.Preset, opts Options) ([]byte, error)
}
