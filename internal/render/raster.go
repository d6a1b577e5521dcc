package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/username/holiday-calendar/internal/grid"
	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/internal/style"
)

const margin = 20

// Per-month block layout constants (logical pixels, before canvas scaling)
const (
	monthTitleHeight  = 40
	weekdayRowHeight  = 30
	monthBlockGap     = 20
	titleLineHeight   = 55
	infoLineHeight    = 35
	legendTitleHeight = 30
	legendLineHeight  = 25
	legendBottomGap   = 10
	notesLineHeight   = 30
	holidayMarkLabel  = "休"
	makeupMarkLabel   = "班"
)

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "日",
	time.Monday:    "一",
	time.Tuesday:   "二",
	time.Wednesday: "三",
	time.Thursday:  "四",
	time.Friday:    "五",
	time.Saturday:  "六",
}

// RasterRenderer draws the calendar locally and returns PNG bytes.
// Output is deterministic: identical input yields identical bytes.
type RasterRenderer struct {
	fonts  *FontSet
	logger *zap.Logger
}

// NewRasterRenderer creates the default local drawing backend.
func NewRasterRenderer(fonts *FontSet, logger *zap.Logger) *RasterRenderer {
	return &RasterRenderer{fonts: fonts, logger: logger}
}

// Render implements Renderer.
func (r *RasterRenderer) Render(rec *holiday.Record, grids []*grid.MonthGrid, preset *style.Preset, opts Options) ([]byte, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("no month grids to render")
	}
	opts = opts.withDefaults()

	canvasW, canvasH, err := CanvasSize(opts.AspectRatio, opts.Resolution)
	if err != nil {
		return nil, err
	}

	sideBySide := len(grids) == 2 && isLandscape(opts.AspectRatio)
	layoutW := opts.SingleMonthWidth
	if len(grids) > 1 {
		layoutW = opts.MultiMonthWidth
	}

	cellW, cellH := opts.CellWidth, opts.CellHeight
	if sideBySide {
		colW := (layoutW - 3*margin) / 2
		if cellW*7 > colW {
			cellW = colW / 7
		}
	} else if cellW*7 > layoutW-2*margin {
		cellW = (layoutW - 2*margin) / 7
	}

	layoutH := margin + r.headerHeight(rec, preset)
	if sideBySide {
		tallest := 0
		for _, g := range grids {
			if h := monthBlockHeight(g, cellH); h > tallest {
				tallest = h
			}
		}
		layoutH += tallest
	} else {
		for _, g := range grids {
			layoutH += monthBlockHeight(g, cellH)
		}
	}
	layoutH += margin

	img := image.NewRGBA(image.Rect(0, 0, layoutW, layoutH))
	draw.Draw(img, img.Bounds(), image.NewUniform(preset.Palette.Background), image.Point{}, draw.Src)

	y := margin + r.drawHeader(img, rec, preset, margin)

	if sideBySide {
		r.drawMonth(img, grids[0], preset, margin, y, cellW, cellH)
		r.drawMonth(img, grids[1], preset, layoutW/2+margin/2, y, cellW, cellH)
	} else {
		for _, g := range grids {
			y += r.drawMonth(img, g, preset, margin, y, cellW, cellH)
		}
	}

	final := scaleToCanvas(img, canvasW, canvasH, preset.Palette.Background)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	r.logger.Info("calendar rendered",
		zap.Int("months", len(grids)),
		zap.Int("width", canvasW),
		zap.Int("height", canvasH),
		zap.Bool("side_by_side", sideBySide),
		zap.String("style", preset.Name))

	return buf.Bytes(), nil
}

func (r *RasterRenderer) headerHeight(rec *holiday.Record, preset *style.Preset) int {
	h := titleLineHeight + infoLineHeight
	if preset.ShowLegend && len(rec.MakeupWorkdays) > 0 {
		h += legendTitleHeight + len(rec.MakeupWorkdays)*legendLineHeight + legendBottomGap
	}
	if rec.Notes != "" {
		h += notesLineHeight
	}
	return h
}

// drawHeader paints the title, date-range line, makeup legend and notes.
// Returns the height consumed, which matches headerHeight exactly.
func (r *RasterRenderer) drawHeader(dst *image.RGBA, rec *holiday.Record, preset *style.Preset, y int) int {
	pal := preset.Palette
	startY := y

	title := rec.HolidayName
	if title == "" {
		title = "假日日历"
	}
	r.drawText(dst, title, margin, y, r.fonts.Face(36, true), pal.Accent, anchorLeft)
	y += titleLineHeight

	info := fmt.Sprintf("放假时间: %s 至 %s (共%d天)", rec.StartDate, rec.EndDate, rec.TotalDays)
	r.drawText(dst, info, margin, y, r.fonts.Face(20, false), pal.Text, anchorLeft)
	y += infoLineHeight

	if preset.ShowLegend && len(rec.MakeupWorkdays) > 0 {
		r.drawText(dst, "调休安排:", margin, y, r.fonts.Face(20, false), pal.Text, anchorLeft)
		y += legendTitleHeight
		face := r.fonts.Face(16, false)
		for _, w := range rec.MakeupWorkdays {
			desc := w.Description
			if desc == "" {
				desc = "调休上班"
			}
			r.drawText(dst, fmt.Sprintf("  %s: %s", w.Date, desc), margin, y, face, pal.Makeup, anchorLeft)
			y += legendLineHeight
		}
		y += legendBottomGap
	}

	if rec.Notes != "" {
		r.drawText(dst, "备注: "+rec.Notes, margin, y, r.fonts.Face(16, false), pal.Muted, anchorLeft)
		y += notesLineHeight
	}

	return y - startY
}

func monthBlockHeight(g *grid.MonthGrid, cellH int) int {
	return monthTitleHeight + weekdayRowHeight + len(g.Weeks)*cellH + monthBlockGap
}

// drawMonth paints one month block at (x, y) and returns its height.
func (r *RasterRenderer) drawMonth(dst *image.RGBA, g *grid.MonthGrid, preset *style.Preset, x, y, cellW, cellH int) int {
	pal := preset.Palette
	startY := y

	r.drawText(dst, fmt.Sprintf("%d年%d月", g.Year, g.Month), x, y, r.fonts.Face(26, true), pal.Text, anchorLeft)
	y += monthTitleHeight

	weekdayFace := r.fonts.Face(16, false)
	for col := 0; col < 7; col++ {
		wd := time.Weekday((int(g.WeekStart) + col) % 7)
		col2 := pal.Text
		if wd == time.Saturday || wd == time.Sunday {
			col2 = pal.Holiday
		}
		r.drawText(dst, weekdayNames[wd], x+col*cellW+cellW/2, y, weekdayFace, col2, anchorCenter)
	}
	y += weekdayRowHeight

	dateFace := r.fonts.Face(18, false)
	markFace := r.fonts.Face(12, false)
	for _, week := range g.Weeks {
		for col, cell := range week {
			cellX := x + col*cellW
			strokeRect(dst, cellX, y, cellW, cellH, pal.Grid)

			textColor, mark := cellTreatment(cell, pal)
			r.drawText(dst, fmt.Sprintf("%d", cell.Date.Day()), cellX+8, y+6, dateFace, textColor, anchorLeft)
			if mark != "" {
				r.drawText(dst, mark, cellX+cellW-8, y+cellH-20, markFace, textColor, anchorRight)
			}
		}
		y += cellH
	}

	return y - startY + monthBlockGap
}

// cellTreatment selects the number color and corner mark for a cell.
// Weekends print red like holiday numbers but carry no 休 mark; padding
// cells are muted and never marked.
func cellTreatment(cell grid.Cell, pal style.Palette) (color.RGBA, string) {
	if !cell.InMonth {
		return pal.Muted, ""
	}
	switch cell.Class {
	case grid.ClassHoliday:
		return pal.Holiday, holidayMarkLabel
	case grid.ClassMakeup:
		return pal.Makeup, makeupMarkLabel
	case grid.ClassWeekend:
		return pal.Holiday, ""
	default:
		return pal.Text, ""
	}
}

type anchor int

const (
	anchorLeft anchor = iota
	anchorCenter
	anchorRight
)

// drawText paints s with its top edge at y and the given horizontal anchor at x.
func (r *RasterRenderer) drawText(dst *image.RGBA, s string, x, y int, face font.Face, col color.RGBA, a anchor) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	switch a {
	case anchorCenter:
		x -= d.MeasureString(s).Round() / 2
	case anchorRight:
		x -= d.MeasureString(s).Round()
	}
	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Round())
	d.DrawString(s)
}

// strokeRect draws a 1px rectangle outline.
func strokeRect(dst *image.RGBA, x, y, w, h int, col color.RGBA) {
	src := image.NewUniform(col)
	draw.Draw(dst, image.Rect(x, y, x+w+1, y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x, y+h, x+w+1, y+h+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x, y, x+1, y+h+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x+w, y, x+w+1, y+h+1), src, image.Point{}, draw.Src)
}

// scaleToCanvas fits the logical layout onto the target canvas, preserving
// the layout's aspect ratio and letterboxing with the background color.
func scaleToCanvas(src *image.RGBA, w, h int, bg color.RGBA) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	scale := float64(w) / sw
	if s := float64(h) / sh; s < scale {
		scale = s
	}
	dw := int(sw * scale)
	dh := int(sh * scale)
	ox := (w - dw) / 2
	oy := (h - dh) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(ox, oy, ox+dw, oy+dh), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
