package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/grid"
	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/internal/style"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

// HTMLRenderer emits a self-contained FullCalendar document for external
// screenshotting. It never rasterizes anything itself.
type HTMLRenderer struct {
	logger *zap.Logger
}

// NewHTMLRenderer creates the markup backend.
func NewHTMLRenderer(logger *zap.Logger) *HTMLRenderer {
	return &HTMLRenderer{logger: logger}
}

type htmlEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
	Color string `json:"color"`
}

type htmlMonth struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	InitialDate string `json:"initialDate"`
}

type htmlData struct {
	HolidayName   string
	StartDate     string
	EndDate       string
	TotalDays     int
	MakeupCount   int
	Notes         string
	Background    string
	TextColor     string
	AccentColor   string
	EventsJSON    template.JS
	MonthsJSON    template.JS
	ContentHeight int
	Continuous    bool
	ViewStart     string
	ViewEnd       string
}

// Render implements Renderer, returning UTF-8 HTML bytes.
func (r *HTMLRenderer) Render(rec *holiday.Record, grids []*grid.MonthGrid, preset *style.Preset, opts Options) ([]byte, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("no month grids to render")
	}
	pal := preset.Palette

	events := make([]htmlEvent, 0, len(rec.HolidayDates)+len(rec.MakeupWorkdays))
	for _, d := range rec.HolidayDates {
		events = append(events, htmlEvent{Title: "休", Start: d, Color: hexColor(pal.Holiday)})
	}
	for _, w := range rec.MakeupWorkdays {
		events = append(events, htmlEvent{Title: "班", Start: w.Date, Color: hexColor(pal.Makeup)})
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events: %w", err)
	}

	months := make([]htmlMonth, 0, len(grids))
	for _, g := range grids {
		months = append(months, htmlMonth{
			Year:        g.Year,
			Month:       int(g.Month),
			InitialDate: fmt.Sprintf("%04d-%02d-01", g.Year, g.Month),
		})
	}
	monthsJSON, err := json.Marshal(months)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal months: %w", err)
	}

	contentHeight := 500
	if len(grids) > 1 {
		contentHeight = 600
	}

	data := htmlData{
		HolidayName:   rec.HolidayName,
		StartDate:     rec.StartDate,
		EndDate:       rec.EndDate,
		TotalDays:     rec.TotalDays,
		MakeupCount:   len(rec.MakeupWorkdays),
		Notes:         rec.Notes,
		Background:    hexColor(pal.Background),
		TextColor:     hexColor(pal.Text),
		AccentColor:   hexColor(pal.Accent),
		EventsJSON:    template.JS(eventsJSON),
		MonthsJSON:    template.JS(monthsJSON),
		ContentHeight: contentHeight,
		Continuous:    len(grids) > 1,
	}
	if data.Continuous {
		data.ViewStart, data.ViewEnd = viewRange(rec)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute calendar template: %w", err)
	}

	r.logger.Info("calendar markup generated",
		zap.Int("months", len(months)),
		zap.Int("events", len(events)))

	return buf.Bytes(), nil
}

// viewRange computes the continuous multi-week window for a span that crosses
// months: the Monday of the earliest referenced week through the Sunday of the
// latest, padded on both sides to at least four weeks.
func viewRange(rec *holiday.Record) (start, end string) {
	dates := make([]time.Time, 0, 2+len(rec.MakeupWorkdays))
	s, e := rec.Span()
	dates = append(dates, s, e)
	for _, w := range rec.MakeupWorkdays {
		if t, err := dateutil.ParseISODate(w.Date); err == nil {
			dates = append(dates, t)
		}
	}

	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	// Monday=0 .. Sunday=6 offsets
	startMonday := min.AddDate(0, 0, -((int(min.Weekday()) + 6) % 7))
	endSunday := max.AddDate(0, 0, (7-int(max.Weekday()))%7)

	weeks := dateutil.InclusiveDays(startMonday, endSunday) / 7
	if weeks < 4 {
		padBefore := (4 - weeks) / 2
		padAfter := 4 - weeks - padBefore
		startMonday = startMonday.AddDate(0, 0, -padBefore*7)
		endSunday = endSunday.AddDate(0, 0, padAfter*7)
	}

	// visibleRange.end is exclusive
	return dateutil.FormatISODate(startMonday), dateutil.FormatISODate(endSunday.AddDate(0, 0, 1))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var pageTemplate = template.Must(template.New("calendar").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>{{.HolidayName}}</title>
<script src="https://cdn.jsdelivr.net/npm/fullcalendar@6.1.11/index.global.min.js"></script>
<style>
  body { margin: 0; background: {{.Background}}; font-family: "PingFang SC", "Microsoft YaHei", "Noto Sans CJK SC", sans-serif; color: {{.TextColor}}; }
  .container { padding: 24px; }
  h1 { margin: 0 0 8px; color: {{.AccentColor}}; }
  .info-bar { margin-bottom: 16px; font-size: 15px; }
  .badge { display: inline-block; padding: 2px 10px; border-radius: 10px; background: {{.AccentColor}}; color: #fff; margin-left: 8px; font-size: 13px; }
  .calendars { display: flex; gap: 24px; }
  .calendars > div { flex: 1; }
  .notes { margin-top: 12px; font-size: 13px; opacity: 0.7; }
</style>
</head>
<body>
<div class="container">
  <h1>{{.HolidayName}}</h1>
  <div class="info-bar">
    放假时间: {{.StartDate}} 至 {{.EndDate}} (共{{.TotalDays}}天)
    {{- if .MakeupCount}}<span class="badge">补班 {{.MakeupCount}} 天</span>{{end}}
  </div>
  <div class="calendars" id="calendars"></div>
  {{- if .Notes}}
  <div class="notes">备注: {{.Notes}}</div>
  {{- end}}
</div>
<script>
  const events = {{.EventsJSON}};
  const months = {{.MonthsJSON}};
  const root = document.getElementById('calendars');
  const common = {
    locale: 'zh-cn',
    firstDay: 1,
    headerToolbar: { left: '', center: 'title', right: '' },
    height: {{.ContentHeight}},
    events: events,
    displayEventTime: false
  };
  {{- if .Continuous}}
  const el = document.createElement('div');
  root.appendChild(el);
  new FullCalendar.Calendar(el, Object.assign({}, common, {
    initialView: 'dayGrid',
    visibleRange: { start: '{{.ViewStart}}', end: '{{.ViewEnd}}' }
  })).render();
  {{- else}}
  months.forEach(m => {
    const el = document.createElement('div');
    root.appendChild(el);
    new FullCalendar.Calendar(el, Object.assign({}, common, {
      initialView: 'dayGridMonth',
      initialDate: m.initialDate
    })).render();
  });
  {{- end}}
</script>
</body>
</html>
`))
