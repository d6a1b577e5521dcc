package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/internal/render"
)

type fakeParser struct {
	rec     *holiday.Record
	err     error
	gotText string
	gotYear int
}

func (f *fakeParser) Parse(_ context.Context, text string, refYear int) (*holiday.Record, error) {
	f.gotText = text
	f.gotYear = refYear
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

type fakeEnhancer struct {
	out       []byte
	err       error
	gotPrompt string
	calls     int
}

func (f *fakeEnhancer) Enhance(_ context.Context, _ []byte, prompt string) ([]byte, error) {
	f.calls++
	f.gotPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func laborDayRecord() *holiday.Record {
	return &holiday.Record{
		HolidayName:  "劳动节",
		Year:         2025,
		Month:        5,
		StartDate:    "2025-05-01",
		EndDate:      "2025-05-05",
		TotalDays:    5,
		HolidayDates: []string{"2025-05-01", "2025-05-02", "2025-05-03", "2025-05-04", "2025-05-05"},
		MakeupWorkdays: []holiday.MakeupWorkday{
			{Date: "2025-04-27", Description: "调休上班"},
		},
		CalendarMonths: []int{4, 5},
	}
}

func baseOptions() Options {
	return Options{
		Resolution:     "1K",
		DisableEnhance: true,
		Render:         render.Options{WeekStart: time.Monday},
	}
}

func TestRunProducesPNG(t *testing.T) {
	parser := &fakeParser{rec: laborDayRecord()}
	p := New(parser, nil, zap.NewNop())

	res, err := p.Run(context.Background(), "五一放假通知", baseOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, render.FormatPNG, res.Format)
	assert.False(t, res.Enhanced)
	assert.Equal(t, "五一放假通知", parser.gotText)
	assert.Equal(t, time.Now().Year(), parser.gotYear)

	_, err = png.DecodeConfig(bytes.NewReader(res.Data))
	assert.NoError(t, err)
}

func TestRunParseFailure(t *testing.T) {
	p := New(&fakeParser{err: errors.New("model unreachable")}, nil, zap.NewNop())

	_, err := p.Run(context.Background(), "text", baseOptions())
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageParsing, stageErr.Stage)
}

func TestRunValidationFailure(t *testing.T) {
	rec := laborDayRecord()
	rec.TotalDays = 99
	p := New(&fakeParser{rec: rec}, nil, zap.NewNop())

	_, err := p.Run(context.Background(), "text", baseOptions())
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageValidating, stageErr.Stage)

	var valErr *holiday.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestRunUnknownStyle(t *testing.T) {
	p := New(&fakeParser{rec: laborDayRecord()}, nil, zap.NewNop())

	opts := baseOptions()
	opts.Style = "蒸汽朋克风"
	_, err := p.Run(context.Background(), "text", opts)
	assert.Error(t, err)
}

func TestRunEnhancement(t *testing.T) {
	// The enhancer output must survive PNG conversion, so hand back a real
	// image rather than arbitrary bytes
	p0 := New(&fakeParser{rec: laborDayRecord()}, nil, zap.NewNop())
	base, err := p0.Run(context.Background(), "text", baseOptions())
	require.NoError(t, err)

	enhancer := &fakeEnhancer{out: base.Data}
	p := New(&fakeParser{rec: laborDayRecord()}, enhancer, zap.NewNop())

	opts := baseOptions()
	opts.DisableEnhance = false
	opts.Custom = "more festive"

	res, err := p.Run(context.Background(), "text", opts)
	require.NoError(t, err)

	assert.True(t, res.Enhanced)
	assert.Equal(t, 1, enhancer.calls)
	assert.Contains(t, enhancer.gotPrompt, "more festive")
}

func TestRunEnhancementFailureDegrades(t *testing.T) {
	enhancer := &fakeEnhancer{err: errors.New("model overloaded")}
	p := New(&fakeParser{rec: laborDayRecord()}, enhancer, zap.NewNop())

	opts := baseOptions()
	opts.DisableEnhance = false

	res, err := p.Run(context.Background(), "text", opts)
	require.NoError(t, err)

	assert.False(t, res.Enhanced)
	_, err = png.DecodeConfig(bytes.NewReader(res.Data))
	assert.NoError(t, err)
}

func TestRunDisableEnhanceSkipsEnhancer(t *testing.T) {
	enhancer := &fakeEnhancer{out: []byte("x")}
	p := New(&fakeParser{rec: laborDayRecord()}, enhancer, zap.NewNop())

	_, err := p.Run(context.Background(), "text", baseOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, enhancer.calls)
}

func TestRunWebFormat(t *testing.T) {
	p := New(&fakeParser{rec: laborDayRecord()}, nil, zap.NewNop())

	opts := baseOptions()
	opts.UseWeb = true

	res, err := p.Run(context.Background(), "text", opts)
	require.NoError(t, err)

	assert.Equal(t, render.FormatHTML, res.Format)
	assert.Contains(t, string(res.Data), "劳动节")
}

func TestRunJPEGFormat(t *testing.T) {
	p := New(&fakeParser{rec: laborDayRecord()}, nil, zap.NewNop())

	opts := baseOptions()
	opts.Format = render.FormatJPEG

	res, err := p.Run(context.Background(), "text", opts)
	require.NoError(t, err)
	assert.Equal(t, render.FormatJPEG, res.Format)
	assert.Equal(t, byte(0xFF), res.Data[0])
	assert.Equal(t, byte(0xD8), res.Data[1])
}

func TestRunSavesArtifacts(t *testing.T) {
	dir := t.TempDir()
	p := New(&fakeParser{rec: laborDayRecord()}, nil, zap.NewNop())

	opts := baseOptions()
	opts.SaveJSON = true
	opts.SaveBase = true
	opts.SaveHTML = true
	opts.ArtifactDir = dir

	_, err := p.Run(context.Background(), "text", opts)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var kinds []string
	for _, e := range entries {
		kinds = append(kinds, filepath.Ext(e.Name()))
	}
	assert.Contains(t, kinds, ".json")
	assert.Contains(t, kinds, ".png")
	assert.Contains(t, kinds, ".html")
}

func TestStageErrorMessage(t *testing.T) {
	err := stageErr(StageEnhancing, fmt.Errorf("boom"))
	assert.Equal(t, "enhancing failed: boom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "boom")
}
