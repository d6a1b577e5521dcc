package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/aihub"
	"github.com/username/holiday-calendar/internal/grid"
	"github.com/username/holiday-calendar/internal/holiday"
	"github.com/username/holiday-calendar/internal/render"
	"github.com/username/holiday-calendar/internal/style"
	"github.com/username/holiday-calendar/pkg/fsutil"
)

// Stage names the pipeline step that produced an error.
type Stage string

const (
	StageParsing    Stage = "parsing"
	StageValidating Stage = "validating"
	StageRendering  Stage = "rendering"
	StageEnhancing  Stage = "enhancing"
)

// StageError wraps a failure with the stage it occurred in, so the CLI can
// report where a run broke without string matching.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// TextParser extracts a structured record from announcement text.
type TextParser interface {
	Parse(ctx context.Context, text string, refYear int) (*holiday.Record, error)
}

// ImageEnhancer refines a rendered base image. A nil enhancer disables the
// enhancement stage entirely.
type ImageEnhancer interface {
	Enhance(ctx context.Context, basePNG []byte, prompt string) ([]byte, error)
}

// Options carries per-run settings.
type Options struct {
	Style       string
	Custom      string // extra prompt text appended to the style's
	AspectRatio string
	Resolution  string
	Format      render.Format

	DisableEnhance bool
	SaveJSON       bool
	SaveBase       bool
	SaveHTML       bool
	UseWeb         bool // emit the HTML document as the primary artifact

	ArtifactDir string // where intermediate artifacts land
	RefYear     int    // reference year for undated announcements

	Render render.Options
}

// Result is a completed run.
type Result struct {
	RunID    string
	Record   *holiday.Record
	Data     []byte
	Format   render.Format
	Enhanced bool
}

// Pipeline drives announcement text through parsing, validation, rendering
// and optional enhancement.
type Pipeline struct {
	parser   TextParser
	enhancer ImageEnhancer
	raster   render.Renderer
	html     render.Renderer
	logger   *zap.Logger
}

// New assembles a pipeline. enhancer may be nil when the refinement stage is
// unavailable.
func New(parser TextParser, enhancer ImageEnhancer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		parser:   parser,
		enhancer: enhancer,
		raster:   render.NewRasterRenderer(render.LoadFontSet(logger), logger),
		html:     render.NewHTMLRenderer(logger),
		logger:   logger,
	}
}

// Run executes the full pipeline for one announcement.
func (p *Pipeline) Run(ctx context.Context, text string, opts Options) (*Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))

	preset, err := style.Get(opts.Style)
	if err != nil {
		return nil, err
	}

	if opts.RefYear == 0 {
		opts.RefYear = time.Now().Year()
	}

	logger.Info("Pipeline started",
		zap.String("style", preset.Name),
		zap.String("format", string(opts.Format)),
		zap.Bool("web", opts.UseWeb),
		zap.Bool("enhance", !opts.DisableEnhance && p.enhancer != nil))

	rec, err := p.parser.Parse(ctx, text, opts.RefYear)
	if err != nil {
		return nil, stageErr(StageParsing, err)
	}

	if err := holiday.Validate(rec); err != nil {
		return nil, stageErr(StageValidating, err)
	}

	grids := grid.BuildAll(rec, opts.Render.WeekStart)

	p.saveJSON(rec, opts, logger)

	if opts.UseWeb {
		doc, err := p.html.Render(rec, grids, preset, opts.Render)
		if err != nil {
			return nil, stageErr(StageRendering, err)
		}
		return &Result{RunID: runID, Record: rec, Data: doc, Format: render.FormatHTML}, nil
	}

	renderOpts := opts.Render
	renderOpts.AspectRatio = opts.AspectRatio
	renderOpts.Resolution = opts.Resolution

	basePNG, err := p.raster.Render(rec, grids, preset, renderOpts)
	if err != nil {
		return nil, stageErr(StageRendering, err)
	}

	if opts.SaveBase {
		p.saveArtifact("calendar_base", "png", basePNG, opts, logger)
	}
	if opts.SaveHTML {
		if doc, err := p.html.Render(rec, grids, preset, opts.Render); err == nil {
			p.saveArtifact("calendar", "html", doc, opts, logger)
		} else {
			logger.Warn("Failed to generate HTML artifact", zap.Error(err))
		}
	}

	finalPNG := basePNG
	enhanced := false
	if !opts.DisableEnhance && p.enhancer != nil {
		prompt := aihub.BuildEnhancePrompt(preset.Prompt, opts.Custom)
		refined, err := p.enhancer.Enhance(ctx, basePNG, prompt)
		if err != nil {
			// Enhancement is best effort; the base render is still a
			// complete calendar
			logger.Warn("Enhancement failed, keeping base render", zap.Error(err))
		} else {
			finalPNG = refined
			enhanced = true
		}
	}

	format := opts.Format
	if format == "" {
		format = render.FormatPNG
	}
	data, err := render.Convert(finalPNG, format)
	if err != nil {
		return nil, stageErr(StageRendering, err)
	}

	logger.Info("Pipeline finished",
		zap.String("holiday", rec.HolidayName),
		zap.Bool("enhanced", enhanced),
		zap.Int("bytes", len(data)))

	return &Result{
		RunID:    runID,
		Record:   rec,
		Data:     data,
		Format:   format,
		Enhanced: enhanced,
	}, nil
}

func (p *Pipeline) saveJSON(rec *holiday.Record, opts Options, logger *zap.Logger) {
	if !opts.SaveJSON {
		return
	}
	data, err := holiday.Encode(rec)
	if err != nil {
		logger.Warn("Failed to encode record", zap.Error(err))
		return
	}
	p.saveArtifact("holiday_data", "json", data, opts, logger)
}

// saveArtifact writes an intermediate file. Failures are logged but never
// abort the run.
func (p *Pipeline) saveArtifact(name, ext string, data []byte, opts Options, logger *zap.Logger) {
	dir := opts.ArtifactDir
	if dir == "" {
		dir = "output"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_150405"), ext))
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		logger.Warn("Failed to save artifact",
			zap.String("path", path),
			zap.Error(err))
		return
	}
	logger.Info("Artifact saved", zap.String("path", path))
}
