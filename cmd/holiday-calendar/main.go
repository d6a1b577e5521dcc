package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/holiday-calendar/internal/aihub"
	"github.com/username/holiday-calendar/internal/config"
	"github.com/username/holiday-calendar/internal/pipeline"
	"github.com/username/holiday-calendar/internal/render"
	"github.com/username/holiday-calendar/internal/style"
	"github.com/username/holiday-calendar/pkg/fsutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	// Local development convenience; absence of .env is normal
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "holiday-calendar",
		Short: "Holiday announcement to calendar image generator",
		Long:  "Parse Chinese holiday announcements with AI and render shareable calendar images",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(stylesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		styleName   string
		customStyle string
		aspectRatio string
		resolution  string
		outputPath  string
		format      string
		inputFile   string
		refYear     int
		noAI        bool
		saveJSON    bool
		saveBase    bool
		saveHTML    bool
		useWeb      bool
		cacheDir    string
	)

	cmd := &cobra.Command{
		Use:   "generate [announcement text]",
		Short: "Generate a calendar image from a holiday announcement",
		Example: `  holiday-calendar generate "春节：1月28日至2月4日放假调休，共8天。1月26日、2月8日上班" --style 中国红喜庆风
  holiday-calendar generate --file notice.txt --no-ai --format pdf
  holiday-calendar generate --file notice.txt --web -o calendar.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := announcementText(args, inputFile)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := cfg.ValidateParser(); err != nil {
				return err
			}
			if !noAI && !useWeb {
				if err := cfg.ValidateEnhancer(); err != nil {
					return err
				}
			}

			outFormat := render.Format(cfg.Output.Format)
			if format != "" {
				parsed, ok := render.ParseFormat(format)
				if !ok {
					return fmt.Errorf("unsupported format %q (use png, jpg, pdf or html)", format)
				}
				outFormat = parsed
			}
			if useWeb {
				outFormat = render.FormatHTML
			} else if outFormat == render.FormatHTML {
				return fmt.Errorf("format html requires --web")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			parserClient := aihub.NewClient(cfg.Parser.BaseURL, cfg.Parser.APIKey, cfg.Parser.GetTimeout(), logger)
			parser := aihub.NewParser(parserClient, cfg.Parser.Model, logger)

			var enhancer pipeline.ImageEnhancer
			if !noAI && !useWeb {
				enhancerClient := aihub.NewClient(cfg.Enhancer.BaseURL, cfg.Enhancer.APIKey, cfg.Enhancer.GetTimeout(), logger)
				enhancer = aihub.NewEnhancer(enhancerClient, cfg.Enhancer.Model, logger)
			}

			artifactDir := cacheDir
			if artifactDir == "" {
				artifactDir = cfg.Output.Dir
			}

			opts := pipeline.Options{
				Style:          styleName,
				Custom:         customStyle,
				AspectRatio:    aspectRatio,
				Resolution:     resolution,
				Format:         outFormat,
				DisableEnhance: noAI,
				SaveJSON:       saveJSON,
				SaveBase:       saveBase,
				SaveHTML:       saveHTML,
				UseWeb:         useWeb,
				ArtifactDir:    artifactDir,
				RefYear:        refYear,
				Render: render.Options{
					WeekStart:        cfg.Renderer.WeekStartDay(),
					CellWidth:        cfg.Renderer.CellWidth,
					CellHeight:       cfg.Renderer.CellHeight,
					SingleMonthWidth: cfg.Renderer.SingleMonthWidth,
					MultiMonthWidth:  cfg.Renderer.MultiMonthWidth,
				},
			}

			p := pipeline.New(parser, enhancer, logger)
			result, err := p.Run(ctx, text, opts)
			if err != nil {
				var stageErr *pipeline.StageError
				if errors.As(err, &stageErr) {
					logger.Error("Pipeline stage failed",
						zap.String("stage", string(stageErr.Stage)),
						zap.Error(stageErr.Err))
				}
				return err
			}

			path := outputPath
			if path == "" {
				name := fmt.Sprintf("holiday_calendar_%s.%s", time.Now().Format("20060102_150405"), result.Format)
				path = filepath.Join(cfg.Output.Dir, name)
			}
			if err := fsutil.WriteFileAtomic(path, result.Data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			fmt.Printf("✅ %s (%s)\n", path, result.Record.HolidayName)
			if result.Enhanced {
				fmt.Println("   AI enhancement applied")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&styleName, "style", "s", "", "Style preset (see 'styles' command)")
	cmd.Flags().StringVar(&customStyle, "custom", "", "Extra style instructions for AI enhancement")
	cmd.Flags().StringVar(&aspectRatio, "aspect-ratio", "16:9", "Output aspect ratio (e.g. 16:9, 1:1, 9:16)")
	cmd.Flags().StringVar(&resolution, "resolution", "2K", "Output resolution tier (1K, 2K, 4K)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	cmd.Flags().StringVar(&format, "format", "", "Output format (png, jpg, pdf)")
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read announcement text from file ('-' for stdin)")
	cmd.Flags().IntVar(&refYear, "year", 0, "Reference year for announcements without one (default: current year)")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip AI image enhancement")
	cmd.Flags().BoolVar(&saveJSON, "save-json", false, "Save the parsed holiday data as JSON")
	cmd.Flags().BoolVar(&saveBase, "save-base", false, "Save the unenhanced base render")
	cmd.Flags().BoolVar(&saveHTML, "save-html", false, "Also save an interactive HTML calendar")
	cmd.Flags().BoolVar(&useWeb, "web", false, "Emit an interactive HTML calendar instead of an image")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for intermediate artifacts (default: output dir)")

	return cmd
}

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available style presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available styles:")
			for _, name := range style.Names() {
				marker := "  "
				if name == style.DefaultName {
					marker = "* "
				}
				fmt.Printf("%s%s\n", marker, name)
			}
			fmt.Println("\n* default")
		},
	}
}

// announcementText resolves the input text from positional args, a file, or
// stdin.
func announcementText(args []string, inputFile string) (string, error) {
	if inputFile != "" {
		var data []byte
		var err error
		if inputFile == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(inputFile)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read announcement: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "", fmt.Errorf("announcement file is empty")
		}
		return text, nil
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("provide announcement text as an argument or via --file")
	}
	return text, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
