package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/username/holiday-calendar/internal/aihub"
	"github.com/username/holiday-calendar/internal/render"
)

// Config represents application configuration
type Config struct {
	Parser   ParserConfig   `mapstructure:"parser"`
	Enhancer EnhancerConfig `mapstructure:"enhancer"`
	Output   OutputConfig   `mapstructure:"output"`
	Renderer RendererConfig `mapstructure:"renderer"`
	Log      LogConfig      `mapstructure:"log"`
}

// ParserConfig configures the announcement parsing model
type ParserConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// EnhancerConfig configures the image-to-image refinement model
type EnhancerConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// OutputConfig configures artifact placement and default format
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// RendererConfig configures the local drawing layout
type RendererConfig struct {
	WeekStart        string `mapstructure:"week_start"` // "monday" or "sunday"
	CellWidth        int    `mapstructure:"cell_width"`
	CellHeight       int    `mapstructure:"cell_height"`
	SingleMonthWidth int    `mapstructure:"single_month_width"`
	MultiMonthWidth  int    `mapstructure:"multi_month_width"`
}

// LogConfig configures logging output
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. With an explicit path a missing file is
// an error; with search paths the tool runs fine on defaults alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holiday-calendar")
		v.AddConfigPath("/etc/holiday-calendar")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && errors.As(err, &notFound) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	config.ExpandEnvVars()

	return &config, nil
}

func defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	c.ExpandEnvVars()
	return c
}

func (c *Config) applyDefaults() {
	if c.Parser.BaseURL == "" {
		c.Parser.BaseURL = aihub.DefaultBaseURL
	}
	if c.Parser.Model == "" {
		c.Parser.Model = aihub.DefaultParserModel
	}
	if c.Enhancer.BaseURL == "" {
		c.Enhancer.BaseURL = c.Parser.BaseURL
	}
	if c.Enhancer.Model == "" {
		c.Enhancer.Model = aihub.DefaultEnhancerModel
	}
	if c.Enhancer.APIKey == "" {
		c.Enhancer.APIKey = c.Parser.APIKey
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.Format == "" {
		c.Output.Format = "png"
	}
	if c.Renderer.WeekStart == "" {
		c.Renderer.WeekStart = "monday"
	}
	if c.Renderer.CellWidth <= 0 {
		c.Renderer.CellWidth = render.DefaultCellWidth
	}
	if c.Renderer.CellHeight <= 0 {
		c.Renderer.CellHeight = render.DefaultCellHeight
	}
	if c.Renderer.SingleMonthWidth <= 0 {
		c.Renderer.SingleMonthWidth = render.DefaultSingleMonthWidth
	}
	if c.Renderer.MultiMonthWidth <= 0 {
		c.Renderer.MultiMonthWidth = render.DefaultMultiMonthWidth
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// ValidateParser checks the settings the parsing stage needs.
func (c *Config) ValidateParser() error {
	if c.Parser.APIKey == "" {
		return fmt.Errorf("parser.api_key is required (or set AIHUBMIX_API_KEY)")
	}
	if c.Renderer.WeekStart != "monday" && c.Renderer.WeekStart != "sunday" {
		return fmt.Errorf("renderer.week_start must be 'monday' or 'sunday', got '%s'", c.Renderer.WeekStart)
	}
	return nil
}

// ValidateEnhancer checks the settings the enhancement stage needs. Only
// called when enhancement is enabled, so a missing key never blocks --no-ai
// runs.
func (c *Config) ValidateEnhancer() error {
	if c.Enhancer.APIKey == "" {
		return fmt.Errorf("enhancer.api_key is required (or set AIHUBMIX_API_KEY)")
	}
	return nil
}

// GetTimeout returns the parser HTTP timeout duration
func (c *ParserConfig) GetTimeout() time.Duration {
	return parseTimeout(c.Timeout, 60*time.Second)
}

// GetTimeout returns the enhancer HTTP timeout duration. Image generation
// is slow, so the default is generous.
func (c *EnhancerConfig) GetTimeout() time.Duration {
	return parseTimeout(c.Timeout, 180*time.Second)
}

func parseTimeout(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}

// WeekStartDay maps the configured week start to a weekday
func (c *RendererConfig) WeekStartDay() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// ExpandEnvVars expands environment variables in config strings, with
// AIHUBMIX_API_KEY as the fallback for both model keys
func (c *Config) ExpandEnvVars() {
	c.Parser.APIKey = os.ExpandEnv(c.Parser.APIKey)
	c.Enhancer.APIKey = os.ExpandEnv(c.Enhancer.APIKey)

	if c.Parser.APIKey == "" {
		c.Parser.APIKey = os.Getenv("AIHUBMIX_API_KEY")
	}
	if c.Enhancer.APIKey == "" {
		c.Enhancer.APIKey = c.Parser.APIKey
	}
}
