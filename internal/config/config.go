package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-itemform/pkg/orchestrator"
	"github.com/goliatone/go-itemform/pkg/renderers/jsonspec"
	"github.com/goliatone/go-itemform/pkg/renderers/tui"
	"github.com/goliatone/go-itemform/pkg/schema"
)

// ErrConfigNotFound is returned when an explicitly requested config file does
// not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DefaultConfigFile is read from the working directory when no --config flag
// is given. Its absence is not an error.
const DefaultConfigFile = "itemform.yaml"

// EnvPrefix namespaces environment overrides, e.g. ITEMFORM_RENDER_RENDERER.
const EnvPrefix = "ITEMFORM"

// FormatOpenAPI selects the OpenAPI adapter instead of the create-metadata
// decoder.
const FormatOpenAPI = "openapi"

// Config represents the CLI configuration
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig controls how schema documents are decoded
type InputConfig struct {
	Format         string `mapstructure:"format"`
	Operation      string `mapstructure:"operation"`
	SanitizeLabels bool   `mapstructure:"sanitize_labels"`
	Preset         string `mapstructure:"preset"`
}

// RenderConfig selects the renderer and its output
type RenderConfig struct {
	Renderer string `mapstructure:"renderer"`
	Output   string `mapstructure:"output"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format:    string(schema.FormatAuto),
			Operation: "createIssue",
		},
		Render: RenderConfig{
			Renderer: jsonspec.Name,
			Output:   string(tui.OutputFormatJSON),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .env, the optional config file and ITEMFORM_ environment
// overrides, in that order of increasing precedence over the defaults.
// An empty configFile looks for DefaultConfigFile in the working directory.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	config := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, config)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolved := configFile
	if resolved == "" {
		resolved = DefaultConfigFile
	}
	if _, err := os.Stat(resolved); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if configFile != "" {
			return nil, ErrConfigNotFound
		}
		resolved = ""
	}

	if resolved != "" {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file content: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that the
// config file does not mention.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("input.format", c.Input.Format)
	v.SetDefault("input.operation", c.Input.Operation)
	v.SetDefault("input.sanitize_labels", c.Input.SanitizeLabels)
	v.SetDefault("input.preset", c.Input.Preset)
	v.SetDefault("render.renderer", c.Render.Renderer)
	v.SetDefault("render.output", c.Render.Output)
	v.SetDefault("logging.level", c.Logging.Level)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Input.Format != FormatOpenAPI {
		if _, err := schema.ParseFormat(c.Input.Format); err != nil {
			return fmt.Errorf("invalid input.format %q: %w", c.Input.Format, err)
		}
	}
	switch c.Render.Renderer {
	case jsonspec.Name, tui.Name:
	default:
		return fmt.Errorf("invalid render.renderer %q", c.Render.Renderer)
	}
	if _, ok := tui.ParseOutputFormat(c.Render.Output); !ok {
		return fmt.Errorf("invalid render.output %q", c.Render.Output)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// InputKind maps input.format onto the orchestrator's decoder selection.
func (c *Config) InputKind() orchestrator.InputKind {
	if c.Input.Format == FormatOpenAPI {
		return orchestrator.InputOpenAPI
	}
	return orchestrator.InputCreateMeta
}

// Encoding returns the forced payload encoding, or FormatAuto.
func (c *Config) Encoding() schema.Format {
	if c.Input.Format == FormatOpenAPI {
		return schema.FormatAuto
	}
	format, err := schema.ParseFormat(c.Input.Format)
	if err != nil {
		return schema.FormatAuto
	}
	return format
}

// OutputFormat returns the tui serialization format.
func (c *Config) OutputFormat() tui.OutputFormat {
	format, _ := tui.ParseOutputFormat(c.Render.Output)
	return format
}

// LogLevel parses logging.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return level, nil
}
