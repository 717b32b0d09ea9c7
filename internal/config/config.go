package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gcpeaks/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// AnalysisConfig holds the run parameters of one batch
type AnalysisConfig struct {
	Root       string     `yaml:"root" envconfig:"ROOT" validate:"required"`
	Name       string     `yaml:"name" envconfig:"NAME" validate:"required"`
	Extension  string     `yaml:"extension" envconfig:"EXTENSION" validate:"required"`
	ResultsDir string     `yaml:"results_dir" envconfig:"RESULTS_DIR" validate:"required"`
	Peaks      Peaks      `yaml:"peaks" ignored:"true" validate:"required,min=1,dive"`
	XAxis      *AxisRange `yaml:"x_axis" ignored:"true"`
	YAxis      *AxisRange `yaml:"y_axis" ignored:"true"`
	Interval   float64    `yaml:"interval" envconfig:"INTERVAL" validate:"gte=0"`
}

// OutputConfig controls optional artifacts
type OutputConfig struct {
	Workbook bool `yaml:"workbook" envconfig:"WORKBOOK"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig selects the trace and metrics sinks. Empty paths disable them.
type TelemetryConfig struct {
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the configuration from defaults, the YAML file at path (or the
// first default location that exists when path is empty), GCPEAKS_*
// environment variables and overrides, in that order of increasing
// precedence.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()

	configFile, err := resolveConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("config_file", configFile)
		}
	}

	// Only variables that are set override; nothing here carries defaults
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	for _, override := range overrides {
		override(cfg)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolveConfigFile returns the explicit path, which must exist, or the
// first default location that exists, or "" when there is none
func resolveConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", apperrors.NewNotFoundError("config file", err).WithContext("config_file", path)
		}
		return path, nil
	}

	for _, location := range DefaultConfigLocations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", nil
}

// applyDefaults fills values a YAML file may have blanked
func (c *Config) applyDefaults() {
	if c.Analysis.Extension == "" {
		c.Analysis.Extension = DefaultExtension
	}
	if c.Analysis.ResultsDir == "" {
		c.Analysis.ResultsDir = DefaultResultsDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = DefaultLogOutput
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = AppName
	}
}

// Validate checks struct tags, axis ranges and peak name uniqueness
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewConfigError("config validation failed", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	if err := c.Analysis.XAxis.Validate(); err != nil {
		problems = append(problems, "analysis.x_axis: "+err.Error())
	}
	if err := c.Analysis.YAxis.Validate(); err != nil {
		problems = append(problems, "analysis.y_axis: "+err.Error())
	}

	seen := make(map[string]bool, len(c.Analysis.Peaks))
	for _, w := range c.Analysis.Peaks {
		if seen[w.Name] {
			problems = append(problems, fmt.Sprintf("analysis.peaks: duplicate peak name %q", w.Name))
		}
		seen[w.Name] = true
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError("config validation failed", errors.New(strings.Join(problems, "; "))).
			WithContext("problems", problems)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}

// Default returns default configuration; Root, Name and Peaks have no default
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Extension:  DefaultExtension,
			ResultsDir: DefaultResultsDir,
			Interval:   1,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			ServiceName: AppName,
		},
	}
}
