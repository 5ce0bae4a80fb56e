package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/binning"
	"bench-dashboard/internal/derived"
	"bench-dashboard/internal/logging"
	"bench-dashboard/internal/plot"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize    = 20
	DefaultAddr        = ":8050"
	DefaultExportDir   = "exports"
	DefaultTable       = "benchmarks"
	DefaultMeasurement = "benchmarks"
	DefaultRange       = "0"
)

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func LoadConfig(filepath string) (*Config, error) {
	config, _, err := LoadConfigWithContent(filepath)
	return config, err
}

func LoadConfigWithContent(filepath string) (*Config, string, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(filepath)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to read config file")
		return nil, "", err
	}

	config, err := Parse(data)
	if err != nil {
		logger.WithField("filepath", filepath).WithError(err).Error("Failed to load config file")
		return nil, "", err
	}
	return config, string(data), nil
}

// Parse expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	config := &Config{Source: SourceConfig{Type: SourceCSV, Path: "recap_frameworkbenchmark.csv"}}
	applyDefaults(config)
	return config
}

func expandEnvVars(content string) string {
	return envPattern.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

func applyDefaults(c *Config) {
	d := &c.Dashboard
	if d.Name == "" {
		d.Name = "bench-dashboard"
	}
	if d.LogLevel == "" {
		d.LogLevel = "info"
	}
	if d.Colormap == "" {
		d.Colormap = binning.DefaultColormap
	}
	if d.Duration == 0 {
		d.Duration = derived.DefaultDuration
	}
	if d.SamplingFactor == 0 {
		d.SamplingFactor = derived.DefaultSamplingFactor
	}
	if d.PageSize == 0 {
		d.PageSize = DefaultPageSize
	}
	if d.DefaultScenario == "" {
		d.DefaultScenario = string(benchmark.ScenarioDB)
	}
	if len(d.DefaultLanguages) == 0 {
		d.DefaultLanguages = []string{"php"}
	}
	if len(d.Categories) == 0 {
		for _, cat := range benchmark.FilterCategories {
			d.Categories = append(d.Categories, string(cat))
		}
	}

	if c.Source.Type == "" {
		c.Source.Type = SourceCSV
	}
	if c.Source.SQL.Table == "" {
		c.Source.SQL.Table = DefaultTable
	}
	if c.Source.InfluxDB.Measurement == "" {
		c.Source.InfluxDB.Measurement = DefaultMeasurement
	}
	if c.Source.InfluxDB.Range == "" {
		c.Source.InfluxDB.Range = DefaultRange
	}

	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{string(plot.FormatPDF)}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
}

func validateConfig(c *Config) error {
	d := c.Dashboard
	if _, err := logrus.ParseLevel(d.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if err := c.DerivedParams().Validate(); err != nil {
		return err
	}
	if d.PageSize <= 0 {
		return fmt.Errorf("page_size must be greater than 0")
	}

	scenario := benchmark.Scenario(d.DefaultScenario)
	if !scenario.Valid() || scenario == benchmark.ScenarioIdle {
		return fmt.Errorf("default_scenario: unknown scenario %q", d.DefaultScenario)
	}

	if _, err := binning.LookupColormap(d.Colormap); err != nil {
		return fmt.Errorf("colormap: %w", err)
	}

	for _, name := range d.Categories {
		cat := benchmark.Category(name)
		if !cat.Valid() || cat == benchmark.CategoryLanguage {
			return fmt.Errorf("categories: unknown category %q", name)
		}
	}

	switch c.Source.Type {
	case SourceCSV, SourceSnapshot:
		if c.Source.Path == "" {
			return fmt.Errorf("source: %s source requires a path", c.Source.Type)
		}
	case SourceInfluxDB:
		db := c.Source.InfluxDB
		if db.Host == "" || db.Token == "" || db.Org == "" || db.Bucket == "" {
			return fmt.Errorf("source: incomplete influxdb configuration")
		}
	case SourceSQL:
		db := c.Source.SQL
		if db.Driver != "sqlite3" && db.Driver != "mysql" {
			return fmt.Errorf("source: unsupported sql driver %q", db.Driver)
		}
		if db.DSN == "" {
			return fmt.Errorf("source: sql source requires a dsn")
		}
	default:
		return fmt.Errorf("source: unknown type %q", c.Source.Type)
	}

	if _, err := plot.ParseFormats(c.Export.Formats); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
