package config

import (
	"bench-dashboard/internal/derived"
)

type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	Source    SourceConfig    `yaml:"source"`
	Export    ExportConfig    `yaml:"export"`
	Server    ServerConfig    `yaml:"server"`
}

type DashboardConfig struct {
	Name             string   `yaml:"name"`
	LogLevel         string   `yaml:"log_level"`
	Duration         float64  `yaml:"duration"`
	SamplingFactor   float64  `yaml:"sampling_factor"`
	PageSize         int      `yaml:"page_size"`
	DefaultScenario  string   `yaml:"default_scenario"`
	DefaultLanguages []string `yaml:"default_languages"`
	Categories       []string `yaml:"categories"`
	Colormap         string   `yaml:"colormap"`
	LogScale         bool     `yaml:"log_scale"`
}

type SourceType string

const (
	SourceCSV      SourceType = "csv"
	SourceInfluxDB SourceType = "influxdb"
	SourceSQL      SourceType = "sql"
	SourceSnapshot SourceType = "snapshot"
)

type SourceConfig struct {
	Type     SourceType     `yaml:"type"`
	Path     string         `yaml:"path"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	SQL      SQLConfig      `yaml:"sql"`
}

type InfluxDBConfig struct {
	Host        string `yaml:"host"`
	Token       string `yaml:"token"`
	Org         string `yaml:"org"`
	Bucket      string `yaml:"bucket"`
	Measurement string `yaml:"measurement"`
	Range       string `yaml:"range"`
}

type SQLConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

type ExportConfig struct {
	Dir     string       `yaml:"dir"`
	Formats []string     `yaml:"formats"`
	Upload  UploadConfig `yaml:"upload"`
}

type UploadConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

func (u UploadConfig) Enabled() bool {
	return u.Bucket != ""
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func (c *Config) DerivedParams() derived.Params {
	return derived.Params{Duration: c.Dashboard.Duration, SamplingFactor: c.Dashboard.SamplingFactor}
}
