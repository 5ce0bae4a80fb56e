package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bench-dashboard/internal/logging"
)

func init() {
	logging.SetOutput(io.Discard)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "source:\n  path: results.csv\n")

	cfg, content, err := LoadConfigWithContent(path)
	if err != nil {
		t.Fatalf("LoadConfigWithContent: %v", err)
	}
	if !strings.Contains(content, "results.csv") {
		t.Fatalf("expected raw content to be returned")
	}
	if cfg.Source.Type != SourceCSV || cfg.Dashboard.Duration != 20 || cfg.Dashboard.SamplingFactor != 2 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Dashboard.PageSize != DefaultPageSize || cfg.Dashboard.DefaultScenario != "db" {
		t.Fatalf("unexpected dashboard defaults %+v", cfg.Dashboard)
	}
	if len(cfg.Dashboard.Categories) != 8 {
		t.Fatalf("expected all 8 filter categories, got %v", cfg.Dashboard.Categories)
	}
	if cfg.Export.Dir != DefaultExportDir || len(cfg.Export.Formats) != 1 || cfg.Export.Formats[0] != "pdf" {
		t.Fatalf("unexpected export defaults %+v", cfg.Export)
	}
	if cfg.Server.Addr != DefaultAddr || cfg.Export.Upload.Enabled() {
		t.Fatalf("unexpected server/upload defaults %+v", cfg)
	}
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("BENCH_INFLUX_TOKEN", "secret")
	path := writeConfig(t, `
source:
  type: influxdb
  influxdb:
    host: http://localhost:8086
    token: ${BENCH_INFLUX_TOKEN}
    org: lab
    bucket: bench
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Source.InfluxDB.Token != "secret" {
		t.Fatalf("expected token to be expanded, got %q", cfg.Source.InfluxDB.Token)
	}
	if cfg.Source.InfluxDB.Measurement != DefaultMeasurement || cfg.Source.InfluxDB.Range != DefaultRange {
		t.Fatalf("unexpected influx defaults %+v", cfg.Source.InfluxDB)
	}
}

func TestExpandEnvVars_KeepsUnset(t *testing.T) {
	if got := expandEnvVars("dsn: ${BENCH_SURELY_UNSET_VAR}"); got != "dsn: ${BENCH_SURELY_UNSET_VAR}" {
		t.Fatalf("expected unset variable to be kept, got %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"duration":     "dashboard:\n  duration: -1\nsource:\n  path: a.csv\n",
		"sampling":     "dashboard:\n  sampling_factor: -2\nsource:\n  path: a.csv\n",
		"scenario":     "dashboard:\n  default_scenario: idle\nsource:\n  path: a.csv\n",
		"category":     "dashboard:\n  categories: [language]\nsource:\n  path: a.csv\n",
		"log level":    "dashboard:\n  log_level: loud\nsource:\n  path: a.csv\n",
		"csv path":     "source:\n  type: csv\n",
		"influx":       "source:\n  type: influxdb\n  influxdb:\n    host: h\n",
		"sql driver":   "source:\n  type: sql\n  sql:\n    driver: postgres\n    dsn: x\n",
		"sql dsn":      "source:\n  type: sql\n  sql:\n    driver: sqlite3\n",
		"source type":  "source:\n  type: parquet\n",
		"format":       "source:\n  path: a.csv\nexport:\n  formats: [gif]\n",
		"colormap":     "dashboard:\n  colormap: Rainbow\nsource:\n  path: a.csv\n",
		"invalid yaml": "source: [",
	}
	for name, content := range cases {
		if _, err := Parse([]byte(content)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParse_SQL(t *testing.T) {
	cfg, err := Parse([]byte("source:\n  type: sql\n  sql:\n    driver: sqlite3\n    dsn: bench.db\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Source.SQL.Table != DefaultTable {
		t.Fatalf("expected default table, got %q", cfg.Source.SQL.Table)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestChecksum(t *testing.T) {
	a := Default()
	b := Default()
	b.Dashboard.Categories = []string{"os", "orm"}
	a.Dashboard.Categories = []string{"orm", "os"}

	sumA, err := Checksum(a)
	if err != nil {
		t.Fatalf("Checksum: %v", err)
	}
	sumB, _ := Checksum(b)
	if len(sumA) != 6 || sumA != sumB {
		t.Fatalf("expected equal 6 char checksums, got %q %q", sumA, sumB)
	}

	b.Dashboard.PageSize = 50
	b.Source.SQL.DSN = "user:pw@/db"
	if sum, _ := Checksum(b); sum != sumA {
		t.Fatalf("presentation settings and credentials must not change the checksum")
	}

	b.Dashboard.Duration = 30
	if sum, _ := Checksum(b); sum == sumA {
		t.Fatalf("expected duration to change the checksum")
	}
}
