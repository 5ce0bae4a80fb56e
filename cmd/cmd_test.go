package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bench-dashboard/internal/export"
	"bench-dashboard/internal/logging"
)

func init() {
	logging.SetOutput(io.Discard)
}

const testCSV = `name,display_name,language,status,level,scenario,cpu,dram,totalRequests,latencyAvg,latency99,framework
gin,Gin,go,success,16,db,200,20,500,2,9,gin
gin,Gin,go,success,32,db,400,40,2000,3,12,gin
gin,Gin,go,success,0,db,40,20,0,0,0,gin
laravel,Laravel,php,success,16,db,800,80,400,9,30,laravel
laravel,Laravel,php,success,0,db,120,60,0,0,0,laravel
slim,Slim,php,failed,16,db,1,1,1,1,1,slim
`

func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "results.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	exportDir := filepath.Join(dir, "exports")
	cfgPath := filepath.Join(dir, "dashboard.yml")
	content := "dashboard:\n  log_level: error\nsource:\n  type: csv\n  path: " + csvPath + "\nexport:\n  dir: " + exportDir + "\n  formats: [svg]\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, exportDir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, logLevel = "", ""
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	logging.SetOutput(io.Discard)
	return out.String(), err
}

func TestIdleCommand(t *testing.T) {
	cfgPath, _ := writeFixture(t)
	out, err := execute(t, "idle", "-c", cfgPath)
	if err != nil {
		t.Fatalf("idle: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and two frameworks, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "gin") || !strings.Contains(lines[1], "1.000") {
		t.Fatalf("expected gin idle power 1.000 W, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "laravel") || !strings.Contains(lines[2], "3.000") {
		t.Fatalf("expected laravel idle power 3.000 W, got %q", lines[2])
	}

	if _, err := execute(t, "idle", "-c", cfgPath, "--scope", "gpu"); err == nil {
		t.Fatalf("expected an unknown scope to fail")
	}
}

func TestValidateCommand_Snapshot(t *testing.T) {
	cfgPath, _ := writeFixture(t)
	snapDir := t.TempDir()
	if _, err := execute(t, "validate", "-c", cfgPath, "--snapshot", snapDir); err != nil {
		t.Fatalf("validate: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(snapDir, "dataset_*.json.gz"))
	if len(matches) != 1 {
		t.Fatalf("expected one snapshot, got %v", matches)
	}
}

func TestValidateCommand_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("source:\n  type: parquet\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := execute(t, "validate", "-c", path); err == nil {
		t.Fatalf("expected an invalid config to fail")
	}
}

func TestExportCommand(t *testing.T) {
	cfgPath, exportDir := writeFixture(t)
	if _, err := execute(t, "export", "-c", cfgPath, "--name", "run1", "--languages", "go,php"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "run1.zip")); err != nil {
		t.Fatalf("expected the archive to be kept without --output: %v", err)
	}

	if _, err := execute(t, "export", "-c", cfgPath, "--name", "run1"); err == nil {
		t.Fatalf("expected a name collision")
	}

	out := filepath.Join(t.TempDir(), "out.zip")
	if _, err := execute(t, "export", "-c", cfgPath, "--name", "run2", "--select", "gin", "--format", "tikz", "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("expected a delivered archive, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(exportDir, "run2.zip")); !os.IsNotExist(err) {
		t.Fatalf("expected the delivered archive to be removed")
	}
}

func TestRunExport_Validation(t *testing.T) {
	cfgPath, exportDir := writeFixture(t)
	configFile = cfgPath
	defer func() { configFile = "" }()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	store, err := buildStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildStore: %v", err)
	}
	coordinator := export.NewCoordinator(exportDir, logging.GetLogger())

	if _, err := runExport(context.Background(), cfg, store, coordinator, exportOptions{name: "a/b"}); err == nil {
		t.Fatalf("expected an invalid name error")
	}
	if _, err := runExport(context.Background(), cfg, store, coordinator, exportOptions{name: "x", formats: []string{"gif"}}); err == nil {
		t.Fatalf("expected an unknown format error")
	}
	if _, err := runExport(context.Background(), cfg, store, coordinator, exportOptions{name: "x", languages: []string{"rust"}}); err == nil {
		t.Fatalf("expected an empty selection to fail")
	}

	state, err := exportState(cfg, store, exportOptions{})
	if err != nil {
		t.Fatalf("exportState: %v", err)
	}
	if len(state.Selection) != 1 || state.Scenario != "db" {
		t.Fatalf("expected the default php listing, got %+v", state)
	}
}
