package database

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bench-dashboard/internal/ingest"
)

// Snapshot is a raw table captured from a source, so a remote dataset can be
// reloaded offline with identical results.
type Snapshot struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Source    string        `json:"source"`
	Checksum  string        `json:"checksum"`
	Table     *ingest.Table `json:"table"`
}

// WriteSnapshot writes a gzip-compressed JSON snapshot to dir atomically and
// returns the final path.
func WriteSnapshot(dir string, snap *Snapshot) (string, error) {
	if snap == nil || snap.Table == nil {
		return "", fmt.Errorf("snapshot is empty")
	}
	if dir == "" {
		dir = "snapshots"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	checksum := snap.Checksum
	if checksum == "" {
		checksum = "nocsum"
	}
	name := fmt.Sprintf("dataset_%s_%s.json.gz", snap.CreatedAt.UTC().Format("20060102T150405Z"), checksum)
	finalPath := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, name+".tmp.*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpPath)
		}
	}()

	gz := gzip.NewWriter(tmp)
	if err := json.NewEncoder(gz).Encode(snap); err != nil {
		_ = gz.Close()
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", err
	}
	ok = true
	return finalPath, nil
}

func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer gz.Close()

	var snap Snapshot
	if err := json.NewDecoder(gz).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if snap.Table == nil {
		return nil, fmt.Errorf("snapshot %s has no table", path)
	}
	return &snap, nil
}

// SnapshotSource replays a snapshot file as an ingest source.
type SnapshotSource struct {
	path string
}

func NewSnapshotSource(path string) *SnapshotSource {
	return &SnapshotSource{path: path}
}

func (s *SnapshotSource) Name() string {
	return "snapshot:" + s.path
}

func (s *SnapshotSource) Read(ctx context.Context) (*ingest.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := ReadSnapshot(s.path)
	if err != nil {
		return nil, err
	}
	return snap.Table, nil
}

// Capture reads src once and wraps the table in a snapshot.
func Capture(ctx context.Context, src ingest.Source, checksum string) (*Snapshot, error) {
	table, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}
	return &Snapshot{
		Version:   1,
		CreatedAt: time.Now(),
		Source:    src.Name(),
		Checksum:  checksum,
		Table:     table,
	}, nil
}
