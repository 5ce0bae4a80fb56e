package database

import (
	"fmt"

	"bench-dashboard/internal/config"
	"bench-dashboard/internal/ingest"
)

// Open builds the ingest source named by cfg. The returned close function is
// never nil.
func Open(cfg config.SourceConfig) (ingest.Source, func(), error) {
	noop := func() {}
	switch cfg.Type {
	case config.SourceCSV, "":
		return ingest.NewCSVFileSource(cfg.Path), noop, nil
	case config.SourceSnapshot:
		return NewSnapshotSource(cfg.Path), noop, nil
	case config.SourceInfluxDB:
		src, err := NewInfluxSource(cfg.InfluxDB)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	case config.SourceSQL:
		src, err := NewSQLSource(cfg.SQL)
		if err != nil {
			return nil, noop, err
		}
		return src, func() { _ = src.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown source type %q", cfg.Type)
	}
}
