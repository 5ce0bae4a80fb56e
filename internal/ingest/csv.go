package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource reads a comma separated file with a header row.
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewCSVReaderSource wraps an already open reader; it is read once.
func NewCSVReaderSource(name string, r io.Reader) *CSVSource {
	return &CSVSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

func (s *CSVSource) Name() string {
	return s.name
}

func (s *CSVSource) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &IngestError{Source: s.name, Reason: "source is empty"}
	}
	if err != nil {
		return nil, &IngestError{Source: s.name, Reason: "failed to read csv header", Err: err}
	}

	table := &Table{Header: header}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &IngestError{Source: s.name, Record: len(table.Records) + 1, Reason: "malformed csv record", Err: err}
		}
		if len(rec) != len(header) {
			return nil, &IngestError{
				Source: s.name,
				Record: len(table.Records) + 1,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(rec)),
			}
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}
