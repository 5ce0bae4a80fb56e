package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bench-dashboard/internal/benchmark"
	"bench-dashboard/internal/derived"
	"bench-dashboard/internal/logging"

	"github.com/sirupsen/logrus"
)

// ErrIngest matches every *IngestError.
var ErrIngest = errors.New("ingest failed")

// IngestError reports a malformed or empty source.
type IngestError struct {
	Source string
	Record int // 1-based data record, 0 when the error is not tied to a record
	Column string
	Reason string
	Err    error
}

func (e *IngestError) Error() string {
	var b strings.Builder
	b.WriteString("ingest ")
	b.WriteString(e.Source)
	if e.Record > 0 {
		fmt.Fprintf(&b, " record %d", e.Record)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *IngestError) Unwrap() error { return e.Err }

func (e *IngestError) Is(target error) bool { return target == ErrIngest }

// Table is the raw tabular form every source produces.
type Table struct {
	Header  []string   `json:"header"`
	Records [][]string `json:"records"`
}

// Source yields a raw table of benchmark observations.
type Source interface {
	Name() string
	Read(ctx context.Context) (*Table, error)
}

// RequiredColumns must be present in every source.
var RequiredColumns = []string{
	"name",
	"language",
	"status",
	"level",
	"scenario",
	"cpu",
	"dram",
	"totalRequests",
	"latencyAvg",
	"latency99",
}

var rawMetrics = []benchmark.Metric{
	benchmark.MetricCPU,
	benchmark.MetricDRAM,
	benchmark.MetricTotalRequests,
	benchmark.MetricLatencyAvg,
	benchmark.MetricLatency99,
}

// Load reads the source and decodes it into rows without cleaning or enrichment.
func Load(ctx context.Context, src Source) ([]benchmark.Row, error) {
	table, err := src.Read(ctx)
	if err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			return nil, err
		}
		return nil, &IngestError{Source: src.Name(), Reason: "failed to read source", Err: err}
	}
	return Decode(src.Name(), table)
}

// Decode validates the header and converts each record into a row.
func Decode(source string, table *Table) ([]benchmark.Row, error) {
	if table == nil || len(table.Header) == 0 {
		return nil, &IngestError{Source: source, Reason: "source has no header"}
	}

	index := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &IngestError{Source: source, Reason: fmt.Sprintf("missing required columns %v", missing)}
	}

	if len(table.Records) == 0 {
		return nil, &IngestError{Source: source, Reason: "source contains no data rows"}
	}

	rows := make([]benchmark.Row, 0, len(table.Records))
	for i, rec := range table.Records {
		row, err := decodeRecord(index, rec)
		if err != nil {
			err.Source = source
			err.Record = i + 1
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func decodeRecord(index map[string]int, rec []string) (benchmark.Row, *IngestError) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	number := func(col string) (float64, *IngestError) {
		raw := get(col)
		if raw == "" || strings.EqualFold(raw, "nan") {
			return 0, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &IngestError{Column: col, Reason: fmt.Sprintf("invalid number %q", raw), Err: err}
		}
		return v, nil
	}

	var row benchmark.Row
	row.Name = get("name")
	if row.Name == "" {
		return row, &IngestError{Column: "name", Reason: "name is required"}
	}
	row.DisplayName = get("display_name")
	if row.DisplayName == "" {
		row.DisplayName = row.Name
	}

	row.Language = get("language")
	for _, c := range benchmark.FilterCategories {
		row.SetCategory(c, get(string(c)))
	}

	row.Status = benchmark.ParseStatus(get("status"))

	row.Scenario = benchmark.Scenario(get("scenario"))
	if !row.Scenario.Valid() {
		return row, &IngestError{Column: "scenario", Reason: fmt.Sprintf("unknown scenario %q", row.Scenario)}
	}

	// A blank level must not read as 0, which would turn the row into an idle measurement.
	if raw := get("level"); raw == "" || strings.EqualFold(raw, "nan") {
		return row, &IngestError{Column: "level", Reason: "level is required"}
	}
	level, ierr := number("level")
	if ierr != nil {
		return row, ierr
	}
	row.Level = level

	for _, m := range rawMetrics {
		v, ierr := number(string(m))
		if ierr != nil {
			return row, ierr
		}
		row.SetValue(m, v)
	}
	return row, nil
}

// Clean drops every row whose status is not success, keeping order.
func Clean(rows []benchmark.Row) []benchmark.Row {
	out := make([]benchmark.Row, 0, len(rows))
	for _, r := range rows {
		if r.Status == benchmark.StatusSuccess {
			out = append(out, r)
		}
	}
	return out
}

// Build runs the startup pipeline: load, clean, enrich, freeze.
func Build(ctx context.Context, src Source, params derived.Params) (*benchmark.Store, error) {
	logger := logging.GetLogger()

	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid derived metric parameters: %w", err)
	}

	raw, err := Load(ctx, src)
	if err != nil {
		logger.WithField("source", src.Name()).WithError(err).Error("Failed to load benchmark data")
		return nil, err
	}

	cleaned := Clean(raw)
	if dropped := len(raw) - len(cleaned); dropped > 0 {
		logger.WithFields(logrus.Fields{
			"source":  src.Name(),
			"dropped": dropped,
		}).Info("Dropped non-success rows")
	}
	if len(cleaned) == 0 {
		logger.WithField("source", src.Name()).Warn("No successful rows left after cleaning")
	}

	store := benchmark.NewStore(derived.Enrich(cleaned, params))

	logger.WithFields(logrus.Fields{
		"source":    src.Name(),
		"rows":      store.Len(),
		"languages": len(store.Languages()),
		"names":     len(store.Names()),
	}).Info("Benchmark store built")
	return store, nil
}
