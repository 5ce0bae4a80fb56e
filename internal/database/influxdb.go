package database

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"bench-dashboard/internal/config"
	"bench-dashboard/internal/ingest"
	"bench-dashboard/internal/logging"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/sirupsen/logrus"
)

// fluxSystemColumns are added by the query engine and are not benchmark data.
var fluxSystemColumns = map[string]bool{
	"result":       true,
	"table":        true,
	"_start":       true,
	"_stop":        true,
	"_time":        true,
	"_measurement": true,
}

// InfluxSource reads benchmark observations stored as one point per row:
// categorical columns as tags, metrics as fields.
type InfluxSource struct {
	client      influxdb2.Client
	queryAPI    api.QueryAPI
	host        string
	bucket      string
	measurement string
	start       string
	logger      *logrus.Logger
}

func NewInfluxSource(cfg config.InfluxDBConfig) (*InfluxSource, error) {
	if cfg.Host == "" || cfg.Token == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing required settings for InfluxDB connection")
	}

	client := influxdb2.NewClient(cfg.Host, cfg.Token)
	start := cfg.Range
	if start == "" {
		start = config.DefaultRange
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = config.DefaultMeasurement
	}

	return &InfluxSource{
		client:      client,
		queryAPI:    client.QueryAPI(cfg.Org),
		host:        cfg.Host,
		bucket:      cfg.Bucket,
		measurement: measurement,
		start:       start,
		logger:      logging.GetLogger(),
	}, nil
}

func (s *InfluxSource) Close() {
	s.client.Close()
}

func (s *InfluxSource) Name() string {
	return fmt.Sprintf("influxdb:%s/%s", s.bucket, s.measurement)
}

func (s *InfluxSource) query() string {
	return fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> pivot(rowKey:["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"])
	`, s.bucket, s.start, s.measurement)
}

func (s *InfluxSource) Read(ctx context.Context) (*ingest.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	s.logger.WithFields(logrus.Fields{
		"host":        s.host,
		"bucket":      s.bucket,
		"measurement": s.measurement,
	}).Debug("Querying benchmark observations")

	result, err := s.queryAPI.Query(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer result.Close()

	var records []map[string]interface{}
	for result.Next() {
		records = append(records, result.Record().Values())
	}
	if result.Err() != nil {
		return nil, fmt.Errorf("query parsing failed: %w", result.Err())
	}

	s.logger.WithField("records", len(records)).Debug("Query completed")
	return tableFromValues(records), nil
}

// tableFromValues flattens pivoted flux records into a table. Required columns
// come first, the rest follow sorted by name.
func tableFromValues(records []map[string]interface{}) *ingest.Table {
	seen := make(map[string]bool)
	var extra []string
	for _, rec := range records {
		for key := range rec {
			if fluxSystemColumns[key] || seen[key] {
				continue
			}
			seen[key] = true
			extra = append(extra, key)
		}
	}

	var header []string
	for _, col := range ingest.RequiredColumns {
		if seen[col] {
			header = append(header, col)
			delete(seen, col)
		}
	}
	sort.Strings(extra)
	for _, col := range extra {
		if seen[col] {
			header = append(header, col)
		}
	}

	table := &ingest.Table{Header: header}
	for _, rec := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = formatValue(rec[col])
		}
		table.Records = append(table.Records, row)
	}
	return table
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
