package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"bench-dashboard/internal/config"
	"bench-dashboard/internal/ingest"
	"bench-dashboard/internal/logging"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLSource reads every row of one table; column names become the header.
type SQLSource struct {
	db     *sql.DB
	driver string
	table  string
	logger *logrus.Logger
}

func NewSQLSource(cfg config.SQLConfig) (*SQLSource, error) {
	if cfg.Driver != "sqlite3" && cfg.Driver != "mysql" {
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.Driver)
	}
	table := cfg.Table
	if table == "" {
		table = config.DefaultTable
	}
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	return &SQLSource{
		db:     db,
		driver: cfg.Driver,
		table:  table,
		logger: logging.GetLogger(),
	}, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func (s *SQLSource) Name() string {
	return fmt.Sprintf("%s:%s", s.driver, s.table)
}

func (s *SQLSource) Read(ctx context.Context) (*ingest.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+s.table)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", s.table, err)
	}

	table := &ingest.Table{Header: header}
	values := make([]sql.NullString, len(header))
	dest := make([]interface{}, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(table.Records)+1, err)
		}
		rec := make([]string, len(header))
		for i, v := range values {
			if v.Valid {
				rec[i] = v.String
			}
		}
		table.Records = append(table.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.table, err)
	}

	s.logger.WithFields(logrus.Fields{
		"table":   s.table,
		"records": len(table.Records),
	}).Debug("SQL source read")
	return table, nil
}
