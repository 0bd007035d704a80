// Package database opens database/sql connections for every supported engine
// and exposes the narrow query contract the schema package depends on.
package database

import (
	"context"
	"database/sql"
	"strings"

	"db-fieldgen/internal/errs"

	_ "github.com/denisenkom/go-mssqldb" // sqlserver, mssql
	_ "github.com/go-sql-driver/mysql"   // mysql
	_ "github.com/jackc/pgx/v5/stdlib"   // pgx
	_ "github.com/lib/pq"                // postgres
	_ "github.com/sijms/go-ora/v2"       // oracle
)

// Querier runs metadata queries. *DB implements it; tests use fakes.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Rows is the subset of *sql.Rows the schema package uses.
// Callers must always Close it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Config selects the driver and data source.
type Config struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// DB wraps *sql.DB and classifies driver errors.
type DB struct {
	db     *sql.DB
	driver string
}

// DetectDriver guesses the driver from a DSN when none is configured.
func DetectDriver(dsn string) string {
	s := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(s, "postgres://"), strings.HasPrefix(s, "postgresql://"),
		strings.Contains(s, "sslmode"):
		return "postgres"
	case strings.HasPrefix(s, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(s, "oracle://"):
		return "oracle"
	default:
		return "mysql"
	}
}

// Open connects and pings. The driver is detected from the DSN when empty.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, errs.New(errs.KindInvalidInput, "database dsn is required")
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.DSN)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, "failed to open db", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, mapError(errs.KindConnectionFailed, "failed to connect to db", err)
	}
	return &DB{db: db, driver: driver}, nil
}

// Driver returns the database/sql driver name in use.
func (d *DB) Driver() string {
	return d.driver
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(errs.KindQueryFailed, "query failed", err)
	}
	return rows, nil
}

// currentSchemaQueries ask the server for the schema an empty --schema means.
// Engines not listed resolve it through their dialect (public, dbo).
var currentSchemaQueries = map[string]string{
	"mysql":  "SELECT DATABASE()",
	"oracle": "SELECT SYS_CONTEXT('USERENV', 'CURRENT_SCHEMA') FROM DUAL",
}

// CurrentSchema returns the schema an empty --schema should resolve to.
func (d *DB) CurrentSchema(ctx context.Context) (string, error) {
	return CurrentSchema(ctx, d, d.driver)
}

// CurrentSchema asks q for its current schema when driver needs the server
// to answer, and returns "" otherwise.
func CurrentSchema(ctx context.Context, q Querier, driver string) (string, error) {
	query, ok := currentSchemaQueries[strings.ToLower(driver)]
	if !ok {
		return "", nil
	}

	rows, err := q.Query(ctx, query)
	if err != nil {
		return "", errs.Wrap(errs.KindQueryFailed, "failed to get current schema", err)
	}
	defer rows.Close()

	var name sql.NullString
	if rows.Next() {
		if err := rows.Scan(&name); err != nil {
			return "", mapError(errs.KindQueryFailed, "failed to scan current schema", err)
		}
	}
	if err := rows.Err(); err != nil {
		return "", mapError(errs.KindQueryFailed, "failed to get current schema", err)
	}
	if !name.Valid || name.String == "" {
		return "", errs.New(errs.KindInvalidInput, "no schema selected; set one in the DSN or pass --schema")
	}
	return name.String, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
