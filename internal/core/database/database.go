// Package database opens the SQL store that backs the order repository.
//
// Two backends share one table layout: SQLite (default, file based) and
// Postgres through pgx. Queries are written with "?" placeholders and passed
// through DB.Rebind before execution.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Dialect identifies the SQL flavour of an open connection.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// sqliteSchema keeps the column layout of the legacy loja.db file so existing
// databases open unchanged.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY,
    customer_name TEXT,
    customer_type TEXT,
    items TEXT,
    total_price REAL,
    status TEXT,
    created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_customer_name ON orders(customer_name);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id BIGSERIAL PRIMARY KEY,
    customer_name TEXT,
    customer_type TEXT,
    items TEXT,
    total_price DOUBLE PRECISION,
    status TEXT,
    created_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_customer_name ON orders(customer_name);
`

// DB wraps the connection pool together with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the given backend and applies the schema.
// driver is "sqlite" or "postgres"; dsn is a file path or a postgres URL.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var (
		db      *sql.DB
		err     error
		dialect Dialect
		schema  string
	)

	switch driver {
	case "sqlite":
		dialect, schema = DialectSQLite, sqliteSchema
		db, err = sql.Open(SQLiteDriverName, sqliteDSN(dsn))
		if err == nil {
			// SQLite performs best with a single writer connection, and an
			// in-memory database only lives as long as its connection.
			db.SetMaxOpenConns(1)
		}
	case "postgres":
		dialect, schema = DialectPostgres, postgresSchema
		db, err = sql.Open("pgx", dsn)
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetConnMaxLifetime(30 * time.Minute)
		}
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: apply schema: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Rebind converts "?" placeholders to the dialect's positional form.
func (d *DB) Rebind(query string) string {
	if d.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Health pings the database and reports pool statistics.
func (d *DB) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := map[string]string{"dialect": string(d.Dialect)}

	if err := d.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	dbStats := d.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}
