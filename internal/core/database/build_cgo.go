//go:build sqlite_cgo

package database

// CGO SQLite:
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriverName is the database/sql driver registered for SQLite.
const SQLiteDriverName = "sqlite3"

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
}
