//go:build !sqlite_cgo

package database

// Pure Go SQLite, no C toolchain needed:
//
//	CGO_ENABLED=0 go build ./...

import (
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteDriverName is the database/sql driver registered for SQLite.
const SQLiteDriverName = "sqlite"

// sqliteDSN enables WAL and a busy timeout through modernc's _pragma parameters.
func sqliteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}
