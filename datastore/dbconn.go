package datastore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported database backend
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DB_TYPE value to a Dialect
func ParseDialect(dbtype string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(dbtype)) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbtype)
	}
}

// Rebind rewrites ? placeholders into the dialect's form. Queries in this
// package are written with ? and never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewDB opens and pings a database for the given dialect
func NewDB(dialect Dialect, connstr string) (*sql.DB, error) {
	db, openError := sql.Open(string(dialect), connstr)
	if openError != nil {
		return nil, fmt.Errorf("error opening connection -> %v", openError)
	}

	// sqlite allows a single writer, and every :memory: connection is a
	// separate database
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	if pingError := db.Ping(); pingError != nil {
		db.Close()
		return nil, fmt.Errorf("could not establish connection with database -> %v", pingError)
	}

	return db, nil
}

// BuildDBConnStr builds a PostgreSQL connection string
func BuildDBConnStr(password, user, dbname, sslmode string) string {
	return fmt.Sprintf("postgres://%s:%s@localhost/%s?sslmode=%s", user, password, dbname, sslmode)
}

// BuildSQLiteConnStr builds a modernc sqlite DSN for a file path or ":memory:"
func BuildSQLiteConnStr(path string) string {
	if path == ":memory:" {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}
