package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates all tables when missing. Statements are separated by
// ";" at end of line; each runs on its own because the MySQL driver does not
// accept multi-statement queries by default.
func EnsureSchema(conn *sql.DB) error {
	if conn == nil {
		return fmt.Errorf("db belum tersedia")
	}
	for _, stmt := range strings.Split(schemaSQL, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement gagal: %w", err)
		}
	}
	return nil
}
