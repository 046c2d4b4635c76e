package db

import (
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

const mysqlDupEntry = 1062

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullTime converts an optional timestamp for insert/update params.
func NullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

// IsDuplicate reports whether err is a MySQL duplicate-key violation.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}
