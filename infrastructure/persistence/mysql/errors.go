package mysql

import (
	"errors"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error numbers the repositories translate into domain errors.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451 // delete blocked by a child row
	mysqlNoReferencedRow = 1452 // insert references a missing parent row
	mysqlDeadlock        = 1213
	mysqlLockWaitTimeout = 1205
)

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

func isRowReferencedError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlRowIsReferenced
	}
	return false
}

func isMissingParentError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlNoReferencedRow
	}
	return false
}

// isConnectionError reports errors worth surfacing as storage-unavailable
// instead of leaking driver detail to callers.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mysqlDriver.ErrInvalidConn) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "invalid connection") ||
		strings.Contains(errStr, "broken pipe")
}
