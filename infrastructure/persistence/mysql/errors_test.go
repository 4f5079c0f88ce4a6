package mysql

import (
	"errors"
	"fmt"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql 1062", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key 'uk_slug'"}, true},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"wrapped 1062", fmt.Errorf("create shop: %w", &mysqlDriver.MySQLError{Number: 1062}), true},
		{"other mysql error", &mysqlDriver.MySQLError{Number: 1054, Message: "Unknown column"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicateKeyError(tc.err); got != tc.want {
				t.Errorf("isDuplicateKeyError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsRowReferencedError(t *testing.T) {
	if !isRowReferencedError(&mysqlDriver.MySQLError{Number: 1451}) {
		t.Error("1451 not recognized")
	}
	if isRowReferencedError(&mysqlDriver.MySQLError{Number: 1452}) {
		t.Error("1452 misclassified as row-referenced")
	}
	if isRowReferencedError(errors.New("boom")) {
		t.Error("plain error classified as row-referenced")
	}
}

func TestIsMissingParentError(t *testing.T) {
	if !isMissingParentError(&mysqlDriver.MySQLError{Number: 1452}) {
		t.Error("1452 not recognized")
	}
	if isMissingParentError(&mysqlDriver.MySQLError{Number: 1451}) {
		t.Error("1451 misclassified as missing-parent")
	}
}

func TestIsConnectionError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"driver invalid conn", mysqlDriver.ErrInvalidConn, true},
		{"refused", errors.New("dial tcp 127.0.0.1:3306: connection refused"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"unrelated", errors.New("syntax error"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isConnectionError(tc.err); got != tc.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
