package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Constraint identifies the kind of integrity violation reported by a driver.
type Constraint int

const (
	ConstraintNone Constraint = iota
	ConstraintForeignKey
	ConstraintUnique
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferenced2   = 1217
	mysqlNoReferencedRowOld = 1216
)

// ClassifyConstraint maps driver-specific integrity errors from postgres,
// mysql and sqlite onto a Constraint.
func ClassifyConstraint(err error) Constraint {
	if err == nil {
		return ConstraintNone
	}
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUnique
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ConstraintForeignKey
		case pgUniqueViolation:
			return ConstraintUnique
		}
		return ConstraintNone
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferenced2, mysqlNoReferencedRowOld:
			return ConstraintForeignKey
		case mysqlDuplicateEntry:
			return ConstraintUnique
		}
		return ConstraintNone
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return ConstraintForeignKey
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ConstraintUnique
		}
	}
	return ConstraintNone
}

func IsForeignKeyViolation(err error) bool {
	return ClassifyConstraint(err) == ConstraintForeignKey
}

func IsUniqueViolation(err error) bool {
	return ClassifyConstraint(err) == ConstraintUnique
}
