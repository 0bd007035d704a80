package database

import (
	"context"
	"database/sql/driver"
	"errors"

	"db-fieldgen/internal/errs"

	mssql "github.com/denisenkom/go-mssqldb"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sijms/go-ora/v2/network"
)

// MySQL error numbers
const (
	mysqlErrAccessDenied    = 1045
	mysqlErrDBAccessDenied  = 1044
	mysqlErrTableAccess     = 1142
	mysqlErrUnknownDatabase = 1049
	mysqlErrConnRefused     = 2003
)

// SQL Server error numbers
const (
	mssqlErrLoginFailed      = 18456
	mssqlErrCannotOpenDB     = 4060
	mssqlErrPermission       = 229
	mssqlErrSelectPermission = 230
)

// ORA- codes
const (
	oraErrInvalidLogin = 1017
	oraErrNoPrivileges = 1031
	oraErrNoListener   = 12541
)

// mapError classifies a driver error. fallback is used when nothing more
// specific is recognised.
func mapError(fallback errs.Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return errs.Wrap(classify(fallback, err), msg, err)
}

func classify(fallback errs.Kind, err error) errs.Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.KindTimeout
	}
	if errors.Is(err, driver.ErrBadConn) {
		return errs.KindConnectionFailed
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(fallback, string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(fallback, pgErr.Code)
	}

	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrAccessDenied, mysqlErrUnknownDatabase, mysqlErrConnRefused:
			return errs.KindConnectionFailed
		case mysqlErrDBAccessDenied, mysqlErrTableAccess:
			return errs.KindPermissionDenied
		}
		return errs.KindQueryFailed
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch msErr.Number {
		case mssqlErrLoginFailed, mssqlErrCannotOpenDB:
			return errs.KindConnectionFailed
		case mssqlErrPermission, mssqlErrSelectPermission:
			return errs.KindPermissionDenied
		}
		return errs.KindQueryFailed
	}

	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		switch oraErr.ErrCode {
		case oraErrInvalidLogin, oraErrNoListener:
			return errs.KindConnectionFailed
		case oraErrNoPrivileges:
			return errs.KindPermissionDenied
		}
		return errs.KindQueryFailed
	}

	return fallback
}

// classifySQLState maps a Postgres SQLSTATE by class.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifySQLState(fallback errs.Kind, code string) errs.Kind {
	if len(code) < 2 {
		return fallback
	}
	switch code[:2] {
	case "08", "28", "3D":
		return errs.KindConnectionFailed
	case "57":
		if code == "57014" { // query_canceled
			return errs.KindTimeout
		}
		return errs.KindConnectionFailed
	case "42":
		if code == "42501" { // insufficient_privilege
			return errs.KindPermissionDenied
		}
		return errs.KindQueryFailed
	}
	return errs.KindQueryFailed
}
