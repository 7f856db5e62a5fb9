package store

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoDatabaseURL is returned when DATABASE_URL is missing or empty.
	ErrNoDatabaseURL = errors.New("DATABASE_URL is not configured")

	// ErrInvalidDatabaseURL is returned when DATABASE_URL cannot be parsed as
	// a PostgreSQL connection string.
	ErrInvalidDatabaseURL = errors.New("invalid DATABASE_URL")

	// ErrDatabaseConnect is returned when the pool cannot be created or the
	// first ping fails. Use [Classify] on the error to tell a transient
	// failure from a permanent one.
	ErrDatabaseConnect = errors.New("error connecting to database")
)

// ErrorClassification indicates whether a failed database operation should be
// retried or abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default for unrecognised errors, bad credentials and
	// unknown databases.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. the server is starting up or out of connection slots).
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// Classify inspects err and reports whether retrying may help.
//
// A PostgreSQL error is classified by its code via [ClassifyPgError]. A
// failure to reach the server at all, or a timeout, is [Retryable]. Anything
// else, including nil, is [NonRetryable].
func Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Retryable
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return Retryable
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
//
// Retryable codes:
//   - Class 08: connection exceptions
//   - Class 40: transaction rollback, serialization failure, deadlock
//   - 53300: too many connections
//   - 57P01, 57P03: admin shutdown, cannot connect now
//
// Every other code, notably class 28 (authentication) and 3D000 (unknown
// database), is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code):
		return Retryable
	}

	switch pgErr.Code {
	case pgerrcode.TooManyConnections,
		pgerrcode.AdminShutdown,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
