package models

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrServiceNotFound is returned when a booking references a service that
// does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ErrorKind classifies store failures so callers can pick a response
// policy without inspecting driver errors.
type ErrorKind string

const (
	KindUnknown             ErrorKind = "unknown"
	KindConstraintViolation ErrorKind = "constraint_violation"
	KindNotFound            ErrorKind = "not_found"
	KindConnectionLost      ErrorKind = "connection_lost"
	KindTimeout             ErrorKind = "timeout"
)

// StoreError is returned by every repository method that fails.
type StoreError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, classifying raw driver errors if err is
// not already a *StoreError.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return classify(err)
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return KindConstraintViolation
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return KindConnectionLost
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"):
			return KindConstraintViolation
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return KindConnectionLost
		case pgErr.Code == "57014":
			return KindTimeout
		}
		return KindUnknown
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			return KindConstraintViolation
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return KindTimeout
		case sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return KindConnectionLost
		}
		return KindUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindConnectionLost
	}

	return KindUnknown
}
