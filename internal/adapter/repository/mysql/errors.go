package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"loan-portal/internal/domain/apperr"
)

// MySQL server error numbers that are safe to retry.
const (
	erLockWaitTimeout = 1205
	erLockDeadlock    = 1213
)

var errConcurrentUpdate = errors.New("loan was modified concurrently")

// classify maps storage errors onto the application taxonomy. It is
// idempotent so the UoW can run it over errors the repos already classified.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case isTransient(err):
		return apperr.Transient(err)
	}
	return err
}

func isTransient(err error) bool {
	var me *mysqldriver.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case erLockWaitTimeout, erLockDeadlock:
			return true
		}
	}
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded)
}
