package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"adaptive-lending/internal/domain/loan"
)

// MySQL server error numbers that signal a lost race on a locked row.
const (
	erLockDeadlock    = 1213
	erLockWaitTimeout = 1205
	erDupEntry        = 1062
)

// mapErr translates storage errors into domain sentinels: missing rows
// become notFound, deadlocks and lock timeouts become ErrStoreConflict
// so callers can retry the whole unit.
func mapErr(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var my *driver.MySQLError
	if errors.As(err, &my) {
		switch my.Number {
		case erLockDeadlock, erLockWaitTimeout, erDupEntry:
			return loan.ErrStoreConflict
		}
	}
	return err
}
