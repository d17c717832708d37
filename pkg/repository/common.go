package repository

import (
	"context"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// withLockRetry runs a write, repeating it while SQLite reports a lock.
// Any other error stops retries and is returned as is.
func withLockRetry(ctx context.Context, fn func() error) error {
	var critical *criticalError
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // retry on lock
		}
		critical = &criticalError{err: err}
		return nil
	})
	if critical != nil {
		return critical.err
	}
	return err
}

// dbTime normalizes time for storage, second precision in UTC keeps text comparison valid
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
