package storage

import "time"

// SetNow pins the clock used by purge and move. It returns a restore func.
func SetNow(t time.Time) func() {
	prev := now
	now = func() time.Time { return t }
	return func() { now = prev }
}
