package clock

import "time"

// SystemClock returns the current UTC wall-clock time at microsecond precision, the
// resolution Postgres stores, so a record reads back with the timestamp it was written with.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
