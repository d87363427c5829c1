package clock

import "time"

// Clock is the time source for record timestamps and admin token issue/expiry.
// Tests substitute a manual clock so expiry can be stepped over deterministically.
type Clock interface {
	Now() time.Time
}
