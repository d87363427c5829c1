package clock

import (
	"testing"
	"time"
)

func TestManualClock_SetAndAdvance(t *testing.T) {
	t.Parallel()

	start := time.Unix(100, 0).UTC()
	c := NewManualClock(start)
	if !c.Now().Equal(start) {
		t.Fatalf("Now=%v", c.Now())
	}
	c.Advance(90 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("after Advance Now=%v", got)
	}
	c.Set(time.Unix(5, 0).UTC())
	if got := c.Now(); got.Unix() != 5 {
		t.Fatalf("after Set Now=%v", got)
	}
}
