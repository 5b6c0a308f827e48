package clock_test

import (
	"testing"
	"time"

	"freshprint/internal/clock"
)

func TestSystem_TracksWallClock(t *testing.T) {
	before := uint64(time.Now().Unix())
	got := clock.System{}.NowSeconds()
	after := uint64(time.Now().Unix())
	if got < before || got > after {
		t.Fatalf("NowSeconds %d outside [%d, %d]", got, before, after)
	}
}

func TestFixed(t *testing.T) {
	if got := clock.Fixed(1700000000).NowSeconds(); got != 1700000000 {
		t.Fatalf("want 1700000000, got %d", got)
	}
	if got := clock.FromTime(time.Unix(42, 999)).NowSeconds(); got != 42 {
		t.Fatalf("want 42, got %d", got)
	}
	if got := clock.FromTime(time.Unix(-5, 0)).NowSeconds(); got != 0 {
		t.Fatalf("pre-epoch time should clamp to 0, got %d", got)
	}
}
