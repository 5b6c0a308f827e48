// Package clock provides domain.Clock implementations.
package clock

import (
	"time"

	"freshprint/internal/domain"
)

// System reads the wall clock.
type System struct{}

// NowSeconds returns the current Unix time in whole seconds. Times before
// the epoch read as zero.
func (System) NowSeconds() uint64 {
	s := time.Now().Unix()
	if s < 0 {
		return 0
	}
	return uint64(s)
}

// Fixed always reports the same instant.
type Fixed uint64

func (f Fixed) NowSeconds() uint64 { return uint64(f) }

// FromTime returns a Fixed clock at t.
func FromTime(t time.Time) Fixed {
	s := t.Unix()
	if s < 0 {
		return 0
	}
	return Fixed(s)
}

var (
	_ domain.Clock = System{}
	_ domain.Clock = Fixed(0)
)
