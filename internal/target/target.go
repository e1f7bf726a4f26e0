// Package target defines the catalog entry the rest of the kernel
// operates on.
package target

import "pfsfiber/internal/geom"

// Target is one catalog entry. Pos starts out holding RA/Dec in degrees
// and is overwritten in place with PFI millimeters during per-exposure
// projection (§3 Data model).
type Target struct {
	ID   int
	Pos  geom.Point
	Time float64 // remaining requested integration time, seconds
	Pri  int     // lower value = higher priority
}

// Alive reports whether t still has meaningful integration time left.
// The driver drops targets once their remaining time falls to or below
// this floor (§4.I step 7).
func (t Target) Alive() bool {
	return t.Time > 1e-7
}

// TotalTime returns the sum of remaining integration time across all of
// tgts, used by the driver to compute the requested-time denominator T.
func TotalTime(tgts []Target) float64 {
	var sum float64
	for _, t := range tgts {
		sum += t.Time
	}
	return sum
}
