package exposure_test

import (
	"testing"

	"github.com/soniakeys/unit"

	"pfsfiber/internal/assign"
	"pfsfiber/internal/exposure"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/target"
)

// TestDriveStopsOnCoverage exercises scenario 6: fract=0, driver emits
// exactly one exposure and stops because A/T > 0 holds after the first
// non-empty exposure. The target sits just off the pointing center so it
// projects to about (-6.94, 1.89) mm, inside fiber 0's patrol area; the
// pointing center itself maps to the PFI origin, which no fiber reaches.
func TestDriveStopsOnCoverage(t *testing.T) {
	c0 := pfi.Pointing{RA: unit.AngleFromDeg(30), Dec: unit.AngleFromDeg(10)}
	tgts := []target.Target{
		{ID: 0, Pos: [2]float64{29.994, 10.0217}, Time: 10, Pri: 1},
	}
	grid := exposure.Grid{NPtg: 1, DPtg: 0, NPosAng: 1, DPosAng: 0}

	var exposures []exposure.Exposure
	exposure.Drive(tgts, c0, grid, assign.Naive{}, 0,
		func(e exposure.Exposure) { exposures = append(exposures, e) },
		func(exposure.Progress) {},
	)
	if len(exposures) != 1 {
		t.Fatalf("expected exactly one exposure, got %d", len(exposures))
	}
}

// TestDriveStopsOnEmptyExposure exercises P7 termination: an empty
// catalog never makes progress, so the driver stops immediately.
func TestDriveStopsOnEmptyExposure(t *testing.T) {
	c0 := pfi.Pointing{RA: unit.AngleFromDeg(0), Dec: unit.AngleFromDeg(0)}
	grid := exposure.Grid{NPtg: 1, DPtg: 0, NPosAng: 1, DPosAng: 0}

	count := 0
	exposures := exposure.Drive(nil, c0, grid, assign.Naive{}, 1,
		func(exposure.Exposure) { count++ },
		func(exposure.Progress) {},
	)
	if count != 0 || len(exposures) != 0 {
		t.Fatalf("expected no exposures on an empty catalog, got %d", count)
	}
}

// TestDriveMonotoneProgress checks P5: cumulative time never decreases
// across successive progress callbacks.
func TestDriveMonotoneProgress(t *testing.T) {
	c0 := pfi.Pointing{RA: unit.AngleFromDeg(0), Dec: unit.AngleFromDeg(0)}
	tgts := []target.Target{
		{ID: 0, Pos: [2]float64{0, 0}, Time: 5, Pri: 1},
		{ID: 1, Pos: [2]float64{0.01, 0.01}, Time: 8, Pri: 1},
	}
	grid := exposure.Grid{NPtg: 1, DPtg: 0, NPosAng: 1, DPosAng: 0}

	var last float64
	exposure.Drive(tgts, c0, grid, assign.Draining{}, 1,
		func(exposure.Exposure) {},
		func(p exposure.Progress) {
			if p.CumTime < last {
				t.Fatalf("cumulative time regressed: %v < %v", p.CumTime, last)
			}
			last = p.CumTime
		},
	)
}
