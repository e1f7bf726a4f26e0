// Package exposure implements the grid-search pointing/PA optimizer and
// the multi-exposure driver loop built on top of the assignment kernel.
package exposure

import (
	"github.com/soniakeys/unit"

	"pfsfiber/internal/assign"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/target"
)

// Grid holds the exposure optimizer's search parameters (§4.H).
type Grid struct {
	NPtg    int // cells per axis of the pointing offset grid
	DPtg    float64 // half-extent of the pointing grid, radians
	NPosAng int // PA cells
	DPosAng float64 // half-extent of the PA grid, radians
}

// Result is the best assignment found by Optimize for one driver
// iteration.
type Result struct {
	Pointing pfi.Pointing
	TID, FID []int
}

// Optimize enumerates every (pointing offset, PA offset) combination in
// grid around (c0, psi0), projects the live targets under each, runs
// strategy, and keeps the assignment with the largest number of
// committed fibers. Ties keep the first grid candidate that attains the
// maximum, so results are reproducible (§5).
func Optimize(tgts []target.Target, c0 pfi.Pointing, grid Grid, strat assign.Strategy) Result {
	basis := pfi.NewBasis(c0)

	var best Result
	bestCount := -1

	maxR2 := (pfi.RPlate + pfi.RKernel) * (pfi.RPlate + pfi.RKernel)

	for i := 0; i < grid.NPtg; i++ {
		dx := cellCenter(i, grid.NPtg, grid.DPtg)
		for j := 0; j < grid.NPtg; j++ {
			dy := cellCenter(j, grid.NPtg, grid.DPtg)
			d := pfi.Offset(basis, dx, dy)
			ra, dec := pfi.ToRADec(d)
			offsetBasis := pfi.NewBasis(pfi.Pointing{RA: ra, Dec: dec})

			for k := 0; k < grid.NPosAng; k++ {
				dpa := cellCenter(k, grid.NPosAng, grid.DPosAng)
				psi := unit.Angle(c0.PosAng.Rad() + dpa)

				projected, origIdx := project(tgts, offsetBasis, psi, maxR2)
				var tid, fid []int
				if len(projected) > 0 {
					tid, fid = strat.Assign(projected)
				}

				if len(fid) > bestCount {
					bestCount = len(fid)
					remapped := make([]int, len(tid))
					for ri, t := range tid {
						remapped[ri] = origIdx[t]
					}
					best = Result{
						Pointing: pfi.Pointing{RA: ra, Dec: dec, PosAng: psi},
						TID:      remapped,
						FID:      fid,
					}
				}
			}
		}
	}
	return best
}

// cellCenter implements the cell-centered sampling rule: -half + 2*half*(i+0.5)/n.
func cellCenter(i, n int, half float64) float64 {
	if n <= 1 {
		return 0
	}
	return -half + 2*half*(float64(i)+0.5)/float64(n)
}

// project copies tgts, overwrites each one's position with its PFI
// projection under basis/psi, and drops targets beyond maxR2 of the
// origin (the RPlate+RKernel safety margin of §4.H). It also returns
// origIdx, mapping each surviving entry's index in the returned slice
// back to its index in tgts, since the filter can drop entries and shift
// every following index (the original prototype's single_exposure does
// the same remapping for the same reason).
func project(tgts []target.Target, basis pfi.Basis, psi unit.Angle, maxR2 float64) (out []target.Target, origIdx []int) {
	out = make([]target.Target, 0, len(tgts))
	origIdx = make([]int, 0, len(tgts))
	for i, t := range tgts {
		ra := unit.AngleFromDeg(t.Pos[0])
		dec := unit.AngleFromDeg(t.Pos[1])
		p := pfi.Project(basis, ra, dec, psi, pfi.Default)
		if p[0]*p[0]+p[1]*p[1] > maxR2 {
			continue
		}
		nt := t
		nt.Pos = p
		out = append(out, nt)
		origIdx = append(origIdx, i)
	}
	return out, origIdx
}
