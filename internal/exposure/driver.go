package exposure

import (
	"github.com/soniakeys/unit"

	"pfsfiber/internal/assign"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/target"
)

// Exposure is one completed driver iteration, ready for the report
// writer (§4.J).
type Exposure struct {
	Index    int
	Pointing pfi.Pointing
	Duration float64
	TID, FID []int
	// Pos holds the PFI-plane position of each committed target, in the
	// same order as TID/FID, for the report's x/y columns.
	Pos []target.Target
}

// Progress summarizes one completed exposure for the driver's one-line
// stdout progress print (§4.I step 8).
type Progress struct {
	TileIndex        int
	FiberUseFraction float64
	CumCoverage      float64
	CumTime          float64
	Pointing         pfi.Pointing
}

// Drive runs the multi-exposure loop of §4.I against the live catalog,
// invoking emit after every exposure and progress after every completed
// iteration. It works on its own copy of tgts, so the caller's Time
// fields are left unchanged, and returns the sequence of completed
// exposures.
func Drive(tgts []target.Target, c0 pfi.Pointing, grid Grid, strat assign.Strategy, fract float64, emit func(Exposure), progress func(Progress)) []Exposure {
	// Targets beyond RPlate at the nominal pointing are dropped once,
	// before the first exposure.
	basis := pfi.NewBasis(c0)
	var live []target.Target
	for _, t := range tgts {
		p := pfi.Project(basis, unit.AngleFromDeg(t.Pos[0]), unit.AngleFromDeg(t.Pos[1]), c0.PosAng, pfi.Default)
		if p[0]*p[0]+p[1]*p[1] <= pfi.RPlate*pfi.RPlate {
			live = append(live, t)
		}
	}

	total := target.TotalTime(live)
	var accumulated float64
	var exposures []Exposure
	byID := indexByID(live)

	for idx := 0; ; idx++ {
		res := Optimize(live, c0, grid, strat)
		if len(res.TID) == 0 {
			break
		}

		tau := minTime(live, res.TID)

		exp := Exposure{
			Index:    idx,
			Pointing: res.Pointing,
			Duration: tau,
			TID:      make([]int, len(res.TID)),
			FID:      append([]int(nil), res.FID...),
			Pos:      make([]target.Target, len(res.TID)),
		}
		expBasis := pfi.NewBasis(res.Pointing)
		for i, localIdx := range res.TID {
			lt := live[localIdx]
			exp.TID[i] = lt.ID
			exp.Pos[i] = lt
			exp.Pos[i].Pos = pfi.Project(expBasis, unit.AngleFromDeg(lt.Pos[0]), unit.AngleFromDeg(lt.Pos[1]), res.Pointing.PosAng, pfi.Default)
		}
		exposures = append(exposures, exp)
		emit(exp)

		accumulated += float64(len(res.TID)) * tau
		cumCoverage := 0.0
		if total > 0 {
			cumCoverage = accumulated / total
		}
		fiberFrac := 0.0
		if pfi.NFiber > 0 {
			fiberFrac = float64(len(res.FID)) / float64(pfi.NFiber)
		}
		progress(Progress{
			TileIndex:        idx,
			FiberUseFraction: fiberFrac,
			CumCoverage:      cumCoverage,
			CumTime:          accumulated,
			Pointing:         res.Pointing,
		})

		if total > 0 && accumulated/total > fract {
			break
		}

		for _, localIdx := range res.TID {
			id := live[localIdx].ID
			if pos, ok := byID[id]; ok {
				live[pos].Time -= tau
			}
		}
		live = dropExhausted(live, byID)
	}
	return exposures
}

func minTime(tgts []target.Target, tid []int) float64 {
	m := tgts[tid[0]].Time
	for _, i := range tid[1:] {
		if tgts[i].Time < m {
			m = tgts[i].Time
		}
	}
	return m
}

func indexByID(tgts []target.Target) map[int]int {
	m := make(map[int]int, len(tgts))
	for i, t := range tgts {
		m[t.ID] = i
	}
	return m
}

// dropExhausted removes targets that fell at or below the time floor and
// rebuilds the id->index map for the survivors.
func dropExhausted(live []target.Target, byID map[int]int) []target.Target {
	out := live[:0:0]
	for k := range byID {
		delete(byID, k)
	}
	for _, t := range live {
		if !t.Alive() {
			continue
		}
		byID[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}
