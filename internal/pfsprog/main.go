// Public domain.

// Package pfsprog implements the command-line driver: argument parsing,
// target-catalog loading, the multi-exposure loop, and report/progress
// output (§4.K). It ties the catalog, assignment, exposure and report
// packages together; cmd/pfsfiber is its only caller.
package pfsprog

import (
	"fmt"
	"os"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/unit"

	"pfsfiber/internal/assign"
	"pfsfiber/internal/astroutil"
	"pfsfiber/internal/calibration"
	"pfsfiber/internal/catalog"
	"pfsfiber/internal/exposure"
	"pfsfiber/internal/geom"
	"pfsfiber/internal/params"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/report"
	"pfsfiber/internal/target"
)

// Main is the entry point shared by cmd/pfsfiber.
func Main() {
	defer exit.Handler()

	p, err := params.Parse(os.Args[1:])
	if err != nil {
		exit.Log(err)
	}

	assignerName, err := p.Require("assigner")
	if err != nil {
		exit.Log(err)
	}
	strat, ok := assign.ByName(assignerName)
	if !ok {
		exit.Log(fmt.Sprintf("unknown assigner %q", assignerName))
	}

	inputPath, err := p.Require("input")
	if err != nil {
		exit.Log(err)
	}
	tgts, err := catalog.Read(inputPath)
	if err != nil {
		exit.Log(err)
	}

	fract, err := p.Float("fract", 0)
	if err != nil {
		exit.Log(err)
	}
	if !p.Has("fract") {
		exit.Log(`missing required key "fract"`)
	}

	if path := p.String("calibration", ""); path != "" {
		dm, err := calibration.Load(path)
		if err != nil {
			exit.Log(err)
		}
		pfi.Default = dm
	}

	c0, err := nominalPointing(p, tgts)
	if err != nil {
		exit.Log(err)
	}

	grid, err := readGrid(p)
	if err != nil {
		exit.Log(err)
	}

	w, err := report.Open(p.String("output", ""))
	if err != nil {
		exit.Log(err)
	}
	defer w.Close()

	exposure.Drive(tgts, c0, grid, strat, fract,
		func(e exposure.Exposure) {
			if err := w.Write(e); err != nil {
				exit.Log(err)
			}
		},
		func(pr exposure.Progress) {
			fmt.Println(report.ProgressLine(pr))
		},
	)
}

// nominalPointing resolves the `ra`/`dec`/`posang` parameters (§6): if
// either coordinate is absent, falls back to the smallest-enclosing-
// circle center of the catalog's sky positions.
func nominalPointing(p params.Set, tgts []target.Target) (pfi.Pointing, error) {
	posang, err := p.Float("posang", 0)
	if err != nil {
		return pfi.Pointing{}, err
	}

	if p.Has("ra") && p.Has("dec") {
		ra, err := p.Float("ra", 0)
		if err != nil {
			return pfi.Pointing{}, err
		}
		dec, err := p.Float("dec", 0)
		if err != nil {
			return pfi.Pointing{}, err
		}
		return pfi.Pointing{
			RA:     unit.AngleFromDeg(ra),
			Dec:    unit.AngleFromDeg(dec),
			PosAng: unit.AngleFromDeg(posang),
		}, nil
	}

	pos := make([]geom.Point, len(tgts))
	for i, t := range tgts {
		pos[i] = t.Pos
	}
	center, _ := astroutil.SmallestEnclosingCircle(pos)
	return pfi.Pointing{
		RA:     unit.AngleFromDeg(center[0]),
		Dec:    unit.AngleFromDeg(center[1]),
		PosAng: unit.AngleFromDeg(posang),
	}, nil
}

func readGrid(p params.Set) (exposure.Grid, error) {
	dptg, err := p.Float("dptg", 4.0/320)
	if err != nil {
		return exposure.Grid{}, err
	}
	nptg, err := p.Int("nptg", 5)
	if err != nil {
		return exposure.Grid{}, err
	}
	dposang, err := p.Float("dposang", 4)
	if err != nil {
		return exposure.Grid{}, err
	}
	nposang, err := p.Int("nposang", 5)
	if err != nil {
		return exposure.Grid{}, err
	}
	return exposure.Grid{
		NPtg:    nptg,
		DPtg:    unit.AngleFromDeg(dptg).Rad(),
		NPosAng: nposang,
		DPosAng: unit.AngleFromDeg(dposang).Rad(),
	}, nil
}
