// Public domain.

// Command pfscalib refits the focal-plane distortion polynomial from a
// file of measured calibration points and writes the result for
// pfsfiber's `calibration` parameter (§4.L). It is never on the
// exposure hot path.
package main

import (
	"flag"
	"log"

	"github.com/soniakeys/exit"

	"pfsfiber/internal/calibration"
)

func main() {
	defer exit.Handler()

	in := flag.String("in", "", "calibration points file (u v xMeasured yMeasured per line)")
	out := flag.String("out", "", "output distortion-model file")
	flag.Parse()

	if *in == "" || *out == "" {
		exit.Log("usage: pfscalib -in=points.txt -out=model.txt")
	}

	pts, err := calibration.ReadPoints(*in)
	if err != nil {
		exit.Log(err)
	}

	dm, err := calibration.Fit(pts)
	if err != nil {
		exit.Log(err)
	}

	if err := calibration.Write(*out, dm); err != nil {
		exit.Log(err)
	}

	log.Printf("fit %d points -> a0=%g a1=%g a2=%g a3=%g\n", len(pts), dm.A0, dm.A1, dm.A2, dm.A3)
}
