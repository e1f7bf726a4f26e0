// Package calibration refits the focal-plane distortion polynomial's
// four coefficients against measured calibration points, offline and
// never on the exposure hot path (§4.L). The original prototype marks
// its distortion polynomial "still very preliminary, incomplete and
// approximate"; this package supplements that with a real fitting path.
package calibration

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/lmfit"

	"pfsfiber/internal/pfi"
)

// Point is one measured calibration record: tangent-plane angles (u, v)
// in degrees and the measured focal-plane position (xMeasured,
// yMeasured) in millimeters.
type Point struct {
	U, V                 float64
	XMeasured, YMeasured float64
}

// ReadPoints reads whitespace-separated "u v xMeasured yMeasured" lines
// from path, skipping blank lines and lines beginning with '#'.
func ReadPoints(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calibration: cannot open %s: %w", path, err)
	}
	defer f.Close()

	var pts []Point
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for i, s := range fields {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		pts = append(pts, Point{U: vals[0], V: vals[1], XMeasured: vals[2], YMeasured: vals[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

// residual evaluates the stacked x/y residuals of the distortion model
// (a0, a1, a2, a3) against pts, in the layout lmfit.Minimize expects: one
// residual per observation component.
func residual(coeffs []float64, pts []Point) []float64 {
	a0, a1, a2, a3 := coeffs[0], coeffs[1], coeffs[2], coeffs[3]
	res := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		r2 := p.U*p.U + p.V*p.V
		radial := a3*r2*r2 + a2*r2 + a1
		x := radial*p.U + a0
		y := -radial*p.V + a0
		res = append(res, x-p.XMeasured, y-p.YMeasured)
	}
	return res
}

// Fit refits (a0, a1, a2, a3) against pts by Levenberg-Marquardt,
// starting from the built-in constants, and returns the resulting
// DistortionModel.
func Fit(pts []Point) (pfi.DistortionModel, error) {
	if len(pts) < 4 {
		return pfi.DistortionModel{}, fmt.Errorf("calibration: need at least 4 points, got %d", len(pts))
	}
	start := []float64{pfi.Default.A0, pfi.Default.A1, pfi.Default.A2, pfi.Default.A3}

	fit, err := lmfit.Minimize(start, func(coeffs []float64) []float64 {
		return residual(coeffs, pts)
	})
	if err != nil {
		return pfi.DistortionModel{}, fmt.Errorf("calibration: fit did not converge: %w", err)
	}
	return pfi.DistortionModel{A0: fit[0], A1: fit[1], A2: fit[2], A3: fit[3]}, nil
}

// Write serializes a DistortionModel to path as four whitespace
// separated floats, the format Load reads.
func Write(path string, dm pfi.DistortionModel) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%g %g %g %g\n", dm.A0, dm.A1, dm.A2, dm.A3)
	return err
}

// Load reads a DistortionModel previously written by Write, the file a
// `calibration` parameter (§6) points at.
func Load(path string) (pfi.DistortionModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return pfi.DistortionModel{}, err
	}
	fields := strings.Fields(string(b))
	if len(fields) != 4 {
		return pfi.DistortionModel{}, fmt.Errorf("calibration: %s: expected 4 fields, got %d", path, len(fields))
	}
	var vals [4]float64
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return pfi.DistortionModel{}, fmt.Errorf("calibration: %s: %w", path, err)
		}
		vals[i] = v
	}
	return pfi.DistortionModel{A0: vals[0], A1: vals[1], A2: vals[2], A3: vals[3]}, nil
}
