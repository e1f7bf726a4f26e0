// Package report writes the per-exposure ASCII report (§4.J, §6) and
// formats the driver's progress lines.
package report

import (
	"fmt"
	"io"
	"os"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"pfsfiber/internal/exposure"
)

// Writer appends exposure blocks to an underlying file. A Writer with no
// backing file is a no-op, matching the "" (none) default of the
// `output` parameter (§6).
type Writer struct {
	w io.WriteCloser
}

// Open opens path for report writing. An empty path yields a no-op
// Writer.
func Open(path string) (*Writer, error) {
	if path == "" {
		return &Writer{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: cannot open %s: %w", path, err)
	}
	return &Writer{w: f}, nil
}

// Close releases the underlying file, if any.
func (w *Writer) Close() error {
	if w.w == nil {
		return nil
	}
	return w.w.Close()
}

// Write appends one exposure block: a header line (index, duration, RA,
// Dec, PA) followed by one row per assigned fiber (target id, 1-based
// fiber id, target x, target y). Field widths are the stable interface
// (§6).
func (w *Writer) Write(e exposure.Exposure) error {
	if w.w == nil {
		return nil
	}
	_, err := fmt.Fprintf(w.w, "Exposure %d: duration %gs, RA: %g, DEC %g, PA: %g\n",
		e.Index, e.Duration, e.Pointing.RA.Deg(), e.Pointing.Dec.Deg(), e.Pointing.PosAng.Deg())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.w, "%8s%10s%10s%10s\n", "Target", "Fiber", "RA", "DEC"); err != nil {
		return err
	}
	for i, tid := range e.TID {
		pos := e.Pos[i]
		if _, err := fmt.Fprintf(w.w, "%8d%10d%10.5f%10.5f\n", tid, e.FID[i]+1, pos.Pos[0], pos.Pos[1]); err != nil {
			return err
		}
	}
	return nil
}

// ProgressLine formats one driver progress line (§4.I step 8): tile
// index, fiber-use fraction, cumulative coverage, cumulative time, and
// the chosen RA/Dec both in sexagesimal and plain decimal degrees.
func ProgressLine(p exposure.Progress) string {
	return fmt.Sprintf(
		"tile %3d  fiber-use %5.1f%%  coverage %5.1f%%  t=%10.1fs  RA %s (%.5fd)  Dec %s (%.5fd)",
		p.TileIndex,
		100*p.FiberUseFraction,
		100*p.CumCoverage,
		p.CumTime,
		sexa.FmtRA(unit.RA(p.Pointing.RA)), p.Pointing.RA.Deg(),
		sexa.FmtAngle(p.Pointing.Dec), p.Pointing.Dec.Deg(),
	)
}
