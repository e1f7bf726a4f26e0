// Package assign builds the fiber↔target reachability mappings and
// implements the three assignment strategies (Naive, Draining, New) that
// greedily commit one target per fiber.
package assign

import (
	"fmt"

	"pfsfiber/internal/geom"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/spatial"
	"pfsfiber/internal/target"
)

// Mapping holds the live fiber→target and target→fiber reachability
// neighborhoods for one exposure's assignment pass (§4.F). It owns a
// spatial index over the current target positions and is rebuilt fresh
// for every exposure; nothing here survives across exposures.
type Mapping struct {
	tgts  []target.Target
	index *spatial.Raster

	f2t [][]int // fiber -> target indices
	t2f [][]int // target -> fiber indices
}

// Build constructs F2T and T2F for tgts, following §4.F: for each fiber,
// query the target-position index at fiberCenter(f) with radius RMax,
// drop targets within DotDist of dotCenter(f).
func Build(tgts []target.Target) *Mapping {
	pos := make([]geom.Point, len(tgts))
	for i, t := range tgts {
		pos[i] = t.Pos
	}
	nx, ny := gridDims(len(tgts))
	idx := spatial.New(pos, nx, ny)

	m := &Mapping{
		tgts:  tgts,
		index: idx,
		f2t:   make([][]int, pfi.NFiber),
		t2f:   make([][]int, len(tgts)),
	}
	for f := 0; f < pfi.NFiber; f++ {
		fc := pfi.FiberCenter(f)
		dc := pfi.DotCenter(f)
		for _, ti := range idx.Query(fc, pfi.RMax) {
			if geom.DistSq(tgts[ti].Pos, dc) < pfi.DotDist*pfi.DotDist {
				continue
			}
			m.f2t[f] = append(m.f2t[f], ti)
			m.t2f[ti] = append(m.t2f[ti], f)
		}
	}
	return m
}

// gridDims picks a spatial-index cell count that keeps average occupancy
// roughly constant regardless of catalog size, the same rule of thumb the
// original prototype used for its raster sizing.
func gridDims(n int) (nx, ny int) {
	if n < 4 {
		return 2, 2
	}
	side := 1
	for side*side*4 < n {
		side++
	}
	return side, side
}

// F2T returns the current set of targets reachable by fiber f.
func (m *Mapping) F2T(f int) []int { return m.f2t[f] }

// T2F returns the current set of fibers that can reach target t.
func (m *Mapping) T2F(t int) []int { return m.t2f[t] }

// removeOne deletes v from *s, asserting that exactly one occurrence
// existed (invariant I1); any other count is a fatal, process-ending
// invariant failure.
func removeOne(s *[]int, v int) {
	idx := -1
	count := 0
	for i, x := range *s {
		if x == v {
			count++
			if idx == -1 {
				idx = i
			}
		}
	}
	if count != 1 {
		panic(fmt.Sprintf("assign: invariant I1 violated: expected exactly one occurrence of %d, found %d", v, count))
	}
	last := len(*s) - 1
	(*s)[idx] = (*s)[last]
	*s = (*s)[:last]
}

// Cleanup is invoked when fiber f is committed to target t (§4.F). It
// clears f's neighborhood, and removes every target within CollDist of
// t's position (including t itself) from every fiber that could still
// reach it.
func (m *Mapping) Cleanup(f, t int) {
	for _, tp := range m.f2t[f] {
		removeOne(&m.t2f[tp], f)
	}
	m.f2t[f] = nil

	for _, tt := range m.index.Query(m.tgts[t].Pos, pfi.CollDist) {
		fibers := m.t2f[tt]
		m.t2f[tt] = nil
		for _, j := range fibers {
			removeOne(&m.f2t[j], tt)
		}
	}
}
