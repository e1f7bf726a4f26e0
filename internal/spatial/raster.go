// Package spatial implements the uniform-cell grid used to answer range
// queries over the target and fiber positions on the focal plane.
//
// This is a direct, hand-rolled port of the fpraster class from the
// original ets_fiber_assigner prototype: no generic spatial-index library
// in the ecosystem gives the exact cell-row-major, insertion-order query
// result that the assignment strategies depend on for determinism (see
// round-trip law L1 and the P1/P3 invariants), so it is reimplemented here
// rather than adapted from an R-tree/quadtree package.
package spatial

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"pfsfiber/internal/geom"
)

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Raster buckets a fixed set of points into a uniform nx*ny grid over their
// bounding box, and answers circular range queries against it.
type Raster struct {
	x0, y0, x1, y1 float64
	idx, idy       float64
	nx, ny         int
	data           [][]int
	loc            []geom.Point
}

// New constructs a Raster over loc with nx cells in x and ny cells in y.
// It panics if loc is empty or nx/ny <= 0: an empty or malformed index is a
// precondition failure in this kernel, not a recoverable runtime state.
func New(loc []geom.Point, nx, ny int) *Raster {
	if nx <= 0 || ny <= 0 {
		panic(fmt.Sprintf("spatial: bad grid size %dx%d", nx, ny))
	}
	if len(loc) == 0 {
		panic("spatial: input point set is empty")
	}
	r := &Raster{
		nx:   nx,
		ny:   ny,
		data: make([][]int, nx*ny),
		loc:  loc,
	}
	r.x0, r.x1 = loc[0][0], loc[0][0]
	r.y0, r.y1 = loc[0][1], loc[0][1]
	for _, p := range loc[1:] {
		if p[0] < r.x0 {
			r.x0 = p[0]
		}
		if p[0] > r.x1 {
			r.x1 = p[0]
		}
		if p[1] < r.y0 {
			r.y0 = p[1]
		}
		if p[1] > r.y1 {
			r.y1 = p[1]
		}
	}
	if r.x0 == r.x1 {
		r.x1 += 1e-9
	}
	if r.y0 == r.y1 {
		r.y1 += 1e-9
	}
	r.idx = float64(nx) / (r.x1 - r.x0)
	r.idy = float64(ny) / (r.y1 - r.y0)
	for i, p := range loc {
		c := r.cellIndex(p)
		r.data[c] = append(r.data[c], i)
	}
	return r
}

func (r *Raster) indexX(x float64) int {
	return clamp(int((x-r.x0)*r.idx), 0, r.nx-1)
}

func (r *Raster) indexY(y float64) int {
	return clamp(int((y-r.y0)*r.idy), 0, r.ny-1)
}

func (r *Raster) cellIndex(p geom.Point) int {
	return r.indexX(p[0]) + r.nx*r.indexY(p[1])
}

// Query returns the indices (into the slice passed to New) of every point
// within Euclidean distance rad of center. The result order is
// deterministic: cell-row-major, then insertion order within a cell.
func (r *Raster) Query(center geom.Point, rad float64) []int {
	if center[0] < r.x0-rad || center[0] > r.x1+rad ||
		center[1] < r.y0-rad || center[1] > r.y1+rad {
		return nil
	}
	rsq := rad * rad
	i0, i1 := r.indexX(center[0]-rad), r.indexX(center[0]+rad)
	j0, j1 := r.indexY(center[1]-rad), r.indexY(center[1]+rad)
	var res []int
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, k := range r.data[i+r.nx*j] {
				if geom.DistSq(center, r.loc[k]) <= rsq {
					res = append(res, k)
				}
			}
		}
	}
	return res
}

// AnyIn is a short-circuiting version of Query that only reports whether
// any point lies within rad of center.
func (r *Raster) AnyIn(center geom.Point, rad float64) bool {
	if center[0] < r.x0-rad || center[0] > r.x1+rad ||
		center[1] < r.y0-rad || center[1] > r.y1+rad {
		return false
	}
	rsq := rad * rad
	i0, i1 := r.indexX(center[0]-rad), r.indexX(center[0]+rad)
	j0, j1 := r.indexY(center[1]-rad), r.indexY(center[1]+rad)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, k := range r.data[i+r.nx*j] {
				if geom.DistSq(center, r.loc[k]) <= rsq {
					return true
				}
			}
		}
	}
	return false
}
