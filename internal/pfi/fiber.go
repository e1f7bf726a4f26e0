package pfi

import (
	"math"
	"sync"

	"pfsfiber/internal/geom"
)

var vspace = math.Sqrt(0.75) // cos(30 degrees)

// fiberPos computes the center of fiber f in PFI millimeters, following
// the field/module/cobra decomposition from the original prototype's
// id2fiberpos.
func fiberPos(f int) geom.Point {
	field := f / 798
	rem := f - field*798
	module := rem / 57
	cobra := rem - module*57

	y := 0.5 + float64(module) - 0.5*float64(cobra)
	x := -vspace * (1 + 2*float64(module) + float64(cobra&1))
	p := geom.New(x, y)

	switch field {
	case 1:
		p = geom.Rotate(p, -vspace, -0.5)
	case 2:
		p = geom.Rotate(p, vspace, -0.5)
	}
	return geom.New(p[0]*8, p[1]*8)
}

// dotOffset is the fixed displacement from a fiber's center to its dot
// center.
var dotOffset = geom.New(0, 1.19)

// fiberCenters and dotCenters are computed once and cached: they never
// depend on the current exposure (§4.C).
var (
	centerCacheOnce sync.Once
	fiberCenters    [NFiber]geom.Point
	dotCenters      [NFiber]geom.Point
)

func ensureCenters() {
	centerCacheOnce.Do(func() {
		for f := 0; f < NFiber; f++ {
			c := fiberPos(f)
			fiberCenters[f] = c
			dotCenters[f] = geom.Add(c, dotOffset)
		}
	})
}

// FiberCenter returns the patrol center of fiber f, 0 <= f < NFiber.
func FiberCenter(f int) geom.Point {
	ensureCenters()
	return fiberCenters[f]
}

// DotCenter returns the dot-blocking center of fiber f.
func DotCenter(f int) geom.Point {
	ensureCenters()
	return dotCenters[f]
}

// AllFiberCenters returns a copy of the cached centers of every fiber,
// in fiber-index order.
func AllFiberCenters() []geom.Point {
	ensureCenters()
	out := make([]geom.Point, NFiber)
	copy(out, fiberCenters[:])
	return out
}
