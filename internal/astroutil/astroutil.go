// Package astroutil wraps standards-based date and sky-orientation
// helpers: Julian date conversion, mean sidereal time, and nutation, each
// a thin pass-through to a github.com/soniakeys/meeus/v3 subpackage rather
// than the hand-rolled Gregorian/Julian/GMST arithmetic the original
// prototype carried inline (§4.J). There is no precession helper. The
// command-line driver calls only SmallestEnclosingCircle, for its default
// pointing; the date helpers have no caller in this module. None of this
// is on the assignment kernel's hot path.
package astroutil

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"pfsfiber/internal/geom"
	"pfsfiber/internal/pfi"
)

// JulianDay converts a Gregorian calendar date/time to a Julian day
// number.
func JulianDay(year, month int, day float64) float64 {
	return julian.CalendarGregorianToJD(year, month, day)
}

// MeanSiderealTime returns the mean sidereal time at Greenwich for
// Julian day jd.
func MeanSiderealTime(jd float64) unit.Time {
	return sidereal.Mean(jd)
}

// NutationAngles returns the nutation in longitude and obliquity at
// Julian day jd.
func NutationAngles(jd float64) (deltaPsi, deltaEps unit.Angle) {
	return nutation.Nutation(jd)
}

// SmallestEnclosingCircle computes the sky direction at the center of the
// smallest spherical cap enclosing pts (RA/Dec degree pairs), using an
// incremental Welzl-style construction over unit vectors on the
// celestial sphere, the same way the original prototype's getCenter
// works on 3D direction vectors rather than a planar RA/Dec fit: a flat
// Euclidean circle over RA/Dec degrees breaks down across the RA 0/360
// seam and near the poles. It is the fallback used whenever ra/dec
// aren't both supplied (§4.J, §6). radius is the angular radius of the
// cap, in radians.
func SmallestEnclosingCircle(pts []geom.Point) (center geom.Point, radius float64) {
	if len(pts) == 0 {
		return geom.New(0, 0), 0
	}
	vecs := make([]coord.Cart, len(pts))
	for i, p := range pts {
		vecs[i] = pfi.Cart(unit.AngleFromDeg(p[0]), unit.AngleFromDeg(p[1]))
	}

	c, r := vecs[0], 0.0
	for i := 1; i < len(vecs); i++ {
		p := vecs[i]
		if angDist(p, c) <= r {
			continue
		}
		c, r = p, 0
		for j := 0; j < i; j++ {
			q := vecs[j]
			if angDist(q, c) <= r {
				continue
			}
			c, r = sphereMidpoint(p, q), angDist(p, q)/2
			for k := 0; k < j; k++ {
				s := vecs[k]
				if angDist(s, c) <= r {
					continue
				}
				c, r = sphereCircumcenter(p, q, s)
			}
		}
	}
	ra, dec := pfi.ToRADec(c)
	return geom.New(ra.Deg(), dec.Deg()), r
}

func scale(a coord.Cart, s float64) coord.Cart {
	return coord.Cart{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

func add(a, b coord.Cart) coord.Cart {
	return coord.Cart{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func sub(a, b coord.Cart) coord.Cart {
	return coord.Cart{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func norm(a coord.Cart) coord.Cart {
	m := math.Sqrt(a.Square())
	if m < 1e-15 {
		return a
	}
	return scale(a, 1/m)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// angDist returns the angle in radians between unit vectors a and b.
func angDist(a, b coord.Cart) float64 {
	return math.Acos(clampUnit(a.Dot(&b)))
}

func sphereMidpoint(a, b coord.Cart) coord.Cart {
	return norm(add(a, b))
}

// sphereCircumcenter returns the direction and angular radius of the
// spherical cap whose boundary passes through a, b, and c: the direction
// m orthogonal to both (a-b) and (b-c), oriented toward the points.
func sphereCircumcenter(a, b, c coord.Cart) (coord.Cart, float64) {
	var n coord.Cart
	ab, bc := sub(a, b), sub(b, c)
	n.Cross(&ab, &bc)
	if n.Square() < 1e-24 {
		// Degenerate (a, b, c lie on a common great circle): fall back to
		// the two-point cap spanning the farthest pair.
		pairs := [][2]coord.Cart{{a, b}, {b, c}, {a, c}}
		best := pairs[0]
		bestD := angDist(best[0], best[1])
		for _, pr := range pairs[1:] {
			if d := angDist(pr[0], pr[1]); d > bestD {
				best, bestD = pr, d
			}
		}
		return sphereMidpoint(best[0], best[1]), bestD / 2
	}
	m := norm(n)
	if m.Dot(&a) < 0 {
		m = scale(m, -1)
	}
	return m, angDist(m, a)
}
