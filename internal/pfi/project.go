package pfi

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"pfsfiber/internal/geom"
)

// Pointing is a telescope line-of-sight direction plus a position angle,
// the boundary type the exposure optimizer perturbs and the driver
// records in the report header.
type Pointing struct {
	RA, Dec unit.Angle
	PosAng  unit.Angle
}

// cart converts a, RA/Dec pair to a unit vector on the celestial sphere.
func cart(ra, dec unit.Angle) coord.Cart {
	cd := math.Cos(dec.Rad())
	return coord.Cart{
		X: cd * math.Cos(ra.Rad()),
		Y: cd * math.Sin(ra.Rad()),
		Z: math.Sin(dec.Rad()),
	}
}

func scale(a coord.Cart, s float64) coord.Cart {
	return coord.Cart{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

func norm(a coord.Cart) coord.Cart {
	m := math.Sqrt(a.Square())
	return scale(a, 1/m)
}

func sub(a, b coord.Cart) coord.Cart {
	return coord.Cart{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// northPole is the celestial pole direction, used to build "sky up" for
// the tangent-plane basis.
var northPole = coord.Cart{X: 0, Y: 0, Z: 1}

// DistortionModel holds the four coefficients of the radial distortion
// polynomial applied after tangent-plane projection (§4.B). The built-in
// Default is the original prototype's fixed, "still very preliminary"
// constants; internal/calibration can produce a refit replacement.
type DistortionModel struct {
	A0, A1, A2, A3 float64
}

// Default is the original prototype's distortion polynomial.
var Default = DistortionModel{A0: 0, A1: -320, A2: -13.7, A3: -7.45}

// Basis is the orthonormal tangent-plane frame (x̂, ŷ, ẑ=L) at a pointing,
// reused across every target in a single exposure so it is built once,
// not once per target.
type Basis struct {
	xhat, yhat, zhat coord.Cart
}

// NewBasis constructs the tangent-plane basis at pointing p, per §4.B: x̂
// is the rejection of the celestial pole onto the plane perpendicular to
// the line of sight ("sky up"), normalized; ŷ = ẑ × x̂.
func NewBasis(p Pointing) Basis {
	zhat := cart(p.RA, p.Dec)
	xhat := sub(northPole, scale(zhat, zhat.Dot(&northPole)))
	if xhat.Square() < 1e-24 {
		// C0 is at (or extremely near) a celestial pole; fall back to a
		// fixed reference axis rather than dividing by ~zero.
		xref := coord.Cart{X: 1, Y: 0, Z: 0}
		xhat = sub(xref, scale(zhat, zhat.Dot(&xref)))
		if xhat.Square() < 1e-24 {
			xhat = coord.Cart{X: 0, Y: 1, Z: 0}
		}
	}
	xhat = norm(xhat)
	var yhat coord.Cart
	yhat.Cross(&zhat, &xhat)
	return Basis{xhat: xhat, yhat: yhat, zhat: zhat}
}

// Cart converts an RA/Dec pair to a unit vector on the celestial sphere.
// Exported for callers (e.g. internal/astroutil) that need to do sphere
// geometry outside the tangent-plane projection itself.
func Cart(ra, dec unit.Angle) coord.Cart {
	return cart(ra, dec)
}

// Vectors returns the basis's three orthonormal axes (x̂, ŷ, ẑ=line of
// sight). Exported for tests that need to check the basis construction
// directly rather than through a projection.
func (b Basis) Vectors() (xhat, yhat, zhat coord.Cart) {
	return b.xhat, b.yhat, b.zhat
}

// Project maps a sky direction (ra, dec) into PFI-plane millimeters under
// basis b, position angle posAng, and distortion model dm.
func Project(b Basis, ra, dec unit.Angle, posAng unit.Angle, dm DistortionModel) geom.Point {
	d := cart(ra, dec)
	u := math.Atan2(d.Dot(&b.xhat), d.Dot(&b.zhat))
	v := math.Atan2(d.Dot(&b.yhat), d.Dot(&b.zhat))

	// Tangent-plane angles in degrees, as the original prototype scales
	// them before the distortion polynomial.
	u *= 180 / math.Pi
	v *= 180 / math.Pi

	sp, cp := math.Sincos(posAng.Rad())
	ur := cp*u - sp*v
	vr := sp*u + cp*v

	r2 := ur*ur + vr*vr
	radial := dm.A3*r2*r2 + dm.A2*r2 + dm.A1

	x := radial*ur + dm.A0
	y := -radial*vr + dm.A0
	return geom.New(x, y)
}

// Offset nudges the line of sight by (dx, dy) radians along basis's x̂/ŷ
// axes and renormalizes, returning the resulting direction as a unit
// Cartesian vector. The exposure optimizer (§4.H) converts this back to
// RA/Dec for the perturbed Pointing it hands to Project.
func Offset(basis Basis, dx, dy float64) coord.Cart {
	d := basis.zhat
	d = add(d, scale(basis.xhat, dx))
	d = add(d, scale(basis.yhat, dy))
	return norm(d)
}

func add(a, b coord.Cart) coord.Cart {
	return coord.Cart{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// ToRADec converts a unit Cartesian direction back to RA/Dec angles.
func ToRADec(d coord.Cart) (ra, dec unit.Angle) {
	dec = unit.Angle(math.Asin(clampUnit(d.Z)))
	ra = unit.Angle(math.Atan2(d.Y, d.X))
	if ra.Rad() < 0 {
		ra = unit.Angle(ra.Rad() + 2*math.Pi)
	}
	return ra, dec
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
