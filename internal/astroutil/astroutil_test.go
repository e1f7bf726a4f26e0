package astroutil_test

import (
	"math"
	"testing"

	"pfsfiber/internal/astroutil"
	"pfsfiber/internal/geom"
)

// angularDist returns the angle in radians between two RA/Dec degree
// pairs, via the spherical law of cosines.
func angularDist(a, b geom.Point) float64 {
	ra1, dec1 := a[0]*math.Pi/180, a[1]*math.Pi/180
	ra2, dec2 := b[0]*math.Pi/180, b[1]*math.Pi/180
	cos := math.Sin(dec1)*math.Sin(dec2) + math.Cos(dec1)*math.Cos(dec2)*math.Cos(ra1-ra2)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

func TestSmallestEnclosingCircleSinglePoint(t *testing.T) {
	p := geom.Point{3, 4}
	c, r := astroutil.SmallestEnclosingCircle([]geom.Point{p})
	if math.Abs(c[0]-p[0]) > 1e-9 || math.Abs(c[1]-p[1]) > 1e-9 || r != 0 {
		t.Fatalf("single point: got center=%v radius=%v", c, r)
	}
}

func TestSmallestEnclosingCircleContainsAllPoints(t *testing.T) {
	pts := []geom.Point{{10, 20}, {14, 20}, {12, 23}, {12, 18}, {11, 21}}
	c, r := astroutil.SmallestEnclosingCircle(pts)
	for _, p := range pts {
		d := angularDist(p, c)
		if d > r+1e-9 {
			t.Fatalf("point %v at angular distance %v exceeds radius %v", p, d, r)
		}
	}
}

func TestSmallestEnclosingCircleTwoPoints(t *testing.T) {
	a := geom.Point{0, 0}
	b := geom.Point{2, 0}
	c, r := astroutil.SmallestEnclosingCircle([]geom.Point{a, b})

	want := 1 * math.Pi / 180
	if math.Abs(r-want) > 1e-9 {
		t.Fatalf("radius = %v rad, want %v rad", r, want)
	}
	if math.Abs(c[0]-1) > 1e-7 || math.Abs(c[1]) > 1e-7 {
		t.Fatalf("center = %v, want (1,0)", c)
	}
}
