package spatial_test

import (
	"math"
	"testing"

	"pfsfiber/internal/geom"
	"pfsfiber/internal/spatial"
)

// bruteForce implements the round-trip law L1 directly, for comparison.
func bruteForce(pts []geom.Point, center geom.Point, rad float64) []int {
	var res []int
	rsq := rad * rad
	for i, p := range pts {
		if geom.DistSq(p, center) <= rsq {
			res = append(res, i)
		}
	}
	return res
}

func samePointSet(t *testing.T, got, want []int) {
	t.Helper()
	gm := map[int]bool{}
	for _, v := range got {
		gm[v] = true
	}
	wm := map[int]bool{}
	for _, v := range want {
		wm[v] = true
	}
	if len(gm) != len(wm) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k := range wm {
		if !gm[k] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestQueryMatchesBruteForce(t *testing.T) {
	pts := []geom.Point{
		{0, 0}, {1, 0}, {0, 1}, {5, 5}, {-3, 2}, {10, -10}, {2.5, 2.5},
	}
	r := spatial.New(pts, 4, 4)
	cases := []struct {
		c geom.Point
		d float64
	}{
		{geom.Point{0, 0}, 1.5},
		{geom.Point{0, 0}, 0},
		{geom.Point{2.5, 2.5}, 3},
		{geom.Point{100, 100}, 5},
	}
	for _, c := range cases {
		got := r.Query(c.c, c.d)
		want := bruteForce(pts, c.c, c.d)
		samePointSet(t, got, want)
	}
}

func TestQueryBoundaryInclusive(t *testing.T) {
	pts := []geom.Point{{0, 0}, {3, 0}}
	r := spatial.New(pts, 2, 2)
	got := r.Query(geom.Point{0, 0}, 3)
	samePointSet(t, got, []int{0, 1})
}

func TestAnyInShortCircuits(t *testing.T) {
	pts := []geom.Point{{0, 0}, {10, 10}}
	r := spatial.New(pts, 3, 3)
	if !r.AnyIn(geom.Point{0, 0}, 0.5) {
		t.Fatal("expected point at origin to be found")
	}
	if r.AnyIn(geom.Point{50, 50}, 1) {
		t.Fatal("expected no point near (50,50)")
	}
}

func TestDegenerateAxisPadded(t *testing.T) {
	pts := []geom.Point{{1, 1}, {1, 1}, {1, 2}}
	r := spatial.New(pts, 3, 3)
	got := r.Query(geom.Point{1, 1}, 0.01)
	if len(got) < 2 {
		t.Fatalf("expected the two collocated points, got %v", got)
	}
}

func TestNewPanicsOnEmptyInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty point set")
		}
	}()
	spatial.New(nil, 1, 1)
}

func TestDistSqMatchesHypot(t *testing.T) {
	a := geom.Point{1, 2}
	b := geom.Point{4, 6}
	want := math.Hypot(3, 4)
	if got := math.Sqrt(geom.DistSq(a, b)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DistSq mismatch: got %v want %v", got, want)
	}
}
