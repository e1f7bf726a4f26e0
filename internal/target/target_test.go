package target_test

import (
	"testing"

	"pfsfiber/internal/geom"
	"pfsfiber/internal/target"
)

func TestAliveBoundary(t *testing.T) {
	cases := []struct {
		time float64
		want bool
	}{
		{1, true},
		{1e-7, false},
		{1e-6, true},
		{0, false},
		{-1, false},
	}
	for _, c := range cases {
		tg := target.Target{Time: c.time}
		if got := tg.Alive(); got != c.want {
			t.Errorf("Alive() with time=%v = %v, want %v", c.time, got, c.want)
		}
	}
}

func TestTotalTime(t *testing.T) {
	tgts := []target.Target{
		{ID: 1, Pos: geom.New(0, 0), Time: 10},
		{ID: 2, Pos: geom.New(1, 1), Time: 5.5},
	}
	if got := target.TotalTime(tgts); got != 15.5 {
		t.Fatalf("TotalTime() = %v, want 15.5", got)
	}
}
