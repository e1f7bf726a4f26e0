package assign

import (
	"pfsfiber/internal/geom"
	"pfsfiber/internal/pfi"
	"pfsfiber/internal/pqueue"
	"pfsfiber/internal/spatial"
	"pfsfiber/internal/target"
)

// sentinel marks a target as exhausted in the priority queue: it sorts
// after every real priority, regardless of prox (§4.G step 2).
const sentinel = 1 << 30

// pqEntry is the priority-queue payload for the New strategy (§3
// "Priority queue entry").
type pqEntry struct {
	prox float64
	pri  int
}

// pqLess implements "a sorts before b ⇔ (a.pri > b.pri) ∨ (a.pri==b.pri ∧
// a.prox < b.prox)", so Top() yields the smallest pri and, among those,
// the largest prox.
func pqLess(a, b pqEntry) bool {
	if a.pri != b.pri {
		return a.pri > b.pri
	}
	return a.prox < b.prox
}

// kernel is the plain parabola K(r²) = max(0, RKernel² − r²); the
// alternative kernel shapes considered in the source are rejected by
// policy (§4.G).
func kernel(distSq float64) float64 {
	v := pfi.RKernel*pfi.RKernel - distSq
	if v < 0 {
		return 0
	}
	return v
}

// buildProx computes prox(i) for every target, over all j within
// RKernel of i including i itself. Off-diagonal pairs are accumulated to
// both endpoints by iterating only j > i.
func buildProx(tgts []target.Target, idx *spatial.Raster) []float64 {
	prox := make([]float64, len(tgts))
	for i := range tgts {
		prox[i] += tgts[i].Time * tgts[i].Time * kernel(0)
		for _, j := range idx.Query(tgts[i].Pos, pfi.RKernel) {
			if j <= i {
				continue
			}
			k := kernel(geom.DistSq(tgts[i].Pos, tgts[j].Pos))
			contrib := tgts[i].Time * tgts[j].Time * k
			prox[i] += contrib
			prox[j] += contrib
		}
	}
	return prox
}

// New is the density-aware strategy (§4.G): it prefers isolated,
// high-priority targets so that clusters are broken up gradually and
// later exposures still have reachable work.
type New struct{}

func (New) Assign(tgts []target.Target) (tid, fid []int) {
	m := Build(tgts)
	prox := buildProx(tgts, m.index)

	entries := make([]pqEntry, len(tgts))
	for i, t := range tgts {
		entries[i] = pqEntry{prox: prox[i], pri: t.Pri}
	}
	pq := pqueue.New(entries, pqLess)

	for pq.Len() > 0 {
		if pq.TopPriority().pri == sentinel {
			break
		}
		t := pq.Top()
		fibers := m.T2F(t)
		if len(fibers) == 0 {
			pq.SetPriority(t, pqEntry{prox: 0, pri: sentinel})
			continue
		}

		f := smallestNeighborhoodFiber(m, fibers)
		m.Cleanup(f, t)
		tid = append(tid, t)
		fid = append(fid, f)

		for _, j := range m.index.Query(tgts[t].Pos, pfi.RKernel) {
			if len(m.T2F(j)) == 0 && pq.Priority(j).prox == 0 {
				continue
			}
			k := kernel(geom.DistSq(tgts[j].Pos, tgts[t].Pos))
			cur := pq.Priority(j)
			cur.prox -= tgts[j].Time * tgts[t].Time * k
			pq.SetPriority(j, cur)
		}
	}
	return tid, fid
}

// smallestNeighborhoodFiber picks, among fibers, the one with the
// smallest current |F2T[f]|, ties broken by first occurrence.
func smallestNeighborhoodFiber(m *Mapping, fibers []int) int {
	best := fibers[0]
	for _, f := range fibers[1:] {
		if len(m.F2T(f)) < len(m.F2T(best)) {
			best = f
		}
	}
	return best
}
