package assign

import "pfsfiber/internal/target"

// Strategy is the tagged-dispatch interface shared by the three
// assignment policies (§4.G): a flat function from the current catalog
// to the committed (target-index, fiber-index) pairs, not a class
// hierarchy.
type Strategy interface {
	Assign(tgts []target.Target) (tid, fid []int)
}

// ByName resolves a strategy by its CLI-facing name. An unrecognized
// name is a config error, surfaced by the caller as a fatal abort.
func ByName(name string) (Strategy, bool) {
	switch name {
	case "naive":
		return Naive{}, true
	case "draining":
		return Draining{}, true
	case "new":
		return New{}, true
	default:
		return nil, false
	}
}

// Naive iterates fibers in index order; for each with any reachable
// target, it picks the smallest-pri one (ties: first occurrence) and
// commits it.
type Naive struct{}

func (Naive) Assign(tgts []target.Target) (tid, fid []int) {
	m := Build(tgts)
	for f := range m.f2t {
		cand := m.F2T(f)
		if len(cand) == 0 {
			continue
		}
		best := bestByPriority(tgts, cand)
		m.Cleanup(f, best)
		tid = append(tid, best)
		fid = append(fid, f)
	}
	return tid, fid
}

// bestByPriority returns the element of cand with the smallest tgts[i].Pri,
// ties broken by first occurrence in cand.
func bestByPriority(tgts []target.Target, cand []int) int {
	best := cand[0]
	for _, c := range cand[1:] {
		if tgts[c].Pri < tgts[best].Pri {
			best = c
		}
	}
	return best
}

// Draining repeatedly picks the fiber with the smallest nonzero
// reachable-target count, ties broken by lowest fiber index, and commits
// its best-priority target, until no fiber has any reachable target.
type Draining struct{}

func (Draining) Assign(tgts []target.Target) (tid, fid []int) {
	m := Build(tgts)
	for {
		f := smallestNonemptyFiber(m)
		if f < 0 {
			break
		}
		best := bestByPriority(tgts, m.F2T(f))
		m.Cleanup(f, best)
		tid = append(tid, best)
		fid = append(fid, f)
	}
	return tid, fid
}

func smallestNonemptyFiber(m *Mapping) int {
	best := -1
	bestLen := 0
	for f := range m.f2t {
		n := len(m.f2t[f])
		if n == 0 {
			continue
		}
		if best < 0 || n < bestLen {
			best = f
			bestLen = n
		}
	}
	return best
}
