/*
NAME
  epzs.go

DESCRIPTION
  epzs.go implements the shared full-pel EPZS searcher of spec 4.3: a
  seed-and-refine diamond search using spatial, temporal, median and
  zero predictors, followed by an adaptive diamond (or shape-adaptive
  "SAB" diamond) refinement, guarded by the visited-score map so a
  vector already scored since the last InitPicture is never re-scored.

  EPZSSearch2, the 8x8-block form used by four-vector partition
  search, reuses the same engine at a smaller block height and a
  half-radius diamond limit (spec 4.3).

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package motionest

import "container/heap"

// EPZSParams bundles the inputs of an EPZS search (spec 4.3).
type EPZSParams struct {
	Predictors [numPredictors]Vector
	Window     Window
	Size       int
	H          int
	CmpFn      CmpFunc
	ChromaCmpFn CmpFunc
	Flags      CompareFlags
	PenaltyFactor int
	DiaSize    int
}

// EPZSSearch runs the full-pel EPZS search described in spec 4.3 and
// returns the best vector found and its score. Preconditions: Limits
// and CurrentMVPenalty must already be set on s (spec 4.3
// "Preconditions").
func (s *SliceState) EPZSSearch(p EPZSParams) (Vector, int) {
	eval := func(mv Vector) int { return s.epzsEvaluate(p, mv) }

	seeds := []Vector{
		{0, 0},
		p.Predictors[PLeft],
		p.Predictors[PTop],
		p.Predictors[PTopRight],
		p.Predictors[PMedian],
		p.Predictors[PTemporal],
	}

	best := seeds[0]
	bestScore := eval(best)
	for _, c := range seeds[1:] {
		sc := eval(c)
		if sc < bestScore {
			bestScore, best = sc, c
		}
	}

	if p.DiaSize < 0 {
		return s.sabDiamond(p, best, bestScore, eval)
	}
	return s.diamond(best, bestScore, p.DiaSize, eval)
}

// diamond runs the standard adaptive diamond refinement: at each
// radius it tests the four axis-aligned neighbours of the current
// best vector, moving to any improvement and retrying at the same
// radius; when no neighbour improves, the radius is halved.
func (s *SliceState) diamond(best Vector, bestScore, dia int, eval func(Vector) int) (Vector, int) {
	if dia <= 0 {
		dia = 1
	}
	for step := dia; step >= 1; step /= 2 {
		for {
			improved := false
			for _, d := range [4][2]int{{step, 0}, {-step, 0}, {0, step}, {0, -step}} {
				cand := Vector{best.X + d[0], best.Y + d[1]}
				sc := eval(cand)
				if sc < bestScore {
					bestScore, best, improved = sc, cand, true
				}
			}
			if !improved {
				break
			}
		}
	}
	return best, bestScore
}

// Minima is a candidate entry in the SAB-diamond priority heap,
// ordered by height (its score): spec 4.3, "maintains a bounded
// priority heap of the best candidates sorted by Minima.height".
type Minima struct {
	MV     Vector
	Height int
}

type minimaHeap []Minima

func (h minimaHeap) Len() int            { return len(h) }
func (h minimaHeap) Less(i, j int) bool  { return h[i].Height < h[j].Height }
func (h minimaHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minimaHeap) Push(x interface{}) { *h = append(*h, x.(Minima)) }
func (h *minimaHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// sabDiamond runs the shape-adaptive diamond variant selected by a
// negative dia_size: a bounded best-first search over unit 4-neighbour
// expansions, capped at |dia_size| live candidates (spec 4.3).
func (s *SliceState) sabDiamond(p EPZSParams, best Vector, bestScore int, eval func(Vector) int) (Vector, int) {
	limit := -p.DiaSize
	if limit <= 0 {
		limit = 1
	}
	h := &minimaHeap{{best, bestScore}}
	heap.Init(h)

	const maxIter = 4 * MEMapSize
	for iter := 0; h.Len() > 0 && iter < maxIter; iter++ {
		top := heap.Pop(h).(Minima)
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			cand := Vector{top.MV.X + d[0], top.MV.Y + d[1]}
			sc := eval(cand)
			if sc < bestScore {
				bestScore, best = sc, cand
			}
			heap.Push(h, Minima{cand, sc})
			if h.Len() > limit {
				worst := 0
				for i := range *h {
					if (*h)[i].Height > (*h)[worst].Height {
						worst = i
					}
				}
				heap.Remove(h, worst)
			}
		}
	}
	return best, bestScore
}

// epzsEvaluate scores a full-pel candidate, consulting and updating
// the visited-score map so a vector is never re-scored within the
// current generation (spec 3.1 invariant 3).
func (s *SliceState) epzsEvaluate(p EPZSParams, mv Vector) int {
	if score, ok := s.scoreMap.Lookup(mv.X, mv.Y); ok {
		return score
	}
	if !s.inBounds(mv.X, mv.Y) {
		s.scoreMap.Store(mv.X, mv.Y, impossibleSAD)
		return impossibleSAD
	}
	cost := s.Compare(p.Window, mv.X, mv.Y, 0, 0, p.Size, p.H, p.CmpFn, p.ChromaCmpFn, p.Flags)
	cost += mvBitCost(s.CurrentMVPenalty, mv.X, mv.Y, s.PredX, s.PredY, p.PenaltyFactor)
	s.scoreMap.Store(mv.X, mv.Y, cost)
	return cost
}

// EPZSSearch2 is the 8x8-block form used by four-vector partition
// search (h263_mv4_search): it reuses the full engine at block height
// 8 and a halved diamond radius limit (spec 4.3).
func (s *SliceState) EPZSSearch2(p EPZSParams) (Vector, int) {
	p.H = 8
	if p.DiaSize > 1 {
		p.DiaSize /= 2
	} else if p.DiaSize < -1 {
		p.DiaSize /= 2
	}
	return s.EPZSSearch(p)
}
