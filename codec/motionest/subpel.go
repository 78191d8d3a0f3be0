/*
NAME
  subpel.go

DESCRIPTION
  subpel.go implements the sub-pel refiners of spec 4.4: the no-op
  refiner used where the target codec lacks sub-pel precision, a
  general half-pel diamond refiner, a SAD-only fast half-pel path that
  exploits neighbour scores already present in the visited-score map,
  and a quarter-pel refiner that runs the half-pel refiner first.

  Contract (spec 4.4): given a full-pel optimum (mx,my) and its score
  dmin, return the best sub-pel vector, scaled to 1/2 or 1/4-pel units,
  and its score. If Skip is set, or the optimum sits on the search
  window boundary, the vector is returned unchanged (scaled, not
  refined).

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

// SubPelParams bundles the inputs shared by every sub-pel refiner.
type SubPelParams struct {
	Window      Window
	Size        int
	H           int
	CmpFn       CmpFunc
	ChromaCmpFn CmpFunc
	Flags       CompareFlags
	PixAbs      PixAbsFunc
	PenaltyFactor int
}

// atBoundary reports whether (mx,my) sits on the edge of the current
// search window, in which case sub-pel refiners return the unrefined,
// scaled vector (spec 4.4).
func (s *SliceState) atBoundary(mx, my int) bool {
	return mx == s.Limits.XMin || mx == s.Limits.XMax || my == s.Limits.YMin || my == s.Limits.YMax
}

// NoSubMotionSearch is used for codecs without sub-pel precision
// (H.261): it always returns the full-pel vector scaled to half-pel
// units (spec 4.4 #1).
func (s *SliceState) NoSubMotionSearch(mx, my, dmin int) (Vector, int) {
	return Vector{mx << 1, my << 1}, dmin
}

// halfPelSplit decomposes a half-pel coordinate into a full-pel part
// and a 0/1 sub-pel bit. Go's arithmetic right shift on signed ints is
// floor division, so negative coordinates split consistently.
func halfPelSplit(v int) (full, sub int) {
	full = v >> 1
	sub = v - full<<1
	return full, sub
}

// subpelEvaluate scores a half-pel candidate (hx,hy), in half-pel
// units, against the source.
func (s *SliceState) subpelEvaluate(p SubPelParams, hx, hy int) int {
	fx, subx := halfPelSplit(hx)
	fy, suby := halfPelSplit(hy)
	cost := s.Compare(p.Window, fx, fy, subx, suby, p.Size, p.H, p.CmpFn, p.ChromaCmpFn, p.Flags)
	cost += mvBitCost(s.CurrentMVPenalty, hx, hy, s.PredX, s.PredY, p.PenaltyFactor)
	return cost
}

// unitSteps8 are the 8 half-pel (or quarter-pel) unit neighbours of a
// point, in clockwise order starting from directly above.
var unitSteps8 = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// HpelMotionSearch is the general 8-point half-pel diamond refiner
// (spec 4.4 #2): it evaluates all 8 half-pel neighbours of the
// full-pel optimum using the full compare function.
func (s *SliceState) HpelMotionSearch(p SubPelParams, mx, my, dmin int) (Vector, int) {
	if s.Skip || s.atBoundary(mx, my) {
		return Vector{mx << 1, my << 1}, dmin
	}
	centre := Vector{mx << 1, my << 1}
	best := centre
	bestScore := dmin
	for _, d := range unitSteps8 {
		hx, hy := centre.X+d[0], centre.Y+d[1]
		sc := s.subpelEvaluate(p, hx, hy)
		if sc < bestScore {
			bestScore, best = sc, Vector{hx, hy}
		}
	}
	return best, bestScore
}

// sadNeighbours holds the four full-pel SAD scores around the optimum
// used by the fast half-pel path.
type sadNeighbours struct {
	top, bottom, left, right int
	haveTop, haveBottom, haveLeft, haveRight bool
}

// readSADNeighbours looks up the full-pel scores immediately
// surrounding (mx,my) in the visited-score map, as left by the EPZS
// search that produced this optimum (spec 4.4 #3).
func (s *SliceState) readSADNeighbours(mx, my int) sadNeighbours {
	var n sadNeighbours
	n.top, n.haveTop = s.scoreMap.Lookup(mx, my-1)
	n.bottom, n.haveBottom = s.scoreMap.Lookup(mx, my+1)
	n.left, n.haveLeft = s.scoreMap.Lookup(mx-1, my)
	n.right, n.haveRight = s.scoreMap.Lookup(mx+1, my)
	return n
}

// candidateSubset picks which of the 8 half-pel unit steps are worth
// testing given the ordering of neighbouring full-pel scores (spec 4.4
// #3: "t<=b, l<=r, t+r vs b+l, ..."). When neighbour information is
// incomplete it conservatively tests all 8.
func candidateSubset(n sadNeighbours) [][2]int {
	if !(n.haveTop && n.haveBottom && n.haveLeft && n.haveRight) {
		return unitSteps8[:]
	}
	var dy int
	if n.top <= n.bottom {
		dy = -1
	} else {
		dy = 1
	}
	var dx int
	if n.left <= n.right {
		dx = -1
	} else {
		dx = 1
	}
	cands := [][2]int{{0, dy}, {dx, 0}, {dx, dy}}
	if n.top+n.right < n.bottom+n.left {
		cands = append(cands, [2]int{1, -1})
	} else {
		cands = append(cands, [2]int{-1, 1})
	}
	return cands
}

// SadHpelMotionSearch is the SAD-only fast half-pel path of spec 4.4
// #3: it exploits the full-pel neighbour scores already present in
// the visited-score map to pick 3-4 of the 8 half-pel candidates,
// evaluated with the specialised pix_abs kernel rather than the full
// compare function. It must only be selected when sub_flags == 0
// (spec 9: "asserts sub_flags == 0").
func (s *SliceState) SadHpelMotionSearch(p SubPelParams, mx, my, dmin int) (Vector, int) {
	if p.Flags != 0 {
		panic("motionest: SadHpelMotionSearch requires sub_flags == 0")
	}
	if s.Skip || s.atBoundary(mx, my) {
		return Vector{mx << 1, my << 1}, dmin
	}
	n := s.readSADNeighbours(mx, my)
	centre := Vector{mx << 1, my << 1}
	best := centre
	bestScore := dmin
	for _, d := range candidateSubset(n) {
		hx, hy := centre.X+d[0], centre.Y+d[1]
		cost := s.checkSADHalfMV(p, hx, hy)
		if cost < bestScore {
			bestScore, best = cost, Vector{hx, hy}
		}
	}
	return best, bestScore
}

// checkSADHalfMV implements CHECK_SAD_HALF_MV (spec 4.4 #3): it
// interpolates the half-pel candidate into a scratch buffer, scores it
// with the size-specialised SAD kernel, and adds the mv_penalty-biased
// predictor cost.
func (s *SliceState) checkSADHalfMV(p SubPelParams, hx, hy int) int {
	fx, subx := halfPelSplit(hx)
	fy, suby := halfPelSplit(hy)
	phase := subx | suby<<1
	ref := refAt(p.Window.Ref, p.Window.Stride, fx, fy)
	if phase != 0 {
		temp := s.Temp[:p.H*p.Window.Stride]
		s.ctx.Kernels.HpelPut[p.Size][phase](temp, ref, p.Window.Stride, p.H)
		ref = temp
	}
	sc := p.PixAbs(p.Window.Src, ref, p.Window.Stride, p.H)
	return sc + mvBitCost(s.CurrentMVPenalty, hx, hy, s.PredX, s.PredY, p.PenaltyFactor)
}

// QpelMotionSearch refines a half-pel optimum to quarter-pel
// precision: it first runs the half-pel diamond, then tests the 8
// quarter-pel unit neighbours of the result (spec 4.4 #4).
func (s *SliceState) QpelMotionSearch(p SubPelParams, mx, my, dmin int) (Vector, int) {
	hBest, hScore := s.HpelMotionSearch(p, mx, my, dmin)
	if s.Skip || s.atBoundary(mx, my) {
		return Vector{hBest.X << 1, hBest.Y << 1}, hScore
	}
	qp := p
	qp.Flags |= FlagQPelCmp
	centre := Vector{hBest.X << 1, hBest.Y << 1}
	best := centre
	bestScore := hScore
	for _, d := range unitSteps8 {
		qx, qy := centre.X+d[0], centre.Y+d[1]
		fx := qx >> 2
		fy := qy >> 2
		subx := qx & 3
		suby := qy & 3
		cost := s.Compare(p.Window, fx, fy, subx, suby, p.Size, p.H, p.CmpFn, p.ChromaCmpFn, qp.Flags)
		cost += mvBitCost(s.CurrentMVPenalty, qx, qy, s.PredX, s.PredY, p.PenaltyFactor)
		if cost < bestScore {
			bestScore, best = cost, Vector{qx, qy}
		}
	}
	return best, bestScore
}
