/*
NAME
  mv4.go

DESCRIPTION
  mv4.go implements h263_mv4_search (spec 4.5): four independent 8x8
  sub-searches seeded from the converged 16x16 vector, each refined
  with EPZSSearch2 and a height-8 sub-pel refiner, writing per-block
  results into the picture's motion_val grid. Returns math.MaxInt32
  ("INT_MAX") when every block vector equals the 16x16 input, signalling
  that 4-MV adds nothing (spec 8 property 4).

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

import "math"

// BlockWindow supplies the pixel windows for one 8x8 sub-block of a
// four-vector partition search.
type BlockWindow struct {
	Window Window
}

// MV4SearchInput bundles a h263_mv4_search invocation. PicWidth/PicHeight
// are the picture's true pixel dimensions (not rounded up to a multiple
// of 16), needed only to drive the unrestricted_mv safety-clipping path
// below for a picture edge that isn't 16-aligned.
type MV4SearchInput struct {
	MBX, MBY int
	MV16     Vector // the converged 16x16 vector, in the table's scale
	Blocks   [4]BlockWindow
	CmpFn, ChromaCmpFn, MBCmpFn CmpFunc
	PixAbs   PixAbsFunc
	Shift    int // 1+quarter_sample (spec invariant 1)

	PicWidth, PicHeight int
}

// H263MV4Search implements spec 4.5's h263_mv4_search.
func (s *SliceState) H263MV4Search(t *PictureTables, in MV4SearchInput) int {
	allEqual := true
	total := 0
	mbX, mbY := in.MBX, in.MBY

	savedLimits := s.Limits
	for block := 0; block < 4; block++ {
		bx := mbX*2 + block%2
		by := mbY*2 + block/2

		p := s.mv4Predictors(t, mbX, mbY, bx, by, in.MV16)

		s.Limits = s.safetyClipping(savedLimits, bx, by, in.PicWidth, in.PicHeight)

		params := EPZSParams{
			Predictors:    p,
			Window:        in.Blocks[block].Window,
			Size:          1,
			H:             8,
			CmpFn:         in.CmpFn,
			ChromaCmpFn:   in.ChromaCmpFn,
			Flags:         0,
			PenaltyFactor: s.SubPenaltyFactor,
			DiaSize:       s.ctx.DiaSize,
		}
		mv, score := s.EPZSSearch2(params)

		sp := SubPelParams{
			Window:        in.Blocks[block].Window,
			Size:          1,
			H:             8,
			CmpFn:         in.CmpFn,
			ChromaCmpFn:   in.ChromaCmpFn,
			PixAbs:        in.PixAbs,
			PenaltyFactor: s.SubPenaltyFactor,
		}
		var refined Vector
		var refinedScore int
		if s.ctx.QuarterSample {
			refined, refinedScore = s.QpelMotionSearch(sp, mv.X, mv.Y, score)
		} else {
			refined, refinedScore = s.HpelMotionSearch(sp, mv.X, mv.Y, score)
		}

		if in.MBCmpFn != nil {
			total += mvBitCost(s.CurrentMVPenalty, refined.X, refined.Y, in.MV16.X, in.MV16.Y, s.MBPenaltyFactor)
		} else {
			total += refinedScore
		}

		t.MotionVal[t.B8Index(bx, by)] = refined
		if refined != in.MV16 {
			allEqual = false
		}
	}
	s.Limits = savedLimits

	if allEqual {
		return math.MaxInt32
	}

	if s.ctx.MbCmp != CmpRD {
		total += 11 * s.MBPenaltyFactor
	}
	s.PredX, s.PredY = in.MV16.X, in.MV16.Y
	return total
}

// safetyClipping implements spec 4.5/9's unrestricted_mv safety-clipping
// path: when the picture's pixel width or height is not a multiple of
// 16, the macroblocks on the right/bottom edge only cover the picture
// partially, so an 8x8 block whose zero-displacement position already
// sits past the true picture edge must have its positive xmax/ymax
// tightened by the same amount, or the padded-reference compare would
// wrap a full macroblock past where unrestricted_mv's +-16px padding
// extent actually ends. bx/by are the block's position on the
// B8Stride (8x8) grid.
func (s *SliceState) safetyClipping(base Rect, bx, by, picWidth, picHeight int) Rect {
	if !s.ctx.UnrestrictedMV {
		return base
	}
	lim := base
	if picWidth%16 != 0 {
		over := (bx+1)*8 - picWidth
		if over > 0 && lim.XMax > 16-over {
			lim.XMax = 16 - over
		}
	}
	if picHeight%16 != 0 {
		over := (by+1)*8 - picHeight
		if over > 0 && lim.YMax > 16-over {
			lim.YMax = 16 - over
		}
	}
	return lim
}

// mv4Predictors builds the per-8x8-block predictor set from the
// current 16x16 result and the already-written neighbours on the
// motion_val grid (spec 4.5).
func (s *SliceState) mv4Predictors(t *PictureTables, mbX, mbY, bx, by int, mv16 Vector) [numPredictors]Vector {
	var p [numPredictors]Vector
	p[PMV1] = mv16
	if bx > 0 {
		p[PLeft] = t.MotionVal[t.B8Index(bx-1, by)]
	} else {
		p[PLeft] = mv16
	}
	if by > mbY*2 {
		p[PTop] = t.MotionVal[t.B8Index(bx, by-1)]
	} else if mbY > 0 {
		p[PTop] = t.MotionVal[t.B8Index(bx, by-1)]
	} else {
		p[PTop] = mv16
	}
	p[PTopRight] = p[PTop]
	p[PMedian] = Vector{
		X: MidPred(p[PLeft].X, p[PTop].X, p[PMV1].X),
		Y: MidPred(p[PLeft].Y, p[PTop].Y, p[PMV1].Y),
	}
	return p
}
