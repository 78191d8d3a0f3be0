/*
NAME
  mode_p.go

DESCRIPTION
  mode_p.go implements the two P-frame mode searchers of spec 4.5:
  pre_estimate_p_frame_motion, the coarse rate-control pre-pass, and
  estimate_p_frame_motion, the main per-macroblock driver that
  combines variance statistics, EPZS, sub-pel refinement, four-vector
  partition search and interlaced field search into the candidate
  macroblock-type bitmask of spec 6.3.

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

// PreEstimateFrameMotion implements spec 4.5's
// pre_estimate_p_frame_motion: a coarse pre-pass using only the
// left/top/top-right predictors, EPZS with no sub-pel refinement,
// writing mx<<shift, my<<shift into p_mv_table. Returns the full-pel
// score, consumed by rate control.
func (s *SliceState) PreEstimateFrameMotion(t *PictureTables, mbX, mbY int, w Window, cmpFn CmpFunc) int {
	shift := 1
	if s.ctx.QuarterSample {
		shift = 2
	}

	left, top, topRight, median := t.SpatialPredictors(mbX, mbY, s.Limits.XMax, s.Limits.YMax, 0)
	var preds [numPredictors]Vector
	preds[PLeft], preds[PTop], preds[PTopRight], preds[PMedian] = left, top, topRight, median

	s.PredX, s.PredY = left.X, left.Y
	params := EPZSParams{
		Predictors:    preds,
		Window:        w,
		Size:          0,
		H:             16,
		CmpFn:         cmpFn,
		PenaltyFactor: s.PrePenaltyFactor,
		DiaSize:       s.ctx.PreDiaSize,
	}
	mv, score := s.EPZSSearch(params)

	xy := t.MBIndex(mbX, mbY)
	t.PMVTable[xy] = Vector{mv.X << shift, mv.Y << shift}
	return score
}

// PFrameInput bundles a single estimate_p_frame_motion invocation.
type PFrameInput struct {
	MBX, MBY int
	Window   Window
	TemporalMV Vector // scaled co-located vector from the prior committed table
	QScale     int

	CmpFn, SubCmpFn, MBCmpFn, ChromaCmpFn CmpFunc
	PixAbs PixAbsFunc

	MV4 *MV4SearchInput
	Interlaced *InterlacedSearchInput
}

// EstimateFrameMotion implements spec 4.5's estimate_p_frame_motion.
func (s *SliceState) EstimateFrameMotion(t *PictureTables, in PFrameInput) MacroblockType {
	shift := 1
	if s.ctx.QuarterSample {
		shift = 2
	}
	xy := t.MBIndex(in.MBX, in.MBY)

	stats := ComputeLumaStats(s.ctx.Kernels, in.Window.Src, in.Window.Stride)
	t.MBMean[xy] = stats.Mean
	t.MBVar[xy] = stats.Var

	var mv Vector
	var dmin int
	if s.ctx.MotionEst == MotionEstZero {
		dmin = s.Compare(in.Window, 0, 0, 0, 0, 0, 16, in.CmpFn, in.ChromaCmpFn, 0)
	} else {
		left, top, topRight, median := t.SpatialPredictors(in.MBX, in.MBY, s.Limits.XMax, s.Limits.YMax, shift)
		var preds [numPredictors]Vector
		preds[PLeft], preds[PTop], preds[PTopRight], preds[PMedian] = left, top, topRight, median
		preds[PTemporal] = in.TemporalMV

		if s.ctx.Codec == CodecH263 || s.ctx.Codec == CodecMPEG4 {
			s.PredX, s.PredY = median.X, median.Y
		} else {
			s.PredX, s.PredY = left.X, left.Y
		}

		params := EPZSParams{
			Predictors:    preds,
			Window:        in.Window,
			Size:          0,
			H:             16,
			CmpFn:         in.CmpFn,
			ChromaCmpFn:   in.ChromaCmpFn,
			PenaltyFactor: s.PenaltyFactor,
			DiaSize:       s.ctx.DiaSize,
		}
		mv, dmin = s.EPZSSearch(params)
	}

	vard := s.Compare(in.Window, mv.X, mv.Y, 0, 0, 0, 16, CmpFunc(s.ctx.Kernels.SSE), nil, 0)
	t.MCMBVar[xy] = uint16((vard + 128) >> 8)
	s.AccumulateVariance(vard, stats.Varc)

	sp := SubPelParams{
		Window:        in.Window,
		Size:          0,
		H:             16,
		CmpFn:         in.SubCmpFn,
		ChromaCmpFn:   in.ChromaCmpFn,
		PixAbs:        in.PixAbs,
		PenaltyFactor: s.SubPenaltyFactor,
	}
	refine := func() (Vector, int) {
		switch {
		case s.ctx.Codec == CodecH263 && !s.ctx.QuarterSample && in.PixAbs != nil:
			return s.SadHpelMotionSearch(sp, mv.X, mv.Y, dmin)
		case s.ctx.QuarterSample:
			return s.QpelMotionSearch(sp, mv.X, mv.Y, dmin)
		default:
			return s.HpelMotionSearch(sp, mv.X, mv.Y, dmin)
		}
	}

	var mbType MacroblockType

	if s.ctx.MBDecision > DecisionSimple {
		s.SceneChangeScore += SceneChangeDelta(vard, stats.Varc, s.ctx.Lambda2)

		if vard*2+200*256 > stats.Varc {
			mbType |= TypeIntra
		}
		if stats.Varc*2+200*256 > vard || in.QScale > 24 {
			mbType |= TypeInter
			sub, subScore := refine()
			t.PMVTable[xy] = sub
			if s.ctx.MPVFlags&FlagMV0 != 0 && sub != (Vector{}) {
				mbType |= TypeSkipped
			}
			if s.ctx.Flags&Flag4MV != 0 && in.MV4 != nil && stats.Varc > 50<<8 && vard > 10<<8 {
				mv4Score := s.H263MV4Search(t, *in.MV4)
				if mv4Score < subScore {
					mbType |= TypeInter4V
				}
			}
			if s.ctx.Flags&FlagInterlacedME != 0 && in.Interlaced != nil {
				ilScore := s.InterlacedSearch(t, *in.Interlaced)
				if ilScore < subScore {
					mbType |= TypeInterI
				}
			}
		}
		t.MBTypes[xy] = mbType
		return mbType
	}

	// Simple path: always INTER, refined to sub-pel, then 4MV and
	// interlaced are considered as alternatives (spec 4.5 step 6).
	mbType = TypeInter
	sub, subScore := refine()
	bestScore := subScore
	t.PMVTable[xy] = sub

	if s.ctx.Flags&Flag4MV != 0 && in.MV4 != nil {
		if sc := s.H263MV4Search(t, *in.MV4); sc < bestScore {
			bestScore = sc
			mbType = TypeInter4V
		}
	}
	if s.ctx.Flags&FlagInterlacedME != 0 && in.Interlaced != nil {
		if sc := s.InterlacedSearch(t, *in.Interlaced); sc < bestScore {
			bestScore = sc
			mbType = TypeInterI
		}
	}

	var intraScore int
	if in.MBCmpFn != nil && s.ctx.MbCmp.family() == CmpSSE {
		intraScore = stats.Varc - 500
	} else {
		st := in.Window.Stride
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				s.Scratchpad[y*st+x] = stats.Mean
			}
		}
		intraScore = in.MBCmpFn(in.Window.Src, s.Scratchpad, st, 16)
	}
	intraScore += s.MBPenaltyFactor*16 + s.ctx.IntraPenalty

	s.SceneChangeScore += SceneChangeDelta(vard, stats.Varc, s.ctx.Lambda2)

	if intraScore < bestScore {
		mbType = TypeIntra
		t.FinalMBType[xy] = TypeIntra
	}

	t.MBTypes[xy] = mbType
	return mbType
}
