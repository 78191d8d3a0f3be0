/*
NAME
  interlaced.go

DESCRIPTION
  interlaced.go implements interlaced_search (spec 4.5): for each of
  the macroblock's two 16x8 field halves, search both reference fields
  (top and bottom) with doubled stride and halved vertical limits,
  keeping whichever field-select scores lower. Adds mb_penalty_factor
  for field-select signalling and a +1 tie-break preferring the
  field-select that equals the block index. Returns math.MaxInt32 if
  every chosen vector equals the progressive input (no gain).

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

// FieldWindow is the pixel window for one candidate reference field.
type FieldWindow struct {
	Window Window
}

// InterlacedSearchInput bundles an interlaced_search invocation for
// one macroblock. RefField[block][field] is the window searched for
// the top (block 0) or bottom (block 1) half against each candidate
// field, already addressed with doubled (field) stride; its Src is the
// 16x8 source half and its Ref the reference field. InterlacedSearch
// does not read SrcHalf.
type InterlacedSearchInput struct {
	MBX, MBY      int
	ProgressiveMV Vector
	SrcHalf       [2]Window
	RefField      [2][2]Window
	CmpFn, ChromaCmpFn CmpFunc
}

// InterlacedSearch implements spec 4.5's interlaced_search.
func (s *SliceState) InterlacedSearch(t *PictureTables, in InterlacedSearchInput) int {
	total := 0
	allEqual := true

	halvedLimits := Rect{
		XMin: s.Limits.XMin, XMax: s.Limits.XMax,
		YMin: s.Limits.YMin / 2, YMax: s.Limits.YMax / 2,
	}

	for block := 0; block < 2; block++ {
		savedLimits := s.Limits
		s.Limits = halvedLimits

		var bestMV Vector
		bestScore := math.MaxInt32
		bestField := 0
		for field := 0; field < 2; field++ {
			var p [numPredictors]Vector
			p[PMedian] = Vector{in.ProgressiveMV.X, in.ProgressiveMV.Y / 2}
			params := EPZSParams{
				Predictors:    p,
				Window:        in.RefField[block][field],
				Size:          0,
				H:             8,
				CmpFn:         in.CmpFn,
				ChromaCmpFn:   in.ChromaCmpFn,
				PenaltyFactor: s.PenaltyFactor,
				DiaSize:       s.ctx.DiaSize,
			}
			mv, score := s.EPZSSearch(params)
			score += s.MBPenaltyFactor
			if field != block {
				score++
			}
			if score < bestScore {
				bestScore, bestMV, bestField = score, mv, field
			}
		}

		s.Limits = savedLimits

		t.PFieldMVTable[block][t.MBIndex(in.MBX, in.MBY)*2] = bestMV
		t.PFieldSelectTable[t.MBIndex(in.MBX, in.MBY)] = bestField
		total += bestScore

		if bestMV != (Vector{in.ProgressiveMV.X, in.ProgressiveMV.Y / 2}) {
			allEqual = false
		}
	}

	if allEqual {
		return math.MaxInt32
	}
	return total
}
