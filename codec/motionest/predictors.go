/*
NAME
  predictors.go

DESCRIPTION
  predictors.go derives the spatial and temporal predictors consumed
  by the EPZS searcher (spec 4.3, 4.5): left, top, top-right and
  median-of-three spatial neighbours read from the current picture's
  motion_val grid, and a temporal predictor scaled from a
  previously-committed vector table.

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

// SpatialPredictors reads the left/top/top-right neighbours of
// macroblock (mbX,mbY) from t.MotionVal on the 8x8-block grid and
// derives the median predictor, clamped to the picture's full-pel
// limits shifted to the vector's own scale (spec 4.5 step 3). Missing
// neighbours (picture edge, first slice line) fall back to the zero
// vector, matching a freshly-initialised motion_val grid.
func (t *PictureTables) SpatialPredictors(mbX, mbY, xmax, ymax, shift int) (left, top, topRight, median Vector) {
	bx, by := mbX*2, mbY*2

	if mbX > 0 {
		left = t.MotionVal[t.B8Index(bx-1, by)]
	}
	if mbY > 0 {
		top = t.MotionVal[t.B8Index(bx, by-1)]
		if mbX+1 < t.MBWidth {
			topRight = t.MotionVal[t.B8Index(bx+2, by-1)]
		} else {
			topRight = top
		}
	}

	left = clampVector(left, xmax, ymax, shift)
	top = clampVector(top, xmax, ymax, shift)
	topRight = clampVector(topRight, xmax, ymax, shift)

	median = Vector{
		X: MidPred(left.X, top.X, topRight.X),
		Y: MidPred(left.Y, top.Y, topRight.Y),
	}
	return left, top, topRight, median
}

// clampVector clamps v to +-(xmax,ymax) shifted into v's own scale.
func clampVector(v Vector, xmax, ymax, shift int) Vector {
	lim := func(c, max int) int {
		hi := max << shift
		if c > hi {
			return hi
		}
		if c < -hi {
			return -hi
		}
		return c
	}
	return Vector{lim(v.X, xmax), lim(v.Y, ymax)}
}

// TemporalPredictor scales a previously-committed motion vector by
// mvScale/256 (a fixed-point ratio of picture distances), as used by
// EPZS's temporal predictor (spec 4.3).
func TemporalPredictor(prev Vector, mvScale int) Vector {
	return Vector{(prev.X * mvScale) >> 8, (prev.Y * mvScale) >> 8}
}
