/*
NAME
  stats.go

DESCRIPTION
  stats.go implements the per-macroblock luminance statistics and
  scene-change heuristic of spec 3.1/3.2/4.5, and the end-of-pass
  aggregate reporting used to feed rate control. Per-macroblock
  variance/mean accumulation follows the exact integer formula of spec
  4.5 step 2; the end-of-pass aggregate report uses gonum/stat, the
  numerics library already declared by this module's dependency stack,
  rather than a hand-rolled reduction.

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

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LumaStats holds the per-macroblock sum-derived statistics computed
// at the start of estimate_p_frame_motion (spec 4.5 step 2).
type LumaStats struct {
	Mean uint8
	Var  uint16
	Varc int
}

// ComputeLumaStats derives mb_mean/mb_var from a 16x16 luma block's
// sum and sum-of-squares, via the injected PixSum/PixNorm1 kernels
// (spec 4.5 step 2): varc = pix_norm1 - (sum*sum>>8) + 500, a small
// offset that keeps the ratio used by downstream thresholds stable
// near zero variance.
func ComputeLumaStats(k Kernels, src []byte, stride int) LumaStats {
	sum := k.PixSum(src, stride)
	varc := k.PixNorm1(src, stride) - ((sum * sum) >> 8) + 500
	return LumaStats{
		Mean: uint8((sum + 128) >> 8),
		Var:  uint16((varc + 128) >> 8),
		Varc: varc,
	}
}

// AccumulateVariance folds a macroblock's variance contribution into
// the running pass accumulators per spec invariant 4:
// mc_mb_var_sum_temp += (vard+128)>>8 and mb_var_sum_temp += (varc+128)>>8.
func (s *SliceState) AccumulateVariance(vard, varc int) {
	s.MCMBVarSumTemp += (vard + 128) >> 8
	s.MBVarSumTemp += (varc + 128) >> 8
}

// SceneChangeDelta computes the per-macroblock scene-change
// contribution of spec 4.5 step 5 (high-quality path): the square root
// of the motion-compensated variance, capped at varc-500 plus a
// lambda2-derived term, minus the square root of varc-500 plus a
// smaller lambda2-derived term.
func SceneChangeDelta(vard, varc, lambda2 int) int {
	const fflambdaShift = 14 // FF_LAMBDA-equivalent scale for the lambda2*K/FF_LAMBDA terms
	hi := varc - 500 + (lambda2*100)>>fflambdaShift
	lo := varc - 500 + (lambda2*20)>>fflambdaShift
	return IntSqrt(minInt(vard, hi)) - IntSqrt(lo)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// PassVarianceReport summarises a completed pass's variance
// accumulators for rate control, computed with gonum/stat rather than
// a hand-rolled mean/variance reduction.
type PassVarianceReport struct {
	MeanMBVar   float64
	MeanMCMBVar float64
	Ratio       float64
}

// ReportPassVariance builds a PassVarianceReport from the final
// per-macroblock variance tables of a completed pass (spec 8 property
// 8: the accumulators equal the sum of the per-MB tables).
func ReportPassVariance(t *PictureTables) PassVarianceReport {
	mbVar := make([]float64, len(t.MBVar))
	mcVar := make([]float64, len(t.MCMBVar))
	for i := range t.MBVar {
		mbVar[i] = float64(t.MBVar[i])
		mcVar[i] = float64(t.MCMBVar[i])
	}
	meanVar := stat.Mean(mbVar, nil)
	meanMC := stat.Mean(mcVar, nil)
	ratio := 0.0
	if meanVar != 0 {
		// Rounded to four decimal places: the ratio feeds a rate-control
		// threshold comparison, not further arithmetic, so the report
		// need not carry full float64 noise.
		ratio = floats.Round(meanMC/meanVar, 4)
	}
	return PassVarianceReport{MeanMBVar: meanVar, MeanMCMBVar: meanMC, Ratio: ratio}
}
