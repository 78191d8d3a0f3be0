/*
NAME
  costmodel.go

DESCRIPTION
  costmodel.go implements the cost model of spec 4.1: deriving a
  penalty factor from a (lambda, lambda2, comparison selector) triple,
  and computing the bit-cost estimate of a motion vector relative to a
  predictor via the injected mv_penalty table.

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

// penaltyFactor maps (lambda, lambda2, cmp) to a penalty factor per
// the table in spec 4.1.
func penaltyFactor(lambda, lambda2 int, cmp CmpSelector) int {
	switch cmp.family() {
	case CmpDCT:
		return (3 * lambda) >> (LambdaShift + 1)
	case CmpW53:
		return (4 * lambda) >> LambdaShift
	case CmpW97:
		return (2 * lambda) >> LambdaShift
	case CmpSATD, CmpDCT264:
		return (2 * lambda) >> LambdaShift
	case CmpRD, CmpPSNR, CmpSSE, CmpNSSE:
		return lambda2 >> LambdaShift
	case CmpBit, CmpMedianSAD:
		return 1
	case CmpSAD:
		fallthrough
	default:
		return lambda >> LambdaShift
	}
}

// mvBitCost returns the bit-cost estimate of (mx,my) relative to
// (px,py), using the mv_penalty table and the given stage penalty
// factor (spec 4.1). mvPenalty is indexed by residual+MaxDMV, since a
// Go slice can't represent the negative-offset pointer view a real
// encoder uses here.
func mvBitCost(mvPenalty []int, mx, my, px, py, penaltyFactor int) int {
	return (mvPenalty[mx-px+MaxDMV] + mvPenalty[my-py+MaxDMV]) * penaltyFactor
}
