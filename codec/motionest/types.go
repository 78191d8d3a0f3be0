/*
NAME
  types.go

DESCRIPTION
  types.go defines the fixed-size constants, predictor indices and the
  candidate macroblock-type bitmask shared by every file in this
  package. See spec sections 3, 6.3 and 9.

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

// MacroblockType is the disjoint-bit candidate type bitmask written to
// mb_type for every macroblock (spec 6.3). A mode searcher may set more
// than one bit when mb_decision > Simple, leaving the later mode
// decision stage to choose among the bag.
type MacroblockType uint32

// Candidate macroblock type bits. All co-exist in the same mask.
const (
	TypeIntra MacroblockType = 1 << iota
	TypeInter
	TypeInter4V
	TypeSkipped
	TypeDirect
	TypeForward
	TypeBackward
	TypeBidir
	TypeDirect0
	TypeForwardI
	TypeBackwardI
	TypeBidirI
	TypeInterI
)

// CmpSelector identifies a comparison-function family; the low byte
// selects the family, a high bit (CmpChroma) toggles whether 8x8
// chroma SAD is folded into the luma score (spec 4.1, 4.2).
type CmpSelector int

const (
	CmpSAD CmpSelector = iota
	CmpSSE
	CmpSATD
	CmpDCT
	CmpPSNR
	CmpBit
	CmpRD
	CmpZero
	CmpVSAD
	CmpVSSE
	CmpNSSE
	CmpW53
	CmpW97
	CmpDCT264
	CmpMedianSAD
)

// CmpChroma is combined (bitwise OR) with a CmpSelector to request that
// an 8x8 (or, where supported, 4x4) chroma compare is folded into the
// returned score.
const CmpChroma CmpSelector = 1 << 8

// family masks off the chroma bit, returning the base selector.
func (c CmpSelector) family() CmpSelector { return c &^ CmpChroma }

// hasChroma reports whether the chroma bit is set.
func (c CmpSelector) hasChroma() bool { return c&CmpChroma != 0 }

// MotionEstMode selects the overall search strategy (spec 6.4).
type MotionEstMode int

const (
	MotionEstZero MotionEstMode = iota
	MotionEstEPZS
	MotionEstX1
	MotionEstIter
)

// MBDecision selects how aggressively candidate types are bagged
// instead of being resolved immediately (spec 4.5, 4.7).
type MBDecision int

const (
	DecisionSimple MBDecision = iota
	DecisionBits
	DecisionRD
)

// Predictor indices into the P[10][2] candidate array used by the EPZS
// searcher (spec 4.3). Index 0 is reserved for the zero vector.
const (
	PZero = iota
	PLeft
	PTop
	PTopRight
	PMedian
	PMV1
	PTemporal
	numPredictors
)

// MV-type selectors used by the compare function's direct-mode
// derivation (spec 4.2).
const (
	MVType16x16 = iota
	MVType8x8
	MVTypeField
)

// Bit depths and sizing constants for the visited-score map (spec 3.1,
// 9).
const (
	MaxDMV        = 4096
	MEMapShift    = 0
	MEMapMVBits   = 11
	MEMapSize     = 1 << 6
	MaxSABSize    = 32
	LambdaShift   = 7
	impossibleSAD = 256 * 256 * 256 * 32
	directSentinel = 256 * 256 * 256 * 64 - 1
)

// Direction, used by bidirectional and interlaced tables.
type Direction int

const (
	DirForward Direction = iota
	DirBackward
)

// Field identifies the top or bottom field in interlaced search.
type Field int

const (
	FieldTop Field = iota
	FieldBottom
)

// Rect bounds a full-pel search window relative to a macroblock's
// origin: (xmin,xmax,ymin,ymax) are all inclusive full-pel
// displacements (spec 3.1 invariant 2).
type Rect struct {
	XMin, XMax, YMin, YMax int
}

// Vector is a motion vector in the scale implied by the caller (1/2-pel
// when QPel is clear, 1/4-pel when set; see spec invariant 1).
type Vector struct {
	X, Y int
}

// scaled returns the vector left-shifted by shift, converting a
// full-pel vector to half-pel (shift 1) or quarter-pel (shift 2)
// units.
func (v Vector) scaled(shift int) Vector {
	return Vector{v.X << shift, v.Y << shift}
}
