/*
NAME
  kernels.go

DESCRIPTION
  kernels.go defines the injected kernel palette: pixel interpolation
  and block comparison function tables supplied by the caller at
  construction time. Pixel interpolation and block comparison are
  explicitly out of scope for this package (spec 1, 6.1); the palette
  is a struct of fixed arrays of function values indexed by small
  integers, in preference to dynamic dispatch (spec 9).

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

// HalfPelFunc performs a half-pel put or avg interpolation of a h-row
// block from src into dst, both addressed with the given stride.
type HalfPelFunc func(dst, src []byte, stride, h int)

// QuarterPelFunc performs a quarter-pel put or avg interpolation. The
// block height is implicit in the size index used to select the
// function (spec 6.1).
type QuarterPelFunc func(dst, src []byte, stride int)

// CmpFunc scores a prediction "b" against the source block "a", both
// h rows of the given stride. Lower is better.
type CmpFunc func(a, b []byte, stride, h int) int

// PixAbsFunc is a specialised SAD-only compare, used by the fast
// half-pel path (spec 4.4).
type PixAbsFunc func(src, ref []byte, stride, h int) int

// SumFunc computes a scalar reduction (sum, or sum of squares) over a
// 16x16 block at the given stride.
type SumFunc func(src []byte, stride int) int

// SSEFunc computes sum-of-squared-errors between two h-row blocks.
type SSEFunc func(a, b []byte, stride, h int) int

// Kernels is the caller-supplied table of pixel interpolation and
// comparison kernels. All arrays are indexed exactly as described in
// spec 6.1:
//
//	size index: 0 = luma 16x16/8x8, 1 = chroma 8x8/4x4, 2 = chroma-alt
//	hpel phase: (x&1) | (y&1)<<1        -> [0,4)
//	qpel phase: (x&3) | (y&3)<<2        -> [0,16)
//
// me_cmp / me_sub_cmp / mb_cmp / me_pre_cmp are each a triple indexed
// the same way as size above.
type Kernels struct {
	HpelPut [3][4]HalfPelFunc
	HpelAvg [3][4]HalfPelFunc
	QpelPut [2][16]QuarterPelFunc
	QpelAvg [2][16]QuarterPelFunc

	MeCmp    [3]CmpFunc
	MeSubCmp [3]CmpFunc
	MbCmp    [3]CmpFunc
	MePreCmp [3]CmpFunc

	// PixAbs holds specialised full/half-pel SAD kernels indexed
	// [size][phase] for size in {0,1} (16x16/8x8) and phase in [0,4).
	PixAbs [2][4]PixAbsFunc

	SSE      SSEFunc
	PixSum   SumFunc
	PixNorm1 SumFunc
}

// MidPred returns the median of three values, matching the injected
// mid_pred utility of spec 6.1.
func MidPred(a, b, c int) int {
	if a > b {
		if c > b {
			if c > a {
				return a
			}
			return c
		}
		return b
	}
	if c > a {
		if c > b {
			return b
		}
		return c
	}
	return a
}

// IntSqrt returns floor(sqrt(x)) for x >= 0, matching the injected
// integer sqrt utility of spec 6.1.
func IntSqrt(x int) int {
	if x <= 0 {
		return 0
	}
	r := 0
	bit := 1 << 30
	for bit > x {
		bit >>= 2
	}
	for bit != 0 {
		if x >= r+bit {
			x -= r + bit
			r = (r >> 1) + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return r
}

// h263ChromaRoundTab rounds the low 4 bits of a summed luma vector
// component down to the nearest chroma half-pel step, per the H.263
// chroma rounding table (spec 6.1).
var h263ChromaRoundTab = [16]int{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1}

// H263RoundChroma implements the H.263 chroma-rounding table used to
// derive a chroma motion vector component from a sum of luma
// components (spec 6.1).
func H263RoundChroma(sum int) int {
	if sum >= 0 {
		return (sum >> 4) + h263ChromaRoundTab[sum&15]
	}
	return -H263RoundChroma(-sum)
}
