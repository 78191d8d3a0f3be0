/*
NAME
  helpers_test.go

DESCRIPTION
  helpers_test.go provides the shared test fixtures used across this
  package's test files: a testing.T-backed logging.Logger matching
  revid/utils.go's testLogger, a synthetic injected kernel palette
  (SAD/SSE compares, copy/average half-pel interpolation), and a
  deterministic windowed test image whose SAD score is zero only at
  the true displacement, so search convergence can be asserted exactly
  rather than approximately.

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
	"testing"

	"github.com/ausocean/utils/logging"
)

// testLogger allows logging to be done by the testing package, matching
// revid/utils.go's testLogger.
type testLogger testing.T

func (tl *testLogger) Debug(msg string, args ...interface{})   { tl.Log(logging.Debug, msg, args...) }
func (tl *testLogger) Info(msg string, args ...interface{})    { tl.Log(logging.Info, msg, args...) }
func (tl *testLogger) Warning(msg string, args ...interface{}) { tl.Log(logging.Warning, msg, args...) }
func (tl *testLogger) Error(msg string, args ...interface{})   { tl.Log(logging.Error, msg, args...) }
func (tl *testLogger) Fatal(msg string, args ...interface{})   { tl.Log(logging.Fatal, msg, args...) }
func (tl *testLogger) SetLevel(lvl int8)                       {}
func (tl *testLogger) Log(lvl int8, msg string, args ...interface{}) {
	((*testing.T)(tl)).Logf(msg, args...)
}

const testStride = 64

func sadFunc(width int) CmpFunc {
	return func(a, b []byte, stride, h int) int {
		total := 0
		for y := 0; y < h; y++ {
			for x := 0; x < width; x++ {
				d := int(a[y*stride+x]) - int(b[y*stride+x])
				if d < 0 {
					d = -d
				}
				total += d
			}
		}
		return total
	}
}

func sseFunc(width int) SSEFunc {
	return func(a, b []byte, stride, h int) int {
		total := 0
		for y := 0; y < h; y++ {
			for x := 0; x < width; x++ {
				d := int(a[y*stride+x]) - int(b[y*stride+x])
				total += d * d
			}
		}
		return total
	}
}

func copyHalfPel(width int) HalfPelFunc {
	return func(dst, src []byte, stride, h int) {
		for y := 0; y < h; y++ {
			copy(dst[y*stride:y*stride+width], src[y*stride:y*stride+width])
		}
	}
}

func avgHalfPel(width int) HalfPelFunc {
	return func(dst, src []byte, stride, h int) {
		for y := 0; y < h; y++ {
			for x := 0; x < width; x++ {
				idx := y*stride + x
				dst[idx] = byte((int(dst[idx]) + int(src[idx])) / 2)
			}
		}
	}
}

func copyQuarterPel(width, height int) QuarterPelFunc {
	return func(dst, src []byte, stride int) {
		for y := 0; y < height; y++ {
			copy(dst[y*stride:y*stride+width], src[y*stride:y*stride+width])
		}
	}
}

func testKernels() Kernels {
	var k Kernels
	for phase := 0; phase < 4; phase++ {
		k.HpelPut[0][phase] = copyHalfPel(16)
		k.HpelAvg[0][phase] = avgHalfPel(16)
		k.HpelPut[1][phase] = copyHalfPel(8)
		k.HpelAvg[1][phase] = avgHalfPel(8)
	}
	for phase := 0; phase < 16; phase++ {
		k.QpelPut[0][phase] = copyQuarterPel(16, 16)
		k.QpelAvg[0][phase] = copyQuarterPel(16, 16)
		k.QpelPut[1][phase] = copyQuarterPel(8, 8)
		k.QpelAvg[1][phase] = copyQuarterPel(8, 8)
	}
	k.MeCmp[0], k.MeSubCmp[0], k.MbCmp[0], k.MePreCmp[0] = sadFunc(16), sadFunc(16), sadFunc(16), sadFunc(16)
	k.MeCmp[1], k.MeSubCmp[1], k.MbCmp[1], k.MePreCmp[1] = sadFunc(8), sadFunc(8), sadFunc(8), sadFunc(8)
	k.PixAbs[0][0] = PixAbsFunc(sadFunc(16))
	k.PixAbs[1][0] = PixAbsFunc(sadFunc(8))
	k.SSE = sseFunc(16)
	k.PixSum = func(src []byte, stride int) int {
		sum := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				sum += int(src[y*stride+x])
			}
		}
		return sum
	}
	k.PixNorm1 = func(src []byte, stride int) int {
		sum := 0
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				v := int(src[y*stride+x])
				sum += v * v
			}
		}
		return sum
	}
	return k
}

// newTestSliceState builds a Context+SliceState with the synthetic kernel
// palette above, default config and generous full-pel limits.
func newTestSliceState(t *testing.T, opts ...Option) *SliceState {
	t.Helper()
	ctx, err := New(testKernels(), (*testLogger)(t), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := NewSliceState(ctx, testStride, testStride/2)
	s.SetPenaltyFactors()
	s.SetLimits(Rect{XMin: -16, XMax: 16, YMin: -16, YMax: 16}, 4)
	s.InitPicture()
	return s
}

// pixelVal is a saturating paraboloid centred on (8,8), inside the
// macroblock. Unlike a linear ramp, whose SAD is zero along a whole
// line of displacements, it makes the SAD between two 16x16 windows of
// this synthetic image zero only at the true displacement, and the
// diamond searches in these tests converge to it deterministically.
func pixelVal(p, q int) byte {
	v := (p-8)*(p-8)/4 + (q-8)*(q-8)/4
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// testMargin is how many rows/columns of the padded reference buffer
// sit "before" the macroblock's logical (0,0), so that negative
// full-pel displacements (as allowed by Rect.XMin/YMin) still land at
// non-negative flat offsets inside the buffer passed to refAt.
const testMargin = 16

// rampWindow builds a Window whose Ref is a padded plane of
// pixelVal(x,y) (logical (0,0) at the padded buffer's (testMargin,
// testMargin)), and whose Src is a 16x16 block equal to the reference
// plane shifted by (dx,dy) — i.e. the macroblock at the origin truly
// matches the reference at full-pel displacement (dx,dy).
func rampWindow(dx, dy, rows int) Window {
	total := rows + 2*testMargin
	buf := make([]byte, testStride*total)
	for r := 0; r < total; r++ {
		for c := 0; c < testStride; c++ {
			buf[r*testStride+c] = pixelVal(c-testMargin, r-testMargin)
		}
	}
	ref := buf[testMargin*testStride+testMargin:]

	src := make([]byte, testStride*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src[y*testStride+x] = pixelVal(dx+x, dy+y)
		}
	}
	return Window{Src: src, Ref: ref, Stride: testStride}
}
