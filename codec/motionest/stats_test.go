package motionest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeLumaStatsConstantBlock(t *testing.T) {
	k := testKernels()
	src := make([]byte, testStride*16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src[y*testStride+x] = 10
		}
	}

	got := ComputeLumaStats(k, src, testStride)
	if got.Mean != 10 {
		t.Errorf("Mean = %d, want 10", got.Mean)
	}
	if got.Varc != 500 {
		t.Errorf("Varc = %d, want 500", got.Varc)
	}
	if got.Var != 2 {
		t.Errorf("Var = %d, want 2", got.Var)
	}
}

func TestAccumulateVariance(t *testing.T) {
	s := newTestSliceState(t)
	s.AccumulateVariance(255, 127)
	if s.MCMBVarSumTemp != (255+128)>>8 {
		t.Errorf("MCMBVarSumTemp = %d, want %d", s.MCMBVarSumTemp, (255+128)>>8)
	}
	if s.MBVarSumTemp != (127+128)>>8 {
		t.Errorf("MBVarSumTemp = %d, want %d", s.MBVarSumTemp, (127+128)>>8)
	}

	// A second call accumulates rather than overwrites.
	s.AccumulateVariance(255, 127)
	if s.MCMBVarSumTemp != 2*((255+128)>>8) {
		t.Errorf("MCMBVarSumTemp after two calls = %d, want %d", s.MCMBVarSumTemp, 2*((255+128)>>8))
	}
}

func TestSceneChangeDelta(t *testing.T) {
	got := SceneChangeDelta(124, 1000, 0)
	want := IntSqrt(124) - IntSqrt(500)
	if got != want {
		t.Errorf("SceneChangeDelta(124,1000,0) = %d, want %d", got, want)
	}
	if want != -11 {
		t.Fatalf("test arithmetic assumption wrong: IntSqrt(124)-IntSqrt(500) = %d, want -11", want)
	}
}

func TestReportPassVarianceMeansAndRatio(t *testing.T) {
	tbl := NewPictureTables(1, 4)
	for i, v := range []uint16{10, 20, 30, 40} {
		tbl.MBVar[i] = v
		tbl.MCMBVar[i] = v / 2
	}

	report := ReportPassVariance(tbl)
	want := PassVarianceReport{MeanMBVar: 25, MeanMCMBVar: 12.5, Ratio: 0.5}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("ReportPassVariance mismatch (-want +got):\n%s", diff)
	}
}

func TestReportPassVarianceZeroMeanRatio(t *testing.T) {
	tbl := NewPictureTables(1, 2)
	report := ReportPassVariance(tbl)
	if report.Ratio != 0 {
		t.Errorf("Ratio with all-zero MBVar = %v, want 0 (avoid divide by zero)", report.Ratio)
	}
}
