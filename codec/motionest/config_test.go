package motionest

import "testing"

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()
	if c.MeCmp != CmpSAD || c.MeSubCmp != CmpSAD || c.MbCmp != CmpSAD || c.MePreCmp != CmpSAD {
		t.Errorf("DefaultConfig comparison selectors = %+v, want all CmpSAD", c)
	}
	if c.DiaSize != 2 || c.PreDiaSize != 2 {
		t.Errorf("DefaultConfig dia sizes = (%d,%d), want (2,2)", c.DiaSize, c.PreDiaSize)
	}
	if c.FCode != 1 || c.BCode != 1 {
		t.Errorf("DefaultConfig f_codes = (%d,%d), want (1,1)", c.FCode, c.BCode)
	}
	if c.MotionEst != MotionEstEPZS {
		t.Errorf("DefaultConfig MotionEst = %v, want MotionEstEPZS", c.MotionEst)
	}
	if c.Codec != CodecMPEG4 {
		t.Errorf("DefaultConfig Codec = %v, want CodecMPEG4", c.Codec)
	}
}

func TestWithDiaSizeRejectsOversizeDiamond(t *testing.T) {
	c := DefaultConfig()
	if err := WithDiaSize(MEMapSize+1, 0)(&c); err != errDiaSizeRange {
		t.Errorf("WithDiaSize(MEMapSize+1,0) err = %v, want errDiaSizeRange", err)
	}
}

func TestWithDiaSizeRejectsOversizeSAB(t *testing.T) {
	c := DefaultConfig()
	if err := WithDiaSize(-(MaxSABSize+1), 0)(&c); err != errSABSizeRange {
		t.Errorf("WithDiaSize(-(MaxSABSize+1),0) err = %v, want errSABSizeRange", err)
	}
}

func TestWithDiaSizeRejectsOversizePreDia(t *testing.T) {
	c := DefaultConfig()
	if err := WithDiaSize(1, MEMapSize+1)(&c); err != errPreDiaSizeRange {
		t.Errorf("WithDiaSize(1,MEMapSize+1) err = %v, want errPreDiaSizeRange", err)
	}
}

func TestWithDiaSizeAcceptsInRange(t *testing.T) {
	c := DefaultConfig()
	if err := WithDiaSize(-4, 3)(&c); err != nil {
		t.Fatalf("WithDiaSize(-4,3) err = %v, want nil", err)
	}
	if c.DiaSize != -4 || c.PreDiaSize != 3 {
		t.Errorf("DiaSize/PreDiaSize = (%d,%d), want (-4,3)", c.DiaSize, c.PreDiaSize)
	}
}

func TestWithQuarterSampleTogglesFlag(t *testing.T) {
	c := DefaultConfig()
	if err := WithQuarterSample(true)(&c); err != nil {
		t.Fatalf("WithQuarterSample(true) err = %v", err)
	}
	if !c.QuarterSample || c.Flags&FlagQPel == 0 {
		t.Errorf("WithQuarterSample(true) = %+v, want QuarterSample=true and FlagQPel set", c)
	}
	if err := WithQuarterSample(false)(&c); err != nil {
		t.Fatalf("WithQuarterSample(false) err = %v", err)
	}
	if c.QuarterSample || c.Flags&FlagQPel != 0 {
		t.Errorf("WithQuarterSample(false) = %+v, want QuarterSample=false and FlagQPel cleared", c)
	}
}

func TestWithLambdaSetsAllThree(t *testing.T) {
	c := DefaultConfig()
	WithLambda(10, 20, 30)(&c)
	if c.Lambda != 10 || c.Lambda2 != 20 || c.IntraPenalty != 30 {
		t.Errorf("WithLambda = (%d,%d,%d), want (10,20,30)", c.Lambda, c.Lambda2, c.IntraPenalty)
	}
}

func TestAbs(t *testing.T) {
	cases := []struct{ in, want int }{{5, 5}, {-5, 5}, {0, 0}}
	for _, c := range cases {
		if got := abs(c.in); got != c.want {
			t.Errorf("abs(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
