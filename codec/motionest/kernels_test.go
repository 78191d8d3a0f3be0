package motionest

import "testing"

func TestMidPred(t *testing.T) {
	cases := []struct{ a, b, c, want int }{
		{1, 2, 3, 2},
		{3, 2, 1, 2},
		{2, 1, 3, 2},
		{5, 5, 5, 5},
		{-1, 0, 1, 0},
	}
	for _, c := range cases {
		if got := MidPred(c.a, c.b, c.c); got != c.want {
			t.Errorf("MidPred(%d,%d,%d) = %d, want %d", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestNewRejectsMissingRequiredKernels(t *testing.T) {
	var k Kernels // all nil
	if _, err := New(k, (*testLogger)(t)); err != errEmptyKernels {
		t.Errorf("New with an empty kernel palette err = %v, want errEmptyKernels", err)
	}
}

func TestNewAcceptsFullPalette(t *testing.T) {
	if _, err := New(testKernels(), (*testLogger)(t)); err != nil {
		t.Errorf("New with a complete kernel palette err = %v, want nil", err)
	}
}

func TestNewPropagatesOptionError(t *testing.T) {
	_, err := New(testKernels(), (*testLogger)(t), WithDiaSize(MEMapSize+1, 0))
	if err != errDiaSizeRange {
		t.Errorf("New with an invalid option err = %v, want errDiaSizeRange", err)
	}
}
