package motionest

import "testing"

func TestNoSubMotionSearchScales(t *testing.T) {
	s := newTestSliceState(t)
	mv, score := s.NoSubMotionSearch(3, -4, 17)
	if mv.X != 6 || mv.Y != -8 || score != 17 {
		t.Errorf("NoSubMotionSearch(3,-4,17) = (%v,%d), want ((6,-8),17)", mv, score)
	}
}

func TestHpelMotionSearchSkipPassthrough(t *testing.T) {
	s := newTestSliceState(t)
	s.Skip = true
	w := rampWindow(2, 2, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PenaltyFactor: s.SubPenaltyFactor}

	mv, score := s.HpelMotionSearch(p, 2, 2, 123)
	if mv.X != 4 || mv.Y != 4 || score != 123 {
		t.Errorf("HpelMotionSearch under Skip = (%v,%d), want ((4,4),123)", mv, score)
	}
}

func TestHpelMotionSearchBoundaryPassthrough(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(16, 0, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PenaltyFactor: s.SubPenaltyFactor}

	mv, score := s.HpelMotionSearch(p, s.Limits.XMax, 0, 55)
	if mv.X != s.Limits.XMax<<1 || mv.Y != 0 || score != 55 {
		t.Errorf("HpelMotionSearch at the window boundary = (%v,%d), want unrefined passthrough", mv, score)
	}
}

// The synthetic half-pel kernels (helpers_test.go) ignore sub-pel phase
// and copy the truncated full-pel position, so every half-pel candidate
// that floors to the true full-pel optimum ties with it, and every
// candidate that floors elsewhere scores strictly worse on the ramp
// image. The optimum must therefore survive refinement unchanged.
func TestHpelMotionSearchFindsTrueDisplacement(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(3, -2, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PenaltyFactor: s.SubPenaltyFactor}

	mv, score := s.HpelMotionSearch(p, 3, -2, 0)
	if mv.X != 6 || mv.Y != -4 || score != 0 {
		t.Errorf("HpelMotionSearch(3,-2,0) = (%v,%d), want ((6,-4),0)", mv, score)
	}
}

func TestSadHpelMotionSearchPanicsOnNonZeroFlags(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(0, 0, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PixAbs: s.ctx.Kernels.PixAbs[0][0], Flags: FlagQPelCmp}

	defer func() {
		if recover() == nil {
			t.Fatalf("SadHpelMotionSearch with non-zero Flags did not panic")
		}
	}()
	s.SadHpelMotionSearch(p, 0, 0, 0)
}

func TestSadHpelMotionSearchFindsTrueDisplacement(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(4, 1, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PixAbs: s.ctx.Kernels.PixAbs[0][0], PenaltyFactor: s.SubPenaltyFactor}

	// Populate the neighbour scores the fast path reads out of the
	// visited-score map, as EPZSSearch would have left them.
	s.scoreMap.Store(4, 0, 40)
	s.scoreMap.Store(4, 2, 40)
	s.scoreMap.Store(3, 1, 40)
	s.scoreMap.Store(5, 1, 40)

	mv, score := s.SadHpelMotionSearch(p, 4, 1, 0)
	if mv.X != 8 || mv.Y != 2 || score != 0 {
		t.Errorf("SadHpelMotionSearch(4,1,0) = (%v,%d), want ((8,2),0)", mv, score)
	}
}

func TestQpelMotionSearchFindsTrueDisplacement(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(2, 3, 48)
	p := SubPelParams{Window: w, Size: 0, H: 16, CmpFn: s.ctx.Kernels.MeCmp[0], PenaltyFactor: s.SubPenaltyFactor}

	mv, score := s.QpelMotionSearch(p, 2, 3, 0)
	if mv.X != 8 || mv.Y != 12 || score != 0 {
		t.Errorf("QpelMotionSearch(2,3,0) = (%v,%d), want ((8,12),0)", mv, score)
	}
}
