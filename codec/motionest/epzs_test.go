package motionest

import "testing"

func TestEPZSSearchFindsTrueDisplacement(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
	}{
		{"small shift", 4, 0},
		{"diagonal shift", 3, 5},
		{"zero shift", 0, 0},
		{"negative shift", -6, 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newTestSliceState(t)
			w := rampWindow(test.dx, test.dy, 48)

			params := EPZSParams{
				Window:        w,
				Size:          0,
				H:             16,
				CmpFn:         s.ctx.Kernels.MeCmp[0],
				PenaltyFactor: s.PenaltyFactor,
				DiaSize:       s.ctx.DiaSize,
			}
			mv, score := s.EPZSSearch(params)
			if mv.X != test.dx || mv.Y != test.dy {
				t.Errorf("EPZSSearch found (%d,%d), want (%d,%d)", mv.X, mv.Y, test.dx, test.dy)
			}
			if score != 0 {
				t.Errorf("score at the true displacement = %d, want 0", score)
			}
		})
	}
}

// TestEPZSSearchMonotonicImprovement checks spec property: the diamond
// refinement never returns a vector scoring worse than the zero seed.
func TestEPZSSearchMonotonicImprovement(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(7, -4, 48)

	params := EPZSParams{
		Window:        w,
		Size:          0,
		H:             16,
		CmpFn:         s.ctx.Kernels.MeCmp[0],
		PenaltyFactor: s.PenaltyFactor,
		DiaSize:       s.ctx.DiaSize,
	}
	seedScore := s.epzsEvaluate(params, Vector{0, 0})
	_, score := s.EPZSSearch(params)
	if score > seedScore {
		t.Fatalf("EPZSSearch score %d is worse than zero-seed score %d", score, seedScore)
	}
}

func TestEPZSSearchMapIdempotence(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(2, 2, 48)
	params := EPZSParams{
		Window:        w,
		Size:          0,
		H:             16,
		CmpFn:         s.ctx.Kernels.MeCmp[0],
		PenaltyFactor: s.PenaltyFactor,
		DiaSize:       s.ctx.DiaSize,
	}
	first := s.epzsEvaluate(params, Vector{5, -3})
	second := s.epzsEvaluate(params, Vector{5, -3})
	if first != second {
		t.Fatalf("re-evaluating a visited vector changed its score: %d vs %d", first, second)
	}
}

func TestSABDiamondFindsTrueDisplacement(t *testing.T) {
	s := newTestSliceState(t, WithDiaSize(-8, 2))
	w := rampWindow(2, -3, 48)

	params := EPZSParams{
		Window:        w,
		Size:          0,
		H:             16,
		CmpFn:         s.ctx.Kernels.MeCmp[0],
		PenaltyFactor: s.PenaltyFactor,
		DiaSize:       s.ctx.DiaSize,
	}
	mv, score := s.EPZSSearch(params)
	if mv.X != 2 || mv.Y != -3 || score != 0 {
		t.Errorf("sabDiamond found (%d,%d) score %d, want (2,-3) score 0", mv.X, mv.Y, score)
	}
}
