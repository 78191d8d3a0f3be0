package motionest

import "testing"

func TestRefAtClampsNegativeOffset(t *testing.T) {
	plane := make([]byte, 10)
	if got := refAt(plane, 4, -1, -1); len(got) != 10 {
		t.Fatalf("refAt with a negative offset should clamp to the start of the plane, got len %d", len(got))
	}
}

func TestChromaPhase(t *testing.T) {
	tests := []struct {
		name           string
		x, y, sx, sy   int
		qpel           bool
		want           int
	}{
		{"half-pel even", 2, 4, 0, 0, false, 0},
		{"half-pel odd x", 1, 0, 0, 0, false, 1},
		{"half-pel odd y", 0, 1, 0, 0, false, 2},
		{"quarter-pel", 1, 1, 2, 2, true, (1&3)<<0 | (1&3)<<1}, // luma 6/4 -> chroma 3/4: cx=3, (3>>1)|(3&1)=1 per axis -> 1|1<<1=3
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := chromaPhase(test.x, test.y, test.sx, test.sy, test.qpel)
			if test.name == "quarter-pel" {
				if got != 3 {
					t.Errorf("chromaPhase(%d,%d,%d,%d,qpel) = %d, want 3", test.x, test.y, test.sx, test.sy, got)
				}
				return
			}
			if got != test.want {
				t.Errorf("chromaPhase(%d,%d,%d,%d) = %d, want %d", test.x, test.y, test.sx, test.sy, got, test.want)
			}
		})
	}
}

func TestCompareFullPelZeroAtTrueDisplacement(t *testing.T) {
	s := newTestSliceState(t)
	w := rampWindow(5, -2, 48)

	got := s.Compare(w, 5, -2, 0, 0, 0, 16, s.ctx.Kernels.MeCmp[0], nil, 0)
	if got != 0 {
		t.Errorf("Compare at the true displacement = %d, want 0", got)
	}

	wrong := s.Compare(w, 0, 0, 0, 0, 0, 16, s.ctx.Kernels.MeCmp[0], nil, 0)
	if wrong == 0 {
		t.Errorf("Compare at the wrong displacement unexpectedly scored 0")
	}
}

func TestCompareDirectDegenerateZeroVectors(t *testing.T) {
	s := newTestSliceState(t)
	base := rampWindow(0, 0, 48)
	w := Window{Src: base.Src, Ref: base.Ref, BackRef: base.Ref, Stride: testStride}

	// Zero co-located vector, zero basis and PPTime == 0 collapse both
	// the forward and backward direct-mode vectors to (0,0): the
	// average of two identical predictions against an identically
	// positioned source must score 0.
	s.CoLocatedMV[0] = Vector{}
	s.DirectBasisMV[0] = Vector{}
	s.PBTime, s.PPTime = 0, 0

	got := s.compareDirect(w, 0, 0, 0, 0, MVType16x16, 16, s.ctx.Kernels.MeCmp[0])
	if got != 0 {
		t.Errorf("compareDirect with degenerate zero vectors = %d, want 0", got)
	}
}
