/*
NAME
  mode_b.go

DESCRIPTION
  mode_b.go implements the B-frame mode searcher and its collaborators
  from spec 4.5: direct_search (MPEG-4 direct-mode vector derivation),
  bidir_refine (joint forward/backward refinement over a 4-D
  neighbourhood, hash-guarded against re-visiting a displacement), and
  estimate_b_frame_motion, which combines forward-only, backward-only,
  bidirectional and direct scores into the candidate macroblock-type
  bag of spec 6.3/4.7. No interlaced B-frame scores are computed, so
  the *I B-frame types are never set.

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

// DirectSearchInput bundles a direct_search invocation (spec 4.5).
type DirectSearchInput struct {
	Window    Window
	CoLocated [4]Vector
	PBTime, PPTime int
	Size      int // MVType16x16 or MVType8x8
	H         int
	CmpFn     CmpFunc
}

func (s *SliceState) directBlockCount(size int) int {
	if size == MVType16x16 {
		return 1
	}
	return 4
}

// directWindow computes the tight full-pel search window for the delta
// EPZSSearch explores: each sub-block's scaled basis vector must still
// land inside the slice's configured limits once the delta is added,
// so the window is the intersection, over every sub-block, of
// (limits - basis). It reports false if that intersection is empty
// (spec 4.5: "Returns a very large sentinel if the window is empty").
func (s *SliceState) directWindow(in DirectSearchInput) (Rect, bool) {
	shift := 1
	if s.ctx.QuarterSample {
		shift = 2
	}
	n := s.directBlockCount(in.Size)
	win := s.Limits
	for i := 0; i < n; i++ {
		basis := Vector{s.DirectBasisMV[i].X >> shift, s.DirectBasisMV[i].Y >> shift}
		if xmin := s.Limits.XMin - basis.X; xmin > win.XMin {
			win.XMin = xmin
		}
		if xmax := s.Limits.XMax - basis.X; xmax < win.XMax {
			win.XMax = xmax
		}
		if ymin := s.Limits.YMin - basis.Y; ymin > win.YMin {
			win.YMin = ymin
		}
		if ymax := s.Limits.YMax - basis.Y; ymax < win.YMax {
			win.YMax = ymax
		}
	}
	if win.XMin > win.XMax || win.YMin > win.YMax {
		return Rect{}, false
	}
	return win, true
}

// DirectSearch implements spec 4.5's direct_search.
func (s *SliceState) DirectSearch(in DirectSearchInput) (Vector, int) {
	n := s.directBlockCount(in.Size)
	for i := 0; i < n; i++ {
		s.CoLocatedMV[i] = in.CoLocated[i]
		basis := Vector{}
		if in.PPTime != 0 {
			basis = Vector{
				X: in.CoLocated[i].X * in.PBTime / in.PPTime,
				Y: in.CoLocated[i].Y * in.PBTime / in.PPTime,
			}
		}
		s.DirectBasisMV[i] = basis
	}
	s.PBTime, s.PPTime = in.PBTime, in.PPTime

	window, ok := s.directWindow(in)
	if !ok {
		return Vector{}, directSentinel
	}
	saved := s.Limits
	s.Limits = window
	defer func() { s.Limits = saved }()

	params := EPZSParams{
		Window:        in.Window,
		Size:          in.Size,
		H:             in.H,
		CmpFn:         in.CmpFn,
		Flags:         FlagDirect,
		PenaltyFactor: s.PenaltyFactor,
		DiaSize:       s.ctx.DiaSize,
	}
	mv, score := s.EPZSSearch(params)

	sp := SubPelParams{
		Window:        in.Window,
		Size:          in.Size,
		H:             in.H,
		CmpFn:         in.CmpFn,
		Flags:         FlagDirect,
		PenaltyFactor: s.SubPenaltyFactor,
	}
	refined, refinedScore := s.HpelMotionSearch(sp, mv.X, mv.Y, score)
	return refined, refinedScore
}

// BidirInput bundles a bidir_refine / check_bidir_mv invocation (spec
// 4.5). Window.Ref is the forward reference, Window.BackRef the
// backward reference, both positioned at the macroblock origin.
type BidirInput struct {
	Window                 Window
	PredFX, PredFY         int
	PredBX, PredBY         int
	Size, H                int
	CmpFn                  CmpFunc
	Level                  int // bidir_refine, 0..4
}

// CheckBidirMV implements spec 4.5's check_bidir_mv: forward-predict
// with put, backward-predict with avg, score against the source plus
// both vectors' penalties against their own predictors.
func (s *SliceState) CheckBidirMV(in BidirInput, fx, fy, bx, by int) int {
	ffx, fsx := halfPelSplit(fx)
	ffy, fsy := halfPelSplit(fy)
	fdxy := fsx | fsy<<1

	temp := s.Temp[:in.H*in.Window.Stride]
	s.ctx.Kernels.HpelPut[in.Size][fdxy](temp, refAt(in.Window.Ref, in.Window.Stride, ffx, ffy), in.Window.Stride, in.H)

	bfx, bsx := halfPelSplit(bx)
	bfy, bsy := halfPelSplit(by)
	bdxy := bsx | bsy<<1
	s.ctx.Kernels.HpelAvg[in.Size][bdxy](temp, refAt(in.Window.BackRef, in.Window.Stride, bfx, bfy), in.Window.Stride, in.H)

	score := in.CmpFn(in.Window.Src, temp, in.Window.Stride, in.H)
	score += mvBitCost(s.CurrentMVPenalty, fx, fy, in.PredFX, in.PredFY, s.PenaltyFactor)
	score += mvBitCost(s.CurrentMVPenalty, bx, by, in.PredBX, in.PredBY, s.PenaltyFactor)
	return score
}

// bidirHash implements spec 4.5's 8-bit hash H(fx,fy,bx,by) =
// fx + 17*fy + 63*bx + 117*by mod 256, used as a probabilistic
// visited-set guard.
func bidirHash(fx, fy, bx, by int) uint8 {
	return uint8(fx + 17*fy + 63*bx + 117*by)
}

var bidirUnitSteps = [8][4]int{
	{1, 0, 0, 0}, {-1, 0, 0, 0},
	{0, 1, 0, 0}, {0, -1, 0, 0},
	{0, 0, 1, 0}, {0, 0, -1, 0},
	{0, 0, 0, 1}, {0, 0, 0, -1},
}

// bidirTable holds up to 80 signed 4-tuples, ordered from smallest to
// largest L-infinity displacement, excluding the 8 unit steps (spec
// 4.5). It is generated programmatically rather than hand-enumerated:
// the exact tie-break order among equal-radius candidates is not
// required for the bit-exactness this package's non-goals (spec 1)
// explicitly disclaim.
var bidirTable = generateBidirTable(80)

func generateBidirTable(n int) [][4]int {
	type cand struct {
		v     [4]int
		order int
	}
	var cands []cand
	for radius := 1; len(cands) < n; radius++ {
		for fx := -radius; fx <= radius; fx++ {
			for fy := -radius; fy <= radius; fy++ {
				for bx := -radius; bx <= radius; bx++ {
					for by := -radius; by <= radius; by++ {
						linf := maxAbs4(fx, fy, bx, by)
						if linf != radius || abs(fx)+abs(fy)+abs(bx)+abs(by) == 1 {
							continue
						}
						cands = append(cands, cand{[4]int{fx, fy, bx, by}, linf})
					}
				}
			}
		}
		if radius > 4 {
			break
		}
	}
	out := make([][4]int, 0, n)
	for _, c := range cands {
		if len(out) >= n {
			break
		}
		out = append(out, c.v)
	}
	return out
}

func maxAbs4(a, b, c, d int) int {
	m := abs(a)
	if abs(b) > m {
		m = abs(b)
	}
	if abs(c) > m {
		m = abs(c)
	}
	if abs(d) > m {
		m = abs(d)
	}
	return m
}

var bidirLevelLimits = [5]int{0, 8, 32, 64, 80}

// BidirRefine implements spec 4.5's bidir_refine: starting from a
// unidirectional-seeded vector quadruple, it iterates the hash-guarded
// neighbourhood table until a full pass makes no improvement. borderdist
// starts at 0 and is only ever decremented, so every table candidate is
// checked against the sub-pel window; the safe-border radius is not
// re-evaluated after an improvement.
func (s *SliceState) BidirRefine(in BidirInput, fx0, fy0, bx0, by0 int) (fx, fy, bx, by, fbmin int) {
	fx, fy, bx, by = fx0, fy0, bx0, by0
	fbmin = s.CheckBidirMV(in, fx, fy, bx, by)

	var seen [256]bool
	seen[bidirHash(fx, fy, bx, by)] = true

	limit := bidirLevelLimits[clampLevel(in.Level)]
	borderdist := 0

	for {
		end := true

		for _, d := range bidirUnitSteps {
			cfx, cfy, cbx, cby := fx+d[0], fy+d[1], bx+d[2], by+d[3]
			sc := s.CheckBidirMV(in, cfx, cfy, cbx, cby)
			seen[bidirHash(cfx, cfy, cbx, cby)] = true
			if sc < fbmin {
				fbmin, fx, fy, bx, by = sc, cfx, cfy, cbx, cby
				end = false
			}
		}

		for i := 8; i < limit && i-8 < len(bidirTable); i++ {
			d := bidirTable[i-8]
			cfx, cfy, cbx, cby := fx+d[0], fy+d[1], bx+d[2], by+d[3]
			h := bidirHash(cfx, cfy, cbx, cby)
			if seen[h] {
				continue
			}
			if borderdist <= 0 && !s.bidirInBounds(in, cfx, cfy, cbx, cby) {
				continue
			}
			sc := s.CheckBidirMV(in, cfx, cfy, cbx, cby)
			seen[h] = true
			if sc < fbmin {
				fbmin, fx, fy, bx, by = sc, cfx, cfy, cbx, cby
				end = false
				borderdist--
			}
		}

		if end {
			break
		}
	}
	return fx, fy, bx, by, fbmin
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 4 {
		return 4
	}
	return level
}

// bidirInBounds reports whether both the forward and backward
// displacement, combined, stay inside the configured sub-pel window
// (spec 4.5).
func (s *SliceState) bidirInBounds(in BidirInput, fx, fy, bx, by int) bool {
	shift := 1
	xmin, xmax := s.Limits.XMin<<shift, s.Limits.XMax<<shift
	ymin, ymax := s.Limits.YMin<<shift, s.Limits.YMax<<shift
	return fx >= xmin && fx <= xmax && fy >= ymin && fy <= ymax &&
		bx >= xmin && bx <= xmax && by >= ymin && by <= ymax
}

// BFrameInput bundles an estimate_b_frame_motion invocation.
type BFrameInput struct {
	MBX, MBY int

	ForwardWindow, BackwardWindow Window
	BidirWindow                   Window // Ref = forward, BackRef = backward

	ForwardPred, BackwardPred Vector
	TemporalFwd, TemporalBack Vector

	Direct           *DirectSearchInput
	CoLocatedSkipped bool

	CmpFn, SubCmpFn, ChromaCmpFn CmpFunc
	PixAbs                       PixAbsFunc
}

// EstimateBFrameMotion implements spec 4.5's estimate_b_frame_motion.
func (s *SliceState) EstimateBFrameMotion(t *PictureTables, in BFrameInput) MacroblockType {
	xy := t.MBIndex(in.MBX, in.MBY)

	if in.CoLocatedSkipped && s.ctx.Codec == CodecMPEG4 && in.Direct != nil {
		mv, _ := s.DirectSearch(*in.Direct)
		t.BDirectMVTable[xy] = mv
		t.MBTypes[xy] = TypeDirect0
		return TypeDirect0
	}

	search := func(w Window, pred, temporal Vector) (Vector, int) {
		var preds [numPredictors]Vector
		preds[PMedian] = pred
		preds[PTemporal] = temporal
		s.PredX, s.PredY = pred.X, pred.Y
		params := EPZSParams{
			Predictors:    preds,
			Window:        w,
			Size:          0,
			H:             16,
			CmpFn:         in.CmpFn,
			ChromaCmpFn:   in.ChromaCmpFn,
			PenaltyFactor: s.PenaltyFactor,
			DiaSize:       s.ctx.DiaSize,
		}
		mv, score := s.EPZSSearch(params)
		sp := SubPelParams{
			Window:        w,
			Size:          0,
			H:             16,
			CmpFn:         in.SubCmpFn,
			ChromaCmpFn:   in.ChromaCmpFn,
			PixAbs:        in.PixAbs,
			PenaltyFactor: s.SubPenaltyFactor,
		}
		return s.HpelMotionSearch(sp, mv.X, mv.Y, score)
	}

	fmv, fscore := search(in.ForwardWindow, in.ForwardPred, in.TemporalFwd)
	fmin := fscore + 3*s.MBPenaltyFactor

	bmv, bscore := search(in.BackwardWindow, in.BackwardPred, in.TemporalBack)
	bmin := bscore + 2*s.MBPenaltyFactor

	bidirIn := BidirInput{
		Window: in.BidirWindow,
		PredFX: in.ForwardPred.X, PredFY: in.ForwardPred.Y,
		PredBX: in.BackwardPred.X, PredBY: in.BackwardPred.Y,
		Size: 0, H: 16, CmpFn: in.CmpFn, Level: s.ctx.BidirRefine,
	}
	bfx, bfy, bbx, bby, fbscore := s.BidirRefine(bidirIn, fmv.X, fmv.Y, bmv.X, bmv.Y)
	fbmin := fbscore + 1*s.MBPenaltyFactor

	dmin := directSentinel
	var dmv Vector
	if in.Direct != nil {
		dmv, dmin = s.DirectSearch(*in.Direct)
	}

	type candidate struct {
		typ   MacroblockType
		score int
	}
	cands := []candidate{
		{TypeForward, fmin},
		{TypeBackward, bmin},
		{TypeBidir, fbmin},
	}
	if in.Direct != nil {
		cands = append(cands, candidate{TypeDirect, dmin})
	}

	best := cands[0].typ
	bestScore := cands[0].score
	for _, c := range cands[1:] {
		if c.score < bestScore {
			bestScore, best = c.score, c.typ
		}
	}

	t.BForwMVTable[xy] = fmv
	t.BBackMVTable[xy] = bmv
	t.BBidirForwMVTable[xy] = Vector{bfx, bfy}
	t.BBidirBackMVTable[xy] = Vector{bbx, bby}
	t.BDirectMVTable[xy] = dmv

	mbType := best
	if s.ctx.MBDecision > DecisionSimple {
		mbType = 0
		if fmin < directSentinel {
			mbType |= TypeForward
		}
		if bmin < directSentinel {
			mbType |= TypeBackward
		}
		if fbmin < directSentinel {
			mbType |= TypeBidir
		}
		if in.Direct != nil && dmin <= 256*256*16 {
			mbType |= TypeDirect
		}
	}

	t.MBTypes[xy] = mbType
	return mbType
}
