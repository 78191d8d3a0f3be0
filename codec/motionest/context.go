/*
NAME
  context.go

DESCRIPTION
  context.go defines the two long-lived state objects of the ME core:
  Context, the encoder-owned state (kernel palette, mv_penalty table,
  lambdas, flags) created at encoder init and destroyed at encoder
  close, and SliceState, the per-picture/per-slice searcher state reset
  by InitPicture (spec 3.1).

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
	"github.com/ausocean/utils/logging"
)

// Context is the long-lived encoder-owned motion estimation state. It
// is created once by New and reused across every picture the encoder
// processes.
type Context struct {
	Config
	Kernels Kernels

	// MVPenalty[f_code] is a table addressed at index (mv-pred+MaxDMV),
	// f_code in [1,8]. Index 0 is unused.
	MVPenalty [9][]int

	log logging.Logger
}

// New constructs a Context, validating configuration per spec 7
// ("Configuration error" -> abort encoder creation).
func New(k Kernels, log logging.Logger, opts ...Option) (*Context, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if k.SSE == nil || k.PixSum == nil || k.PixNorm1 == nil {
		return nil, errEmptyKernels
	}
	c := &Context{Config: cfg, Kernels: k, log: log}
	c.buildMVPenalty()
	return c, nil
}

// buildMVPenalty fills MVPenalty[f_code] with a table that costs
// |mv-pred| bits roughly logarithmically, matching the shape of a
// real VLC mv_penalty table closely enough to drive correct EPZS
// preference for smaller residuals. Real encoders inject this table
// from their entropy coder; this package treats it as part of the
// injected kernel surface but builds a reasonable default so tests and
// simple callers need not supply one.
func (c *Context) buildMVPenalty() {
	for fcode := 1; fcode <= 8; fcode++ {
		tab := make([]int, 2*MaxDMV+1)
		for i := range tab {
			d := i - MaxDMV
			tab[i] = bitsFor(d)
		}
		c.MVPenalty[fcode] = tab
	}
}

// bitsFor approximates the bit cost of coding a signed residual d.
func bitsFor(d int) int {
	if d == 0 {
		return 1
	}
	a := abs(d)
	n := 1
	for a > 0 {
		n += 2
		a >>= 1
	}
	return n
}

// PenaltyForFCode returns the mv_penalty table for f_code (spec 3.1:
// "pointer into mv_penalty[f_code] offset by MAX_DMV so negative
// indices are legal"). Go slices can't carry a negative-offset view,
// so the table keeps its natural [0, 2*MaxDMV] indexing and mvBitCost
// applies the +MaxDMV offset itself when indexing by residual d.
func (c *Context) PenaltyForFCode(fcode int) []int {
	if fcode < 1 || fcode > 8 {
		fcode = 1
	}
	return c.MVPenalty[fcode]
}

// SliceState is the per-picture, per-slice searcher state (spec 3.1's
// MotionEstContext). A new SliceState should be created per worker
// when pictures are sharded across threads (spec 5); there is no
// shared mutable state within it across workers.
type SliceState struct {
	ctx *Context

	Scratchpad []byte
	Temp       []byte

	Stride   int
	UVStride int

	scoreMap ScoreMap

	Limits Rect

	Skip             bool
	PredX, PredY     int
	PenaltyFactor    int
	SubPenaltyFactor int
	MBPenaltyFactor  int
	PrePenaltyFactor int

	CurrentMVPenalty []int

	SearchFlags    CmpSelector
	SubSearchFlags CmpSelector
	MBSearchFlags  CmpSelector

	DirectBasisMV  [4]Vector
	CoLocatedMV    [4]Vector

	MBVarSumTemp   int
	MCMBVarSumTemp int
	SceneChangeScore int

	// directMode is not read by Compare; the direct-mode prediction
	// path is selected per call with FlagDirect (spec 4.2).
	directMode bool

	// PBTime and PPTime are the picture-distance scale factors used by
	// direct-mode derivation (spec 4.1, 4.5).
	PBTime, PPTime int
}

// NewSliceState allocates a SliceState for the given Context. scratch
// buffers must be at least 32*stride bytes (spec 3.1).
func NewSliceState(ctx *Context, stride, uvstride int) *SliceState {
	s := &SliceState{
		ctx:        ctx,
		Stride:     stride,
		UVStride:   uvstride,
		Scratchpad: make([]byte, 32*stride),
		Temp:       make([]byte, 32*stride),
	}
	s.scoreMap.reset()
	return s
}

// InitPicture resets per-picture state: bumps the visited-score map
// generation and clears the accumulators (spec 3.1, 5).
func (s *SliceState) InitPicture() {
	s.scoreMap.nextGeneration()
	s.MBVarSumTemp = 0
	s.MCMBVarSumTemp = 0
	s.SceneChangeScore = 0
}

// SetLimits sets the full-pel search window and points
// CurrentMVPenalty at the mv_penalty table PenaltyForFCode returns for
// fcode.
func (s *SliceState) SetLimits(r Rect, fcode int) {
	s.Limits = r
	s.CurrentMVPenalty = s.ctx.PenaltyForFCode(fcode)
}

// SetPenaltyFactors derives the four stage penalty factors from the
// context's lambda pair (spec 4.1).
func (s *SliceState) SetPenaltyFactors() {
	s.PenaltyFactor = penaltyFactor(s.ctx.Lambda, s.ctx.Lambda2, s.ctx.MeCmp)
	s.SubPenaltyFactor = penaltyFactor(s.ctx.Lambda, s.ctx.Lambda2, s.ctx.MeSubCmp)
	s.MBPenaltyFactor = penaltyFactor(s.ctx.Lambda, s.ctx.Lambda2, s.ctx.MbCmp)
	s.PrePenaltyFactor = penaltyFactor(s.ctx.Lambda, s.ctx.Lambda2, s.ctx.MePreCmp)
}
