/*
NAME
  cmp.go

DESCRIPTION
  cmp.go implements the "cmp" search primitive of spec 4.2: compute an
  (interpolated) prediction and score it against the source block,
  with variants for full-pel, half-pel, quarter-pel and the MPEG-4
  B-frame direct-mode bidirectional reconstruction.

  Interpolation and comparison kernels themselves are injected (spec
  6.1); this file only sequences calls into them and performs the
  direct-mode vector derivation described in spec 4.2.

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

// CompareFlags selects the behaviour of SliceState.Compare (spec 4.2).
type CompareFlags uint32

const (
	FlagDirect CompareFlags = 1 << iota
	FlagChroma
	FlagQPelCmp
)

// Window is a pixel window positioned at a macroblock's origin, wide
// and tall enough that a comparison kernel may read the sub-pel halo
// it needs around (0,0). Src and Ref must share Stride.
type Window struct {
	Src, Ref     []byte
	BackRef      []byte // only used by direct-mode compares
	ChromaSrc    [2][]byte
	ChromaRef    [2][]byte
	Stride       int
	ChromaStride int
}

// refAt returns the reference window offset to full-pel displacement
// (x,y) from the macroblock origin that plane.Ref is positioned at.
func refAt(plane []byte, stride, x, y int) []byte {
	off := y*stride + x
	if off < 0 {
		off = 0
	}
	if off > len(plane) {
		off = len(plane)
	}
	return plane[off:]
}

// Compare computes the cost of predicting Src from a reference at
// full-pel displacement (x,y) and sub-pel phase (subx,suby), per spec
// 4.2. size selects the kernel-palette size index, h is the block
// height, cmpFn/chromaCmpFn are the luma/chroma comparison kernels for
// this search stage, and flags selects direct/chroma/qpel behaviour.
func (s *SliceState) Compare(w Window, x, y, subx, suby, size, h int, cmpFn, chromaCmpFn CmpFunc, flags CompareFlags) int {
	if flags&FlagDirect != 0 {
		return s.compareDirect(w, x, y, subx, suby, size, h, cmpFn)
	}

	ref := refAt(w.Ref, w.Stride, x, y)
	if subx != 0 || suby != 0 {
		temp := s.Temp[:h*w.Stride]
		dxy := (subx & 1) | (suby&1)<<1
		if flags&FlagQPelCmp != 0 {
			dxy = (subx & 3) | (suby&3)<<2
			s.ctx.Kernels.QpelPut[size][dxy](temp, ref, w.Stride)
		} else {
			s.ctx.Kernels.HpelPut[size][dxy](temp, ref, w.Stride, h)
		}
		ref = temp
	}
	score := cmpFn(w.Src, ref, w.Stride, h)

	if flags&FlagChroma != 0 && chromaCmpFn != nil {
		uvdxy := chromaPhase(x, y, subx, suby, s.ctx.QuarterSample)
		cx, cy := x/2, y/2
		cref0 := refAt(w.ChromaRef[0], w.ChromaStride, cx, cy)
		cref1 := refAt(w.ChromaRef[1], w.ChromaStride, cx, cy)
		ctemp := s.Scratchpad[:8*w.ChromaStride]
		if uvdxy != 0 {
			s.ctx.Kernels.HpelPut[1][uvdxy](ctemp, cref0, w.ChromaStride, 8)
			score += chromaCmpFn(w.ChromaSrc[0], ctemp, w.ChromaStride, 8)
			s.ctx.Kernels.HpelPut[1][uvdxy](ctemp, cref1, w.ChromaStride, 8)
			score += chromaCmpFn(w.ChromaSrc[1], ctemp, w.ChromaStride, 8)
		} else {
			score += chromaCmpFn(w.ChromaSrc[0], cref0, w.ChromaStride, 8)
			score += chromaCmpFn(w.ChromaSrc[1], cref1, w.ChromaStride, 8)
		}
	}
	return score
}

// chromaPhase derives the chroma sub-pel phase from a luma
// displacement (spec 4.2, "FLAG_CHROMA adds chroma 8x8 compares at
// derived chroma sub-pel phase uvdxy"). Chroma is half the luma
// resolution, so an odd full-pel luma component or a luma half-pel
// bit sets the matching chroma half-pel bit; quarter-pel positions
// are first halved and any remainder rounds to the half-pel bit. The
// result is a half-pel phase in [0,4).
func chromaPhase(x, y, subx, suby int, qpel bool) int {
	if qpel {
		cx := ((x << 2) + subx) / 2
		cy := ((y << 2) + suby) / 2
		cx = (cx >> 1) | (cx & 1)
		cy = (cy >> 1) | (cy & 1)
		return (cx & 1) | (cy&1)<<1
	}
	return (subx|x)&1 | ((suby|y)&1)<<1
}

// compareDirect implements the MPEG-4 B-frame direct prediction of
// spec 4.2: for each 8x8 sub-block, derive a forward vector from the
// co-located basis plus the searched delta, derive the backward vector
// either by subtracting the co-located vector (non-zero delta) or by
// scaling the co-located vector by the picture-distance ratio (zero
// delta), forward-predict with put and backward-predict with avg.
func (s *SliceState) compareDirect(w Window, x, y, subx, suby, size, h int, cmpFn CmpFunc) int {
	if !s.inBounds(x, y) {
		return impossibleSAD
	}

	shift := 1
	if s.ctx.QuarterSample {
		shift = 2
	}
	hx := subx + x<<shift
	hy := suby + y<<shift

	nBlocks := 1
	if size != MVType16x16 {
		nBlocks = 4
	}

	fwd := s.Temp[:h*w.Stride]

	total := 0
	for i := 0; i < nBlocks; i++ {
		f, b := s.directVectors(i, hx, hy)

		ffull, fsub := halfPelSplit(f.X)
		gfull, gsub := halfPelSplit(f.Y)
		fdxy := fsub | gsub<<1
		s.ctx.Kernels.HpelPut[size][fdxy](fwd, refAt(w.Ref, w.Stride, ffull, gfull), w.Stride, h)

		bffull, bfsub := halfPelSplit(b.X)
		bgfull, bgsub := halfPelSplit(b.Y)
		bdxy := bfsub | bgsub<<1
		s.ctx.Kernels.HpelAvg[size][bdxy](fwd, refAt(w.BackRef, w.Stride, bffull, bgfull), w.Stride, h)

		total += cmpFn(w.Src, fwd, w.Stride, h)
	}
	return total
}

// directVectors derives the forward/backward vector pair for
// sub-block i given the luma displacement (hx,hy) already searched,
// per spec 4.2.
func (s *SliceState) directVectors(i int, hx, hy int) (fwd, back Vector) {
	basis := s.DirectBasisMV[i]
	f := Vector{basis.X + hx, basis.Y + hy}
	if hx != 0 || hy != 0 {
		b := Vector{f.X - s.CoLocatedMV[i].X, f.Y - s.CoLocatedMV[i].Y}
		return f, b
	}
	if s.PPTime == 0 {
		return f, Vector{}
	}
	b := Vector{
		X: s.CoLocatedMV[i].X * (s.PBTime - s.PPTime) / s.PPTime,
		Y: s.CoLocatedMV[i].Y * (s.PBTime - s.PPTime) / s.PPTime,
	}
	return f, b
}

// inBounds reports whether (x,y) lies within the slice state's current
// full-pel search limits; outside-window direct-mode compares return
// the impossible-cost sentinel (spec 4.2).
func (s *SliceState) inBounds(x, y int) bool {
	return x >= s.Limits.XMin && x <= s.Limits.XMax && y >= s.Limits.YMin && y <= s.Limits.YMax
}
