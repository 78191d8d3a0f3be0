/*
NAME
  tables.go

DESCRIPTION
  tables.go defines the per-picture tables published by the ME core
  (spec 3.1 "Per-picture tables", 6.2): final P/B-frame vectors, field
  vectors and field selections, the candidate macroblock-type bitmask,
  and the luminance mean/variance statistics. Exactly one entry is
  written per macroblock per pass; later encoder stages and
  subsequent macroblocks within the same picture read them.

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

// PictureTables holds every per-picture output table written by the ME
// core (spec 3.1, 6.2). MBWidth/MBHeight describe the macroblock grid;
// B8Stride is the stride of the 8x8-block motion_val grid (2*MBWidth
// for a non-padded grid, as in spec 4.5's h263_mv4_search).
type PictureTables struct {
	MBWidth, MBHeight int
	B8Stride          int

	PMVTable []Vector

	BForwMVTable       []Vector
	BBackMVTable       []Vector
	BBidirForwMVTable  []Vector
	BBidirBackMVTable  []Vector
	BDirectMVTable     []Vector

	// PFieldMVTable[field][block] and BFieldMVTable[dir][field][block]
	// hold interlaced field-pair vectors, one per macroblock.
	PFieldMVTable [2][]Vector
	BFieldMVTable [2][2][]Vector

	PFieldSelectTable []int
	BFieldSelectTable [2][]int

	MBType MacroblockType
	MBTypes []MacroblockType

	MBMean   []uint8
	MBVar    []uint16
	MCMBVar  []uint16

	// MotionVal is the per-8x8-block vector grid written during 4-MV
	// search, indexed on the B8Stride grid (spec 3.1).
	MotionVal []Vector

	// FinalMBType is cur_pic.mb_type, written only along the
	// INTRA-chosen path (spec 3.1).
	FinalMBType []MacroblockType
}

// NewPictureTables allocates a PictureTables for an mbWidth x mbHeight
// picture.
func NewPictureTables(mbWidth, mbHeight int) *PictureTables {
	n := mbWidth * mbHeight
	b8w, b8h := mbWidth*2, mbHeight*2
	t := &PictureTables{
		MBWidth:  mbWidth,
		MBHeight: mbHeight,
		B8Stride: b8w,

		PMVTable: make([]Vector, n),

		BForwMVTable:      make([]Vector, n),
		BBackMVTable:      make([]Vector, n),
		BBidirForwMVTable: make([]Vector, n),
		BBidirBackMVTable: make([]Vector, n),
		BDirectMVTable:    make([]Vector, n),

		PFieldSelectTable: make([]int, n),

		MBTypes: make([]MacroblockType, n),
		MBMean:  make([]uint8, n),
		MBVar:   make([]uint16, n),
		MCMBVar: make([]uint16, n),

		MotionVal: make([]Vector, b8w*b8h),

		FinalMBType: make([]MacroblockType, n),
	}
	for f := 0; f < 2; f++ {
		t.PFieldMVTable[f] = make([]Vector, n*2)
		t.BFieldSelectTable[f] = make([]int, n)
		for d := 0; d < 2; d++ {
			t.BFieldMVTable[d][f] = make([]Vector, n*2)
		}
	}
	return t
}

// MBIndex returns the raster-order macroblock index of (mbX,mbY).
func (t *PictureTables) MBIndex(mbX, mbY int) int { return mbY*t.MBWidth + mbX }

// B8Index returns the 8x8-block index of (blockX,blockY) on the
// B8Stride grid.
func (t *PictureTables) B8Index(blockX, blockY int) int { return blockY*t.B8Stride + blockX }
