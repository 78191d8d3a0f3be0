/*
NAME
  fixup.go

DESCRIPTION
  fixup.go implements the post-picture fixups of spec 4.6: choosing the
  best f_code for a picture's vector tables, demoting INTER4V
  macroblocks whose block vectors exceed the chosen range, and
  clamping or reclassifying macroblocks whose vector exceeds range.

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

// fcodeTab maps a vector magnitude to the smallest f_code that can
// represent it: range = 16 << (fcode-1), so fcodeTab[v] is the
// smallest fcode with (16<<(fcode-1)) > |v|.
func fcodeTab(v int) int {
	a := abs(v)
	for fc := 1; fc <= 8; fc++ {
		if (16 << uint(fc-1)) > a {
			return fc
		}
	}
	return 8
}

// GetBestFcode implements spec 4.6's get_best_fcode: for each
// candidate f_code in 1..7, start from mb_num*(8-fcode) and subtract a
// 170-point penalty for every macroblock of mbType whose vector needs
// more bits than this candidate provides and is judged "worth coding"
// (is a B-picture MB, or has mc_mb_var < mb_var). The candidate with
// the highest score wins; ties favour the lower f_code already seen
// since a strict ">" comparison is used for later candidates.
func GetBestFcode(t *PictureTables, mbType MacroblockType, isBPicture bool, rangeCap int, motionEst MotionEstMode) int {
	if motionEst == MotionEstZero {
		return 1
	}
	mbNum := len(t.MBTypes)
	best, bestScore := 1, -1<<62

	for fcode := 1; fcode <= 7; fcode++ {
		score := mbNum * (8 - fcode)
		for xy, typ := range t.MBTypes {
			if typ&mbType == 0 {
				continue
			}
			mv := t.PMVTable[xy]
			if rangeCap > 0 && (abs(mv.X) >= rangeCap || abs(mv.Y) >= rangeCap) {
				continue
			}
			fc := fcodeTab(mv.X)
			if fcodeTab(mv.Y) > fc {
				fc = fcodeTab(mv.Y)
			}
			// This candidate fcode can't represent the vector: penalize
			// it once per MB that would otherwise be worth coding.
			if fcode < fc && (isBPicture || t.MCMBVar[xy] < t.MBVar[xy]) {
				score -= 170
			}
		}
		if score > bestScore {
			bestScore, best = score, fcode
		}
	}
	return best
}

// FixLongPMVs implements spec 4.6's fix_long_p_mvs: for every INTER4V
// macroblock with any 8x8 block vector exceeding range, clears
// INTER4V and sets typ instead (typically TypeInter).
func FixLongPMVs(t *PictureTables, fcode, typ MacroblockType, truncate bool) {
	r := rangeFor(fcode)
	for mbY := 0; mbY < t.MBHeight; mbY++ {
		for mbX := 0; mbX < t.MBWidth; mbX++ {
			xy := t.MBIndex(mbX, mbY)
			if t.MBTypes[xy]&TypeInter4V == 0 {
				continue
			}
			exceeds := false
			for by := 0; by < 2 && !exceeds; by++ {
				for bx := 0; bx < 2; bx++ {
					v := t.MotionVal[t.B8Index(mbX*2+bx, mbY*2+by)]
					if abs(v.X) >= r || abs(v.Y) >= r {
						exceeds = true
						break
					}
				}
			}
			if exceeds {
				t.MBTypes[xy] = (t.MBTypes[xy] &^ TypeInter4V) | typ
			}
		}
	}
}

// rangeFor returns the clamp range for the given f_code: (8 or 16) <<
// f_code per spec 4.6; this package always uses 16<<f_code, twice the
// 16<<(fcode-1) boundary fcodeTab uses to pick an f_code.
func rangeFor(fcode MacroblockType) int {
	if fcode == 0 {
		fcode = 1
	}
	return 16 << uint(fcode)
}

// FixLongMVs implements spec 4.6's fix_long_mvs: for every macroblock
// of typ whose vector exceeds range, either clamps it to +-range
// (truncate) or clears typ, sets INTRA and zeroes the vector.
func FixLongMVs(t *PictureTables, typ MacroblockType, fcodeVal int, truncate bool) {
	r := rangeFor(MacroblockType(fcodeVal))
	for xy, mt := range t.MBTypes {
		if mt&typ == 0 {
			continue
		}
		v := t.PMVTable[xy]
		if abs(v.X) < r && abs(v.Y) < r {
			continue
		}
		if truncate {
			t.PMVTable[xy] = Vector{clamp(v.X, -r, r-1), clamp(v.Y, -r, r-1)}
			continue
		}
		t.MBTypes[xy] = (t.MBTypes[xy] &^ typ) | TypeIntra
		t.PMVTable[xy] = Vector{}
	}
}

// FixLongFieldMVs is the field-table form of FixLongMVs: v_range is
// range>>1 and a macroblock is skipped if its field-select does not
// match field (spec 4.6).
func FixLongFieldMVs(fieldMV []Vector, fieldSelect []int, field int, typ []MacroblockType, want MacroblockType, fcodeVal int, truncate bool) {
	r := rangeFor(MacroblockType(fcodeVal)) >> 1
	for xy, mt := range typ {
		if mt&want == 0 {
			continue
		}
		if fieldSelect[xy] != field {
			continue
		}
		v := fieldMV[xy]
		if abs(v.X) < r && abs(v.Y) < r {
			continue
		}
		if truncate {
			fieldMV[xy] = Vector{clamp(v.X, -r, r-1), clamp(v.Y, -r, r-1)}
			continue
		}
		typ[xy] = (typ[xy] &^ want) | TypeIntra
		fieldMV[xy] = Vector{}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
