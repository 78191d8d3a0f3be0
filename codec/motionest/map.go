/*
NAME
  map.go

DESCRIPTION
  map.go implements the visited-score map: a generation-tagged ring of
  ME_MAP_SIZE entries indexed by (my<<ME_MAP_SHIFT)+mx, hashed into the
  ring, used to avoid re-scoring a vector already visited since the
  last InitPicture (spec 3.1, 9). The tag packs the full vector as
  (my<<ME_MAP_MV_BITS)+mx, so two vectors sharing a ring slot never
  alias.

  A generation counter is bumped by 1<<(2*ME_MAP_MV_BITS) each picture;
  a stored entry is live iff its tag equals the current generation
  xored with the packed key. This amortises the per-picture reset to
  O(1), with a rare O(ME_MAP_SIZE) memset only on generation
  wraparound (spec 9).

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

// mapEntry packs a generation/key tag and the stored score.
type mapEntry struct {
	tag   uint32
	score int
	valid bool
}

// ScoreMap is the visited-score map described in spec 3.1. The zero
// value is not usable; call reset before first use.
type ScoreMap struct {
	entries    [MEMapSize]mapEntry
	generation uint32
}

// reset clears the map and starts the generation counter at zero.
func (m *ScoreMap) reset() {
	for i := range m.entries {
		m.entries[i] = mapEntry{}
	}
	m.generation = 0
}

// nextGeneration bumps the generation by 1<<(2*ME_MAP_MV_BITS); on
// overflow back to zero it memsets the map so stale tags from the
// wrapped-around generation cannot alias a live key (spec 3.1, 9).
func (m *ScoreMap) nextGeneration() {
	next := m.generation + (1 << (2 * MEMapMVBits))
	if next < m.generation {
		for i := range m.entries {
			m.entries[i] = mapEntry{}
		}
	}
	m.generation = next
}

// pack forms the ring index and the generation-xored tag for (mx,my),
// matching the "tag equals generation xored with packed key" invariant
// of spec 3.1. The index hashes (my<<ME_MAP_SHIFT)+mx into the ring;
// the key packs my above ME_MAP_MV_BITS so it identifies the vector.
func (m *ScoreMap) pack(mx, my int) (idx int, tag uint32) {
	idx = int(((uint32(my) << MEMapShift) + uint32(mx)) & (MEMapSize - 1))
	key := (uint32(my) << MEMapMVBits) + uint32(mx)
	tag = m.generation ^ key
	return idx, tag
}

// Lookup returns (score, true) iff (mx,my) was stored during the
// current generation; otherwise it returns (0, false). A lookup never
// reports a false hit (spec 3.1 invariant 3, spec 8 property 1).
func (m *ScoreMap) Lookup(mx, my int) (int, bool) {
	idx, tag := m.pack(mx, my)
	e := &m.entries[idx]
	if !e.valid || e.tag != tag {
		return 0, false
	}
	return e.score, true
}

// Store records the score for (mx,my) at the current generation.
func (m *ScoreMap) Store(mx, my, score int) {
	idx, tag := m.pack(mx, my)
	m.entries[idx] = mapEntry{tag: tag, score: score, valid: true}
}
