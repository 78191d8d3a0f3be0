/*
NAME
  doc.go

DESCRIPTION
  Package motionest implements the motion estimation (ME) core of an
  MPEG-family video encoder: for each 16x16 macroblock of a picture it
  chooses a macroblock type (intra, forward, backward, bidirectional,
  direct, 4-MV, interlaced field pair) and, for inter-coded macroblocks,
  the motion vector(s) that minimize an injected rate-distortion-like
  cost against one or two reference pictures.

  Pixel interpolation kernels, block comparison kernels and bitstream
  parsing/writing are explicitly out of scope; this package consumes
  them as an injected Kernels palette (see kernels.go) and exposes its
  results as per-picture vector/type/statistics tables (see tables.go)
  for downstream encoder stages to consume.

  The package is organised bottom-up, mirroring the layering described
  by its specification: kernel palette and cost model, search
  primitives (cmp.go), the full-pel EPZS searcher (epzs.go), sub-pel
  refiners (subpel.go), mode searchers (mode_p.go, mode_b.go, mv4.go,
  interlaced.go) and post-picture fixups (fixup.go).

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package motionest implements the motion estimation core of a
// block-based video encoder.
package motionest
