/*
NAME
  errors.go

DESCRIPTION
  errors.go declares the sentinel errors returned by this package. The
  ME core has a narrow error surface (spec 7): configuration errors at
  construction time, and propagated kernel-selection errors. Per-MB
  search never fails.

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

import "github.com/pkg/errors"

// errDiaSizeRange is returned by New when dia_size exceeds ME_MAP_SIZE.
var errDiaSizeRange = errors.New("motionest: dia_size magnitude exceeds ME_MAP_SIZE")

// errPreDiaSizeRange is returned by New when pre_dia_size exceeds ME_MAP_SIZE.
var errPreDiaSizeRange = errors.New("motionest: pre_dia_size magnitude exceeds ME_MAP_SIZE")

// errSABSizeRange is returned by New when a shape-adaptive diamond size
// exceeds MaxSABSize.
var errSABSizeRange = errors.New("motionest: SAB diamond size exceeds MaxSABSize")

// errEmptyKernels is returned by New when required kernel slots are nil.
var errEmptyKernels = errors.New("motionest: required kernel missing from palette")
