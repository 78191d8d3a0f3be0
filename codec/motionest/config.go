/*
NAME
  config.go

DESCRIPTION
  config.go defines the caller-set configuration of the ME core (spec
  6.4) and the functional-option constructors used to build it
  (options ...func(*Config) error).

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

// Flags are per-encoder motion-estimation feature flags (spec 6.4).
type Flags uint32

const (
	FlagQPel Flags = 1 << iota
	Flag4MV
	FlagInterlacedME
)

// MPVFlags are the smaller, historically mpegvideo-specific flag set.
type MPVFlags uint32

const FlagMV0 MPVFlags = 1

// Config holds the caller-set tunables of spec 6.4. Zero values are
// sane defaults except where noted.
type Config struct {
	// Comparison-function selectors, one per search stage.
	MeCmp    CmpSelector
	MeSubCmp CmpSelector
	MbCmp    CmpSelector
	MePreCmp CmpSelector

	// DiaSize is the EPZS diamond radius; negative selects the
	// shape-adaptive (SAB) diamond of the same magnitude.
	DiaSize    int
	PreDiaSize int

	// MERange records the vector-magnitude range in full-pel units; 0
	// means unlimited. The searchers take their window from
	// SliceState.Limits and do not read MERange.
	MERange int

	// BidirRefine selects the bidir_refine search depth, 0..4.
	BidirRefine int

	MBDecision MBDecision

	Flags    Flags
	MPVFlags MPVFlags

	QuarterSample   bool
	UnrestrictedMV  bool
	NoRounding      bool
	StrictCompliance bool

	FCode int
	BCode int

	Lambda      int
	Lambda2     int
	IntraPenalty int

	MotionEst MotionEstMode

	// Codec identifies the target bitstream family, used only to pick
	// predictor conventions (H.263-style median vs MPEG-1 left) and
	// f_code range caps (spec 4.5, 4.6).
	Codec Codec
}

// Codec identifies the bitstream family targeted by the encoder, which
// affects predictor selection and f_code range caps.
type Codec int

const (
	CodecMPEG1 Codec = iota
	CodecMPEG2
	CodecMPEG4
	CodecH263
	CodecMSMPEG4
	CodecSNOW
)

// Option configures a Config at construction time.
type Option func(*Config) error

// DefaultConfig returns a Config with the defaults used throughout the
// rest of this package's tests: SAD compares, diamond radius 2, EPZS
// search, no quarter-pel.
func DefaultConfig() Config {
	return Config{
		MeCmp:       CmpSAD,
		MeSubCmp:    CmpSAD,
		MbCmp:       CmpSAD,
		MePreCmp:    CmpSAD,
		DiaSize:     2,
		PreDiaSize:  2,
		BidirRefine: 1,
		MBDecision:  DecisionSimple,
		FCode:       1,
		BCode:       1,
		MotionEst:   MotionEstEPZS,
		Codec:       CodecMPEG4,
	}
}

// WithCmp sets the four comparison-function selectors.
func WithCmp(me, meSub, mb, mePre CmpSelector) Option {
	return func(c *Config) error {
		c.MeCmp, c.MeSubCmp, c.MbCmp, c.MePreCmp = me, meSub, mb, mePre
		return nil
	}
}

// WithDiaSize sets the EPZS and pre-pass diamond radii, validating
// against ME_MAP_SIZE / MaxSABSize per spec 7 ("Configuration error").
func WithDiaSize(dia, preDia int) Option {
	return func(c *Config) error {
		if abs(dia) > MaxSABSize && dia < 0 {
			return errSABSizeRange
		}
		if abs(dia) > MEMapSize {
			return errDiaSizeRange
		}
		if abs(preDia) > MEMapSize {
			return errPreDiaSizeRange
		}
		c.DiaSize, c.PreDiaSize = dia, preDia
		return nil
	}
}

// WithRange sets the vector-range cap in full-pel units (0 = unlimited).
func WithRange(r int) Option {
	return func(c *Config) error { c.MERange = r; return nil }
}

// WithBidirRefine sets the bidir_refine search depth (0..4).
func WithBidirRefine(level int) Option {
	return func(c *Config) error { c.BidirRefine = level; return nil }
}

// WithMBDecision sets the mode-decision aggressiveness.
func WithMBDecision(d MBDecision) Option {
	return func(c *Config) error { c.MBDecision = d; return nil }
}

// WithFlags sets the encoder and mpv flag sets.
func WithFlags(f Flags, mpv MPVFlags) Option {
	return func(c *Config) error { c.Flags, c.MPVFlags = f, mpv; return nil }
}

// WithCodec sets the target codec identifier.
func WithCodec(codec Codec) Option {
	return func(c *Config) error { c.Codec = codec; return nil }
}

// WithLambda sets the rate-distortion lambda pair and intra penalty.
func WithLambda(lambda, lambda2, intraPenalty int) Option {
	return func(c *Config) error {
		c.Lambda, c.Lambda2, c.IntraPenalty = lambda, lambda2, intraPenalty
		return nil
	}
}

// WithFCode sets the forward and backward f_code.
func WithFCode(fcode, bcode int) Option {
	return func(c *Config) error { c.FCode, c.BCode = fcode, bcode; return nil }
}

// WithMotionEst selects the overall search strategy.
func WithMotionEst(m MotionEstMode) Option {
	return func(c *Config) error { c.MotionEst = m; return nil }
}

// WithUnrestrictedMV enables padded-reference unrestricted motion
// vectors (search windows extend up to 16px beyond the picture edge).
func WithUnrestrictedMV(on bool) Option {
	return func(c *Config) error { c.UnrestrictedMV = on; return nil }
}

// WithQuarterSample enables quarter-pel vector precision.
func WithQuarterSample(on bool) Option {
	return func(c *Config) error {
		c.QuarterSample = on
		if on {
			c.Flags |= FlagQPel
		} else {
			c.Flags &^= FlagQPel
		}
		return nil
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
