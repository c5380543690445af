// Package song holds the data model shared by the sequencer, format,
// and player packages: a frame stream plus the metadata that describes
// how to replay it.
package song

// Frame is a snapshot of the sixteen YM2149 registers at one frame tick.
type Frame [16]byte

// Region mirrors the historical PAL/NTSC split that set a chiptune's
// frame rate on real hardware.
type Region int

const (
	RegionPAL Region = iota
	RegionNTSC
)

func (r Region) String() string {
	switch r {
	case RegionNTSC:
		return "NTSC"
	default:
		return "PAL"
	}
}

// Timing holds the frame rate and master clock implied by a Region.
// Unlike console hardware, chiptune files are free to declare their own
// frame rate and clock in their header, so Timing is a value carried by
// Song rather than looked up from a fixed table — DefaultTiming exists
// only to give callers a sane starting point.
type Timing struct {
	FrameRateHz int
	MasterClock int
}

// DefaultTiming returns the conventional Atari ST timing for a Region:
// 50Hz PAL / 2MHz, 60Hz NTSC / 2MHz.
func DefaultTiming(r Region) Timing {
	if r == RegionNTSC {
		return Timing{FrameRateHz: 60, MasterClock: 2000000}
	}
	return Timing{FrameRateHz: 50, MasterClock: 2000000}
}

// SampleBank holds DigiDrum sample data embedded in a song, indexed by
// the sample index effect-start commands cite.
type SampleBank [][]byte

// Metadata is the immutable-for-the-session descriptive data exposed by
// the unified player contract (spec §6).
type Metadata struct {
	Title        string
	Author       string
	Comment      string
	Format       string
	FrameCount   int
	FrameRateHz  int
	LoopFrame    int  // valid only if HasLoop
	HasLoop      bool
	DurationSecs float64
}

// Format identifies which chiptune container a Song was decoded from.
// The core never parses these containers itself (spec §1); Format only
// selects which format.Profile preprocesses frames and decodes effects.
type Format int

const (
	FormatUnknown Format = iota
	FormatYM2
	FormatYM3
	FormatYM4
	FormatYM5
	FormatYM6
	FormatAY
	FormatSNDH
	FormatAKS
)

func (f Format) String() string {
	switch f {
	case FormatYM2:
		return "YM2"
	case FormatYM3:
		return "YM3"
	case FormatYM4:
		return "YM4"
	case FormatYM5:
		return "YM5"
	case FormatYM6:
		return "YM6"
	case FormatAY:
		return "AY"
	case FormatSNDH:
		return "SNDH"
	case FormatAKS:
		return "AKS"
	default:
		return "unknown"
	}
}

// EffectAnnotation records a single decoded effect command attached to
// a frame index. The player does not read Song.Effects: it decodes
// effect commands from each frame through format.Profile.DecodeEffects.
type EffectAnnotation struct {
	FrameIndex int
	Command    EffectCommand
}

// EffectCommand is a decoded start/stop instruction for one of the
// special-effects voices (spec §4.3/§4.4). Kind determines which
// fields are meaningful.
type EffectCommand struct {
	Kind  EffectKind
	Voice int // 0, 1, or 2; unused for Kind == EffectSyncBuzzerStart/Stop

	FreqHz    int
	BaseLevel int    // SID square/sinus base amplitude level (0-15)
	EnvShape  int    // Sync Buzzer envelope shape (0-15)
	Sample    []byte // DigiDrum sample bytes
}

// EffectKind enumerates the decodable effect start/stop commands.
type EffectKind int

const (
	EffectSyncBuzzerStart EffectKind = iota
	EffectSyncBuzzerStop
	EffectSIDStart
	EffectSIDSinStart
	EffectSIDStop
	EffectDigiDrumStart
	EffectDigiDrumStop
)

// Song is an ordered, finite sequence of frames plus the data needed to
// replay it (spec §3).
type Song struct {
	Frames     []Frame
	Timing     Timing
	LoopFrame  int // valid only if HasLoop
	HasLoop    bool
	SampleBank SampleBank
	Effects    []EffectAnnotation
	Metadata   Metadata
	Format     Format
}

// EffectsForFrame returns the effect commands annotated at frameIndex,
// in the order they appear in Song.Effects.
func (s *Song) EffectsForFrame(frameIndex int) []EffectCommand {
	var cmds []EffectCommand
	for _, a := range s.Effects {
		if a.FrameIndex == frameIndex {
			cmds = append(cmds, a.Command)
		}
	}
	return cmds
}
