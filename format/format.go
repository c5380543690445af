// Package format knows, per chiptune container family, how a raw
// register frame must be fixed up before it reaches the PSG and which
// effect commands its reserved bits encode. The core never parses the
// containers themselves (spec.md §1/§6); a Profile only interprets
// frames a loader has already produced.
package format

import "github.com/chiptune-go/ym2149replay/song"

// Profile is implemented once per format family. PreprocessFrame and
// DecodeEffects are called in that order, once per frame, by the
// player's sample generator (spec.md §4.5 step 1).
type Profile interface {
	// PreprocessFrame applies format-specific register fix-ups in
	// place (e.g. YM2's Mad Max envelope-bit clear).
	PreprocessFrame(regs *song.Frame)

	// DecodeEffects extracts any Sync Buzzer / SID / DigiDrum
	// start-stop commands encoded in the frame's reserved bits. The
	// returned commands are the sole source of effect-state
	// transitions (spec.md §4.4).
	DecodeEffects(regs *song.Frame) []song.EffectCommand
}

// ForFormat returns the Profile for f. Unrecognized formats fall back
// to Basic, matching the teacher's tolerant-default approach to
// unknown inputs rather than failing closed.
func ForFormat(f song.Format) Profile {
	switch f {
	case song.FormatYM2:
		return &Ym2{}
	case song.FormatYM5:
		return &Ym5{}
	case song.FormatYM6:
		return &Ym6{}
	case song.FormatAY:
		return &AY{}
	case song.FormatSNDH:
		return &SNDH{}
	default:
		return &Basic{}
	}
}

// Basic is the no-op profile for YM3/YM4/AKS: plain register dumps
// with no reserved-bit effect encoding.
type Basic struct{}

func (*Basic) PreprocessFrame(*song.Frame)                    {}
func (*Basic) DecodeEffects(*song.Frame) []song.EffectCommand { return nil }
