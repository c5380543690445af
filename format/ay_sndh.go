package format

import "github.com/chiptune-go/ym2149replay/song"

// AY is the profile for ZXAY/EMUL containers. A Z80 emulator (out of
// this core's scope, spec.md §1) drives the PSG directly through its
// own next_frame callback rather than encoding effects in reserved
// register bits, so both hooks are no-ops.
type AY struct{}

func (*AY) PreprocessFrame(*song.Frame)                    {}
func (*AY) DecodeEffects(*song.Frame) []song.EffectCommand { return nil }

// SNDH is the profile for 68000-machine-code containers. As with AY,
// the effective "effects" are whatever the emulated program writes to
// the PSG each MFP-timer tick; there is no reserved-bit encoding to
// decode here.
type SNDH struct{}

func (*SNDH) PreprocessFrame(*song.Frame)                    {}
func (*SNDH) DecodeEffects(*song.Frame) []song.EffectCommand { return nil }
