package format

import "github.com/chiptune-go/ym2149replay/song"

// Ym6 extends YM5's reserved-bit effect encoding with the same layout;
// real YM6 files additionally carry a DigiDrum sample bank and
// extended metadata block, both handled by the loader rather than the
// per-frame profile.
type Ym6 struct{}

func (*Ym6) PreprocessFrame(*song.Frame) {}

func (*Ym6) DecodeEffects(f *song.Frame) []song.EffectCommand {
	return decodeYm5Effects(f)
}
