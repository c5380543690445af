package format

import "github.com/chiptune-go/ym2149replay/song"

// Ym2 is the profile for the original Atari ST YM2 ("Mad Max")
// register-dump format. Some early YM2-era tracker tools set a
// channel's envelope-enable bit (bit 4 of R8/R9/R10) while leaving the
// envelope period at zero as a way of saying "hold at whatever level
// the envelope generator last settled at" rather than truly enabling
// the envelope; a naive player reproduces an audible envelope glitch
// instead. PreprocessFrame mirrors the known fix-up: with a zero
// envelope period, the amplitude's envelope bit is cleared so the
// channel falls back to its plain fixed level.
type Ym2 struct{}

func (*Ym2) PreprocessFrame(f *song.Frame) {
	envPeriodZero := f[11] == 0 && f[12] == 0
	if !envPeriodZero {
		return
	}
	for _, ampReg := range [3]int{8, 9, 10} {
		f[ampReg] &^= 0x10
	}
}

func (*Ym2) DecodeEffects(*song.Frame) []song.EffectCommand { return nil }
