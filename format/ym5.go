package format

import "github.com/chiptune-go/ym2149replay/song"

// Reserved-bit layout for YM5/YM6 effect encoding. Tone coarse bytes
// (R1, R3) and the noise period byte (R6) only use their low 4/4/5
// bits on real hardware, leaving a high bit free; the amplitude
// registers (R8-R10) only use bits 0-4, leaving bits 5-7 free. YM5/YM6
// repurpose those free bits, plus the otherwise-unused I/O port pair
// (R14/R15), to carry effect commands. One frame can yield several:
// a Sync Buzzer start and/or stop, plus one command per voice:
//
//   - R1 bit7: Sync Buzzer start this frame (shape taken from R13's
//     low nibble, frequency from R14 as a coarse Hz value * 100).
//   - R3 bit7: Sync Buzzer stop this frame.
//   - R8/R9/R10 bits 5-6 (voice A/B/C amplitude registers): effect
//     selector for that voice — 0 none, 1 SID square, 2 SID sinus,
//     3 DigiDrum. Bit 7: stop the voice's active effect instead of
//     starting one. For SID, R14 gives frequency (Hz * 100); for
//     DigiDrum, R14 still gives the playback rate and R15 carries the
//     sample-bank lookup: bit7 selects 4-bit (0) vs 8-bit (1) sample
//     data, bits 0-6 are the index into song.SampleBank. The player
//     package resolves that index, since only it holds the SampleBank
//     (format.Profile sees one frame at a time).
const (
	bitSyncBuzzerStart = 0x80 // R1
	bitSyncBuzzerStop  = 0x80 // R3

	ampEffectSelectorMask  = 0x60
	ampEffectSelectorShift = 5
	ampEffectStopBit       = 0x80

	effectNone      = 0
	effectSIDSquare = 1
	effectSIDSinus  = 2
	effectDigiDrum  = 3

	freqHzUnit = 100
)

// Ym5 is the profile for the YM5 container: per-frame effect commands
// packed into the reserved bits named above.
type Ym5 struct{}

func (*Ym5) PreprocessFrame(*song.Frame) {}

func (*Ym5) DecodeEffects(f *song.Frame) []song.EffectCommand {
	return decodeYm5Effects(f)
}

func decodeYm5Effects(f *song.Frame) []song.EffectCommand {
	var cmds []song.EffectCommand

	if f[1]&bitSyncBuzzerStart != 0 {
		cmds = append(cmds, song.EffectCommand{
			Kind:     song.EffectSyncBuzzerStart,
			FreqHz:   int(f[14]) * freqHzUnit,
			EnvShape: int(f[13] & 0x0F),
		})
	}
	if f[3]&bitSyncBuzzerStop != 0 {
		cmds = append(cmds, song.EffectCommand{Kind: song.EffectSyncBuzzerStop})
	}

	ampRegs := [3]int{8, 9, 10}
	for voice, reg := range ampRegs {
		sel := (f[reg] & ampEffectSelectorMask) >> ampEffectSelectorShift
		stop := f[reg]&ampEffectStopBit != 0

		switch {
		case stop && sel != effectNone:
			cmds = append(cmds, stopCommandFor(sel, voice))
		case sel == effectSIDSquare:
			cmds = append(cmds, song.EffectCommand{
				Kind:      song.EffectSIDStart,
				Voice:     voice,
				FreqHz:    int(f[14]) * freqHzUnit,
				BaseLevel: int(f[reg] & 0x0F),
			})
		case sel == effectSIDSinus:
			cmds = append(cmds, song.EffectCommand{
				Kind:      song.EffectSIDSinStart,
				Voice:     voice,
				FreqHz:    int(f[14]) * freqHzUnit,
				BaseLevel: int(f[reg] & 0x0F),
			})
		case sel == effectDigiDrum:
			cmds = append(cmds, song.EffectCommand{
				Kind:   song.EffectDigiDrumStart,
				Voice:  voice,
				FreqHz: int(f[14]) * freqHzUnit,
			})
		}
	}

	return cmds
}

func stopCommandFor(sel byte, voice int) song.EffectCommand {
	if sel == effectDigiDrum {
		return song.EffectCommand{Kind: song.EffectDigiDrumStop, Voice: voice}
	}
	return song.EffectCommand{Kind: song.EffectSIDStop, Voice: voice}
}
