// Package effects models the Atari ST composer trick of driving MFP
// timers to rewrite YM2149 registers between frame boundaries: Sync
// Buzzer envelope retriggering, SID square/sinus amplitude modulation,
// and DigiDrum PCM sample streaming. Effects are pure register-write
// producers — callers own the psg.PSG instance and call Tick once per
// chip clock, before psg.Clock (spec.md §4.3).
package effects

import (
	"math"

	"github.com/chiptune-go/ym2149replay/psg"
)

const numVoices = 3

var ampRegister = [numVoices]int{8, 9, 10}

type syncBuzzerState struct {
	active bool
	shape  byte
	t      timer
}

type sidState struct {
	active    bool
	sinus     bool
	baseLevel byte
	t         timer
	phase     int  // 0..31, used only when sinus
	high      bool // used only for the square variant
}

type digiState struct {
	active        bool
	sample        []byte
	bitsPerSample int
	t             timer
	pos           int
}

// Pipeline owns the independent timer/state machines for all three
// effect kinds across all three voices.
type Pipeline struct {
	chipClockHz int

	buzzer syncBuzzerState
	sid    [numVoices]sidState
	digi   [numVoices]digiState
}

// New returns a Pipeline with no active effects, deriving timer
// periods against chipClockHz (master_clock/8).
func New(chipClockHz int) *Pipeline {
	return &Pipeline{chipClockHz: chipClockHz}
}

// SyncBuzzerStart begins retriggering R13 with shape at freqHz.
func (p *Pipeline) SyncBuzzerStart(freqHz int, shape byte) {
	p.buzzer.active = true
	p.buzzer.shape = shape & 0x0F
	p.buzzer.t = newTimer(p.chipClockHz, freqHz)
}

// SyncBuzzerStop halts Sync Buzzer retriggering.
func (p *Pipeline) SyncBuzzerStop() {
	p.buzzer.active = false
}

// SIDStart begins square-wave amplitude modulation on voice (0-2):
// the channel's amplitude register alternates between baseLevel and 0
// at freqHz, independent of that channel's tone generator.
func (p *Pipeline) SIDStart(voice int, freqHz int, baseLevel byte) {
	if voice < 0 || voice >= numVoices {
		return
	}
	p.sid[voice] = sidState{
		active:    true,
		sinus:     false,
		baseLevel: baseLevel & 0x0F,
		t:         newTimer(p.chipClockHz, freqHz),
	}
}

// SIDSinStart begins sine-shaped amplitude modulation on voice: the
// amplitude follows a sine wave peaking at baseLevel.
func (p *Pipeline) SIDSinStart(voice int, freqHz int, baseLevel byte) {
	if voice < 0 || voice >= numVoices {
		return
	}
	p.sid[voice] = sidState{
		active:    true,
		sinus:     true,
		baseLevel: baseLevel & 0x0F,
		t:         newTimer(p.chipClockHz, freqHz),
	}
}

// SIDStop halts SID modulation on voice.
func (p *Pipeline) SIDStop(voice int) {
	if voice < 0 || voice >= numVoices {
		return
	}
	p.sid[voice].active = false
}

// DigiDrumStart begins streaming sample into voice's amplitude
// register at freqHz. bitsPerSample selects 4-bit (values already in
// 0-15) or 8-bit (values scaled down to 0-15) sample data.
func (p *Pipeline) DigiDrumStart(voice int, sample []byte, bitsPerSample int, freqHz int) {
	if voice < 0 || voice >= numVoices {
		return
	}
	p.digi[voice] = digiState{
		active:        true,
		sample:        sample,
		bitsPerSample: bitsPerSample,
		t:             newTimer(p.chipClockHz, freqHz),
	}
}

// DigiDrumStop halts DigiDrum playback on voice.
func (p *Pipeline) DigiDrumStop(voice int) {
	if voice < 0 || voice >= numVoices {
		return
	}
	p.digi[voice].active = false
}

// Tick advances every active timer by one PSG chip clock and performs
// any register writes due this step. Callers MUST call Tick before
// chip.Clock() on the same PSG instance (spec.md §4.3 Ordering).
func (p *Pipeline) Tick(chip *psg.PSG) {
	if p.buzzer.active {
		if p.buzzer.t.tick() {
			chip.Write(13, p.buzzer.shape)
		}
	}

	for v := 0; v < numVoices; v++ {
		if p.digi[v].active {
			d := &p.digi[v]
			if d.t.tick() {
				if d.pos < len(d.sample) {
					level := digiLevel(d.sample[d.pos], d.bitsPerSample)
					chip.Write(ampRegister[v], level)
					d.pos++
				} else {
					p.digi[v].active = false
				}
			}
		}
		// DigiDrum owns the voice's amplitude register whenever it is
		// active, even on steps where it didn't itself fire this
		// tick (spec.md §4.3 composition rule: DigiDrum suppresses
		// SID). SID still ticks its own timer so it resumes in phase
		// if DigiDrum later stops.
		sidShouldWrite := p.sid[v].active && !p.digi[v].active
		if p.sid[v].active {
			s := &p.sid[v]
			if s.t.tick() {
				if s.sinus {
					s.phase = (s.phase + 1) % 32
				} else {
					s.high = !s.high
				}
				if sidShouldWrite {
					chip.Write(ampRegister[v], sidLevel(s))
				}
			}
		}
	}
}

// VoiceWriteOwned reports whether an active SID or DigiDrum effect is
// currently driving voice's amplitude register. Callers writing a
// fresh frame to the PSG must skip that register for an owned voice
// (spec.md §4.3 composition rule): the effect repaints it on its own
// timer schedule, and an unconditional frame write would clobber it.
func (p *Pipeline) VoiceWriteOwned(voice int) bool {
	if voice < 0 || voice >= numVoices {
		return false
	}
	return p.sid[voice].active || p.digi[voice].active
}

// digiLevel converts a raw sample byte to a 4-bit amplitude level.
func digiLevel(raw byte, bitsPerSample int) byte {
	if bitsPerSample <= 4 {
		return raw & 0x0F
	}
	return raw >> 4
}

// sidLevel computes the current amplitude for a SID voice: a hard
// on/zero square for the square variant, or a sine-shaped envelope
// peaking at baseLevel for the sinus variant.
func sidLevel(s *sidState) byte {
	if !s.sinus {
		if s.high {
			return s.baseLevel
		}
		return 0
	}
	v := (math.Sin(2*math.Pi*float64(s.phase)/32) + 1) / 2
	return byte(math.Round(v * float64(s.baseLevel)))
}
