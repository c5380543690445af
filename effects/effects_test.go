package effects

import (
	"testing"

	"github.com/chiptune-go/ym2149replay/psg"
)

const testChipClockHz = 250000

func TestDigiDrumSuppressesSIDOnSameVoice(t *testing.T) {
	chip := psg.New()
	p := New(testChipClockHz)

	sample := []byte{0x0A, 0x05, 0x0F, 0x00}
	const freqHz = 25000 // period = 250000/25000 = 10 chip clocks
	p.DigiDrumStart(0, sample, 4, freqHz)
	p.SIDStart(0, freqHz, 0x0F)

	period := testChipClockHz / freqHz
	for _, want := range sample {
		for c := 0; c < period; c++ {
			p.Tick(chip)
			chip.Clock()
		}
		if got := chip.Dump()[8] & 0x0F; got != want {
			t.Fatalf("R8 = %#x after digidrum step, want %#x (SID must not have written)", got, want)
		}
	}
}

func TestSyncBuzzerRewritesR13AtTimerRate(t *testing.T) {
	chip := psg.New()
	chip.Write(13, 0x0E) // distinct from the buzzer's shape
	p := New(testChipClockHz)
	const freqHz = 25000
	p.SyncBuzzerStart(freqHz, 0x0D)

	period := testChipClockHz / freqHz
	for c := 0; c < period; c++ {
		p.Tick(chip)
		chip.Clock()
	}
	if got := chip.Dump()[13] & 0x0F; got != 0x0D {
		t.Fatalf("R13 = %#x after one buzzer period, want 0x0d", got)
	}
}

func TestVoiceWriteOwned(t *testing.T) {
	p := New(testChipClockHz)
	if p.VoiceWriteOwned(0) {
		t.Fatalf("voice 0 owned before any effect started")
	}

	p.SIDStart(0, 25000, 0x0F)
	if !p.VoiceWriteOwned(0) {
		t.Fatalf("voice 0 not owned while SID active")
	}
	if p.VoiceWriteOwned(1) {
		t.Fatalf("voice 1 owned by voice 0's SID")
	}

	p.SIDStop(0)
	if p.VoiceWriteOwned(0) {
		t.Fatalf("voice 0 still owned after SIDStop")
	}

	p.DigiDrumStart(0, []byte{0x01}, 4, 25000)
	if !p.VoiceWriteOwned(0) {
		t.Fatalf("voice 0 not owned while DigiDrum active")
	}
	p.DigiDrumStop(0)
	if p.VoiceWriteOwned(0) {
		t.Fatalf("voice 0 still owned after DigiDrumStop")
	}
}

func TestSIDStopHaltsWrites(t *testing.T) {
	chip := psg.New()
	p := New(testChipClockHz)
	p.SIDStart(1, 25000, 0x0F)
	p.SIDStop(1)

	for i := 0; i < 4*10; i++ {
		p.Tick(chip)
		chip.Clock()
	}
	if got := chip.Dump()[9]; got != 0 {
		t.Fatalf("R9 = %#x after SIDStop, want 0 (never written)", got)
	}
}
