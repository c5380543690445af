package psg

import "testing"

func TestDumpReflectsLastWrite(t *testing.T) {
	p := New()
	p.Write(0, 0x12)
	p.Write(0, 0x34)
	p.Clock()
	p.Clock()
	got := p.Dump()
	if got[0] != 0x34 {
		t.Fatalf("dump[0] = %#x, want 0x34", got[0])
	}
}

func TestInvalidAddressIsMasked(t *testing.T) {
	p := New()
	p.Write(16, 0xAB) // masks to addr 0
	got := p.Dump()
	if got[0] != 0xAB {
		t.Fatalf("dump[0] = %#x, want 0xAB", got[0])
	}
}

func TestAllDisableSilencesAfterReset(t *testing.T) {
	p := New()
	p.Write(7, 0x3F)
	p.Clock()
	if s := p.Sample(); s != 0 {
		t.Fatalf("sample() = %v, want 0 immediately after R7=0x3F with zero amplitude registers", s)
	}
}

func TestDCFilterConvergesOnConstantInput(t *testing.T) {
	p := New()
	// R7=0x3F bypasses every tone/noise gate (active-low, all bits
	// set), so each channel outputs its fixed amplitude unconditionally
	// — a true constant, not a square wave.
	p.Write(7, 0x3F)
	p.Write(8, 0x0F)

	for i := 0; i < 2*dcBufferSize; i++ {
		p.Clock()
	}
	if s := p.Sample(); s > 0.05 || s < -0.05 {
		t.Fatalf("sample() = %v after 2*%d clocks of constant input, want |x| < 0.05", s, dcBufferSize)
	}
}

func TestMonotoneRMSByAmplitude(t *testing.T) {
	p := New()
	p.Write(7, 0x3E)
	p.SetChannelMute(1, true)
	p.SetChannelMute(2, true)

	const clocksPerLevel = 4 * dcBufferSize
	var lastRMS float64 = -1
	for level := 0; level < 16; level++ {
		p.Write(8, byte(level))
		var sumSq float64
		for i := 0; i < clocksPerLevel; i++ {
			p.Clock()
			s := float64(p.Sample())
			sumSq += s * s
		}
		rms := sumSq / float64(clocksPerLevel)
		if level > 0 && rms <= lastRMS {
			t.Fatalf("level %d: rms^2=%v not greater than level %d's rms^2=%v", level, rms, level-1, lastRMS)
		}
		lastRMS = rms
	}
}

func TestR13ResetsEnvelopeLevel(t *testing.T) {
	p := New()
	p.Write(11, 0x10)
	p.Write(12, 0x00)
	p.Write(13, 0x00) // shape: continue=0 -> single decay ramp
	for i := 0; i < 1000; i++ {
		p.Clock()
	}
	if lvl := p.env.level(); lvl != 0 {
		t.Fatalf("envelope level after long run of shape 0 = %d, want 0", lvl)
	}

	// Rewrite R13 mid-cycle: level must restart from the shape's
	// first step (the attack bit for shape 0x00 is clear, so the
	// ramp starts at level 15, falling).
	p.Write(13, 0x00)
	if lvl := p.env.level(); lvl != 15 {
		t.Fatalf("envelope level immediately after R13 rewrite = %d, want 15", lvl)
	}
}

func TestReset(t *testing.T) {
	p := New()
	p.Write(0, 0xFF)
	p.Write(7, 0x00)
	p.Clock()
	p.Reset()
	got := p.Dump()
	for i, v := range got {
		if v != 0 {
			t.Fatalf("dump[%d] = %#x after Reset, want 0", i, v)
		}
	}
	if p.Sample() != 0 {
		t.Fatalf("Sample() after Reset = %v, want 0", p.Sample())
	}
}

func TestSingleToneA4ZeroCrossing(t *testing.T) {
	p := New()
	p.Write(7, 0x3E)
	p.Write(0, 0x1C)
	p.Write(1, 0x01) // period 0x11C = 284
	p.Write(8, 0x0F)

	const masterClock = 2000000
	const sampleRate = 44100
	const chipClock = masterClock / 8

	var crossings int
	var prev float32
	var accum float64
	const samples = 44100
	for i := 0; i < samples; i++ {
		accum += float64(chipClock) / float64(sampleRate)
		for accum >= 1 {
			p.Clock()
			accum--
		}
		s := p.Sample()
		if i > 0 && ((prev < 0) != (s < 0)) {
			crossings++
		}
		prev = s
	}

	// One full cycle produces two zero crossings; 440Hz over one
	// second gives roughly 880 crossings.
	freq := float64(crossings) / 2.0
	if freq < 439 || freq > 441 {
		t.Fatalf("measured frequency = %v Hz, want 440 +/- 1", freq)
	}
}
