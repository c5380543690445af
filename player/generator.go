package player

import "github.com/chiptune-go/ym2149replay/song"

// Fill writes len(buf) samples of audio into buf, running the
// generator algorithm of spec.md §4.5. Fill never blocks and never
// returns an error: when nothing is loaded, or playback is Paused or
// Stopped, it writes silence. When the frame stream completes with no
// loop point, the remainder of buf is silence and the Player
// transitions to Stopped.
func (p *Player) Fill(buf []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePlaying || p.chip == nil {
		zero(buf)
		return
	}

	for i := range buf {
		if p.seq.Completed() {
			zero(buf[i:])
			p.state = StateStopped
			break
		}

		if p.seq.AtFrameStart() {
			p.applyCurrentFrameLocked()
		}

		p.cycleAccum += p.cyclesPerSample
		n := int(p.cycleAccum)
		p.cycleAccum -= float64(n)
		for c := 0; c < n; c++ {
			p.fx.Tick(p.chip)
			p.chip.Clock()
		}

		buf[i] = p.chip.Sample() * p.volume

		p.seq.AdvanceSample()
	}

	p.publishSnapshotLocked()
}

func zero(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// applyCurrentFrameLocked performs spec.md §4.5 step 1: read the
// current frame, run the format profile's fix-up, apply any decoded
// effect commands, then write the sixteen registers to the PSG in
// address order, skipping the amplitude register of any voice an
// active SID or DigiDrum owns (effects.Pipeline.VoiceWriteOwned).
// It does not touch the effects pipeline's running
// state beyond the commands the frame itself carries, so an ongoing
// DigiDrum or SID voice survives a frame boundary that doesn't
// mention it.
func (p *Player) applyCurrentFrameLocked() {
	regsPtr := p.seq.CurrentFrameRegs()
	if regsPtr == nil {
		return
	}
	frame := *regsPtr

	p.profile.PreprocessFrame(&frame)
	for _, cmd := range p.profile.DecodeEffects(&frame) {
		p.applyEffectCommandLocked(cmd, frame)
	}

	for addr := 0; addr < 16; addr++ {
		if voice, ok := voiceForAmpRegister(addr); ok && p.fx.VoiceWriteOwned(voice) {
			continue
		}
		p.chip.Write(addr, frame[addr])
	}
}

// voiceForAmpRegister reports the voice index that addr's amplitude
// register belongs to, if any.
func voiceForAmpRegister(addr int) (voice int, ok bool) {
	switch addr {
	case 8, 9, 10:
		return addr - 8, true
	default:
		return 0, false
	}
}

func (p *Player) applyEffectCommandLocked(cmd song.EffectCommand, frame song.Frame) {
	switch cmd.Kind {
	case song.EffectSyncBuzzerStart:
		p.fx.SyncBuzzerStart(cmd.FreqHz, byte(cmd.EnvShape))
	case song.EffectSyncBuzzerStop:
		p.fx.SyncBuzzerStop()
	case song.EffectSIDStart:
		p.fx.SIDStart(cmd.Voice, cmd.FreqHz, byte(cmd.BaseLevel))
	case song.EffectSIDSinStart:
		p.fx.SIDSinStart(cmd.Voice, cmd.FreqHz, byte(cmd.BaseLevel))
	case song.EffectSIDStop:
		p.fx.SIDStop(cmd.Voice)
	case song.EffectDigiDrumStart:
		sample, bits := p.lookupDigiDrumSample(frame)
		p.fx.DigiDrumStart(cmd.Voice, sample, bits, cmd.FreqHz)
	case song.EffectDigiDrumStop:
		p.fx.DigiDrumStop(cmd.Voice)
	}
}

// lookupDigiDrumSample resolves register 15's sample-bank index
// against the loaded song's SampleBank: bit7 selects 8-bit (1) vs
// 4-bit (0) sample data, bits 0-6 index song.SampleBank. This lookup
// lives in the player, not format.Profile, because only the player
// holds the whole Song (SampleBank included) alongside the one frame
// a Profile sees.
func (p *Player) lookupDigiDrumSample(frame song.Frame) ([]byte, int) {
	bits := 4
	if frame[15]&0x80 != 0 {
		bits = 8
	}
	idx := int(frame[15] & 0x7F)
	if p.snd == nil || idx < 0 || idx >= len(p.snd.SampleBank) {
		return nil, bits
	}
	return p.snd.SampleBank[idx], bits
}
