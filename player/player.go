// Package player implements the unified playback contract of spec.md
// §6: it owns a psg.PSG, a sequencer.Sequencer, an effects.Pipeline,
// and a format.Profile, and drives them sample-by-sample to fill host
// audio buffers. Player is the session-scoped, mutex-guarded state
// container; Fill (generator.go) runs the per-sample algorithm
// under that lock, grounded on the teacher's
// achievements.Manager idiom of a small sync.Mutex wrapping all
// mutable fields behind locked public methods.
package player

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/chiptune-go/ym2149replay/effects"
	"github.com/chiptune-go/ym2149replay/format"
	"github.com/chiptune-go/ym2149replay/period"
	"github.com/chiptune-go/ym2149replay/psg"
	"github.com/chiptune-go/ym2149replay/sequencer"
	"github.com/chiptune-go/ym2149replay/song"
)

// Player is safe for concurrent use: Fill is expected to run on a
// real-time audio thread while control methods (Play, Seek, SetVolume,
// ...) run on a UI thread. Metadata and DumpRegisters are safe to call
// from either.
type Player struct {
	cfg GeneratorConfig

	mu      sync.Mutex
	snd     *song.Song
	profile format.Profile
	chip    *psg.PSG
	seq     *sequencer.Sequencer
	fx      *effects.Pipeline

	state State
	volume float32

	cyclesPerSample float64
	cycleAccum      float64

	snapshot atomic.Pointer[Snapshot]
}

// New returns an unloaded Player with no song loaded; Fill produces
// silence until Load succeeds.
func New(cfg GeneratorConfig) *Player {
	p := &Player{
		cfg:    cfg.withDefaults(),
		state:  StateStopped,
		volume: 1.0,
	}
	p.snapshot.Store(&Snapshot{State: StateStopped})
	return p
}

// Load replaces the currently playing song with s, resetting all
// generator state. It returns ErrInvalidInput if s is nil or its
// frame rate can't be determined.
func (p *Player) Load(s *song.Song) error {
	if s == nil {
		return fmt.Errorf("load: nil song: %w", ErrInvalidInput)
	}
	frameRate := s.Metadata.FrameRateHz
	if frameRate <= 0 {
		frameRate = s.Timing.FrameRateHz
	}
	if frameRate <= 0 {
		return fmt.Errorf("load: no frame rate on song or metadata: %w", ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.snd = s
	p.profile = format.ForFormat(s.Format)
	p.chip = psg.New()
	p.seq = sequencer.New()
	p.seq.LoadFrames(s.Frames)
	p.seq.SetSamplesPerFrame(int(math.Round(float64(p.cfg.SampleRateHz) / float64(frameRate))))
	p.seq.SetLoopPoint(s.LoopFrame, s.HasLoop)
	p.fx = effects.New(p.cfg.ChipClockHz())

	p.cyclesPerSample = float64(p.cfg.ChipClockHz()) / float64(p.cfg.SampleRateHz)
	p.cycleAccum = 0
	p.state = StateStopped

	p.publishSnapshotLocked()
	return nil
}

// Play transitions to Playing. No-op if no song is loaded.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chip == nil {
		return
	}
	p.state = StatePlaying
	p.publishSnapshotLocked()
}

// Pause transitions to Paused, retaining the current playback
// position. No-op if not currently playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return
	}
	p.state = StatePaused
	p.publishSnapshotLocked()
}

// Stop transitions to Stopped and rewinds to the first frame.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateStopped
	if p.seq != nil {
		p.seq.Seek(0)
	}
	p.cycleAccum = 0
	if p.chip != nil {
		p.chip.Reset()
	}
	if p.fx != nil {
		p.fx = effects.New(p.cfg.ChipClockHz())
	}
	p.publishSnapshotLocked()
}

// Seek moves playback to fraction (0.0-1.0) of the loaded frame
// stream, clamping out-of-range values rather than failing. Any
// in-flight special effect is halted: resuming mid-effect from an
// arbitrary frame has no well-defined timer phase.
func (p *Player) Seek(fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seq == nil || p.snd == nil || len(p.snd.Frames) == 0 {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	target := int(math.Round(fraction * float64(len(p.snd.Frames)-1)))
	p.seq.Seek(target)
	p.cycleAccum = 0
	p.fx = effects.New(p.cfg.ChipClockHz())
	p.publishSnapshotLocked()
}

// SetChannelMute mutes or unmutes tone/noise channel ch (0-2).
func (p *Player) SetChannelMute(ch int, mute bool) error {
	if ch < 0 || ch > 2 {
		return fmt.Errorf("set channel mute: channel %d out of range: %w", ch, ErrInvalidInput)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chip != nil {
		p.chip.SetChannelMute(ch, mute)
	}
	return nil
}

// SetVolume sets the linear output gain applied after the PSG's own
// mixing and filtering.
func (p *Player) SetVolume(linear float32) {
	if linear < 0 {
		linear = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = linear
}

// SetColorFilter enables or disables the PSG's post-DAC color filter.
func (p *Player) SetColorFilter(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chip != nil {
		p.chip.SetColorFilter(on)
	}
}

// State reports the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Metadata reports the loaded song's descriptive metadata. The zero
// value is returned when no song is loaded.
func (p *Player) Metadata() song.Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snd == nil {
		return song.Metadata{}
	}
	return p.snd.Metadata
}

// DumpRegisters returns the PSG's current sixteen register values,
// for a host-side register-view UI.
func (p *Player) DumpRegisters() [16]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chip == nil {
		return [16]byte{}
	}
	return p.chip.Dump()
}

// PeriodTable returns the note-to-period lookup table for this
// Player's chip clock and configured reference pitch (GeneratorConfig.
// RefFreqHz), memoized across calls and across Players sharing the
// same configuration (period.CachedPeriodTable). Hosts doing note
// entry or visualization consult this instead of recomputing
// period.CalculatePeriod per note.
func (p *Player) PeriodTable() *period.PeriodTable {
	return period.CachedPeriodTable(p.cfg.ChipClockHz(), p.cfg.RefFreqHz)
}

// LatestSnapshot returns the most recently published Snapshot,
// lock-free, for a visualizer thread.
func (p *Player) LatestSnapshot() *Snapshot {
	return p.snapshot.Load()
}

func (p *Player) publishSnapshotLocked() {
	snap := &Snapshot{State: p.state}
	if p.chip != nil {
		snap.Registers = p.chip.Dump()
	}
	if p.seq != nil {
		snap.FrameIndex = p.seq.FrameIndex()
	}
	p.snapshot.Store(snap)
}
