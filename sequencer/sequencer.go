// Package sequencer drives a song.Song frame stream: it owns the
// current-frame cursor and the sub-frame sample counter, and decides
// when the next frame is due, when the stream loops, and when it
// completes.
package sequencer

import "github.com/chiptune-go/ym2149replay/song"

// AdvanceResult reports what happened on one AdvanceSample call.
type AdvanceResult int

const (
	NoFrameChange AdvanceResult = iota
	FrameAdvanced
	Looped
	Completed
)

func (r AdvanceResult) String() string {
	switch r {
	case FrameAdvanced:
		return "FrameAdvanced"
	case Looped:
		return "Looped"
	case Completed:
		return "Completed"
	default:
		return "NoFrameChange"
	}
}

// Sequencer walks a fixed frame stream at a fixed samples-per-frame
// rate, following the (frame_index, samples_in_frame) state machine
// described in spec.md §4.2.
type Sequencer struct {
	frames         []song.Frame
	loopFrame      int
	hasLoop        bool
	samplesPerFrame int

	frameIndex    int
	samplesInFrame int
	completed     bool
}

// New returns a Sequencer with no frames loaded and a default
// samples-per-frame of 1; callers must LoadFrames and
// SetSamplesPerFrame before advancing.
func New() *Sequencer {
	return &Sequencer{samplesPerFrame: 1, completed: true}
}

// LoadFrames replaces the frame stream and resets the cursor to frame
// 0 with a fresh sub-frame counter.
func (s *Sequencer) LoadFrames(frames []song.Frame) {
	s.frames = frames
	s.frameIndex = 0
	s.samplesInFrame = 0
	s.completed = len(frames) == 0
}

// SetSamplesPerFrame sets how many emitted samples correspond to one
// frame tick, typically round(sample_rate / frame_rate). n must be at
// least 1; values below 1 are clamped.
func (s *Sequencer) SetSamplesPerFrame(n int) {
	if n < 1 {
		n = 1
	}
	s.samplesPerFrame = n
}

// SetLoopPoint sets the frame index to wrap to on completion, or
// disables looping if ok is false or frame is outside the loaded
// stream.
func (s *Sequencer) SetLoopPoint(frame int, ok bool) {
	if !ok || frame < 0 || frame >= len(s.frames) {
		s.hasLoop = false
		s.loopFrame = 0
		return
	}
	s.hasLoop = true
	s.loopFrame = frame
}

// CurrentFrameRegs returns the register contents of the current frame,
// or nil if the stream is empty or playback has completed with no
// loop point.
func (s *Sequencer) CurrentFrameRegs() *song.Frame {
	if len(s.frames) == 0 || s.frameIndex < 0 || s.frameIndex >= len(s.frames) {
		return nil
	}
	return &s.frames[s.frameIndex]
}

// FrameIndex returns the current frame cursor.
func (s *Sequencer) FrameIndex() int {
	return s.frameIndex
}

// AtFrameStart reports whether the sub-frame sample counter is at the
// start of the current frame — the point at which the sample
// generator must push a fresh frame-write (spec.md §4.5 step 1).
func (s *Sequencer) AtFrameStart() bool {
	return s.samplesInFrame == 0
}

// Completed reports whether playback has finished with no loop point
// to wrap to.
func (s *Sequencer) Completed() bool {
	return s.completed
}

// AdvanceSample increments the sub-frame sample counter by one. When it
// reaches SamplesPerFrame, it resets and either moves to the next
// frame, wraps to the loop point, or completes.
func (s *Sequencer) AdvanceSample() AdvanceResult {
	if s.completed {
		return Completed
	}
	if len(s.frames) == 0 {
		s.completed = true
		return Completed
	}

	s.samplesInFrame++
	if s.samplesInFrame < s.samplesPerFrame {
		return NoFrameChange
	}

	s.samplesInFrame = 0
	s.frameIndex++
	if s.frameIndex < len(s.frames) {
		return FrameAdvanced
	}

	if s.hasLoop {
		s.frameIndex = s.loopFrame
		return Looped
	}

	s.frameIndex = len(s.frames)
	s.completed = true
	return Completed
}

// Seek moves the cursor to frameIndex, clamped to the loaded range,
// and resets the sub-frame counter.
func (s *Sequencer) Seek(frameIndex int) {
	if len(s.frames) == 0 {
		s.frameIndex = 0
		s.completed = true
		return
	}
	if frameIndex < 0 {
		frameIndex = 0
	}
	if frameIndex >= len(s.frames) {
		frameIndex = len(s.frames) - 1
	}
	s.frameIndex = frameIndex
	s.samplesInFrame = 0
	s.completed = false
}
