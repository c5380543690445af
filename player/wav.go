package player

import (
	"encoding/binary"
	"fmt"
	"io"
)

// RenderToWAV renders frameCount mono samples (WAV sample frames)
// starting from the Player's current position and writes them as a
// canonical 16-bit PCM mono WAV file, grounded on the original Rust
// replayer's export::wav module (hound-style header, clamp-and-scale
// to i16). It does not call Play, Stop or Seek itself: callers that
// want a render from the start should Seek(0) first, and playback must
// already be Playing, since a caller may want to render a mid-song
// range. If the frame stream completes during the render, Fill moves
// State to Stopped and the remaining samples are silence.
func (p *Player) RenderToWAV(w io.Writer, frameCount int) error {
	if frameCount < 0 {
		return fmt.Errorf("render to wav: negative frame count: %w", ErrInvalidInput)
	}

	p.mu.Lock()
	sampleRate := uint32(p.cfg.SampleRateHz)
	p.mu.Unlock()

	dataSize := uint32(frameCount) * 2 // 16-bit mono
	if err := writeWAVHeader(w, sampleRate, dataSize); err != nil {
		return err
	}

	const chunkSamples = 4096
	buf := make([]float32, chunkSamples)
	pcm := make([]byte, chunkSamples*2)

	remaining := frameCount
	for remaining > 0 {
		n := chunkSamples
		if n > remaining {
			n = remaining
		}
		p.Fill(buf[:n])
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(pcm[i*2:], uint16(clampToInt16(buf[i])))
		}
		if _, err := w.Write(pcm[:n*2]); err != nil {
			return fmt.Errorf("render to wav: %w", err)
		}
		remaining -= n
	}
	return nil
}

func clampToInt16(sample float32) int16 {
	if sample > 1 {
		sample = 1
	}
	if sample < -1 {
		sample = -1
	}
	return int16(sample * 32767)
}

func writeWAVHeader(w io.Writer, sampleRate, dataSize uint32) error {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 36+dataSize)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(hdr[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], numChannels)
	binary.LittleEndian.PutUint32(hdr[24:28], sampleRate)
	binary.LittleEndian.PutUint32(hdr[28:32], byteRate)
	binary.LittleEndian.PutUint16(hdr[32:34], blockAlign)
	binary.LittleEndian.PutUint16(hdr[34:36], bitsPerSample)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataSize)

	_, err := w.Write(hdr[:])
	if err != nil {
		return fmt.Errorf("render to wav: header: %w", err)
	}
	return nil
}
