// Package period implements the PSG tone-period/note-number inverse
// math used by tracker-style frontends (spec.md §4.7): computing a
// 16-bit-range tone period from a note index, and the reverse lookup
// that maps a period back to its nearest note plus a signed shift.
package period

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// NoteCount is the number of tabulated note indices (0-127).
const NoteCount = 128

// referenceNote is the note index treated as concert pitch (ref_freq),
// matching the standard nine-semitones-above-C convention (A in
// octave 0).
const referenceNote = 9

// CalculatePeriod returns the 16-bit PSG tone period for note (0-127)
// given the caller's effective PSG clock (already divided down to
// whatever rate the chip's tone counters run at — for a 2MHz YM2149
// this is master_clock/8) and reference frequency, per spec.md §3:
//
//	period = round(psgClock / (refFreq * 2^(octave + (noteInOctave-9)/12)))
//
// clamped to the uint16 range.
func CalculatePeriod(psgClock, refFreq int, note int) uint16 {
	octave := note / 12
	noteInOctave := note % 12
	exp := float64(octave) + float64(noteInOctave-referenceNote)/12
	freq := float64(refFreq) * math.Pow(2, exp)
	p := math.Round(float64(psgClock) / freq)
	if p < 0 {
		return 0
	}
	if p > 65535 {
		return 65535
	}
	return uint16(p)
}

// PeriodTable is the precomputed note-index -> period table for one
// (psgClock, refFreq) pair.
type PeriodTable struct {
	periods [NoteCount]uint16
}

// NewPeriodTable builds the table from scratch.
func NewPeriodTable(psgClock, refFreq int) *PeriodTable {
	t := &PeriodTable{}
	for note := 0; note < NoteCount; note++ {
		t.periods[note] = CalculatePeriod(psgClock, refFreq, note)
	}
	return t
}

// Period returns the tabulated period for note (0-127).
func (t *PeriodTable) Period(note int) uint16 {
	if note < 0 || note >= NoteCount {
		return 0
	}
	return t.periods[note]
}

// FindNoteAndShift finds the nearest tabulated note for period by
// scanning the ordered period list, returning the note index and the
// signed shift (period - table[note]) needed to reach the exact
// period. Ties prefer the smaller absolute shift, and among equal
// shifts the lower note index (spec.md §4.7).
func (t *PeriodTable) FindNoteAndShift(p uint16) (note int, shift int) {
	bestNote := 0
	bestShift := int(p) - int(t.periods[0])
	bestAbs := abs(bestShift)
	for n := 1; n < NoteCount; n++ {
		s := int(p) - int(t.periods[n])
		a := abs(s)
		if a < bestAbs {
			bestAbs = a
			bestShift = s
			bestNote = n
		}
	}
	return bestNote, bestShift
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type tableKey struct {
	psgClock int
	refFreq  int
}

var tableCache, _ = lru.New[tableKey, *PeriodTable](32)

// CachedPeriodTable returns the PeriodTable for (psgClock, refFreq),
// building and memoizing it on first use. Tracker frontends that
// repeatedly ask for the same chip configuration's table (e.g. once
// per loaded song) avoid recomputing all 128 entries each time.
func CachedPeriodTable(psgClock, refFreq int) *PeriodTable {
	key := tableKey{psgClock, refFreq}
	if t, ok := tableCache.Get(key); ok {
		return t
	}
	t := NewPeriodTable(psgClock, refFreq)
	tableCache.Add(key, t)
	return t
}
