package psg

// envelope implements the YM2149 hardware envelope generator: a 16-bit
// counter reloaded from R11/R12, stepping a 5-bit position through one
// of sixteen shapes selected by the low nibble of R13. The position
// counter range is 0-31; output level is position>>1, giving sixteen
// audible levels per ramp.
//
// Shape bits (datasheet order, low nibble of R13):
//
//	bit3 continue   bit2 attack   bit1 alternate   bit0 hold
type envelope struct {
	period  uint16 // reload value from R11/R12
	counter uint16 // down-counter, ticks once per clock()

	pos     uint8 // 0-31 position within the current ramp
	rising  bool  // current ramp direction
	holding bool
	holdOne bool // true => hold at 15, false => hold at 0

	continueFlag bool
	attack       bool
	alternate    bool
	hold         bool
}

// setShape latches R13's low nibble and restarts the envelope from the
// beginning of its first ramp, per spec.md §4.1/§9(ii): any write to
// R13, wherever the current cycle stood, forces phase/position back to
// the shape's start.
func (e *envelope) setShape(shape uint8) {
	e.continueFlag = shape&0x08 != 0
	e.attack = shape&0x04 != 0
	e.alternate = shape&0x02 != 0
	e.hold = shape&0x01 != 0

	e.pos = 0
	e.rising = e.attack
	e.holding = false
	e.holdOne = false
	e.counter = e.period
}

func (e *envelope) setPeriod(period uint16) {
	e.period = period
}

// clock advances the envelope by one chip clock: the counter counts
// down, and when it expires it is reloaded from period and the
// position steps.
func (e *envelope) clock() {
	if e.counter > 0 {
		e.counter--
		return
	}
	e.counter = e.period
	e.step()
}

func (e *envelope) step() {
	if e.holding {
		return
	}
	e.pos++
	if e.pos < 32 {
		return
	}
	e.pos = 0
	switch {
	case !e.continueFlag:
		e.holding = true
		e.holdOne = false
	case e.hold:
		e.holding = true
		e.holdOne = e.attack != e.alternate
	case e.alternate:
		e.rising = !e.rising
	}
}

// level returns the current 4-bit envelope output (0-15).
func (e *envelope) level() uint8 {
	if e.holding {
		if e.holdOne {
			return 15
		}
		return 0
	}
	v := e.pos
	if !e.rising {
		v = 31 - v
	}
	return v >> 1
}

func (e *envelope) reset() {
	*e = envelope{}
}
