package player

import "errors"

// Error taxonomy per spec.md §7. Setters return these wrapped with
// context via fmt.Errorf("...: %w", ...); the sample-production path
// never returns an error — on internal inconsistency it produces
// silence and raises State to Stopped.
var (
	// ErrInvalidInput covers malformed frame streams, a zero
	// samples-per-frame, an out-of-range seek (which is recovered by
	// clamping and is not itself fatal), and invalid effect
	// parameters such as a zero timer frequency.
	ErrInvalidInput = errors.New("player: invalid input")

	// ErrExternalLoadFailure is surfaced by loader collaborators
	// (spec.md §6); the core treats it as opaque.
	ErrExternalLoadFailure = errors.New("player: external load failure")

	// ErrHostDriverTimeout marks a CPU-emulating backend (SNDH/AY)
	// exceeding its per-frame step budget. No code in this module
	// returns it, and Fill never returns an error.
	ErrHostDriverTimeout = errors.New("player: host driver timeout")
)
