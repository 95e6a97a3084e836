// SPDX-License-Identifier: MPL-2.0

package bocu1

// State is the single value carried from one code point to the next during
// an encode or decode pass. It is a plain value: every transition returns a
// new State, so concurrent passes never share anything.
//
// The zero State is not valid; start from NewState.
type State struct {
	anchor rune
}

// NewState returns the state at the start of a sequence.
func NewState() State {
	return State{anchor: baselineAnchor}
}

// Anchor returns the value the next delta is measured from.
func (s State) Anchor() rune { return s.anchor }

// Reset returns the baseline state.
func (s State) Reset() State {
	return NewState()
}

// Advance returns the state after the non-control code point cp.
func (s State) Advance(cp rune) State {
	return State{anchor: blockAnchor(cp)}
}

// OnControl returns the state after the self-encoded code point cp (< 0x21).
// C0 controls reset the state; SP leaves it unchanged.
func (s State) OnControl(cp rune) State {
	if cp == spaceByte {
		return s
	}
	return s.Reset()
}
