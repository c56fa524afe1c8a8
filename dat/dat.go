package dat

// DAT is a frozen double-array trie over Roman spellings of alphabet units.
//   - States are indices into Base/Check (0 is unused; Root is typically 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a dense symbol ID in [1..Sigma]. c==0 means "not in alphabet".
//
// Accepting states:
//   - Accept[s] holds the accepted value plus one, so that 0 means
//     "state s does not end a spelling". Values are small non-negative
//     integers (unit ranks for the Pāli spelling index).
//
// Mapping:
//   - Runes maps BMP code points to dense symbol IDs. Letters are usually
//     entered case-folded, i.e. 'K' and 'k' share one symbol.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Accept holds value+1 for accepting states, 0 otherwise.
	Accept []int16 // len == N

	// Runes maps BMP code points to dense IDs [0..Sigma].
	Runes PagedMapBMP
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) || int(state) >= len(d.Check) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Accepting reports the value stored for state, if state ends a key.
func (d *DAT) Accepting(state uint32) (int, bool) {
	if int(state) >= len(d.Accept) {
		return 0, false
	}
	v := d.Accept[state]
	if v == 0 {
		return 0, false
	}
	return int(v) - 1, true
}

// SetAccepting marks state as the end of a key carrying value.
func (d *DAT) SetAccepting(state uint32, value int) {
	for int(state) >= len(d.Accept) {
		d.Accept = append(d.Accept, 0)
	}
	d.Accept[state] = int16(value + 1)
}

// Dense maps a rune to a dense alphabet ID.
// Returns 0 if the rune is not part of any key or lies outside the BMP.
func (d *DAT) Dense(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	return d.Runes.Dense(uint16(r))
}
