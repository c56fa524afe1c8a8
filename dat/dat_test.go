package dat

import "testing"

func TestPagedMapFolded(t *testing.T) {
	var m PagedMapBMP
	m.SetFolded('ā', 3)
	m.SetFolded('k', 7)
	if d := m.Dense(uint16('Ā')); d != 3 {
		t.Fatalf("expected upper-case Ā to map to 3, got %d", d)
	}
	if d := m.Dense(uint16('K')); d != 7 {
		t.Fatalf("expected upper-case K to map to 7, got %d", d)
	}
	if d := m.Dense(uint16('x')); d != 0 {
		t.Fatalf("expected unmapped rune to yield 0, got %d", d)
	}
	if m.NumPages() != 3 { // Basic Latin, Latin Extended-A, Letterlike (Kelvin sign)
		t.Fatalf("expected 3 pages, got %d", m.NumPages())
	}
}

func TestTransitionAndAccept(t *testing.T) {
	// hand-built trie for the single key "ab" with symbols a=1, b=2
	d := &DAT{
		Root:  1,
		Sigma: 2,
		Base:  []int32{0, 1, 2, 0, 0},
		Check: []int32{0, 0, 1, 0, 2},
	}
	d.Runes.Set('a', 1)
	d.Runes.Set('b', 2)
	d.SetAccepting(4, 9)
	s, ok := d.Transition(d.Root, d.Dense('a'))
	if !ok || s != 2 {
		t.Fatalf("expected transition to state 2, got %d/%v", s, ok)
	}
	if _, ok := d.Accepting(s); ok {
		t.Fatalf("state %d should not be accepting", s)
	}
	s, ok = d.Transition(s, d.Dense('b'))
	if !ok || s != 4 {
		t.Fatalf("expected transition to state 4, got %d/%v", s, ok)
	}
	if v, ok := d.Accepting(s); !ok || v != 9 {
		t.Fatalf("expected accepting value 9, got %d/%v", v, ok)
	}
	if _, ok := d.Transition(s, d.Dense('z')); ok {
		t.Fatalf("unknown symbol must not transition")
	}
}
