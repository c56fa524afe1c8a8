package pali

// spellingIterator walks the trie one rune at a time, starting at the root.
type spellingIterator interface {
	Next(r rune) bool        // false once the prefix leaves the trie
	Accepting() (Unit, bool) // unit spelled by the prefix consumed so far
}

type spellingTrieStats struct {
	Backend    string
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

func (s spellingTrieStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// spellingTrie is the internal backend abstraction for spelling-key storage.
type spellingTrie interface {
	EncodeKey(s string) ([]uint16, bool)
	AllocPositionForWord(key []uint16) int
	ResolvePosition(pos int) int
	Accept(state int, u Unit)
	Freeze()
	Iterator() spellingIterator
	Stats() spellingTrieStats
}
