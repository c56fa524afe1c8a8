package pali

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/pali/dat"
)

type datBuildNode struct {
	tmpID    int
	state    uint32
	children map[uint16]*datBuildNode
}

// datBackend collects spellings in a pointer trie and compiles them into a
// double-array trie on Freeze. After Freeze it is read-only.
type datBackend struct {
	frozen      bool
	root        *datBuildNode
	nextNodeID  int
	runeToDense map[rune]uint16
	nextDenseID uint16
	resolved    map[int]uint32 // tmpID → frozen state
	compiled    *dat.DAT
}

func newDATBackend() *datBackend {
	return &datBackend{
		root:        &datBuildNode{tmpID: 1, children: make(map[uint16]*datBuildNode)},
		nextNodeID:  2,
		runeToDense: make(map[rune]uint16),
		compiled: &dat.DAT{
			Root: 1,
		},
	}
}

// EncodeKey maps a spelling to dense symbols. Before Freeze, unseen runes
// are added to the symbol alphabet together with their case variants.
// After Freeze, unknown runes encode as 0.
func (db *datBackend) EncodeKey(s string) ([]uint16, bool) {
	key := make([]uint16, 0, utf8.RuneCountInString(s))
	if db.frozen {
		for _, r := range s {
			key = append(key, db.compiled.Dense(r))
		}
		return key, true
	}
	for _, r := range s {
		if r > 0xFFFF {
			return nil, false
		}
		dense, ok := db.runeToDense[r]
		if !ok {
			if db.nextDenseID == ^uint16(0) {
				return nil, false
			}
			db.nextDenseID++
			dense = db.nextDenseID
			db.runeToDense[r] = dense
			db.compiled.Runes.SetFolded(r, dense)
		}
		key = append(key, dense)
	}
	return key, true
}

func (db *datBackend) AllocPositionForWord(key []uint16) int {
	if len(key) == 0 {
		return 0
	}
	if !db.frozen {
		n := db.root
		for _, c := range key {
			if c == 0 {
				return 0
			}
			child := n.children[c]
			if child == nil {
				child = &datBuildNode{
					tmpID:    db.nextNodeID,
					children: make(map[uint16]*datBuildNode),
				}
				db.nextNodeID++
				n.children[c] = child
			}
			n = child
		}
		return n.tmpID
	}
	state := db.compiled.Root
	for _, c := range key {
		next, ok := db.compiled.Transition(state, c)
		if !ok {
			return 0
		}
		state = next
	}
	return int(state)
}

// ResolvePosition maps a position returned before Freeze to the state of the
// frozen trie. It returns 0 for unknown positions or before Freeze.
func (db *datBackend) ResolvePosition(pos int) int {
	if !db.frozen {
		return 0
	}
	return int(db.resolved[pos])
}

func (db *datBackend) Accept(state int, u Unit) {
	assert(db.frozen, "accepting states are set on the frozen trie")
	db.compiled.SetAccepting(uint32(state), int(u))
}

func (db *datBackend) Freeze() {
	if db.frozen {
		return
	}
	db.compiled.Sigma = db.nextDenseID
	db.compiled.Base = make([]int32, int(db.compiled.Root)+1)
	db.compiled.Check = make([]int32, int(db.compiled.Root)+1)
	db.resolved = make(map[int]uint32, db.nextNodeID)
	db.root.state = db.compiled.Root
	queue := []*datBuildNode{db.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		db.resolved[n.tmpID] = n.state
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := findDATBase(db.compiled.Check, labels, db.compiled.Root)
		ensureDATIndex(db.compiled, base+int(labels[len(labels)-1]))
		db.compiled.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			db.compiled.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	db.compiled.Accept = make([]int16, len(db.compiled.Base))
	db.root = nil
	db.runeToDense = nil
	db.frozen = true
}

func (db *datBackend) Iterator() spellingIterator {
	assert(db.frozen, "spelling trie must be frozen before lookup")
	return &datIterator{
		d:     db.compiled,
		state: db.compiled.Root,
	}
}

type datIterator struct {
	d     *dat.DAT
	state uint32
	dead  bool
}

func (it *datIterator) Next(r rune) bool {
	if it.dead {
		return false
	}
	next, ok := it.d.Transition(it.state, it.d.Dense(r))
	if !ok {
		it.dead = true
		return false
	}
	it.state = next
	return true
}

func (it *datIterator) Accepting() (Unit, bool) {
	if it.dead {
		return 0, false
	}
	v, ok := it.d.Accepting(it.state)
	return Unit(v), ok
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// findDATBase finds the smallest base placing all labels into free slots.
// Slots up to root are reserved.
func findDATBase(check []int32, labels []uint16, root uint32) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t <= int(root) || (t < len(check) && check[t] != 0) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureDATIndex(d *dat.DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", db.compiled.NStates(), db.compiled.Sigma, db.frozen)
}

func (db *datBackend) Stats() spellingTrieStats {
	stats := spellingTrieStats{
		Backend:    "dat",
		TotalSlots: db.compiled.NStates(),
		MaxStateID: int(db.compiled.Root),
	}
	if stats.TotalSlots == 0 {
		return stats
	}
	used := 0
	maxID := int(db.compiled.Root)
	for i := range db.compiled.Check {
		if i == int(db.compiled.Root) || db.compiled.Check[i] != 0 {
			used++
			maxID = max(maxID, i)
		}
	}
	stats.UsedSlots = used
	stats.MaxStateID = maxID
	return stats
}

// --- Building the spelling index -------------------------------------------

// buildSpellingIndex compiles folded spellings into a frozen trie whose
// accepting states carry the spelled unit.
func buildSpellingIndex(name string, owner map[string]Unit) (spellingTrie, error) {
	type pendingUnit struct {
		pos  int
		unit Unit
	}
	spellings := make([]string, 0, len(owner))
	for sp := range owner {
		spellings = append(spellings, sp)
	}
	sort.Strings(spellings) // deterministic symbol numbering
	trie := newDATBackend()
	pending := make([]pendingUnit, 0, len(spellings))
	for _, sp := range spellings {
		key, ok := trie.EncodeKey(sp)
		if !ok {
			return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("cannot encode spelling %q", sp)}
		}
		pos := trie.AllocPositionForWord(key)
		if pos == 0 {
			return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("could not allocate trie position for spelling %q", sp)}
		}
		pending = append(pending, pendingUnit{pos: pos, unit: owner[sp]})
	}
	trie.Freeze()
	for _, p := range pending {
		state := trie.ResolvePosition(p.pos)
		if state == 0 {
			return nil, &ConfigError{Table: name,
				Msg: fmt.Sprintf("could not resolve trie position after freeze for temporary position %d", p.pos)}
		}
		trie.Accept(state, p.unit)
	}
	stats := trie.Stats()
	tracer().Infof("spelling trie stats scheme=%s backend=%s used=%d total=%d fill=%.2f maxStateID=%d",
		name, stats.Backend, stats.UsedSlots, stats.TotalSlots, stats.FillRatio(), stats.MaxStateID)
	return trie, nil
}
