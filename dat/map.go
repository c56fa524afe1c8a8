package dat

import "unicode"

// PagedMapBMP maps BMP code points (0..65535) to dense symbol IDs (uint16).
// It's a two-level page table:
//   - Top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - Pages is a flat array of NumPages*256 entries.
//
// Pāli spellings touch only a handful of blocks (Basic Latin, Latin-1,
// Latin Extended-A and Latin Extended Additional), so few pages get allocated.
type PagedMapBMP struct {
	Top   [256]uint16 // page index (1-based); 0 means none
	Pages []uint16    // flat: NumPages*256
}

// Dense returns the dense ID for a BMP code point, or 0 if absent.
func (m *PagedMapBMP) Dense(bmp uint16) uint16 {
	pi := m.Top[bmp>>8]
	if pi == 0 {
		return 0
	}
	return m.Pages[int(pi-1)<<8+int(bmp&0xFF)]
}

// NumPages returns the number of allocated pages.
func (m *PagedMapBMP) NumPages() int { return len(m.Pages) >> 8 }

func (m *PagedMapBMP) ensurePage(hi uint16) uint16 {
	if pi := m.Top[hi]; pi != 0 {
		return pi
	}
	m.Pages = append(m.Pages, make([]uint16, 256)...)
	pi := uint16(len(m.Pages) >> 8)
	m.Top[hi] = pi
	return pi
}

// Set sets mapping bmp -> dense (dense may be 0 to clear).
func (m *PagedMapBMP) Set(bmp uint16, dense uint16) {
	hi := bmp >> 8
	pi := m.Top[hi]
	if pi == 0 {
		if dense == 0 {
			return
		}
		pi = m.ensurePage(hi)
	}
	m.Pages[int(pi-1)<<8+int(bmp&0xFF)] = dense
}

// SetFolded maps r and every rune in its simple case-folding orbit
// ('ā' → 'Ā', 'k' → 'K', …) to dense. Runes outside the BMP are ignored.
func (m *PagedMapBMP) SetFolded(r rune, dense uint16) {
	f := r
	for {
		if f >= 0 && f <= 0xFFFF {
			m.Set(uint16(f), dense)
		}
		f = unicode.SimpleFold(f)
		if f == r {
			return
		}
	}
}
