package parser

// ResolveColumns picks the front and back column indices for a row of width
// cells. When both notetype and deck columns are declared and the row is
// wide enough, front and back are the two columns after the later of them.
// Otherwise they are the first two columns not reserved for notetype, deck,
// or tags. ok is false when the row has fewer than two usable columns.
func ResolveColumns(cfg Config, width int) (front, back int, ok bool) {
	nt, ntSet := cfg.Notetype.Index()
	deck, deckSet := cfg.Deck.Index()
	if ntSet && deckSet {
		front = max(nt, deck) + 1
		back = front + 1
		if back < width {
			return front, back, true
		}
	}

	reserved := make(map[int]struct{}, 3)
	for _, c := range []Column{cfg.Notetype, cfg.Deck, cfg.Tags} {
		if c.within(width) {
			reserved[c.index] = struct{}{}
		}
	}

	candidates := make([]int, 0, 2)
	for i := 0; i < width && len(candidates) < 2; i++ {
		if _, r := reserved[i]; !r {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < 2 {
		return 0, 0, false
	}
	return candidates[0], candidates[1], true
}
