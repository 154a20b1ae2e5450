package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It exercises generation, make, and unmake together, so a single wrong
// count pinpoints a rule bug long before search would.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns the per-root-move leaf counts at the given depth,
// keyed by coordinate notation. Used to narrow down perft mismatches.
func PerftDivide(p *Position, depth int) map[string]uint64 {
	counts := make(map[string]uint64)
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		counts[m.String()] = Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return counts
}
