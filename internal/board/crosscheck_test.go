package board

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
)

// TestLegalMovesAgainstReference compares the legal move set position by
// position with the notnil/chess library as an independent oracle.
func TestLegalMovesAgainstReference(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		"8/P6k/8/8/8/8/1p5K/8 w - - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
	}

	for _, fen := range fens {
		pos := &Position{}
		pos.LoadFEN(fen)

		var ours []string
		ml := pos.GenerateLegalMoves()
		for i := 0; i < ml.Len(); i++ {
			ours = append(ours, ml.Get(i).String())
		}
		sort.Strings(ours)

		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("reference rejected FEN %q: %v", fen, err)
		}
		game := chess.NewGame(opt)

		var theirs []string
		for _, m := range game.ValidMoves() {
			theirs = append(theirs, m.String())
		}
		sort.Strings(theirs)

		if diff := cmp.Diff(theirs, ours); diff != "" {
			t.Errorf("%q: legal moves disagree with reference (-reference +ours):\n%s", fen, diff)
		}
	}
}
