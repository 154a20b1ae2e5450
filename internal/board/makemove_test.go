package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestMakeUnmakeRoundTrip makes and unmakes every legal move in a set of
// positions covering captures, en passant, castling, and promotion, and
// requires the position to come back byte for byte, hash included.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		"8/P6k/8/8/8/8/1p5K/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	}

	for _, fen := range fens {
		pos := &Position{}
		pos.LoadFEN(fen)
		want := pos.Copy()

		moves := pos.GeneratePseudoLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo, ok := pos.MakeMove(m)
			if ok {
				pos.UnmakeMove(m, undo)
			}
			if diff := cmp.Diff(want, pos, cmp.AllowUnexported(Position{})); diff != "" {
				t.Fatalf("%q: make/unmake of %v did not restore the position (-want +got):\n%s", fen, m, diff)
			}
		}
	}
}

// TestIncrementalHashMatchesComputed walks a line touching every hash
// component and checks the incremental hash against a scratch computation
// after each move.
func TestIncrementalHashMatchesComputed(t *testing.T) {
	pos := NewPosition()
	line := []string{"e2e4", "d7d5", "e4d5", "g8f6", "d5d6", "e7e6", "d6c7", "f8b4", "c7b8q", "e8g8"}

	for _, ms := range line {
		m, err := ParseMove(ms, pos)
		if err != nil {
			t.Fatalf("parse %s: %v", ms, err)
		}
		if _, ok := pos.MakeMove(m); !ok {
			t.Fatalf("move %s rejected", ms)
		}
		if pos.Hash != pos.ComputeHash() {
			t.Fatalf("after %s: incremental hash %#x != computed %#x", ms, pos.Hash, pos.ComputeHash())
		}
	}
}

// TestHashTransposition verifies that two different move orders reaching the
// same position produce the same fingerprint. Knight development avoids the
// en passant component, which legitimately differs after double pushes.
func TestHashTransposition(t *testing.T) {
	lineA := []string{"g1f3", "g8f6", "b1c3", "b8c6"}
	lineB := []string{"b1c3", "b8c6", "g1f3", "g8f6"}

	play := func(line []string) *Position {
		pos := NewPosition()
		for _, ms := range line {
			m, err := ParseMove(ms, pos)
			if err != nil {
				t.Fatalf("parse %s: %v", ms, err)
			}
			if _, ok := pos.MakeMove(m); !ok {
				t.Fatalf("move %s rejected", ms)
			}
		}
		return pos
	}

	a, b := play(lineA), play(lineB)
	if a.Hash != b.Hash {
		t.Errorf("transposed lines hash to %#x and %#x", a.Hash, b.Hash)
	}
	if a.ToFEN() != b.ToFEN() {
		t.Errorf("transposed lines differ: %s vs %s", a.ToFEN(), b.ToFEN())
	}
}

// TestMakeMoveRejectsSelfCheck checks that a pinned piece cannot move and
// that the position is untouched after the rejection.
func TestMakeMoveRejectsSelfCheck(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("4k3/8/8/8/8/8/4R3/4K2r w - - 0 1")
	want := pos.Copy()

	m, err := ParseMove("e2a2", pos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := pos.MakeMove(m); ok {
		t.Fatal("moving a pinned rook off the file was accepted")
	}
	if diff := cmp.Diff(want, pos, cmp.AllowUnexported(Position{})); diff != "" {
		t.Errorf("rejected move mutated the position (-want +got):\n%s", diff)
	}
}

// TestMakeMoveKinglessSide plays a move in a position without kings, which
// the lenient FEN loader accepts. With no king to expose there is nothing to
// reject.
func TestMakeMoveKinglessSide(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("8/8/8/8/4P3/8/8/8 w - - 0 1")

	m, err := ParseMove("e4e5", pos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := pos.MakeMove(m); !ok {
		t.Fatal("pawn push rejected in kingless position")
	}
	if got := pos.PieceAt(NewSquare(4, 4)); got != WhitePawn {
		t.Errorf("e5 = %v after e4e5", got)
	}
}

// TestCastlingRevokesRights plays both castling moves and checks rights and
// rook placement.
func TestCastlingRevokesRights(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m, _ := ParseMove("e1g1", pos)
	if _, ok := pos.MakeMove(m); !ok {
		t.Fatal("white kingside castle rejected")
	}
	if pos.PieceAt(F1) != NewPiece(Rook, White) || pos.PieceAt(G1) != NewPiece(King, White) {
		t.Errorf("after O-O: f1=%v g1=%v", pos.PieceAt(F1), pos.PieceAt(G1))
	}
	if pos.CastlingRights&(WhiteKingSideCastle|WhiteQueenSideCastle) != 0 {
		t.Errorf("white rights not revoked: %v", pos.CastlingRights)
	}

	m, _ = ParseMove("e8c8", pos)
	if _, ok := pos.MakeMove(m); !ok {
		t.Fatal("black queenside castle rejected")
	}
	if pos.PieceAt(D8) != NewPiece(Rook, Black) || pos.PieceAt(C8) != NewPiece(King, Black) {
		t.Errorf("after ...O-O-O: d8=%v c8=%v", pos.PieceAt(D8), pos.PieceAt(C8))
	}
	if pos.CastlingRights != NoCastling {
		t.Errorf("rights = %v, want none", pos.CastlingRights)
	}
}

// TestRookCaptureRevokesRights captures an unmoved rook on its corner and
// checks the corresponding right disappears.
func TestRookCaptureRevokesRights(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m, err := ParseMove("a1a8", pos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := pos.MakeMove(m); !ok {
		t.Fatal("rook capture rejected")
	}
	if pos.CastlingRights&BlackQueenSideCastle != 0 {
		t.Error("black queenside right survived the a8 rook being captured")
	}
	if pos.CastlingRights&WhiteQueenSideCastle != 0 {
		t.Error("white queenside right survived the a1 rook leaving")
	}
}

// TestEnPassantCapture verifies the captured pawn is removed from behind the
// target square.
func TestEnPassantCapture(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")

	m, err := ParseMove("e5d6", pos)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !m.IsEnPassant() {
		t.Fatalf("e5d6 not flagged en passant: %v", m)
	}
	if _, ok := pos.MakeMove(m); !ok {
		t.Fatal("en passant capture rejected")
	}
	d5 := NewSquare(3, 4)
	if pos.PieceAt(d5) != Empty {
		t.Errorf("captured pawn still on d5: %v", pos.PieceAt(d5))
	}
}

// TestPromotionReplacesPawn promotes to every piece and checks the board and
// the halfmove clock reset.
func TestPromotionReplacesPawn(t *testing.T) {
	for _, promo := range []PieceType{Queen, Rook, Bishop, Knight} {
		pos := &Position{}
		pos.LoadFEN("4k3/P7/8/8/8/8/8/4K3 w - - 11 40")

		ms := "a7a8" + map[PieceType]string{Queen: "q", Rook: "r", Bishop: "b", Knight: "n"}[promo]
		m, err := ParseMove(ms, pos)
		if err != nil {
			t.Fatalf("parse %s: %v", ms, err)
		}
		if _, ok := pos.MakeMove(m); !ok {
			t.Fatalf("%s rejected", ms)
		}
		if got := pos.PieceAt(A8); got != NewPiece(promo, White) {
			t.Errorf("a8 = %v after %s", got, ms)
		}
		if pos.HalfMoveClock != 0 {
			t.Errorf("halfmove clock = %d after pawn move", pos.HalfMoveClock)
		}
	}
}
