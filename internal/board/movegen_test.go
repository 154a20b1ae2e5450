package board

import "testing"

func countMoves(ml *MoveList, pred func(Move) bool) int {
	n := 0
	for i := 0; i < ml.Len(); i++ {
		if pred(ml.Get(i)) {
			n++
		}
	}
	return n
}

func TestStartingPositionMoveCount(t *testing.T) {
	pos := NewPosition()
	if got := pos.GenerateLegalMoves().Len(); got != 20 {
		t.Errorf("starting position has %d legal moves, want 20", got)
	}
}

// TestGenerationOrderGroupsPieceKinds checks the emission order: pawn moves
// first, then knights, bishops, rooks, queens, and the king (castling
// included) last.
func TestGenerationOrderGroupsPieceKinds(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("r3k2r/8/8/8/8/4N3/PP5B/R2QK2R w KQ - 0 1")

	ml := pos.GeneratePseudoLegalMoves()
	prev := Pawn
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		kind := pos.PieceAt(m.From()).Type()
		if kind < prev {
			t.Fatalf("move %d (%s) moves a %v after %v moves were emitted", i, m, kind, prev)
		}
		prev = kind
	}
	if prev != King {
		t.Fatalf("king moves missing from generation, last kind was %v", prev)
	}
}

// TestCastlingGeneration checks each of the conditions that suppress a
// castling move: a missing right, a blocked path, and attacked transit or
// landing squares. Attacks on b1/b8 do not matter; only the king's path does.
func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{"white O-O available", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", true},
		{"white O-O-O available", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", true},
		{"black O-O available", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", true},
		{"black O-O-O available", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", true},
		{"right revoked", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "e1g1", false},
		{"path blocked", "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1", "e1g1", false},
		{"queenside b1 occupied", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", "e1c1", false},
		{"king in check", "r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1", "e1g1", false},
		{"transit square attacked", "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", "e1g1", false},
		{"landing square attacked", "r3k2r/8/8/8/8/6r1/8/R3K2R w KQkq - 0 1", "e1g1", false},
		{"only b1 attacked still castles long", "r3k2r/8/8/8/8/1r6/8/R3K2R w KQkq - 0 1", "e1c1", true},
		{"d8 attacked blocks black long castle", "r3k2r/8/8/8/3R4/8/8/4K3 b kq - 0 1", "e8c8", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := &Position{}
			pos.LoadFEN(tc.fen)
			ml := pos.GeneratePseudoLegalMoves()

			found := false
			for i := 0; i < ml.Len(); i++ {
				m := ml.Get(i)
				if m.IsCastling() && m.String() == tc.move {
					found = true
					break
				}
			}
			if found != tc.want {
				t.Errorf("castle %s generated = %v, want %v", tc.move, found, tc.want)
			}
		})
	}
}

// TestGenerateCaptures verifies the quiescence move set: captures, en
// passant, and promotions, nothing quiet.
func TestGenerateCaptures(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("r3k3/1P6/8/3pP3/8/8/8/4K3 w - d6 0 1")

	ml := pos.GenerateCaptures()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !m.IsCapture() && !m.IsPromotion() {
			t.Errorf("quiet move %v in capture generation", m)
		}
	}

	if n := countMoves(ml, Move.IsEnPassant); n != 1 {
		t.Errorf("en passant captures = %d, want 1", n)
	}
	// b7a8 capture-promotions and b7b8 quiet promotions, four choices each
	if n := countMoves(ml, Move.IsPromotion); n != 8 {
		t.Errorf("promotions = %d, want 8", n)
	}
}

// TestPromotionGeneration counts the fan-out for a pawn one step from the
// last rank with a capture available.
func TestPromotionGeneration(t *testing.T) {
	pos := &Position{}
	pos.LoadFEN("1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	ml := pos.GeneratePseudoLegalMoves()
	if n := countMoves(ml, Move.IsPromotion); n != 8 {
		t.Errorf("promotion moves = %d, want 8 (a8 push and b8 capture, four pieces each)", n)
	}
}

func TestCheckmateDetection(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		mate bool
		stal bool
	}{
		{"fools mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, false},
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", false, false},
		{"back rank mate delivered", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", true, false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", false, true},
		{"starting position", StartFEN, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := &Position{}
			pos.LoadFEN(tc.fen)
			if got := pos.IsCheckmate(); got != tc.mate {
				t.Errorf("IsCheckmate() = %v, want %v", got, tc.mate)
			}
			if got := pos.IsStalemate(); got != tc.stal {
				t.Errorf("IsStalemate() = %v, want %v", got, tc.stal)
			}
		})
	}
}
