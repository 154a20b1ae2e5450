package board

import "testing"

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		square   string
		by       Color
		attacked bool
	}{
		{"pawn attacks diagonally", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "d5", White, true},
		{"pawn attacks diagonally right", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "f5", White, true},
		{"pawn does not attack straight ahead", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e5", White, false},
		{"black pawn attacks down board", "4k3/8/4p3/8/8/8/8/4K3 b - - 0 1", "d5", Black, true},
		{"knight attack", "4k3/8/8/8/8/5N2/8/4K3 w - - 0 1", "e5", White, true},
		{"knight cannot be blocked", "4k3/8/8/4p3/8/5N2/8/4K3 w - - 0 1", "e5", White, true},
		{"rook attack along file", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a8", White, true},
		{"rook blocked by own piece", "4k3/8/8/P7/8/8/8/R3K3 w - - 0 1", "a8", White, false},
		{"rook blocked by enemy piece", "4k3/8/8/p7/8/8/8/R3K3 w - - 0 1", "a8", White, false},
		{"bishop attack on long diagonal", "4k3/8/8/8/8/8/8/B3K3 w - - 0 1", "h8", White, true},
		{"queen attacks both ways", "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1", "d8", White, true},
		{"queen diagonal", "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1", "h8", White, true},
		{"king attacks adjacent", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "d2", White, true},
		{"king does not attack at range", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e3", White, false},
		{"no pawn wraparound at board edge", "4k3/8/8/8/P7/8/8/4K3 w - - 0 1", "h5", White, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := &Position{}
			pos.LoadFEN(tc.fen)
			sq, err := ParseSquare(tc.square)
			if err != nil {
				t.Fatalf("parse square: %v", err)
			}
			if got := pos.IsSquareAttacked(sq, tc.by); got != tc.attacked {
				t.Errorf("IsSquareAttacked(%s, %v) = %v, want %v", tc.square, tc.by, got, tc.attacked)
			}
		})
	}
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		fen   string
		check bool
	}{
		{StartFEN, false},
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true},
		{"4k3/8/8/8/8/8/8/R3K3 b - - 0 1", false},
		{"4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true},
	}

	for _, tc := range tests {
		pos := &Position{}
		pos.LoadFEN(tc.fen)
		if got := pos.InCheck(); got != tc.check {
			t.Errorf("%q: InCheck() = %v, want %v", tc.fen, got, tc.check)
		}
	}
}
