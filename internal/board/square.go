// Package board implements chess board representation using a 10x12 mailbox.
package board

import "fmt"

// BoardSize is the number of cells in the mailbox. The playable 8x8 region is
// surrounded by two sentinel ranks top and bottom and one sentinel file on
// each side, so a direction offset applied to any playable square always
// lands inside the array.
const BoardSize = 120

// Square indexes a mailbox cell. Playable squares run from A1 (21) to H8 (98);
// border cells hold the OffBoard piece sentinel.
type Square uint8

// NoSquare marks the absence of a square (no en passant target, no king found).
const NoSquare Square = BoardSize

// Mailbox indices for the squares castling and FEN handling care about.
// The full set would be noise; NewSquare covers the rest.
const (
	A1 Square = 21
	B1 Square = 22
	C1 Square = 23
	D1 Square = 24
	E1 Square = 25
	F1 Square = 26
	G1 Square = 27
	H1 Square = 28
	E4 Square = 55
	A8 Square = 91
	B8 Square = 92
	C8 Square = 93
	D8 Square = 94
	E8 Square = 95
	F8 Square = 96
	G8 Square = 97
	H8 Square = 98
)

// NewSquare creates a mailbox square from file and rank, both 0-indexed
// (file 0 = a, rank 0 = 1).
func NewSquare(file, rank int) Square {
	return Square((rank+2)*10 + file + 1)
}

// File returns the file of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq)%10 - 1
}

// Rank returns the rank of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq)/10 - 2
}

// IsPlayable returns true if the square lies inside the 8x8 region.
func (sq Square) IsPlayable() bool {
	f, r := sq.File(), sq.Rank()
	return f >= 0 && f <= 7 && r >= 0 && r <= 7
}

// String returns the algebraic notation for the square (e.g., "e4"),
// or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.IsPlayable() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a mailbox Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int(s[1] - '1')

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}
