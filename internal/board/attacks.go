package board

// Direction offsets in the 10x12 mailbox. A single step in any of these
// directions from a playable square stays inside the array; the border
// sentinel terminates walks that leave the 8x8 region.
var (
	knightOffsets = [8]int{-21, -19, -12, -8, 8, 12, 19, 21}
	kingOffsets   = [8]int{-11, -10, -9, -1, 1, 9, 10, 11}
	rookOffsets   = [4]int{-10, -1, 1, 10}
	bishopOffsets = [4]int{-11, -9, 9, 11}
)

// Pawn capture offsets from the pawn's square, per color.
var pawnCaptureOffsets = [2][2]int{
	{9, 11},   // White captures up-left, up-right
	{-9, -11}, // Black captures down-right, down-left
}

// pawnAdvance is the single-push offset per color.
var pawnAdvance = [2]int{10, -10}

// IsSquareAttacked reports whether any piece of the given color attacks the
// square. It checks pawn capture geometry, knight leaps, diagonal and
// orthogonal rays (stopping at the first occupied cell), and adjacent kings.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	// Pawns: a pawn attacks sq if it sits one capture-offset behind it.
	pawn := NewPiece(Pawn, by)
	for _, off := range pawnCaptureOffsets[by] {
		if p.squares[int(sq)-off] == pawn {
			return true
		}
	}

	// Knights
	knight := NewPiece(Knight, by)
	for _, off := range knightOffsets {
		if p.squares[int(sq)+off] == knight {
			return true
		}
	}

	// Diagonal rays: bishop or queen
	bishop := NewPiece(Bishop, by)
	queen := NewPiece(Queen, by)
	for _, dir := range bishopOffsets {
		for t := int(sq) + dir; ; t += dir {
			piece := p.squares[t]
			if piece == Empty {
				continue
			}
			if piece == bishop || piece == queen {
				return true
			}
			break // blocked by another piece or the border sentinel
		}
	}

	// Orthogonal rays: rook or queen
	rook := NewPiece(Rook, by)
	for _, dir := range rookOffsets {
		for t := int(sq) + dir; ; t += dir {
			piece := p.squares[t]
			if piece == Empty {
				continue
			}
			if piece == rook || piece == queen {
				return true
			}
			break
		}
	}

	// Adjacent king
	king := NewPiece(King, by)
	for _, off := range kingOffsets {
		if p.squares[int(sq)+off] == king {
			return true
		}
	}

	return false
}
