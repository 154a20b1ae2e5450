package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Position represents a complete chess position on the mailbox board.
type Position struct {
	// Cell occupants. Border cells always hold OffBoard.
	squares [BoardSize]Piece

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Capture target for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1

	// Ply counters: Ply is the search-local depth, HistoryPly counts
	// half-moves since the position was set up.
	Ply        int
	HistoryPly int

	// Zobrist hash, maintained incrementally by MakeMove/UnmakeMove.
	Hash uint64

	// King positions (cached for check detection)
	KingSquare [2]Square
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	p := &Position{}
	p.LoadFEN(StartFEN)
	return p
}

// Clear resets the position to the empty-board default: no pieces, white to
// move, no castling rights, no en passant, zero clocks, zero hash.
func (p *Position) Clear() {
	for sq := range p.squares {
		p.squares[sq] = OffBoard
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p.squares[NewSquare(file, rank)] = Empty
		}
	}
	p.SideToMove = White
	p.CastlingRights = NoCastling
	p.EnPassant = NoSquare
	p.HalfMoveClock = 0
	p.FullMoveNumber = 1
	p.Ply = 0
	p.HistoryPly = 0
	p.Hash = 0
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
}

// PieceAt returns the occupant of the given cell.
func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

// IsEmpty returns true if the square holds no piece. Border cells are not
// empty; they hold the sentinel.
func (p *Position) IsEmpty(sq Square) bool {
	return p.squares[sq] == Empty
}

// setPiece places a piece on a square (does not update hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	p.squares[sq] = piece
	if piece.Type() == King {
		p.KingSquare[piece.Color()] = sq
	}
}

// findKings locates and caches the king positions.
func (p *Position) findKings() {
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			switch p.squares[sq] {
			case WhiteKing:
				p.KingSquare[White] = sq
			case BlackKing:
				p.KingSquare[Black] = sq
			}
		}
	}
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare[p.SideToMove]
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, p.SideToMove.Other())
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece == Empty {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	s += fmt.Sprintf("Hash: %016x\n", p.Hash)
	return s
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Validate checks basic structural invariants of the position.
func (p *Position) Validate() error {
	if p.KingSquare[White] == NoSquare || p.squares[p.KingSquare[White]] != WhiteKing {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.KingSquare[Black] == NoSquare || p.squares[p.KingSquare[Black]] != BlackKing {
		return fmt.Errorf("black must have exactly one king")
	}
	for file := 0; file < 8; file++ {
		for _, rank := range [2]int{0, 7} {
			if pt := p.squares[NewSquare(file, rank)].Type(); pt == Pawn {
				return fmt.Errorf("pawns cannot be on rank 1 or 8")
			}
		}
	}
	if p.Hash != p.ComputeHash() {
		return fmt.Errorf("hash out of sync: have %016x, want %016x", p.Hash, p.ComputeHash())
	}
	return nil
}

// Material returns the material balance (positive favors white).
func (p *Position) Material() int {
	score := 0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if !piece.IsOccupied() || piece.Type() == King {
				continue
			}
			if piece.Color() == White {
				score += piece.Value()
			} else {
				score -= piece.Value()
			}
		}
	}
	return score
}

// IsDraw returns true if the position is a draw by stalemate, the fifty-move
// rule, or insufficient material.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.HalfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	minors := [2]int{}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			switch piece.Type() {
			case Pawn, Rook, Queen:
				return false
			case Knight, Bishop:
				minors[piece.Color()]++
			}
		}
	}

	// K vs K, or K+minor vs K
	if minors[White]+minors[Black] == 0 {
		return true
	}
	if minors[White] <= 1 && minors[Black] == 0 {
		return true
	}
	if minors[Black] <= 1 && minors[White] == 0 {
		return true
	}
	return false
}
