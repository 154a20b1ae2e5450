package board

import "fmt"

// Move encodes a chess move in 32 bits:
// bits 0-6:   from square (mailbox index)
// bits 7-13:  to square (mailbox index)
// bits 14-17: captured piece (Empty if none)
// bits 18-21: promoted piece (Empty if none)
// bit 22:     en passant capture
// bit 23:     double pawn push
// bit 24:     castling
//
// A Move is a value; once created it is never modified.
type Move uint32

// Move flags
const (
	FlagEnPassant  uint32 = 1 << 22
	FlagDoublePush uint32 = 1 << 23
	FlagCastling   uint32 = 1 << 24
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move from its components.
func NewMove(from, to Square, captured, promoted Piece, flags uint32) Move {
	return Move(from) | Move(to)<<7 | Move(captured)<<14 | Move(promoted)<<18 | Move(flags)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x7F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 7) & 0x7F)
}

// Captured returns the captured piece, or Empty.
func (m Move) Captured() Piece {
	return Piece((m >> 14) & 0xF)
}

// Promoted returns the promotion piece, or Empty.
func (m Move) Promoted() Piece {
	return Piece((m >> 18) & 0xF)
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Captured() != Empty
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promoted() != Empty
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return uint32(m)&FlagEnPassant != 0
}

// IsDoublePush returns true if this is a two-square pawn advance.
func (m Move) IsDoublePush() bool {
	return uint32(m)&FlagDoublePush != 0
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return uint32(m)&FlagCastling != 0
}

// String returns the coordinate notation of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		switch m.Promoted().Type() {
		case Knight:
			s += "n"
		case Bishop:
			s += "b"
		case Rook:
			s += "r"
		case Queen:
			s += "q"
		}
	}

	return s
}

// ParseMove parses a coordinate-notation move string against the position,
// returning the fully populated Move. The move must be one the position can
// actually generate; legality is still the caller's concern.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	var promo PieceType = NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	ml := pos.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if promo == NoPieceType && !m.IsPromotion() {
			return m, nil
		}
		if promo != NoPieceType && m.Promoted().Type() == promo {
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("move %s not possible in this position", s)
}

// MaxMoves bounds the number of moves a single position can produce.
const MaxMoves = 256

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores everything UnmakeMove needs to reverse one MakeMove.
// It is produced by MakeMove and must be consumed in strict LIFO order.
type UndoInfo struct {
	Captured       Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
}
