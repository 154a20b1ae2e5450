package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// LoadFEN loads a position from a FEN string. Parsing is lenient: fields are
// consumed left to right, a short string keeps the initialized defaults for
// whatever it omits, and malformed cells are skipped rather than rejected.
// A record produced by ToFEN always loads back to the identical position.
func (p *Position) LoadFEN(fen string) {
	p.Clear()

	fields := strings.Fields(fen)
	if len(fields) == 0 {
		p.Hash = p.ComputeHash()
		return
	}

	// Field 1: piece placement, rank 8 first. Files past h on a rank are
	// dropped; a '/' always realigns to the start of the next rank down.
	rank, file := 7, 0
	for i := 0; i < len(fields[0]) && rank >= 0; i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			if piece := PieceFromChar(c); piece != Empty && file < 8 {
				p.setPiece(piece, NewSquare(file, rank))
			}
			file++
		}
	}

	// Field 2: side to move
	if len(fields) > 1 && fields[1] == "b" {
		p.SideToMove = Black
	}

	// Field 3: castling rights
	if len(fields) > 2 {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= WhiteKingSideCastle
			case 'Q':
				p.CastlingRights |= WhiteQueenSideCastle
			case 'k':
				p.CastlingRights |= BlackKingSideCastle
			case 'q':
				p.CastlingRights |= BlackQueenSideCastle
			}
		}
	}

	// Field 4: en passant target square
	if len(fields) > 3 && fields[3] != "-" {
		if sq, err := ParseSquare(fields[3]); err == nil {
			p.EnPassant = sq
		}
	}

	// Fields 5 and 6: halfmove clock and fullmove number
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			p.HalfMoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			p.FullMoveNumber = n
		}
	}

	p.findKings()
	p.Hash = p.ComputeHash()
}

// ToFEN serializes the position to a FEN string.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	stm := "w"
	if p.SideToMove == Black {
		stm = "b"
	}
	fmt.Fprintf(&sb, " %s %s %s %d %d",
		stm, p.CastlingRights, p.EnPassant,
		p.HalfMoveClock, p.FullMoveNumber)

	return sb.String()
}
