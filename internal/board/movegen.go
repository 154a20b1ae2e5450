package board

// Pawn starting ranks (0-indexed) per color.
var pawnStartRank = [2]int{1, 6}

// Pawn promotion ranks (0-indexed) per color.
var pawnPromoRank = [2]int{7, 0}

// GeneratePseudoLegalMoves generates all pseudo-legal moves: every move
// consistent with piece movement, ignoring whether the mover's king is left
// attacked. Generation order is pawns, then knights, bishops, rooks, queens,
// king, then castling.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateMoves(ml, false)
	return ml
}

// GenerateCaptures generates capturing moves only (including en passant and
// promotion-captures), plus quiet promotions. Used to bound quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateMoves(ml, true)
	return ml
}

// GenerateLegalMoves generates all fully legal moves by trying each
// pseudo-legal move through MakeMove, which rejects any that leave the
// mover's king attacked.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		p.UnmakeMove(m, undo)
		legal.Add(m)
	}
	return legal
}

// generateMoves emits moves for the side to move one piece kind at a time:
// pawns, knights, bishops, rooks, queens, king, then castling. With
// capturesOnly set, quiet moves are suppressed except promotions.
func (p *Position) generateMoves(ml *MoveList, capturesOnly bool) {
	us := p.SideToMove

	for _, kind := range [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		mover := NewPiece(kind, us)
		for rank := 0; rank < 8; rank++ {
			for file := 0; file < 8; file++ {
				sq := NewSquare(file, rank)
				if p.squares[sq] != mover {
					continue
				}

				switch kind {
				case Pawn:
					p.generatePawnMoves(ml, sq, capturesOnly)
				case Knight:
					p.generateLeaperMoves(ml, sq, knightOffsets[:], capturesOnly)
				case Bishop:
					p.generateSliderMoves(ml, sq, bishopOffsets[:], capturesOnly)
				case Rook:
					p.generateSliderMoves(ml, sq, rookOffsets[:], capturesOnly)
				case Queen:
					p.generateSliderMoves(ml, sq, bishopOffsets[:], capturesOnly)
					p.generateSliderMoves(ml, sq, rookOffsets[:], capturesOnly)
				case King:
					p.generateLeaperMoves(ml, sq, kingOffsets[:], capturesOnly)
				}
			}
		}
	}

	if !capturesOnly {
		p.generateCastlingMoves(ml)
	}
}

// addPawnMove emits a pawn move, fanning out into the four promotion choices
// when the destination is the last rank.
func (p *Position) addPawnMove(ml *MoveList, from, to Square, captured Piece, flags uint32) {
	us := p.SideToMove
	if to.Rank() == pawnPromoRank[us] {
		ml.Add(NewMove(from, to, captured, NewPiece(Queen, us), flags))
		ml.Add(NewMove(from, to, captured, NewPiece(Rook, us), flags))
		ml.Add(NewMove(from, to, captured, NewPiece(Bishop, us), flags))
		ml.Add(NewMove(from, to, captured, NewPiece(Knight, us), flags))
		return
	}
	ml.Add(NewMove(from, to, captured, Empty, flags))
}

// generatePawnMoves handles single and double pushes, diagonal captures,
// promotions, and en passant for the pawn on sq.
func (p *Position) generatePawnMoves(ml *MoveList, sq Square, capturesOnly bool) {
	us := p.SideToMove
	forward := pawnAdvance[us]

	// Pushes. Promotions are emitted even in captures-only mode.
	oneUp := Square(int(sq) + forward)
	if p.squares[oneUp] == Empty {
		if !capturesOnly || oneUp.Rank() == pawnPromoRank[us] {
			p.addPawnMove(ml, sq, oneUp, Empty, 0)
		}

		if !capturesOnly && sq.Rank() == pawnStartRank[us] {
			twoUp := Square(int(sq) + 2*forward)
			if p.squares[twoUp] == Empty {
				ml.Add(NewMove(sq, twoUp, Empty, Empty, FlagDoublePush))
			}
		}
	}

	// Diagonal captures and en passant
	for _, off := range pawnCaptureOffsets[us] {
		to := Square(int(sq) + off)
		target := p.squares[to]
		if target.IsOccupied() && target.Color() != us {
			p.addPawnMove(ml, sq, to, target, 0)
		}
		if p.EnPassant != NoSquare && to == p.EnPassant {
			ml.Add(NewMove(sq, to, NewPiece(Pawn, us.Other()), Empty, FlagEnPassant))
		}
	}
}

// generateLeaperMoves emits knight and king moves: each offset checked once.
func (p *Position) generateLeaperMoves(ml *MoveList, sq Square, offsets []int, capturesOnly bool) {
	us := p.SideToMove
	for _, off := range offsets {
		to := Square(int(sq) + off)
		target := p.squares[to]
		switch {
		case target == Empty:
			if !capturesOnly {
				ml.Add(NewMove(sq, to, Empty, Empty, 0))
			}
		case target.IsOccupied() && target.Color() != us:
			ml.Add(NewMove(sq, to, target, Empty, 0))
		}
	}
}

// generateSliderMoves walks each direction until the border sentinel or an
// occupied cell; an enemy occupant yields a capture, then the walk stops.
func (p *Position) generateSliderMoves(ml *MoveList, sq Square, dirs []int, capturesOnly bool) {
	us := p.SideToMove
	for _, dir := range dirs {
		for t := int(sq) + dir; ; t += dir {
			target := p.squares[t]
			if target == Empty {
				if !capturesOnly {
					ml.Add(NewMove(sq, Square(t), Empty, Empty, 0))
				}
				continue
			}
			if target.IsOccupied() && target.Color() != us {
				ml.Add(NewMove(sq, Square(t), target, Empty, 0))
			}
			break
		}
	}
}

// generateCastlingMoves emits castling moves for the side to move. A move is
// generated only if the right is held, the cells between king and rook are
// empty, and the king's start, transit, and landing cells are all unattacked.
func (p *Position) generateCastlingMoves(ml *MoveList) {
	us := p.SideToMove
	them := us.Other()

	if us == White {
		if p.CastlingRights&WhiteKingSideCastle != 0 &&
			p.squares[F1] == Empty && p.squares[G1] == Empty &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(NewMove(E1, G1, Empty, Empty, FlagCastling))
		}
		if p.CastlingRights&WhiteQueenSideCastle != 0 &&
			p.squares[B1] == Empty && p.squares[C1] == Empty && p.squares[D1] == Empty &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(NewMove(E1, C1, Empty, Empty, FlagCastling))
		}
		return
	}

	if p.CastlingRights&BlackKingSideCastle != 0 &&
		p.squares[F8] == Empty && p.squares[G8] == Empty &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
		ml.Add(NewMove(E8, G8, Empty, Empty, FlagCastling))
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 &&
		p.squares[B8] == Empty && p.squares[C8] == Empty && p.squares[D8] == Empty &&
		!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
		ml.Add(NewMove(E8, C8, Empty, Empty, FlagCastling))
	}
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo, ok := p.MakeMove(m)
		if !ok {
			continue
		}
		p.UnmakeMove(m, undo)
		return true
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
