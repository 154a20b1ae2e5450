package board

// castleMask holds, per square, the castling rights that survive a move
// touching that square. Moving a rook off its corner (or capturing it there)
// and moving the king both clear the relevant rights with one AND.
var castleMask [BoardSize]CastlingRights

func init() {
	for sq := range castleMask {
		castleMask[sq] = AllCastling
	}
	castleMask[A1] = AllCastling &^ WhiteQueenSideCastle
	castleMask[E1] = AllCastling &^ (WhiteKingSideCastle | WhiteQueenSideCastle)
	castleMask[H1] = AllCastling &^ WhiteKingSideCastle
	castleMask[A8] = AllCastling &^ BlackQueenSideCastle
	castleMask[E8] = AllCastling &^ (BlackKingSideCastle | BlackQueenSideCastle)
	castleMask[H8] = AllCastling &^ BlackKingSideCastle
}

// MakeMove applies a pseudo-legal move and maintains the Zobrist hash
// incrementally. If the move leaves the mover's king attacked it is unmade
// before returning and ok is false; the position is then unchanged.
func (p *Position) MakeMove(m Move) (undo UndoInfo, ok bool) {
	undo = UndoInfo{
		Captured:       m.Captured(),
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
		Hash:           p.Hash,
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.squares[from]
	pawnMove := piece.Type() == Pawn

	p.Hash ^= zobristCastling[p.CastlingRights]
	if p.EnPassant != NoSquare {
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
		p.EnPassant = NoSquare
	}

	// Remove the captured piece. En passant captures behind the target square.
	if m.IsEnPassant() {
		capSq := Square(int(to) - pawnAdvance[us])
		p.Hash ^= zobristPiece[p.squares[capSq]][capSq]
		p.squares[capSq] = Empty
	} else if m.IsCapture() {
		p.Hash ^= zobristPiece[p.squares[to]][to]
	}

	// Move the piece, swapping in the promoted piece on the last rank.
	p.Hash ^= zobristPiece[piece][from]
	p.squares[from] = Empty
	if promoted := m.Promoted(); promoted != Empty {
		piece = promoted
	}
	p.squares[to] = piece
	p.Hash ^= zobristPiece[piece][to]

	// Castling also hops the rook over the king.
	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(to)
		rook := p.squares[rookFrom]
		p.Hash ^= zobristPiece[rook][rookFrom]
		p.squares[rookFrom] = Empty
		p.squares[rookTo] = rook
		p.Hash ^= zobristPiece[rook][rookTo]
	}

	if piece.Type() == King {
		p.KingSquare[us] = to
	}

	p.CastlingRights &= castleMask[from] & castleMask[to]
	p.Hash ^= zobristCastling[p.CastlingRights]

	if m.IsDoublePush() {
		p.EnPassant = Square((int(from) + int(to)) / 2)
		p.Hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	if pawnMove || m.IsCapture() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.Ply++
	p.HistoryPly++

	p.SideToMove = them
	p.Hash ^= zobristSideToMove

	// A kingless side, possible after a lenient FEN load, is never in check.
	if ksq := p.KingSquare[us]; ksq != NoSquare && p.IsSquareAttacked(ksq, them) {
		p.UnmakeMove(m, undo)
		return UndoInfo{}, false
	}
	return undo, true
}

// UnmakeMove reverses a move made by MakeMove, restoring the saved state.
// Moves must be unmade in strict LIFO order.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	p.SideToMove = p.SideToMove.Other()
	us := p.SideToMove
	from, to := m.From(), m.To()

	piece := p.squares[to]
	if m.IsPromotion() {
		piece = NewPiece(Pawn, us)
	}
	p.squares[from] = piece
	p.squares[to] = Empty

	if m.IsEnPassant() {
		p.squares[int(to)-pawnAdvance[us]] = undo.Captured
	} else if m.IsCapture() {
		p.squares[to] = undo.Captured
	}

	if m.IsCastling() {
		rookFrom, rookTo := rookCastleSquares(to)
		p.squares[rookFrom] = p.squares[rookTo]
		p.squares[rookTo] = Empty
	}

	if piece.Type() == King {
		p.KingSquare[us] = from
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.HalfMoveClock = undo.HalfMoveClock
	p.Hash = undo.Hash

	if us == Black {
		p.FullMoveNumber--
	}
	p.Ply--
	p.HistoryPly--
}

// rookCastleSquares maps the king's castling destination to the rook's
// origin and destination.
func rookCastleSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	default: // C8
		return A8, D8
	}
}
