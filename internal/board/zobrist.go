package board

// Zobrist hash keys for position hashing.
// Uses a PRNG with fixed seed for reproducibility.
//
// The castling table is derived from one key per right, so the hash of the
// initialized empty position (white to move, no rights, no en passant) is
// exactly zero.
var (
	zobristPiece      [OffBoard][BoardSize]uint64 // [Piece][Square], Empty row stays zero
	zobristEnPassant  [8]uint64                   // One per file
	zobristCastling   [16]uint64                  // XOR of the per-right keys for each combination
	zobristSideToMove uint64                      // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0xB3A97E551F00D1E5) // Fixed seed

	// Piece keys, playable squares only
	for piece := WhitePawn; piece <= BlackKing; piece++ {
		for rank := 0; rank < 8; rank++ {
			for file := 0; file < 8; file++ {
				zobristPiece[piece][NewSquare(file, rank)] = rng.next()
			}
		}
	}

	// En passant keys (one per file)
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	// One key per castling right, combined for all 16 right sets
	var rightKeys [4]uint64
	for i := range rightKeys {
		rightKeys[i] = rng.next()
	}
	for cr := 0; cr < 16; cr++ {
		for bit := 0; bit < 4; bit++ {
			if cr&(1<<bit) != 0 {
				zobristCastling[cr] ^= rightKeys[bit]
			}
		}
	}

	// Side to move key
	zobristSideToMove = rng.next()
}

// ComputeHash computes the Zobrist hash for the position from scratch.
// Search never calls this; MakeMove/UnmakeMove keep Hash incremental.
func (p *Position) ComputeHash() uint64 {
	var hash uint64

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if piece := p.squares[sq]; piece.IsOccupied() {
				hash ^= zobristPiece[piece][sq]
			}
		}
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant.File()]
	}

	return hash
}
