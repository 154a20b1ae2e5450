// Package engine implements the search: iterative deepening over a fail-hard
// alpha-beta negamax with quiescence, backed by a transposition table.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/bearchess/bear/internal/board"
	"github.com/bearchess/bear/internal/eval"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 64
)

// stopCheckInterval is how many nodes pass between checks of the stop flag,
// deadline, and node budget.
const stopCheckInterval = 2048

// Evaluator scores a position from the side to move's perspective. The
// search treats it as an opaque collaborator.
type Evaluator func(*board.Position) int

// PVTable stores the principal variation by ply, triangular layout.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

func (pv *PVTable) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	for next := ply + 1; next < pv.length[ply+1]; next++ {
		pv.moves[ply][next] = pv.moves[ply+1][next]
	}
	pv.length[ply] = pv.length[ply+1]
}

// Line returns the principal variation from the root.
func (pv *PVTable) Line() []board.Move {
	line := make([]board.Move, pv.length[0])
	copy(line, pv.moves[0][:pv.length[0]])
	return line
}

// Searcher performs alpha-beta search on its own copy of the position.
type Searcher struct {
	pos      *board.Position
	tt       *Table
	evaluate Evaluator

	nodes    uint64
	maxNodes uint64
	deadline time.Time
	stopFlag *atomic.Bool
	stopped  bool

	pv PVTable
}

// NewSearcher creates a searcher sharing the given table and stop flag.
// A nil evaluator falls back to the classical evaluation.
func NewSearcher(tt *Table, evaluate Evaluator, stopFlag *atomic.Bool) *Searcher {
	if evaluate == nil {
		evaluate = eval.Evaluate
	}
	return &Searcher{tt: tt, evaluate: evaluate, stopFlag: stopFlag}
}

// Reset prepares the searcher for a new search session.
func (s *Searcher) Reset(maxNodes uint64, deadline time.Time) {
	s.nodes = 0
	s.maxNodes = maxNodes
	s.deadline = deadline
	s.stopped = false
	s.pv = PVTable{}
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// PV returns the principal variation of the last completed search.
func (s *Searcher) PV() []board.Move {
	return s.pv.Line()
}

// Stopped reports whether the last search was interrupted. An interrupted
// iteration's result is garbage and must be discarded.
func (s *Searcher) Stopped() bool {
	return s.stopped
}

// SearchRoot searches the position to the given depth with a full window and
// returns the best move and its score. The caller's position is never
// touched; the searcher works on a copy. With no legal moves the move is
// NoMove and the score reports the mate or stalemate.
func (s *Searcher) SearchRoot(pos *board.Position, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.pos.Ply = 0

	score := s.negamax(depth, 0, -Infinity, Infinity)

	best := board.NoMove
	if s.pv.length[0] > 0 {
		best = s.pv.moves[0][0]
	}
	return best, score
}

// checkStop samples the stop conditions at a coarse interval. The check is
// cheap, but an atomic load per node would still be measurable.
func (s *Searcher) checkStop() bool {
	if s.stopped {
		return true
	}
	if s.nodes%stopCheckInterval == 0 {
		switch {
		case s.stopFlag != nil && s.stopFlag.Load():
			s.stopped = true
		case s.maxNodes > 0 && s.nodes >= s.maxNodes:
			s.stopped = true
		case !s.deadline.IsZero() && time.Now().After(s.deadline):
			s.stopped = true
		}
	}
	return s.stopped
}

// negamax is the fail-hard alpha-beta recursion. At the root (ply 0) it also
// records the best move in the principal variation table.
func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.pv.length[ply] = ply

	if ply >= MaxPly-1 {
		return s.evaluate(s.pos)
	}

	// Fifty-move rule. Root is exempt so a forced move is still produced.
	if ply > 0 && s.pos.HalfMoveClock >= 100 {
		return 0
	}

	// Probe the table below the root. Shallow entries cannot answer, but
	// their best move still improves ordering.
	ttMove := board.NoMove
	if entry, found := s.tt.Probe(s.pos.Hash); found {
		ttMove = entry.Move
		if ply > 0 && int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case BoundExact:
				return score
			case BoundLower:
				if score >= beta {
					return beta
				}
			case BoundUpper:
				if score <= alpha {
					return alpha
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	s.nodes++
	if s.checkStop() {
		return 0
	}

	moves := s.pos.GeneratePseudoLegalMoves()
	scores := s.scoreMoves(moves, ttMove)

	bestMove := board.NoMove
	bound := BoundUpper
	legal := 0

	for i := 0; i < moves.Len(); i++ {
		pickMove(moves, scores, i)
		m := moves.Get(i)

		undo, ok := s.pos.MakeMove(m)
		if !ok {
			continue
		}
		legal++

		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score >= beta {
			s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(beta, ply), BoundLower, m)
			return beta
		}
		if score > alpha {
			alpha = score
			bestMove = m
			bound = BoundExact
			s.pv.update(ply, m)
		}
	}

	if legal == 0 {
		if s.pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}

	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(alpha, ply), bound, bestMove)
	return alpha
}

// quiescence resolves captures until the position is quiet, with the static
// evaluation as the stand-pat floor.
func (s *Searcher) quiescence(ply, alpha, beta int) int {
	s.nodes++
	if s.checkStop() {
		return 0
	}

	standPat := s.evaluate(s.pos)
	if ply >= MaxPly-1 {
		return standPat
	}

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := s.pos.GenerateCaptures()
	scores := s.scoreMoves(moves, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		pickMove(moves, scores, i)
		m := moves.Get(i)

		undo, ok := s.pos.MakeMove(m)
		if !ok {
			continue
		}

		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// scoreMoves assigns ordering scores: the table move first, then captures by
// most-valuable-victim least-valuable-attacker, then promotions.
func (s *Searcher) scoreMoves(moves *board.MoveList, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		switch {
		case m == ttMove && m != board.NoMove:
			scores[i] = 1 << 20
		case m.IsCapture():
			scores[i] = 10000 + m.Captured().Value()*10 - s.pos.PieceAt(m.From()).Value()/100
		case m.IsPromotion():
			scores[i] = 5000 + m.Promoted().Value()
		}
	}
	return scores
}

// pickMove swaps the best-scored remaining move into slot i, a one-step
// selection sort driven by the search loop.
func pickMove(moves *board.MoveList, scores []int, i int) {
	best := i
	for j := i + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != i {
		moves.Swap(i, best)
		scores[i], scores[best] = scores[best], scores[i]
	}
}
