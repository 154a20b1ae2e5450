package engine

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bearchess/bear/internal/board"
)

// SearchInfo is a snapshot reported after each completed depth.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int // Permille of hash table used
}

// SearchLimits specifies constraints on a search. Zero values mean no limit;
// with everything zero and Infinite unset the search still stops at MaxPly.
type SearchLimits struct {
	Depth    int           // Maximum depth
	Nodes    uint64        // Maximum nodes
	MoveTime time.Duration // Budget for this move
	Infinite bool          // Search until stopped
}

// Engine owns the searcher and transposition table and drives iterative
// deepening. One search runs at a time; Stop may be called concurrently.
type Engine struct {
	searcher *Searcher
	tt       *Table
	stopFlag atomic.Bool

	// OnInfo, when set, is called after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the given transposition table size in MB
// and evaluator. A nil evaluator uses the classical evaluation.
func NewEngine(ttSizeMB int, evaluate Evaluator) *Engine {
	e := &Engine{tt: NewTable(ttSizeMB)}
	e.searcher = NewSearcher(e.tt, evaluate, &e.stopFlag)
	return e
}

// ResizeTable replaces the transposition table with one of the given size.
// Must not be called while a search is running.
func (e *Engine) ResizeTable(sizeMB int) {
	e.tt = NewTable(sizeMB)
	e.searcher.tt = e.tt
}

// RunSearch runs iterative deepening within the limits and returns the best
// move found. Results from an interrupted iteration are discarded, so the
// answer always comes from the deepest fully completed depth.
func (e *Engine) RunSearch(pos *board.Position, limits SearchLimits) (board.Move, int) {
	e.stopFlag.Store(false)
	e.tt.NewSearch()

	start := time.Now()
	var deadline time.Time
	if limits.MoveTime > 0 && !limits.Infinite {
		deadline = start.Add(limits.MoveTime)
	}
	e.searcher.Reset(limits.Nodes, deadline)

	maxDepth := MaxPly - 1
	if limits.Depth > 0 && limits.Depth < maxDepth {
		maxDepth = limits.Depth
	}

	bestMove := board.NoMove
	bestScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		move, score := e.searcher.SearchRoot(pos, depth)
		if e.searcher.Stopped() {
			break
		}

		bestMove = move
		bestScore = score

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(start),
				PV:       e.searcher.PV(),
				HashFull: e.tt.HashFull(),
			})
		}

		// A forced mate does not get better with depth.
		if !limits.Infinite && (score > MateScore-MaxPly || score < -MateScore+MaxPly) {
			break
		}

		// Starting another iteration that cannot finish wastes the
		// remaining budget; the next depth costs more than this one did.
		if !deadline.IsZero() && time.Since(start) > limits.MoveTime/2 {
			break
		}
	}

	if bestMove == board.NoMove {
		bestMove = firstLegalMove(pos)
	}
	return bestMove, bestScore
}

// firstLegalMove is the fallback when the search was stopped before even
// depth 1 completed.
func firstLegalMove(pos *board.Position) board.Move {
	ml := pos.GenerateLegalMoves()
	if ml.Len() == 0 {
		return board.NoMove
	}
	return ml.Get(0)
}

// Stop interrupts the running search. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// NewGame clears the transposition table for a fresh game. The allocation is
// reused; only the contents are zeroed.
func (e *Engine) NewGame() {
	e.tt.Clear()
}

// Nodes returns the node count of the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Table exposes the transposition table for statistics.
func (e *Engine) Table() *Table {
	return e.tt
}

// Perft runs the move-path enumeration used to validate move generation.
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return board.Perft(pos, depth)
}

// ScoreToString formats a score the way humans read engine output:
// centipawns as pawns, forced mates as move counts.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return "mate in " + strconv.Itoa((MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return "mated in " + strconv.Itoa((MateScore+score+1)/2)
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}
