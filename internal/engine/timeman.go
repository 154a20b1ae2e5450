package engine

import (
	"time"

	"github.com/bearchess/bear/internal/board"
)

// UCILimits carries the raw time control parameters from a UCI `go` command.
type UCILimits struct {
	Time      [2]time.Duration // wtime, btime
	Inc       [2]time.Duration // winc, binc
	MovesToGo int              // moves until next time control (0 = sudden death)
	MoveTime  time.Duration    // fixed time per move, overrides the clock
	Depth     int
	Nodes     uint64
	Infinite  bool
}

// MoveOverhead is subtracted from every budget to absorb I/O latency between
// the engine and the GUI.
const MoveOverhead = 30 * time.Millisecond

// AllocateTime turns UCI time controls into concrete search limits for one
// move. With no clock information the search is bounded only by depth, nodes,
// or an explicit stop.
func AllocateTime(limits UCILimits, us board.Color, ply int) SearchLimits {
	out := SearchLimits{
		Depth:    limits.Depth,
		Nodes:    limits.Nodes,
		Infinite: limits.Infinite,
	}

	if limits.Infinite {
		return out
	}
	if limits.MoveTime > 0 {
		out.MoveTime = limits.MoveTime
		return out
	}
	timeLeft := limits.Time[us]
	if timeLeft == 0 {
		return out
	}

	// Sudden death: estimate remaining moves from the game phase.
	mtg := limits.MovesToGo
	if mtg == 0 {
		mtg = 50 - ply/4
		if mtg < 10 {
			mtg = 10
		}
	}

	budget := timeLeft/time.Duration(mtg) + limits.Inc[us]*9/10

	// Never bet more than a fifth of the clock on one move.
	if most := timeLeft / 5; budget > most {
		budget = most
	}

	budget -= MoveOverhead
	if budget < 10*time.Millisecond {
		budget = 10 * time.Millisecond
	}

	out.MoveTime = budget
	return out
}
